package tutoring

import (
	"time"

	"github.com/oetutor/tutorhub/core"
)

// Demo account credentials created by Seed. Shown on the landing page.
const (
	DemoTutorEmail   = "tutor@example.com"
	DemoStudentEmail = "student@example.com"
	DemoPassword     = "demo123"
)

// Seed fabricates the one-time bootstrap database: two demo accounts, two
// lessons, and enough surrounding records to make every page non-empty.
// It is the only place default data comes from; everything else is
// user-created.
func Seed(clock core.Clock) *Database {
	now := clock.Now()

	tutor := User{
		ID:           NewID("u"),
		Name:         "Emma Clark",
		Email:        DemoTutorEmail,
		Role:         RoleTutor,
		PasswordHash: HashPassword(DemoPassword),
		CreatedAt:    now,
	}
	student := User{
		ID:           NewID("u"),
		Name:         "Liam Chen",
		Email:        DemoStudentEmail,
		Role:         RoleStudent,
		PasswordHash: HashPassword(DemoPassword),
		CreatedAt:    now,
	}

	l1 := Lesson{
		ID:        NewID("l"),
		StudentID: student.ID,
		TutorID:   tutor.ID,
		Datetime:  now.Add(30 * time.Hour),
		Type:      "Conversation",
		Duration:  45,
		Status:    StatusAccepted,
		CreatedAt: now,
	}
	l2 := Lesson{
		ID:        NewID("l"),
		StudentID: student.ID,
		TutorID:   tutor.ID,
		Datetime:  now.Add(54 * time.Hour),
		Type:      "Grammar",
		Duration:  60,
		Status:    StatusPending,
		CreatedAt: now,
	}

	c4, g4, v3 := 4, 4, 3
	return &Database{
		Users:   []User{tutor, student},
		Lessons: []Lesson{l1, l2},
		Chats: map[string][]ChatMessage{
			l1.ID: {{ID: NewID("m"), SenderID: tutor.ID, Text: "Welcome!", TS: now}},
		},
		LessonNotes: map[string]string{
			l1.ID: "Warm-up: speak for 2 minutes.",
		},
		Whiteboards: map[string]*Whiteboard{
			l1.ID: {Strokes: []Stroke{}, Snapshots: []string{}},
		},
		LessonTools: map[string]*LessonTools{
			l1.ID: {
				Vocab:       []VocabEntry{{Term: "confident", Definition: "sure about your ability"}},
				Corrections: []Correction{{Text: "Use: I have been learning..."}},
			},
		},
		Progress: map[string]*Progress{
			student.ID: {
				QuizResults: []QuizResult{{Score: 2, Total: 3, Date: now}},
				VocabKnown:  map[string]bool{"resilient": true},
				WritingSubmissions: []WritingSubmission{{
					ID:       NewID("w"),
					Prompt:   WritingPrompts[0],
					Text:     "I traveled and learned patience.",
					Date:     now,
					Feedback: "Good start.",
					Rubric:   Rubric{Clarity: &c4, Grammar: &g4, Vocabulary: &v3},
				}},
			},
		},
		DarkMode: false,
	}
}
