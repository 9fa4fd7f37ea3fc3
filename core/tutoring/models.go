package tutoring

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oetutor/tutorhub/core"
)

// Roles
const (
	RoleStudent = "Student"
	RoleTutor   = "Tutor"
)

var AllRoles = []string{RoleStudent, RoleTutor}

// Lesson statuses. A lesson starts pending and moves exactly once to
// accepted or declined; there is no way back.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
)

// Lesson response decisions.
const (
	DecisionAccept  = "accept"
	DecisionDecline = "decline"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u User) IsTutor() bool   { return u.Role == RoleTutor }
func (u User) IsStudent() bool { return u.Role == RoleStudent }

type Lesson struct {
	ID        string    `json:"id"`
	StudentID string    `json:"studentId"`
	TutorID   string    `json:"tutorId"`
	Datetime  time.Time `json:"datetime"`
	Type      string    `json:"type"`
	Duration  int       `json:"duration"` // minutes
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Resolved reports whether the lesson left the pending state.
func (l Lesson) Resolved() bool { return l.Status != StatusPending }

type ChatMessage struct {
	ID       string    `json:"id"`
	SenderID string    `json:"senderId"`
	Text     string    `json:"text"`
	TS       time.Time `json:"ts"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Stroke struct {
	Size   float64 `json:"size"`
	Points []Point `json:"points"`
}

// maxSnapshots bounds a whiteboard's snapshot history; the oldest capture
// is evicted first.
const maxSnapshots = 20

type Whiteboard struct {
	Strokes   []Stroke `json:"strokes"`
	Snapshots []string `json:"snapshots"`
}

type VocabEntry struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

type Correction struct {
	Text string `json:"text"`
}

type LessonTools struct {
	Vocab       []VocabEntry `json:"vocab"`
	Corrections []Correction `json:"corrections"`
}

type QuizResult struct {
	Score int       `json:"score"`
	Total int       `json:"total"`
	Date  time.Time `json:"date"`
}

// Percent is the result as a 0-100 percentage.
func (r QuizResult) Percent() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.Total) * 100
}

// Rubric holds a tutor's 1-5 scores for a writing submission.
// A nil dimension means "not scored".
type Rubric struct {
	Clarity    *int `json:"clarity"`
	Grammar    *int `json:"grammar"`
	Vocabulary *int `json:"vocabulary"`
}

// NewRubric builds a Rubric from raw form values. Numbers are rounded and
// clamped to [1,5]; anything non-numeric ends up unset, never rejected.
func NewRubric(clarity, grammar, vocabulary string) Rubric {
	return Rubric{
		Clarity:    clampScore(clarity),
		Grammar:    clampScore(grammar),
		Vocabulary: clampScore(vocabulary),
	}
}

func clampScore(v string) *int {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return nil
	}
	n := int(f + 0.5)
	if n < 1 {
		n = 1
	} else if n > 5 {
		n = 5
	}
	return &n
}

type WritingSubmission struct {
	ID       string    `json:"id"`
	Prompt   string    `json:"prompt"`
	Text     string    `json:"text"`
	Date     time.Time `json:"date"`
	Feedback string    `json:"feedback"`
	Rubric   Rubric    `json:"rubric"`
}

type Progress struct {
	QuizResults        []QuizResult        `json:"quizResults"`
	VocabKnown         map[string]bool     `json:"vocabKnown"`
	WritingSubmissions []WritingSubmission `json:"writingSubmissions"`
}

func newProgress() *Progress {
	return &Progress{
		QuizResults:        []QuizResult{},
		VocabKnown:         map[string]bool{},
		WritingSubmissions: []WritingSubmission{},
	}
}

// Database is the whole persisted application state: one document, owned
// exclusively by the store, mutated in place and saved wholesale.
type Database struct {
	Users       []User                   `json:"users"`
	Lessons     []Lesson                 `json:"lessons"`
	Chats       map[string][]ChatMessage `json:"chats"`
	LessonNotes map[string]string        `json:"lessonNotes"`
	Whiteboards map[string]*Whiteboard   `json:"whiteboards"`
	LessonTools map[string]*LessonTools  `json:"lessonTools"`
	Progress    map[string]*Progress     `json:"progress"`
	DarkMode    bool                     `json:"darkMode"`
}

// shape backfills top-level collections missing from documents written by
// older versions. It never touches existing keys. Reports whether anything
// was added.
func (db *Database) shape() bool {
	var changed bool
	if db.Users == nil {
		db.Users = []User{}
		changed = true
	}
	if db.Lessons == nil {
		db.Lessons = []Lesson{}
		changed = true
	}
	if db.Chats == nil {
		db.Chats = map[string][]ChatMessage{}
		changed = true
	}
	if db.LessonNotes == nil {
		db.LessonNotes = map[string]string{}
		changed = true
	}
	if db.Whiteboards == nil {
		db.Whiteboards = map[string]*Whiteboard{}
		changed = true
	}
	if db.LessonTools == nil {
		db.LessonTools = map[string]*LessonTools{}
		changed = true
	}
	if db.Progress == nil {
		db.Progress = map[string]*Progress{}
		changed = true
	}
	return changed
}

// Session identifies the signed-in user; it lives under its own storage key
// and is the only state kept outside the database document.
type Session struct {
	CurrentUserID string `json:"currentUserId"`
}

// NewID returns a prefixed opaque identifier, e.g. "l_1b4e28ba2fa1...".
func NewID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Stats is the per-student aggregate shown on the progress page.
type Stats struct {
	LessonsAttended int
	AvgQuizPercent  float64
	VocabKnownCount int
	// Bars holds the last 8 quiz results as rounded percentages, oldest first.
	Bars    []int
	Writing []WritingSubmission
}

// NewUser contains information needed to sign up a new User.
type NewUser struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,role"`
}

func (nu *NewUser) Validate(svc *Service) error {
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	if nu.Role == "" {
		nu.Role = RoleStudent
	}

	if err := core.Validate.Struct(nu); err != nil {
		return core.TranslateValidationError(err)
	}
	if svc.conf.StrongPasswords {
		if err := checkPasswordStrength(nu.Password, nu.Name, nu.Email); err != nil {
			return err
		}
	}
	return svc.checkEmailUniqueness(nu.Email)
}

// Credentials is a sign-in request.
type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (c *Credentials) Validate() error {
	c.Email = core.CleanString(c.Email, true /* lower */)
	if err := core.Validate.Struct(c); err != nil {
		return core.TranslateValidationError(err)
	}
	return nil
}

// LessonRequest is a student's booking form.
type LessonRequest struct {
	TutorID  string `json:"tutorId" validate:"required"`
	Datetime string `json:"datetime" validate:"required"`
	Type     string `json:"type"`
	Duration int    `json:"duration"`

	parsed time.Time
}

// datetimeLayouts accepts both full RFC 3339 instants and the shorter
// wall-clock form produced by datetime-local form fields.
var datetimeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"}

func (lr *LessonRequest) Validate(clock core.Clock) error {
	lr.Datetime = core.CleanString(lr.Datetime)
	if lr.Type == "" {
		lr.Type = "Conversation"
	}
	if lr.Duration == 0 {
		lr.Duration = 45
	}

	if err := core.Validate.Struct(lr); err != nil {
		return core.TranslateValidationError(err)
	}

	var parseErr error
	for _, layout := range datetimeLayouts {
		var t time.Time
		if t, parseErr = time.Parse(layout, lr.Datetime); parseErr == nil {
			lr.parsed = t.UTC()
			break
		}
	}
	if parseErr != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "datetime", Error: "please choose a valid date/time"})
	}
	if !lr.parsed.After(clock.Now()) {
		return core.NewValidationError(nil, core.FieldError{Field: "datetime", Error: "lesson must be in the future"})
	}
	return nil
}

// NewWriting is a student's writing submission form.
type NewWriting struct {
	Prompt string `json:"prompt"`
	Text   string `json:"text" validate:"required"`
}

func (nw *NewWriting) Validate() error {
	nw.Prompt = core.CleanString(nw.Prompt)
	nw.Text = core.CleanString(nw.Text)
	if err := core.Validate.Struct(nw); err != nil {
		return core.TranslateValidationError(err)
	}
	return nil
}
