package tutoring

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRubric(t *testing.T) {
	score := func(n int) *int { return &n }

	tests := []struct {
		name string
		in   string
		want *int
	}{
		{name: "in range", in: "3", want: score(3)},
		{name: "lowest", in: "1", want: score(1)},
		{name: "highest", in: "5", want: score(5)},
		{name: "clamped up", in: "0", want: score(1)},
		{name: "clamped up negative", in: "-2", want: score(1)},
		{name: "clamped down", in: "11", want: score(5)},
		{name: "rounded up", in: "3.6", want: score(4)},
		{name: "rounded down", in: "3.4", want: score(3)},
		{name: "whitespace tolerated", in: " 4 ", want: score(4)},
		{name: "empty unsets", in: "", want: nil},
		{name: "non-numeric unsets", in: "three", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRubric(tt.in, tt.in, tt.in)
			if tt.want == nil {
				assert.Nil(t, r.Clarity)
			} else {
				require.NotNil(t, r.Clarity)
				assert.Equal(t, *tt.want, *r.Clarity)
			}
		})
	}
}

func TestQuizResultPercent(t *testing.T) {
	assert.InDelta(t, 66.67, QuizResult{Score: 2, Total: 3}.Percent(), 0.01)
	assert.Equal(t, 100.0, QuizResult{Score: 5, Total: 5}.Percent())
	assert.Zero(t, QuizResult{Score: 3, Total: 0}.Percent(), "zero total never divides")
}

func TestNewID(t *testing.T) {
	a, b := NewID("u"), NewID("u")
	assert.True(t, strings.HasPrefix(a, "u_"))
	assert.NotEqual(t, a, b)
	assert.NotContains(t, a, "-")
}

func TestSeed(t *testing.T) {
	now := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)
	db := Seed(clockAt(now))

	require.Len(t, db.Users, 2)
	tutor, student := db.Users[0], db.Users[1]
	assert.True(t, tutor.IsTutor())
	assert.True(t, student.IsStudent())
	assert.True(t, CheckPassword(tutor.PasswordHash, DemoPassword))
	assert.True(t, CheckPassword(student.PasswordHash, DemoPassword))

	require.Len(t, db.Lessons, 2)
	l1, l2 := db.Lessons[0], db.Lessons[1]
	assert.Equal(t, StatusAccepted, l1.Status)
	assert.Equal(t, now.Add(30*time.Hour), l1.Datetime)
	assert.Equal(t, 45, l1.Duration)
	assert.Equal(t, StatusPending, l2.Status)
	assert.Equal(t, now.Add(54*time.Hour), l2.Datetime)
	assert.Equal(t, 60, l2.Duration)

	require.Len(t, db.Chats[l1.ID], 1)
	assert.Equal(t, tutor.ID, db.Chats[l1.ID][0].SenderID)
	assert.Equal(t, "Warm-up: speak for 2 minutes.", db.LessonNotes[l1.ID])

	p := db.Progress[student.ID]
	require.NotNil(t, p)
	require.Len(t, p.QuizResults, 1)
	assert.Equal(t, 2, p.QuizResults[0].Score)
	assert.True(t, p.VocabKnown["resilient"])
	require.Len(t, p.WritingSubmissions, 1)
	w := p.WritingSubmissions[0]
	assert.Equal(t, "Good start.", w.Feedback)
	require.NotNil(t, w.Rubric.Clarity)
	assert.Equal(t, 4, *w.Rubric.Clarity)

	// a fresh seed needs no shaping and marshals cleanly
	assert.False(t, db.shape())
	_, err := json.Marshal(db)
	require.NoError(t, err)
}

// clockAt is a minimal fixed clock for package-internal tests.
type clockAt time.Time

func (c clockAt) Now() time.Time { return time.Time(c) }
