package tutoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradeQuiz(t *testing.T) {
	tests := []struct {
		name    string
		answers []int
		want    int
	}{
		{name: "all correct", answers: []int{1, 1, 1, 1, 0}, want: 5},
		{name: "all wrong", answers: []int{0, 0, 0, 0, 1}, want: 0},
		{name: "partially answered", answers: []int{1, 1}, want: 2},
		{name: "unanswered marker", answers: []int{-1, -1, -1, -1, -1}, want: 0},
		{name: "no answers", answers: nil, want: 0},
		{name: "out of range", answers: []int{7, 7, 7, 7, 7}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, total := GradeQuiz(tt.answers)
			assert.Equal(t, tt.want, score)
			assert.Equal(t, len(QuizQuestions), total)
		})
	}
}

func TestFixedContentConsistency(t *testing.T) {
	for _, q := range QuizQuestions {
		assert.GreaterOrEqual(t, q.Answer, 0)
		assert.Less(t, q.Answer, len(q.Options), "answer index in range for %s", q.ID)
	}
	assert.NotEmpty(t, Flashcards)
	assert.NotEmpty(t, WritingPrompts)
}
