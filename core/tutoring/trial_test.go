package tutoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrialGameFlow(t *testing.T) {
	g := NewTrialGame()
	assert.Equal(t, trialSecondsPerQuestion, g.Remaining())

	// answer everything correctly
	for !g.Done() {
		q, ok := g.Question()
		require.True(t, ok)
		g.Submit(q.Answer)
	}
	assert.Equal(t, len(QuizQuestions), g.Score())
	_, ok := g.Question()
	assert.False(t, ok)

	// the congrats banner fires exactly once
	assert.True(t, g.FirstPerfect())
	assert.False(t, g.FirstPerfect())

	// submitting past the end changes nothing
	g.Submit(0)
	assert.Equal(t, len(QuizQuestions), g.Score())

	g.Reset()
	assert.Equal(t, 0, g.Index())
	assert.Equal(t, 0, g.Score())
	assert.False(t, g.Done())
	assert.Equal(t, trialSecondsPerQuestion, g.Remaining())
}

func TestTrialGameWrongAndSkipped(t *testing.T) {
	g := NewTrialGame()

	g.Submit(-1) // no selection
	assert.Equal(t, 1, g.Index())
	assert.Equal(t, 0, g.Score())

	q, _ := g.Question()
	g.Submit(q.Answer + 1) // wrong option
	assert.Equal(t, 2, g.Index())
	assert.Equal(t, 0, g.Score())

	q, _ = g.Question()
	g.Submit(q.Answer)
	assert.Equal(t, 1, g.Score())
}

func TestTrialGameTimeout(t *testing.T) {
	g := NewTrialGame()

	// ticking short of the limit stays on the question
	for i := 0; i < trialSecondsPerQuestion-1; i++ {
		g.Tick()
	}
	assert.Equal(t, 0, g.Index())
	assert.Equal(t, 1, g.Remaining())

	// the final tick forfeits and moves on with a fresh countdown
	g.Tick()
	assert.Equal(t, 1, g.Index())
	assert.Equal(t, 0, g.Score())
	assert.Equal(t, trialSecondsPerQuestion, g.Remaining())

	// timing out every question ends the game at zero
	for !g.Done() {
		for i := 0; i < trialSecondsPerQuestion; i++ {
			g.Tick()
		}
	}
	assert.Equal(t, 0, g.Score())
	assert.False(t, g.FirstPerfect())

	// ticks after the end are ignored
	g.Tick()
	assert.True(t, g.Done())
	assert.Equal(t, len(QuizQuestions), g.Index())
}
