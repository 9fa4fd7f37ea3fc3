package tutoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStudyTimer(t *testing.T) {
	tm := NewStudyTimer()
	assert.Equal(t, "25:00", tm.Readout())
	assert.False(t, tm.Running())

	// ticks are ignored while paused
	tm.Tick()
	assert.Equal(t, "25:00", tm.Readout())

	tm.Start()
	assert.True(t, tm.Running())
	tm.Tick()
	assert.Equal(t, "24:59", tm.Readout())

	tm.Pause()
	tm.Tick()
	assert.Equal(t, "24:59", tm.Readout())

	tm.Reset(5)
	assert.Equal(t, "05:00", tm.Readout())
	assert.False(t, tm.Running(), "reset stops the timer")
}

func TestStudyTimerResetClamp(t *testing.T) {
	tm := NewStudyTimer()
	for _, minutes := range []int{0, -3} {
		tm.Reset(minutes)
		assert.Equal(t, "01:00", tm.Readout())
	}
}

func TestStudyTimerRunsOut(t *testing.T) {
	tm := NewStudyTimer()
	tm.Reset(1)
	tm.Start()
	for i := 0; i < 60; i++ {
		tm.Tick()
	}
	assert.True(t, tm.Finished())
	assert.False(t, tm.Running())
	assert.Equal(t, "00:00", tm.Readout())

	// finished timers stay at zero
	tm.Tick()
	assert.Equal(t, "00:00", tm.Readout())

	// a finished timer cannot be started, only reset
	tm.Start()
	assert.False(t, tm.Running())
	tm.Reset(2)
	tm.Start()
	assert.True(t, tm.Running())
}
