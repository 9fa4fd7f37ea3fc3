package tutoring

import "fmt"

const defaultStudyMinutes = 25

// StudyTimer is the lesson-room countdown. Like TrialGame it owns no
// goroutine: the room view ticks it once per second while running and must
// reset it when the room is left.
type StudyTimer struct {
	left    int // seconds
	running bool
}

func NewStudyTimer() *StudyTimer {
	return &StudyTimer{left: defaultStudyMinutes * 60}
}

func (t *StudyTimer) Start() { t.running = t.left > 0 }
func (t *StudyTimer) Pause() { t.running = false }

// Reset stops the timer and reloads it with the given minutes, clamped to
// at least one.
func (t *StudyTimer) Reset(minutes int) {
	if minutes < 1 {
		minutes = 1
	}
	t.running = false
	t.left = minutes * 60
}

// Tick counts down one second while running; at zero the timer stops.
func (t *StudyTimer) Tick() {
	if !t.running {
		return
	}
	t.left--
	if t.left <= 0 {
		t.left = 0
		t.running = false
	}
}

func (t *StudyTimer) Running() bool  { return t.running }
func (t *StudyTimer) Finished() bool { return t.left == 0 }

// Readout formats the remaining time as MM:SS.
func (t *StudyTimer) Readout() string {
	return fmt.Sprintf("%02d:%02d", t.left/60, t.left%60)
}
