package tutoring

// trialSecondsPerQuestion is the per-question countdown for the guest game.
const trialSecondsPerQuestion = 60

// TrialGame is the unauthenticated quiz flow: one question at a time, 60
// seconds each, nothing persisted. The owner drives it from its event loop:
// Tick once per second while the game view is shown, Submit on answer.
type TrialGame struct {
	idx           int
	score         int
	left          int
	done          bool
	congratsShown bool
}

func NewTrialGame() *TrialGame {
	return &TrialGame{left: trialSecondsPerQuestion}
}

// Question returns the current question, or false once the game is done.
func (g *TrialGame) Question() (QuizQuestion, bool) {
	if g.done || g.idx >= len(QuizQuestions) {
		return QuizQuestion{}, false
	}
	return QuizQuestions[g.idx], true
}

// Submit grades the selected option (use -1 for no selection) and advances.
func (g *TrialGame) Submit(answer int) {
	if g.done {
		return
	}
	q, ok := g.Question()
	g.advance(ok && answer == q.Answer)
}

// Tick counts the current question down one second; at zero the question is
// forfeited and the game auto-advances.
func (g *TrialGame) Tick() {
	if g.done {
		return
	}
	g.left--
	if g.left <= 0 {
		g.advance(false)
	}
}

func (g *TrialGame) advance(correct bool) {
	if correct {
		g.score++
	}
	g.idx++
	g.left = trialSecondsPerQuestion
	if g.idx >= len(QuizQuestions) {
		g.done = true
	}
}

// Reset returns the game to its initial state.
func (g *TrialGame) Reset() { *g = TrialGame{left: trialSecondsPerQuestion} }

func (g *TrialGame) Done() bool     { return g.done }
func (g *TrialGame) Score() int     { return g.score }
func (g *TrialGame) Index() int     { return g.idx }
func (g *TrialGame) Remaining() int { return g.left }

// FirstPerfect reports a perfect score exactly once, for the congrats
// banner; later calls return false until the game is reset.
func (g *TrialGame) FirstPerfect() bool {
	if g.done && g.score == len(QuizQuestions) && !g.congratsShown {
		g.congratsShown = true
		return true
	}
	return false
}
