package tutoring

// Fixed practice content. The exercises pages run entirely off these three
// sets; only results (quiz scores, vocab mastery, writing) are persisted.

type Flashcard struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

type QuizQuestion struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"q"`
	Options []string `json:"o"`
	Answer  int      `json:"a"` // index into Options
}

var Flashcards = []Flashcard{
	{Term: "resilient", Definition: "able to recover quickly"},
	{Term: "nevertheless", Definition: "in spite of that"},
	{Term: "meticulous", Definition: "very careful and precise"},
}

var QuizQuestions = []QuizQuestion{
	{ID: "q1", Prompt: "She ___ to class every day.", Options: []string{"go", "goes", "going"}, Answer: 1},
	{ID: "q2", Prompt: "I have lived here ___ 2020.", Options: []string{"for", "since", "at"}, Answer: 1},
	{ID: "q3", Prompt: "If I had time, I ___ join.", Options: []string{"will", "would", "am"}, Answer: 1},
	{ID: "q4", Prompt: "They ___ dinner when I arrived.", Options: []string{"are having", "were having", "have"}, Answer: 1},
	{ID: "q5", Prompt: "He is interested ___ learning Spanish.", Options: []string{"in", "on", "at"}, Answer: 0},
}

var WritingPrompts = []string{
	"Describe a memorable trip and what you learned.",
	"Is online learning better than classroom learning? Why?",
	"Write an email asking your tutor for exam help.",
}

// GradeQuiz scores selected option indexes against the quiz. Missing or
// out-of-range answers (use -1 for "unanswered") count as wrong.
func GradeQuiz(answers []int) (score, total int) {
	total = len(QuizQuestions)
	for i, q := range QuizQuestions {
		if i < len(answers) && answers[i] == q.Answer {
			score++
		}
	}
	return score, total
}
