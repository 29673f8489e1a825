package entity

// QuizPayload tracks progress through one quiz run. Score and Streak are
// derivable from AnswerLog: score is 10 per correct entry, streak is the
// trailing run of correct entries.
type QuizPayload struct {
	Category      string    `json:"category"`
	QuestionIndex int       `json:"question_index"`
	QuestionTotal int       `json:"question_total"`
	Current       *Question `json:"current_question,omitempty"`
	Score         int       `json:"score"`
	Streak        int       `json:"streak"`
	AnswerLog     []Answer  `json:"answer_log"`
}

// Question is one prompt with its canonical answer, as produced by the
// content generator or the fallback bank.
type Question struct {
	ID     string `json:"id"`
	Prompt string `json:"prompt"`
	Answer string `json:"answer"`
}

type Answer struct {
	QuestionID string `json:"question_id"`
	Submitted  string `json:"submitted"`
	Correct    bool   `json:"correct"`
}
