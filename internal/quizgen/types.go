package quizgen

// QuestionsPerQuiz is the fixed quiz length.
const QuestionsPerQuiz = 4

// OptionsPerQuestion is the fixed number of choices per question.
const OptionsPerQuestion = 4

// Question is one multiple-choice question. It is never modified once it
// is part of a quiz.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// QuestionSet is the validated output of generation: exactly four questions.
type QuestionSet []Question

// Clone returns a deep copy.
func (qs QuestionSet) Clone() QuestionSet {
	if qs == nil {
		return nil
	}
	out := make(QuestionSet, len(qs))
	for i, q := range qs {
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out
}

// Source records where a quiz's questions came from.
type Source string

const (
	SourceGenerated Source = "generated"
	SourceFallback  Source = "fallback"
)

// Result is what the adapter hands back to callers.
type Result struct {
	Questions    QuestionSet
	Source       Source
	GenerationID string
}
