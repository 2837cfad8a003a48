package session

import (
	"errors"
	"time"

	"github.com/abhisek/quizbuddy/internal/quizgen"
)

var (
	// ErrSessionNotFound is returned for an unknown session ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrQuizAlreadyComplete is returned when answering a finished quiz.
	ErrQuizAlreadyComplete = errors.New("quiz already complete")
)

// State is the lifecycle position of a session.
type State string

const (
	StateInProgress State = "IN_PROGRESS"
	StateComplete   State = "COMPLETE"
)

// NoAnswer is recorded when a submission carries no answer index.
const NoAnswer = -1

// Answer is one recorded submission.
type Answer struct {
	QuestionIndex int  `json:"question_index"`
	AnswerIndex   int  `json:"answer_index"`
	IsCorrect     bool `json:"is_correct"`
}

// Session is one quiz attempt. CurrentQuestion always equals len(Answers)
// and Score always equals the number of correct answers.
type Session struct {
	ID              string              `json:"id"`
	ProfileID       string              `json:"profile_id"`
	Topic           string              `json:"topic"`
	Questions       quizgen.QuestionSet `json:"questions"`
	CurrentQuestion int                 `json:"current_question"`
	Score           int                 `json:"score"`
	Answers         []Answer            `json:"answers"`
	Source          quizgen.Source      `json:"source"`
	CreatedAt       time.Time           `json:"created_at"`
}

// State reports whether the session still accepts answers.
func (s Session) State() State {
	if s.CurrentQuestion >= len(s.Questions) {
		return StateComplete
	}
	return StateInProgress
}

// Complete is shorthand for State() == StateComplete.
func (s Session) Complete() bool {
	return s.State() == StateComplete
}

// AnswerResult is the feedback for one submission. FinalScore and
// TotalQuestions are set only once the quiz is complete.
type AnswerResult struct {
	IsCorrect      bool   `json:"is_correct"`
	Explanation    string `json:"explanation"`
	CurrentScore   int    `json:"current_score"`
	IsQuizComplete bool   `json:"is_quiz_complete"`
	FinalScore     *int   `json:"final_score,omitempty"`
	TotalQuestions *int   `json:"total_questions,omitempty"`
}

func (s Session) clone() Session {
	s.Questions = s.Questions.Clone()
	s.Answers = append([]Answer{}, s.Answers...)
	return s
}
