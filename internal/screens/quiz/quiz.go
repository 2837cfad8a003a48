// Package quiz runs one four-question quiz against the server.
package quiz

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbuddy/internal/client"
	"github.com/abhisek/quizbuddy/internal/profile"
	"github.com/abhisek/quizbuddy/internal/quizgen"
	"github.com/abhisek/quizbuddy/internal/router"
	"github.com/abhisek/quizbuddy/internal/screen"
	"github.com/abhisek/quizbuddy/internal/session"
	"github.com/abhisek/quizbuddy/internal/ui/components"
	"github.com/abhisek/quizbuddy/internal/ui/layout"
)

// AnswerSubmitter grades answers; *client.Client satisfies it.
type AnswerSubmitter interface {
	SubmitAnswer(ctx context.Context, sessionID string, answerIndex int) (*session.AnswerResult, error)
}

// Outcome is handed to the summary screen when the quiz ends.
type Outcome struct {
	Learner   profile.Profile
	Topic     string
	SessionID string
	Source    quizgen.Source
	Score     int
	Total     int
	Results   []bool
}

// answerMsg carries the server's grading of one answer.
type answerMsg struct {
	Result *session.AnswerResult
	Err    error
}

// QuizScreen shows one question at a time with feedback after each.
type QuizScreen struct {
	api     AnswerSubmitter
	learner profile.Profile
	topic   string
	quiz    *client.Quiz
	next    func(Outcome) screen.Screen

	index    int
	choice   components.MultiChoice
	results  []bool
	score    int
	feedback *session.AnswerResult
	pending  bool
	errMsg   string
	done     bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// New creates a QuizScreen. next builds the summary once every question
// has been answered.
func New(api AnswerSubmitter, learner profile.Profile, topic string, quiz *client.Quiz, next func(Outcome) screen.Screen) *QuizScreen {
	s := &QuizScreen{
		api:     api,
		learner: learner,
		topic:   topic,
		quiz:    quiz,
		next:    next,
	}
	s.loadQuestion()
	return s
}

func (s *QuizScreen) loadQuestion() {
	q := s.quiz.Questions[s.index]
	s.choice = components.NewMultiChoice(q.Question, q.Options)
	s.feedback = nil
	s.errMsg = ""
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return "Quiz: " + s.topic
}

func (s *QuizScreen) Status() string {
	return fmt.Sprintf("%d/%d", s.score, len(s.quiz.Questions))
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.feedback != nil {
		if s.feedback.IsQuizComplete {
			return []layout.KeyHint{{Key: "Enter", Description: "See results"}}
		}
		return []layout.KeyHint{{Key: "Enter", Description: "Next question"}}
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Answer"},
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Leave quiz"},
	}
}

// Question returns the zero-based index of the question on screen.
func (s *QuizScreen) Question() int {
	return s.index
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case answerMsg:
		return s.handleAnswer(msg)

	case tea.KeyPressMsg:
		if s.pending {
			return s, nil
		}
		if s.feedback != nil {
			return s.handleContinue(msg)
		}

		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		if s.choice.Submitted {
			return s, s.submit(s.choice.ChosenIndex)
		}
		return s, cmd
	}

	return s, nil
}

func (s *QuizScreen) submit(idx int) tea.Cmd {
	s.pending = true
	s.errMsg = ""
	api, id := s.api, s.quiz.SessionID
	return func() tea.Msg {
		res, err := api.SubmitAnswer(context.Background(), id, idx)
		return answerMsg{Result: res, Err: err}
	}
}

func (s *QuizScreen) handleAnswer(msg answerMsg) (screen.Screen, tea.Cmd) {
	s.pending = false
	if msg.Err != nil {
		// Let the learner try the same question again.
		s.errMsg = "Couldn't check your answer: " + msg.Err.Error()
		s.choice.Submitted = false
		s.choice.ChosenIndex = -1
		return s, nil
	}

	res := msg.Result
	s.feedback = res
	s.score = res.CurrentScore
	s.results = append(s.results, res.IsCorrect)
	s.choice.Reveal(s.quiz.Questions[s.index].CorrectAnswer)
	return s, nil
}

func (s *QuizScreen) handleContinue(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter", "space", " ", "right", "n":
	default:
		return s, nil
	}

	if s.feedback.IsQuizComplete {
		if s.done {
			return s, nil
		}
		s.done = true
		total := len(s.quiz.Questions)
		if s.feedback.TotalQuestions != nil {
			total = *s.feedback.TotalQuestions
		}
		score := s.score
		if s.feedback.FinalScore != nil {
			score = *s.feedback.FinalScore
		}
		next := s.next(Outcome{
			Learner:   s.learner,
			Topic:     s.topic,
			SessionID: s.quiz.SessionID,
			Source:    s.quiz.Source,
			Score:     score,
			Total:     total,
			Results:   append([]bool(nil), s.results...),
		})
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}

	s.index++
	s.loadQuestion()
	return s, nil
}
