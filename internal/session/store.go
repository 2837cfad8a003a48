package session

import (
	"strconv"
	"sync"
	"time"

	"github.com/abhisek/quizbuddy/internal/quizgen"
)

// Store owns every quiz session. All reads and writes go through its mutex,
// so each SubmitAnswer is atomic.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	order    []string
	count    int
	now      func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Start opens a session at the first question. The caller must have
// checked that profileID exists.
func (s *Store) Start(profileID, topic string, questions quizgen.QuestionSet, source quizgen.Source) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.count++
	sess := &Session{
		ID:        "session_" + strconv.Itoa(s.count),
		ProfileID: profileID,
		Topic:     topic,
		Questions: questions.Clone(),
		Answers:   []Answer{},
		Source:    source,
		CreatedAt: s.now().UTC(),
	}
	s.sessions[sess.ID] = sess
	s.order = append(s.order, sess.ID)
	return sess.clone()
}

// SubmitAnswer records answerIndex against the current question and
// advances the cursor. Any index, including out-of-range values and
// NoAnswer, is accepted and compared by plain equality. A finished quiz
// is left untouched.
func (s *Store) SubmitAnswer(sessionID string, answerIndex int) (AnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return AnswerResult{}, ErrSessionNotFound
	}
	if sess.Complete() {
		return AnswerResult{}, ErrQuizAlreadyComplete
	}

	q := sess.Questions[sess.CurrentQuestion]
	correct := answerIndex == q.CorrectAnswer
	if correct {
		sess.Score++
	}
	sess.Answers = append(sess.Answers, Answer{
		QuestionIndex: sess.CurrentQuestion,
		AnswerIndex:   answerIndex,
		IsCorrect:     correct,
	})
	sess.CurrentQuestion++

	res := AnswerResult{
		IsCorrect:      correct,
		Explanation:    q.Explanation,
		CurrentScore:   sess.Score,
		IsQuizComplete: sess.Complete(),
	}
	if res.IsQuizComplete {
		final, total := sess.Score, len(sess.Questions)
		res.FinalScore = &final
		res.TotalQuestions = &total
	}
	return res, nil
}

// Get returns a copy of the session.
func (s *Store) Get(sessionID string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return sess.clone(), nil
}

// ListByProfile returns copies of the profile's sessions, oldest first.
func (s *Store) ListByProfile(profileID string) []Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Session
	for _, id := range s.order {
		if sess := s.sessions[id]; sess.ProfileID == profileID {
			out = append(out, sess.clone())
		}
	}
	return out
}
