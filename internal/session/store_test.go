package session

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizbuddy/internal/quizgen"
)

func newTestStore() *Store {
	s := NewStore()
	s.now = func() time.Time { return time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC) }
	return s
}

func requireInvariants(t *testing.T, sess Session) {
	t.Helper()
	require.Equal(t, len(sess.Answers), sess.CurrentQuestion, "cursor must equal answer count")

	correct := 0
	for _, a := range sess.Answers {
		if a.IsCorrect {
			correct++
		}
	}
	require.Equal(t, correct, sess.Score, "score must equal correct answers")
}

func TestStart(t *testing.T) {
	s := newTestStore()

	sess := s.Start("profile_1", "dinosaurs", quizgen.Fallback("dinosaurs"), quizgen.SourceFallback)
	assert.Equal(t, "session_1", sess.ID)
	assert.Equal(t, "profile_1", sess.ProfileID)
	assert.Equal(t, "dinosaurs", sess.Topic)
	assert.Equal(t, 0, sess.CurrentQuestion)
	assert.Equal(t, 0, sess.Score)
	assert.Empty(t, sess.Answers)
	assert.Equal(t, StateInProgress, sess.State())
	assert.Equal(t, quizgen.SourceFallback, sess.Source)

	second := s.Start("profile_1", "space", quizgen.Fallback("space"), quizgen.SourceFallback)
	assert.Equal(t, "session_2", second.ID)
}

// Ava (6) plays the fallback dinosaurs quiz.
func TestSubmitAnswer_DinosaurExample(t *testing.T) {
	s := newTestStore()
	sess := s.Start("profile_1", "dinosaurs", quizgen.Fallback("dinosaurs"), quizgen.SourceFallback)

	res, err := s.SubmitAnswer(sess.ID, 3)
	require.NoError(t, err)
	assert.True(t, res.IsCorrect)
	assert.Equal(t, 1, res.CurrentScore)
	assert.False(t, res.IsQuizComplete)
	assert.Nil(t, res.FinalScore)
	assert.Equal(t, "Great job! dinosaurs is indeed amazing, interesting, and cool!", res.Explanation)

	res, err = s.SubmitAnswer(sess.ID, 0)
	require.NoError(t, err)
	assert.False(t, res.IsCorrect)
	assert.Equal(t, 1, res.CurrentScore)
}

func TestSubmitAnswer_CompletesAfterFourAnswers(t *testing.T) {
	s := newTestStore()
	sess := s.Start("profile_1", "ocean", quizgen.Fallback("ocean"), quizgen.SourceFallback)

	answers := []int{3, 1, 0, 3}
	var res AnswerResult
	for i, a := range answers {
		var err error
		res, err = s.SubmitAnswer(sess.ID, a)
		require.NoError(t, err)

		got, err := s.Get(sess.ID)
		require.NoError(t, err)
		requireInvariants(t, got)
		assert.Equal(t, i+1, got.CurrentQuestion)
	}

	assert.True(t, res.IsQuizComplete)
	require.NotNil(t, res.FinalScore)
	require.NotNil(t, res.TotalQuestions)
	assert.Equal(t, 3, *res.FinalScore)
	assert.Equal(t, 4, *res.TotalQuestions)

	got, _ := s.Get(sess.ID)
	assert.Equal(t, StateComplete, got.State())
	assert.Equal(t, *res.FinalScore, got.Score)
}

func TestSubmitAnswer_AfterCompleteDoesNotMutate(t *testing.T) {
	s := newTestStore()
	sess := s.Start("profile_1", "ocean", quizgen.Fallback("ocean"), quizgen.SourceFallback)
	for _, a := range []int{3, 1, 3, 3} {
		_, err := s.SubmitAnswer(sess.ID, a)
		require.NoError(t, err)
	}
	before, _ := s.Get(sess.ID)

	_, err := s.SubmitAnswer(sess.ID, 3)
	assert.ErrorIs(t, err, ErrQuizAlreadyComplete)

	after, _ := s.Get(sess.ID)
	assert.Equal(t, before, after)
	assert.Equal(t, 4, after.Score)
}

func TestSubmitAnswer_OutOfRangeIsIncorrect(t *testing.T) {
	s := newTestStore()
	sess := s.Start("profile_1", "bees", quizgen.Fallback("bees"), quizgen.SourceFallback)

	for _, idx := range []int{NoAnswer, 7} {
		res, err := s.SubmitAnswer(sess.ID, idx)
		require.NoError(t, err)
		assert.False(t, res.IsCorrect)
	}

	got, _ := s.Get(sess.ID)
	requireInvariants(t, got)
	assert.Equal(t, []Answer{
		{QuestionIndex: 0, AnswerIndex: -1, IsCorrect: false},
		{QuestionIndex: 1, AnswerIndex: 7, IsCorrect: false},
	}, got.Answers)
}

func TestSubmitAnswer_UnknownSession(t *testing.T) {
	s := newTestStore()
	_, err := s.SubmitAnswer("session_42", 0)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = s.Get("session_42")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGet_ReturnsCopy(t *testing.T) {
	s := newTestStore()
	sess := s.Start("profile_1", "art", quizgen.Fallback("art"), quizgen.SourceFallback)
	_, err := s.SubmitAnswer(sess.ID, 3)
	require.NoError(t, err)

	got, _ := s.Get(sess.ID)
	got.Questions[0].Options[0] = "mutated"
	got.Answers[0].IsCorrect = false
	got.Score = 99

	again, _ := s.Get(sess.ID)
	assert.Equal(t, "It's amazing!", again.Questions[0].Options[0])
	assert.True(t, again.Answers[0].IsCorrect)
	assert.Equal(t, 1, again.Score)
}

func TestStart_CopiesQuestions(t *testing.T) {
	s := newTestStore()
	qs := quizgen.Fallback("art")
	sess := s.Start("profile_1", "art", qs, quizgen.SourceFallback)

	qs[0].CorrectAnswer = 0
	res, err := s.SubmitAnswer(sess.ID, 3)
	require.NoError(t, err)
	assert.True(t, res.IsCorrect)
}

func TestListByProfile(t *testing.T) {
	s := newTestStore()
	a := s.Start("profile_1", "one", quizgen.Fallback("one"), quizgen.SourceFallback)
	s.Start("profile_2", "two", quizgen.Fallback("two"), quizgen.SourceFallback)
	c := s.Start("profile_1", "three", quizgen.Fallback("three"), quizgen.SourceGenerated)

	list := s.ListByProfile("profile_1")
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, c.ID, list[1].ID)

	assert.Empty(t, s.ListByProfile("profile_9"))
}

func TestSessionJSON(t *testing.T) {
	s := newTestStore()
	sess := s.Start("profile_1", "dinosaurs", quizgen.Fallback("dinosaurs"), quizgen.SourceFallback)

	raw, err := json.Marshal(sess)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	for _, key := range []string{"id", "profile_id", "topic", "questions", "current_question", "score", "answers", "source", "created_at"} {
		assert.Contains(t, m, key)
	}
	assert.Equal(t, "2026-03-01T09:30:00Z", m["created_at"])
	assert.Equal(t, []any{}, m["answers"])
}

func TestAnswerResultJSON(t *testing.T) {
	raw, err := json.Marshal(AnswerResult{IsCorrect: true, Explanation: "x", CurrentScore: 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"is_correct":true,"explanation":"x","current_score":1,"is_quiz_complete":false}`, string(raw))

	zero, four := 0, 4
	raw, err = json.Marshal(AnswerResult{IsQuizComplete: true, FinalScore: &zero, TotalQuestions: &four})
	require.NoError(t, err)
	assert.JSONEq(t, `{"is_correct":false,"explanation":"","current_score":0,"is_quiz_complete":true,"final_score":0,"total_questions":4}`, string(raw))
}

func TestConcurrentSubmitsStayConsistent(t *testing.T) {
	s := newTestStore()
	sess := s.Start("profile_1", "ants", quizgen.Fallback("ants"), quizgen.SourceFallback)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		rejected int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.SubmitAnswer(sess.ID, 3)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				accepted++
			} else {
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 4, accepted)
	assert.Equal(t, 16, rejected)

	got, _ := s.Get(sess.ID)
	requireInvariants(t, got)
	assert.Equal(t, 3, got.Score, "template 2 expects index 1")
}
