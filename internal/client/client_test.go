package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizbuddy/internal/profile"
	"github.com/abhisek/quizbuddy/internal/quizgen"
	"github.com/abhisek/quizbuddy/internal/server"
	"github.com/abhisek/quizbuddy/internal/session"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	srv := server.New(
		profile.NewStore(),
		session.NewStore(),
		quizgen.New(nil, quizgen.DefaultConfig(), nil),
		nil,
		server.Options{Version: "v0.3.0"},
	)
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)

	c, err := New(ts.URL + "/")
	require.NoError(t, err)
	return c
}

func TestNew_Validation(t *testing.T) {
	_, err := New("  ")
	assert.Error(t, err)

	_, err = New("not a url")
	assert.Error(t, err)

	c, err := New("http://localhost:5000/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", c.BaseURL())
}

func TestHealthAndTopics(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	h, err := c.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ok", h.Status)
	assert.Equal(t, "v0.3.0", h.Version)
	assert.Equal(t, "fallback", h.Generator)

	topics, err := c.Topics(ctx)
	require.NoError(t, err)
	assert.Equal(t, quizgen.SuggestedTopics(), topics)
}

func TestFullQuiz(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	age := 7
	p, err := c.CreateProfile(ctx, "Ava", &age, nil)
	require.NoError(t, err)
	assert.Equal(t, "profile_1", p.ID)
	assert.Equal(t, 7, p.Age)

	quiz, err := c.GenerateQuiz(ctx, p.ID, "dinosaurs")
	require.NoError(t, err)
	assert.Equal(t, quizgen.SourceFallback, quiz.Source)
	assert.Equal(t, quizgen.Fallback("dinosaurs"), quiz.Questions)

	var last *session.AnswerResult
	for _, q := range quiz.Questions {
		last, err = c.SubmitAnswer(ctx, quiz.SessionID, q.CorrectAnswer)
		require.NoError(t, err)
		assert.True(t, last.IsCorrect)
	}
	require.True(t, last.IsQuizComplete)
	require.NotNil(t, last.FinalScore)
	assert.Equal(t, 4, *last.FinalScore)
	assert.Equal(t, 4, *last.TotalQuestions)

	sess, err := c.GetSession(ctx, quiz.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 4, sess.Score)
	assert.True(t, sess.Complete())

	achs, err := c.Achievements(ctx, p.ID)
	require.NoError(t, err)
	unlocked := map[string]bool{}
	for _, a := range achs {
		unlocked[string(a.ID)] = a.Unlocked
	}
	assert.True(t, unlocked["first_quiz"])
	assert.True(t, unlocked["perfect_score"])
	assert.True(t, unlocked["streak_master"])
	assert.False(t, unlocked["learning_champion"])
}

func TestDefaultAge(t *testing.T) {
	c := newTestClient(t)

	p, err := c.CreateProfile(context.Background(), "Leo", nil, []string{"space"})
	require.NoError(t, err)
	assert.Equal(t, profile.DefaultAge, p.Age)
	assert.Equal(t, []string{"space"}, p.Interests)
}

func TestAPIErrors(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		call    func() error
		status  int
		message string
	}{
		{
			name: "unknown profile on generate",
			call: func() error {
				_, err := c.GenerateQuiz(ctx, "profile_9", "space")
				return err
			},
			status:  http.StatusBadRequest,
			message: "Invalid profile",
		},
		{
			name: "unknown session on answer",
			call: func() error {
				_, err := c.SubmitAnswer(ctx, "session_9", 0)
				return err
			},
			status:  http.StatusBadRequest,
			message: "Invalid session",
		},
		{
			name: "unknown session on get",
			call: func() error {
				_, err := c.GetSession(ctx, "session_9")
				return err
			},
			status:  http.StatusNotFound,
			message: "Session not found",
		},
		{
			name: "unknown profile achievements",
			call: func() error {
				_, err := c.Achievements(ctx, "ghost")
				return err
			},
			status:  http.StatusNotFound,
			message: "Profile not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr), "got %v", err)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}
}

func TestAPIError_NonJSONBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer ts.Close()

	c, err := New(ts.URL)
	require.NoError(t, err)

	_, err = c.Health(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Empty(t, apiErr.Message)
	assert.Equal(t, "server returned 502", apiErr.Error())
}
