// Package client talks to a running quizbuddy server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/abhisek/quizbuddy/internal/achievements"
	"github.com/abhisek/quizbuddy/internal/profile"
	"github.com/abhisek/quizbuddy/internal/quizgen"
	"github.com/abhisek/quizbuddy/internal/session"
)

const defaultTimeout = 30 * time.Second

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Client is a thin JSON client for the HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout of the default client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("base URL required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}

	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the server address.
func (c *Client) BaseURL() string { return c.baseURL }

// Health is the /healthz payload.
type Health struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Generator string `json:"generator"`
}

func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.doJSON(ctx, http.MethodGet, "/healthz", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Topics(ctx context.Context) ([]quizgen.Topic, error) {
	var out struct {
		Topics []quizgen.Topic `json:"topics"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/topics", nil, &out); err != nil {
		return nil, err
	}
	return out.Topics, nil
}

// CreateProfile registers a learner. A nil age lets the server default it.
func (c *Client) CreateProfile(ctx context.Context, name string, age *int, interests []string) (*profile.Profile, error) {
	in := struct {
		Name      string   `json:"name"`
		Age       *int     `json:"age,omitempty"`
		Interests []string `json:"interests,omitempty"`
	}{name, age, interests}

	var out struct {
		Profile profile.Profile `json:"profile"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/profile", in, &out); err != nil {
		return nil, err
	}
	return &out.Profile, nil
}

// Quiz is a freshly started session.
type Quiz struct {
	SessionID string
	Source    quizgen.Source
	Questions quizgen.QuestionSet
}

func (c *Client) GenerateQuiz(ctx context.Context, profileID, topic string) (*Quiz, error) {
	in := map[string]string{"topic": topic, "profile_id": profileID}

	var out struct {
		SessionID string         `json:"session_id"`
		Source    quizgen.Source `json:"source"`
		Quiz      struct {
			Questions quizgen.QuestionSet `json:"questions"`
		} `json:"quiz"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/quiz/generate", in, &out); err != nil {
		return nil, err
	}
	return &Quiz{SessionID: out.SessionID, Source: out.Source, Questions: out.Quiz.Questions}, nil
}

func (c *Client) SubmitAnswer(ctx context.Context, sessionID string, answerIndex int) (*session.AnswerResult, error) {
	in := struct {
		SessionID   string `json:"session_id"`
		AnswerIndex int    `json:"answer_index"`
	}{sessionID, answerIndex}

	var out session.AnswerResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/quiz/answer", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetSession(ctx context.Context, sessionID string) (*session.Session, error) {
	var out struct {
		Session session.Session `json:"session"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/quiz/session/"+url.PathEscape(sessionID), nil, &out); err != nil {
		return nil, err
	}
	return &out.Session, nil
}

func (c *Client) Achievements(ctx context.Context, profileID string) ([]achievements.Achievement, error) {
	var out struct {
		Achievements []achievements.Achievement `json:"achievements"`
	}
	path := "/api/profile/" + url.PathEscape(profileID) + "/achievements"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Achievements, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &e) == nil {
			apiErr.Message = e.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
