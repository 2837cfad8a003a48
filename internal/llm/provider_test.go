package llm

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizbuddy/internal/store"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Text: `{"a":1}`, Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Text: `{"b":2}`},
	)

	resp1, err := mock.Generate(context.Background(), UserPrompt("first"))
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, resp1.Text)
	assert.Equal(t, 10, resp1.Usage.InputTokens)
	assert.Equal(t, "end", resp1.StopReason)

	resp2, err := mock.Generate(context.Background(), UserPrompt("second"))
	require.NoError(t, err)
	assert.Equal(t, `{"b":2}`, resp2.Text)
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	require.ErrorAs(t, err, &unavail)
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: `{}`})

	req := UserPrompt("hello")
	req.System = "sys"
	_, _ = mock.Generate(context.Background(), req)

	require.Equal(t, 1, mock.CallCount())
	assert.Equal(t, "sys", mock.Calls[0].System)
	assert.Equal(t, RoleUser, mock.Calls[0].Messages[0].Role)
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{}})

	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	require.ErrorAs(t, err, &rl)
}

func TestMockProvider_DelayHonorsContext(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "late", Delay: time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := mock.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWithTimeout(t *testing.T) {
	t.Run("slow call becomes ErrTimeout", func(t *testing.T) {
		p := WithTimeout(NewMockProvider(MockResponse{Text: "late", Delay: time.Second}), 20*time.Millisecond)

		start := time.Now()
		_, err := p.Generate(context.Background(), Request{})
		var te *ErrTimeout
		require.ErrorAs(t, err, &te)
		assert.Equal(t, 20*time.Millisecond, te.After)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Less(t, time.Since(start), 500*time.Millisecond)
	})

	t.Run("fast call passes through", func(t *testing.T) {
		p := WithTimeout(NewMockProvider(MockResponse{Text: "ok"}), time.Second)
		resp, err := p.Generate(context.Background(), Request{})
		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Text)
		assert.Equal(t, "mock", p.ModelID())
	})

	t.Run("provider error is not relabelled", func(t *testing.T) {
		p := WithTimeout(NewMockProvider(), time.Second)
		_, err := p.Generate(context.Background(), Request{})
		var te *ErrTimeout
		assert.False(t, errors.As(err, &te))
	})

	t.Run("zero disables", func(t *testing.T) {
		inner := NewMockProvider()
		assert.Same(t, Provider(inner), WithTimeout(inner, 0))
	})
}

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", PurposeFrom(ctx))
	assert.Equal(t, "", GenerationIDFrom(ctx))

	ctx = WithPurpose(ctx, "quiz-gen")
	ctx = WithGenerationID(ctx, "gen-42")
	assert.Equal(t, "quiz-gen", PurposeFrom(ctx))
	assert.Equal(t, "gen-42", GenerationIDFrom(ctx))
}

func TestLoggingProvider_RecordsEvents(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	repo := s.EventRepo()

	mock := NewMockProvider(
		MockResponse{Text: `{"questions":[]}`, Usage: Usage{InputTokens: 12, OutputTokens: 34}},
	)
	p := WithLogging(mock, "mock", repo, nil)

	ctx := WithGenerationID(WithPurpose(context.Background(), "quiz-gen"), "gen-1")
	_, err = p.Generate(ctx, Request{System: "be kind", Messages: []Message{{Role: RoleUser, Content: "dinosaurs"}}})
	require.NoError(t, err)
	_, err = p.Generate(ctx, UserPrompt("again"))
	require.Error(t, err)

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)

	failed, ok := events[0], events[1]
	assert.False(t, failed.Success)
	assert.NotEmpty(t, failed.ErrorMessage)

	assert.True(t, ok.Success)
	assert.Equal(t, "gen-1", ok.GenerationID)
	assert.Equal(t, "quiz-gen", ok.Purpose)
	assert.Equal(t, "mock", ok.Provider)
	assert.Equal(t, 12, ok.InputTokens)
	assert.Equal(t, 34, ok.OutputTokens)
	assert.Contains(t, ok.RequestBody, "[system]\nbe kind")
	assert.Contains(t, ok.RequestBody, "dinosaurs")
	assert.Equal(t, `{"questions":[]}`, ok.ResponseBody)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "g-test"}}, false},
		{"openrouter without key", Config{Provider: "openrouter"}, true},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			assert.Equal(t, tt.wantErr, err != nil, "Validate() error = %v", err)
		})
	}
}

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"OPENAI_BASE_URL", "QUIZBUDDY_LLM_PROVIDER", "QUIZBUDDY_LLM_MODEL", "QUIZBUDDY_LLM_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Run("no keys", func(t *testing.T) {
		clearLLMEnv(t)
		cfg, ok := ConfigFromEnv()
		assert.False(t, ok)
		assert.Equal(t, DefaultTimeout, cfg.Timeout)
	})

	t.Run("gemini discovered first", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("OPENAI_API_KEY", "sk-openai")
		t.Setenv("GEMINI_API_KEY", "g-key")

		cfg, ok := ConfigFromEnv()
		require.True(t, ok)
		assert.Equal(t, "gemini", cfg.Provider)
		assert.Equal(t, "g-key", cfg.Gemini.APIKey)
		assert.Equal(t, "gemini-flash", cfg.Gemini.Model)
	})

	t.Run("explicit provider and model", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("GEMINI_API_KEY", "g-key")
		t.Setenv("OPENAI_API_KEY", "sk-openai")
		t.Setenv("QUIZBUDDY_LLM_PROVIDER", "OpenAI")
		t.Setenv("QUIZBUDDY_LLM_MODEL", "gpt-4.1-mini")
		t.Setenv("QUIZBUDDY_LLM_TIMEOUT", "5s")

		cfg, ok := ConfigFromEnv()
		require.True(t, ok)
		assert.Equal(t, "openai", cfg.Provider)
		assert.Equal(t, "gpt-4.1-mini", cfg.OpenAI.Model)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("explicit provider without key fails validation", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("QUIZBUDDY_LLM_PROVIDER", "anthropic")
		cfg, ok := ConfigFromEnv()
		require.True(t, ok)
		assert.Error(t, cfg.Validate())
	})
}

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock", Timeout: time.Second}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())

	_, err = p.Generate(context.Background(), UserPrompt("x"))
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
}

func TestNewProvider_InvalidConfig(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{Provider: "gemini"}, nil, nil)
	assert.Error(t, err)
}

func TestEstimateCost(t *testing.T) {
	cost, ok := EstimateCost("gemini-2.0-flash", 1_000_000, 1_000_000)
	require.True(t, ok)
	assert.InDelta(t, 0.5, cost, 1e-9)

	_, ok = EstimateCost("no-such-model", 10, 10)
	assert.False(t, ok)
}
