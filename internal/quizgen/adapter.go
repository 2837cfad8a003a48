package quizgen

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/abhisek/quizbuddy/internal/llm"
	"github.com/abhisek/quizbuddy/internal/logger"
)

const purpose = "quiz-gen"

// Adapter produces quizzes. With a nil provider every quiz comes from the
// deterministic fallback.
type Adapter struct {
	provider llm.Provider
	config   Config
	log      *logger.Logger
}

// New creates an Adapter. provider may be nil when no credential is
// configured.
func New(provider llm.Provider, cfg Config, log *logger.Logger) *Adapter {
	if log == nil {
		log = logger.Nop()
	}
	return &Adapter{provider: provider, config: cfg, log: log}
}

// Generator names the backing model, or "fallback" without a provider.
func (a *Adapter) Generator() string {
	if a.provider == nil {
		return string(SourceFallback)
	}
	return a.provider.ModelID()
}

// Generate returns four questions about topic pitched at age. It never
// fails: any generation error is logged and replaced by Fallback(topic).
func (a *Adapter) Generate(ctx context.Context, topic string, age int) Result {
	genID := uuid.NewString()
	log := a.log.With("generation_id", genID, "topic", topic, "age", age)

	if a.provider == nil {
		log.Info("no generation credential configured, using fallback quiz")
		return Result{Questions: Fallback(topic), Source: SourceFallback, GenerationID: genID}
	}

	qs, err := a.generate(llm.WithGenerationID(ctx, genID), topic, age)
	if err != nil {
		logFailure(log, err)
	}

	res := Result{
		Questions:    OrElse(qs, err, func() QuestionSet { return Fallback(topic) }),
		Source:       SourceGenerated,
		GenerationID: genID,
	}
	if err != nil {
		res.Source = SourceFallback
	} else {
		log.Info("generated quiz", "model", a.provider.ModelID())
	}
	return res
}

// generate performs one external call and validates its output.
func (a *Adapter) generate(ctx context.Context, topic string, age int) (QuestionSet, error) {
	ctx = llm.WithPurpose(ctx, purpose)

	req := llm.UserPrompt(buildPrompt(topic, age))
	req.System = systemPrompt
	req.MaxTokens = a.config.MaxTokens
	req.Temperature = a.config.Temperature
	if a.config.StructuredOutput {
		req.Schema = ResponseSchema
	}

	resp, err := a.provider.Generate(ctx, req)
	if err != nil {
		var empty *llm.ErrEmptyResponse
		if errors.As(err, &empty) {
			return nil, fail(ErrEmpty, err)
		}
		return nil, fail(ErrProvider, err)
	}
	return Parse(resp.Text)
}

// OrElse returns qs when err is nil and fallback() otherwise.
func OrElse(qs QuestionSet, err error, fallback func() QuestionSet) QuestionSet {
	if err != nil {
		return fallback()
	}
	return qs
}

func logFailure(log *logger.Logger, err error) {
	var ge *GenerationError
	if !errors.As(err, &ge) {
		log.Warn("quiz generation failed, using fallback", "error", err)
		return
	}

	switch ge.Kind {
	case ErrEmpty:
		log.Warn("generator returned an empty response, using fallback")
	case ErrParseFailed:
		log.Warn("could not parse generator response, using fallback", "error", ge.Err)
	case ErrMissingField, ErrSchemaInvalid:
		log.Warn("generator response failed validation, using fallback", "kind", string(ge.Kind), "error", ge.Err)
	case ErrProvider:
		var te *llm.ErrTimeout
		if errors.As(ge.Err, &te) {
			log.Warn("generator timed out, using fallback", "after", te.After.String())
			return
		}
		log.Error("generator call failed, using fallback", "error", ge.Err)
	}
}
