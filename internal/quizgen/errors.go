package quizgen

import "fmt"

// Kind classifies a generation failure. Kinds are themselves errors so that
// callers can match with errors.Is(err, quizgen.ErrParseFailed).
type Kind string

func (k Kind) Error() string { return string(k) }

const (
	ErrEmpty         Kind = "empty response"
	ErrParseFailed   Kind = "response is not JSON"
	ErrMissingField  Kind = "response has no questions"
	ErrSchemaInvalid Kind = "questions do not match the quiz schema"
	ErrProvider      Kind = "generation call failed"
)

// GenerationError is returned by Parse and by the adapter's internal
// generation step.
type GenerationError struct {
	Kind Kind
	Err  error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Is matches the error's Kind.
func (e *GenerationError) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

func fail(kind Kind, err error) *GenerationError {
	return &GenerationError{Kind: kind, Err: err}
}
