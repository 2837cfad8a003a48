package llm

import "context"

type contextKey string

const (
	purposeKey      contextKey = "llm_purpose"
	generationIDKey contextKey = "llm_generation_id"
)

// WithPurpose attaches a purpose label to the context for event logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}

// WithGenerationID tags the context with the ID of the quiz generation
// attempt that issued the call.
func WithGenerationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, generationIDKey, id)
}

// GenerationIDFrom returns the generation ID, or "" when none was set.
func GenerationIDFrom(ctx context.Context) string {
	v, _ := ctx.Value(generationIDKey).(string)
	return v
}
