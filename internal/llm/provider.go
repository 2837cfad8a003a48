package llm

import "context"

// Provider is a text-generation backend. Implementations return the model's
// raw text output; callers are responsible for parsing and validating it.
type Provider interface {
	// Generate sends the request and returns the raw model output.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes a single-turn generation call.
type Request struct {
	// System is the system prompt.
	System string

	// Messages is the conversation. Quiz generation sends one user message.
	Messages []Message

	// Schema, when set, asks the provider to use its native structured
	// output mode. The returned Text is still unvalidated.
	Schema *Schema

	MaxTokens int

	// Temperature controls randomness. Zero leaves the provider default.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a JSON Schema hint passed to providers that support
// structured output.
type Schema struct {
	// Name identifies the schema, e.g. "kids-quiz".
	Name string

	Description string

	// Definition is the JSON Schema document as a map.
	Definition map[string]any
}

// Response holds the model's output.
type Response struct {
	// Text is the raw text the model produced. It may contain prose around
	// a JSON document.
	Text string

	Usage Usage

	// Model is the model that served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// UserPrompt builds a Request holding a single user message.
func UserPrompt(prompt string) Request {
	return Request{
		Messages: []Message{{Role: RoleUser, Content: prompt}},
	}
}
