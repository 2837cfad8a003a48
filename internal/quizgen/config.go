package quizgen

// Config controls the external generation call.
type Config struct {
	// MaxTokens is the token budget for the model's reply.
	MaxTokens int

	// Temperature controls output randomness (0.0-1.0).
	Temperature float64

	// StructuredOutput sends ResponseSchema so providers constrain their
	// output natively. The reply is validated by Parse either way.
	StructuredOutput bool
}

// DefaultConfig returns the settings used by the server.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.7,
	}
}
