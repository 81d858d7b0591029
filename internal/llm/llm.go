package llm

import "context"

// Turn is one message of a chat exchange.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Roles used in conversation turns.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Schema describes the JSON shape a generation call is steered toward.
// Providers pass it as a generation constraint; it is a hint, not a
// guarantee, so callers must still parse and validate the raw output.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Client is a minimal LLM interface to allow pluggable providers.
type Client interface {
	// Chat runs a free-form multi-turn exchange and returns the assistant reply.
	Chat(ctx context.Context, turns []Turn, temperature float64) (string, error)
	// Generate runs a one-shot prompt constrained to the given schema and
	// returns the raw response text, expected to be schema-conformant JSON.
	Generate(ctx context.Context, prompt string, schema Schema, temperature float64) (string, error)
}

// GenerationError wraps any transport or inference failure from a provider.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return "llm: generation failed: " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
