package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/ollama/ollama/api"
)

// OllamaClient talks to a local Ollama server. The configured model is pulled
// lazily on first use, which can be slow for large models.
type OllamaClient struct {
	model  string
	client *api.Client

	mu     sync.Mutex
	pulled bool
}

// NewOllamaClient builds a client from the OLLAMA_HOST environment
// (localhost:11434 by default).
func NewOllamaClient(model string) (*OllamaClient, error) {
	if model == "" {
		return nil, fmt.Errorf("model required")
	}
	cli, err := api.ClientFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("ollama client: %w", err)
	}
	return &OllamaClient{
		model:  model,
		client: cli,
	}, nil
}

// ensureModel pulls the configured model once per process. The mutex keeps
// concurrent first calls from issuing duplicate pulls; a failed pull is
// retried on the next call rather than cached.
func (c *OllamaClient) ensureModel(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pulled {
		return nil
	}
	err := c.client.Pull(ctx, &api.PullRequest{Model: c.model}, func(api.ProgressResponse) error {
		return nil
	})
	if err != nil {
		return fmt.Errorf("pull %s: %w", c.model, err)
	}
	c.pulled = true
	return nil
}

func (c *OllamaClient) Chat(ctx context.Context, turns []Turn, temperature float64) (string, error) {
	return c.chat(ctx, turns, nil, temperature)
}

func (c *OllamaClient) Generate(ctx context.Context, prompt string, schema Schema, temperature float64) (string, error) {
	format, err := json.Marshal(schema.Definition)
	if err != nil {
		return "", &GenerationError{Err: fmt.Errorf("marshal schema %s: %w", schema.Name, err)}
	}
	return c.chat(ctx, []Turn{{Role: RoleUser, Content: prompt}}, format, temperature)
}

func (c *OllamaClient) chat(ctx context.Context, turns []Turn, format json.RawMessage, temperature float64) (string, error) {
	if err := c.ensureModel(ctx); err != nil {
		return "", &GenerationError{Err: err}
	}

	messages := make([]api.Message, 0, len(turns))
	for _, turn := range turns {
		messages = append(messages, api.Message{Role: turn.Role, Content: turn.Content})
	}

	stream := false
	req := &api.ChatRequest{
		Model:    c.model,
		Messages: messages,
		Format:   format,
		Stream:   &stream,
		Options:  map[string]any{"temperature": temperature},
	}

	var content strings.Builder
	err := c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", &GenerationError{Err: err}
	}
	if content.Len() == 0 {
		return "", &GenerationError{Err: fmt.Errorf("ollama: empty response from %s", c.model)}
	}
	return content.String(), nil
}
