// Package chat holds a running trip-planning conversation and distills trip
// parameters out of it on demand.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"trip-agent/internal/llm"
)

// TripDetails is the extraction result handed to the itinerary pipeline.
// It is never persisted.
type TripDetails struct {
	Destination string   `json:"destination" validate:"required"`
	Duration    int      `json:"duration" validate:"required,min=1"`
	Interests   []string `json:"interests" validate:"required,min=1,dive,required"`
}

// ExtractionError means the model's output did not parse into TripDetails.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return "chat: invalid extraction output: " + e.Err.Error()
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

var tripDetailsSchema = llm.Schema{
	Name:        "TripDetails",
	Description: "Destination, duration in days, and interests of a planned trip.",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"destination": map[string]any{"type": "string"},
			"duration":    map[string]any{"type": "integer"},
			"interests": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required":             []string{"destination", "duration", "interests"},
		"additionalProperties": false,
	},
}

const chatSystemPrompt = `You are a friendly travel-planning assistant. Help the user settle on a destination, how many days the trip should last, and what they are interested in doing. Keep replies short and conversational, and ask for whichever of those details is still missing.`

const extractPromptFmt = `Below is a travel-planning conversation. Extract the trip details the participants settled on and return them as a JSON object with 'destination' (string), 'duration' (whole number of days), and 'interests' (list of strings):

%s`

const (
	chatTemperature = 0.7
	// Extraction wants the most literal reading of the transcript.
	extractTemperature = 0.2
)

const defaultHistoryLimit = 50

var validate = validator.New()

// Extractor owns one conversation. History is append-only during a session
// and capped at historyLimit turns, evicting the oldest, so prompt cost
// stays bounded. Safe for concurrent use.
type Extractor struct {
	generator    llm.Client
	log          *slog.Logger
	historyLimit int

	mu      sync.Mutex
	history []llm.Turn
}

// NewExtractor builds an Extractor. A non-positive historyLimit falls back
// to the default cap.
func NewExtractor(generator llm.Client, log *slog.Logger, historyLimit int) *Extractor {
	if historyLimit <= 0 {
		historyLimit = defaultHistoryLimit
	}
	return &Extractor{
		generator:    generator,
		log:          log,
		historyLimit: historyLimit,
	}
}

// Send appends the user turn, runs the model over the entire accumulated
// history, appends the assistant reply, and returns it. On model failure the
// user turn stays appended (at-least-once: the user said it, so a retried
// Send sees it in context).
func (e *Extractor) Send(ctx context.Context, userText string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.history = append(e.history, llm.Turn{Role: llm.RoleUser, Content: userText})
	e.trimLocked()

	turns := make([]llm.Turn, 0, len(e.history)+1)
	turns = append(turns, llm.Turn{Role: llm.RoleSystem, Content: chatSystemPrompt})
	turns = append(turns, e.history...)

	reply, err := e.generator.Chat(ctx, turns, chatTemperature)
	if err != nil {
		return "", err
	}

	e.history = append(e.history, llm.Turn{Role: llm.RoleAssistant, Content: reply})
	e.trimLocked()
	return reply, nil
}

// ExtractTripDetails concatenates all turn contents into a transcript,
// role-agnostic, and asks the model for a one-shot TripDetails extraction.
// The conversation history is left untouched.
func (e *Extractor) ExtractTripDetails(ctx context.Context) (TripDetails, error) {
	e.mu.Lock()
	contents := make([]string, 0, len(e.history))
	for _, turn := range e.history {
		contents = append(contents, turn.Content)
	}
	e.mu.Unlock()

	transcript := strings.Join(contents, "\n")
	raw, err := e.generator.Generate(ctx, fmt.Sprintf(extractPromptFmt, transcript), tripDetailsSchema, extractTemperature)
	if err != nil {
		return TripDetails{}, err
	}

	var details TripDetails
	if err := json.Unmarshal([]byte(raw), &details); err != nil {
		return TripDetails{}, &ExtractionError{Err: fmt.Errorf("decode: %w", err)}
	}
	if err := validate.Struct(&details); err != nil {
		return TripDetails{}, &ExtractionError{Err: err}
	}
	return details, nil
}

// History returns a copy of the conversation so far.
func (e *Extractor) History() []llm.Turn {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]llm.Turn, len(e.history))
	copy(out, e.history)
	return out
}

func (e *Extractor) trimLocked() {
	if len(e.history) <= e.historyLimit {
		return
	}
	evicted := len(e.history) - e.historyLimit
	e.history = append(e.history[:0:0], e.history[evicted:]...)
	e.log.Debug("evicted oldest conversation turns", "evicted", evicted, "limit", e.historyLimit)
}
