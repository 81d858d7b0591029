package chat

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	"trip-agent/internal/llm"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSendAccumulatesHistory(t *testing.T) {
	gen := new(llm.MockClient)

	// Every Chat call must see the full history plus the system preamble.
	gen.On("Chat", mock.Anything, mock.MatchedBy(func(turns []llm.Turn) bool {
		return len(turns) == 2 && turns[0].Role == llm.RoleSystem && turns[1].Content == "I want to visit Japan"
	}), 0.7).Return("Great choice! How many days?", nil).Once()
	gen.On("Chat", mock.Anything, mock.MatchedBy(func(turns []llm.Turn) bool {
		return len(turns) == 4 && turns[3].Content == "Two days"
	}), 0.7).Return("Noted. What are you interested in?", nil).Once()

	e := NewExtractor(gen, discardLogger(), 0)

	reply, err := e.Send(t.Context(), "I want to visit Japan")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if reply != "Great choice! How many days?" {
		t.Errorf("unexpected reply %q", reply)
	}
	if _, err := e.Send(t.Context(), "Two days"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	history := e.History()
	if len(history) != 4 {
		t.Fatalf("expected 4 turns, got %d", len(history))
	}
	if history[0].Role != llm.RoleUser || history[1].Role != llm.RoleAssistant {
		t.Error("expected alternating user/assistant turns")
	}
	gen.AssertExpectations(t)
}

func TestSendKeepsUserTurnOnFailure(t *testing.T) {
	gen := new(llm.MockClient)

	gen.On("Chat", mock.Anything, mock.Anything, mock.Anything).
		Return("", &llm.GenerationError{Err: errors.New("model down")}).Once()

	e := NewExtractor(gen, discardLogger(), 0)
	_, err := e.Send(t.Context(), "hello")

	var genErr *llm.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	history := e.History()
	if len(history) != 1 || history[0].Content != "hello" {
		t.Fatalf("failed Send should keep the user turn, history=%v", history)
	}
}

func TestSendEvictsOldestTurns(t *testing.T) {
	gen := new(llm.MockClient)
	gen.On("Chat", mock.Anything, mock.Anything, mock.Anything).Return("ok", nil)

	e := NewExtractor(gen, discardLogger(), 4)
	for _, msg := range []string{"one", "two", "three"} {
		if _, err := e.Send(t.Context(), msg); err != nil {
			t.Fatalf("Send: %v", err)
		}
	}

	history := e.History()
	if len(history) != 4 {
		t.Fatalf("expected history capped at 4 turns, got %d", len(history))
	}
	if history[0].Content == "one" {
		t.Error("expected oldest turn to be evicted")
	}
	if history[len(history)-1].Content != "ok" {
		t.Errorf("expected latest assistant turn last, got %q", history[len(history)-1].Content)
	}
}

func TestExtractTripDetailsUsesWholeTranscript(t *testing.T) {
	gen := new(llm.MockClient)

	gen.On("Chat", mock.Anything, mock.Anything, mock.Anything).Return("sure", nil).Times(3)
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		// All three user turns (and replies) must be in the transcript.
		return strings.Contains(prompt, "I want to go to Japan") &&
			strings.Contains(prompt, "for two days") &&
			strings.Contains(prompt, "I love food and history") &&
			strings.Contains(prompt, "sure")
	}), mock.MatchedBy(func(s llm.Schema) bool {
		return s.Name == "TripDetails"
	}), 0.2).Return(`{"destination": "Japan", "duration": 2, "interests": ["food", "history"]}`, nil).Once()

	e := NewExtractor(gen, discardLogger(), 0)
	for _, msg := range []string{"I want to go to Japan", "for two days", "I love food and history"} {
		if _, err := e.Send(t.Context(), msg); err != nil {
			t.Fatalf("Send: %v", err)
		}
	}

	details, err := e.ExtractTripDetails(t.Context())
	if err != nil {
		t.Fatalf("ExtractTripDetails: %v", err)
	}
	if details.Destination != "Japan" || details.Duration != 2 {
		t.Errorf("unexpected details %+v", details)
	}
	if len(details.Interests) != 2 {
		t.Errorf("expected 2 interests, got %v", details.Interests)
	}

	// Extraction must not mutate the conversation.
	if got := len(e.History()); got != 6 {
		t.Errorf("expected history to stay at 6 turns after extraction, got %d", got)
	}
	gen.AssertExpectations(t)
}

func TestExtractTripDetailsInvalidOutput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "destination is Japan"},
		{"missing destination", `{"duration": 2, "interests": ["food"]}`},
		{"zero duration", `{"destination": "Japan", "duration": 0, "interests": ["food"]}`},
		{"empty interests", `{"destination": "Japan", "duration": 2, "interests": []}`},
		{"wrong type", `{"destination": "Japan", "duration": "two", "interests": ["food"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := new(llm.MockClient)
			gen.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(tt.raw, nil).Once()

			e := NewExtractor(gen, discardLogger(), 0)
			_, err := e.ExtractTripDetails(t.Context())

			var extractionErr *ExtractionError
			if !errors.As(err, &extractionErr) {
				t.Fatalf("expected ExtractionError, got %v", err)
			}
		})
	}
}

// Strict structured outputs reject any object schema that does not declare
// additionalProperties=false.
func TestTripDetailsSchemaObjectsDisallowUnknownFields(t *testing.T) {
	assertStrictObjects(t, tripDetailsSchema.Definition)
}

func assertStrictObjects(t *testing.T, node any) {
	t.Helper()
	obj, ok := node.(map[string]any)
	if !ok {
		return
	}
	if obj["type"] == "object" {
		if v, ok := obj["additionalProperties"].(bool); !ok || v {
			t.Errorf("object schema must set additionalProperties=false: %v", obj)
		}
	}
	for _, child := range obj {
		assertStrictObjects(t, child)
	}
}

func TestExtractTripDetailsGenerationFailure(t *testing.T) {
	gen := new(llm.MockClient)
	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", &llm.GenerationError{Err: errors.New("model down")}).Once()

	e := NewExtractor(gen, discardLogger(), 0)
	_, err := e.ExtractTripDetails(t.Context())

	var genErr *llm.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
}
