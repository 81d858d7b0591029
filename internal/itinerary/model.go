package itinerary

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"trip-agent/internal/llm"
)

// MinDescriptionLen is the minimum length of an activity description. The
// generation prompt states it and validation enforces it.
const MinDescriptionLen = 50

// Activity is a single stop in a day's schedule. Coordinates stay nil until
// geocoding enrichment succeeds; an activity is never dropped when it fails.
type Activity struct {
	LocationName string   `json:"location_name" validate:"required"`
	Description  string   `json:"description" validate:"required,min=50"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
}

// Day is one day of the trip with a non-empty ordered schedule.
type Day struct {
	Day      int        `json:"day" validate:"required,min=1"`
	Schedule []Activity `json:"schedule" validate:"required,min=1,dive"`
}

// Itinerary is a full trip plan. Days are numbered contiguously 1..N and
// their count equals TripDuration.
type Itinerary struct {
	Destination  string `json:"destination" validate:"required"`
	TripDuration int    `json:"trip_duration" validate:"required,min=1"`
	Days         []Day  `json:"itinerary" validate:"required,min=1,dive"`
}

// ValidationError means the model's output failed to parse or validate
// against the itinerary shape. The schema constraint is only a hint, so this
// is a normal failure mode, not a bug.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return "itinerary: invalid model output: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

var validate = validator.New()

// ResponseSchema steers generation toward the Itinerary JSON shape.
var ResponseSchema = llm.Schema{
	Name:        "Itinerary",
	Description: "A multi-day travel itinerary of geocodable activities.",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"destination":   map[string]any{"type": "string"},
			"trip_duration": map[string]any{"type": "integer"},
			"itinerary": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"day": map[string]any{"type": "integer"},
						"schedule": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"location_name": map[string]any{"type": "string"},
									"description":   map[string]any{"type": "string", "minLength": MinDescriptionLen},
								},
								"required":             []string{"location_name", "description"},
								"additionalProperties": false,
							},
						},
					},
					"required":             []string{"day", "schedule"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []string{"destination", "trip_duration", "itinerary"},
		"additionalProperties": false,
	},
}

// Parse decodes raw model output and validates it as an itinerary of exactly
// wantDuration days numbered 1..N. Any failure is a ValidationError.
func Parse(raw string, wantDuration int) (*Itinerary, error) {
	var it Itinerary
	if err := json.Unmarshal([]byte(raw), &it); err != nil {
		return nil, &ValidationError{Err: fmt.Errorf("decode: %w", err)}
	}
	if it.TripDuration != wantDuration {
		return nil, &ValidationError{Err: fmt.Errorf("trip_duration is %d, want %d", it.TripDuration, wantDuration)}
	}
	if err := Validate(&it); err != nil {
		return nil, err
	}
	return &it, nil
}

// Validate checks the structural invariants of an itinerary: required
// fields, minimum description length, non-empty schedules, day count equal
// to trip_duration, and day numbers contiguous from 1.
func Validate(it *Itinerary) error {
	if err := validate.Struct(it); err != nil {
		return &ValidationError{Err: err}
	}
	if len(it.Days) != it.TripDuration {
		return &ValidationError{Err: fmt.Errorf("got %d days, want %d", len(it.Days), it.TripDuration)}
	}
	for i, day := range it.Days {
		if day.Day != i+1 {
			return &ValidationError{Err: fmt.Errorf("day %d is numbered %d; days must be contiguous from 1", i+1, day.Day)}
		}
	}
	return nil
}
