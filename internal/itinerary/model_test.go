package itinerary

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

// The worked example from the generation prompt doubles as the canonical
// two-day fixture.
func TestParseExample(t *testing.T) {
	it, err := Parse(exampleItinerary, 2)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if it.Destination != "Japan" {
		t.Errorf("expected destination Japan, got %q", it.Destination)
	}
	if it.TripDuration != 2 || len(it.Days) != 2 {
		t.Fatalf("expected 2 days, got trip_duration=%d len=%d", it.TripDuration, len(it.Days))
	}
	for i, day := range it.Days {
		if day.Day != i+1 {
			t.Errorf("expected day %d, got %d", i+1, day.Day)
		}
	}
	if len(it.Days[0].Schedule) != 5 {
		t.Errorf("expected 5 activities on day 1, got %d", len(it.Days[0].Schedule))
	}
	for _, day := range it.Days {
		for _, activity := range day.Schedule {
			if len(activity.Description) < MinDescriptionLen {
				t.Errorf("description under %d chars for %q", MinDescriptionLen, activity.LocationName)
			}
			if activity.Longitude != nil || activity.Latitude != nil {
				t.Errorf("coordinates must be unset before enrichment for %q", activity.LocationName)
			}
		}
	}
}

func TestParseDayCountMismatch(t *testing.T) {
	_, err := Parse(exampleItinerary, 3)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse("not even json", 1)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestParseShortDescription(t *testing.T) {
	raw := `{
		"destination": "Japan",
		"trip_duration": 1,
		"itinerary": [
			{"day": 1, "schedule": [{"location_name": "Ueno Park", "description": "Too short."}]}
		]
	}`
	_, err := Parse(raw, 1)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError for short description, got %v", err)
	}
}

func TestParseMissingLocationName(t *testing.T) {
	raw := `{
		"destination": "Japan",
		"trip_duration": 1,
		"itinerary": [
			{"day": 1, "schedule": [{"description": "A long enough description that clears the fifty character minimum."}]}
		]
	}`
	if _, err := Parse(raw, 1); err == nil {
		t.Fatal("expected error for missing location_name")
	}
}

func TestParseEmptySchedule(t *testing.T) {
	raw := `{"destination": "Japan", "trip_duration": 1, "itinerary": [{"day": 1, "schedule": []}]}`
	if _, err := Parse(raw, 1); err == nil {
		t.Fatal("expected error for empty schedule")
	}
}

func TestParseNonContiguousDays(t *testing.T) {
	raw := strings.Replace(exampleItinerary, `"day": 2`, `"day": 3`, 1)
	_, err := Parse(raw, 2)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError for gap in day numbers, got %v", err)
	}

	raw = strings.Replace(exampleItinerary, `"day": 2`, `"day": 1`, 1)
	if _, err := Parse(raw, 2); err == nil {
		t.Fatal("expected error for duplicate day numbers")
	}
}

func TestParseSingleDay(t *testing.T) {
	raw := `{
		"destination": "Iceland",
		"trip_duration": 1,
		"itinerary": [
			{"day": 1, "schedule": [
				{"location_name": "Blue Lagoon", "description": "Soak in the geothermal waters of the Blue Lagoon and book the in-water silica mud mask."}
			]}
		]
	}`
	it, err := Parse(raw, 1)
	if err != nil {
		t.Fatalf("single-day itinerary should be valid: %v", err)
	}
	if len(it.Days) != 1 {
		t.Errorf("expected 1 day, got %d", len(it.Days))
	}
}

// Strict structured outputs reject any object schema that does not declare
// additionalProperties=false, so every nested object must carry it.
func TestResponseSchemaObjectsDisallowUnknownFields(t *testing.T) {
	assertStrictObjects(t, ResponseSchema.Definition)
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

func TestItineraryJSONRoundTrip(t *testing.T) {
	it, err := Parse(exampleItinerary, 2)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	lon, lat := 139.767, 35.681
	it.Days[0].Schedule[0].Longitude = &lon
	it.Days[0].Schedule[0].Latitude = &lat

	data, err := json.Marshal(it)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Itinerary
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(*it, back) {
		t.Error("itinerary changed across a JSON round trip")
	}
}
