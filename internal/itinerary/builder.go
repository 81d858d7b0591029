package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"trip-agent/internal/geocode"
	"trip-agent/internal/llm"
)

// generationTemperature trades a little determinism for varied activity
// picks across requests.
const generationTemperature = 0.7

// Builder generates itineraries: prompt, schema-constrained generation,
// validation, then per-activity coordinate enrichment.
type Builder struct {
	generator llm.Client
	geocoder  geocode.Geocoder
	log       *slog.Logger
}

// NewBuilder wires a Builder from its collaborators.
func NewBuilder(generator llm.Client, geocoder geocode.Geocoder, log *slog.Logger) *Builder {
	return &Builder{
		generator: generator,
		geocoder:  geocoder,
		log:       log,
	}
}

// Build generates and enriches an itinerary. Inputs are assumed valid: the
// request boundary rejects non-positive durations and empty interests.
// Validation failures surface as ValidationError before any geocoding call.
func (b *Builder) Build(ctx context.Context, destination string, duration int, interests []string, digest string) (*Itinerary, error) {
	prompt := buildPrompt(destination, duration, interests, digest)
	raw, err := b.generator.Generate(ctx, prompt, ResponseSchema, generationTemperature)
	if err != nil {
		return nil, err
	}

	it, err := Parse(raw, duration)
	if err != nil {
		return nil, err
	}

	if err := b.enrich(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// enrich attaches coordinates to every activity. Queries are qualified with
// the destination to disambiguate same-named places across cities. A lookup
// with no match leaves that activity's coordinates unset and moves on; a
// geocoding service failure aborts the build.
func (b *Builder) enrich(ctx context.Context, it *Itinerary) error {
	for di := range it.Days {
		for ai := range it.Days[di].Schedule {
			activity := &it.Days[di].Schedule[ai]
			place := fmt.Sprintf("%s, %s", activity.LocationName, it.Destination)
			coords, err := b.geocoder.Resolve(ctx, place)
			switch {
			case errors.Is(err, geocode.ErrNoMatch):
				b.log.Warn("no geocoding match; leaving coordinates unset",
					"location", activity.LocationName, "day", it.Days[di].Day)
			case err != nil:
				return fmt.Errorf("geocode %q: %w", place, err)
			default:
				lon, lat := coords.Longitude, coords.Latitude
				activity.Longitude = &lon
				activity.Latitude = &lat
			}
		}
	}
	return nil
}
