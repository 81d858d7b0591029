package geocode

import (
	"context"
	"errors"
	"fmt"
)

// Coordinates is a WGS84 point.
type Coordinates struct {
	Longitude float64
	Latitude  float64
}

// Geocoder resolves a free-text place name to coordinates.
type Geocoder interface {
	Resolve(ctx context.Context, place string) (Coordinates, error)
}

// ErrNoMatch is returned when the geocoding service finds zero features for
// the place text. Callers decide whether that is fatal or a soft failure.
var ErrNoMatch = errors.New("geocode: no matching features")

// ServiceError is a transport failure or non-success HTTP status from the
// geocoding service. Status is zero when the request never completed.
type ServiceError struct {
	Status int
	Err    error
}

func (e *ServiceError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("geocode: service returned status %d", e.Status)
	}
	return "geocode: request failed: " + e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
