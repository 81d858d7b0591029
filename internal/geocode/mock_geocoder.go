package geocode

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockGeocoder is a mock implementation of Geocoder using testify/mock.
type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Resolve(ctx context.Context, place string) (Coordinates, error) {
	args := m.Called(ctx, place)
	return args.Get(0).(Coordinates), args.Error(1)
}
