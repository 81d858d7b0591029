package posts

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockSearcher is a mock implementation of Searcher using testify/mock.
type MockSearcher struct {
	mock.Mock
}

func (m *MockSearcher) Search(ctx context.Context, query, community string, limit int) ([]Post, error) {
	args := m.Called(ctx, query, community, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Post), args.Error(1)
}
