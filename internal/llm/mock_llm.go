package llm

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockClient is a mock implementation of Client using testify/mock.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) Chat(ctx context.Context, turns []Turn, temperature float64) (string, error) {
	args := m.Called(ctx, turns, temperature)
	return args.String(0), args.Error(1)
}

func (m *MockClient) Generate(ctx context.Context, prompt string, schema Schema, temperature float64) (string, error) {
	args := m.Called(ctx, prompt, schema, temperature)
	return args.String(0), args.Error(1)
}
