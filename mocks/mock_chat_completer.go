package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/srinathstart/HealthSyncAI/internal/llm"
)

// MockChatCompleter is a mock implementation of port.ChatCompleter.
type MockChatCompleter struct {
	mock.Mock
}

func (m *MockChatCompleter) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	args := m.Called(ctx, messages)
	return args.String(0), args.Error(1)
}

func (m *MockChatCompleter) Model() string {
	args := m.Called()
	return args.String(0)
}
