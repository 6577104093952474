package mocks

import (
	"context"

	"documind/internal/model"
	"documind/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) Send(ctx context.Context, sessionID string, msg service.ChatMessage) (*model.Turn, error) {
	args := m.Called(ctx, sessionID, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Turn), args.Error(1)
}

func (m *MockChatService) History(ctx context.Context, sessionID string) ([]model.Turn, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Turn), args.Error(1)
}

func (m *MockChatService) Reset(ctx context.Context, sessionID string) (int64, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockChatService) Close() {
	m.Called()
}
