package mocks

import (
	"context"

	"documind/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockTurnRepository struct {
	mock.Mock
}

func (m *MockTurnRepository) Append(ctx context.Context, turn *model.Turn) error {
	args := m.Called(ctx, turn)
	return args.Error(0)
}

func (m *MockTurnRepository) ListBySession(ctx context.Context, sessionID string) ([]model.Turn, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Turn), args.Error(1)
}

func (m *MockTurnRepository) DeleteSession(ctx context.Context, sessionID string) (int64, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(int64), args.Error(1)
}
