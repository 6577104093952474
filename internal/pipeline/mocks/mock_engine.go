package mocks

import (
	"documind/internal/pipeline"
	"github.com/stretchr/testify/mock"
)

type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Submit(f pipeline.File) pipeline.Run {
	args := m.Called(f)
	return args.Get(0).(pipeline.Run)
}

func (m *MockEngine) Get(id string) (pipeline.Run, error) {
	args := m.Called(id)
	return args.Get(0).(pipeline.Run), args.Error(1)
}

func (m *MockEngine) List() []pipeline.Run {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]pipeline.Run)
}

func (m *MockEngine) Retry(id string) (pipeline.Run, error) {
	args := m.Called(id)
	return args.Get(0).(pipeline.Run), args.Error(1)
}

func (m *MockEngine) Cancel(id string) error {
	args := m.Called(id)
	return args.Error(0)
}
