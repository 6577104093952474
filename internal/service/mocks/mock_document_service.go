package mocks

import (
	"context"
	"io"

	"documind/internal/handoff"
	"documind/internal/model"
	"documind/internal/pipeline"
	"documind/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64) (*pipeline.Run, error) {
	args := m.Called(ctx, r, originalFilename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pipeline.Run), args.Error(1)
}

func (m *MockDocumentService) List(ctx context.Context, p service.ListParams) (*service.DocumentListResult, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DocumentListResult), args.Error(1)
}

func (m *MockDocumentService) Get(ctx context.Context, id string) (*model.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) TakeHandoff(ctx context.Context) (*handoff.Entry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*handoff.Entry), args.Error(1)
}

func (m *MockDocumentService) SourceURL(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentService) Insights(ctx context.Context, id string) (*service.Insights, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Insights), args.Error(1)
}

func (m *MockDocumentService) Classify(text string) model.Category {
	args := m.Called(text)
	return args.Get(0).(model.Category)
}

func (m *MockDocumentService) Reset(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDocumentService) Runs() []pipeline.Run {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]pipeline.Run)
}

func (m *MockDocumentService) Run(id string) (*pipeline.Run, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pipeline.Run), args.Error(1)
}

func (m *MockDocumentService) RetryRun(id string) (*pipeline.Run, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pipeline.Run), args.Error(1)
}

func (m *MockDocumentService) CancelRun(id string) error {
	args := m.Called(id)
	return args.Error(0)
}
