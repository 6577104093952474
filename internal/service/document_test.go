package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"documind/internal/extract"
	"documind/internal/handoff"
	"documind/internal/model"
	"documind/internal/pipeline"
	pipeMocks "documind/internal/pipeline/mocks"
	"documind/internal/registry"
	regMocks "documind/internal/registry/mocks"
	"documind/internal/repository"
	"documind/internal/storage"
	storeMocks "documind/internal/storage/mocks"
)

func TestDocumentService_Upload(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name             string
		originalFilename string
		contentType      string
		size             int64
		setupMocks       func(mStore *storeMocks.MockStorage, mRuns *pipeMocks.MockEngine) io.Reader
		wantErr          error
		wantErrMsg       string
	}{
		{
			name:             "happy path",
			originalFilename: "KMRL_Auction.pdf",
			contentType:      "application/pdf",
			size:             11,
			setupMocks: func(mStore *storeMocks.MockStorage, mRuns *pipeMocks.MockEngine) io.Reader {
				r := strings.NewReader("hello world")
				mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "documents/") && strings.HasSuffix(key, ".pdf")
				}), r, storage.PutObjectOptions{
					Size:        11,
					ContentType: "application/pdf",
					Metadata:    map[string]string{"original-filename": "KMRL_Auction.pdf"},
				}).Return(storage.ObjectInfo{
					Key:         "documents/uuid.pdf",
					Size:        11,
					ContentType: "application/pdf",
				}, nil)

				mRuns.On("Submit", pipeline.File{
					Name:        "KMRL_Auction.pdf",
					ContentType: "application/pdf",
					Size:        11,
					Key:         "documents/uuid.pdf",
					UploadedBy:  pipeline.DefaultUploader,
				}).Return(pipeline.Run{ID: "run-1", Stage: pipeline.StageFetching, Progress: 10})

				return r
			},
		},
		{
			name:             "validation error - nil reader",
			originalFilename: "test.txt",
			setupMocks: func(mStore *storeMocks.MockStorage, mRuns *pipeMocks.MockEngine) io.Reader {
				return nil
			},
			wantErr: ErrReaderNil,
		},
		{
			name:             "unsupported type creates no run",
			originalFilename: "photo.png",
			contentType:      "image/png",
			size:             5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRuns *pipeMocks.MockEngine) io.Reader {
				return strings.NewReader("hello")
			},
			wantErr: extract.ErrUnsupportedType,
		},
		{
			name:             "storage error",
			originalFilename: "test.txt",
			contentType:      "text/plain",
			size:             5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRuns *pipeMocks.MockEngine) io.Reader {
				r := strings.NewReader("hello")
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("storage fail"))
				return r
			},
			wantErrMsg: "upload to storage: storage fail",
		},
		{
			name:             "store reports no key",
			originalFilename: "notes.md",
			contentType:      "",
			size:             5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRuns *pipeMocks.MockEngine) io.Reader {
				r := strings.NewReader("hello")
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{}, nil)
				mRuns.On("Submit", mock.MatchedBy(func(f pipeline.File) bool {
					return strings.HasPrefix(f.Key, "documents/") && strings.HasSuffix(f.Key, ".md") && f.Size == 5
				})).Return(pipeline.Run{ID: "run-2"})
				return r
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRuns := new(pipeMocks.MockEngine)
			svc := NewDocumentService(mStore, new(regMocks.MockRegistry), mRuns, nil)

			r := tt.setupMocks(mStore, mRuns)

			run, err := svc.Upload(ctx, r, tt.originalFilename, tt.contentType, tt.size)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, run)
			} else if tt.wantErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, run)
			}

			mStore.AssertExpectations(t)
			mRuns.AssertExpectations(t)
		})
	}
}

func TestDocumentService_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		params     ListParams
		setupMocks func(mRecords *regMocks.MockRegistry)
		wantErr    error
		checkRes   func(t *testing.T, res *DocumentListResult)
	}{
		{
			name:   "filters pass through",
			params: ListParams{Query: "auction", Urgency: model.UrgencyReview, Category: model.CategoryAuction, Sort: repository.SortUrgency, Limit: 5, Offset: 5},
			setupMocks: func(mRecords *regMocks.MockRegistry) {
				mRecords.On("List", ctx, repository.DocumentFilter{
					Query:     "auction",
					Urgency:   model.UrgencyReview,
					Category:  model.CategoryAuction,
					Sort:      repository.SortUrgency,
					PageQuery: repository.PageQuery{Limit: 5, Offset: 5},
				}).Return(&repository.PageResult[model.Document]{
					Items: []model.Document{{ID: "1"}, {ID: "2"}},
					Total: 7,
				}, nil)
			},
			checkRes: func(t *testing.T, res *DocumentListResult) {
				assert.Equal(t, 2, len(res.Items))
				assert.Equal(t, 7, res.Total)
			},
		},
		{
			name:   "pagination boundary - zero limit uses default",
			params: ListParams{Limit: 0, Offset: -1},
			setupMocks: func(mRecords *regMocks.MockRegistry) {
				mRecords.On("List", ctx, repository.DocumentFilter{
					Sort:      repository.SortDate,
					PageQuery: repository.PageQuery{Limit: 10, Offset: 0},
				}).Return(&repository.PageResult[model.Document]{Items: []model.Document{}, Total: 0}, nil)
			},
		},
		{
			name:   "repository error",
			params: ListParams{Limit: 10},
			setupMocks: func(mRecords *regMocks.MockRegistry) {
				mRecords.On("List", ctx, mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRecords := new(regMocks.MockRegistry)
			svc := NewDocumentService(nil, mRecords, new(pipeMocks.MockEngine), nil)

			tt.setupMocks(mRecords)

			res, err := svc.List(ctx, tt.params)

			if tt.wantErr != nil {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.checkRes != nil {
					tt.checkRes(t, res)
				}
			}
			mRecords.AssertExpectations(t)
		})
	}
}

func TestDocumentService_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		setupMocks func(mRecords *regMocks.MockRegistry)
		wantErr    error
	}{
		{
			name: "happy path",
			id:   "valid-id",
			setupMocks: func(mRecords *regMocks.MockRegistry) {
				mRecords.On("Get", ctx, "valid-id").Return(&model.Document{ID: "valid-id"}, nil)
			},
		},
		{
			name:       "validation - empty id",
			id:         "",
			setupMocks: func(mRecords *regMocks.MockRegistry) {},
			wantErr:    ErrIDRequired,
		},
		{
			name: "not found - mapping registry error",
			id:   "missing-id",
			setupMocks: func(mRecords *regMocks.MockRegistry) {
				mRecords.On("Get", ctx, "missing-id").Return(nil, registry.ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "not found - mapping sql.ErrNoRows",
			id:   "gone-id",
			setupMocks: func(mRecords *regMocks.MockRegistry) {
				mRecords.On("Get", ctx, "gone-id").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "generic repository error",
			id:   "error-id",
			setupMocks: func(mRecords *regMocks.MockRegistry) {
				mRecords.On("Get", ctx, "error-id").Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRecords := new(regMocks.MockRegistry)
			svc := NewDocumentService(nil, mRecords, new(pipeMocks.MockEngine), nil)

			tt.setupMocks(mRecords)

			doc, err := svc.Get(ctx, tt.id)

			if tt.wantErr != nil {
				if errors.Is(tt.wantErr, ErrIDRequired) || errors.Is(tt.wantErr, ErrNotFound) {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.Error(t, err)
				}
				assert.Nil(t, doc)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, doc)
				assert.Equal(t, tt.id, doc.ID)
			}
			mRecords.AssertExpectations(t)
		})
	}
}

func TestDocumentService_Insights(t *testing.T) {
	ctx := context.Background()
	mRecords := new(regMocks.MockRegistry)
	svc := NewDocumentService(nil, mRecords, new(pipeMocks.MockEngine), nil)

	mRecords.On("Get", ctx, "doc-1").Return(&model.Document{
		ID:             "doc-1",
		Title:          "KMRL Public Auction Notice - Movable Property",
		Summary:        "Auction of surplus items.",
		AnalyticsReady: true,
	}, nil)
	mRecords.On("Get", ctx, "doc-2").Return(&model.Document{ID: "doc-2", Title: "Track inspection"}, nil)

	ins, err := svc.Insights(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryAuction, ins.Dashboard)
	assert.Equal(t, "auction", ins.MatchedKeyword)
	assert.Equal(t, DashboardViews, ins.Views)
	assert.True(t, ins.AnalyticsReady)

	ins, err = svc.Insights(ctx, "doc-2")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryFinancial, ins.Dashboard)
	assert.Empty(t, ins.MatchedKeyword)
}

func TestDocumentService_SourceURL(t *testing.T) {
	ctx := context.Background()
	mStore := new(storeMocks.MockStorage)
	mRecords := new(regMocks.MockRegistry)
	svc := NewDocumentService(mStore, mRecords, new(pipeMocks.MockEngine), nil)

	mRecords.On("Get", ctx, "doc-1").Return(&model.Document{ID: "doc-1", SourceKey: "documents/a.pdf"}, nil)
	mRecords.On("Get", ctx, "doc-2").Return(&model.Document{ID: "doc-2"}, nil)
	mRecords.On("Get", ctx, "doc-3").Return(&model.Document{ID: "doc-3", SourceKey: "documents/c.pdf"}, nil)
	mStore.On("PresignGet", ctx, "documents/a.pdf", SourceURLExpiry).Return("http://minio/a.pdf?sig", nil)
	mStore.On("PresignGet", ctx, "documents/c.pdf", SourceURLExpiry).Return("", errors.New("signature error"))

	u, err := svc.SourceURL(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "http://minio/a.pdf?sig", u)

	_, err = svc.SourceURL(ctx, "doc-2")
	assert.ErrorIs(t, err, ErrNoSource)

	_, err = svc.SourceURL(ctx, "doc-3")
	assert.EqualError(t, err, "presign source: signature error")

	mStore.AssertExpectations(t)
}

func TestDocumentService_HandoffAndReset(t *testing.T) {
	ctx := context.Background()
	mRecords := new(regMocks.MockRegistry)
	svc := NewDocumentService(nil, mRecords, new(pipeMocks.MockEngine), nil)

	entry := &handoff.Entry{Document: model.Document{ID: "doc-1"}}
	mRecords.On("TakeHandoff", ctx).Return(entry, nil).Once()
	mRecords.On("TakeHandoff", ctx).Return(nil, nil).Once()
	mRecords.On("Reset", ctx).Return(int64(4), nil)

	got, err := svc.TakeHandoff(ctx)
	require.NoError(t, err)
	assert.Equal(t, "doc-1", got.Document.ID)

	got, err = svc.TakeHandoff(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	n, err := svc.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestDocumentService_Runs(t *testing.T) {
	mRuns := new(pipeMocks.MockEngine)
	svc := NewDocumentService(nil, new(regMocks.MockRegistry), mRuns, nil)

	mRuns.On("List").Return([]pipeline.Run{{ID: "b"}, {ID: "a"}})
	mRuns.On("Get", "a").Return(pipeline.Run{ID: "a", Stage: pipeline.StageError}, nil)
	mRuns.On("Get", "zz").Return(pipeline.Run{}, pipeline.ErrRunNotFound)
	mRuns.On("Retry", "a").Return(pipeline.Run{ID: "a", Stage: pipeline.StageFetching, Attempt: 2}, nil)
	mRuns.On("Retry", "b").Return(pipeline.Run{}, pipeline.ErrNotRetryable)
	mRuns.On("Cancel", "a").Return(nil)

	assert.Len(t, svc.Runs(), 2)

	run, err := svc.Run("a")
	require.NoError(t, err)
	assert.Equal(t, pipeline.StageError, run.Stage)

	_, err = svc.Run("zz")
	assert.ErrorIs(t, err, pipeline.ErrRunNotFound)

	_, err = svc.Run("")
	assert.ErrorIs(t, err, ErrIDRequired)

	run, err = svc.RetryRun("a")
	require.NoError(t, err)
	assert.Equal(t, 2, run.Attempt)

	_, err = svc.RetryRun("b")
	assert.ErrorIs(t, err, pipeline.ErrNotRetryable)

	assert.NoError(t, svc.CancelRun("a"))
	assert.ErrorIs(t, svc.CancelRun(""), ErrIDRequired)
	mRuns.AssertExpectations(t)
}

func TestDocumentService_Classify(t *testing.T) {
	svc := NewDocumentService(nil, new(regMocks.MockRegistry), new(pipeMocks.MockEngine), nil)

	assert.Equal(t, model.CategoryCompliance, svc.Classify("Quarterly AUDIT findings"))
	assert.Equal(t, model.CategoryFinancial, svc.Classify("lunch menu"))
}
