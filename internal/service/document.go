package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"documind/internal/classify"
	"documind/internal/extract"
	"documind/internal/handoff"
	"documind/internal/model"
	"documind/internal/pipeline"
	"documind/internal/registry"
	"documind/internal/repository"
	"documind/internal/storage"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("document not found")
	ErrReaderNil  = errors.New("reader is nil")
	ErrNoSource   = errors.New("document has no stored source")
)

// SourceURLExpiry is how long a presigned source link stays valid.
const SourceURLExpiry = 15 * time.Minute

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// ListParams narrows and orders a document listing. Empty fields do not filter.
type ListParams struct {
	Query      string
	Type       string
	Department string
	Language   string
	Urgency    model.Urgency
	Category   model.Category
	Sort       string
	Limit      int
	Offset     int
}

// Insights routes a record to its category dashboard.
type Insights struct {
	DocumentID     string         `json:"document_id"`
	Title          string         `json:"title"`
	Dashboard      model.Category `json:"dashboard"`
	MatchedKeyword string         `json:"matched_keyword,omitempty"`
	Views          []string       `json:"views"`
	Summary        string         `json:"summary"`
	KeyPoints      []string       `json:"key_points"`
	AnalyticsReady bool           `json:"analytics_ready"`
}

// DashboardViews are the views every category dashboard offers.
var DashboardViews = []string{"summary", "graphs", "kpis"}

// Runs is the ingestion pipeline as seen by the service.
type Runs interface {
	Submit(f pipeline.File) pipeline.Run
	Get(id string) (pipeline.Run, error)
	List() []pipeline.Run
	Retry(id string) (pipeline.Run, error)
	Cancel(id string) error
}

// Records is the document registry as seen by the service.
type Records interface {
	Get(ctx context.Context, id string) (*model.Document, error)
	List(ctx context.Context, f repository.DocumentFilter) (*repository.PageResult[model.Document], error)
	TakeHandoff(ctx context.Context) (*handoff.Entry, error)
	Reset(ctx context.Context) (int64, error)
}

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// Upload stores the content under documents/<uuid><ext> and submits a pipeline run for it.
	// Unsupported types are rejected before anything is stored.
	Upload(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64) (*pipeline.Run, error)

	// List returns a filtered, sorted page of records and a total count.
	List(ctx context.Context, p ListParams) (*DocumentListResult, error)

	// Get returns a single record by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// TakeHandoff returns the record waiting to be shown, or nil.
	TakeHandoff(ctx context.Context) (*handoff.Entry, error)

	// SourceURL returns a presigned download link for the file a record was built from.
	SourceURL(ctx context.Context, id string) (string, error)

	// Insights picks the category dashboard for a record.
	Insights(ctx context.Context, id string) (*Insights, error)

	// Classify routes free text to a category.
	Classify(text string) model.Category

	// Reset clears the registry and the pending handoff.
	Reset(ctx context.Context) (int64, error)

	Runs() []pipeline.Run
	Run(id string) (*pipeline.Run, error)
	RetryRun(id string) (*pipeline.Run, error)
	CancelRun(id string) error
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store   storage.Storage
	records Records
	runs    Runs
	router  *classify.Router
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, records Records, runs Runs, router *classify.Router) DocumentService {
	if router == nil {
		router = classify.NewRouter()
	}
	return &documentService{store: store, records: records, runs: runs, router: router}
}

func (s *documentService) Upload(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64) (*pipeline.Run, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if err := extract.CheckSupported(originalFilename, contentType); err != nil {
		return nil, err
	}

	ext := filepath.Ext(originalFilename)
	key := filepath.ToSlash(filepath.Join("documents", uuid.New().String()+ext))

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}
	if objInfo.Key == "" {
		objInfo.Key = key
	}
	if objInfo.Size <= 0 {
		objInfo.Size = size
	}

	run := s.runs.Submit(pipeline.File{
		Name:        originalFilename,
		ContentType: contentType,
		Size:        objInfo.Size,
		Key:         objInfo.Key,
		UploadedBy:  pipeline.DefaultUploader,
	})
	return &run, nil
}

func (s *documentService) List(ctx context.Context, p ListParams) (*DocumentListResult, error) {
	if p.Limit <= 0 {
		p.Limit = 10
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Sort == "" {
		p.Sort = repository.SortDate
	}

	res, err := s.records.List(ctx, repository.DocumentFilter{
		Query:      p.Query,
		Type:       p.Type,
		Department: p.Department,
		Language:   p.Language,
		Urgency:    p.Urgency,
		Category:   p.Category,
		Sort:       p.Sort,
		PageQuery:  repository.PageQuery{Limit: p.Limit, Offset: p.Offset},
	})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.records.Get(ctx, id)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) || errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) TakeHandoff(ctx context.Context) (*handoff.Entry, error) {
	return s.records.TakeHandoff(ctx)
}

func (s *documentService) SourceURL(ctx context.Context, id string) (string, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if doc.SourceKey == "" {
		return "", ErrNoSource
	}
	u, err := s.store.PresignGet(ctx, doc.SourceKey, SourceURLExpiry)
	if err != nil {
		return "", fmt.Errorf("presign source: %w", err)
	}
	return u, nil
}

func (s *documentService) Insights(ctx context.Context, id string) (*Insights, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	dashboard, kw := s.router.Matched(doc.Title)
	return &Insights{
		DocumentID:     doc.ID,
		Title:          doc.Title,
		Dashboard:      dashboard,
		MatchedKeyword: kw,
		Views:          DashboardViews,
		Summary:        doc.Summary,
		KeyPoints:      doc.KeyPoints,
		AnalyticsReady: doc.AnalyticsReady,
	}, nil
}

func (s *documentService) Classify(text string) model.Category {
	return s.router.Route(text)
}

func (s *documentService) Reset(ctx context.Context) (int64, error) {
	return s.records.Reset(ctx)
}

func (s *documentService) Runs() []pipeline.Run {
	return s.runs.List()
}

func (s *documentService) Run(id string) (*pipeline.Run, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	run, err := s.runs.Get(id)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (s *documentService) RetryRun(id string) (*pipeline.Run, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	run, err := s.runs.Retry(id)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (s *documentService) CancelRun(id string) error {
	if id == "" {
		return ErrIDRequired
	}
	return s.runs.Cancel(id)
}
