package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"documind/internal/extract"
	"documind/internal/model"
)

var ErrNoFile = errors.New("no file provided for processing")

// action performs the work of a stage. It reads the job inputs and writes its
// outputs back onto the job; the engine applies them to the run afterwards.
type action func(ctx context.Context, e *Engine, j *job) error

// job is the unit handed to a worker for one due run.
type job struct {
	ctx     context.Context
	id      string
	attempt int
	stage   Stage
	file    File
	now     time.Time

	data     []byte
	text     string
	pages    int
	fallback bool
	analysis *model.Analysis
	category model.Category
	docID    string

	err error
}

func actFetch(ctx context.Context, e *Engine, j *job) error {
	if j.file.Key == "" {
		return ErrNoFile
	}
	data, err := e.deps.Source.Fetch(ctx, j.file.Key)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", j.file.Name, err)
	}
	j.data = data
	return nil
}

func actExtract(ctx context.Context, e *Engine, j *job) error {
	res, err := e.deps.Extractor.Extract(ctx, extract.Source{
		Name:        j.file.Name,
		ContentType: j.file.ContentType,
		Size:        j.file.Size,
		Data:        j.data,
	})
	if err != nil {
		return fmt.Errorf("extract %s: %w", j.file.Name, err)
	}
	j.text = res.Text
	j.pages = res.Pages
	j.fallback = res.Fallback
	return nil
}

func actAnalyze(ctx context.Context, e *Engine, j *job) error {
	a, err := e.deps.Analyzer.Analyze(ctx, j.file.Name, j.text)
	if err != nil {
		return fmt.Errorf("failed to analyze document: %w", err)
	}
	j.analysis = &a
	j.category = e.deps.Router.Route(a.Title)
	return nil
}

func actFinalize(ctx context.Context, e *Engine, j *job) error {
	if j.analysis == nil {
		return errors.New("finalize: analysis missing")
	}
	doc := BuildDocument(e.newID(), j.file, *j.analysis, j.category, j.pages, j.now)
	stored, err := e.deps.Sink.Append(ctx, doc)
	if err != nil {
		return fmt.Errorf("store document: %w", err)
	}
	j.docID = stored.ID
	return nil
}

// DefaultUploader is recorded when the submitter is unknown.
const DefaultUploader = "Manual Upload"

// BuildDocument assembles the immutable record for a finished analysis.
func BuildDocument(id string, f File, a model.Analysis, c model.Category, pages int, now time.Time) model.Document {
	uploader := f.UploadedBy
	if uploader == "" {
		uploader = DefaultUploader
	}
	return model.Document{
		ID:             id,
		Title:          a.Title,
		Category:       c,
		Type:           a.Type,
		Department:     a.Department,
		Date:           a.Date,
		Language:       a.Language,
		Urgency:        model.UrgencyFromAnalysis(a.Urgency),
		Summary:        a.Summary,
		Tags:           Tags(a, c),
		KeyPoints:      a.KeyPoints,
		Entities:       a.Entities,
		AnalyticsReady: a.AnalyticsReady,
		UploadedBy:     uploader,
		SourceKey:      f.Key,
		FileType:       fileType(f),
		FileSize:       extract.HumanSize(f.Size),
		Pages:          pages,
		CreatedAt:      now,
	}
}

// Tags lists record tags in display order. Duplicates are kept.
func Tags(a model.Analysis, c model.Category) []string {
	tags := []string{"AI-Processed", a.Type}
	if a.AnalyticsReady {
		tags = append(tags, "Analytics-Ready")
	}
	return append(tags, "KMRL", string(c)+" Notice")
}

func fileType(f File) string {
	if strings.EqualFold(f.ContentType, extract.ContentTypePDF) {
		return "PDF"
	}
	if ext := strings.TrimPrefix(filepath.Ext(f.Name), "."); ext != "" {
		return strings.ToUpper(ext)
	}
	return "TEXT"
}

func newUUID() string { return uuid.NewString() }
