package repository

import (
	"context"

	"documind/internal/model"
)

// DocumentRepository defines data access for document records using SQL queries only.
// Records are immutable: there is no update, and rows go away only through DeleteAll.
type DocumentRepository interface {
	// Create inserts a new record and returns it as stored.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a record by its ID.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// List returns a filtered, sorted page of records and the total match count.
	List(ctx context.Context, f DocumentFilter) (*PageResult[model.Document], error)

	// DeleteAll removes every record and returns how many were deleted.
	DeleteAll(ctx context.Context) (int64, error)
}

// Sort keys accepted by DocumentFilter.Sort.
const (
	SortDate    = "date"
	SortTitle   = "title"
	SortUrgency = "urgency"
	SortType    = "type"
)

// DocumentFilter narrows a listing. Empty fields do not filter.
// Query matches title, summary or any tag, case-insensitively.
type DocumentFilter struct {
	Query      string
	Type       string
	Department string
	Language   string
	Urgency    model.Urgency
	Category   model.Category
	Sort       string
	PageQuery
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
