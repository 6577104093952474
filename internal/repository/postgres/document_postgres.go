package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"documind/internal/model"
	"documind/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `id, title, category, doc_type, department, doc_date, language, urgency, summary,
		tags, key_points, entities, analytics_ready, uploaded_by, source_key, file_type, file_size, pages, created_at`

// orderings maps accepted sort keys to fixed ORDER BY clauses.
var orderings = map[string]string{
	repository.SortDate:  "created_at DESC, id DESC",
	repository.SortTitle: "title ASC, created_at DESC",
	repository.SortType:  "doc_type ASC, created_at DESC",
	repository.SortUrgency: "CASE urgency WHEN 'Critical' THEN 3 WHEN 'Review' THEN 2 WHEN 'Info' THEN 1 ELSE 0 END DESC, " +
		"created_at DESC",
}

type rowScanner interface {
	Scan(dest ...any) error
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	tags, err := json.Marshal(nonNil(doc.Tags))
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}
	keyPoints, err := json.Marshal(nonNil(doc.KeyPoints))
	if err != nil {
		return nil, fmt.Errorf("encode key points: %w", err)
	}
	entities, err := json.Marshal(doc.Entities)
	if err != nil {
		return nil, fmt.Errorf("encode entities: %w", err)
	}

	q := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.Title,
		string(doc.Category),
		doc.Type,
		doc.Department,
		doc.Date,
		doc.Language,
		string(doc.Urgency),
		doc.Summary,
		tags,
		keyPoints,
		entities,
		doc.AnalyticsReady,
		doc.UploadedBy,
		doc.SourceKey,
		doc.FileType,
		doc.FileSize,
		doc.Pages,
		doc.CreatedAt,
	)
	return scanDocument(row)
}

// FindByID fetches a single document by its ID. It returns sql.ErrNoRows when absent.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	q := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// List returns matching documents using LIMIT/OFFSET pagination and a total count.
func (r *DocumentPostgres) List(ctx context.Context, f repository.DocumentFilter) (*repository.PageResult[model.Document], error) {
	where, args := buildWhere(f)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	order, ok := orderings[f.Sort]
	if !ok {
		order = orderings[repository.SortDate]
	}
	n := len(args)
	qList := `SELECT ` + documentColumns + ` FROM documents` + where +
		` ORDER BY ` + order + fmt.Sprintf(` LIMIT $%d OFFSET $%d`, n+1, n+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, qList, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Document]{
		Items: items,
		Total: total,
	}, nil
}

// DeleteAll removes every document row.
func (r *DocumentPostgres) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func buildWhere(f repository.DocumentFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if q := strings.TrimSpace(f.Query); q != "" {
		add(`(title ILIKE $%[1]d OR summary ILIKE $%[1]d OR EXISTS (SELECT 1 FROM jsonb_array_elements_text(tags) AS t(tag) WHERE t.tag ILIKE $%[1]d))`, likePattern(q))
	}
	if f.Type != "" {
		add(`doc_type = $%d`, f.Type)
	}
	if f.Department != "" {
		add(`department = $%d`, f.Department)
	}
	if f.Language != "" {
		add(`language = $%d`, f.Language)
	}
	if f.Urgency != "" {
		add(`urgency = $%d`, string(f.Urgency))
	}
	if f.Category != "" {
		add(`category = $%d`, string(f.Category))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// likePattern escapes LIKE metacharacters and wraps q for substring matching.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}

func scanDocument(s rowScanner) (*model.Document, error) {
	var (
		d                         model.Document
		category, urgency         string
		tags, keyPoints, entities []byte
	)
	if err := s.Scan(
		&d.ID,
		&d.Title,
		&category,
		&d.Type,
		&d.Department,
		&d.Date,
		&d.Language,
		&urgency,
		&d.Summary,
		&tags,
		&keyPoints,
		&entities,
		&d.AnalyticsReady,
		&d.UploadedBy,
		&d.SourceKey,
		&d.FileType,
		&d.FileSize,
		&d.Pages,
		&d.CreatedAt,
	); err != nil {
		return nil, err
	}
	d.Category = model.Category(category)
	d.Urgency = model.Urgency(urgency)

	if err := unmarshalJSON(tags, &d.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	if err := unmarshalJSON(keyPoints, &d.KeyPoints); err != nil {
		return nil, fmt.Errorf("decode key points: %w", err)
	}
	if err := unmarshalJSON(entities, &d.Entities); err != nil {
		return nil, fmt.Errorf("decode entities: %w", err)
	}
	return &d, nil
}

func unmarshalJSON(b []byte, v any) error {
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, v)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
