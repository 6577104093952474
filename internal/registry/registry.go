// Package registry is the owned store of finished document records.
package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/phuslu/log"
	"github.com/prometheus/client_golang/prometheus"

	"documind/internal/clock"
	"documind/internal/handoff"
	"documind/internal/logging"
	"documind/internal/model"
	"documind/internal/repository"
)

var (
	ErrNotFound        = errors.New("document not found")
	ErrInvalidDocument = errors.New("invalid document")
)

// Subscriber is notified after a record has been committed.
type Subscriber func(ctx context.Context, doc model.Document)

// Registry serializes writes through a single lock and notifies subscribers in
// registration order once each write commits. Reads go straight to the repository.
type Registry struct {
	repo      repository.DocumentRepository
	slot      handoff.Slot
	clock     clock.Clock
	highlight time.Duration
	log       *log.Logger

	mu   sync.Mutex
	subs []Subscriber
}

// Option customizes a Registry.
type Option func(*Registry)

func WithClock(c clock.Clock) Option { return func(r *Registry) { r.clock = c } }

// WithHighlight sets how long a newly appended record is flagged in the handoff slot.
func WithHighlight(d time.Duration) Option { return func(r *Registry) { r.highlight = d } }

func WithLogger(l *log.Logger) Option { return func(r *Registry) { r.log = l } }

// New builds a Registry over repo, publishing new records to slot.
func New(repo repository.DocumentRepository, slot handoff.Slot, opts ...Option) *Registry {
	r := &Registry{
		repo:      repo,
		slot:      slot,
		clock:     clock.Real(),
		highlight: 3 * time.Second,
		log:       logging.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Subscribe registers s for every future Append.
func (r *Registry) Subscribe(s Subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = append(r.subs, s)
}

// Append stores doc, places it in the handoff slot and notifies subscribers.
func (r *Registry) Append(ctx context.Context, doc model.Document) (model.Document, error) {
	if doc.ID == "" {
		return model.Document{}, fmt.Errorf("%w: id is required", ErrInvalidDocument)
	}
	if !doc.Category.Valid() {
		return model.Document{}, fmt.Errorf("%w: category %q", ErrInvalidDocument, doc.Category)
	}
	if !doc.Urgency.Valid() {
		return model.Document{}, fmt.Errorf("%w: urgency %q", ErrInvalidDocument, doc.Urgency)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, err := r.repo.Create(ctx, &doc)
	if err != nil {
		return model.Document{}, fmt.Errorf("create document: %w", err)
	}

	entry := handoff.Entry{Document: *stored, HighlightUntil: r.clock.Now().Add(r.highlight)}
	if err := r.slot.Put(ctx, entry); err != nil {
		r.log.Warn().Str("component", "registry").Str("event", "handoff_put_failed").
			Str("document_id", stored.ID).Err(err).Msg("")
	}

	for _, s := range r.subs {
		s(ctx, *stored)
	}

	r.log.Info().Str("component", "registry").Str("event", "document_registered").
		Str("document_id", stored.ID).Str("category", string(stored.Category)).Msg("")
	return *stored, nil
}

// Get returns a record by ID.
func (r *Registry) Get(ctx context.Context, id string) (*model.Document, error) {
	doc, err := r.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// List returns a filtered page of records.
func (r *Registry) List(ctx context.Context, f repository.DocumentFilter) (*repository.PageResult[model.Document], error) {
	return r.repo.List(ctx, f)
}

// TakeHandoff returns the pending record and clears the slot. Nil means nothing is pending.
func (r *Registry) TakeHandoff(ctx context.Context) (*handoff.Entry, error) {
	return r.slot.Take(ctx)
}

// Reset removes every record and the pending handoff.
func (r *Registry) Reset(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, err := r.repo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete documents: %w", err)
	}
	if err := r.slot.Clear(ctx); err != nil {
		return n, fmt.Errorf("clear handoff: %w", err)
	}
	r.log.Info().Str("component", "registry").Str("event", "registry_reset").Int64("deleted", n).Msg("")
	return n, nil
}

// CategoryCounter returns a Subscriber counting registered records per category.
func CategoryCounter(reg prometheus.Registerer) (Subscriber, error) {
	c := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "documents_registered_total",
			Help: "Document records registered, by category.",
		},
		[]string{"category"},
	)
	if err := reg.Register(c); err != nil {
		return nil, err
	}
	return func(_ context.Context, doc model.Document) {
		c.WithLabelValues(string(doc.Category)).Inc()
	}, nil
}
