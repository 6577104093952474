// Package handoff holds the single pending record waiting to be shown after processing.
package handoff

import (
	"context"
	"sync"
	"time"

	"documind/internal/model"
)

// Entry is the pending record and the end of its highlight window.
type Entry struct {
	Document       model.Document `json:"document"`
	HighlightUntil time.Time      `json:"highlight_until"`
}

// Slot holds at most one Entry. Put overwrites, Take returns and clears.
// Take returns nil when the slot is empty.
type Slot interface {
	Put(ctx context.Context, e Entry) error
	Take(ctx context.Context) (*Entry, error)
	Clear(ctx context.Context) error
}

// Memory is an in-process Slot.
type Memory struct {
	mu    sync.Mutex
	entry *Entry
}

var _ Slot = (*Memory)(nil)

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Put(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entry = &e
	return nil
}

func (m *Memory) Take(_ context.Context) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.entry
	m.entry = nil
	return e, nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entry = nil
	return nil
}
