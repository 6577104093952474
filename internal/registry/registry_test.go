package registry

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"documind/internal/clock"
	"documind/internal/handoff"
	"documind/internal/model"
	"documind/internal/repository"
	repoMocks "documind/internal/repository/mocks"
)

var now = time.Date(2024, 12, 2, 9, 0, 0, 0, time.UTC)

func validDoc(id string) model.Document {
	return model.Document{ID: id, Title: "KMRL Auction", Category: model.CategoryAuction, Urgency: model.UrgencyReview}
}

func TestRegistry_Append(t *testing.T) {
	ctx := context.Background()
	repo := new(repoMocks.MockDocumentRepository)
	slot := handoff.NewMemory()
	reg := New(repo, slot, WithClock(clock.NewFake(now)), WithHighlight(3*time.Second))

	var order []string
	reg.Subscribe(func(_ context.Context, d model.Document) { order = append(order, "first:"+d.ID) })
	reg.Subscribe(func(_ context.Context, d model.Document) { order = append(order, "second:"+d.ID) })

	doc := validDoc("doc-1")
	repo.On("Create", ctx, mock.MatchedBy(func(d *model.Document) bool { return d.ID == "doc-1" })).
		Return(&doc, nil).Once()

	stored, err := reg.Append(ctx, doc)

	require.NoError(t, err)
	assert.Equal(t, "doc-1", stored.ID)
	assert.Equal(t, []string{"first:doc-1", "second:doc-1"}, order)

	entry, err := reg.TakeHandoff(ctx)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "doc-1", entry.Document.ID)
	assert.Equal(t, now.Add(3*time.Second), entry.HighlightUntil)

	entry, err = reg.TakeHandoff(ctx)
	require.NoError(t, err)
	assert.Nil(t, entry)
	repo.AssertExpectations(t)
}

func TestRegistry_AppendRejectsInvalid(t *testing.T) {
	repo := new(repoMocks.MockDocumentRepository)
	reg := New(repo, handoff.NewMemory())

	tests := []struct {
		name string
		doc  model.Document
	}{
		{name: "missing id", doc: model.Document{Category: model.CategoryHR, Urgency: model.UrgencyInfo}},
		{name: "unknown category", doc: model.Document{ID: "x", Category: "Misc", Urgency: model.UrgencyInfo}},
		{name: "unknown urgency", doc: model.Document{ID: "x", Category: model.CategoryHR, Urgency: "Low"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.Append(context.Background(), tt.doc)
			assert.ErrorIs(t, err, ErrInvalidDocument)
		})
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegistry_AppendRepositoryError(t *testing.T) {
	ctx := context.Background()
	repo := new(repoMocks.MockDocumentRepository)
	slot := handoff.NewMemory()
	reg := New(repo, slot)
	notified := false
	reg.Subscribe(func(context.Context, model.Document) { notified = true })

	repo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db down"))

	_, err := reg.Append(ctx, validDoc("doc-1"))

	assert.EqualError(t, err, "create document: db down")
	assert.False(t, notified)
	entry, _ := slot.Take(ctx)
	assert.Nil(t, entry)
}

func TestRegistry_Get(t *testing.T) {
	ctx := context.Background()
	repo := new(repoMocks.MockDocumentRepository)
	reg := New(repo, handoff.NewMemory())

	doc := validDoc("doc-1")
	repo.On("FindByID", ctx, "doc-1").Return(&doc, nil)
	repo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)
	repo.On("FindByID", ctx, "broken").Return(nil, errors.New("timeout"))

	got, err := reg.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", got.ID)

	_, err = reg.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = reg.Get(ctx, "broken")
	assert.EqualError(t, err, "timeout")
}

func TestRegistry_List(t *testing.T) {
	ctx := context.Background()
	repo := new(repoMocks.MockDocumentRepository)
	reg := New(repo, handoff.NewMemory())

	f := repository.DocumentFilter{Query: "auction", Sort: repository.SortUrgency, PageQuery: repository.PageQuery{Limit: 10}}
	repo.On("List", ctx, f).Return(&repository.PageResult[model.Document]{Items: []model.Document{validDoc("a")}, Total: 1}, nil)

	res, err := reg.List(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
}

func TestRegistry_Reset(t *testing.T) {
	ctx := context.Background()
	repo := new(repoMocks.MockDocumentRepository)
	slot := handoff.NewMemory()
	reg := New(repo, slot)
	require.NoError(t, slot.Put(ctx, handoff.Entry{Document: validDoc("pending")}))

	repo.On("DeleteAll", ctx).Return(int64(3), nil)

	n, err := reg.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	entry, _ := slot.Take(ctx)
	assert.Nil(t, entry)
}

func TestCategoryCounter(t *testing.T) {
	promReg := prometheus.NewRegistry()
	sub, err := CategoryCounter(promReg)
	require.NoError(t, err)

	sub(context.Background(), validDoc("a"))
	sub(context.Background(), validDoc("b"))

	n, err := testutil.GatherAndCount(promReg, "documents_registered_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	expected := `
# HELP documents_registered_total Document records registered, by category.
# TYPE documents_registered_total counter
documents_registered_total{category="Auction"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(promReg, strings.NewReader(expected), "documents_registered_total"))

	_, err = CategoryCounter(promReg)
	assert.Error(t, err)
}
