package fetcher

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"documind/internal/pipeline"
	"documind/internal/storage"
	storageMocks "documind/internal/storage/mocks"
)

type recordingSubmitter struct {
	files []pipeline.File
}

func (r *recordingSubmitter) Submit(f pipeline.File) pipeline.Run {
	r.files = append(r.files, f)
	return pipeline.Run{ID: "run-" + f.Name, File: f}
}

func TestFetcher_RunOnce(t *testing.T) {
	ctx := context.Background()
	store := new(storageMocks.MockStorage)
	sub := &recordingSubmitter{}
	f := New(store, sub, Config{InboxPrefix: "inbox/"}, nil)

	first := []storage.ObjectInfo{
		{Key: "inbox/KMRL_Auction.pdf", Size: 2048, ETag: "a1", ContentType: "application/pdf"},
		{Key: "inbox/notes.txt", Size: 12, ETag: "b1"},
		{Key: "inbox/photo.png", Size: 99, ETag: "c1", ContentType: "image/png"},
	}
	store.On("List", ctx, "inbox/").Return(first, nil).Once()

	n, err := f.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, sub.files, 2)
	assert.Equal(t, pipeline.File{
		Name:        "KMRL_Auction.pdf",
		ContentType: "application/pdf",
		Size:        2048,
		Key:         "inbox/KMRL_Auction.pdf",
		UploadedBy:  "Email System",
	}, sub.files[0])
	assert.Equal(t, "notes.txt", sub.files[1].Name)
	assert.Contains(t, sub.files[1].ContentType, "text/plain")

	second := []storage.ObjectInfo{
		{Key: "inbox/KMRL_Auction.pdf", Size: 2048, ETag: "a1", ContentType: "application/pdf"},
		{Key: "inbox/notes.txt", Size: 14, ETag: "b2"},
	}
	store.On("List", ctx, "inbox/").Return(second, nil).Once()

	n, err = f.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Len(t, sub.files, 3)
	store.AssertExpectations(t)
}

func TestFetcher_ListError(t *testing.T) {
	store := new(storageMocks.MockStorage)
	sub := &recordingSubmitter{}
	f := New(store, sub, Config{InboxPrefix: "inbox/"}, nil)

	store.On("List", mock.Anything, "inbox/").Return(nil, errors.New("bucket missing"))

	n, err := f.RunOnce(context.Background())
	assert.EqualError(t, err, "list inbox: bucket missing")
	assert.Zero(t, n)
	assert.Empty(t, sub.files)
}

func TestFetcher_StartRejectsBadSchedule(t *testing.T) {
	f := New(new(storageMocks.MockStorage), &recordingSubmitter{}, Config{Schedule: "not a schedule"}, nil)
	assert.Error(t, f.Start())
}

func TestFetcher_StartStop(t *testing.T) {
	f := New(new(storageMocks.MockStorage), &recordingSubmitter{}, Config{Schedule: "@every 1h"}, nil)
	require.NoError(t, f.Start())
	f.Stop()
}
