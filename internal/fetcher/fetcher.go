// Package fetcher periodically submits new inbox objects to the ingestion pipeline.
package fetcher

import (
	"context"
	"fmt"
	"mime"
	"path"
	"sync"
	"time"

	"github.com/phuslu/log"
	"github.com/robfig/cron/v3"

	"documind/internal/extract"
	"documind/internal/logging"
	"documind/internal/pipeline"
	"documind/internal/storage"
)

// Lister enumerates stored objects under a prefix.
type Lister interface {
	List(ctx context.Context, prefix string) ([]storage.ObjectInfo, error)
}

// Submitter starts a pipeline run.
type Submitter interface {
	Submit(f pipeline.File) pipeline.Run
}

// Config controls where and how often the inbox is scanned.
type Config struct {
	Schedule    string
	InboxPrefix string
	UploadedBy  string
	Timeout     time.Duration
}

// Fetcher scans the inbox prefix and submits each object it has not seen at
// its current ETag. Seen state is kept in memory only.
type Fetcher struct {
	store  Lister
	submit Submitter
	cfg    Config
	cron   *cron.Cron
	log    *log.Logger

	mu   sync.Mutex
	seen map[string]string
}

func New(store Lister, submit Submitter, cfg Config, logger *log.Logger) *Fetcher {
	if logger == nil {
		logger = logging.Nop()
	}
	if cfg.Schedule == "" {
		cfg.Schedule = "@every 5m"
	}
	if cfg.UploadedBy == "" {
		cfg.UploadedBy = "Email System"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Minute
	}
	return &Fetcher{
		store:  store,
		submit: submit,
		cfg:    cfg,
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		log:    logger,
		seen:   make(map[string]string),
	}
}

// RunOnce performs a single scan and returns how many runs were submitted.
func (f *Fetcher) RunOnce(ctx context.Context) (int, error) {
	objects, err := f.store.List(ctx, f.cfg.InboxPrefix)
	if err != nil {
		return 0, fmt.Errorf("list inbox: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	submitted := 0
	for _, obj := range objects {
		name := path.Base(obj.Key)
		contentType := obj.ContentType
		if contentType == "" {
			contentType = mime.TypeByExtension(path.Ext(name))
		}
		if !extract.Supported(name, contentType) {
			continue
		}
		if etag, ok := f.seen[obj.Key]; ok && etag == obj.ETag {
			continue
		}
		f.seen[obj.Key] = obj.ETag

		run := f.submit.Submit(pipeline.File{
			Name:        name,
			ContentType: contentType,
			Size:        obj.Size,
			Key:         obj.Key,
			UploadedBy:  f.cfg.UploadedBy,
		})
		submitted++
		f.log.Info().Str("component", "fetcher").Str("event", "inbox_object_submitted").
			Str("key", obj.Key).Str("run_id", run.ID).Msg("")
	}
	return submitted, nil
}

// Start schedules RunOnce. Overlapping scans are skipped.
func (f *Fetcher) Start() error {
	_, err := f.cron.AddFunc(f.cfg.Schedule, f.scan)
	if err != nil {
		return fmt.Errorf("schedule fetcher: %w", err)
	}
	f.cron.Start()
	f.log.Info().Str("component", "fetcher").Str("event", "fetcher_started").
		Str("schedule", f.cfg.Schedule).Str("prefix", f.cfg.InboxPrefix).Msg("")
	return nil
}

// Stop halts scheduling and waits for a running scan to finish.
func (f *Fetcher) Stop() {
	<-f.cron.Stop().Done()
	f.log.Info().Str("component", "fetcher").Str("event", "fetcher_stopped").Msg("")
}

func (f *Fetcher) scan() {
	ctx, cancel := context.WithTimeout(context.Background(), f.cfg.Timeout)
	defer cancel()

	start := time.Now()
	n, err := f.RunOnce(ctx)
	if err != nil {
		f.log.Error().Str("component", "fetcher").Str("event", "scan_failed").Err(err).Msg("")
		return
	}
	f.log.Info().Str("component", "fetcher").Str("event", "scan_completed").
		Int("submitted", n).Dur("duration", time.Since(start)).Msg("")
}
