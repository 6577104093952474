// Package pipeline runs submitted files through the staged ingestion state machine.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/phuslu/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"documind/internal/analysis"
	"documind/internal/clock"
	"documind/internal/extract"
	"documind/internal/logging"
	"documind/internal/model"
)

var (
	ErrRunNotFound  = errors.New("run not found")
	ErrNotRetryable = errors.New("run is not in error state")
)

// Source reads the raw bytes of a stored file.
type Source interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
}

// Sink receives finished document records.
type Sink interface {
	Append(ctx context.Context, doc model.Document) (model.Document, error)
}

// Classifier assigns the category of a record from its title.
type Classifier interface {
	Route(text string) model.Category
}

// Deps are the collaborators the stage actions call.
type Deps struct {
	Source    Source
	Extractor extract.Extractor
	Analyzer  analysis.Analyzer
	Router    Classifier
	Sink      Sink
}

// Engine owns every run. A single scheduler advances due runs; stage actions of
// different runs execute concurrently within one step.
type Engine struct {
	deps      Deps
	stages    map[Stage]StageSpec
	clock     clock.Clock
	tick      time.Duration
	retention time.Duration
	workers   int
	log       *log.Logger
	metrics   *Metrics
	tracer    trace.Tracer
	newID     func() string

	mu       sync.Mutex
	runs     map[string]*Run
	inflight map[string]context.CancelFunc

	stepMu sync.Mutex
	stop   context.CancelFunc
	done   chan struct{}
}

// Option customizes an Engine.
type Option func(*Engine)

func WithClock(c clock.Clock) Option { return func(e *Engine) { e.clock = c } }

func WithDurations(d Durations) Option { return func(e *Engine) { e.stages = stageTable(d) } }

// WithTick sets how often the scheduler checks for due runs.
func WithTick(d time.Duration) Option { return func(e *Engine) { e.tick = d } }

// WithRetention sets how long terminal runs are kept. Zero keeps them forever.
func WithRetention(d time.Duration) Option { return func(e *Engine) { e.retention = d } }

// WithWorkers bounds concurrent stage actions per step.
func WithWorkers(n int) Option { return func(e *Engine) { e.workers = n } }

func WithLogger(l *log.Logger) Option { return func(e *Engine) { e.log = l } }

func WithMetrics(m *Metrics) Option { return func(e *Engine) { e.metrics = m } }

// WithIDGenerator overrides record and run id generation.
func WithIDGenerator(f func() string) Option { return func(e *Engine) { e.newID = f } }

// NewEngine validates deps and applies options.
func NewEngine(deps Deps, opts ...Option) (*Engine, error) {
	if deps.Source == nil || deps.Extractor == nil || deps.Analyzer == nil || deps.Router == nil || deps.Sink == nil {
		return nil, errors.New("pipeline: source, extractor, analyzer, router and sink are required")
	}
	e := &Engine{
		deps:      deps,
		stages:    stageTable(DefaultDurations()),
		clock:     clock.Real(),
		tick:      250 * time.Millisecond,
		retention: time.Hour,
		workers:   4,
		log:       logging.Nop(),
		tracer:    otel.Tracer("documind/pipeline"),
		newID:     newUUID,
		runs:      make(map[string]*Run),
		inflight:  make(map[string]context.CancelFunc),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers < 1 {
		e.workers = 1
	}
	return e, nil
}

// Submit creates a run in Idle and immediately triggers it into Fetching.
func (e *Engine) Submit(f File) Run {
	now := e.clock.Now()
	r := &Run{
		ID:        e.newID(),
		File:      f,
		Stage:     StageIdle,
		Attempt:   1,
		EnteredAt: now,
		DueAt:     now,
		CreatedAt: now,
	}
	r.enter(e.stages[StageFetching], now, "")

	e.mu.Lock()
	e.runs[r.ID] = r
	out := r.snapshot()
	e.mu.Unlock()

	e.log.Info().Str("component", "pipeline").Str("event", "run_submitted").
		Str("run_id", r.ID).Str("file", f.Name).Msg("")
	return out
}

// Get returns a snapshot of one run.
func (e *Engine) Get(id string) (Run, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	r, ok := e.runs[id]
	if !ok {
		return Run{}, ErrRunNotFound
	}
	return r.snapshot(), nil
}

// List returns snapshots of every run, newest first.
func (e *Engine) List() []Run {
	e.mu.Lock()
	out := make([]Run, 0, len(e.runs))
	for _, r := range e.runs {
		out = append(out, r.snapshot())
	}
	e.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Retry restarts a failed run at Fetching with attempt+1. Valid only from Error.
func (e *Engine) Retry(id string) (Run, error) {
	now := e.clock.Now()

	e.mu.Lock()
	r, ok := e.runs[id]
	if !ok {
		e.mu.Unlock()
		return Run{}, ErrRunNotFound
	}
	if r.Stage != StageError {
		e.mu.Unlock()
		return Run{}, fmt.Errorf("%w: %s", ErrNotRetryable, r.Stage)
	}
	r.reset()
	r.Attempt++
	r.enter(e.stages[StageFetching], now, "")
	out := r.snapshot()
	e.mu.Unlock()

	e.metrics.outcome("retried")
	e.log.Info().Str("component", "pipeline").Str("event", "run_retried").
		Str("run_id", id).Int("attempt", out.Attempt).Msg("")
	return out, nil
}

// Cancel drops a run and discards its partial state. An in-flight stage action
// has its context cancelled and its result ignored.
func (e *Engine) Cancel(id string) error {
	e.mu.Lock()
	r, ok := e.runs[id]
	if !ok {
		e.mu.Unlock()
		return ErrRunNotFound
	}
	terminal := r.Stage.Terminal()
	delete(e.runs, id)
	if cancel, ok := e.inflight[id]; ok {
		cancel()
		delete(e.inflight, id)
	}
	e.mu.Unlock()

	if !terminal {
		e.metrics.outcome("cancelled")
	}
	e.log.Info().Str("component", "pipeline").Str("event", "run_cancelled").Str("run_id", id).Msg("")
	return nil
}

// Step advances every run whose stage is due at now and returns how many
// actions ran. It blocks until those actions finish.
func (e *Engine) Step(ctx context.Context, now time.Time) int {
	e.stepMu.Lock()
	defer e.stepMu.Unlock()

	jobs := e.collect(ctx, now)

	var g errgroup.Group
	g.SetLimit(e.workers)
	for _, j := range jobs {
		g.Go(func() error {
			j.err = e.exec(j)
			return nil
		})
	}
	_ = g.Wait()

	e.mu.Lock()
	for _, j := range jobs {
		e.apply(j, now)
	}
	e.prune(now)
	e.metrics.setActive(e.countLocked())
	e.mu.Unlock()

	return len(jobs)
}

func (e *Engine) collect(ctx context.Context, now time.Time) []*job {
	e.mu.Lock()
	defer e.mu.Unlock()

	var jobs []*job
	for id, r := range e.runs {
		if r.Stage.Terminal() || r.Stage == StageIdle || now.Before(r.DueAt) {
			continue
		}
		if _, busy := e.inflight[id]; busy {
			continue
		}
		jctx, cancel := context.WithCancel(ctx)
		e.inflight[id] = cancel
		jobs = append(jobs, &job{
			id:       id,
			attempt:  r.Attempt,
			stage:    r.Stage,
			file:     r.File,
			now:      now,
			data:     r.data,
			text:     r.text,
			pages:    r.Pages,
			fallback: r.Fallback,
			analysis: r.Analysis,
			category: r.Category,
			ctx:      jctx,
		})
	}
	sort.Slice(jobs, func(i, k int) bool { return jobs[i].id < jobs[k].id })
	return jobs
}

func (e *Engine) exec(j *job) error {
	spec := e.stages[j.stage]
	if spec.Action == nil {
		return nil
	}
	ctx, span := e.tracer.Start(j.ctx, "pipeline."+string(j.stage), trace.WithAttributes(
		attribute.String("run.id", j.id),
		attribute.Int("run.attempt", j.attempt),
		attribute.String("file.name", j.file.Name),
	))
	defer span.End()

	start := time.Now()
	err := spec.Action(ctx, e, j)
	e.metrics.observe(j.stage, err == nil, time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// apply commits a job result unless the run was cancelled or restarted meanwhile.
func (e *Engine) apply(j *job, now time.Time) {
	interrupted := j.ctx.Err() != nil
	if cancel, ok := e.inflight[j.id]; ok {
		cancel()
		delete(e.inflight, j.id)
	}
	r, ok := e.runs[j.id]
	if !ok || r.Attempt != j.attempt || r.Stage != j.stage {
		return
	}

	if j.err != nil && interrupted {
		// Interrupted by shutdown; the stage is re-attempted on the next step.
		return
	}
	if j.err != nil {
		r.enter(e.stages[StageError], now, j.err.Error())
		r.data = nil
		e.metrics.outcome("error")
		e.log.Warn().Str("component", "pipeline").Str("event", "run_failed").
			Str("run_id", r.ID).Str("stage", string(j.stage)).Int("attempt", r.Attempt).
			Err(j.err).Msg("")
		return
	}

	r.data = j.data
	r.text = j.text
	r.Pages = j.pages
	r.Fallback = j.fallback
	r.Analysis = j.analysis
	r.Category = j.category

	next := e.stages[e.stages[j.stage].Next]
	r.enter(next, now, "")

	if next.Stage == StageComplete {
		r.DocumentID = j.docID
		r.HighlightUntil = now.Add(next.Duration)
		r.data = nil
		r.text = ""
		e.metrics.outcome("complete")
		e.log.Info().Str("component", "pipeline").Str("event", "run_complete").
			Str("run_id", r.ID).Str("document_id", r.DocumentID).Str("category", string(r.Category)).Msg("")
	}
}

func (e *Engine) prune(now time.Time) {
	if e.retention <= 0 {
		return
	}
	for id, r := range e.runs {
		if r.Stage.Terminal() && now.Sub(r.EnteredAt) > e.retention {
			delete(e.runs, id)
		}
	}
}

func (e *Engine) countLocked() map[Stage]int {
	counts := make(map[Stage]int)
	for _, r := range e.runs {
		counts[r.Stage]++
	}
	return counts
}

// Start launches the scheduler loop. It returns immediately.
func (e *Engine) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	e.stop = cancel
	e.done = make(chan struct{})
	t := e.clock.NewTicker(e.tick)

	go func() {
		defer close(e.done)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C():
				e.Step(ctx, e.clock.Now())
			}
		}
	}()
}

// Stop ends the scheduler loop and waits for the current step to finish.
func (e *Engine) Stop() {
	if e.stop == nil {
		return
	}
	e.stop()
	<-e.done
}
