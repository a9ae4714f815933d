package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	apperrors "github.com/skillsenselab/diascribe/errors"
	"github.com/skillsenselab/diascribe/logger"
	"github.com/skillsenselab/diascribe/pipeline"
	"github.com/skillsenselab/diascribe/storage"
)

// Watcher monitors a directory for new recordings and feeds them through
// the pipeline with a bounded worker pool. Events for a file are debounced
// so a recording is only queued once its writer has gone quiet.
type Watcher struct {
	config   Config
	pipeline *pipeline.Pipeline
	store    *storage.ArtifactStore
	watcher  *fsnotify.Watcher
	log      *logger.Logger

	queue   chan pipeline.Job
	workers sync.WaitGroup
	loop    sync.WaitGroup

	mu       sync.Mutex
	pending  map[string]*time.Timer
	inflight map[string]struct{}
	running  bool
	stopped  bool
}

// Option configures a Watcher during creation.
type Option func(*Watcher)

// WithLogger replaces the default logger.
func WithLogger(log *logger.Logger) Option {
	return func(w *Watcher) {
		if log != nil {
			w.log = log
		}
	}
}

// WithFailureStore persists a failure artifact for every recording whose
// processing fails. Success artifacts are the pipeline store's concern.
func WithFailureStore(store *storage.ArtifactStore) Option {
	return func(w *Watcher) { w.store = store }
}

// New creates a Watcher over the given pipeline.
func New(cfg Config, p *pipeline.Pipeline, opts ...Option) (*Watcher, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.Configuration("watch requires a pipeline")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "cannot create file watcher")
	}

	w := &Watcher{
		config:   cfg,
		pipeline: p,
		watcher:  fsw,
		log:      logger.NewDefault("watch"),
		queue:    make(chan pipeline.Job, queueCapacity),
		pending:  make(map[string]*time.Timer),
		inflight: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start attaches the directory, spawns the worker pool, and begins
// consuming events in the background. It returns once watching is
// active; Stop shuts everything down.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(w.config.Dir); err != nil {
		return apperrors.Configuration(fmt.Sprintf("cannot watch directory %s: %v", w.config.Dir, err))
	}
	w.log.Info("watching directory", logger.Fields(
		"dir", w.config.Dir,
		"workers", w.config.Workers,
		"extensions", strings.Join(w.config.Extensions, ","),
	))

	for i := 0; i < w.config.Workers; i++ {
		w.workers.Add(1)
		go w.worker(ctx)
	}

	w.loop.Add(1)
	go func() {
		defer w.loop.Done()
		w.watchLoop(ctx)
	}()

	w.mu.Lock()
	w.running = true
	w.mu.Unlock()
	return nil
}

// Stop closes the event stream, stops pending debounce timers, and waits
// for the workers to drain the queue. The context bounds the drain; on
// expiry the remaining jobs are abandoned.
func (w *Watcher) Stop(ctx context.Context) error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	w.running = false
	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()

	if err := w.watcher.Close(); err != nil {
		w.log.Warn("closing file watcher", logger.ErrorFields("close", err))
	}
	w.loop.Wait()

	close(w.queue)

	done := make(chan struct{})
	go func() {
		w.workers.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return apperrors.Timeout("watch shutdown")
	}
}

func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error("file watcher error", logger.ErrorFields("watch", err))
		}
	}
}

// handleEvent debounces Create and Write events into the job queue.
// Editors and uploaders emit bursts of writes per file; each event resets
// the file's timer so it is queued once, after the burst.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return
	}
	if strings.HasSuffix(event.Name, ".tmp") {
		return
	}
	if !w.accepts(event.Name) {
		w.log.Debug("skipping unsupported file", logger.Fields("path", event.Name))
		return
	}
	if info, err := os.Stat(event.Name); err != nil || info.IsDir() {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if timer, ok := w.pending[event.Name]; ok {
		timer.Reset(w.config.DebounceDelay)
		return
	}
	path := event.Name
	w.pending[path] = time.AfterFunc(w.config.DebounceDelay, func() {
		w.enqueue(path)
	})
}

// enqueue moves a quiet file from pending into the job queue. Paths
// already queued or processing are skipped; re-queueing happens naturally
// if the file is written again later.
func (w *Watcher) enqueue(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	delete(w.pending, path)
	if w.stopped {
		return
	}
	if _, busy := w.inflight[path]; busy {
		w.log.Debug("skipping recording already in flight", logger.Fields(logger.FieldAudioFile, path))
		return
	}

	select {
	case w.queue <- pipeline.Job{AudioPath: path, Language: w.config.Language}:
		w.inflight[path] = struct{}{}
		w.log.Info("queued recording", logger.Fields(logger.FieldAudioFile, path))
	default:
		w.log.Warn("job queue is full, dropping recording", logger.Fields(logger.FieldAudioFile, path))
	}
}

// Running reports whether the watcher has started and not yet stopped.
func (w *Watcher) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// QueueDepth returns the number of recordings waiting for a worker.
func (w *Watcher) QueueDepth() int {
	return len(w.queue)
}

func (w *Watcher) accepts(path string) bool {
	ext := filepath.Ext(path)
	for _, allowed := range w.config.Extensions {
		if strings.EqualFold(ext, allowed) {
			return true
		}
	}
	return false
}

func (w *Watcher) worker(ctx context.Context) {
	defer w.workers.Done()

	for {
		select {
		case <-ctx.Done():
			return

		case job, ok := <-w.queue:
			if !ok {
				return
			}
			w.handle(ctx, job)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, job pipeline.Job) {
	defer w.release(job.AudioPath)

	_, err := w.pipeline.Process(ctx, job)
	if err == nil {
		return
	}

	w.log.Error("recording failed, continuing", logger.ErrorFields("process", err), logger.Fields(
		logger.FieldAudioFile, job.AudioPath,
	))
	if w.store != nil {
		failure := pipeline.FailureFor(job.AudioPath, err)
		if _, serr := w.store.SaveFailure(ctx, failure); serr != nil {
			w.log.Error("saving failure artifact", logger.ErrorFields("save failure", serr))
		}
	}
}

func (w *Watcher) release(path string) {
	w.mu.Lock()
	delete(w.inflight, path)
	w.mu.Unlock()
}
