package parallel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/mdl/internal/raster"
)

// DefaultWorkers is the number of persistence workers used when none is
// configured.
const DefaultWorkers = 8

// ErrClosed is returned when a frame is submitted after Close.
var ErrClosed = errors.New("parallel: pipeline closed")

// Frame is a finished screen and the path it is to be written to.
// Ownership of Screen passes to the pipeline on Submit.
type Frame struct {
	Path   string
	Screen *raster.Screen
}

// Persister writes a frame to its destination.
// Implementations are called from several workers at once.
type Persister interface {
	Persist(path string, s *raster.Screen) error
}

// PersistFunc adapts a function to Persister.
type PersistFunc func(path string, s *raster.Screen) error

// Persist implements Persister.
func (f PersistFunc) Persist(path string, s *raster.Screen) error { return f(path, s) }

// Config configures a FramePipeline. Zero values select defaults.
type Config struct {
	// Workers is the number of consumer goroutines. Default DefaultWorkers.
	Workers int

	// QueueSize bounds the number of frames waiting for a worker.
	// Submit blocks while the queue is full. Default 2*Workers.
	QueueSize int

	// Release, if set, is handed each screen once it has been persisted,
	// successfully or not.
	Release func(*raster.Screen)

	// Logger receives per-frame failures. Default discards.
	Logger *slog.Logger
}

// FramePipeline moves finished frames from a single producer to a fixed
// pool of workers that persist them. A failure on one frame is logged and
// recorded; the remaining frames are still written.
//
// Thread safety: Submit and Close may be called concurrently with each
// other; every frame submitted before Close is persisted before Wait
// returns.
type FramePipeline struct {
	workers   int
	frames    chan Frame
	persister Persister
	release   func(*raster.Screen)
	log       *slog.Logger

	g errgroup.Group

	mu     sync.RWMutex
	closed bool

	errMu sync.Mutex
	errs  []error

	persisted atomic.Int64
	failed    atomic.Int64
}

// NewFramePipeline starts the workers and returns a pipeline ready to
// accept frames.
func NewFramePipeline(p Persister, cfg Config) *FramePipeline {
	workers := cfg.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	queue := cfg.QueueSize
	if queue <= 0 {
		queue = 2 * workers
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	fp := &FramePipeline{
		workers:   workers,
		frames:    make(chan Frame, queue),
		persister: p,
		release:   cfg.Release,
		log:       log,
	}
	for id := range workers {
		fp.g.Go(func() error {
			fp.worker(id)
			return nil
		})
	}
	return fp
}

// worker persists frames until the channel is closed and drained.
func (fp *FramePipeline) worker(id int) {
	for f := range fp.frames {
		if err := fp.persister.Persist(f.Path, f.Screen); err != nil {
			fp.failed.Add(1)
			fp.log.Error("persist frame", "worker", id, "path", f.Path, "err", err)
			fp.errMu.Lock()
			fp.errs = append(fp.errs, fmt.Errorf("%s: %w", f.Path, err))
			fp.errMu.Unlock()
		} else {
			fp.persisted.Add(1)
			fp.log.Debug("frame written", "worker", id, "path", f.Path)
		}
		if fp.release != nil {
			fp.release(f.Screen)
		}
	}
}

// Submit queues a frame, blocking while the queue is full. It returns
// ErrClosed after Close and ctx.Err() if ctx is done first.
func (fp *FramePipeline) Submit(ctx context.Context, f Frame) error {
	fp.mu.RLock()
	defer fp.mu.RUnlock()
	if fp.closed {
		return ErrClosed
	}
	select {
	case fp.frames <- f:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting frames. Workers drain what is already queued.
// Close is safe to call multiple times.
func (fp *FramePipeline) Close() {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	if fp.closed {
		return
	}
	fp.closed = true
	close(fp.frames)
}

// Wait closes the pipeline, waits until every queued frame has been
// handled and returns the joined per-frame errors, or nil.
func (fp *FramePipeline) Wait() error {
	fp.Close()
	// Workers never fail as a whole: every per-frame failure is in errs,
	// and the group only joins the goroutines.
	_ = fp.g.Wait()

	fp.errMu.Lock()
	defer fp.errMu.Unlock()
	return errors.Join(fp.errs...)
}

// Workers returns the number of worker goroutines.
func (fp *FramePipeline) Workers() int { return fp.workers }

// QueueSize returns the capacity of the frame queue.
func (fp *FramePipeline) QueueSize() int { return cap(fp.frames) }

// Persisted returns the number of frames written successfully so far.
func (fp *FramePipeline) Persisted() int { return int(fp.persisted.Load()) }

// Failed returns the number of frames whose persistence failed so far.
func (fp *FramePipeline) Failed() int { return int(fp.failed.Load()) }
