package parallel

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gogpu/mdl/internal/raster"
)

// recorder is a Persister that remembers every path it was given.
type recorder struct {
	mu    sync.Mutex
	paths map[string]int
	fail  func(path string) error
	delay time.Duration
}

func newRecorder() *recorder { return &recorder{paths: make(map[string]int)} }

func (r *recorder) Persist(path string, _ *raster.Screen) error {
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	if r.fail != nil {
		if err := r.fail(path); err != nil {
			return err
		}
	}
	r.mu.Lock()
	r.paths[path]++
	r.mu.Unlock()
	return nil
}

// =============================================================================
// Construction
// =============================================================================

func TestFramePipeline_Defaults(t *testing.T) {
	fp := NewFramePipeline(newRecorder(), Config{})
	defer fp.Wait()

	if fp.Workers() != DefaultWorkers {
		t.Errorf("Workers() = %d, want %d", fp.Workers(), DefaultWorkers)
	}
	if fp.QueueSize() != 2*DefaultWorkers {
		t.Errorf("QueueSize() = %d, want %d", fp.QueueSize(), 2*DefaultWorkers)
	}
}

func TestFramePipeline_Config(t *testing.T) {
	fp := NewFramePipeline(newRecorder(), Config{Workers: 3, QueueSize: 1})
	defer fp.Wait()

	if fp.Workers() != 3 {
		t.Errorf("Workers() = %d, want 3", fp.Workers())
	}
	if fp.QueueSize() != 1 {
		t.Errorf("QueueSize() = %d, want 1", fp.QueueSize())
	}
}

// =============================================================================
// Delivery
// =============================================================================

func TestFramePipeline_AllFramesPersistedOnce(t *testing.T) {
	rec := newRecorder()
	fp := NewFramePipeline(rec, Config{Workers: 4})

	const n = 50
	for i := range n {
		f := Frame{Path: fmt.Sprintf("anim/frame%02d.png", i), Screen: raster.NewScreen(2, 2)}
		if err := fp.Submit(context.Background(), f); err != nil {
			t.Fatalf("Submit(%d) error = %v", i, err)
		}
	}
	if err := fp.Wait(); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	if len(rec.paths) != n {
		t.Fatalf("persisted %d distinct paths, want %d", len(rec.paths), n)
	}
	for p, c := range rec.paths {
		if c != 1 {
			t.Errorf("%s persisted %d times, want 1", p, c)
		}
	}
	if fp.Persisted() != n {
		t.Errorf("Persisted() = %d, want %d", fp.Persisted(), n)
	}
}

func TestFramePipeline_FailureDoesNotStopOthers(t *testing.T) {
	rec := newRecorder()
	rec.fail = func(path string) error {
		if strings.HasSuffix(path, "3") {
			return errors.New("disk full")
		}
		return nil
	}
	fp := NewFramePipeline(rec, Config{Workers: 2})

	for i := range 10 {
		_ = fp.Submit(context.Background(), Frame{Path: fmt.Sprintf("f%d", i)})
	}
	err := fp.Wait()
	if err == nil {
		t.Fatal("Wait() error = nil, want failure for f3")
	}
	if !strings.Contains(err.Error(), "f3: disk full") {
		t.Errorf("Wait() error = %q, want it to name f3", err)
	}
	if fp.Persisted() != 9 || fp.Failed() != 1 {
		t.Errorf("Persisted, Failed = %d, %d, want 9, 1", fp.Persisted(), fp.Failed())
	}
}

func TestFramePipeline_AllFailuresJoined(t *testing.T) {
	errDisk := errors.New("disk full")
	rec := newRecorder()
	rec.fail = func(path string) error {
		switch path {
		case "f1", "f5", "f7":
			return errDisk
		}
		return nil
	}
	fp := NewFramePipeline(rec, Config{Workers: 4})

	for i := range 12 {
		if err := fp.Submit(context.Background(), Frame{Path: fmt.Sprintf("f%d", i)}); err != nil {
			t.Fatalf("Submit(f%d) error = %v", i, err)
		}
	}
	err := fp.Wait()
	if !errors.Is(err, errDisk) {
		t.Fatalf("Wait() error = %v, want %v", err, errDisk)
	}
	for _, p := range []string{"f1", "f5", "f7"} {
		if !strings.Contains(err.Error(), p+": disk full") {
			t.Errorf("Wait() error = %q, want it to name %s", err, p)
		}
	}
	if fp.Failed() != 3 {
		t.Errorf("Failed() = %d, want 3", fp.Failed())
	}
}

func TestFramePipeline_Release(t *testing.T) {
	pool := raster.NewScreenPool(0)
	fp := NewFramePipeline(newRecorder(), Config{Workers: 2, Release: pool.Put})

	for i := range 5 {
		_ = fp.Submit(context.Background(), Frame{Path: fmt.Sprint(i), Screen: pool.Get(4, 4)})
	}
	if err := fp.Wait(); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if pool.Len() == 0 {
		t.Error("screens were not released to the pool")
	}
}

// =============================================================================
// Shutdown
// =============================================================================

func TestFramePipeline_SubmitAfterClose(t *testing.T) {
	fp := NewFramePipeline(newRecorder(), Config{Workers: 1})
	fp.Close()
	fp.Close() // idempotent

	if err := fp.Submit(context.Background(), Frame{Path: "late"}); !errors.Is(err, ErrClosed) {
		t.Errorf("Submit after Close error = %v, want ErrClosed", err)
	}
	if err := fp.Wait(); err != nil {
		t.Errorf("Wait() error = %v", err)
	}
}

func TestFramePipeline_SubmitBlocksWhenFull(t *testing.T) {
	release := make(chan struct{})
	var started atomic.Int32
	p := PersistFunc(func(string, *raster.Screen) error {
		started.Add(1)
		<-release
		return nil
	})
	fp := NewFramePipeline(p, Config{Workers: 1, QueueSize: 1})

	// One frame held by the worker, one in the queue.
	_ = fp.Submit(context.Background(), Frame{Path: "a"})
	for started.Load() == 0 {
		time.Sleep(time.Millisecond)
	}
	_ = fp.Submit(context.Background(), Frame{Path: "b"})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := fp.Submit(ctx, Frame{Path: "c"}); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Submit on full queue error = %v, want DeadlineExceeded", err)
	}

	close(release)
	if err := fp.Wait(); err != nil {
		t.Errorf("Wait() error = %v", err)
	}
	if fp.Persisted() != 2 {
		t.Errorf("Persisted() = %d, want 2", fp.Persisted())
	}
}

func TestFramePipeline_ConcurrentWorkers(t *testing.T) {
	var inFlight, peak atomic.Int32
	p := PersistFunc(func(string, *raster.Screen) error {
		n := inFlight.Add(1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		return nil
	})
	fp := NewFramePipeline(p, Config{Workers: 4})
	for i := range 16 {
		_ = fp.Submit(context.Background(), Frame{Path: fmt.Sprint(i)})
	}
	if err := fp.Wait(); err != nil {
		t.Fatal(err)
	}
	if peak.Load() > 4 {
		t.Errorf("peak concurrency = %d, want <= 4", peak.Load())
	}
}
