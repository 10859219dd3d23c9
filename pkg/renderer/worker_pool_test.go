package renderer

import (
	"errors"
	"image"
	"math/rand"
	"testing"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func newTestPool(t *testing.T, res image.Point, workers, interval int) *WorkerPool {
	t.Helper()
	config := DefaultPoolConfig(res)
	config.Workers = workers
	config.CheckpointInterval = interval
	config.Integrator.MaxDepth = 5
	config.Seed = 42

	pool, err := NewWorkerPool(config, core.NopLogger{})
	if err != nil {
		t.Fatalf("Failed to create pool: %v", err)
	}
	return pool
}

func shutdownWithin(t *testing.T, pool *WorkerPool, timeout time.Duration) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		pool.Shutdown()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		t.Fatalf("Shutdown did not complete within %v", timeout)
	}
}

func TestWorkerPool_AccumulatesCheckpoints(t *testing.T) {
	res := image.Pt(8, 6)
	interval := 2
	pool := newTestPool(t, res, 4, interval)

	if err := pool.ExecuteScene(scene.CornellBox(res), 4); err != nil {
		t.Fatalf("ExecuteScene failed: %v", err)
	}

	var total uint64
	workers := make(map[int]bool)
	accept := func(r TraceResult) {
		t.Helper()
		if r.Samples < 1 || r.Samples > uint64(interval) {
			t.Errorf("Expected 1 to %d samples per checkpoint, got %d", interval, r.Samples)
		}
		if r.Buffer.Resolution() != res {
			t.Errorf("Expected resolution %v, got %v", res, r.Buffer.Resolution())
		}
		for i, c := range r.Buffer.Pix {
			if !c.IsFinite() || c.X < 0 || c.Y < 0 || c.Z < 0 {
				t.Fatalf("Pixel %d has invalid radiance %v", i, c)
			}
		}

		next := total + r.Samples
		if next < total {
			t.Fatalf("Sample sum decreased from %d to %d", total, next)
		}
		total = next
		workers[r.Worker] = true
	}

	deadline := time.Now().Add(20 * time.Second)
	for received := 0; received < 12; {
		r, ok := pool.TryReceive()
		if !ok {
			if time.Now().After(deadline) {
				t.Fatalf("Timed out after %d samples", total)
			}
			time.Sleep(time.Millisecond)
			continue
		}
		accept(r)
		received++
	}

	if total < 12 {
		t.Errorf("Expected at least 12 samples, got %d", total)
	}
	if len(workers) < 2 {
		t.Errorf("Expected checkpoints from several workers, got %d", len(workers))
	}

	shutdownWithin(t, pool, 5*time.Second)

	// Checkpoints sent before shutdown stay receivable
	before := total
	for {
		r, ok := pool.TryReceive()
		if !ok {
			break
		}
		accept(r)
	}
	if total < before {
		t.Errorf("Sample sum decreased from %d to %d after shutdown", before, total)
	}
	if _, ok := pool.TryReceive(); ok {
		t.Error("Expected no results once drained after shutdown")
	}
}

func TestWorkerPool_ShutdownWithUnreadResults(t *testing.T) {
	res := image.Pt(4, 3)
	pool := newTestPool(t, res, 4, 1)

	if err := pool.ExecuteScene(scene.CornellBox(res), 4); err != nil {
		t.Fatalf("ExecuteScene failed: %v", err)
	}

	// Let the result channel fill so workers block on send
	time.Sleep(200 * time.Millisecond)
	shutdownWithin(t, pool, 5*time.Second)

	// Second call must not panic or block
	shutdownWithin(t, pool, time.Second)
}

func TestWorkerPool_IdleShutdown(t *testing.T) {
	pool := newTestPool(t, image.Pt(4, 3), 3, 20)

	if _, ok := pool.TryReceive(); ok {
		t.Error("Expected no results from an idle pool")
	}
	shutdownWithin(t, pool, time.Second)
}

func TestWorkerPool_ExecuteSceneErrors(t *testing.T) {
	res := image.Pt(4, 3)

	t.Run("invalid description", func(t *testing.T) {
		pool := newTestPool(t, res, 1, 20)
		defer pool.Shutdown()

		desc := scene.CornellBox(res)
		desc.Primitives[0].Material = "missing"
		err := pool.ExecuteScene(desc, 1)
		if !errors.Is(err, scene.ErrMissingMaterial) {
			t.Errorf("Expected ErrMissingMaterial, got %v", err)
		}
	})

	t.Run("zero count", func(t *testing.T) {
		pool := newTestPool(t, res, 1, 1)
		defer pool.Shutdown()

		if err := pool.ExecuteScene(scene.CornellBox(res), 0); err != nil {
			t.Errorf("Expected nil error, got %v", err)
		}
		time.Sleep(50 * time.Millisecond)
		if _, ok := pool.TryReceive(); ok {
			t.Error("Expected no results when no jobs were queued")
		}
	})

	t.Run("queue full", func(t *testing.T) {
		config := DefaultPoolConfig(res)
		config.Workers = 1
		config.QueueSize = 2
		pool, err := NewWorkerPool(config, nil)
		if err != nil {
			t.Fatalf("Failed to create pool: %v", err)
		}
		defer pool.Shutdown()

		err = pool.ExecuteScene(scene.CornellBox(res), 5)
		if !errors.Is(err, ErrQueueFull) {
			t.Errorf("Expected ErrQueueFull, got %v", err)
		}
	})

	t.Run("closed pool", func(t *testing.T) {
		pool := newTestPool(t, res, 1, 20)
		pool.Shutdown()

		err := pool.ExecuteScene(scene.CornellBox(res), 1)
		if !errors.Is(err, ErrPoolClosed) {
			t.Errorf("Expected ErrPoolClosed, got %v", err)
		}
	})
}

func TestNewWorkerPool_Defaults(t *testing.T) {
	if _, err := NewWorkerPool(DefaultPoolConfig(image.Pt(0, 3)), nil); err == nil {
		t.Error("Expected error for zero width")
	}

	pool, err := NewWorkerPool(DefaultPoolConfig(image.Pt(4, 3)), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer pool.Shutdown()

	if pool.Workers() != DefaultWorkerCount() {
		t.Errorf("Expected %d workers, got %d", DefaultWorkerCount(), pool.Workers())
	}
	if pool.Resolution() != image.Pt(4, 3) {
		t.Errorf("Expected 4x3, got %v", pool.Resolution())
	}
}

func TestCheckpointOffset(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	tests := []struct {
		interval int
		min, max int
	}{
		{interval: 0, min: 0, max: 0},
		{interval: 1, min: 0, max: 0},
		{interval: 2, min: 1, max: 1},
		{interval: 20, min: 1, max: 19},
	}

	for _, tt := range tests {
		for i := 0; i < 100; i++ {
			got := checkpointOffset(r, tt.interval)
			if got < tt.min || got > tt.max {
				t.Fatalf("interval %d: offset %d outside [%d, %d]", tt.interval, got, tt.min, tt.max)
			}
		}
	}
}

func TestWorkerState_String(t *testing.T) {
	tests := map[workerState]string{
		stateIdle:        "idle",
		stateTracing:     "tracing",
		stateTerminating: "terminating",
		workerState(7):   "workerState(7)",
	}
	for state, want := range tests {
		if got := state.String(); got != want {
			t.Errorf("Expected %q, got %q", want, got)
		}
	}
}
