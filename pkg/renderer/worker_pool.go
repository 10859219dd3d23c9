package renderer

import (
	"errors"
	"fmt"
	"image"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/scene"
)

var (
	// ErrPoolClosed is returned when jobs are submitted after Shutdown
	ErrPoolClosed = errors.New("worker pool is shut down")
	// ErrQueueFull is returned when the job queue cannot take every copy
	ErrQueueFull = errors.New("job queue is full")
)

// PoolConfig contains configuration for the worker pool
type PoolConfig struct {
	Workers            int         // Number of tracing goroutines (0 = logical CPU count)
	Resolution         image.Point // Size of every worker's accumulation buffer
	CheckpointInterval int         // Passes between checkpoints
	QueueSize          int         // Capacity of the job queue
	Integrator         integrator.Config
	Seed               int64 // Base seed for worker randomness (0 = time based)
}

// DefaultPoolConfig returns sensible default values for a resolution
func DefaultPoolConfig(resolution image.Point) PoolConfig {
	return PoolConfig{
		Workers:            0,
		Resolution:         resolution,
		CheckpointInterval: 20,
		QueueSize:          1024,
		Integrator:         integrator.DefaultConfig(),
	}
}

// DefaultWorkerCount returns the number of logical CPUs
func DefaultWorkerCount() int {
	n, err := cpu.Counts(true)
	if err != nil || n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// CPUModel returns the model name of the first CPU, or "unknown"
func CPUModel() string {
	infos, err := cpu.Info()
	if err != nil || len(infos) == 0 || infos[0].ModelName == "" {
		return "unknown"
	}
	return infos[0].ModelName
}

type workerState int

const (
	stateIdle workerState = iota
	stateTracing
	stateTerminating
)

func (s workerState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateTracing:
		return "tracing"
	case stateTerminating:
		return "terminating"
	default:
		return fmt.Sprintf("workerState(%d)", int(s))
	}
}

// WorkerPool runs independent tracing workers. Each job is a scene
// description; a worker that picks one up traces it until shutdown,
// periodically handing its partial buffer to the results channel.
type WorkerPool struct {
	config  PoolConfig
	jobs    chan *scene.Description
	results chan TraceResult
	quit    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
	logger  core.Logger
}

type worker struct {
	id     int
	pool   *WorkerPool
	state  workerState
	random *rand.Rand
}

// NewWorkerPool starts config.Workers goroutines, all idle
func NewWorkerPool(config PoolConfig, logger core.Logger) (*WorkerPool, error) {
	if config.Resolution.X <= 0 || config.Resolution.Y <= 0 {
		return nil, fmt.Errorf("invalid pool resolution %v", config.Resolution)
	}
	if config.Workers <= 0 {
		config.Workers = DefaultWorkerCount()
	}
	if config.CheckpointInterval <= 0 {
		config.CheckpointInterval = 1
	}
	if config.QueueSize <= 0 {
		config.QueueSize = config.Workers
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	wp := &WorkerPool{
		config:  config,
		jobs:    make(chan *scene.Description, config.QueueSize),
		results: make(chan TraceResult, config.Workers),
		quit:    make(chan struct{}),
		logger:  logger,
	}

	for i := 0; i < config.Workers; i++ {
		w := &worker{
			id:     i,
			pool:   wp,
			state:  stateIdle,
			random: rand.New(rand.NewSource(seed + int64(i)*7919)),
		}
		wp.wg.Add(1)
		go w.run()
	}

	return wp, nil
}

// Workers returns the number of worker goroutines
func (wp *WorkerPool) Workers() int {
	return wp.config.Workers
}

// Resolution returns the size of every result buffer
func (wp *WorkerPool) Resolution() image.Point {
	return wp.config.Resolution
}

// ExecuteScene validates desc and queues count private copies of it. Each
// copy occupies one worker until shutdown.
func (wp *WorkerPool) ExecuteScene(desc *scene.Description, count int) error {
	if err := desc.Validate(); err != nil {
		return err
	}
	if count <= 0 {
		return nil
	}

	select {
	case <-wp.quit:
		return ErrPoolClosed
	default:
	}

	if free := cap(wp.jobs) - len(wp.jobs); count > free {
		return fmt.Errorf("%d jobs requested, %d slots free: %w", count, free, ErrQueueFull)
	}

	for i := 0; i < count; i++ {
		select {
		case wp.jobs <- desc.Clone():
		default:
			return fmt.Errorf("queued %d of %d jobs: %w", i, count, ErrQueueFull)
		}
	}
	return nil
}

// TryReceive returns a pending checkpoint without blocking
func (wp *WorkerPool) TryReceive() (TraceResult, bool) {
	select {
	case r := <-wp.results:
		return r, true
	default:
		return TraceResult{}, false
	}
}

// Shutdown tells every worker to terminate and waits for them. Progress
// since each worker's last checkpoint is discarded. Safe to call more than
// once.
func (wp *WorkerPool) Shutdown() {
	wp.once.Do(func() {
		wp.logger.Printf("Shutting down %d workers...\n", wp.config.Workers)
		close(wp.quit)
	})
	wp.wg.Wait()
}

func (w *worker) run() {
	defer w.pool.wg.Done()

	var job *scene.Description
	for {
		switch w.state {
		case stateIdle:
			select {
			case <-w.pool.quit:
				w.state = stateTerminating
			case job = <-w.pool.jobs:
				w.state = stateTracing
			}
		case stateTracing:
			w.state = w.trace(job)
			job = nil
		case stateTerminating:
			return
		}
	}
}

// trace runs passes over job until quit is observed at a pass boundary
func (w *worker) trace(job *scene.Description) workerState {
	cfg := w.pool.config
	logger := w.pool.logger

	s, err := job.Build(core.NewRandomSampler(w.random))
	if err != nil {
		logger.Printf("Worker %d: failed to build scene %q: %v\n", w.id, job.Name, err)
		return stateIdle
	}
	tracer, err := integrator.NewPathTracer(s, cfg.Resolution, cfg.Integrator)
	if err != nil {
		logger.Printf("Worker %d: failed to create tracer: %v\n", w.id, err)
		return stateIdle
	}

	logger.Printf("Worker %d: tracing scene %q\n", w.id, job.Name)

	interval := cfg.CheckpointInterval
	passes := checkpointOffset(w.random, interval)
	for {
		tracer.Trace()
		passes++

		if passes%interval == 0 {
			buf, samples := tracer.TakeResult()
			select {
			case w.pool.results <- TraceResult{Buffer: buf, Samples: samples, Worker: w.id}:
			case <-w.pool.quit:
				return stateTerminating
			}
		}

		select {
		case <-w.pool.quit:
			if dropped := tracer.Dropped(); dropped > 0 {
				logger.Printf("Worker %d: dropped %d non-finite samples\n", w.id, dropped)
			}
			return stateTerminating
		default:
		}
	}
}

// checkpointOffset picks a starting pass count in [1, interval) so workers
// replicating one scene do not all hand off on the same pass
func checkpointOffset(r *rand.Rand, interval int) int {
	if interval <= 1 {
		return 0
	}
	return 1 + r.Intn(interval-1)
}
