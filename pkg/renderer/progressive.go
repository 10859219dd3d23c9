package renderer

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/df07/go-pathtracer/pkg/buffer"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/export"
)

// ResultSource yields worker checkpoints without blocking
type ResultSource interface {
	TryReceive() (TraceResult, bool)
}

// Progressive merges worker checkpoints into a global buffer. Poll, Render
// and Export belong to a single consumer goroutine; LatestImage and Stats
// may be called from anywhere.
type Progressive struct {
	source      ResultSource
	accum       *buffer.Accumulation
	samples     uint64
	checkpoints int
	started     time.Time
	logger      core.Logger

	mu       sync.RWMutex
	snapshot *image.RGBA
	stats    Stats
}

// NewProgressive creates a consumer for results of the given resolution
func NewProgressive(source ResultSource, resolution image.Point, logger core.Logger) (*Progressive, error) {
	accum, err := buffer.NewAccumulation(resolution)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Progressive{
		source:  source,
		accum:   accum,
		started: time.Now(),
		logger:  logger,
		stats:   newStats(resolution, 0, 0, 0),
	}, nil
}

// Poll merges at most one pending checkpoint and reports whether it did
func (p *Progressive) Poll() (bool, error) {
	result, ok := p.source.TryReceive()
	if !ok {
		return false, nil
	}
	if result.Buffer == nil {
		return false, fmt.Errorf("worker %d sent an empty checkpoint", result.Worker)
	}

	if err := p.accum.Merge(result.Buffer); err != nil {
		return false, fmt.Errorf("failed to merge checkpoint from worker %d: %w", result.Worker, err)
	}
	p.samples += result.Samples
	p.checkpoints++

	p.logger.Printf("Merged %d samples from worker %d (total %d)\n", result.Samples, result.Worker, p.samples)

	p.mu.Lock()
	luminance, peak := p.stats.AverageLuminance, p.stats.PeakRadiance
	p.stats = newStats(p.accum.Resolution(), p.samples, p.checkpoints, time.Since(p.started))
	p.stats.AverageLuminance = luminance
	p.stats.PeakRadiance = peak
	p.mu.Unlock()

	return true, nil
}

// Samples returns the number of passes merged per pixel
func (p *Progressive) Samples() uint64 {
	return p.samples
}

// Render fills dst with the tonemapped image, scaling to its resolution
func (p *Progressive) Render(dst buffer.Buffer) error {
	return buffer.ScaleCopyToWith(p.accum, dst, buffer.Tonemap(p.samples))
}

// Snapshot renders a fresh image and publishes it for LatestImage
func (p *Progressive) Snapshot() (*image.RGBA, error) {
	img := image.NewRGBA(image.Rectangle{Max: p.accum.Resolution()})
	dst, err := buffer.NewRGBA8FromImage(img)
	if err != nil {
		return nil, err
	}
	if err := p.Render(dst); err != nil {
		return nil, err
	}

	luminance := CalculateAverageLuminance(img)
	peak := 0.0
	if p.samples > 0 {
		brightest, _ := p.accum.Max()
		peak = brightest / float64(p.samples)
	}

	p.mu.Lock()
	p.snapshot = img
	p.stats.AverageLuminance = luminance
	p.stats.PeakRadiance = peak
	p.mu.Unlock()

	return img, nil
}

// LatestImage returns the most recent snapshot, or nil before the first
func (p *Progressive) LatestImage() *image.RGBA {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot
}

// Stats returns the progress as of the last merge
func (p *Progressive) Stats() Stats {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stats
}

// Export writes the tonemapped image to path. A ".png" extension selects
// PNG, anything else is written as PPM. Failures are logged and returned.
func (p *Progressive) Export(path string) error {
	err := p.export(path)
	if err != nil {
		p.logger.Printf("Export failed: %v\n", err)
		return err
	}
	p.logger.Printf("Saved %s (%d samples per pixel)\n", path, p.samples)
	return nil
}

func (p *Progressive) export(path string) error {
	if strings.EqualFold(filepath.Ext(path), ".png") {
		img, err := p.Snapshot()
		if err != nil {
			return err
		}
		return export.WritePNG(path, img)
	}

	writer, err := export.NewPPMWriter(path)
	if err != nil {
		return err
	}
	tonemap := buffer.Tonemap(p.samples)
	return writer.WriteFileWith(p.accum, func(c core.Vec3, pt image.Point) core.Vec3 {
		return tonemap(c, core.Vec3{}, pt)
	})
}
