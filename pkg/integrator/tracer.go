package integrator

import (
	"image"

	"github.com/df07/go-pathtracer/pkg/buffer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// PathTracer accumulates one sample per pixel per pass into a private
// buffer. It is owned by a single goroutine.
type PathTracer struct {
	scene      *scene.Scene
	integrator Integrator
	buffer     *buffer.Accumulation
	samples    uint64
	dropped    uint64
}

// NewPathTracer creates a tracer for s at the given resolution
func NewPathTracer(s *scene.Scene, resolution image.Point, config Config) (*PathTracer, error) {
	return NewPathTracerWith(s, resolution, NewPathTracingIntegrator(config))
}

// NewPathTracerWith creates a tracer using a custom integrator
func NewPathTracerWith(s *scene.Scene, resolution image.Point, integrator Integrator) (*PathTracer, error) {
	buf, err := buffer.NewAccumulation(resolution)
	if err != nil {
		return nil, err
	}
	return &PathTracer{
		scene:      s,
		integrator: integrator,
		buffer:     buf,
	}, nil
}

// Trace runs one pass: every pixel gets one more path sample. Row 0 is the
// top of the image.
func (pt *PathTracer) Trace() {
	res := pt.buffer.Resolution()
	width := float64(res.X)
	height := float64(res.Y)

	for y := 0; y < res.Y; y++ {
		v := float64(res.Y-1-y) / height
		for x := 0; x < res.X; x++ {
			u := float64(x) / width
			ray := pt.scene.Camera.GetRay(u, v, pt.scene.Sampler)
			color := pt.integrator.RayColor(ray, pt.scene)

			// A NaN or Inf sample would poison the pixel for the rest of the render
			if !color.IsFinite() {
				pt.dropped++
				continue
			}

			i := pt.buffer.PixOffset(x, y)
			pt.buffer.Pix[i] = pt.buffer.Pix[i].Add(color)
		}
	}

	pt.samples++
}

// Samples returns the number of passes in the current buffer
func (pt *PathTracer) Samples() uint64 {
	return pt.samples
}

// Dropped returns how many non-finite samples have been discarded
func (pt *PathTracer) Dropped() uint64 {
	return pt.dropped
}

// Resolution returns the image size
func (pt *PathTracer) Resolution() image.Point {
	return pt.buffer.Resolution()
}

// TakeResult hands over the current buffer and pass count and starts a
// fresh buffer of the same size
func (pt *PathTracer) TakeResult() (*buffer.Accumulation, uint64) {
	fresh, _ := buffer.NewAccumulation(pt.buffer.Resolution())
	taken, samples := pt.buffer, pt.samples
	pt.buffer = fresh
	pt.samples = 0
	return taken, samples
}
