package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/buffer"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/export"
)

type testLogger struct {
	messages []string
}

func (tl *testLogger) Printf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, fmt.Sprintf(format, args...))
}

type queueSource struct {
	results []TraceResult
}

func (q *queueSource) TryReceive() (TraceResult, bool) {
	if len(q.results) == 0 {
		return TraceResult{}, false
	}
	r := q.results[0]
	q.results = q.results[1:]
	return r, true
}

func filledResult(t *testing.T, res image.Point, value float64, samples uint64) TraceResult {
	t.Helper()
	buf, err := buffer.NewAccumulation(res)
	if err != nil {
		t.Fatalf("Failed to create buffer: %v", err)
	}
	for i := range buf.Pix {
		buf.Pix[i] = core.NewVec3(value, value, value)
	}
	return TraceResult{Buffer: buf, Samples: samples}
}

func newTestProgressive(t *testing.T, res image.Point, results ...TraceResult) (*Progressive, *testLogger) {
	t.Helper()
	logger := &testLogger{}
	p, err := NewProgressive(&queueSource{results: results}, res, logger)
	if err != nil {
		t.Fatalf("Failed to create progressive: %v", err)
	}
	return p, logger
}

func TestProgressive_PollMergesOneResultPerCall(t *testing.T) {
	res := image.Pt(3, 2)
	p, _ := newTestProgressive(t, res,
		filledResult(t, res, 2, 2),
		filledResult(t, res, 2, 2),
	)

	for i, want := range []uint64{2, 4} {
		merged, err := p.Poll()
		if err != nil {
			t.Fatalf("Poll %d failed: %v", i, err)
		}
		if !merged {
			t.Fatalf("Poll %d: expected a merge", i)
		}
		if p.Samples() != want {
			t.Errorf("Poll %d: expected %d samples, got %d", i, want, p.Samples())
		}
	}

	merged, err := p.Poll()
	if err != nil || merged {
		t.Errorf("Expected empty poll, got merged=%v err=%v", merged, err)
	}

	c, _ := p.accum.Get(image.Pt(1, 1))
	if c != core.NewVec3(4, 4, 4) {
		t.Errorf("Expected accumulated (4,4,4), got %v", c)
	}

	stats := p.Stats()
	if stats.Samples != 4 || stats.Checkpoints != 2 {
		t.Errorf("Expected 4 samples over 2 checkpoints, got %d over %d", stats.Samples, stats.Checkpoints)
	}
}

func TestProgressive_PollRejectsEmptyCheckpoint(t *testing.T) {
	p, _ := newTestProgressive(t, image.Pt(2, 2), TraceResult{Worker: 3})

	if _, err := p.Poll(); err == nil {
		t.Error("Expected error for checkpoint without buffer")
	}
}

func TestProgressive_PollRejectsMismatchedResolution(t *testing.T) {
	res := image.Pt(2, 2)
	p, _ := newTestProgressive(t, res, filledResult(t, image.Pt(3, 2), 1, 1))

	_, err := p.Poll()
	if !errors.Is(err, buffer.ErrInvalidResolution) {
		t.Errorf("Expected ErrInvalidResolution, got %v", err)
	}
	if p.Samples() != 0 {
		t.Errorf("Expected no samples after a rejected merge, got %d", p.Samples())
	}
}

func TestProgressive_Render(t *testing.T) {
	res := image.Pt(4, 2)
	p, _ := newTestProgressive(t, res, filledResult(t, res, 0.25, 1))

	dst, err := buffer.NewRGBA8(image.Pt(2, 1), 3, nil)
	if err != nil {
		t.Fatalf("Failed to create display buffer: %v", err)
	}

	// Nothing merged yet: black
	if err := p.Render(dst); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	for i, b := range dst.Pix {
		if b != 0 {
			t.Fatalf("Expected black before any merge, byte %d is %d", i, b)
		}
	}

	if _, err := p.Poll(); err != nil {
		t.Fatalf("Poll failed: %v", err)
	}
	if err := p.Render(dst); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// sqrt(0.25 / 1) = 0.5
	for i, b := range dst.Pix {
		if b != 127 {
			t.Errorf("Expected 127 at byte %d, got %d", i, b)
		}
	}
}

func TestProgressive_Snapshot(t *testing.T) {
	res := image.Pt(2, 2)
	p, _ := newTestProgressive(t, res, filledResult(t, res, 1, 1))

	if p.LatestImage() != nil {
		t.Error("Expected no image before the first snapshot")
	}

	p.Poll()
	img, err := p.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if p.LatestImage() != img {
		t.Error("Expected LatestImage to return the published snapshot")
	}

	c := img.RGBAAt(1, 1)
	if c.R != 255 || c.G != 255 || c.B != 255 || c.A != 255 {
		t.Errorf("Expected opaque white, got %v", c)
	}
	if lum := p.Stats().AverageLuminance; lum < 0.999 {
		t.Errorf("Expected luminance near 1, got %f", lum)
	}
	if peak := p.Stats().PeakRadiance; peak != 1 {
		t.Errorf("Expected peak radiance 1, got %f", peak)
	}
}

func TestProgressive_Export(t *testing.T) {
	res := image.Pt(2, 1)
	dir := t.TempDir()

	t.Run("ppm", func(t *testing.T) {
		p, _ := newTestProgressive(t, res, filledResult(t, res, 4, 4))
		p.Poll()

		path := filepath.Join(dir, "render.ppm")
		if err := p.Export(path); err != nil {
			t.Fatalf("Export failed: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Failed to read export: %v", err)
		}
		expected := "P3\n2 1\n255\n255 255 255\n255 255 255\n"
		if string(data) != expected {
			t.Errorf("Expected %q, got %q", expected, string(data))
		}
	})

	t.Run("png", func(t *testing.T) {
		p, _ := newTestProgressive(t, res, filledResult(t, res, 1, 4))
		p.Poll()

		path := filepath.Join(dir, "render.PNG")
		if err := p.Export(path); err != nil {
			t.Fatalf("Export failed: %v", err)
		}
		file, err := os.Open(path)
		if err != nil {
			t.Fatalf("Failed to open export: %v", err)
		}
		defer file.Close()
		img, err := png.Decode(file)
		if err != nil {
			t.Fatalf("Failed to decode export: %v", err)
		}
		if img.Bounds().Size() != res {
			t.Errorf("Expected %v, got %v", res, img.Bounds().Size())
		}
	})

	t.Run("failure is logged", func(t *testing.T) {
		p, logger := newTestProgressive(t, res)

		err := p.Export("")
		if !errors.Is(err, export.ErrEmptyPath) {
			t.Errorf("Expected ErrEmptyPath, got %v", err)
		}
		if len(logger.messages) == 0 || !strings.Contains(logger.messages[len(logger.messages)-1], "Export failed") {
			t.Errorf("Expected failure to be logged, got %v", logger.messages)
		}
	})
}
