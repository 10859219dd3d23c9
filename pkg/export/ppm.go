// Package export writes rendered buffers to image files
package export

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"os"

	"github.com/df07/go-pathtracer/pkg/buffer"
	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrEmptyPath is returned when a writer is created without a destination
var ErrEmptyPath = errors.New("empty output path")

// ColorFunc preprocesses a color before it is written
type ColorFunc func(c core.Vec3, p image.Point) core.Vec3

// PPMWriter writes plain-text (P3) PPM files
type PPMWriter struct {
	path string
}

// NewPPMWriter creates a writer for path
func NewPPMWriter(path string) (*PPMWriter, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	return &PPMWriter{path: path}, nil
}

// WriteFile writes buf as is, clamping each channel to [0, 1]
func (w *PPMWriter) WriteFile(buf buffer.Buffer) error {
	return w.WriteFileWith(buf, nil)
}

// WriteFileWith writes buf after passing every color through fn
func (w *PPMWriter) WriteFileWith(buf buffer.Buffer, fn ColorFunc) error {
	file, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", w.path, err)
	}

	if err := EncodePPM(file, buf, fn); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", w.path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", w.path, err)
	}
	return nil
}

// EncodePPM writes the P3 header followed by one "r g b" line per pixel in
// row-major order. fn may be nil.
func EncodePPM(w io.Writer, buf buffer.Buffer, fn ColorFunc) error {
	res := buf.Resolution()
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", res.X, res.Y); err != nil {
		return err
	}

	for y := 0; y < res.Y; y++ {
		for x := 0; x < res.X; x++ {
			p := image.Pt(x, y)
			c, err := buf.Get(p)
			if err != nil {
				return err
			}
			if fn != nil {
				c = fn(c, p)
			}
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", channel(c.X), channel(c.Y), channel(c.Z)); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

func channel(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(math.Max(0, math.Min(1, v)) * 255)
}
