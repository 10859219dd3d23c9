// Package buffer holds the image buffers the renderer accumulates into and
// displays from. Coordinates are image.Points with the origin at the top-left.
package buffer

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

var (
	// ErrOutOfBounds is returned for coordinates outside a buffer
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	// ErrInvalidResolution is returned for non-positive buffer sizes
	ErrInvalidResolution = errors.New("invalid resolution")
	// ErrBufferTooSmall is returned when a backing slice cannot hold the image
	ErrBufferTooSmall = errors.New("backing buffer too small")
)

// Buffer is a fixed-size grid of RGB colors
type Buffer interface {
	Resolution() image.Point
	Put(p image.Point, c core.Vec3) error
	Get(p image.Point) (core.Vec3, error)
	Add(p image.Point, c core.Vec3) error
}

// CopyFunc combines a source color with the current destination color at p
type CopyFunc func(src, dst core.Vec3, p image.Point) core.Vec3

func checkResolution(res image.Point) error {
	if res.X <= 0 || res.Y <= 0 {
		return fmt.Errorf("%dx%d: %w", res.X, res.Y, ErrInvalidResolution)
	}
	return nil
}

func outOfBounds(p, res image.Point) error {
	return fmt.Errorf("%v outside %dx%d: %w", p, res.X, res.Y, ErrOutOfBounds)
}

func inBounds(p, res image.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < res.X && p.Y < res.Y
}

// CopyTo copies the overlapping region of src into dst
func CopyTo(src, dst Buffer) error {
	return CopyToWith(src, dst, func(s, _ core.Vec3, _ image.Point) core.Vec3 {
		return s
	})
}

// CopyToWith writes fn(src, dst, p) into dst for every p in the overlap of
// both resolutions
func CopyToWith(src, dst Buffer, fn CopyFunc) error {
	overlap := image.Rectangle{Max: src.Resolution()}.Intersect(image.Rectangle{Max: dst.Resolution()})

	for y := overlap.Min.Y; y < overlap.Max.Y; y++ {
		for x := overlap.Min.X; x < overlap.Max.X; x++ {
			p := image.Pt(x, y)
			s, err := src.Get(p)
			if err != nil {
				return err
			}
			d, err := dst.Get(p)
			if err != nil {
				return err
			}
			if err := dst.Put(p, fn(s, d, p)); err != nil {
				return err
			}
		}
	}
	return nil
}

// ScaleCopyToWith fills all of dst, sampling src at the nearest
// proportionally scaled coordinate
func ScaleCopyToWith(src, dst Buffer, fn CopyFunc) error {
	srcRes := src.Resolution()
	dstRes := dst.Resolution()

	for y := 0; y < dstRes.Y; y++ {
		for x := 0; x < dstRes.X; x++ {
			p := image.Pt(x, y)
			sp := image.Pt(x*srcRes.X/dstRes.X, y*srcRes.Y/dstRes.Y)

			s, err := src.Get(sp)
			if err != nil {
				return err
			}
			d, err := dst.Get(p)
			if err != nil {
				return err
			}
			if err := dst.Put(p, fn(s, d, p)); err != nil {
				return err
			}
		}
	}
	return nil
}

// AddTo adds src into dst over the overlap of both resolutions
func AddTo(src, dst Buffer) error {
	return CopyToWith(src, dst, func(s, d core.Vec3, _ image.Point) core.Vec3 {
		return d.Add(s)
	})
}

// Tonemap returns a CopyFunc mapping a radiance sum over samples passes to a
// displayable color, sqrt(sum/samples) per channel. Zero samples give black.
func Tonemap(samples uint64) CopyFunc {
	if samples == 0 {
		return func(_, _ core.Vec3, _ image.Point) core.Vec3 {
			return core.Vec3{}
		}
	}
	inv := 1.0 / float64(samples)
	return func(s, _ core.Vec3, _ image.Point) core.Vec3 {
		c := s.Multiply(inv)
		return core.NewVec3(
			math.Sqrt(math.Max(0, c.X)),
			math.Sqrt(math.Max(0, c.Y)),
			math.Sqrt(math.Max(0, c.Z)),
		)
	}
}
