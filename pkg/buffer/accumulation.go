package buffer

import (
	"fmt"
	"image"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Accumulation stores unclamped floating point color sums
type Accumulation struct {
	// Pix holds the colors in row-major order
	Pix    []core.Vec3
	Stride int
	res    image.Point
}

// NewAccumulation allocates a zeroed buffer
func NewAccumulation(res image.Point) (*Accumulation, error) {
	if err := checkResolution(res); err != nil {
		return nil, err
	}
	return &Accumulation{
		Pix:    make([]core.Vec3, res.X*res.Y),
		Stride: res.X,
		res:    res,
	}, nil
}

// Resolution returns the buffer size
func (a *Accumulation) Resolution() image.Point {
	return a.res
}

// PixOffset returns the index of (x, y) in Pix
func (a *Accumulation) PixOffset(x, y int) int {
	return y*a.Stride + x
}

// Put overwrites the color at p
func (a *Accumulation) Put(p image.Point, c core.Vec3) error {
	if !inBounds(p, a.res) {
		return outOfBounds(p, a.res)
	}
	a.Pix[a.PixOffset(p.X, p.Y)] = c
	return nil
}

// Get returns the color at p
func (a *Accumulation) Get(p image.Point) (core.Vec3, error) {
	if !inBounds(p, a.res) {
		return core.Vec3{}, outOfBounds(p, a.res)
	}
	return a.Pix[a.PixOffset(p.X, p.Y)], nil
}

// Add adds c to the color at p
func (a *Accumulation) Add(p image.Point, c core.Vec3) error {
	if !inBounds(p, a.res) {
		return outOfBounds(p, a.res)
	}
	i := a.PixOffset(p.X, p.Y)
	a.Pix[i] = a.Pix[i].Add(c)
	return nil
}

// Merge adds other into a pixel by pixel. Both must have the same resolution.
func (a *Accumulation) Merge(other *Accumulation) error {
	if other.res != a.res {
		return fmt.Errorf("cannot merge %v into %v: %w", other.res, a.res, ErrInvalidResolution)
	}
	for i, c := range other.Pix {
		a.Pix[i] = a.Pix[i].Add(c)
	}
	return nil
}

// Max returns the largest channel value and where it occurs
func (a *Accumulation) Max() (float64, image.Point) {
	best := 0.0
	var at image.Point
	for y := 0; y < a.res.Y; y++ {
		for x := 0; x < a.res.X; x++ {
			c := a.Pix[a.PixOffset(x, y)]
			if m := max(c.X, c.Y, c.Z); m > best {
				best = m
				at = image.Pt(x, y)
			}
		}
	}
	return best, at
}
