package buffer

import (
	"fmt"
	"image"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// RGBA8 is an 8-bit per channel view over a byte slice. Channels is 3 for
// packed RGB or 4 for RGBA, in which case alpha is kept opaque.
type RGBA8 struct {
	Pix      []uint8
	Stride   int
	Channels int
	res      image.Point
}

// NewRGBA8 wraps pix, or allocates it when nil
func NewRGBA8(res image.Point, channels int, pix []uint8) (*RGBA8, error) {
	if err := checkResolution(res); err != nil {
		return nil, err
	}
	if channels != 3 && channels != 4 {
		return nil, fmt.Errorf("unsupported channel count %d", channels)
	}

	need := res.X * res.Y * channels
	if pix == nil {
		pix = make([]uint8, need)
		if channels == 4 {
			for i := 3; i < need; i += 4 {
				pix[i] = 0xff
			}
		}
	}
	if len(pix) < need {
		return nil, fmt.Errorf("need %d bytes, got %d: %w", need, len(pix), ErrBufferTooSmall)
	}

	return &RGBA8{
		Pix:      pix,
		Stride:   res.X * channels,
		Channels: channels,
		res:      res,
	}, nil
}

// NewRGBA8FromImage shares the pixels of img
func NewRGBA8FromImage(img *image.RGBA) (*RGBA8, error) {
	res := img.Rect.Size()
	if err := checkResolution(res); err != nil {
		return nil, err
	}
	need := (res.Y-1)*img.Stride + res.X*4
	if len(img.Pix) < need {
		return nil, fmt.Errorf("need %d bytes, got %d: %w", need, len(img.Pix), ErrBufferTooSmall)
	}
	return &RGBA8{Pix: img.Pix, Stride: img.Stride, Channels: 4, res: res}, nil
}

// Resolution returns the buffer size
func (b *RGBA8) Resolution() image.Point {
	return b.res
}

func (b *RGBA8) offset(p image.Point) int {
	return p.Y*b.Stride + p.X*b.Channels
}

func toByte(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(math.Max(0, math.Min(1, v)) * 255)
}

// Put stores c clamped to [0, 1]
func (b *RGBA8) Put(p image.Point, c core.Vec3) error {
	if !inBounds(p, b.res) {
		return outOfBounds(p, b.res)
	}
	i := b.offset(p)
	b.Pix[i] = toByte(c.X)
	b.Pix[i+1] = toByte(c.Y)
	b.Pix[i+2] = toByte(c.Z)
	if b.Channels == 4 {
		b.Pix[i+3] = 0xff
	}
	return nil
}

// Get returns the color at p in [0, 1]
func (b *RGBA8) Get(p image.Point) (core.Vec3, error) {
	if !inBounds(p, b.res) {
		return core.Vec3{}, outOfBounds(p, b.res)
	}
	i := b.offset(p)
	return core.NewVec3(
		float64(b.Pix[i])/255,
		float64(b.Pix[i+1])/255,
		float64(b.Pix[i+2])/255,
	), nil
}

// Add quantizes c like Put and adds it to the stored bytes, saturating at
// 255 per channel
func (b *RGBA8) Add(p image.Point, c core.Vec3) error {
	if !inBounds(p, b.res) {
		return outOfBounds(p, b.res)
	}
	i := b.offset(p)
	b.Pix[i] = addSaturating(b.Pix[i], toByte(c.X))
	b.Pix[i+1] = addSaturating(b.Pix[i+1], toByte(c.Y))
	b.Pix[i+2] = addSaturating(b.Pix[i+2], toByte(c.Z))
	if b.Channels == 4 {
		b.Pix[i+3] = 0xff
	}
	return nil
}

func addSaturating(a, b uint8) uint8 {
	if sum := uint16(a) + uint16(b); sum < 0xff {
		return uint8(sum)
	}
	return 0xff
}
