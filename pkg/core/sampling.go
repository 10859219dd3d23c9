package core

import (
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator. A RandomSampler is not
// safe for concurrent use; every scene instance owns its own.
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler backed by a fresh source with the given seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// SampleInUnitSphere draws a point strictly inside the unit sphere by rejection
func SampleInUnitSphere(sampler Sampler) Vec3 {
	for {
		// Map [0,1)^3 to [-1,1)^3
		p := sampler.Get3D().Multiply(2).AddScalar(-1)
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}

// SampleUnitHemisphere draws a point inside the unit sphere and mirrors it
// into the hemisphere around normal
func SampleUnitHemisphere(normal Vec3, sampler Sampler) Vec3 {
	p := SampleInUnitSphere(sampler)
	if p.Dot(normal) > 0 {
		return p
	}
	return p.Negate()
}

// SampleInUnitDisk draws a point inside the unit disk (z = 0) by rejection
func SampleInUnitDisk(sampler Sampler) Vec3 {
	for {
		s := sampler.Get2D()
		p := NewVec3(2*s.X-1, 2*s.Y-1, 0)
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}
