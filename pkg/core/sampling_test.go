package core

import (
	"math"
	"testing"
)

// sequenceSampler replays fixed values, cycling when exhausted
type sequenceSampler struct {
	values []float64
	index  int
}

func (s *sequenceSampler) next() float64 {
	v := s.values[s.index%len(s.values)]
	s.index++
	return v
}

func (s *sequenceSampler) Get1D() float64 { return s.next() }
func (s *sequenceSampler) Get2D() Vec2    { return NewVec2(s.next(), s.next()) }
func (s *sequenceSampler) Get3D() Vec3    { return NewVec3(s.next(), s.next(), s.next()) }

func TestSampleInUnitSphere_RejectsOutside(t *testing.T) {
	// First triple maps to (0.98,0.98,0.98), outside; second to (0.2,-0.2,0)
	sampler := &sequenceSampler{values: []float64{0.99, 0.99, 0.99, 0.6, 0.4, 0.5}}

	p := SampleInUnitSphere(sampler)
	expected := NewVec3(0.2, -0.2, 0)
	if math.Abs(p.X-expected.X) > 1e-12 || math.Abs(p.Y-expected.Y) > 1e-12 || math.Abs(p.Z-expected.Z) > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, p)
	}
	if sampler.index != 6 {
		t.Errorf("Expected two draws of three values, consumed %d", sampler.index)
	}
}

func TestSampleUnitHemisphere_AlwaysAboveNormal(t *testing.T) {
	sampler := NewSeededSampler(42)
	normals := []Vec3{
		NewVec3(0, 1, 0),
		NewVec3(0, 0, -1),
		NewVec3(1, 1, 1).Normalize(),
	}

	for _, normal := range normals {
		for i := 0; i < 1000; i++ {
			d := SampleUnitHemisphere(normal, sampler)
			if d.Dot(normal) < 0 {
				t.Fatalf("Sample %v is below normal %v", d, normal)
			}
			if d.LengthSquared() >= 1 {
				t.Fatalf("Sample %v is outside the unit sphere", d)
			}
		}
	}
}

func TestSampleInUnitDisk(t *testing.T) {
	sampler := NewSeededSampler(7)
	for i := 0; i < 1000; i++ {
		p := SampleInUnitDisk(sampler)
		if p.Z != 0 {
			t.Fatalf("Disk sample should lie in z=0, got %v", p)
		}
		if p.LengthSquared() >= 1 {
			t.Fatalf("Disk sample %v outside the unit disk", p)
		}
	}
}

func TestSeededSampler_Deterministic(t *testing.T) {
	a := NewSeededSampler(42)
	b := NewSeededSampler(42)
	for i := 0; i < 10; i++ {
		if a.Get1D() != b.Get1D() {
			t.Fatal("Samplers with the same seed should produce the same sequence")
		}
	}
}
