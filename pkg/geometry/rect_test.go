package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestRect_FrontFaceMatchesFixedNormal(t *testing.T) {
	tests := []struct {
		name        string
		primitive   Primitive
		fixedNormal core.Vec3
		origin      core.Vec3
		direction   core.Vec3
	}{
		{"xy from +z", NewXYRectPrimitive(-1, 1, -1, 1, 0), core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1)},
		{"xy from -z", NewXYRectPrimitive(-1, 1, -1, 1, 0), core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -2), core.NewVec3(0, 0, 1)},
		{"xz from +y", NewXZRectPrimitive(-1, 1, -1, 1, 0), core.NewVec3(0, -1, 0), core.NewVec3(0, 2, 0), core.NewVec3(0, -1, 0)},
		{"xz from -y", NewXZRectPrimitive(-1, 1, -1, 1, 0), core.NewVec3(0, -1, 0), core.NewVec3(0, -2, 0), core.NewVec3(0, 1, 0)},
		{"yz from +x", NewYZRectPrimitive(-1, 1, -1, 1, 0), core.NewVec3(1, 0, 0), core.NewVec3(2, 0, 0), core.NewVec3(-1, 0, 0)},
		{"yz from -x", NewYZRectPrimitive(-1, 1, -1, 1, 0), core.NewVec3(1, 0, 0), core.NewVec3(-2, 0, 0), core.NewVec3(1, 0, 0)},
		{"oblique xy", NewXYRectPrimitive(-1, 1, -1, 1, 0), core.NewVec3(0, 0, 1), core.NewVec3(0.5, 0.5, 1), core.NewVec3(-0.3, -0.2, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, tt.direction)
			hit, isHit := tt.primitive.Hit(ray, 1e-4, math.Inf(1))
			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}

			expectedFront := ray.Direction.Dot(tt.fixedNormal) < 0
			if hit.FrontFace != expectedFront {
				t.Errorf("Expected FrontFace=%t, got %t", expectedFront, hit.FrontFace)
			}

			expectedNormal := tt.fixedNormal
			if !expectedFront {
				expectedNormal = expectedNormal.Negate()
			}
			if hit.Normal != expectedNormal {
				t.Errorf("Expected normal %v, got %v", expectedNormal, hit.Normal)
			}
		})
	}
}

func TestRect_Hit_Bounds(t *testing.T) {
	rect := NewXYRectPrimitive(0, 2, 0, 1, -3)

	tests := []struct {
		name      string
		origin    core.Vec3
		expectHit bool
	}{
		{"center", core.NewVec3(1, 0.5, 0), true},
		{"corner", core.NewVec3(2, 1, 0), true},
		{"outside x", core.NewVec3(2.1, 0.5, 0), false},
		{"outside y", core.NewVec3(1, -0.1, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, core.NewVec3(0, 0, -1))
			hit, isHit := rect.Hit(ray, 1e-4, math.Inf(1))
			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t", tt.expectHit, isHit)
			}
			if isHit && math.Abs(hit.T-3) > 1e-9 {
				t.Errorf("Expected t=3, got t=%f", hit.T)
			}
		})
	}
}

func TestRect_Hit_ParallelAndRange(t *testing.T) {
	rect := NewXZRectPrimitive(-1, 1, -1, 1, 0)

	// Parallel ray inside the plane divides zero by zero
	parallel := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))
	if _, isHit := rect.Hit(parallel, 1e-4, math.Inf(1)); isHit {
		t.Error("Expected parallel ray to miss")
	}

	ray := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))
	if _, isHit := rect.Hit(ray, 1e-4, 4); isHit {
		t.Error("Expected miss beyond tMax")
	}
}
