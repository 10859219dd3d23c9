package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestTriangle_Hit(t *testing.T) {
	// Counter-clockwise in the XY plane, normal +z
	triangle := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
	)

	tests := []struct {
		name          string
		origin        core.Vec3
		direction     core.Vec3
		expectHit     bool
		expectedT     float64
		expectedFront bool
	}{
		{"inside from front", core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, -1), true, 1, true},
		{"inside from back", core.NewVec3(0.25, 0.25, -2), core.NewVec3(0, 0, 1), true, 2, false},
		{"on edge", core.NewVec3(0.5, 0.5, 1), core.NewVec3(0, 0, -1), true, 1, true},
		{"outside hypotenuse", core.NewVec3(0.6, 0.6, 1), core.NewVec3(0, 0, -1), false, 0, false},
		{"outside negative u", core.NewVec3(-0.1, 0.5, 1), core.NewVec3(0, 0, -1), false, 0, false},
		{"pointing away", core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, 1), false, 0, false},
		{"parallel to plane", core.NewVec3(0.25, 0.25, 0), core.NewVec3(1, 0, 0), false, 0, false},
		{"parallel above plane", core.NewVec3(-1, 0.25, 1), core.NewVec3(1, 0, 0), false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, tt.direction)
			hit, isHit := triangle.Hit(ray, 1e-4, math.Inf(1))

			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t", tt.expectHit, isHit)
			}
			if !isHit {
				return
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected FrontFace=%t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if hit.Normal.Dot(ray.Direction) >= 0 {
				t.Errorf("Normal %v should face against the ray %v", hit.Normal, ray.Direction)
			}
		})
	}
}

func TestTriangle_Normal(t *testing.T) {
	triangle := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(2, 0, 0),
		core.NewVec3(0, 2, 0),
	)

	if triangle.normal != core.NewVec3(0, 0, 1) {
		t.Errorf("Expected normal (0,0,1), got %v", triangle.normal)
	}

	box := triangle.BoundingBox()
	if box.Min != core.NewVec3(0, 0, 0) || box.Max != core.NewVec3(2, 2, 0) {
		t.Errorf("Unexpected bounding box %v", box)
	}
}
