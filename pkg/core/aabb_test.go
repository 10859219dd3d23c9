package core

import (
	"math"
	"testing"
)

func TestAABB_Hit(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      Ray
		tMin     float64
		tMax     float64
		expected bool
	}{
		{"straight through", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), 0, math.Inf(1), true},
		{"negative direction swap", NewRay(NewVec3(5, 0, 0), NewVec3(-1, 0, 0)), 0, math.Inf(1), true},
		{"miss to the side", NewRay(NewVec3(3, 0, 5), NewVec3(0, 0, -1)), 0, math.Inf(1), false},
		{"pointing away", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, 1)), 0, math.Inf(1), false},
		{"tMax too short", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), 0, 3, false},
		{"origin inside", NewRay(NewVec3(0, 0, 0), NewVec3(1, 1, 0)), 0, math.Inf(1), true},
		{"parallel outside slab", NewRay(NewVec3(0, 2, 5), NewVec3(0, 0, -1)), 0, math.Inf(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Hit(tt.ray, tt.tMin, tt.tMax); got != tt.expected {
				t.Errorf("Expected hit=%t, got %t", tt.expected, got)
			}
		})
	}
}

func TestAABB_FlatBoxIsHittable(t *testing.T) {
	// Axis-aligned rects produce zero-thickness boxes
	flat := NewAABB(NewVec3(-1, -1, 0), NewVec3(1, 1, 0))
	ray := NewRay(NewVec3(0, 0, 3), NewVec3(0, 0, -1))

	if !flat.Hit(ray, 0, math.Inf(1)) {
		t.Error("Expected ray to hit zero-thickness box")
	}
}

func TestAABB_UnionAndPoints(t *testing.T) {
	a := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	b := NewAABB(NewVec3(-1, 0.5, 0.5), NewVec3(0.5, 2, 0.5))

	u := a.Union(b)
	if u.Min != NewVec3(-1, 0, 0) || u.Max != NewVec3(1, 2, 1) {
		t.Errorf("Unexpected union %v", u)
	}

	fromPoints := NewAABBFromPoints(NewVec3(1, -2, 3), NewVec3(-1, 2, 0), NewVec3(0, 0, 5))
	if fromPoints.Min != NewVec3(-1, -2, 0) || fromPoints.Max != NewVec3(1, 2, 5) {
		t.Errorf("Unexpected box from points %v", fromPoints)
	}
}
