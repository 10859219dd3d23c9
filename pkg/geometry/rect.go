package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Rect is an axis-aligned rectangle. A0..A1 and B0..B1 span the two in-plane
// axes and K is the coordinate along the fixed axis. Which axes those are is
// decided by the Primitive kind that holds the rect.
type Rect struct {
	A0, A1 float64
	B0, B1 float64
	K      float64
}

// NewRect creates a rectangle, ordering each extent so A0 <= A1 and B0 <= B1
func NewRect(a0, a1, b0, b1, k float64) Rect {
	return Rect{
		A0: math.Min(a0, a1), A1: math.Max(a0, a1),
		B0: math.Min(b0, b1), B1: math.Max(b0, b1),
		K: k,
	}
}

// rectPlane names the axes of an axis-aligned rectangle and its fixed normal
type rectPlane struct {
	a, b, k int
	normal  core.Vec3
}

var (
	xyPlane = rectPlane{a: 0, b: 1, k: 2, normal: core.NewVec3(0, 0, 1)}
	xzPlane = rectPlane{a: 0, b: 2, k: 1, normal: core.NewVec3(0, -1, 0)}
	yzPlane = rectPlane{a: 1, b: 2, k: 0, normal: core.NewVec3(1, 0, 0)}
)

// rectPadding gives flat rects a thin box along the fixed axis
const rectPadding = 1e-4

func (r Rect) hit(ray core.Ray, tMin, tMax float64, plane rectPlane) (HitRecord, bool) {
	t := (r.K - ray.Origin.Component(plane.k)) / ray.Direction.Component(plane.k)
	// Written as negations so NaN from a parallel ray misses
	if !(t >= tMin && t <= tMax) {
		return HitRecord{}, false
	}

	a := ray.Origin.Component(plane.a) + t*ray.Direction.Component(plane.a)
	b := ray.Origin.Component(plane.b) + t*ray.Direction.Component(plane.b)
	if !(a >= r.A0 && a <= r.A1 && b >= r.B0 && b <= r.B1) {
		return HitRecord{}, false
	}

	hit := NewHitRecord()
	hit.T = t
	hit.Point = ray.At(t)
	hit.SetFaceNormal(ray, plane.normal)

	return hit, true
}

func (r Rect) boundingBox(plane rectPlane) core.AABB {
	var lo, hi [3]float64
	lo[plane.a], hi[plane.a] = r.A0, r.A1
	lo[plane.b], hi[plane.b] = r.B0, r.B1
	lo[plane.k], hi[plane.k] = r.K-rectPadding, r.K+rectPadding

	return core.NewAABB(
		core.NewVec3(lo[0], lo[1], lo[2]),
		core.NewVec3(hi[0], hi[1], hi[2]),
	)
}
