package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3
	normal     core.Vec3 // cached unit normal, e1 x e2
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3) Triangle {
	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)

	return Triangle{
		V0:     v0,
		V1:     v1,
		V2:     v2,
		normal: edge1.Cross(edge2).Normalize(),
	}
}

// Hit tests if a ray intersects with the triangle using barycentric
// coordinates. A ray parallel to the triangle plane divides by zero; the
// resulting NaN or Inf values fail the range checks below.
func (t Triangle) Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	f := 1.0 / edge1.Dot(h)

	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if !(u >= 0 && u <= 1) {
		return HitRecord{}, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if !(v >= 0 && u+v <= 1) {
		return HitRecord{}, false
	}

	root := f * edge2.Dot(q)
	if !(root >= tMin && root <= tMax) {
		return HitRecord{}, false
	}

	hit := NewHitRecord()
	hit.T = root
	hit.Point = ray.At(root)
	hit.SetFaceNormal(ray, t.normal)

	return hit, true
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t Triangle) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(t.V0, t.V1, t.V2)
}
