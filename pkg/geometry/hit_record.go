package geometry

import "github.com/df07/go-pathtracer/pkg/core"

// NoMaterial marks a hit record whose material has not been assigned yet
const NoMaterial = -1

// HitRecord contains information about a ray-surface intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal, oriented against the incoming ray
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether the ray hit the side the geometric normal points to
	Material  int       // Index into the owning scene's material table
}

// NewHitRecord returns an empty record with no material assigned
func NewHitRecord() HitRecord {
	return HitRecord{Material: NoMaterial}
}

// SetFaceNormal sets the normal and front face flag for a geometric normal.
// outwardNormal is assumed to have unit length.
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
