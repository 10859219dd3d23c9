package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Object pairs a shape with an index into the scene's material table
type Object struct {
	Name      string
	Primitive geometry.Primitive
	Material  int
}

// Scene contains all the elements needed for rendering. A Scene and its
// Sampler belong to a single goroutine.
type Scene struct {
	Camera        *geometry.Camera
	Materials     []material.Material
	MaterialNames []string
	Objects       []Object
	Sampler       core.Sampler
}

// Hit returns the closest intersection in (tMin, tMax). Objects are scanned
// in declaration order and an earlier object keeps a tie.
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (geometry.HitRecord, bool) {
	closest := tMax
	found := false
	result := geometry.NewHitRecord()

	for _, object := range s.Objects {
		hit, ok := object.Primitive.Hit(ray, tMin, closest)
		if !ok || (found && hit.T >= closest) {
			continue
		}
		hit.Material = object.Material
		result = hit
		closest = hit.T
		found = true
	}

	return result, found
}

// Material returns the material a hit refers to
func (s *Scene) Material(hit geometry.HitRecord) material.Material {
	return s.Materials[hit.Material]
}

// BoundingBox returns the union of all object bounds, false for an empty scene
func (s *Scene) BoundingBox() (core.AABB, bool) {
	var box core.AABB
	found := false
	for _, object := range s.Objects {
		b, ok := object.Primitive.BoundingBox()
		if !ok {
			continue
		}
		if !found {
			box = b
			found = true
			continue
		}
		box = box.Union(b)
	}
	return box, found
}
