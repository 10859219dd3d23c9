package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray. Randomness comes
	// from the scene's own sampler.
	RayColor(ray core.Ray, s *scene.Scene) core.Vec3
}
