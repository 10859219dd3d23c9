package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Config contains path tracing settings
type Config struct {
	MaxDepth   int       // Maximum number of bounces per path
	TMin       float64   // Offset that keeps bounces from re-hitting their origin
	Background core.Vec3 // Radiance of rays that escape the scene
}

// DefaultConfig returns the standard settings: 20 bounces, black background
func DefaultConfig() Config {
	return Config{
		MaxDepth:   20,
		TMin:       1e-4,
		Background: core.Vec3{},
	}
}

// PathTracingIntegrator implements unidirectional path tracing without
// next event estimation. Light is only found by bouncing into emitters.
type PathTracingIntegrator struct {
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config Config) *PathTracingIntegrator {
	return &PathTracingIntegrator{config: config}
}

// RayColor follows one path through the scene. The running color is
// multiplied by each attenuation; a path that uses every bounce without
// reaching a light or escaping returns black.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, s *scene.Scene) core.Vec3 {
	color := core.NewVec3(1, 1, 1)

	for depth := 0; depth < pt.config.MaxDepth; depth++ {
		hit, isHit := s.Hit(ray, pt.config.TMin, math.Inf(1))
		if !isHit {
			return color.MultiplyVec(pt.config.Background)
		}

		scatter, didScatter := s.Material(hit).Scatter(ray, hit, s.Sampler)
		color = color.MultiplyVec(scatter.Attenuation)
		if !didScatter {
			return color
		}

		ray = scatter.Scattered
	}

	return core.Vec3{}
}
