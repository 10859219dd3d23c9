package scene

import (
	"fmt"
	"image"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// SphereGrid returns a gridSize by gridSize field of glossy spheres on a gray
// floor. Hue varies along x and saturation along z.
func SphereGrid(resolution image.Point, gridSize int) *Description {
	if gridSize < 2 {
		gridSize = 2
	}

	camera := geometry.DefaultCameraConfig()
	camera.Center = core.NewVec3(4.5, 6, 18)
	camera.LookAt = core.NewVec3(4.5, 0.8, 4.5)
	camera.Up = core.NewVec3(0, 1, 0)
	camera.VFov = 40
	camera.Aperture = 0.02
	camera.FocusDistance = camera.Center.Subtract(camera.LookAt).Length()
	camera.AspectRatio = float64(resolution.X) / float64(resolution.Y)

	d := &Description{
		Name:   "spheregrid",
		Camera: &camera,
		Materials: map[string]MaterialDescription{
			"floor": Lambertian(core.NewVec3(0.5, 0.5, 0.5)),
			"sun":   Emissive(core.NewVec3(1, 0.96, 0.83), 12),
		},
		Primitives: []PrimitiveDescription{
			XZSquare("floor", "floor", core.NewVec3(4.5, 0, 4.5), 60),
			Sphere("sun", "sun", core.NewVec3(20, 25, 20), 8),
		},
	}

	// Fit the grid into a 9x9 area regardless of its size
	const area = 9.0
	spacing := area / float64(gridSize-1)
	radius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - area/2 + 4.5
			z := float64(j)*spacing - area/2 + 4.5

			hue := float64(i) / float64(gridSize)
			saturation := 0.2 + 0.7*float64(j)/float64(gridSize-1)
			lightness := 0.55 + 0.1*math.Sin(float64(i+j)*0.5)
			color := core.HSLToRGB(core.NewVec3(hue, saturation, lightness))

			roughness := 0.05 + 0.05*float64((i+j)%3)
			name := fmt.Sprintf("ball-%d-%d", i, j)
			d.Materials[name] = Reflective(color, 1/roughness)
			d.Primitives = append(d.Primitives, Sphere(name, name, core.NewVec3(x, radius, z), radius))
		}
	}

	return d
}
