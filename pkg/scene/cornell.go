package scene

import (
	"image"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// CornellBox returns a two by two by two box lit by two blackbody panels on
// the side walls, with a glossy sphere resting on the floor. The camera looks
// down the y axis from above the open side.
func CornellBox(resolution image.Point) *Description {
	camera := geometry.DefaultCameraConfig()
	camera.Center = core.NewVec3(0, 2.4, 0)
	camera.LookAt = core.NewVec3(0, 0, 0)
	camera.Up = core.NewVec3(-1, 0, 0)
	camera.VFov = 70
	camera.AspectRatio = float64(resolution.X) / float64(resolution.Y)

	const (
		wall    = 2.0
		lantern = wall - 0.4
		inset   = 0.01
	)

	return &Description{
		Name:   "cornell",
		Camera: &camera,
		Materials: map[string]MaterialDescription{
			"lantern":     Emissive(core.BlackbodyBlender(5000), 1),
			"lantern-red": Emissive(core.BlackbodyBlender(2000), 1),
			"green":       Lambertian(core.NewVec3(0, 1, 0)),
			"red":         Lambertian(core.NewVec3(1, 0, 0)),
			"white":       Lambertian(core.NewVec3(1, 1, 1)),
			"reflective":  Reflective(core.NewVec3(1, 1, 1), 1/0.001),
			"refractive":  Refractive(core.NewVec3(1, 1, 1), 1.5),
			"purple":      Lambertian(core.NewVec3(1, 0, 1).Multiply(0.6)),
		},
		Primitives: []PrimitiveDescription{
			YZSquare("lantern", "lantern", core.NewVec3(1-inset, 0, 0), lantern),
			YZSquare("lantern", "lantern-red", core.NewVec3(-1+inset, 0, 0), lantern),
			XZSquare("back", "white", core.NewVec3(0, -1, 0), wall),
			XYSquare("floor", "white", core.NewVec3(0, 0, -1), wall),
			XYSquare("ceiling", "white", core.NewVec3(0, 0, 1), wall),
			YZSquare("left", "green", core.NewVec3(1, 0, 0), wall),
			YZSquare("right", "red", core.NewVec3(-1, 0, 0), wall),
			Sphere("sphere", "reflective", core.NewVec3(0, 0, -0.5), 0.5),
		},
	}
}

// Builtin returns a named built-in scene description
func Builtin(name string, resolution image.Point) (*Description, bool) {
	switch name {
	case "cornell":
		return CornellBox(resolution), true
	case "spheres":
		return SphereTrio(resolution), true
	case "spheregrid":
		return SphereGrid(resolution, 8), true
	default:
		return nil, false
	}
}

// BuiltinNames lists the names accepted by Builtin
func BuiltinNames() []string {
	return []string{"cornell", "spheres", "spheregrid"}
}
