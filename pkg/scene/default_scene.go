package scene

import (
	"image"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// SphereTrio returns three spheres on a ground square (glossy, diffuse and
// glass) lit by a distant spherical light
func SphereTrio(resolution image.Point) *Description {
	camera := geometry.DefaultCameraConfig()
	camera.Center = core.NewVec3(0, 0.75, 2)
	camera.LookAt = core.NewVec3(0, 0.5, -1)
	camera.Up = core.NewVec3(0, 1, 0)
	camera.VFov = 40
	camera.AspectRatio = float64(resolution.X) / float64(resolution.Y)

	return &Description{
		Name:   "spheres",
		Camera: &camera,
		Materials: map[string]MaterialDescription{
			"ground": Lambertian(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6)),
			"red":    Lambertian(core.NewVec3(0.65, 0.25, 0.2)),
			"silver": Reflective(core.NewVec3(0.8, 0.8, 0.8), 50),
			"glass":  Refractive(core.NewVec3(1, 1, 1), 1.5),
			"sun":    Emissive(core.NewVec3(1.0, 14.0/15.0, 13.0/15.0), 15),
			"sky":    Emissive(core.NewVec3(0.5, 0.7, 1.0), 0.5),
		},
		Primitives: []PrimitiveDescription{
			XZSquare("ground", "ground", core.NewVec3(0, 0, 0), 100),
			Sphere("center", "red", core.NewVec3(0, 0.5, -1), 0.5),
			Sphere("left", "silver", core.NewVec3(-1, 0.5, -1), 0.5),
			Sphere("right", "glass", core.NewVec3(1, 0.5, -1), 0.5),
			Triangle("shard", "silver",
				core.NewVec3(-0.3, 0, -0.3), core.NewVec3(0.3, 0, -0.3), core.NewVec3(0, 0.4, -0.4)),
			Sphere("sun", "sun", core.NewVec3(30, 30.5, 15), 10),
			XZSquare("sky", "sky", core.NewVec3(0, 50, 0), 400),
		},
	}
}
