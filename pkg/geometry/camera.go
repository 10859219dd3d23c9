package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Center        core.Vec3 `json:"center"`         // Camera position
	LookAt        core.Vec3 `json:"look_at"`        // Point the camera is looking at
	Up            core.Vec3 `json:"up"`             // Up direction
	VFov          float64   `json:"vfov"`           // Vertical field of view in degrees
	AspectRatio   float64   `json:"aspect_ratio"`   // Width / height
	Aperture      float64   `json:"aperture"`       // Lens diameter
	FocusDistance float64   `json:"focus_distance"` // Distance to the plane of focus
}

// DefaultCameraConfig returns the lens settings every built-in scene uses
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:        core.NewVec3(0, 0, 1),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          70,
		AspectRatio:   4.0 / 3.0,
		Aperture:      0.01,
		FocusDistance: 1.0,
	}
}

// Camera generates primary rays. It is immutable once built.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float64
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) *Camera {
	theta := mgl64.DegToRad(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h
	viewportWidth := config.AspectRatio * viewportHeight

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = 1.0
	}

	// Rows of the view matrix are the camera basis: right, up, backward
	view := mgl64.LookAtV(toMgl(config.Center), toMgl(config.LookAt), toMgl(config.Up))
	u := fromMgl(view.Row(0).Vec3()).Normalize()
	v := fromMgl(view.Row(1).Vec3()).Normalize()
	w := fromMgl(view.Row(2).Vec3()).Normalize()

	origin := config.Center
	horizontal := u.Multiply(viewportWidth * focusDistance)
	vertical := v.Multiply(viewportHeight * focusDistance)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}
}

// GetRay returns the ray through viewport coordinates (s, t), where (0, 0) is
// the lower-left corner and (1, 1) the upper-right. The origin is jittered
// across the lens disk.
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	rd := core.SampleInUnitDisk(sampler).Multiply(c.lensRadius)
	offset := c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin).
		Subtract(offset)

	return core.NewRay(c.origin.Add(offset), direction)
}

func toMgl(v core.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl64.Vec3) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
