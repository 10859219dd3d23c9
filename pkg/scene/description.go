package scene

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

var (
	// ErrMissingMaterial is returned when a primitive names an undeclared material
	ErrMissingMaterial = errors.New("missing material")
	// ErrNoCamera is returned when a description has no camera
	ErrNoCamera = errors.New("camera is required")
	// ErrInvalidPrimitive is returned for malformed primitive declarations
	ErrInvalidPrimitive = errors.New("invalid primitive")
	// ErrInvalidMaterial is returned for malformed material declarations
	ErrInvalidMaterial = errors.New("invalid material")
)

// MaterialDescription declares a material by value
type MaterialDescription struct {
	Kind           material.Kind `json:"kind"`
	Color          core.Vec3     `json:"color"`
	Power          float64       `json:"power,omitempty"`
	Reflectiveness float64       `json:"reflectiveness,omitempty"`
	IOR            float64       `json:"ior,omitempty"`
}

// Material builds the runtime material
func (m MaterialDescription) Material() material.Material {
	return material.Material{
		Kind:           m.Kind,
		Albedo:         m.Color,
		Power:          m.Power,
		Reflectiveness: m.Reflectiveness,
		IOR:            m.IOR,
	}
}

// PrimitiveDescription declares one shape and the name of its material.
// Spheres use Center and Radius, triangles use Vertices, rects use Min and
// Max for the in-plane extents and Offset for the fixed coordinate.
type PrimitiveDescription struct {
	Name     string        `json:"name"`
	Kind     geometry.Kind `json:"kind"`
	Material string        `json:"material"`

	Center   core.Vec3    `json:"center,omitzero"`
	Radius   float64      `json:"radius,omitempty"`
	Vertices [3]core.Vec3 `json:"vertices,omitzero"`
	Min      core.Vec2    `json:"min,omitzero"`
	Max      core.Vec2    `json:"max,omitzero"`
	Offset   float64      `json:"offset,omitempty"`
}

// Primitive builds the runtime shape
func (p PrimitiveDescription) Primitive() geometry.Primitive {
	switch p.Kind {
	case geometry.KindSphere:
		return geometry.NewSpherePrimitive(p.Center, p.Radius)
	case geometry.KindTriangle:
		return geometry.NewTrianglePrimitive(p.Vertices[0], p.Vertices[1], p.Vertices[2])
	case geometry.KindXYRect:
		return geometry.NewXYRectPrimitive(p.Min.X, p.Max.X, p.Min.Y, p.Max.Y, p.Offset)
	case geometry.KindXZRect:
		return geometry.NewXZRectPrimitive(p.Min.X, p.Max.X, p.Min.Y, p.Max.Y, p.Offset)
	default:
		return geometry.NewYZRectPrimitive(p.Min.X, p.Max.X, p.Min.Y, p.Max.Y, p.Offset)
	}
}

// Description is the immutable recipe of a scene. Workers receive their own
// copy and build a private Scene from it.
type Description struct {
	Name       string                         `json:"name,omitempty"`
	Camera     *geometry.CameraConfig         `json:"camera"`
	Materials  map[string]MaterialDescription `json:"materials"`
	Primitives []PrimitiveDescription         `json:"primitives"`
}

// Validate checks that the description can be built
func (d *Description) Validate() error {
	if d.Camera == nil {
		return ErrNoCamera
	}

	for name, m := range d.Materials {
		if !m.Kind.Valid() {
			return fmt.Errorf("material %q: unknown kind %d: %w", name, int(m.Kind), ErrInvalidMaterial)
		}
		if m.Kind == material.KindRefractive && m.IOR <= 0 {
			return fmt.Errorf("material %q: index of refraction must be positive: %w", name, ErrInvalidMaterial)
		}
	}

	for i, p := range d.Primitives {
		if err := p.validate(); err != nil {
			return fmt.Errorf("primitive %d (%q): %w", i, p.Name, err)
		}
		if _, ok := d.Materials[p.Material]; !ok {
			return fmt.Errorf("cannot find material with name %q: %w", p.Material, ErrMissingMaterial)
		}
	}

	return nil
}

func (p PrimitiveDescription) validate() error {
	switch p.Kind {
	case geometry.KindSphere:
		if p.Radius <= 0 {
			return fmt.Errorf("sphere radius must be positive, got %f: %w", p.Radius, ErrInvalidPrimitive)
		}
	case geometry.KindTriangle:
		e1 := p.Vertices[1].Subtract(p.Vertices[0])
		e2 := p.Vertices[2].Subtract(p.Vertices[0])
		if e1.Cross(e2).LengthSquared() == 0 {
			return fmt.Errorf("degenerate triangle: %w", ErrInvalidPrimitive)
		}
	case geometry.KindXYRect, geometry.KindXZRect, geometry.KindYZRect:
		if p.Min.X == p.Max.X || p.Min.Y == p.Max.Y {
			return fmt.Errorf("rect has zero area: %w", ErrInvalidPrimitive)
		}
	default:
		return fmt.Errorf("unknown kind %d: %w", int(p.Kind), ErrInvalidPrimitive)
	}
	return nil
}

// Clone returns a deep copy that shares nothing with d
func (d *Description) Clone() *Description {
	clone := &Description{
		Name:       d.Name,
		Materials:  maps.Clone(d.Materials),
		Primitives: slices.Clone(d.Primitives),
	}
	if d.Camera != nil {
		camera := *d.Camera
		clone.Camera = &camera
	}
	return clone
}

// Build validates the description and instantiates a scene that owns the
// given sampler. Material indices follow the sorted material names.
func (d *Description) Build(sampler core.Sampler) (*Scene, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	names := slices.Sorted(maps.Keys(d.Materials))
	indices := make(map[string]int, len(names))
	materials := make([]material.Material, 0, len(names))
	for i, name := range names {
		indices[name] = i
		materials = append(materials, d.Materials[name].Material())
	}

	objects := make([]Object, 0, len(d.Primitives))
	for _, p := range d.Primitives {
		objects = append(objects, Object{
			Name:      p.Name,
			Primitive: p.Primitive(),
			Material:  indices[p.Material],
		})
	}

	return &Scene{
		Camera:        geometry.NewCamera(*d.Camera),
		Materials:     materials,
		MaterialNames: names,
		Objects:       objects,
		Sampler:       sampler,
	}, nil
}

// Sphere declares a sphere
func Sphere(name, materialName string, center core.Vec3, radius float64) PrimitiveDescription {
	return PrimitiveDescription{
		Name: name, Kind: geometry.KindSphere, Material: materialName,
		Center: center, Radius: radius,
	}
}

// Triangle declares a triangle
func Triangle(name, materialName string, v0, v1, v2 core.Vec3) PrimitiveDescription {
	return PrimitiveDescription{
		Name: name, Kind: geometry.KindTriangle, Material: materialName,
		Vertices: [3]core.Vec3{v0, v1, v2},
	}
}

// XYSquare declares a square in the plane z = center.Z
func XYSquare(name, materialName string, center core.Vec3, edge float64) PrimitiveDescription {
	return square(name, materialName, geometry.KindXYRect, center.X, center.Y, center.Z, edge)
}

// XZSquare declares a square in the plane y = center.Y
func XZSquare(name, materialName string, center core.Vec3, edge float64) PrimitiveDescription {
	return square(name, materialName, geometry.KindXZRect, center.X, center.Z, center.Y, edge)
}

// YZSquare declares a square in the plane x = center.X
func YZSquare(name, materialName string, center core.Vec3, edge float64) PrimitiveDescription {
	return square(name, materialName, geometry.KindYZRect, center.Y, center.Z, center.X, edge)
}

func square(name, materialName string, kind geometry.Kind, a, b, offset, edge float64) PrimitiveDescription {
	half := edge / 2
	return PrimitiveDescription{
		Name: name, Kind: kind, Material: materialName,
		Min:    core.NewVec2(a-half, b-half),
		Max:    core.NewVec2(a+half, b+half),
		Offset: offset,
	}
}

// Emissive declares a light-emitting material
func Emissive(color core.Vec3, power float64) MaterialDescription {
	return MaterialDescription{Kind: material.KindEmissive, Color: color, Power: power}
}

// Lambertian declares a diffuse material
func Lambertian(color core.Vec3) MaterialDescription {
	return MaterialDescription{Kind: material.KindLambertian, Color: color}
}

// Reflective declares a glossy mirror
func Reflective(color core.Vec3, reflectiveness float64) MaterialDescription {
	return MaterialDescription{Kind: material.KindReflective, Color: color, Reflectiveness: reflectiveness}
}

// Refractive declares a dielectric
func Refractive(color core.Vec3, ior float64) MaterialDescription {
	return MaterialDescription{Kind: material.KindRefractive, Color: color, IOR: ior}
}
