package geometry

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Kind identifies the shape stored in a Primitive
type Kind int

const (
	KindSphere Kind = iota
	KindTriangle
	KindXYRect
	KindXZRect
	KindYZRect
)

// String returns the name used in scene files
func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindTriangle:
		return "triangle"
	case KindXYRect:
		return "xy_rect"
	case KindXZRect:
		return "xz_rect"
	case KindYZRect:
		return "yz_rect"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind returns the kind for a scene-file name
func ParseKind(name string) (Kind, error) {
	for k := KindSphere; k <= KindYZRect; k++ {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown primitive kind %q", name)
}

// Valid reports whether k names a known shape
func (k Kind) Valid() bool {
	return k >= KindSphere && k <= KindYZRect
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("unknown primitive kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Primitive is a closed set of shapes. Only the field selected by Kind is
// meaningful.
type Primitive struct {
	Kind     Kind
	Sphere   Sphere
	Triangle Triangle
	Rect     Rect
}

// NewSpherePrimitive wraps a sphere
func NewSpherePrimitive(center core.Vec3, radius float64) Primitive {
	return Primitive{Kind: KindSphere, Sphere: NewSphere(center, radius)}
}

// NewTrianglePrimitive wraps a triangle
func NewTrianglePrimitive(v0, v1, v2 core.Vec3) Primitive {
	return Primitive{Kind: KindTriangle, Triangle: NewTriangle(v0, v1, v2)}
}

// NewXYRectPrimitive wraps a rectangle in the plane z = k
func NewXYRectPrimitive(x0, x1, y0, y1, k float64) Primitive {
	return Primitive{Kind: KindXYRect, Rect: NewRect(x0, x1, y0, y1, k)}
}

// NewXZRectPrimitive wraps a rectangle in the plane y = k
func NewXZRectPrimitive(x0, x1, z0, z1, k float64) Primitive {
	return Primitive{Kind: KindXZRect, Rect: NewRect(x0, x1, z0, z1, k)}
}

// NewYZRectPrimitive wraps a rectangle in the plane x = k
func NewYZRectPrimitive(y0, y1, z0, z1, k float64) Primitive {
	return Primitive{Kind: KindYZRect, Rect: NewRect(y0, y1, z0, z1, k)}
}

// Hit tests the ray against the selected shape
func (p Primitive) Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	switch p.Kind {
	case KindSphere:
		return p.Sphere.Hit(ray, tMin, tMax)
	case KindTriangle:
		return p.Triangle.Hit(ray, tMin, tMax)
	case KindXYRect:
		return p.Rect.hit(ray, tMin, tMax, xyPlane)
	case KindXZRect:
		return p.Rect.hit(ray, tMin, tMax, xzPlane)
	case KindYZRect:
		return p.Rect.hit(ray, tMin, tMax, yzPlane)
	default:
		panic(fmt.Sprintf("geometry: unknown primitive kind %v", p.Kind))
	}
}

// BoundingBox returns the box enclosing the shape. Every current shape is
// bounded; the boolean is false only for an unknown kind.
func (p Primitive) BoundingBox() (core.AABB, bool) {
	switch p.Kind {
	case KindSphere:
		return p.Sphere.BoundingBox(), true
	case KindTriangle:
		return p.Triangle.BoundingBox(), true
	case KindXYRect:
		return p.Rect.boundingBox(xyPlane), true
	case KindXZRect:
		return p.Rect.boundingBox(xzPlane), true
	case KindYZRect:
		return p.Rect.boundingBox(yzPlane), true
	default:
		return core.AABB{}, false
	}
}
