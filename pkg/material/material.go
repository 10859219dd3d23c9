package material

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// Kind identifies the scattering model of a Material
type Kind int

const (
	KindEmissive Kind = iota
	KindLambertian
	KindReflective
	KindRefractive
)

// String returns the name used in scene files
func (k Kind) String() string {
	switch k {
	case KindEmissive:
		return "emissive"
	case KindLambertian:
		return "lambertian"
	case KindReflective:
		return "reflective"
	case KindRefractive:
		return "refractive"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind returns the kind for a scene-file name
func ParseKind(name string) (Kind, error) {
	for k := KindEmissive; k <= KindRefractive; k++ {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown material kind %q", name)
}

// Valid reports whether k names a known scattering model
func (k Kind) Valid() bool {
	return k >= KindEmissive && k <= KindRefractive
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("unknown material kind %d", int(k))
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

// refractiveReflectProbability is the chance a refractive surface mirrors
// the ray instead of transmitting it
const refractiveReflectProbability = 0.15

// Material is a closed set of surface models. Fields not used by Kind are
// ignored. Materials hold no state of their own; randomness comes from the
// sampler passed to Scatter.
type Material struct {
	Kind           Kind
	Albedo         core.Vec3 // Base color (emission color for emissive)
	Power          float64   // Emission strength, emissive only
	Reflectiveness float64   // Sharpness of the mirror lobe, reflective only
	IOR            float64   // Index of refraction, refractive only
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // Outgoing ray, zero when the path ends
	Attenuation core.Vec3 // Color attenuation, or emitted radiance when the path ends
}

// NewEmissive creates a light source emitting color scaled by power
func NewEmissive(color core.Vec3, power float64) Material {
	return Material{Kind: KindEmissive, Albedo: color, Power: power}
}

// NewLambertian creates a perfectly diffuse material
func NewLambertian(albedo core.Vec3) Material {
	return Material{Kind: KindLambertian, Albedo: albedo}
}

// NewReflective creates a glossy mirror. Higher reflectiveness gives a
// sharper reflection.
func NewReflective(albedo core.Vec3, reflectiveness float64) Material {
	return Material{Kind: KindReflective, Albedo: albedo, Reflectiveness: reflectiveness}
}

// NewRefractive creates a dielectric with the given index of refraction
func NewRefractive(albedo core.Vec3, ior float64) Material {
	return Material{Kind: KindRefractive, Albedo: albedo, IOR: ior}
}

// BaseColor returns the material's unscaled color
func (m Material) BaseColor() core.Vec3 {
	return m.Albedo
}

// Scatter computes the outgoing ray for a hit. It returns false when the path
// terminates at this surface; the attenuation is still meaningful then.
func (m Material) Scatter(rayIn core.Ray, hit geometry.HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	switch m.Kind {
	case KindEmissive:
		return ScatterResult{Attenuation: m.Albedo.Multiply(m.Power)}, false
	case KindLambertian:
		return m.scatterLambertian(rayIn, hit, sampler), true
	case KindReflective:
		return m.scatterReflective(rayIn, hit, sampler), true
	case KindRefractive:
		return m.scatterRefractive(rayIn, hit, sampler), true
	default:
		panic(fmt.Sprintf("material: unknown kind %v", m.Kind))
	}
}

// correctedNormal returns the hit normal flipped to face against the ray
func correctedNormal(rayIn core.Ray, hit geometry.HitRecord) core.Vec3 {
	if rayIn.Direction.Dot(hit.Normal) > 0 {
		return hit.Normal.Negate()
	}
	return hit.Normal
}

func (m Material) scatterLambertian(rayIn core.Ray, hit geometry.HitRecord, sampler core.Sampler) ScatterResult {
	normal := correctedNormal(rayIn, hit)
	direction := core.SampleUnitHemisphere(normal, sampler)

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: m.Albedo,
	}
}

func (m Material) scatterReflective(rayIn core.Ray, hit geometry.HitRecord, sampler core.Sampler) ScatterResult {
	normal := correctedNormal(rayIn, hit)
	reflected := core.Reflect(rayIn.Direction, normal)
	hemisphere := core.SampleUnitHemisphere(normal, sampler)

	direction := hemisphere
	if m.Reflectiveness > 0 {
		direction = hemisphere.Multiply(1 / m.Reflectiveness).Add(reflected)
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: m.Albedo,
	}
}

func (m Material) scatterRefractive(rayIn core.Ray, hit geometry.HitRecord, sampler core.Sampler) ScatterResult {
	ratio := m.IOR
	if hit.FrontFace {
		ratio = 1.0 / m.IOR
	}

	unitDirection := rayIn.Direction.Normalize()

	var direction core.Vec3
	if sampler.Get1D() > 1-refractiveReflectProbability {
		direction = core.Reflect(unitDirection, hit.Normal)
	} else {
		direction = core.Refract(unitDirection, hit.Normal, ratio)
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: m.Albedo,
	}
}
