package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	nonEmissive
	ReflectTint     Texture // Attenuation of reflected paths
	TransmitTint    Texture // Attenuation of refracted paths
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
	Roughness       float64 // Perturbation of the ideal direction, like Metal fuzz
}

// NewDielectric creates a new clear, smooth dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	white := NewSolidColor(core.NewVec3(1, 1, 1))
	return NewTintedDielectric(white, white, refractiveIndex, 0)
}

// NewTintedDielectric creates a dielectric with separate reflection and transmission tints
func NewTintedDielectric(reflect, transmit Texture, refractiveIndex, roughness float64) *Dielectric {
	return &Dielectric{
		ReflectTint:     reflect,
		TransmitTint:    transmit,
		RefractiveIndex: refractiveIndex,
		Roughness:       max(0.0, min(1.0, roughness)),
	}
}

func (d *Dielectric) Kind() Kind {
	return KindDielectric
}

// Scatter chooses reflection or refraction with one uniform draw against the Schlick term.
// Without a valid refraction (total internal reflection) it always reflects.
func (d *Dielectric) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Determine if we're entering or exiting the material
	var refractionRatio float64
	if hit.FrontFace {
		refractionRatio = 1.0 / d.RefractiveIndex
	} else {
		refractionRatio = d.RefractiveIndex
	}

	unitDirection := rayIn.Direction.Normalize()
	cosTheta := math.Min(-unitDirection.Dot(hit.Normal), 1.0)

	refracted, canRefract := refract(unitDirection, hit.Normal, refractionRatio)
	reflect := !canRefract || Reflectance(cosTheta, refractionRatio) > sampler.Get1D()

	var direction, attenuation core.Vec3
	if reflect {
		direction = core.Reflect(unitDirection, hit.Normal)
		attenuation = evaluateOr(d.ReflectTint, hit, core.NewVec3(1, 1, 1))
	} else {
		direction = refracted
		attenuation = evaluateOr(d.TransmitTint, hit, core.NewVec3(1, 1, 1))
	}

	if d.Roughness > 0 {
		direction = direction.Add(core.SamplePointInUnitSphere(sampler.Get3D()).Multiply(d.Roughness))
		// Perturbation must not move the path to the other side of the interface
		side := direction.Dot(hit.Normal)
		if (reflect && side <= 0) || (!reflect && side >= 0) {
			return ScatterResult{}, false
		}
	}

	return ScatterResult{
		Scattered:   core.NewRayAt(hit.Point, direction.Normalize(), rayIn.Time),
		Attenuation: attenuation,
		Specular:    true,
	}, true
}

// EvaluateBRDF is zero: both branches are delta functions handled by Scatter
func (d *Dielectric) EvaluateBRDF(incoming, outgoing core.Vec3, hit *HitRecord) core.Vec3 {
	return core.Vec3{}
}

// PDF for specular materials is always (0, true), indicating a delta function
func (d *Dielectric) PDF(incoming, outgoing core.Vec3, hit *HitRecord) (float64, bool) {
	return 0.0, true
}

// refract bends the unit vector uv through a surface with normal n facing against it.
// It reports false when the discriminant is not positive (total internal reflection).
func refract(uv, n core.Vec3, etaiOverEtat float64) (core.Vec3, bool) {
	dt := uv.Dot(n)
	discriminant := 1.0 - etaiOverEtat*etaiOverEtat*(1-dt*dt)
	if discriminant <= 0 {
		return core.Vec3{}, false
	}

	// η(uv - n·dt) - n·sqrt(discriminant)
	refracted := uv.Subtract(n.Multiply(dt)).Multiply(etaiOverEtat).Subtract(n.Multiply(math.Sqrt(discriminant)))
	return refracted, true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation.
// A ratio of exactly 1 is an index-matched interface and never reflects.
func Reflectance(cosine, refractionRatio float64) float64 {
	if refractionRatio == 1 {
		return 0
	}

	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
