package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	nonEmissive
	Albedo   Texture // Metal color
	Fuzzness float64 // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Vec3, fuzzness float64) *Metal {
	return NewTexturedMetal(NewSolidColor(albedo), fuzzness)
}

// NewTexturedMetal creates a metal whose color comes from a texture
func NewTexturedMetal(albedo Texture, fuzzness float64) *Metal {
	return &Metal{Albedo: albedo, Fuzzness: max(0.0, min(1.0, fuzzness))}
}

func (m *Metal) Kind() Kind {
	return KindMetal
}

// Scatter reflects about the normal, perturbed by a point in the unit sphere scaled by fuzzness.
// Reflections perturbed into the surface are absorbed.
func (m *Metal) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	reflected := core.Reflect(rayIn.Direction.Normalize(), hit.Normal)

	if m.Fuzzness > 0 {
		perturbation := core.SamplePointInUnitSphere(sampler.Get3D()).Multiply(m.Fuzzness)
		reflected = reflected.Add(perturbation)
	}

	if reflected.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Scattered:   core.NewRayAt(hit.Point, reflected.Normalize(), rayIn.Time),
		Attenuation: m.Albedo.Evaluate(hit.UV, hit.Point),
		Specular:    true,
	}, true
}

// EvaluateBRDF is zero: the reflection is a delta function handled by Scatter
func (m *Metal) EvaluateBRDF(incoming, outgoing core.Vec3, hit *HitRecord) core.Vec3 {
	return core.Vec3{}
}

func (m *Metal) PDF(incoming, outgoing core.Vec3, hit *HitRecord) (float64, bool) {
	return 0.0, true
}
