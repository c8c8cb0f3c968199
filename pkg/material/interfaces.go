package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/pdf"
)

// Kind identifies one member of the closed set of material models
type Kind int

const (
	KindInvalid Kind = iota
	KindLambertian
	KindMetal
	KindDielectric
	KindDiffuseLight
	KindIsotropic
	KindNormal
	KindOrenNayar
	KindTorranceSparrow
	KindAshikhminShirley
)

func (k Kind) String() string {
	switch k {
	case KindLambertian:
		return "lambertian"
	case KindMetal:
		return "metal"
	case KindDielectric:
		return "dielectric"
	case KindDiffuseLight:
		return "diffuse_light"
	case KindIsotropic:
		return "isotropic"
	case KindNormal:
		return "normal"
	case KindOrenNayar:
		return "oren_nayar"
	case KindTorranceSparrow:
		return "torrance_sparrow"
	case KindAshikhminShirley:
		return "ashikhmin_shirley"
	}

	return "invalid"
}

// Material is a scattering model. Implementations hold only immutable
// parameters and may be shared by any number of concurrent paths.
//
// Directions follow the ray: incoming is the direction of the ray that hit the
// surface (pointing at it), outgoing is the scattered direction (pointing away).
type Material interface {
	Kind() Kind

	// Scatter samples an outgoing direction. false means the path is absorbed.
	Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool)

	// Emitted returns the radiance the surface emits toward the ray origin
	Emitted(rayIn core.Ray, hit *HitRecord) core.Vec3

	// EvaluateBRDF evaluates the BRDF for a direction pair. Specular models return zero.
	EvaluateBRDF(incoming, outgoing core.Vec3, hit *HitRecord) core.Vec3

	// PDF returns the density Scatter samples outgoing with.
	// isDelta reports a specular model, for which the density is a delta function.
	PDF(incoming, outgoing core.Vec3, hit *HitRecord) (density float64, isDelta bool)
}

// ScatterResult describes one sampled scattering event
type ScatterResult struct {
	Scattered core.Ray

	// Attenuation is the albedo for specular events and the BRDF value of
	// Scattered otherwise. It never includes the cosine term or the density.
	Attenuation core.Vec3

	// Specular events have a delta density and bypass importance sampling
	Specular bool

	// Medium events come from a phase function and take no cosine foreshortening
	Medium bool

	// PDF is the material's sampling strategy at this hit; nil for specular events
	PDF pdf.PDF

	// PDFValue is the density of Scattered under PDF
	PDFValue float64
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	T         float64   // Parameter t along the ray
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Unit normal, always facing against the incoming ray
	UV        core.Vec2 // Surface coordinates
	FrontFace bool      // Whether ray hit the front face
	Material  Handle    // Material of the hit object, resolved through an Arena
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// OutwardNormal returns the geometric normal as the shape defines it
func (h *HitRecord) OutwardNormal() core.Vec3 {
	if h.FrontFace {
		return h.Normal
	}
	return h.Normal.Negate()
}

// nonEmissive is embedded by every material that does not emit light
type nonEmissive struct{}

func (nonEmissive) Emitted(rayIn core.Ray, hit *HitRecord) core.Vec3 {
	return core.Vec3{}
}
