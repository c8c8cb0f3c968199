package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/pdf"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	nonEmissive
	Albedo Texture // Base color/reflectance (can be solid or textured)
}

// NewLambertian creates a new lambertian material with solid color
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: NewSolidColor(albedo)}
}

// NewTexturedLambertian creates a new lambertian material with texture
func NewTexturedLambertian(albedoTexture Texture) *Lambertian {
	return &Lambertian{Albedo: albedoTexture}
}

func (l *Lambertian) Kind() Kind {
	return KindLambertian
}

// Scatter samples the cosine-weighted hemisphere around the normal
func (l *Lambertian) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	cosine := pdf.NewCosine(hit.Normal)
	direction := cosine.Generate(hit.Point, sampler)

	return ScatterResult{
		Scattered:   core.NewRayAt(hit.Point, direction, rayIn.Time),
		Attenuation: l.EvaluateBRDF(rayIn.Direction, direction, hit),
		PDF:         cosine,
		PDFValue:    cosine.Value(hit.Point, direction),
	}, true
}

// EvaluateBRDF returns albedo/π for every direction pair
func (l *Lambertian) EvaluateBRDF(incoming, outgoing core.Vec3, hit *HitRecord) core.Vec3 {
	return l.Albedo.Evaluate(hit.UV, hit.Point).Multiply(1.0 / math.Pi)
}

// PDF calculates the probability density function for specific incoming/outgoing directions
func (l *Lambertian) PDF(incoming, outgoing core.Vec3, hit *HitRecord) (float64, bool) {
	// Cosine-weighted hemisphere sampling: cos(θ) / π
	cosTheta := outgoing.Normalize().Dot(hit.Normal)
	if cosTheta <= 0 {
		return 0.0, false
	}
	return cosTheta / math.Pi, false
}
