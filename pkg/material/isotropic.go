package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/pdf"
)

// Isotropic is the phase function of a participating medium: it scatters
// uniformly over the sphere with phase value albedo/4π
type Isotropic struct {
	nonEmissive
	Albedo Texture
}

// NewIsotropic creates a constant-color isotropic phase function
func NewIsotropic(albedo core.Vec3) *Isotropic {
	return &Isotropic{Albedo: NewSolidColor(albedo)}
}

// NewTexturedIsotropic creates an isotropic phase function with a textured albedo
func NewTexturedIsotropic(albedo Texture) *Isotropic {
	return &Isotropic{Albedo: albedo}
}

func (i *Isotropic) Kind() Kind {
	return KindIsotropic
}

func (i *Isotropic) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	uniform := pdf.NewUniform()
	direction := uniform.Generate(hit.Point, sampler)

	return ScatterResult{
		Scattered:   core.NewRayAt(hit.Point, direction, rayIn.Time),
		Attenuation: i.EvaluateBRDF(rayIn.Direction, direction, hit),
		Medium:      true,
		PDF:         uniform,
		PDFValue:    uniform.Value(hit.Point, direction),
	}, true
}

func (i *Isotropic) EvaluateBRDF(incoming, outgoing core.Vec3, hit *HitRecord) core.Vec3 {
	return i.Albedo.Evaluate(hit.UV, hit.Point).Multiply(1.0 / (4.0 * math.Pi))
}

func (i *Isotropic) PDF(incoming, outgoing core.Vec3, hit *HitRecord) (float64, bool) {
	return 1.0 / (4.0 * math.Pi), false
}
