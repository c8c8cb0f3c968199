package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/pdf"
)

// OrenNayar is a rough diffuse BRDF. Sigma is the standard deviation of the
// facet slope angle in degrees; zero reduces to Lambertian.
type OrenNayar struct {
	nonEmissive
	Albedo Texture
	Sigma  float64
	a, b   float64
}

// NewOrenNayar creates a rough diffuse material with sigma in degrees
func NewOrenNayar(albedo Texture, sigmaDegrees float64) *OrenNayar {
	sigma := sigmaDegrees * math.Pi / 180
	sigma2 := sigma * sigma
	return &OrenNayar{
		Albedo: albedo,
		Sigma:  sigmaDegrees,
		a:      1 - sigma2/(2*(sigma2+0.33)),
		b:      0.45 * sigma2 / (sigma2 + 0.09),
	}
}

func (o *OrenNayar) Kind() Kind {
	return KindOrenNayar
}

func (o *OrenNayar) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	cosine := pdf.NewCosine(hit.Normal)
	direction := cosine.Generate(hit.Point, sampler)

	return ScatterResult{
		Scattered:   core.NewRayAt(hit.Point, direction, rayIn.Time),
		Attenuation: o.EvaluateBRDF(rayIn.Direction, direction, hit),
		PDF:         cosine,
		PDFValue:    cosine.Value(hit.Point, direction),
	}, true
}

// EvaluateBRDF returns R/π·(A + B·max(0, cos(φi-φo))·sinα·tanβ)
func (o *OrenNayar) EvaluateBRDF(incoming, outgoing core.Vec3, hit *HitRecord) core.Vec3 {
	wo, wi := localPair(incoming, outgoing, hit)
	if wo.Z < 1e-6 || wi.Z < 1e-6 {
		return core.Vec3{}
	}

	sinI := math.Sqrt(math.Max(0, 1-wi.Z*wi.Z))
	sinO := math.Sqrt(math.Max(0, 1-wo.Z*wo.Z))

	maxCos := 0.0
	if sinI > 1e-4 && sinO > 1e-4 {
		maxCos = math.Max(0, (wi.X*wo.X+wi.Y*wo.Y)/(sinI*sinO))
	}

	var sinAlpha, tanBeta float64
	if wi.Z > wo.Z {
		sinAlpha = sinO
		tanBeta = sinI / wi.Z
	} else {
		sinAlpha = sinI
		tanBeta = sinO / wo.Z
	}

	albedo := o.Albedo.Evaluate(hit.UV, hit.Point)
	return albedo.Multiply((o.a + o.b*maxCos*sinAlpha*tanBeta) / math.Pi)
}

func (o *OrenNayar) PDF(incoming, outgoing core.Vec3, hit *HitRecord) (float64, bool) {
	cosTheta := outgoing.Normalize().Dot(hit.Normal)
	if cosTheta <= 0 {
		return 0.0, false
	}
	return cosTheta / math.Pi, false
}
