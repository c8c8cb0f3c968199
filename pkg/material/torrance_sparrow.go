package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// minAlpha keeps the Beckmann distribution away from a delta
const minAlpha = 1e-3

// TorranceSparrow is a microfacet BRDF with an anisotropic Beckmann distribution,
// Smith masking and Schlick Fresnel with F0 taken from the albedo
type TorranceSparrow struct {
	nonEmissive
	Albedo Texture
	AlphaX float64 // roughness along the frame tangent
	AlphaY float64 // roughness along the frame bitangent
}

// NewTorranceSparrow creates a microfacet material
func NewTorranceSparrow(albedo Texture, alphaX, alphaY float64) *TorranceSparrow {
	return &TorranceSparrow{
		Albedo: albedo,
		AlphaX: math.Max(minAlpha, alphaX),
		AlphaY: math.Max(minAlpha, alphaY),
	}
}

func (t *TorranceSparrow) Kind() Kind {
	return KindTorranceSparrow
}

// Scatter samples a half vector from the distribution and reflects about it
func (t *TorranceSparrow) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return scatterLobe(t, t, rayIn, hit, sampler)
}

// EvaluateBRDF returns D·G·F / (4 cosθo cosθi)
func (t *TorranceSparrow) EvaluateBRDF(incoming, outgoing core.Vec3, hit *HitRecord) core.Vec3 {
	wo, wi := localPair(incoming, outgoing, hit)
	if wo.Z <= 0 || wi.Z <= 0 {
		return core.Vec3{}
	}

	h, ok := halfVector(wo, wi)
	if !ok {
		return core.Vec3{}
	}

	d := t.distribution(h)
	g := 1.0 / (1.0 + t.lambda(wo) + t.lambda(wi))
	f := schlickColor(t.Albedo.Evaluate(hit.UV, hit.Point), wi.Dot(h))

	return f.Multiply(d * g / (4 * wo.Z * wi.Z))
}

func (t *TorranceSparrow) PDF(incoming, outgoing core.Vec3, hit *HitRecord) (float64, bool) {
	wo, wi := localPair(incoming, outgoing, hit)
	return t.densityLocal(wo, wi), false
}

// distribution is the anisotropic Beckmann D(h)
func (t *TorranceSparrow) distribution(h core.Vec3) float64 {
	if h.Z <= 0 {
		return 0
	}
	cos2 := h.Z * h.Z
	exponent := (h.X*h.X/(t.AlphaX*t.AlphaX) + h.Y*h.Y/(t.AlphaY*t.AlphaY)) / cos2
	return math.Exp(-exponent) / (math.Pi * t.AlphaX * t.AlphaY * cos2 * cos2)
}

// lambda is the Smith-Beckmann auxiliary function (rational approximation)
func (t *TorranceSparrow) lambda(w core.Vec3) float64 {
	sin2 := w.X*w.X + w.Y*w.Y
	if sin2 == 0 {
		return 0
	}
	alpha := math.Sqrt((w.X*w.X*t.AlphaX*t.AlphaX + w.Y*w.Y*t.AlphaY*t.AlphaY) / sin2)
	a := math.Abs(w.Z) / (alpha * math.Sqrt(sin2))
	if a >= 1.6 {
		return 0
	}
	return (1 - 1.259*a + 0.396*a*a) / (3.535*a + 2.181*a*a)
}

// sampleHalf draws h with density D(h)·cosθh
func (t *TorranceSparrow) sampleHalf(u core.Vec2) core.Vec3 {
	logSample := math.Log(1 - u.X)

	var tan2Theta, phi float64
	if t.AlphaX == t.AlphaY {
		tan2Theta = -t.AlphaX * t.AlphaX * logSample
		phi = 2 * math.Pi * u.Y
	} else {
		phi = math.Atan(t.AlphaY / t.AlphaX * math.Tan(2*math.Pi*u.Y+0.5*math.Pi))
		if u.Y > 0.5 {
			phi += math.Pi
		}
		sinPhi, cosPhi := math.Sincos(phi)
		tan2Theta = -logSample / (cosPhi*cosPhi/(t.AlphaX*t.AlphaX) + sinPhi*sinPhi/(t.AlphaY*t.AlphaY))
	}

	cosTheta := 1 / math.Sqrt(1+tan2Theta)
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	sinPhi, cosPhi := math.Sincos(phi)
	return core.NewVec3(sinTheta*cosPhi, sinTheta*sinPhi, cosTheta)
}

func (t *TorranceSparrow) sampleLocal(wo core.Vec3, sampler core.Sampler) core.Vec3 {
	return reflectLocal(wo, t.sampleHalf(sampler.Get2D()))
}

// densityLocal converts the half vector density to the reflected direction: D·cosθh / (4|wo·h|)
func (t *TorranceSparrow) densityLocal(wo, wi core.Vec3) float64 {
	h, ok := halfVector(wo, wi)
	if !ok {
		return 0
	}
	cosOH := math.Abs(wo.Dot(h))
	if cosOH < 1e-12 {
		return 0
	}
	return t.distribution(h) * h.Z / (4 * cosOH)
}
