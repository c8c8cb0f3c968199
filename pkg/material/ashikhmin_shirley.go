package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// AshikhminShirley is the anisotropic Phong BRDF: a Fresnel-weighted glossy
// lobe over a diffuse base that loses the energy the glossy layer reflects
type AshikhminShirley struct {
	nonEmissive
	Diffuse  Texture // Rd
	Specular Texture // Rs, also the normal incidence Fresnel term
	Nu, Nv   float64 // Phong exponents along the frame tangent and bitangent
}

// NewAshikhminShirley creates an anisotropic Phong material
func NewAshikhminShirley(diffuse, specular Texture, nu, nv float64) *AshikhminShirley {
	return &AshikhminShirley{
		Diffuse:  diffuse,
		Specular: specular,
		Nu:       math.Max(0, nu),
		Nv:       math.Max(0, nv),
	}
}

func (a *AshikhminShirley) Kind() Kind {
	return KindAshikhminShirley
}

// Scatter samples the diffuse or the glossy lobe with equal probability
func (a *AshikhminShirley) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return scatterLobe(a, a, rayIn, hit, sampler)
}

func (a *AshikhminShirley) EvaluateBRDF(incoming, outgoing core.Vec3, hit *HitRecord) core.Vec3 {
	wo, wi := localPair(incoming, outgoing, hit)
	if wo.Z <= 0 || wi.Z <= 0 {
		return core.Vec3{}
	}

	rd := a.Diffuse.Evaluate(hit.UV, hit.Point)
	rs := a.Specular.Evaluate(hit.UV, hit.Point)

	// 28/(23π)·Rd·(1-Rs)·(1-(1-cosθi/2)^5)·(1-(1-cosθo/2)^5)
	falloff := (1 - math.Pow(1-wi.Z/2, 5)) * (1 - math.Pow(1-wo.Z/2, 5))
	diffuse := rd.MultiplyVec(core.NewVec3(1, 1, 1).Subtract(rs)).Multiply(28.0 / (23.0 * math.Pi) * falloff)

	h, ok := halfVector(wo, wi)
	if !ok {
		return diffuse
	}
	cosKH := wi.Dot(h)
	if cosKH < 1e-12 {
		return diffuse
	}

	norm := math.Sqrt((a.Nu+1)*(a.Nv+1)) / (8 * math.Pi)
	glossy := norm * math.Pow(h.Z, a.exponent(h)) / (cosKH * math.Max(wi.Z, wo.Z))
	fresnel := schlickColor(rs, cosKH)

	return diffuse.Add(fresnel.Multiply(glossy))
}

func (a *AshikhminShirley) PDF(incoming, outgoing core.Vec3, hit *HitRecord) (float64, bool) {
	wo, wi := localPair(incoming, outgoing, hit)
	return a.densityLocal(wo, wi), false
}

// exponent is nu·cos²φh + nv·sin²φh
func (a *AshikhminShirley) exponent(h core.Vec3) float64 {
	sin2 := h.X*h.X + h.Y*h.Y
	if sin2 < 1e-24 {
		return 0
	}
	return (a.Nu*h.X*h.X + a.Nv*h.Y*h.Y) / sin2
}

// halfDensity is sqrt((nu+1)(nv+1))/(2π)·cosθh^exponent
func (a *AshikhminShirley) halfDensity(h core.Vec3) float64 {
	if h.Z <= 0 {
		return 0
	}
	return math.Sqrt((a.Nu+1)*(a.Nv+1)) / (2 * math.Pi) * math.Pow(h.Z, a.exponent(h))
}

// sampleHalf draws h from the anisotropic Phong distribution, one quadrant at a time
func (a *AshikhminShirley) sampleHalf(u core.Vec2) core.Vec3 {
	var phi, cosTheta float64
	switch {
	case u.X < 0.25:
		phi, cosTheta = a.sampleFirstQuadrant(4*u.X, u.Y)
	case u.X < 0.5:
		phi, cosTheta = a.sampleFirstQuadrant(4*(0.5-u.X), u.Y)
		phi = math.Pi - phi
	case u.X < 0.75:
		phi, cosTheta = a.sampleFirstQuadrant(4*(u.X-0.5), u.Y)
		phi += math.Pi
	default:
		phi, cosTheta = a.sampleFirstQuadrant(4*(1-u.X), u.Y)
		phi = 2*math.Pi - phi
	}

	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	sinPhi, cosPhi := math.Sincos(phi)
	return core.NewVec3(sinTheta*cosPhi, sinTheta*sinPhi, cosTheta)
}

func (a *AshikhminShirley) sampleFirstQuadrant(u1, u2 float64) (phi, cosTheta float64) {
	if a.Nu == a.Nv {
		phi = math.Pi * u1 * 0.5
	} else {
		phi = math.Atan(math.Sqrt((a.Nu+1)/(a.Nv+1)) * math.Tan(math.Pi*u1*0.5))
	}
	sinPhi, cosPhi := math.Sincos(phi)
	cosTheta = math.Pow(u2, 1/(a.Nu*cosPhi*cosPhi+a.Nv*sinPhi*sinPhi+1))
	return phi, cosTheta
}

func (a *AshikhminShirley) sampleLocal(wo core.Vec3, sampler core.Sampler) core.Vec3 {
	choice := sampler.Get1D()
	u := sampler.Get2D()
	if choice < 0.5 {
		return core.CosineHemisphereLocal(u)
	}
	return reflectLocal(wo, a.sampleHalf(u))
}

// densityLocal is the even mixture of the cosine lobe and the reflected half vector density
func (a *AshikhminShirley) densityLocal(wo, wi core.Vec3) float64 {
	diffuse := math.Max(0, wi.Z) / math.Pi

	glossy := 0.0
	if h, ok := halfVector(wo, wi); ok {
		if cosOH := math.Abs(wo.Dot(h)); cosOH > 1e-12 {
			glossy = a.halfDensity(h) / (4 * cosOH)
		}
	}

	return 0.5*diffuse + 0.5*glossy
}
