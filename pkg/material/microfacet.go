package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/pdf"
)

// Glossy models are evaluated in a local shading frame where the normal is +Z
// and wo points from the surface toward the viewer.

// shadingFrame returns the local frame at the hit and the viewer direction in it
func shadingFrame(incoming core.Vec3, hit *HitRecord) (core.ONB, core.Vec3) {
	frame := core.NewONB(hit.Normal)
	return frame, frame.ToLocal(incoming.Normalize().Negate())
}

// localPair expresses both directions of a BRDF query in the shading frame
func localPair(incoming, outgoing core.Vec3, hit *HitRecord) (wo, wi core.Vec3) {
	frame, wo := shadingFrame(incoming, hit)
	return wo, frame.ToLocal(outgoing.Normalize())
}

// halfVector returns the normalized half vector of a reflection pair, flipped
// into the upper hemisphere, or false for opposite directions
func halfVector(wo, wi core.Vec3) (core.Vec3, bool) {
	h := wo.Add(wi)
	if h.LengthSquared() < 1e-24 {
		return core.Vec3{}, false
	}
	h = h.Normalize()
	if h.Z < 0 {
		h = h.Negate()
	}
	return h, true
}

// reflectLocal mirrors wo about the microfacet normal h
func reflectLocal(wo, h core.Vec3) core.Vec3 {
	return h.Multiply(2 * wo.Dot(h)).Subtract(wo)
}

// schlickColor is Schlick's Fresnel approximation with a per-channel F0
func schlickColor(f0 core.Vec3, cosine float64) core.Vec3 {
	m := math.Pow(1-math.Max(0, math.Min(1, cosine)), 5)
	return f0.Add(core.NewVec3(1, 1, 1).Subtract(f0).Multiply(m))
}

// lobe is a material's own importance sampling strategy in the shading frame
type lobe interface {
	sampleLocal(wo core.Vec3, sampler core.Sampler) core.Vec3
	densityLocal(wo, wi core.Vec3) float64
}

// lobePDF adapts a lobe at one hit to the PDF interface
type lobePDF struct {
	frame core.ONB
	wo    core.Vec3
	lobe  lobe
}

func newLobePDF(l lobe, incoming core.Vec3, hit *HitRecord) *lobePDF {
	frame, wo := shadingFrame(incoming, hit)
	return &lobePDF{frame: frame, wo: wo, lobe: l}
}

func (p *lobePDF) Kind() pdf.Kind {
	return pdf.KindLobe
}

func (p *lobePDF) Generate(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return p.frame.Local(p.lobe.sampleLocal(p.wo, sampler)).Normalize()
}

func (p *lobePDF) Value(origin, direction core.Vec3) float64 {
	if direction.LengthSquared() == 0 {
		return 0
	}
	density := p.lobe.densityLocal(p.wo, p.frame.ToLocal(direction.Normalize()))
	if math.IsNaN(density) || math.IsInf(density, 0) || density < 0 {
		return 0
	}
	return density
}

// scatterLobe samples m's lobe and packages the event
func scatterLobe(m Material, l lobe, rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	p := newLobePDF(l, rayIn.Direction, hit)
	direction := p.Generate(hit.Point, sampler)

	return ScatterResult{
		Scattered:   core.NewRayAt(hit.Point, direction, rayIn.Time),
		Attenuation: m.EvaluateBRDF(rayIn.Direction, direction, hit),
		PDF:         p,
		PDFValue:    p.Value(hit.Point, direction),
	}, true
}
