package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// DiffuseLight emits light and never scatters. Emission is the same from both sides.
type DiffuseLight struct {
	Emission Texture

	// Bounded lights emit only inside the [0,1]² UV square, for textured emitters
	Bounded bool
}

// NewDiffuseLight creates a light with constant emission
func NewDiffuseLight(emission core.Vec3) *DiffuseLight {
	return &DiffuseLight{Emission: NewSolidColor(emission)}
}

// NewTexturedDiffuseLight creates a light whose emission is looked up in a texture
func NewTexturedDiffuseLight(emission Texture) *DiffuseLight {
	return &DiffuseLight{Emission: emission, Bounded: true}
}

func (e *DiffuseLight) Kind() Kind {
	return KindDiffuseLight
}

// Scatter absorbs every incoming ray
func (e *DiffuseLight) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// Emitted returns the texture-evaluated emission
func (e *DiffuseLight) Emitted(rayIn core.Ray, hit *HitRecord) core.Vec3 {
	if e.Bounded && (hit.UV.X < 0 || hit.UV.X > 1 || hit.UV.Y < 0 || hit.UV.Y > 1) {
		return core.Vec3{}
	}
	return e.Emission.Evaluate(hit.UV, hit.Point)
}

// EvaluateBRDF is zero: lights don't reflect
func (e *DiffuseLight) EvaluateBRDF(incoming, outgoing core.Vec3, hit *HitRecord) core.Vec3 {
	return core.Vec3{}
}

func (e *DiffuseLight) PDF(incoming, outgoing core.Vec3, hit *HitRecord) (float64, bool) {
	return 0.0, false
}
