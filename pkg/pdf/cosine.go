package pdf

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Cosine is the cosine-weighted hemisphere around a surface normal
type Cosine struct {
	basis core.ONB
}

// NewCosine creates a cosine-weighted distribution around normal
func NewCosine(normal core.Vec3) *Cosine {
	return &Cosine{basis: core.NewONB(normal)}
}

func (c *Cosine) Kind() Kind {
	return KindCosine
}

// Generate maps a uniform disk sample up onto the hemisphere
func (c *Cosine) Generate(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return c.basis.Local(core.CosineHemisphereLocal(sampler.Get2D())).Normalize()
}

// Value returns max(0, cos θ)/π; zero for the lower hemisphere
func (c *Cosine) Value(origin, direction core.Vec3) float64 {
	cosine := direction.Normalize().Dot(c.basis.W)
	if cosine <= 0 {
		return 0
	}
	return cosine / math.Pi
}

// Uniform is the uniform distribution over the whole sphere of directions
type Uniform struct{}

// NewUniform creates a uniform sphere distribution
func NewUniform() Uniform {
	return Uniform{}
}

func (Uniform) Kind() Kind {
	return KindUniform
}

func (Uniform) Generate(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return core.SampleOnUnitSphere(sampler.Get2D())
}

func (Uniform) Value(origin, direction core.Vec3) float64 {
	if direction.LengthSquared() == 0 {
		return 0
	}
	return 1.0 / (4.0 * math.Pi)
}
