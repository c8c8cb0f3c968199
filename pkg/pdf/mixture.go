package pdf

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Mixture combines two distributions with equal weight.
// The fixed 0.5/0.5 split is kept as-is; it is not a balance or power heuristic.
type Mixture struct {
	A, B PDF
}

// NewMixture creates an even mixture of a and b
func NewMixture(a, b PDF) *Mixture {
	return &Mixture{A: a, B: b}
}

func (m *Mixture) Kind() Kind {
	return KindMixture
}

// Generate picks A or B with probability 0.5 each, then samples it
func (m *Mixture) Generate(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	if sampler.Get1D() < 0.5 {
		return m.A.Generate(origin, sampler)
	}
	return m.B.Generate(origin, sampler)
}

// Value returns 0.5*A + 0.5*B
func (m *Mixture) Value(origin, direction core.Vec3) float64 {
	return 0.5*m.A.Value(origin, direction) + 0.5*m.B.Value(origin, direction)
}
