// Package pdf holds the direction distributions used for importance sampling.
//
// Every PDF draws directions from a fixed origin and reports the solid-angle
// density of the distribution it draws from. Generate and Value must agree:
// if Value does not return the true density of Generate, estimates that divide
// by it are biased.
package pdf

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Kind identifies one member of the closed set of distributions
type Kind int

const (
	KindInvalid Kind = iota
	KindCosine
	KindUniform
	KindRectangle
	KindSphere
	KindMixture
	// KindLobe is a distribution defined by a material's own scattering lobe
	KindLobe
)

func (k Kind) String() string {
	switch k {
	case KindCosine:
		return "cosine"
	case KindUniform:
		return "uniform"
	case KindRectangle:
		return "rectangle"
	case KindSphere:
		return "sphere"
	case KindMixture:
		return "mixture"
	case KindLobe:
		return "lobe"
	}

	return "invalid"
}

// PDF is a sampling distribution over directions from an origin
type PDF interface {
	Kind() Kind

	// Generate draws a unit direction from origin
	Generate(origin core.Vec3, sampler core.Sampler) core.Vec3

	// Value returns the solid-angle density of direction from origin (always >= 0).
	// direction does not have to be normalized.
	Value(origin, direction core.Vec3) float64
}
