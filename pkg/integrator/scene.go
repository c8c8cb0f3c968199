package integrator

import (
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/lights"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Scene is everything the estimator reads while tracing. Implementations
// must be immutable during rendering, since paths query them concurrently.
type Scene interface {
	geometry.Intersector
	lights.Environment

	// Lights returns the registry used for light sampling. It may be empty.
	Lights() *lights.Registry

	// Material resolves a hit record's handle; nil means the handle is unknown
	Material(h material.Handle) material.Material
}
