// Package lights holds what the estimator knows about light sources: the
// registry of emissive geometry used for light sampling and the environment
// seen by rays that escape the scene.
package lights

import (
	"fmt"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/pdf"
)

// Light pairs a sampling distribution bound to a light's geometry with its emission
type Light struct {
	Name     string
	PDF      pdf.PDF
	Emission core.Vec3
}

// Registry is the ordered list of sampleable lights. It is filled during
// scene setup and only read while rendering.
type Registry struct {
	lights []Light
}

// NewRegistry creates a registry holding lights in order
func NewRegistry(lights ...Light) *Registry {
	r := &Registry{}
	for _, l := range lights {
		r.Add(l)
	}
	return r
}

// Add appends a light. Entries without a PDF are ignored.
func (r *Registry) Add(l Light) {
	if l.PDF == nil {
		return
	}
	r.lights = append(r.lights, l)
}

// AddRectangle registers an axis-aligned rectangular light
func (r *Registry) AddRectangle(name string, a0, a1, b0, b1, k float64, axis core.Axis, emission core.Vec3) {
	r.Add(Light{Name: name, PDF: pdf.NewRectangle(a0, a1, b0, b1, k, axis), Emission: emission})
}

// AddSphere registers a spherical light
func (r *Registry) AddSphere(name string, center core.Vec3, radius float64, emission core.Vec3) {
	r.Add(Light{Name: name, PDF: pdf.NewSphere(center, radius), Emission: emission})
}

// Len returns the number of registered lights
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.lights)
}

// At returns the i-th light
func (r *Registry) At(i int) Light {
	return r.lights[i]
}

// Choose selects a light uniformly from u in [0,1).
// It reports false when the registry is empty.
func (r *Registry) Choose(u float64) (Light, bool) {
	n := r.Len()
	if n == 0 {
		return Light{}, false
	}
	index := int(u * float64(n))
	if index >= n {
		index = n - 1
	}
	if index < 0 {
		index = 0
	}
	return r.lights[index], true
}

func (r *Registry) String() string {
	if r.Len() == 0 {
		return "no lights"
	}
	names := make([]string, 0, len(r.lights))
	for i, l := range r.lights {
		name := l.Name
		if name == "" {
			name = fmt.Sprintf("light%d", i)
		}
		names = append(names, fmt.Sprintf("%s(%s)", name, l.PDF.Kind()))
	}
	return fmt.Sprintf("%d lights: %s", len(r.lights), strings.Join(names, ", "))
}
