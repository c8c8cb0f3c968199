package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Normal is a debug material that shows surface normals as color.
// It never scatters.
type Normal struct {
	// Shade switches to grey shading by the cosine between the normal and the view ray
	Shade bool
}

// NewNormal creates a normal visualisation material
func NewNormal(shade bool) *Normal {
	return &Normal{Shade: shade}
}

func (n *Normal) Kind() Kind {
	return KindNormal
}

func (n *Normal) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// Emitted maps the outward normal from [-1,1] to [0,1] per channel, or grey shading
func (n *Normal) Emitted(rayIn core.Ray, hit *HitRecord) core.Vec3 {
	if n.Shade {
		return core.Gray(math.Abs(hit.Normal.Dot(rayIn.Direction.Normalize().Negate())))
	}
	return hit.OutwardNormal().Add(core.NewVec3(1, 1, 1)).Multiply(0.5)
}

func (n *Normal) EvaluateBRDF(incoming, outgoing core.Vec3, hit *HitRecord) core.Vec3 {
	return core.Vec3{}
}

func (n *Normal) PDF(incoming, outgoing core.Vec3, hit *HitRecord) (float64, bool) {
	return 0.0, false
}
