// Package integrator estimates the radiance arriving along camera rays with
// unidirectional Monte Carlo path tracing.
package integrator

import (
	"errors"

	"golang.org/x/xerrors"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/pdf"
)

// minPDF is the density below which a sampled direction contributes nothing
const minPDF = 1e-12

// Termination records why a path stopped
type Termination int

const (
	// Escaped paths left the scene and picked up the background
	Escaped Termination = iota
	// Absorbed paths ended on a surface that did not scatter
	Absorbed
	// DepthLimit paths ran out of bounces
	DepthLimit
	// Degenerate paths sampled a direction with negligible density or zero weight
	Degenerate
)

func (t Termination) String() string {
	switch t {
	case Escaped:
		return "escaped"
	case Absorbed:
		return "absorbed"
	case DepthLimit:
		return "depth_limit"
	case Degenerate:
		return "degenerate"
	default:
		return "unknown"
	}
}

// PathResult summarizes one estimated path
type PathResult struct {
	Radiance    core.Vec3
	Bounces     int
	Termination Termination

	// NonFinite is set when the raw estimate was NaN or infinite and was replaced by zero
	NonFinite bool
}

// PathTracer is the radiance estimator. It holds no mutable state and may be
// shared by any number of goroutines.
type PathTracer struct {
	scene  Scene
	config Config
}

// NewPathTracer creates an estimator over scene
func NewPathTracer(scene Scene, config Config) (*PathTracer, error) {
	if scene == nil {
		return nil, errors.New("integrator: nil scene")
	}
	if err := config.Validate(); err != nil {
		return nil, xerrors.Errorf("creating path tracer: %w", err)
	}
	return &PathTracer{scene: scene, config: config}, nil
}

// Config returns the estimator settings
func (pt *PathTracer) Config() Config {
	return pt.config
}

// EstimateRadiance returns a single-sample estimate of the radiance arriving along ray
func (pt *PathTracer) EstimateRadiance(ray core.Ray, sampler core.Sampler) core.Vec3 {
	return pt.Trace(ray, sampler).Radiance
}

// Trace follows one path from ray until it escapes, is absorbed or reaches
// the depth cap. Radiance is accumulated front to back: each vertex adds its
// emission weighted by the throughput of the path leading to it.
func (pt *PathTracer) Trace(ray core.Ray, sampler core.Sampler) PathResult {
	radiance := core.Vec3{}
	throughput := core.NewVec3(1, 1, 1)

	result := PathResult{Termination: DepthLimit}
	for depth := 0; depth < pt.config.MaxDepth; depth++ {
		hit, isHit := pt.scene.NearestHit(ray, pt.config.Epsilon, pt.config.TMax)
		if !isHit {
			background := pt.scene.Background(ray.Direction.Normalize())
			radiance = radiance.Add(throughput.MultiplyVec(background))
			result.Termination = Escaped
			break
		}
		result.Bounces = depth + 1

		mat := pt.scene.Material(hit.Material)
		if mat == nil {
			result.Termination = Absorbed
			break
		}

		radiance = radiance.Add(throughput.MultiplyVec(mat.Emitted(ray, &hit)))

		scatter, didScatter := mat.Scatter(ray, &hit, sampler)
		if !didScatter {
			result.Termination = Absorbed
			break
		}

		if scatter.Specular {
			// Delta lobes: the albedo already is the estimator weight
			throughput = throughput.MultiplyVec(scatter.Attenuation)
			ray = scatter.Scattered
			continue
		}

		next, weight, ok := pt.sampleDirection(ray, &hit, mat, scatter, sampler)
		if !ok {
			result.Termination = Degenerate
			break
		}
		throughput = throughput.MultiplyVec(weight)
		ray = next
	}

	if !radiance.IsFinite() {
		result.NonFinite = true
		radiance = core.Vec3{}
	}
	result.Radiance = radiance
	return result
}

// sampleDirection draws the next direction from an even mixture of the
// material's strategy and one uniformly chosen light, and returns the
// f·cos/pdf weight of the new segment
func (pt *PathTracer) sampleDirection(
	ray core.Ray,
	hit *material.HitRecord,
	mat material.Material,
	scatter material.ScatterResult,
	sampler core.Sampler,
) (core.Ray, core.Vec3, bool) {
	var direction core.Vec3
	var density float64
	var brdf core.Vec3

	light, hasLight := pt.scene.Lights().Choose(sampler.Get1D())
	switch {
	case hasLight && scatter.PDF != nil:
		mixture := pdf.NewMixture(light.PDF, scatter.PDF)
		direction = mixture.Generate(hit.Point, sampler).Normalize()
		density = mixture.Value(hit.Point, direction)
		brdf = mat.EvaluateBRDF(ray.Direction, direction, hit)
	default:
		// No light to mix with: keep the material's own sample
		direction = scatter.Scattered.Direction.Normalize()
		density = scatter.PDFValue
		brdf = scatter.Attenuation
	}

	if !(density > minPDF) {
		return core.Ray{}, core.Vec3{}, false
	}

	cosine := 1.0
	if !scatter.Medium {
		cosine = max(0, direction.Dot(hit.Normal))
	}

	weight := brdf.Multiply(cosine / density)
	if weight.IsZero() {
		return core.Ray{}, core.Vec3{}, false
	}
	return core.NewRayAt(hit.Point, direction, ray.Time), weight, true
}
