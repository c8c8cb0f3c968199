package integrator

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/lights"
	"github.com/df07/go-pathtracer/pkg/material"
)

// testScene is a minimal Scene over a linear shape list
type testScene struct {
	geometry.Intersector
	lights.Environment
	registry *lights.Registry
	arena    *material.Arena
}

func (s *testScene) Lights() *lights.Registry                   { return s.registry }
func (s *testScene) Material(h material.Handle) material.Material { return s.arena.Get(h) }

// countingIntersector counts nearest-hit queries
type countingIntersector struct {
	geometry.Intersector
	queries int
}

func (c *countingIntersector) NearestHit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	c.queries++
	return c.Intersector.NearestHit(ray, tMin, tMax)
}

func newTestTracer(t *testing.T, scene Scene) *PathTracer {
	t.Helper()
	pt, err := NewPathTracer(scene, DefaultConfig())
	if err != nil {
		t.Fatalf("NewPathTracer() error = %v", err)
	}
	return pt
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		valid  bool
	}{
		{"default", func(*Config) {}, true},
		{"zero depth", func(c *Config) { c.MaxDepth = 0 }, false},
		{"zero epsilon", func(c *Config) { c.Epsilon = 0 }, false},
		{"nan epsilon", func(c *Config) { c.Epsilon = math.NaN() }, false},
		{"tmax below epsilon", func(c *Config) { c.TMax = 0.0001 }, false},
		{"finite tmax", func(c *Config) { c.TMax = 1000 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(&config)
			err := config.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	if config.MaxDepth != 50 {
		t.Errorf("MaxDepth = %d, want 50", config.MaxDepth)
	}
	if config.Epsilon != 0.001 {
		t.Errorf("Epsilon = %g, want 0.001", config.Epsilon)
	}
	if !math.IsInf(config.TMax, 1) {
		t.Errorf("TMax = %g, want +Inf", config.TMax)
	}
}

func TestNewPathTracer_Errors(t *testing.T) {
	if _, err := NewPathTracer(nil, DefaultConfig()); err == nil {
		t.Error("Expected error for nil scene")
	}

	scene := &testScene{Intersector: geometry.List{}, Environment: lights.NewConstant(core.Vec3{}), arena: material.NewArena()}
	if _, err := NewPathTracer(scene, Config{}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for zero config, got %v", err)
	}
}

func TestTrace_MissReturnsBackground(t *testing.T) {
	sky := core.NewVec3(0.2, 0.4, 0.6)
	scene := &testScene{Intersector: geometry.List{}, Environment: lights.NewConstant(sky), arena: material.NewArena()}

	result := newTestTracer(t, scene).Trace(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), core.NewXorShift32(1))
	if diff := cmp.Diff(sky, result.Radiance); diff != "" {
		t.Errorf("Radiance mismatch (-want +got):\n%s", diff)
	}
	if result.Termination != Escaped || result.Bounces != 0 {
		t.Errorf("Expected an escaped path with no bounces, got %v after %d", result.Termination, result.Bounces)
	}
}

func TestTrace_EmissiveHit(t *testing.T) {
	arena := material.NewArena()
	glow := arena.Add(material.NewDiffuseLight(core.NewVec3(4, 3, 2)))
	scene := &testScene{
		Intersector: geometry.List{geometry.NewSphere(core.NewVec3(0, 0, -3), 1, glow)},
		Environment: lights.NewConstant(core.NewVec3(1, 1, 1)),
		arena:       arena,
	}

	result := newTestTracer(t, scene).Trace(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), core.NewXorShift32(1))
	if diff := cmp.Diff(core.NewVec3(4, 3, 2), result.Radiance); diff != "" {
		t.Errorf("Radiance mismatch (-want +got):\n%s", diff)
	}
	if result.Termination != Absorbed || result.Bounces != 1 {
		t.Errorf("Expected absorption at the first hit, got %v after %d", result.Termination, result.Bounces)
	}
}

func TestTrace_MirrorReflectsBackground(t *testing.T) {
	arena := material.NewArena()
	mirror := arena.Add(material.NewMetal(core.NewVec3(0.5, 0.25, 1), 0))
	scene := &testScene{
		Intersector: geometry.List{geometry.NewAARect(-1, 1, -1, 1, 0, core.AxisY, false, mirror)},
		Environment: lights.NewConstant(core.NewVec3(1, 1, 1)),
		arena:       arena,
	}

	result := newTestTracer(t, scene).Trace(core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), core.NewXorShift32(1))
	if diff := cmp.Diff(core.NewVec3(0.5, 0.25, 1), result.Radiance, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("Radiance mismatch (-want +got):\n%s", diff)
	}
	if result.Termination != Escaped || result.Bounces != 1 {
		t.Errorf("Expected escape after one bounce, got %v after %d", result.Termination, result.Bounces)
	}
}

func TestTrace_UnknownMaterialAbsorbs(t *testing.T) {
	scene := &testScene{
		Intersector: geometry.List{geometry.NewSphere(core.NewVec3(0, 0, -3), 1, material.Handle(5))},
		Environment: lights.NewConstant(core.NewVec3(1, 1, 1)),
		arena:       material.NewArena(),
	}

	result := newTestTracer(t, scene).Trace(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), core.NewXorShift32(1))
	if !result.Radiance.IsZero() || result.Termination != Absorbed {
		t.Errorf("Expected a black absorbed path, got %v %v", result.Radiance, result.Termination)
	}
}

func TestTrace_DepthCapBetweenMirrors(t *testing.T) {
	arena := material.NewArena()
	mirror := arena.Add(material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0))
	counter := &countingIntersector{Intersector: geometry.List{
		geometry.NewSphere(core.NewVec3(0, 0, 2), 1, mirror),
		geometry.NewSphere(core.NewVec3(0, 0, -2), 1, mirror),
	}}
	scene := &testScene{
		Intersector: counter,
		Environment: lights.NewGradient(core.NewVec3(1, 1, 1), core.NewVec3(0.5, 0.7, 1.0)),
		arena:       arena,
	}

	pt := newTestTracer(t, scene)
	result := pt.Trace(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)), core.NewXorShift32(3))

	if counter.queries != pt.Config().MaxDepth {
		t.Errorf("Expected exactly %d intersection queries, got %d", pt.Config().MaxDepth, counter.queries)
	}
	if result.Termination != DepthLimit || result.Bounces != pt.Config().MaxDepth {
		t.Errorf("Expected depth limit after %d bounces, got %v after %d", pt.Config().MaxDepth, result.Termination, result.Bounces)
	}
	if !result.Radiance.IsFinite() || !result.Radiance.IsZero() {
		t.Errorf("Trapped path should carry zero radiance, got %v", result.Radiance)
	}
}

func TestTrace_DepthCapOnRandomMirrorPaths(t *testing.T) {
	arena := material.NewArena()
	mirror := arena.Add(material.NewMetal(core.NewVec3(1, 1, 1), 0.1))
	counter := &countingIntersector{Intersector: geometry.List{
		geometry.NewSphere(core.NewVec3(0, 0, 1.5), 1, mirror),
		geometry.NewSphere(core.NewVec3(0, 0, -1.5), 1, mirror),
	}}
	scene := &testScene{
		Intersector: counter,
		Environment: lights.NewGradient(core.NewVec3(1, 1, 1), core.NewVec3(0.5, 0.7, 1.0)),
		arena:       arena,
	}

	pt := newTestTracer(t, scene)
	sampler := core.NewXorShift32(11)
	for i := 0; i < 200; i++ {
		counter.queries = 0
		direction := core.SampleOnUnitSphere(sampler.Get2D())
		result := pt.Trace(core.NewRay(core.Vec3{}, direction), sampler)
		if counter.queries > pt.Config().MaxDepth {
			t.Fatalf("path %d made %d queries, cap is %d", i, counter.queries, pt.Config().MaxDepth)
		}
		if !result.Radiance.IsFinite() || result.NonFinite {
			t.Fatalf("path %d produced non-finite radiance %v", i, result.Radiance)
		}
		// Only the background contributes, and mirrors never amplify it
		if result.Radiance.X > 1+1e-9 || result.Radiance.Y > 1+1e-9 || result.Radiance.Z > 1+1e-9 {
			t.Fatalf("path %d radiance %v exceeds the brightest background", i, result.Radiance)
		}
	}
}

// rectangleFormFactor is the point-to-rectangle form factor for a point at
// height c below one corner of an a x b rectangle parallel to its tangent plane
func rectangleFormFactor(a, b, c float64) float64 {
	x, y := a/c, b/c
	sx, sy := math.Sqrt(1+x*x), math.Sqrt(1+y*y)
	return (x/sx*math.Atan(y/sx) + y/sy*math.Atan(x/sy)) / (2 * math.Pi)
}

func TestEstimateRadiance_LambertianUnderAreaLight(t *testing.T) {
	const (
		albedo   = 0.5
		emission = 4.0
	)

	arena := material.NewArena()
	diffuse := arena.Add(material.NewLambertian(core.Gray(albedo)))
	glow := arena.Add(material.NewDiffuseLight(core.Gray(emission)))

	registry := lights.NewRegistry()
	registry.AddRectangle("ceiling", -1, 1, -1, 1, 3, core.AxisY, core.Gray(emission))

	scene := &testScene{
		Intersector: geometry.List{
			geometry.NewSphere(core.Vec3{}, 1, diffuse),
			geometry.NewAARect(-1, 1, -1, 1, 3, core.AxisY, false, glow),
		},
		Environment: lights.NewConstant(core.Vec3{}),
		registry:    registry,
		arena:       arena,
	}
	pt := newTestTracer(t, scene)

	// The top of the sphere sees only the light, so its radiance is
	// albedo * emission * form factor, whatever the viewing direction
	want := albedo * emission * 4 * rectangleFormFactor(1, 1, 2)

	// Enters the sphere exactly at its top point (0, 1, 0)
	ray := core.NewRay(core.NewVec3(-2, 1.5, 0), core.NewVec3(2, -0.5, 0))

	const samples = 200000
	sum := core.Vec3{}
	for i := 0; i < samples; i++ {
		sum = sum.Add(pt.EstimateRadiance(ray, core.ForSample(0, i, 0)))
	}
	got := sum.Multiply(1.0 / samples)

	for channel, value := range []float64{got.X, got.Y, got.Z} {
		if rel := math.Abs(value-want) / want; rel > 0.02 {
			t.Errorf("channel %d: radiance %f, want %f (relative error %.3f)", channel, value, want, rel)
		}
	}
}

func TestTermination_String(t *testing.T) {
	tests := map[Termination]string{
		Escaped:         "escaped",
		Absorbed:        "absorbed",
		DepthLimit:      "depth_limit",
		Degenerate:      "degenerate",
		Termination(42): "unknown",
	}
	for termination, want := range tests {
		if got := termination.String(); got != want {
			t.Errorf("Termination(%d).String() = %q, want %q", int(termination), got, want)
		}
	}
}
