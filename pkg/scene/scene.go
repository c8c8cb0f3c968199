// Package scene builds the procedural scenes the renderer can draw.
package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/lights"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

var logger = log.New("scene")

// Scene contains all the elements needed for rendering. It is filled by a
// builder, frozen by Preprocess and only read afterwards.
type Scene struct {
	Name        string
	Camera      renderer.CameraConfig
	Shapes      []geometry.Shape // Objects in the scene
	Environment lights.Environment
	Registry    *lights.Registry // Sampleable lights
	Materials   *material.Arena
	BVH         *geometry.BVH // Acceleration structure for ray-object intersection
}

func newScene(name string, camera renderer.CameraConfig, environment lights.Environment) *Scene {
	return &Scene{
		Name:        name,
		Camera:      camera,
		Environment: environment,
		Registry:    lights.NewRegistry(),
		Materials:   material.NewArena(),
	}
}

// Add appends shapes to the scene
func (s *Scene) Add(shapes ...geometry.Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// AddMaterial stores m in the scene's arena
func (s *Scene) AddMaterial(m material.Material) material.Handle {
	return s.Materials.Add(m)
}

// AddRectLight adds an emissive axis-aligned rectangle and registers the
// same rectangle for light sampling
func (s *Scene) AddRectLight(name string, a0, a1, b0, b1, k float64, axis core.Axis, flip bool, emission core.Vec3) {
	h := s.AddMaterial(material.NewDiffuseLight(emission))
	s.Add(geometry.NewAARect(a0, a1, b0, b1, k, axis, flip, h))
	s.Registry.AddRectangle(name, a0, a1, b0, b1, k, axis, emission)
}

// AddSphereLight adds an emissive sphere and registers it for light sampling
func (s *Scene) AddSphereLight(name string, center core.Vec3, radius float64, emission core.Vec3) {
	h := s.AddMaterial(material.NewDiffuseLight(emission))
	s.Add(geometry.NewSphere(center, radius, h))
	s.Registry.AddSphere(name, center, radius, emission)
}

// Preprocess builds the BVH over the scene's shapes
func (s *Scene) Preprocess() {
	s.BVH = geometry.NewBVH(s.Shapes)

	stats := s.BVH.Stats()
	logger.Infof("scene %s: %d shapes, %d materials, %s", s.Name, len(s.Shapes), s.Materials.Len(), s.Registry)
	logger.Debugf("scene %s: BVH %d nodes, %d leaves, depth %d (avg %.1f)",
		s.Name, stats.TotalNodes, stats.LeafNodes, stats.MaxDepth, stats.AvgDepth)
	for kind, count := range s.Materials.Counts() {
		logger.Debugf("scene %s: %d %s materials", s.Name, count, kind)
	}
}

// NearestHit implements geometry.Intersector
func (s *Scene) NearestHit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	if s.BVH == nil {
		return geometry.List(s.Shapes).NearestHit(ray, tMin, tMax)
	}
	return s.BVH.NearestHit(ray, tMin, tMax)
}

// Background implements lights.Environment. Scenes without an environment are black.
func (s *Scene) Background(direction core.Vec3) core.Vec3 {
	if s.Environment == nil {
		return core.Vec3{}
	}
	return s.Environment.Background(direction)
}

func (s *Scene) Lights() *lights.Registry {
	return s.Registry
}

func (s *Scene) Material(h material.Handle) material.Material {
	return s.Materials.Get(h)
}

func (s *Scene) CameraConfig() renderer.CameraConfig {
	return s.Camera
}
