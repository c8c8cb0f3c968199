package scene

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/lights"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

const (
	groundBoxesPerSide = 20
	groundBoxWidth     = 100.0
	clusterSpheres     = 1000
)

// NewFinalScene creates the closing scene of the sphere series: a floor of
// boxes of random height, glass, metal and textured spheres, two volumes and
// a rotated cluster of small spheres
func NewFinalScene(opts Options) (*Scene, error) {
	camera := renderer.CameraConfig{
		Center: core.NewVec3(478, 278, -600),
		LookAt: core.NewVec3(278, 278, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   40.0,
		Time0:  0,
		Time1:  1,
	}
	s := newScene("final", camera, lights.NewConstant(core.Vec3{}))
	random := rand.New(rand.NewSource(opts.Seed))

	earth, err := earthTexture(opts)
	if err != nil {
		return nil, err
	}

	// Floor of boxes
	ground := s.AddMaterial(material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53)))
	for i := 0; i < groundBoxesPerSide; i++ {
		for j := 0; j < groundBoxesPerSide; j++ {
			x0 := -1000 + float64(i)*groundBoxWidth
			z0 := -1000 + float64(j)*groundBoxWidth
			y1 := 100 * (random.Float64() + 0.01)
			s.Add(geometry.NewBox(
				core.NewVec3(x0, 0, z0),
				core.NewVec3(x0+groundBoxWidth, y1, z0+groundBoxWidth),
				ground,
			))
		}
	}

	s.AddRectLight("ceiling", 113, 443, 127, 432, 554, core.AxisY, true, core.Gray(7))

	brown := s.AddMaterial(material.NewLambertian(core.NewVec3(0.7, 0.3, 0.1)))
	s.Add(geometry.NewSphere(core.NewVec3(400, 400, 200), 50, brown))

	glass := s.AddMaterial(material.NewDielectric(1.5))
	s.Add(geometry.NewSphere(core.NewVec3(260, 150, 45), 50, glass))

	// Fuzz above one is clamped
	brushed := s.AddMaterial(material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 10))
	s.Add(geometry.NewSphere(core.NewVec3(0, 150, 145), 50, brushed))

	// Glass shell filled with blue smoke
	shell := geometry.NewSphere(core.NewVec3(360, 150, 45), 70, glass)
	smoke := s.AddMaterial(material.NewIsotropic(core.NewVec3(0.2, 0.4, 0.9)))
	s.Add(shell, geometry.NewConstantMedium(shell, 0.2, smoke))

	// Thin white fog around everything
	fog := s.AddMaterial(material.NewIsotropic(core.Gray(1)))
	s.Add(geometry.NewConstantMedium(geometry.NewSphere(core.Vec3{}, 5000, glass), 0.0001, fog))

	globe := s.AddMaterial(material.NewTexturedLambertian(earth))
	s.Add(geometry.NewSphere(core.NewVec3(400, 200, 400), 100, globe))

	marble := s.AddMaterial(material.NewTexturedLambertian(material.NewNoiseTexture(0.1, material.NoiseAxisX)))
	s.Add(geometry.NewSphere(core.NewVec3(220, 280, 300), 80, marble))

	// Cluster of small spheres inside a 165 unit cube, instanced as one BVH
	white := s.AddMaterial(material.NewLambertian(cornellWhite))
	cluster := make([]geometry.Shape, 0, clusterSpheres)
	for i := 0; i < clusterSpheres; i++ {
		center := randomColor(random).Multiply(165)
		cluster = append(cluster, geometry.NewSphere(center, 10, white))
	}
	rotated := geometry.NewRotateY(geometry.NewBVH(cluster), 15)
	s.Add(geometry.NewTranslate(rotated, core.NewVec3(-100, 270, 395)))

	return s, nil
}
