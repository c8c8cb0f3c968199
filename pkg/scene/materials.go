package scene

import (
	"golang.org/x/xerrors"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/lights"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// materialsEnvironment loads the optional environment map, or a dim sky
func materialsEnvironment(opts Options) (lights.Environment, error) {
	if opts.EnvironmentImage == "" {
		return lights.NewGradient(core.Gray(0.1), core.NewVec3(0.2, 0.25, 0.35)), nil
	}
	tex, err := loaders.LoadTexture(opts.EnvironmentImage, material.FilterBilinear)
	if err != nil {
		return nil, xerrors.Errorf("environment map: %w", err)
	}
	return lights.NewEquirectangular(tex, 1.0), nil
}

// NewMaterialsScene creates a row of unit spheres, one per material, on a
// checker floor under a rectangle light and a small spherical light
func NewMaterialsScene(opts Options) (*Scene, error) {
	camera := renderer.CameraConfig{
		Center:        core.NewVec3(0, 4, -14),
		LookAt:        core.NewVec3(0, 1, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          40.0,
		Aperture:      0.05,
		FocusDistance: 0.0, // Focus on LookAt
		Time0:         0,
		Time1:         1,
	}

	environment, err := materialsEnvironment(opts)
	if err != nil {
		return nil, err
	}
	s := newScene("materials", camera, environment)

	floorChecker := material.NewSolidChecker(core.Gray(0.2), core.Gray(0.8))
	floor := s.AddMaterial(material.NewTexturedLambertian(floorChecker))
	s.Add(geometry.NewAARect(-20, 20, -20, 20, 0, core.AxisY, false, floor))

	s.AddRectLight("softbox", -4, 4, -3, 1, 8, core.AxisY, true, core.Gray(5))
	s.AddSphereLight("bulb", core.NewVec3(6, 5, -4), 0.5, core.NewVec3(30, 25, 20))

	gold := material.NewSolidColor(core.NewVec3(1.0, 0.78, 0.34))
	materials := []material.Material{
		material.NewOrenNayar(material.NewSolidColor(core.NewVec3(0.8, 0.45, 0.2)), 20),
		material.NewTorranceSparrow(gold, 0.05, 0.3),
		material.NewAshikhminShirley(
			material.NewSolidColor(core.NewVec3(0.3, 0.05, 0.05)),
			material.NewSolidColor(core.Gray(0.9)),
			1000, 10,
		),
		material.NewTintedDielectric(
			material.NewSolidColor(core.Gray(1)),
			material.NewSolidColor(core.NewVec3(0.9, 0.95, 1.0)),
			1.5, 0.05,
		),
		material.NewTexturedLambertian(material.NewNoiseTexture(4, material.NoiseAxisNorm)),
		material.NewNormal(false),
		material.NewNormal(true),
	}

	spacing := 2.5
	x := -spacing * float64(len(materials)-1) / 2
	for _, m := range materials {
		s.Add(geometry.NewSphere(core.NewVec3(x, 1, 0), 1, s.AddMaterial(m)))
		x += spacing
	}

	return s, nil
}
