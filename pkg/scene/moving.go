package scene

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/lights"
	"github.com/df07/go-pathtracer/pkg/material"
)

var (
	oceanBlue = core.NewVec3(0.1, 0.25, 0.6)
	landGreen = core.NewVec3(0.2, 0.45, 0.15)
)

// NewMovingScene creates the sphere field lit by a single rectangle. The
// small spheres move up during the shutter interval.
func NewMovingScene(opts Options) (*Scene, error) {
	s := newScene("moving", sphereFieldCamera(), lights.NewConstant(core.Gray(0.02)))
	random := rand.New(rand.NewSource(opts.Seed))

	earth, err := earthTexture(opts)
	if err != nil {
		return nil, err
	}

	s.AddRectLight("panel", 3, 5, 1, 3, -0.5, core.AxisZ, false, core.Gray(4))

	checker := material.NewSolidChecker(core.NewVec3(0.2, 0.3, 0.1), core.Gray(0.9))
	ground := s.AddMaterial(material.NewTexturedLambertian(checker))
	s.Add(geometry.NewSphere(core.NewVec3(0, -1000, -1), 1000, ground))

	for _, center := range sphereFieldCenters(random) {
		var h material.Handle
		switch chooseMat := random.Float64(); {
		case chooseMat < 1.0/3:
			h = s.AddMaterial(material.NewLambertian(randomColor(random)))
		case chooseMat < 2.0/3:
			albedo := randomColor(random).Add(core.Gray(1)).Multiply(0.5)
			h = s.AddMaterial(material.NewMetal(albedo, 0.5*random.Float64()))
		default:
			h = s.AddMaterial(material.NewTintedDielectric(
				material.NewSolidColor(core.Gray(1)), material.NewSolidColor(randomColor(random)), 1.5, 0))
		}
		end := center.Add(core.NewVec3(0, 0.5*random.Float64(), 0))
		s.Add(geometry.NewMovingSphere(center, end, 0, 1, 0.2, h))
	}

	globe := s.AddMaterial(material.NewTexturedLambertian(earth))
	glass := s.AddMaterial(material.NewDielectric(1.5))
	marble := s.AddMaterial(material.NewTexturedMetal(material.NewNoiseTexture(4, material.NoiseAxisX), 0))
	s.Add(
		geometry.NewSphere(core.NewVec3(-4, 1, 2), 1, globe),
		geometry.NewSphere(core.NewVec3(4, 1, 1), 1, glass),
		geometry.NewSphere(core.NewVec3(0, 1, 1.5), 1, marble),
	)

	return s, nil
}
