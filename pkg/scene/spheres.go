package scene

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/lights"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

var (
	skyWhite = core.Gray(1)
	skyBlue  = core.NewVec3(0.5, 0.7, 1.0)
)

func sphereFieldCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
		Time0:         0,
		Time1:         1,
	}
}

// randomColor returns a color with each channel uniform in [0,1)
func randomColor(random *rand.Rand) core.Vec3 {
	return core.NewVec3(random.Float64(), random.Float64(), random.Float64())
}

// sphereFieldCenters returns the centers of the small spheres on the ground,
// skipping the ones that would sit inside the large glass sphere
func sphereFieldCenters(random *rand.Rand) []core.Vec3 {
	var centers []core.Vec3
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())
			if center.Subtract(core.NewVec3(4, 0.2, 0)).Length() <= 0.9 {
				continue
			}
			centers = append(centers, center)
		}
	}
	return centers
}

// NewSpheresScene creates the random sphere field under a gradient sky
func NewSpheresScene(opts Options) (*Scene, error) {
	s := newScene("spheres", sphereFieldCamera(), lights.NewGradient(skyWhite, skyBlue))
	random := rand.New(rand.NewSource(opts.Seed))

	ground := s.AddMaterial(material.NewLambertian(core.Gray(0.5)))
	s.Add(geometry.NewSphere(core.NewVec3(0, -1000, -1), 1000, ground))

	for _, center := range sphereFieldCenters(random) {
		var h material.Handle
		switch chooseMat := random.Float64(); {
		case chooseMat < 0.8:
			h = s.AddMaterial(material.NewLambertian(randomColor(random).MultiplyVec(randomColor(random))))
		case chooseMat < 0.95:
			albedo := randomColor(random).Add(core.Gray(1)).Multiply(0.5)
			h = s.AddMaterial(material.NewMetal(albedo, 0.5*random.Float64()))
		default:
			tint := material.NewSolidColor(randomColor(random))
			h = s.AddMaterial(material.NewTintedDielectric(material.NewSolidColor(core.Gray(1)), tint, 1.5, 0))
		}
		s.Add(geometry.NewSphere(center, 0.2, h))
	}

	glass := s.AddMaterial(material.NewDielectric(1.5))
	brown := s.AddMaterial(material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1)))
	mirror := s.AddMaterial(material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0))
	s.Add(
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1, glass),
		geometry.NewSphere(core.NewVec3(0, 1, 0.5), 1, brown),
		geometry.NewSphere(core.NewVec3(-4, 1, 1), 1, mirror),
	)

	return s, nil
}
