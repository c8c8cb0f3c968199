package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/lights"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Cornell box dimensions (standard 555x555x555 units)
const boxSize = 555.0

var (
	cornellRed   = core.NewVec3(0.65, 0.05, 0.05)
	cornellWhite = core.Gray(0.73)
	cornellGreen = core.NewVec3(0.12, 0.45, 0.15)
)

func cornellCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		Center: core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		LookAt: core.NewVec3(278, 278, 0),    // Look at the center of the box
		Up:     core.NewVec3(0, 1, 0),
		VFov:   40.0,
		Time0:  0,
		Time1:  1,
	}
}

// addCornellWalls adds the five walls of the box and returns the white material
func addCornellWalls(s *Scene) material.Handle {
	red := s.AddMaterial(material.NewLambertian(cornellRed))
	white := s.AddMaterial(material.NewLambertian(cornellWhite))
	green := s.AddMaterial(material.NewLambertian(cornellGreen))

	s.Add(
		// Red wall at x=555 and green wall at x=0
		geometry.NewAARect(0, boxSize, 0, boxSize, boxSize, core.AxisX, true, red),
		geometry.NewAARect(0, boxSize, 0, boxSize, 0, core.AxisX, false, green),
		// Ceiling, floor and back wall
		geometry.NewAARect(0, boxSize, 0, boxSize, boxSize, core.AxisY, true, white),
		geometry.NewAARect(0, boxSize, 0, boxSize, 0, core.AxisY, false, white),
		geometry.NewAARect(0, boxSize, 0, boxSize, boxSize, core.AxisZ, true, white),
	)
	return white
}

// NewCornellScene creates the Cornell box with a ceiling light, a polished
// aluminium sphere and a tall box turned towards the camera
func NewCornellScene(opts Options) (*Scene, error) {
	s := newScene("cornell", cornellCamera(), lights.NewConstant(core.Vec3{}))

	white := addCornellWalls(s)

	// Ceiling light just below the ceiling, facing down
	s.AddRectLight("ceiling", 213, 343, 227, 332, 554, core.AxisY, true, core.Gray(7))

	aluminium := s.AddMaterial(material.NewMetal(core.NewVec3(0.8, 0.85, 0.88), 0))
	s.Add(geometry.NewSphere(core.NewVec3(405, 90, 405), 90, aluminium))

	tall := geometry.NewBox(core.Vec3{}, core.NewVec3(165, 330, 165), white)
	s.Add(geometry.NewTranslate(geometry.NewRotateY(tall, 15), core.NewVec3(100, 0, 295)))

	return s, nil
}
