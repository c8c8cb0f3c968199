package lights

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Environment is the radiance seen by rays that leave the scene
type Environment interface {
	Background(direction core.Vec3) core.Vec3
}

// Gradient blends from Bottom (straight down) to Top (straight up) on the unit direction's Y
type Gradient struct {
	Bottom core.Vec3
	Top    core.Vec3
}

// NewGradient creates a gradient sky
func NewGradient(bottom, top core.Vec3) *Gradient {
	return &Gradient{Bottom: bottom, Top: top}
}

func (g *Gradient) Background(direction core.Vec3) core.Vec3 {
	t := 0.5 * (direction.Normalize().Y + 1.0) // Map Y from [-1,1] to [0,1]
	return core.Lerp(g.Bottom, g.Top, t)
}

// Constant returns the same color in every direction
type Constant struct {
	Color core.Vec3
}

// NewConstant creates a constant environment
func NewConstant(color core.Vec3) *Constant {
	return &Constant{Color: color}
}

func (c *Constant) Background(direction core.Vec3) core.Vec3 {
	return c.Color
}

// Equirectangular looks directions up in a latitude-longitude texture.
// u wraps around the Y axis starting at -Z, v=1 is straight up.
type Equirectangular struct {
	Texture material.Texture
	Scale   float64
}

// NewEquirectangular creates an image based environment
func NewEquirectangular(texture material.Texture, scale float64) *Equirectangular {
	return &Equirectangular{Texture: texture, Scale: scale}
}

func (e *Equirectangular) Background(direction core.Vec3) core.Vec3 {
	d := direction.Normalize()
	if d.IsZero() {
		return core.Vec3{}
	}
	u := 0.5 + math.Atan2(d.X, -d.Z)/(2*math.Pi)
	v := 0.5 + math.Asin(math.Max(-1, math.Min(1, d.Y)))/math.Pi
	return e.Texture.Evaluate(core.NewVec2(u, v), d).Multiply(e.Scale)
}
