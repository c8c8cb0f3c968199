package material

import (
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

const (
	perlinPointCount = 256
	turbulenceDepth  = 7
)

// perlin is gradient noise over a lattice of random unit vectors.
// Tables are immutable after construction.
type perlin struct {
	vectors [perlinPointCount]core.Vec3
	permX   [perlinPointCount]int
	permY   [perlinPointCount]int
	permZ   [perlinPointCount]int
}

func newPerlin(random *rand.Rand) *perlin {
	p := &perlin{}
	for i := range p.vectors {
		sample := core.NewVec2(random.Float64(), random.Float64())
		p.vectors[i] = core.SampleOnUnitSphere(sample)
	}
	p.permX = permutation(random)
	p.permY = permutation(random)
	p.permZ = permutation(random)
	return p
}

func permutation(random *rand.Rand) [perlinPointCount]int {
	var perm [perlinPointCount]int
	for i := range perm {
		perm[i] = i
	}
	random.Shuffle(len(perm), func(i, j int) {
		perm[i], perm[j] = perm[j], perm[i]
	})
	return perm
}

// noise returns a value in roughly [-1, 1]
func (p *perlin) noise(point core.Vec3) float64 {
	fx, fy, fz := math.Floor(point.X), math.Floor(point.Y), math.Floor(point.Z)
	u, v, w := point.X-fx, point.Y-fy, point.Z-fz
	i, j, k := int(fx), int(fy), int(fz)

	// Hermite smoothing
	uu := u * u * (3 - 2*u)
	vv := v * v * (3 - 2*v)
	ww := w * w * (3 - 2*w)

	accum := 0.0
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				gradient := p.vectors[p.permX[(i+di)&255]^p.permY[(j+dj)&255]^p.permZ[(k+dk)&255]]
				weight := core.NewVec3(u-float64(di), v-float64(dj), w-float64(dk))
				accum += lattice(di, uu) * lattice(dj, vv) * lattice(dk, ww) * gradient.Dot(weight)
			}
		}
	}
	return accum
}

func lattice(corner int, t float64) float64 {
	if corner == 1 {
		return t
	}
	return 1 - t
}

// turbulence sums absolute noise over octaves of doubling frequency and halving weight
func (p *perlin) turbulence(point core.Vec3, depth int) float64 {
	accum := 0.0
	weight := 1.0
	for i := 0; i < depth; i++ {
		accum += weight * math.Abs(p.noise(point))
		weight *= 0.5
		point = point.Multiply(2)
	}
	return accum
}

// NoiseAxis selects which coordinate drives the noise stripes
type NoiseAxis int

const (
	NoiseAxisX NoiseAxis = iota
	NoiseAxisY
	NoiseAxisZ
	// NoiseAxisNorm uses the distance from the origin and gives concentric rings
	NoiseAxisNorm
)

// NoiseTexture is a marble-like grey pattern: 0.5·(1 + sin(scale·c + turbulence(p)))
type NoiseTexture struct {
	Scale float64
	Axis  NoiseAxis
	noise *perlin
}

// NewNoiseTexture creates a noise texture. Lattice tables come from a fixed
// seed so every process renders the same pattern.
func NewNoiseTexture(scale float64, axis NoiseAxis) *NoiseTexture {
	return &NoiseTexture{
		Scale: scale,
		Axis:  axis,
		noise: newPerlin(rand.New(rand.NewSource(0))),
	}
}

func (t *NoiseTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	var coordinate float64
	switch t.Axis {
	case NoiseAxisX:
		coordinate = point.X
	case NoiseAxisY:
		coordinate = point.Y
	case NoiseAxisZ:
		coordinate = point.Z
	default:
		coordinate = point.Length()
	}

	value := 0.5 * (1 + math.Sin(t.Scale*coordinate+t.noise.turbulence(point, turbulenceDepth)))
	return core.Gray(value)
}
