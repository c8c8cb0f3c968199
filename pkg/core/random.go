package core

// XorShift32 is a small deterministic per-path random stream.
// The zero value is not usable; construct it with NewXorShift32 or ForSample.
type XorShift32 struct {
	state uint32
}

// fallbackState replaces a zero seed, which is a fixed point of xorshift
const fallbackState uint32 = 0x9e3779b9

// NewXorShift32 creates a stream from a raw seed
func NewXorShift32(seed uint32) *XorShift32 {
	if seed == 0 {
		seed = fallbackState
	}
	return &XorShift32{state: seed}
}

// ForSample creates the stream for one (pixel, sample) estimation task.
// Streams depend only on their inputs, so results do not depend on scheduling.
// The seed is hashed with the sample index before it meets the pixel index,
// so a different seed selects a different set of streams, not a reordering.
func ForSample(pixelIndex, sampleIndex int, seed uint32) *XorShift32 {
	return NewXorShift32(Tea(uint32(pixelIndex), Tea(uint32(sampleIndex), seed, 4), 4))
}

// Next returns a uniform float in [0, 1)
func (x *XorShift32) Next() float64 {
	x.state ^= x.state << 13
	x.state ^= x.state >> 17
	x.state ^= x.state << 5
	return float64(x.state) * (1.0 / 4294967296.0)
}

// Get1D implements Sampler
func (x *XorShift32) Get1D() float64 {
	return x.Next()
}

// Get2D implements Sampler
func (x *XorShift32) Get2D() Vec2 {
	return NewVec2(x.Next(), x.Next())
}

// Get3D implements Sampler
func (x *XorShift32) Get3D() Vec3 {
	return NewVec3(x.Next(), x.Next(), x.Next())
}

// Tea mixes two words with the given number of Tiny Encryption Algorithm rounds.
// Used to decorrelate seeds of neighbouring pixels and samples.
func Tea(v0, v1 uint32, rounds int) uint32 {
	var s0 uint32
	for n := 0; n < rounds; n++ {
		s0 += 0x9e3779b9
		v0 += ((v1 << 4) + 0xa341316c) ^ (v1 + s0) ^ ((v1 >> 5) + 0xc8013ea4)
		v1 += ((v0 << 4) + 0xad90777d) ^ (v0 + s0) ^ ((v0 >> 5) + 0x7e95761e)
	}
	return v0
}
