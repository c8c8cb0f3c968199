package core

import "testing"

func TestXorShift32_Range(t *testing.T) {
	rng := NewXorShift32(0)
	for i := 0; i < 100000; i++ {
		v := rng.Next()
		if v < 0 || v >= 1 {
			t.Fatalf("Value %f outside [0, 1)", v)
		}
	}
}

func TestXorShift32_ZeroSeedDoesNotStall(t *testing.T) {
	rng := NewXorShift32(0)
	first := rng.Next()
	second := rng.Next()
	if first == 0 && second == 0 {
		t.Error("Zero seed produced a stuck stream")
	}
}

func TestXorShift32_Deterministic(t *testing.T) {
	a := ForSample(1234, 7, 0)
	b := ForSample(1234, 7, 0)
	for i := 0; i < 1000; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("Streams with identical inputs diverged at %d", i)
		}
	}
}

func TestForSample_DistinctStreams(t *testing.T) {
	seen := make(map[float64]bool)
	for pixel := 0; pixel < 64; pixel++ {
		for sample := 0; sample < 16; sample++ {
			v := ForSample(pixel, sample, 0).Next()
			if seen[v] {
				t.Fatalf("Pixel %d sample %d repeated first value %f", pixel, sample, v)
			}
			seen[v] = true
		}
	}
}

func TestForSample_SeedSelectsNewStreams(t *testing.T) {
	type key struct{ a, b float64 }
	const pixel = 37
	owner := make(map[key][2]uint32)
	for seed := uint32(0); seed < 8; seed++ {
		for sample := 0; sample < 16; sample++ {
			rng := ForSample(pixel, sample, seed)
			k := key{rng.Next(), rng.Next()}
			if prev, ok := owner[k]; ok && prev[0] != seed {
				t.Fatalf("Seed %d sample %d reuses the stream of seed %d sample %d", seed, sample, prev[0], prev[1])
			}
			owner[k] = [2]uint32{seed, uint32(sample)}
		}
	}
	if len(owner) != 8*16 {
		t.Errorf("Expected %d distinct streams, got %d", 8*16, len(owner))
	}
}

func TestXorShift32_Mean(t *testing.T) {
	rng := ForSample(0, 0, 0)
	const n = 200000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += rng.Get1D()
	}
	if mean := sum / n; mean < 0.49 || mean > 0.51 {
		t.Errorf("Mean = %f, expected ~0.5", mean)
	}
}
