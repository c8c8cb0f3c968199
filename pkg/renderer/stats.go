package renderer

import (
	"image"
	"time"

	"github.com/df07/go-pathtracer/pkg/integrator"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int     // Total number of pixels rendered
	TotalSamples   int     // Total number of samples taken
	AverageSamples float64 // Average samples per pixel
	Passes         int     // Completed sample passes

	// NonFiniteSamples counts paths whose estimate was NaN or infinite and was replaced by black
	NonFiniteSamples int
	AverageBounces   float64
	Terminations     map[integrator.Termination]int

	RenderTime time.Duration
}

// passTally collects path statistics of one tile during one pass
type passTally struct {
	samples      int
	nonFinite    int
	bounces      int
	terminations [integrator.Degenerate + 1]int
}

func (t *passTally) add(result integrator.PathResult) {
	t.samples++
	t.bounces += result.Bounces
	if result.NonFinite {
		t.nonFinite++
	}
	if result.Termination >= 0 && int(result.Termination) < len(t.terminations) {
		t.terminations[result.Termination]++
	}
}

// merge folds a completed pass into the running statistics
func (s *RenderStats) merge(tallies []passTally) {
	if s.Terminations == nil {
		s.Terminations = make(map[integrator.Termination]int)
	}

	totalBounces := s.AverageBounces * float64(s.TotalSamples)
	for _, tally := range tallies {
		s.TotalSamples += tally.samples
		s.NonFiniteSamples += tally.nonFinite
		totalBounces += float64(tally.bounces)
		for termination, count := range tally.terminations {
			if count > 0 {
				s.Terminations[integrator.Termination(termination)] += count
			}
		}
	}
	s.Passes++

	if s.TotalSamples > 0 {
		s.AverageBounces = totalBounces / float64(s.TotalSamples)
	}
	if s.TotalPixels > 0 {
		s.AverageSamples = float64(s.TotalSamples) / float64(s.TotalPixels)
	}
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an image, in [0,1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 0xffff
		}
	}
	return total / float64(pixels)
}
