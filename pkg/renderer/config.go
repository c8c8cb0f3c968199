package renderer

import (
	"fmt"

	"golang.org/x/xerrors"

	"github.com/df07/go-pathtracer/pkg/integrator"
)

// Config controls image size, sample count and parallelism
type Config struct {
	Width           int
	Height          int
	SamplesPerPixel int
	NumWorkers      int    // Number of parallel workers (0 = use CPU count)
	TileSize        int    // Edge length of the square tiles a pass is split into
	Seed            uint32 // Mixed into every per-sample random stream
	PreviewEvery    int    // Deliver a preview every N completed samples (0 = never)

	Tracer integrator.Config
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           400,
		Height:          400,
		SamplesPerPixel: 100,
		TileSize:        32,
		Tracer:          integrator.DefaultConfig(),
	}
}

// Validate checks the configuration
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return xerrors.Errorf("image size %dx%d: %w", c.Width, c.Height, ErrInvalidConfig)
	case c.SamplesPerPixel <= 0:
		return xerrors.Errorf("samples per pixel %d: %w", c.SamplesPerPixel, ErrInvalidConfig)
	case c.NumWorkers < 0:
		return xerrors.Errorf("worker count %d: %w", c.NumWorkers, ErrInvalidConfig)
	case c.TileSize < 0:
		return xerrors.Errorf("tile size %d: %w", c.TileSize, ErrInvalidConfig)
	case c.PreviewEvery < 0:
		return xerrors.Errorf("preview interval %d: %w", c.PreviewEvery, ErrInvalidConfig)
	}
	if err := c.Tracer.Validate(); err != nil {
		// Keep both sentinels reachable; xerrors wraps a single error
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
