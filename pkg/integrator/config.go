package integrator

import (
	"errors"
	"math"

	"golang.org/x/xerrors"
)

// ErrInvalidConfig is returned for estimator settings that cannot terminate or self-intersect
var ErrInvalidConfig = errors.New("integrator: invalid config")

// DefaultMaxDepth is the fixed bounce cap. Changing it changes every image.
const DefaultMaxDepth = 50

// Config holds the immutable estimator settings
type Config struct {
	// MaxDepth is the maximum number of intersection queries per path
	MaxDepth int

	// Epsilon is the minimum hit distance, to keep scattered rays from
	// re-hitting the surface they leave
	Epsilon float64

	// TMax is the maximum hit distance
	TMax float64
}

// DefaultConfig returns the reference estimator settings
func DefaultConfig() Config {
	return Config{
		MaxDepth: DefaultMaxDepth,
		Epsilon:  0.001,
		TMax:     math.Inf(1),
	}
}

// Validate checks that the settings describe a terminating estimator
func (c Config) Validate() error {
	if c.MaxDepth <= 0 {
		return xerrors.Errorf("max depth %d must be positive: %w", c.MaxDepth, ErrInvalidConfig)
	}
	if !(c.Epsilon > 0) {
		return xerrors.Errorf("epsilon %g must be positive: %w", c.Epsilon, ErrInvalidConfig)
	}
	if !(c.TMax > c.Epsilon) {
		return xerrors.Errorf("tmax %g must exceed epsilon %g: %w", c.TMax, c.Epsilon, ErrInvalidConfig)
	}
	return nil
}
