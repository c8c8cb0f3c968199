package renderer

import "errors"

var (
	ErrNoScene       = errors.New("renderer: no scene defined")
	ErrInvalidConfig = errors.New("renderer: invalid config")
	ErrInterrupted   = errors.New("renderer: interrupted while rendering")
)
