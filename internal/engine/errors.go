package engine

import "errors"

// Validation and planning failures. Callers match them with errors.Is; the
// returned errors wrap them with the offending values.
var (
	ErrInvalidPanel     = errors.New("invalid panel")
	ErrInvalidTile      = errors.New("invalid tile")
	ErrUnknownMethod    = errors.New("unknown laying method")
	ErrInvalidExclusion = errors.New("invalid exclusion zone")
	ErrScaleNotFound    = errors.New("no scale fits the canvas")
	ErrInvalidScheme    = errors.New("unknown scheme")
	ErrTooManyTiles     = errors.New("too many tiles")
)

// IsValidation reports whether err was caused by bad input rather than an
// internal failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidPanel) ||
		errors.Is(err, ErrInvalidTile) ||
		errors.Is(err, ErrUnknownMethod) ||
		errors.Is(err, ErrInvalidExclusion) ||
		errors.Is(err, ErrInvalidScheme) ||
		errors.Is(err, ErrTooManyTiles)
}
