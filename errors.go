package occult

import "errors"

// Sentinel errors returned by this package. Callers should test with
// errors.Is since most are returned wrapped with context.
var (
	// ErrOutOfRange is returned when a spherical harmonic order m does not
	// satisfy |m| <= l, or a degree is negative.
	ErrOutOfRange = errors.New("spherical harmonic order out of range")
	// ErrDegenerateAxis is returned when a rotation is requested about a
	// zero norm axis.
	ErrDegenerateAxis = errors.New("rotation axis has zero norm")
	// ErrDimensionMismatch is returned when two operands of incompatible
	// degree or length are combined.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrInvalidGeometry is returned for a negative occultor radius, a non
	// positive quadrature order, or an empty time grid.
	ErrInvalidGeometry = errors.New("invalid geometry")
)
