package ring

import (
	"errors"
	"fmt"
)

// Domain errors for solver construction and evaluation.
var (
	// ErrInvalidDimension indicates a malformed cell count or profile length.
	ErrInvalidDimension = errors.New("ring: invalid cell count or profile length")

	// ErrNonFiniteInput indicates a NaN or Inf among coefficients or profiles.
	ErrNonFiniteInput = errors.New("ring: non-finite coefficient or profile value")

	// ErrSingularMode indicates a mode whose amplitude system has no unique solution.
	ErrSingularMode = errors.New("ring: mode amplitude system is singular")

	// ErrNumericOverflow indicates a growth term beyond float64 range.
	ErrNumericOverflow = errors.New("ring: growth term overflows float64 range")

	// ErrComplexResidue indicates an imaginary residue above tolerance,
	// which should not occur for real inputs over a conjugate-symmetric
	// mode set.
	ErrComplexResidue = errors.New("ring: imaginary residue above tolerance")
)

// SingularModeError reports which mode's 2x2 amplitude system was singular.
type SingularModeError struct {
	Mode int
	Det  float64
}

func (e *SingularModeError) Error() string {
	return fmt.Sprintf("ring: mode %d amplitude system is singular (|det|=%.3e)", e.Mode, e.Det)
}

func (e *SingularModeError) Unwrap() error { return ErrSingularMode }

// OverflowError reports the query time and growth rate that would overflow.
type OverflowError struct {
	T    float64
	Rate float64
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("ring: exp(%.3g * %.3g) overflows float64", e.Rate, e.T)
}

func (e *OverflowError) Unwrap() error { return ErrNumericOverflow }
