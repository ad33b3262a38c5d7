package kinetics

import "errors"

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a state vector with invalid dimensions or values.
	ErrInvalidState = errors.New("kinetics: invalid state (NaN or Inf detected)")

	// ErrUnstable indicates the simulation became numerically unstable.
	ErrUnstable = errors.New("kinetics: simulation unstable (state diverged)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("kinetics: parameter out of valid bounds")

	// ErrStepTooSmall indicates adaptive timestep became too small.
	ErrStepTooSmall = errors.New("kinetics: adaptive timestep below minimum")

	// ErrDimensionMismatch indicates mismatched state/system dimensions.
	ErrDimensionMismatch = errors.New("kinetics: dimension mismatch between state and system")
)

// RunError wraps an error with simulation context.
type RunError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *RunError) Error() string {
	return e.Wrapped.Error()
}

func (e *RunError) Unwrap() error {
	return e.Wrapped
}
