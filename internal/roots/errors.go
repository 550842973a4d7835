package roots

import (
	"errors"
	"fmt"
)

var (
	// ErrBadFunction indicates the function returned NaN.
	ErrBadFunction = errors.New("roots: function returned NaN")

	// ErrInvalidArgument indicates the endpoints do not bracket a sign change.
	ErrInvalidArgument = errors.New("roots: endpoints do not bracket a sign change")

	// ErrInvalidTolerance indicates a tolerance that is not a positive number.
	ErrInvalidTolerance = errors.New("roots: tolerance must be positive")

	// ErrMaxIterations indicates the iteration bound was reached before tolerance.
	ErrMaxIterations = errors.New("roots: iteration limit reached")

	// ErrNoProgress indicates the bracket can no longer shrink in float64.
	ErrNoProgress = errors.New("roots: bracket stopped shrinking")
)

// BracketError wraps an error with the bracket at the time it occurred.
type BracketError struct {
	Iter    int
	Lower   float64
	Upper   float64
	FLower  float64
	FUpper  float64
	Wrapped error
}

func (e *BracketError) Error() string {
	return fmt.Sprintf("%v (iter %d, bracket [%g, %g], f=[%g, %g])",
		e.Wrapped, e.Iter, e.Lower, e.Upper, e.FLower, e.FUpper)
}

func (e *BracketError) Unwrap() error {
	return e.Wrapped
}
