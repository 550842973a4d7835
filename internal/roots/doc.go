// Package roots provides bracketed root finding for scalar functions.
//
// The package narrows a bracket [lower, upper] whose endpoint values have
// opposite sign by bisection, then refines the final bracket once with a
// linear interpolation between its endpoints:
//
//   - [Func]: the evaluated function f(x)
//   - [Bisection]: bracket state and a single narrowing step
//   - [Driver]: steps a Bisection and decides when the run stops
//   - [Solver]: runs a Bisection to tolerance, reporting errors
//   - [Solve]: convenience driver that never fails
//
// # Example
//
//	root := roots.Solve(roots.FuncOf(math.Sin), 3, 4, 1e-5) // ~ math.Pi
//
// Callers that need strict error handling use a [Solver]:
//
//	s := roots.New(roots.DefaultConfig())
//	res, err := s.Run(ctx, f, a, b)
//	if errors.Is(err, roots.ErrInvalidArgument) {
//	    // f(a) and f(b) share a sign
//	}
//
// # Thread Safety
//
// A Bisection is owned by one goroutine. Solver and Solve hold no shared
// mutable state and may be used concurrently as long as the Func and any
// observers are safe for concurrent use.
package roots
