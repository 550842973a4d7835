package roots

import (
	"fmt"
	"math"
)

// Status reports the outcome of a narrowing step.
type Status int

const (
	// Continue means the bracket was halved and still straddles the root.
	Continue Status = iota
	// Converged means the bracket collapsed onto an exact root.
	Converged
)

func (s Status) String() string {
	switch s {
	case Continue:
		return "continue"
	case Converged:
		return "converged"
	default:
		return "unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "continue":
		*s = Continue
	case "converged":
		*s = Converged
	default:
		return fmt.Errorf("roots: unknown status %q", text)
	}
	return nil
}

// Bisection holds a bracket around a sign change of f.
type Bisection struct {
	f      Func
	lower  float64
	upper  float64
	fLower float64
	fUpper float64
}

// NewBisection evaluates f at both endpoints and validates the bracket.
// The endpoints may be given in either order.
func NewBisection(f Func, a, b float64) (*Bisection, error) {
	bis, _, _, err := bracket(f, a, b)
	return bis, err
}

// bracket is NewBisection that also hands back f(a) and f(b), NaN when an
// endpoint was not evaluated.
func bracket(f Func, a, b float64) (*Bisection, float64, float64, error) {
	if !isFinite(a) || !isFinite(b) {
		return nil, math.NaN(), math.NaN(), ErrInvalidArgument
	}

	fa := f.Eval(a)
	fb := f.Eval(b)

	if math.IsNaN(fa) || math.IsNaN(fb) {
		return nil, fa, fb, ErrBadFunction
	}
	if fa*fb > 0 {
		return nil, fa, fb, ErrInvalidArgument
	}

	if a > b {
		return &Bisection{f: f, lower: b, upper: a, fLower: fb, fUpper: fa}, fa, fb, nil
	}
	return &Bisection{f: f, lower: a, upper: b, fLower: fa, fUpper: fb}, fa, fb, nil
}

// Iterate performs one bisection step. On ErrBadFunction the bracket is
// left unchanged.
func (s *Bisection) Iterate() (Status, error) {
	if s.fLower == 0 {
		s.upper, s.fUpper = s.lower, s.fLower
		return Converged, nil
	}
	if s.fUpper == 0 {
		s.lower, s.fLower = s.upper, s.fUpper
		return Converged, nil
	}

	mid := midpoint(s.lower, s.upper)
	fMid := s.f.Eval(mid)

	if math.IsNaN(fMid) {
		return Continue, ErrBadFunction
	}

	if fMid == 0 {
		s.lower, s.upper = mid, mid
		s.fLower, s.fUpper = fMid, fMid
		return Converged, nil
	}

	// keep the half that still has the sign change
	if s.fLower*fMid < 0 {
		s.upper, s.fUpper = mid, fMid
	} else {
		s.lower, s.fLower = mid, fMid
	}
	return Continue, nil
}

// Within reports whether either endpoint value is within tol of zero.
func (s *Bisection) Within(tol float64) bool {
	return math.Abs(s.fLower) <= tol || math.Abs(s.fUpper) <= tol
}

// Collapsed reports whether the bracket is a single point.
func (s *Bisection) Collapsed() bool { return s.lower == s.upper }

func (s *Bisection) Lower() float64  { return s.lower }
func (s *Bisection) Upper() float64  { return s.upper }
func (s *Bisection) FLower() float64 { return s.fLower }
func (s *Bisection) FUpper() float64 { return s.fUpper }
func (s *Bisection) Width() float64  { return s.upper - s.lower }
func (s *Bisection) Midpoint() float64 {
	return midpoint(s.lower, s.upper)
}

// Estimate returns the zero crossing of the line through both endpoints.
// A collapsed bracket returns its single point; when the secant is
// undefined or leaves the bracket the midpoint is returned.
func (s *Bisection) Estimate() float64 {
	if s.Collapsed() {
		return s.lower
	}
	if s.fLower == s.fUpper {
		return s.Midpoint()
	}

	root := (s.upper*s.fLower - s.lower*s.fUpper) / (s.fLower - s.fUpper)
	if !isFinite(root) || root < s.lower || root > s.upper {
		return s.Midpoint()
	}
	return root
}

// midpoint halves before adding when a+b overflows, so the result stays
// inside [a, b] for any finite endpoints.
func midpoint(a, b float64) float64 {
	m := (a + b) / 2
	if math.IsInf(m, 0) && isFinite(a) && isFinite(b) {
		return a/2 + b/2
	}
	return m
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
