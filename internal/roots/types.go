package roots

import "errors"

// Iteration is the bracket after one narrowing step.
type Iteration struct {
	K      int     `json:"k"`
	Lower  float64 `json:"lower"`
	Upper  float64 `json:"upper"`
	FLower float64 `json:"f_lower"`
	FUpper float64 `json:"f_upper"`
	Width  float64 `json:"width"`
	Status Status  `json:"status"`
}

type Observer interface {
	OnIterate(it Iteration)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Iteration)

func (f ObserverFunc) OnIterate(it Iteration) { f(it) }

// Trace records every iteration it observes. It is not safe for
// concurrent use; give each Run its own Trace.
type Trace struct {
	Iterations []Iteration
}

func (t *Trace) OnIterate(it Iteration) { t.Iterations = append(t.Iterations, it) }

func (t *Trace) Reset() { t.Iterations = t.Iterations[:0] }

// Result is the outcome of a Run. Root always holds the best available
// estimate, including when Run returns an error.
type Result struct {
	Root        float64
	Iterations  int
	Evaluations int
	Lower       float64
	Upper       float64
	FLower      float64
	FUpper      float64
	Converged   bool
}

func (r *Result) capture(b *Bisection) {
	r.Lower, r.Upper = b.Lower(), b.Upper()
	r.FLower, r.FUpper = b.FLower(), b.FUpper()
}

// Outcome labels how a run ended. It survives serialization where the
// error chain does not.
type Outcome string

const (
	OutcomeConverged   Outcome = "converged"
	OutcomeEstimate    Outcome = "best estimate"
	OutcomeFallback    Outcome = "fallback"
	OutcomeBadFunction Outcome = "bad function"
	OutcomeInterrupted Outcome = "interrupted"
	OutcomeUnknown     Outcome = "unknown"
)

// Classify maps the result of a run to its Outcome.
func Classify(converged bool, err error) Outcome {
	switch {
	case err == nil && converged:
		return OutcomeConverged
	case errors.Is(err, ErrMaxIterations), errors.Is(err, ErrNoProgress):
		return OutcomeEstimate
	case errors.Is(err, ErrInvalidArgument), errors.Is(err, ErrInvalidTolerance):
		return OutcomeFallback
	case errors.Is(err, ErrBadFunction):
		return OutcomeBadFunction
	case err != nil:
		return OutcomeInterrupted
	default:
		return OutcomeUnknown
	}
}

// counting wraps a Func and counts evaluations for a single Run.
type counting struct {
	f Func
	n int
}

func (c *counting) Eval(x float64) float64 {
	c.n++
	return c.f.Eval(x)
}
