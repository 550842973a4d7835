package roots

import (
	"context"
	"errors"
	"log/slog"
	"math"
)

const (
	DefaultTolerance = 1e-8

	// iterationMargin is added to the bisection count needed to shrink the
	// bracket to the tolerance, since tol bounds |f| and not the width.
	iterationMargin = 64

	// maxBisections walks the whole float64 exponent range plus mantissa.
	maxBisections = 2200
)

type Config struct {
	Tolerance float64
	// MaxIter bounds the narrowing steps; 0 derives it from the bracket.
	MaxIter int
	Logger  *slog.Logger
}

func DefaultConfig() Config {
	return Config{
		Tolerance: DefaultTolerance,
	}
}

// Solver runs a Bisection to tolerance.
type Solver struct {
	cfg       Config
	logger    *slog.Logger
	observers []Observer
}

func New(cfg Config) *Solver {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Solver{
		cfg:       cfg,
		logger:    logger,
		observers: make([]Observer, 0),
	}
}

func (s *Solver) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Solver) Config() Config { return s.cfg }

// Run narrows [a, b] until either endpoint value is within tolerance and
// returns the interpolated root. On error the Result still carries a
// best-effort Root: the midpoint of the initial bracket when construction
// fails, otherwise an estimate from the current bracket.
func (s *Solver) Run(ctx context.Context, f Func, a, b float64) (*Result, error) {
	res := &Result{Root: midpoint(a, b), Lower: a, Upper: b}

	if err := validateTolerance(s.cfg.Tolerance); err != nil {
		return res, err
	}

	fn := &counting{f: f}
	bis, fa, fb, err := bracket(fn, a, b)
	res.Evaluations = fn.n
	if err != nil {
		res.FLower, res.FUpper = fa, fb
		return res, &BracketError{Lower: a, Upper: b, FLower: fa, FUpper: fb, Wrapped: err}
	}
	res.capture(bis)

	d, err := NewDriver(bis, s.cfg)
	if err != nil {
		return res, err
	}

	for !d.Done() {
		select {
		case <-ctx.Done():
			res.Root = bis.Midpoint()
			return res, ctx.Err()
		default:
		}

		it, ok := d.Step()
		res.Iterations = d.Iterations()
		res.Evaluations = fn.n
		res.capture(bis)

		if ok {
			s.notify(it)
		}
	}

	res.Root = d.Root()
	res.Converged = d.Converged()
	if res.Converged {
		s.logger.Debug("bisection converged",
			"root", res.Root, "iter", res.Iterations, "evals", res.Evaluations)
	}
	return res, d.Err()
}

func validateTolerance(tol float64) error {
	if !(tol > 0) || math.IsInf(tol, 0) {
		return ErrInvalidTolerance
	}
	return nil
}

func (s *Solver) notify(it Iteration) {
	for _, o := range s.observers {
		o.OnIterate(it)
	}
}

func newBracketError(k int, b *Bisection, err error) error {
	return &BracketError{
		Iter:    k,
		Lower:   b.Lower(),
		Upper:   b.Upper(),
		FLower:  b.FLower(),
		FUpper:  b.FUpper(),
		Wrapped: err,
	}
}

// IterationLimit returns the narrowing-step bound for a bracket of the
// given width: the bisections needed to reach a width of tol, plus a margin.
func IterationLimit(width, tol float64) int {
	if !(width > 0) || !(tol > 0) {
		return iterationMargin
	}
	n := math.Ceil(math.Log2(width/tol)) + iterationMargin
	if math.IsNaN(n) || n > maxBisections {
		return maxBisections
	}
	if n < iterationMargin {
		return iterationMargin
	}
	return int(n)
}

// Solve finds a root of f in [a, b] to within tol. It never fails: when the
// bracket is invalid or f misbehaves it logs a warning and returns a
// best-effort value, the midpoint (a+b)/2 if the bracket could not be built.
// Use a Solver for strict error handling.
func Solve(f Func, a, b, tol float64) float64 {
	cfg := DefaultConfig()
	cfg.Tolerance = tol
	return SolveWith(cfg, f, a, b)
}

// SolveWith is Solve with an explicit configuration.
func SolveWith(cfg Config, f Func, a, b float64) float64 {
	s := New(cfg)
	res, err := s.Run(context.Background(), f, a, b)
	if err != nil {
		s.warn(a, b, res, err)
	}
	return res.Root
}

func (s *Solver) warn(a, b float64, res *Result, err error) {
	attrs := []any{"a", a, "b", b, "root", res.Root, "err", err}
	var be *BracketError
	if errors.As(err, &be) {
		attrs = append(attrs,
			"iter", be.Iter,
			"lower", be.Lower, "upper", be.Upper,
			"f_lower", be.FLower, "f_upper", be.FUpper)
	}

	msg := "root solve degraded to best estimate"
	switch {
	case errors.Is(err, ErrInvalidArgument), errors.Is(err, ErrBadFunction) && res.Iterations == 0:
		msg = "invalid bracket, returning interval midpoint"
	case errors.Is(err, ErrBadFunction):
		msg = "function returned NaN, returning bracket midpoint"
	case errors.Is(err, ErrMaxIterations), errors.Is(err, ErrNoProgress):
		msg = "tolerance not reached, returning interpolated estimate"
	}
	s.logger.Warn(msg, attrs...)
}
