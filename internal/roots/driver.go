package roots

// Driver steps a Bisection and decides when the run is over: when either
// endpoint value is within tolerance, when the bracket stops shrinking, or
// when the iteration limit is reached. Solver.Run and interactive front
// ends share it.
type Driver struct {
	bis   *Bisection
	tol   float64
	limit int
	k     int
	root  float64
	err   error
	done  bool
}

// NewDriver prepares a run over b. A MaxIter of 0 derives the limit from
// the bracket width and tolerance.
func NewDriver(b *Bisection, cfg Config) (*Driver, error) {
	if err := validateTolerance(cfg.Tolerance); err != nil {
		return nil, err
	}

	limit := cfg.MaxIter
	if limit <= 0 {
		limit = IterationLimit(b.Width(), cfg.Tolerance)
	}
	return &Driver{
		bis:   b,
		tol:   cfg.Tolerance,
		limit: limit,
		root:  b.Midpoint(),
	}, nil
}

// Step narrows the bracket once. ok is false when no iteration was
// recorded: the run had already finished or f returned NaN. Once Done
// reports true, Root and Err hold the outcome.
func (d *Driver) Step() (it Iteration, ok bool) {
	if d.done {
		return Iteration{}, false
	}

	width := d.bis.Width()
	status, err := d.bis.Iterate()
	d.k++

	if err != nil {
		d.finish(d.bis.Midpoint(), err)
		return Iteration{}, false
	}

	it = Iteration{
		K:      d.k,
		Lower:  d.bis.Lower(),
		Upper:  d.bis.Upper(),
		FLower: d.bis.FLower(),
		FUpper: d.bis.FUpper(),
		Width:  d.bis.Width(),
		Status: status,
	}

	switch {
	case d.bis.Within(d.tol):
		d.finish(d.bis.Estimate(), nil)
	case d.bis.Width() >= width:
		d.finish(d.bis.Estimate(), ErrNoProgress)
	case d.k >= d.limit:
		d.finish(d.bis.Estimate(), ErrMaxIterations)
	default:
		d.root = d.bis.Midpoint()
	}
	return it, true
}

func (d *Driver) finish(root float64, err error) {
	d.root = root
	if err != nil {
		err = newBracketError(d.k, d.bis, err)
	}
	d.err = err
	d.done = true
}

func (d *Driver) Done() bool { return d.done }

// Root is the secant estimate once converged or exhausted, the bracket
// midpoint otherwise.
func (d *Driver) Root() float64 { return d.root }

// Err is nil until the run ends and after a converged run. Failures are
// *BracketError values wrapping ErrBadFunction, ErrNoProgress or
// ErrMaxIterations.
func (d *Driver) Err() error { return d.err }

func (d *Driver) Iterations() int       { return d.k }
func (d *Driver) Limit() int            { return d.limit }
func (d *Driver) Bisection() *Bisection { return d.bis }
func (d *Driver) Converged() bool       { return d.done && d.err == nil }
