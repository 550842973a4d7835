package batch

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/rootfind/internal/config"
	"github.com/san-kum/rootfind/internal/roots"
)

// Resolver turns a problem's func field into a Func.
type Resolver interface {
	Resolve(nameOrExpr string) (roots.Func, error)
}

// Outcome is the result of one problem. Err holds the solver error, if any;
// Result is always set.
type Outcome struct {
	Problem config.Problem
	Result  *roots.Result
	Trace   []roots.Iteration
	Err     error
}

// Runner solves problem sets concurrently.
type Runner struct {
	resolver Resolver
	workers  int
}

func New(resolver Resolver, workers int) *Runner {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Runner{resolver: resolver, workers: workers}
}

// Run solves every problem and returns the outcomes in input order. Solver
// failures are recorded per outcome; Run itself fails only when a problem's
// function cannot be resolved or ctx is canceled.
func (r *Runner) Run(ctx context.Context, problems []config.Problem) ([]Outcome, error) {
	funcs := make([]roots.Func, len(problems))
	for i, p := range problems {
		f, err := r.resolver.Resolve(p.Func)
		if err != nil {
			return nil, fmt.Errorf("problem %q: %w", p.Name, err)
		}
		funcs[i] = f
	}

	outcomes := make([]Outcome, len(problems))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i := range problems {
		idx := i
		g.Go(func() error {
			p := problems[idx]
			trace := &roots.Trace{}

			solver := roots.New(p.SolverConfig())
			solver.AddObserver(trace)

			res, err := solver.Run(gctx, funcs[idx], p.Lower, p.Upper)
			if gctx.Err() != nil {
				return gctx.Err()
			}

			outcomes[idx] = Outcome{Problem: p, Result: res, Trace: trace.Iterations, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}
