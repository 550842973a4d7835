package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/rootfind/internal/batch"
	"github.com/san-kum/rootfind/internal/config"
	"github.com/san-kum/rootfind/internal/funcs"
	"github.com/san-kum/rootfind/internal/report"
	"github.com/san-kum/rootfind/internal/roots"
	"github.com/san-kum/rootfind/internal/storage"
	"github.com/san-kum/rootfind/internal/tui"
)

// loadProblem builds a problem from, in increasing precedence: defaults, a
// preset or config file, explicitly set flags and the positional func.
// A built-in function named without a bracket uses its own bracket.
func loadProblem(cmd *cobra.Command, args []string, reg *funcs.Registry) (*config.Problem, error) {
	p := config.DefaultProblem()

	switch {
	case configFile != "" && preset != "":
		return nil, fmt.Errorf("--config and --preset are mutually exclusive")
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		p = loaded
	case preset != "":
		p = config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	explicitBracket := configFile != "" || preset != ""
	if len(args) > 0 {
		p.Func = args[0]
		b, err := reg.Get(args[0])
		if !explicitBracket {
			p.Name = "expr"
			if err == nil {
				p.Name = b.Name
				p.Lower, p.Upper = b.Lower, b.Upper
			}
		}
	}

	flags := cmd.Flags()
	if flags.Changed("lower") {
		p.Lower = lower
	}
	if flags.Changed("upper") {
		p.Upper = upper
	}
	if flags.Changed("tol") {
		p.Tolerance = tolerance
	}
	if flags.Changed("max-iter") {
		p.MaxIter = maxIter
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	reg := funcs.NewRegistry()
	p, err := loadProblem(cmd, args, reg)
	if err != nil {
		return err
	}

	f, err := reg.Resolve(p.Func)
	if err != nil {
		return err
	}

	solver := roots.New(p.SolverConfig())
	trace := &roots.Trace{}
	solver.AddObserver(trace)

	res, runErr := solver.Run(cmd.Context(), f, p.Lower, p.Upper)
	if ctxErr := cmd.Context().Err(); ctxErr != nil && errors.Is(runErr, ctxErr) {
		return runErr
	}
	if runErr != nil {
		slog.Warn("solve did not converge, reporting best estimate",
			"name", p.Name, "root", res.Root, "err", runErr)
	}

	fmt.Println(report.Summary(p, res, runErr))
	if table {
		fmt.Println(report.Table(trace.Iterations))
	}
	if plot {
		fmt.Println(report.Convergence(trace.Iterations))
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(storage.NewRunMetadata(p, res, runErr), trace.Iterations)
		if err != nil {
			return err
		}
		fmt.Printf("saved: %s\n", runID)
	}
	return nil
}

func runStep(cmd *cobra.Command, args []string) error {
	reg := funcs.NewRegistry()
	p, err := loadProblem(cmd, args, reg)
	if err != nil {
		return err
	}

	f, err := reg.Resolve(p.Func)
	if err != nil {
		return err
	}

	final, err := tui.Run(*p, f)
	if err != nil {
		return err
	}
	if final.Done() {
		fmt.Printf("root: %.15g (%d iterations)\n", final.Root(), len(final.Trace()))
	}
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	set, err := config.LoadSet(args[0])
	if err != nil {
		return err
	}

	n := workers
	if n == 0 {
		n = set.Workers
	}

	outcomes, err := batch.New(funcs.NewRegistry(), n).Run(cmd.Context(), set.Problems)
	if err != nil {
		return err
	}

	var st *storage.Store
	if save {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tROOT\tITER\tEVALS\tSTATUS\tRUN")
	for _, o := range outcomes {
		if o.Err != nil {
			slog.Warn("problem did not converge", "name", o.Problem.Name, "root", o.Result.Root, "err", o.Err)
		}

		runID := "-"
		if st != nil {
			runID, err = st.Save(storage.NewRunMetadata(&o.Problem, o.Result, o.Err), o.Trace)
			if err != nil {
				return err
			}
		}
		fmt.Fprintf(w, "%s\t%.15g\t%d\t%d\t%s\t%s\n",
			o.Problem.Name, o.Result.Root, o.Result.Iterations, o.Result.Evaluations,
			report.Status(o.Result.Converged, o.Err), runID)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFUNC\tBRACKET\tROOT\tITER\tSTATUS\tTIMESTAMP")
	for _, run := range runs {
		status := run.Status
		if status == "" {
			status = roots.OutcomeUnknown
		}
		fmt.Fprintf(w, "%s\t%s\t[%g, %g]\t%.15g\t%d\t%s\t%s\n",
			run.ID, run.Func, run.Lower, run.Upper, run.Root, run.Iterations,
			status, run.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	trace, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	p := &config.Problem{Name: meta.Name, Func: meta.Func, Lower: meta.Lower, Upper: meta.Upper, Tolerance: meta.Tolerance}
	res := &roots.Result{
		Root:        meta.Root,
		Iterations:  meta.Iterations,
		Evaluations: meta.Evaluations,
		Lower:       meta.Lower,
		Upper:       meta.Upper,
		Converged:   meta.Converged,
	}
	if n := len(trace); n > 0 {
		last := trace[n-1]
		res.Lower, res.Upper = last.Lower, last.Upper
		res.FLower, res.FUpper = last.FLower, last.FUpper
	}

	fmt.Println(report.RunSummary(p, res, meta.Status, meta.Error))
	fmt.Println(report.Table(trace))
	if plot {
		fmt.Println(report.Convergence(trace))
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	trace, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, trace)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	trace, err := storage.New(dataDir).LoadTrace(args[0])
	if err != nil {
		return err
	}
	return storage.WriteTraceCSV(os.Stdout, trace)
}
