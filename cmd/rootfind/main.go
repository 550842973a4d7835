package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/rootfind/internal/config"
	"github.com/san-kum/rootfind/internal/funcs"
)

var (
	dataDir    string
	logLevel   string
	logFormat  string
	lower      float64
	upper      float64
	tolerance  float64
	maxIter    int
	configFile string
	preset     string
	save       bool
	plot       bool
	table      bool
	workers    int
)

// main registers the rootfind commands and exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "rootfind",
		Short:         "bracketed root finding by bisection",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel, logFormat)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rootfind", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	solveCmd := &cobra.Command{
		Use:   "solve [func|expr]",
		Short: "find a root of f in [lower, upper]",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSolve,
	}
	addProblemFlags(solveCmd)
	solveCmd.Flags().BoolVar(&save, "save", false, "store the run in the data directory")
	solveCmd.Flags().BoolVar(&plot, "plot", false, "plot convergence")
	solveCmd.Flags().BoolVar(&table, "table", false, "print every iteration")

	stepCmd := &cobra.Command{
		Use:   "step [func|expr]",
		Short: "step through the bisection interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runStep,
	}
	addProblemFlags(stepCmd)

	batchCmd := &cobra.Command{
		Use:   "batch [problems.yaml]",
		Short: "solve a problem set concurrently",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().IntVar(&workers, "workers", 0, "concurrent solves (0 = problem file or GOMAXPROCS)")
	batchCmd.Flags().BoolVar(&save, "save", false, "store every run in the data directory")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tFUNC\tBRACKET\tTOL")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(w, "%s\t%s\t[%g, %g]\t%g\n", name, p.Func, p.Lower, p.Upper, p.Tolerance)
			}
			return w.Flush()
		},
	}

	funcsCmd := &cobra.Command{
		Use:   "funcs",
		Short: "list built-in functions",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := funcs.NewRegistry()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tBRACKET\tDESCRIPTION")
			for _, name := range reg.Names() {
				b, _ := reg.Get(name)
				fmt.Fprintf(w, "%s\t[%g, %g]\t%s\n", name, b.Lower, b.Upper, b.Description)
			}
			return w.Flush()
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().BoolVar(&plot, "plot", false, "plot convergence")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run with its iterations as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the iterations of a run as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	rootCmd.AddCommand(solveCmd, stepCmd, batchCmd, presetsCmd, funcsCmd, listCmd, showCmd, exportJSONCmd, exportCSVCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func addProblemFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&lower, "lower", config.DefaultLower, "bracket lower endpoint")
	cmd.Flags().Float64Var(&upper, "upper", config.DefaultUpper, "bracket upper endpoint")
	cmd.Flags().Float64Var(&tolerance, "tol", config.DefaultTolerance, "tolerance on |f(x)|")
	cmd.Flags().IntVar(&maxIter, "max-iter", 0, "iteration bound (0 = derived from bracket and tol)")
	cmd.Flags().StringVar(&configFile, "config", "", "problem file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use a preset problem")
}

func setupLogging(level, format string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	switch strings.ToLower(format) {
	case "text":
		handler = slog.NewTextHandler(os.Stderr, opts)
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		return fmt.Errorf("invalid log format %q", format)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}
