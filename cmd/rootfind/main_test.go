package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/rootfind/internal/config"
	"github.com/san-kum/rootfind/internal/funcs"
)

func newProblemCmd(t *testing.T, flags ...string) *cobra.Command {
	t.Helper()
	configFile, preset = "", ""
	cmd := &cobra.Command{Use: "test"}
	addProblemFlags(cmd)
	if err := cmd.ParseFlags(flags); err != nil {
		t.Fatal(err)
	}
	return cmd
}

func TestLoadProblem_Builtin(t *testing.T) {
	cmd := newProblemCmd(t)
	p, err := loadProblem(cmd, []string{"cubic"}, funcs.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "cubic" || p.Lower != 2 || p.Upper != 3 {
		t.Errorf("builtin bracket not applied: %+v", p)
	}
}

func TestLoadProblem_ExprWithFlags(t *testing.T) {
	cmd := newProblemCmd(t, "--lower", "-2", "--upper", "0", "--tol", "1e-6", "--max-iter", "40")
	p, err := loadProblem(cmd, []string{"x^2 - 2"}, funcs.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "expr" || p.Func != "x^2 - 2" || p.Lower != -2 || p.Upper != 0 || p.Tolerance != 1e-6 || p.MaxIter != 40 {
		t.Errorf("unexpected problem: %+v", p)
	}
}

func TestLoadProblem_Preset(t *testing.T) {
	cmd := newProblemCmd(t, "--tol", "1e-9")
	preset = "half-pi"
	p, err := loadProblem(cmd, nil, funcs.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "half-pi" || p.Func != "cos" || p.Tolerance != 1e-9 {
		t.Errorf("unexpected problem: %+v", p)
	}

	preset = "missing"
	if _, err := loadProblem(cmd, nil, funcs.NewRegistry()); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestLoadProblem_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.yaml")
	in := &config.Problem{Name: "kep", Func: "kepler", Lower: 0, Upper: 3, Tolerance: 1e-7}
	if err := config.Save(path, in); err != nil {
		t.Fatal(err)
	}

	cmd := newProblemCmd(t)
	configFile = path
	p, err := loadProblem(cmd, nil, funcs.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	if *p != *in {
		t.Errorf("got %+v, want %+v", p, in)
	}

	preset = "pi"
	if _, err := loadProblem(cmd, nil, funcs.NewRegistry()); err == nil {
		t.Error("expected error for --config with --preset")
	}
}

func TestLoadProblem_MissingFunc(t *testing.T) {
	if _, err := loadProblem(newProblemCmd(t), nil, funcs.NewRegistry()); err == nil {
		t.Error("expected error without a function")
	}
}

func TestSetupLogging(t *testing.T) {
	defer slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := setupLogging("debug", "json"); err != nil {
		t.Fatal(err)
	}
	if err := setupLogging("warn", "text"); err != nil {
		t.Fatal(err)
	}
	if err := setupLogging("loud", "text"); err == nil {
		t.Error("expected error for invalid level")
	}
	if err := setupLogging("info", "xml"); err == nil {
		t.Error("expected error for invalid format")
	}
}
