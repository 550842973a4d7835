package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultProblem(t *testing.T) {
	p := DefaultProblem()

	if p.Tolerance <= 0 {
		t.Error("tolerance should be positive")
	}
	if p.Lower >= p.Upper {
		t.Error("default bracket should be ordered")
	}
	if err := p.Validate(); err == nil {
		t.Error("default problem has no func and should not validate")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		p     Problem
		valid bool
	}{
		{"ok", Problem{Func: "sin", Lower: 3, Upper: 4, Tolerance: 1e-5}, true},
		{"reversed bracket", Problem{Func: "sin", Lower: 4, Upper: 3, Tolerance: 1e-5}, true},
		{"missing func", Problem{Lower: 3, Upper: 4, Tolerance: 1e-5}, false},
		{"zero tolerance", Problem{Func: "sin", Lower: 3, Upper: 4}, false},
		{"negative tolerance", Problem{Func: "sin", Lower: 3, Upper: 4, Tolerance: -1}, false},
		{"infinite bracket", Problem{Func: "sin", Lower: 3, Upper: math.Inf(1), Tolerance: 1e-5}, false},
		{"negative max_iter", Problem{Func: "sin", Lower: 3, Upper: 4, Tolerance: 1e-5, MaxIter: -1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.valid && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidProblem) {
				t.Errorf("expected ErrInvalidProblem, got %v", err)
			}
		})
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "problem.yaml")

	in := &Problem{Name: "wallis", Func: "x^3 - 2*x - 5", Lower: 2, Upper: 3, Tolerance: 1e-9, MaxIter: 100}
	if err := Save(path, in); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	out, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *out != *in {
		t.Errorf("round trip mismatch: got %+v, want %+v", out, in)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "problem.yaml")
	if err := os.WriteFile(path, []byte("func: cos(x) - x\n"), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if p.Lower != DefaultLower || p.Upper != DefaultUpper || p.Tolerance != DefaultTolerance {
		t.Errorf("defaults not applied: %+v", p)
	}
}

func TestLoadSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "set.yaml")
	data := `tolerance: 1e-6
workers: 2
problems:
  - func: sin
    lower: 3
    upper: 4
  - name: tight
    func: cos
    lower: 0
    upper: 3
    tolerance: 1e-12
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	set, err := LoadSet(path)
	if err != nil {
		t.Fatalf("load set failed: %v", err)
	}
	if set.Workers != 2 || len(set.Problems) != 2 {
		t.Fatalf("unexpected set: %+v", set)
	}
	if set.Problems[0].Tolerance != 1e-6 || set.Problems[0].Name != "problem_1" {
		t.Errorf("first problem did not inherit defaults: %+v", set.Problems[0])
	}
	if set.Problems[1].Tolerance != 1e-12 {
		t.Errorf("explicit tolerance overwritten: %v", set.Problems[1].Tolerance)
	}
}

func TestLoadSet_Invalid(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.yaml")
	os.WriteFile(empty, []byte("problems: []\n"), 0644)
	if _, err := LoadSet(empty); !errors.Is(err, ErrInvalidProblem) {
		t.Errorf("expected ErrInvalidProblem for empty set, got %v", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("problems:\n  - lower: 1\n"), 0644)
	if _, err := LoadSet(bad); !errors.Is(err, ErrInvalidProblem) {
		t.Errorf("expected ErrInvalidProblem for missing func, got %v", err)
	}

	if _, err := LoadSet(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSolverConfig(t *testing.T) {
	p := Problem{Func: "sin", Lower: 3, Upper: 4, Tolerance: 1e-7, MaxIter: 12}
	cfg := p.SolverConfig()
	if cfg.Tolerance != 1e-7 || cfg.MaxIter != 12 {
		t.Errorf("unexpected solver config: %+v", cfg)
	}
}

func TestGetPreset(t *testing.T) {
	p := GetPreset("pi")
	if p == nil {
		t.Fatal("expected preset, got nil")
	}
	if p.Func != "sin" || p.Lower != 3 || p.Upper != 4 {
		t.Errorf("unexpected pi preset: %+v", p)
	}

	p.Lower = 100
	if Presets["pi"].Lower != 3 {
		t.Error("GetPreset returned shared state")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("presets not sorted: %v", names)
		}
	}
	for _, name := range names {
		if err := Presets[name].Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
