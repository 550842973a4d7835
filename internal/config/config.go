package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/rootfind/internal/roots"
)

const (
	DefaultTolerance = 1e-8
	DefaultLower     = 0.0
	DefaultUpper     = 1.0
)

var ErrInvalidProblem = errors.New("config: invalid problem")

// Problem describes one root-finding run. Func is a registered function
// name or an expression in x.
type Problem struct {
	Name      string  `yaml:"name"`
	Func      string  `yaml:"func"`
	Lower     float64 `yaml:"lower"`
	Upper     float64 `yaml:"upper"`
	Tolerance float64 `yaml:"tolerance"`
	MaxIter   int     `yaml:"max_iter,omitempty"`
}

// ProblemSet is a batch of problems sharing defaults.
type ProblemSet struct {
	Tolerance float64   `yaml:"tolerance"`
	Workers   int       `yaml:"workers,omitempty"`
	Problems  []Problem `yaml:"problems"`
}

func DefaultProblem() *Problem {
	return &Problem{
		Name:      "problem",
		Lower:     DefaultLower,
		Upper:     DefaultUpper,
		Tolerance: DefaultTolerance,
	}
}

func Load(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p := DefaultProblem()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return p, p.Validate()
}

func Save(path string, p *Problem) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadSet reads a problem set. Problems without a tolerance inherit the
// set's, which in turn defaults to DefaultTolerance.
func LoadSet(path string) (*ProblemSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	set := &ProblemSet{Tolerance: DefaultTolerance}
	if err := yaml.Unmarshal(data, set); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if len(set.Problems) == 0 {
		return nil, fmt.Errorf("%w: %s has no problems", ErrInvalidProblem, path)
	}

	for i := range set.Problems {
		p := &set.Problems[i]
		if p.Tolerance == 0 {
			p.Tolerance = set.Tolerance
		}
		if p.Name == "" {
			p.Name = fmt.Sprintf("problem_%d", i+1)
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("problem %d: %w", i+1, err)
		}
	}
	return set, nil
}

func (p *Problem) Validate() error {
	if p.Func == "" {
		return fmt.Errorf("%w: func is required", ErrInvalidProblem)
	}
	if !finite(p.Lower) || !finite(p.Upper) {
		return fmt.Errorf("%w: bracket [%v, %v] must be finite", ErrInvalidProblem, p.Lower, p.Upper)
	}
	if !(p.Tolerance > 0) || math.IsInf(p.Tolerance, 0) {
		return fmt.Errorf("%w: tolerance must be positive, got %v", ErrInvalidProblem, p.Tolerance)
	}
	if p.MaxIter < 0 {
		return fmt.Errorf("%w: max_iter must not be negative", ErrInvalidProblem)
	}
	return nil
}

// SolverConfig returns the solver settings for this problem.
func (p *Problem) SolverConfig() roots.Config {
	cfg := roots.DefaultConfig()
	cfg.Tolerance = p.Tolerance
	cfg.MaxIter = p.MaxIter
	return cfg
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
