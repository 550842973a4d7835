package funcs

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/rootfind/internal/roots"
)

// Builtin is a named function with a bracket known to hold a root.
type Builtin struct {
	Name        string
	Description string
	Func        roots.Func
	Lower       float64
	Upper       float64
}

type Registry struct {
	funcs map[string]Builtin
}

func NewRegistry() *Registry {
	r := &Registry{funcs: make(map[string]Builtin)}

	r.Register(Builtin{"sin", "sin(x)", roots.FuncOf(math.Sin), 3, 4})
	r.Register(Builtin{"cos", "cos(x)", roots.FuncOf(math.Cos), 0, 3})
	r.Register(Builtin{"sqrt2", "x^2 - 2", roots.FuncOf(func(x float64) float64 {
		return x*x - 2
	}), 0, 2})
	r.Register(Builtin{"cubic", "x^3 - 2x - 5 (Wallis)", roots.FuncOf(func(x float64) float64 {
		return x*x*x - 2*x - 5
	}), 2, 3})
	r.Register(Builtin{"dottie", "cos(x) - x", roots.FuncOf(func(x float64) float64 {
		return math.Cos(x) - x
	}), 0, 1})
	r.Register(Builtin{"kepler", "E - 0.5 sin(E) - 1 (Kepler, e=0.5, M=1)", roots.FuncOf(func(x float64) float64 {
		return x - 0.5*math.Sin(x) - 1
	}), 0, math.Pi})
	r.Register(Builtin{"lambert", "x e^x - 1 (omega constant)", roots.FuncOf(func(x float64) float64 {
		return x*math.Exp(x) - 1
	}), 0, 1})
	r.Register(Builtin{"step", "sign(x - 1/3), no root", roots.FuncOf(func(x float64) float64 {
		if x < 1.0/3.0 {
			return -1
		}
		return 1
	}), 0, 1})

	return r
}

func (r *Registry) Register(b Builtin) { r.funcs[b.Name] = b }

func (r *Registry) Get(name string) (Builtin, error) {
	b, ok := r.funcs[name]
	if !ok {
		return Builtin{}, fmt.Errorf("unknown function: %s", name)
	}
	return b, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns a registered function by name, or parses nameOrExpr as
// an expression in x.
func (r *Registry) Resolve(nameOrExpr string) (roots.Func, error) {
	if b, ok := r.funcs[nameOrExpr]; ok {
		return b.Func, nil
	}
	return Parse(nameOrExpr)
}
