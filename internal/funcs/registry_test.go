package funcs

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/rootfind/internal/roots"
)

func TestRegistry_BracketsHoldSignChange(t *testing.T) {
	r := NewRegistry()

	for _, name := range r.Names() {
		b, err := r.Get(name)
		require.NoError(t, err)
		assert.LessOrEqual(t, b.Func.Eval(b.Lower)*b.Func.Eval(b.Upper), 0.0, name)
	}
}

func TestRegistry_Solve(t *testing.T) {
	r := NewRegistry()

	want := map[string]float64{
		"sin":     math.Pi,
		"cos":     math.Pi / 2,
		"sqrt2":   math.Sqrt2,
		"cubic":   2.0945514815423265,
		"dottie":  0.7390851332151607,
		"kepler":  1.4987011335178482,
		"lambert": 0.5671432904097838,
	}

	for name, root := range want {
		b, err := r.Get(name)
		require.NoError(t, err)
		got := roots.Solve(b.Func, b.Lower, b.Upper, 1e-10)
		assert.InDelta(t, root, got, 1e-9, name)
	}
}

func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry()

	_, err := r.Get("nope")
	assert.EqualError(t, err, "unknown function: nope")

	names := r.Names()
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "dottie")

	f, err := r.Resolve("sin")
	require.NoError(t, err)
	assert.Equal(t, math.Sin(1), f.Eval(1))

	f, err = r.Resolve("x^2 - 4")
	require.NoError(t, err)
	assert.Equal(t, 0.0, f.Eval(2))

	_, err = r.Resolve("not an expression (")
	assert.Error(t, err)
}
