package config

import (
	"math"
	"sort"
)

var Presets = map[string]*Problem{
	"pi":          {Name: "pi", Func: "sin", Lower: 3, Upper: 4, Tolerance: 1e-5},
	"neg-pi":      {Name: "neg-pi", Func: "sin", Lower: -4, Upper: -3, Tolerance: 1e-5},
	"zero":        {Name: "zero", Func: "sin", Lower: -1.0 / 3.0, Upper: 1, Tolerance: 1e-5},
	"half-pi":     {Name: "half-pi", Func: "cos", Lower: 0, Upper: 3, Tolerance: 1e-5},
	"neg-half-pi": {Name: "neg-half-pi", Func: "cos", Lower: -3, Upper: 0, Tolerance: 1e-5},
	"sqrt2":       {Name: "sqrt2", Func: "x^2 - 2", Lower: 0, Upper: 2, Tolerance: 1e-12},
	"wallis":      {Name: "wallis", Func: "x^3 - 2*x - 5", Lower: 2, Upper: 3, Tolerance: 1e-12},
	"kepler":      {Name: "kepler", Func: "kepler", Lower: 0, Upper: math.Pi, Tolerance: 1e-12},
	"dottie":      {Name: "dottie", Func: "cos(x) - x", Lower: 0, Upper: 1, Tolerance: 1e-12},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Problem {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *p
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
