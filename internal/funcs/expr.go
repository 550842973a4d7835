package funcs

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/Knetic/govaluate"
)

// ErrNoVariable indicates an expression that does not reference x.
var ErrNoVariable = errors.New("funcs: expression does not use x")

var builtins = map[string]govaluate.ExpressionFunction{
	"sin":  unary(math.Sin),
	"cos":  unary(math.Cos),
	"tan":  unary(math.Tan),
	"exp":  unary(math.Exp),
	"log":  unary(math.Log),
	"sqrt": unary(math.Sqrt),
	"abs":  unary(math.Abs),
	"pow": func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("pow: want 2 arguments, got %d", len(args))
		}
		return math.Pow(toFloat(args[0]), toFloat(args[1])), nil
	},
}

func unary(fn func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("want 1 argument, got %d", len(args))
		}
		return fn(toFloat(args[0])), nil
	}
}

// Expr is a function of x parsed from a govaluate expression. Evaluation
// failures and non-numeric results evaluate to NaN.
type Expr struct {
	source string
	expr   *govaluate.EvaluableExpression
	params sync.Pool
}

// Parse compiles an expression in x, e.g. "x^3 - 2*x - 5" or "cos(x) - x".
// The constants pi and e are available. Commas separate function
// arguments, as in pow(x, 3).
func Parse(source string) (*Expr, error) {
	normalized := strings.TrimSpace(source)
	if normalized == "" {
		return nil, fmt.Errorf("funcs: empty expression")
	}
	// govaluate reads ^ as xor
	normalized = strings.ReplaceAll(normalized, "^", "**")

	parsed, err := govaluate.NewEvaluableExpressionWithFunctions(normalized, builtins)
	if err != nil {
		return nil, fmt.Errorf("funcs: parse %q: %w", source, err)
	}

	hasX := false
	for _, v := range parsed.Vars() {
		switch v {
		case "x":
			hasX = true
		case "pi", "e":
		default:
			return nil, fmt.Errorf("funcs: parse %q: unknown variable %q", source, v)
		}
	}
	if !hasX {
		return nil, fmt.Errorf("funcs: parse %q: %w", source, ErrNoVariable)
	}

	e := &Expr{source: source, expr: parsed}
	e.params.New = func() interface{} {
		return map[string]interface{}{"x": 0.0, "pi": math.Pi, "e": math.E}
	}
	return e, nil
}

func (e *Expr) String() string { return e.source }

// Eval is safe for concurrent use.
func (e *Expr) Eval(x float64) float64 {
	params := e.params.Get().(map[string]interface{})
	defer e.params.Put(params)

	params["x"] = x
	v, err := e.expr.Evaluate(params)
	if err != nil {
		return math.NaN()
	}

	return toFloat(v)
}

func toFloat(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case bool:
		// comparisons such as x > 1 yield booleans
		if t {
			return 1
		}
		return 0
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}
