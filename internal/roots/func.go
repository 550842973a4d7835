package roots

// Func is a scalar function of one real variable. Eval must be total:
// it returns a real number or NaN and has no visible side effects.
type Func interface {
	Eval(x float64) float64
}

// FuncOf adapts an ordinary function to Func.
type FuncOf func(float64) float64

func (f FuncOf) Eval(x float64) float64 { return f(x) }
