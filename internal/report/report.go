package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/rootfind/internal/config"
	"github.com/san-kum/rootfind/internal/roots"
)

// Summary renders the outcome of one solve.
func Summary(p *config.Problem, res *roots.Result, err error) string {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return RunSummary(p, res, roots.Classify(res.Converged, err), detail)
}

// RunSummary renders a solve from its recorded outcome, as for a stored run.
func RunSummary(p *config.Problem, res *roots.Result, outcome roots.Outcome, detail string) string {
	rows := []string{
		Title.Render(p.Name),
		Subtle.Render(fmt.Sprintf("f(x) = %s on [%g, %g], tol %g", p.Func, p.Lower, p.Upper, p.Tolerance)),
		"",
		Row("root", fmt.Sprintf("%.15g", res.Root)),
		Row("bracket", fmt.Sprintf("[%.15g, %.15g]", res.Lower, res.Upper)),
		Row("f bracket", fmt.Sprintf("[%.3e, %.3e]", res.FLower, res.FUpper)),
		Row("iterations", fmt.Sprintf("%d", res.Iterations)),
		Row("evals", fmt.Sprintf("%d", res.Evaluations)),
		Row("status", Outcome(outcome)),
	}
	if detail != "" {
		rows = append(rows, Subtle.Render(detail))
	}
	return Panel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// Status renders a one-word outcome.
func Status(converged bool, err error) string {
	return Outcome(roots.Classify(converged, err))
}

// Outcome styles an outcome label. An empty label, as in runs stored
// before outcomes were recorded, renders as unknown.
func Outcome(o roots.Outcome) string {
	switch o {
	case roots.OutcomeConverged:
		return StatusOK.Render(string(o))
	case roots.OutcomeEstimate:
		return StatusWarn.Render(string(o))
	case roots.OutcomeFallback, roots.OutcomeBadFunction, roots.OutcomeInterrupted:
		return StatusFail.Render(string(o))
	default:
		return StatusWarn.Render(string(roots.OutcomeUnknown))
	}
}

// Table renders the iterations as aligned text.
func Table(trace []roots.Iteration) string {
	var b strings.Builder
	b.WriteString(Header.Render(fmt.Sprintf("%4s  %-22s  %-22s  %-11s  %-11s  %-10s",
		"k", "lower", "upper", "f(lower)", "f(upper)", "width")))
	b.WriteString("\n")
	for _, it := range trace {
		fmt.Fprintf(&b, "%4d  %-22.15g  %-22.15g  %-11.3e  %-11.3e  %-10.3e\n",
			it.K, it.Lower, it.Upper, it.FLower, it.FUpper, it.Width)
	}
	return b.String()
}

// Convergence plots log10 of the smaller endpoint residual and of the
// bracket width per iteration. Exact zeros are drawn at the floor of the
// plotted range.
func Convergence(trace []roots.Iteration) string {
	if len(trace) == 0 {
		return Subtle.Render("no iterations")
	}

	residual := make([]float64, len(trace))
	width := make([]float64, len(trace))
	for i, it := range trace {
		residual[i] = math.Min(math.Abs(it.FLower), math.Abs(it.FUpper))
		width[i] = it.Width
	}
	log10(residual)
	log10(width)

	return strings.Join([]string{
		asciigraph.Plot(residual,
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption("log10 min |f| at bracket endpoints")),
		"",
		asciigraph.Plot(width,
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption("log10 bracket width")),
	}, "\n")
}

// log10 replaces data with its base-10 logarithm in place; zero and
// non-finite values are clamped to the finite minimum.
func log10(data []float64) {
	floor := math.Inf(1)
	for i, v := range data {
		data[i] = math.Log10(v)
		if !math.IsInf(data[i], 0) && !math.IsNaN(data[i]) && data[i] < floor {
			floor = data[i]
		}
	}
	if math.IsInf(floor, 1) {
		floor = 0
	}
	for i, v := range data {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			data[i] = floor
		}
	}
}
