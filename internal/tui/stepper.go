package tui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/rootfind/internal/config"
	"github.com/san-kum/rootfind/internal/report"
	"github.com/san-kum/rootfind/internal/roots"
)

const (
	barWidth   = 60
	tailLength = 8
)

// Stepper is a bubbletea model that narrows one bracket a step per key press.
type Stepper struct {
	problem config.Problem
	drv     *roots.Driver
	lower   float64
	upper   float64
	trace   []roots.Iteration
}

func NewStepper(p config.Problem, f roots.Func) (*Stepper, error) {
	bis, err := roots.NewBisection(f, p.Lower, p.Upper)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name, err)
	}

	drv, err := roots.NewDriver(bis, p.SolverConfig())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name, err)
	}
	return &Stepper{
		problem: p,
		drv:     drv,
		lower:   bis.Lower(),
		upper:   bis.Upper(),
	}, nil
}

func (m *Stepper) Init() tea.Cmd { return nil }

func (m *Stepper) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case " ", "n", "right":
		m.Step()
	case "r", "enter":
		for !m.Done() {
			m.Step()
		}
	}
	return m, nil
}

// Step narrows the bracket once. It is a no-op after the run has finished.
func (m *Stepper) Step() {
	if it, ok := m.drv.Step(); ok {
		m.trace = append(m.trace, it)
	}
}

func (m *Stepper) Done() bool               { return m.drv.Done() }
func (m *Stepper) Root() float64            { return m.drv.Root() }
func (m *Stepper) Err() error               { return m.drv.Err() }
func (m *Stepper) Trace() []roots.Iteration { return m.trace }

func (m *Stepper) Bracket() (float64, float64) {
	b := m.drv.Bisection()
	return b.Lower(), b.Upper()
}

func (m *Stepper) View() string {
	var b strings.Builder

	b.WriteString(report.Title.Render(m.problem.Name))
	b.WriteString(report.Subtle.Render(fmt.Sprintf("  f(x) = %s, tol %g", m.problem.Func, m.problem.Tolerance)))
	b.WriteString("\n\n")
	b.WriteString(m.bar())
	b.WriteString("\n\n")

	bis := m.drv.Bisection()
	b.WriteString(report.Row("iteration", fmt.Sprintf("%d / %d", m.drv.Iterations(), m.drv.Limit())) + "\n")
	b.WriteString(report.Row("bracket", fmt.Sprintf("[%.15g, %.15g]", bis.Lower(), bis.Upper())) + "\n")
	b.WriteString(report.Row("f bracket", fmt.Sprintf("[%.3e, %.3e]", bis.FLower(), bis.FUpper())) + "\n")
	b.WriteString(report.Row("width", fmt.Sprintf("%.3e", bis.Width())) + "\n")
	b.WriteString(report.Row("estimate", fmt.Sprintf("%.15g", m.drv.Root())) + "\n")
	b.WriteString(report.Row("status", m.status()) + "\n\n")

	start := len(m.trace) - tailLength
	if start < 0 {
		start = 0
	}
	b.WriteString(report.Table(m.trace[start:]))
	b.WriteString("\n")
	b.WriteString(report.KeyHint.Render("space/n: step  r: run to tolerance  q: quit"))
	b.WriteString("\n")

	return report.Panel.Render(b.String())
}

func (m *Stepper) status() string {
	if !m.drv.Done() {
		return report.StatusWarn.Render("narrowing")
	}
	return report.Status(m.drv.Converged(), m.drv.Err())
}

// bar draws the current bracket inside the initial one.
func (m *Stepper) bar() string {
	bis := m.drv.Bisection()
	span := m.upper - m.lower
	from, to := 0, barWidth-1
	if span > 0 && !math.IsInf(span, 0) {
		from = int(math.Floor((bis.Lower() - m.lower) / span * float64(barWidth-1)))
		to = int(math.Ceil((bis.Upper() - m.lower) / span * float64(barWidth-1)))
	}

	cells := make([]string, barWidth)
	for i := range cells {
		if i >= from && i <= to {
			cells[i] = "█"
		} else {
			cells[i] = "·"
		}
	}

	axis := lipgloss.JoinHorizontal(lipgloss.Top,
		report.Subtle.Render(fmt.Sprintf("%-12.6g", m.lower)),
		strings.Repeat(" ", barWidth-24),
		report.Subtle.Render(fmt.Sprintf("%12.6g", m.upper)),
	)
	return report.Value.Render(strings.Join(cells, "")) + "\n" + axis
}

// Run starts the interactive stepper and returns the final model.
func Run(p config.Problem, f roots.Func) (*Stepper, error) {
	m, err := NewStepper(p, f)
	if err != nil {
		return nil, err
	}
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return nil, err
	}
	return final.(*Stepper), nil
}
