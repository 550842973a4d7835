package roots_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rootfind/internal/roots"
)

type problem struct {
	f    roots.FuncOf
	a, b float64
	root float64
}

var (
	cubic  = problem{func(x float64) float64 { return x*x*x - 2*x - 5 }, 2, 3, 2.0945514815423265}
	ln2    = problem{func(x float64) float64 { return math.Exp(x) - 2 }, 0, 1, math.Ln2}
	dottie = problem{func(x float64) float64 { return math.Cos(x) - x }, 0, 1, 0.7390851332151607}
	sqrt2  = problem{func(x float64) float64 { return x*x - 2 }, 2, 0, math.Sqrt2}
)

var _ = Describe("Bisection", func() {
	DescribeTable("keeps the sign change and halves the bracket on every step",
		func(p problem) {
			b, err := roots.NewBisection(p.f, p.a, p.b)
			Expect(err).NotTo(HaveOccurred())
			Expect(b.Lower()).To(BeNumerically("<=", b.Upper()))

			for i := 0; i < 30; i++ {
				width := b.Width()
				status, err := b.Iterate()
				Expect(err).NotTo(HaveOccurred())
				if status == roots.Converged {
					Expect(b.Collapsed()).To(BeTrue())
					return
				}

				Expect(b.FLower() * b.FUpper()).To(BeNumerically("<=", 0))
				Expect(b.Width()).To(BeNumerically("~", width/2, 1e-15))
				Expect(b.FLower()).To(Equal(p.f(b.Lower())))
				Expect(b.FUpper()).To(Equal(p.f(b.Upper())))
				Expect(p.root).To(BeNumerically(">=", b.Lower()))
				Expect(p.root).To(BeNumerically("<=", b.Upper()))
			}
		},
		Entry("cubic", cubic),
		Entry("exp(x) - 2", ln2),
		Entry("cos(x) - x", dottie),
		Entry("x^2 - 2, reversed bracket", sqrt2),
	)
})

var _ = Describe("Solver", func() {
	var solver *roots.Solver

	BeforeEach(func() {
		solver = roots.New(roots.Config{Tolerance: 1e-9})
	})

	DescribeTable("converges to within tolerance",
		func(p problem) {
			res, err := solver.Run(context.Background(), p.f, p.a, p.b)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Converged).To(BeTrue())
			Expect(math.Min(math.Abs(res.FLower), math.Abs(res.FUpper))).To(BeNumerically("<=", 1e-9))
			Expect(res.Root).To(BeNumerically(">=", res.Lower))
			Expect(res.Root).To(BeNumerically("<=", res.Upper))
			Expect(res.Root).To(BeNumerically("~", p.root, 1e-9))
			Expect(res.Iterations).To(BeNumerically("<=", roots.IterationLimit(math.Abs(p.b-p.a), 1e-9)))
		},
		Entry("cubic", cubic),
		Entry("exp(x) - 2", ln2),
		Entry("cos(x) - x", dottie),
		Entry("x^2 - 2, reversed bracket", sqrt2),
	)

	It("shrinks the bracket monotonically", func() {
		trace := &roots.Trace{}
		solver.AddObserver(trace)

		_, err := solver.Run(context.Background(), dottie.f, dottie.a, dottie.b)
		Expect(err).NotTo(HaveOccurred())
		Expect(trace.Iterations).NotTo(BeEmpty())

		prev := dottie.b - dottie.a
		for _, it := range trace.Iterations {
			Expect(it.Width).To(BeNumerically("<=", prev))
			prev = it.Width
		}
	})

	Context("when the bracket has no sign change", func() {
		It("returns the interval midpoint", func() {
			f := roots.FuncOf(func(x float64) float64 { return math.Exp(x) })
			res, err := solver.Run(context.Background(), f, -2, 5)
			Expect(err).To(MatchError(roots.ErrInvalidArgument))
			Expect(res.Root).To(Equal(1.5))
		})
	})

	Context("when an endpoint is an exact root", func() {
		It("returns that endpoint without evaluating further", func() {
			f := roots.FuncOf(func(x float64) float64 { return x*x - 4 })
			res, err := solver.Run(context.Background(), f, 2, 7)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Root).To(Equal(2.0))
			Expect(res.Evaluations).To(Equal(2))
			Expect(res.Iterations).To(Equal(1))
		})
	})
})
