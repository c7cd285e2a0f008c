package benchmarks_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/kdis-lab/moea-go/pkg/multiobjective/benchmarks"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
)

func realSolution(vars []float64) framework.Solution {
	bounds := make([]framework.Bounds, len(vars))
	for i := range bounds {
		bounds[i] = framework.Bounds{L: 0, H: 1}
	}
	return framework.NewRealSolution(vars, bounds)
}

func evaluate(p framework.Problem, vars []float64) []float64 {
	sol := realSolution(vars)
	funcs := p.ObjectiveFuncs()
	out := make([]float64, len(funcs))
	for i, f := range funcs {
		out[i] = f(sol)
	}
	return out
}

func near(t *testing.T, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestZDTKnownValues(t *testing.T) {
	// With every tail variable at zero, g collapses to 1 and the objective
	// values land on the true front.
	vars := []float64{0.5, 0, 0, 0, 0, 0, 0, 0, 0, 0}

	f := evaluate(benchmarks.NewZDT1(10), vars)
	near(t, f[0], 0.5)
	near(t, f[1], 1-math.Sqrt(0.5))

	f = evaluate(benchmarks.NewZDT2(10), vars)
	near(t, f[0], 0.5)
	near(t, f[1], 0.75)

	f = evaluate(benchmarks.NewZDT3(10), vars)
	near(t, f[0], 0.5)
	near(t, f[1], 1-math.Sqrt(0.5)-0.5*math.Sin(5*math.Pi))
}

func TestDTLZ1FrontIsLinear(t *testing.T) {
	p := benchmarks.NewDTLZ1(6, 2)

	// Tail variables at 0.5 zero out g, so f1 + f2 = 0.5 for any x0.
	for _, x0 := range []float64{0, 0.25, 0.5, 1} {
		f := evaluate(p, []float64{x0, 0.5, 0.5, 0.5, 0.5, 0.5})
		near(t, f[0]+f[1], 0.5)
	}
}

func TestDTLZ2FrontIsSpherical(t *testing.T) {
	p := benchmarks.NewDTLZ2(11, 2)

	vars := make([]float64, 11)
	for i := range vars {
		vars[i] = 0.5
	}
	for _, x0 := range []float64{0, 0.3, 0.5, 1} {
		vars[0] = x0
		f := evaluate(p, vars)
		near(t, f[0]*f[0]+f[1]*f[1], 1)
	}
}

func TestInitializeRespectsBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	problems := []framework.Problem{
		benchmarks.NewZDT1(10),
		benchmarks.NewZDT2(10),
		benchmarks.NewZDT3(10),
		benchmarks.NewDTLZ1(6, 2),
		benchmarks.NewDTLZ2(11, 2),
	}
	for _, p := range problems {
		sols := p.Initialize(20, rng)
		if len(sols) != 20 {
			t.Errorf("%s: got %d solutions, want 20", p.Name(), len(sols))
		}
		for _, s := range sols {
			for j, v := range s.(*framework.RealSolution).Variables {
				if v < 0 || v > 1 {
					t.Fatalf("%s: variable %d out of [0,1]: %v", p.Name(), j, v)
				}
			}
		}
	}
}

func TestTrueParetoFronts(t *testing.T) {
	front := benchmarks.NewZDT1(10).TrueParetoFront(50)
	if len(front) != 50 {
		t.Fatalf("ZDT1 front has %d points", len(front))
	}
	// Convex front: f2 strictly decreasing in f1.
	for i := 1; i < len(front); i++ {
		if front[i][1] >= front[i-1][1] {
			t.Fatalf("ZDT1 front is not monotone at %d", i)
		}
	}

	// ZDT3's sampled segments must be mutually non-dominated.
	zdt3 := benchmarks.NewZDT3(10).TrueParetoFront(50)
	for i := range zdt3 {
		for j := range zdt3 {
			if i == j {
				continue
			}
			if zdt3[i][0] < zdt3[j][0] && zdt3[i][1] < zdt3[j][1] {
				t.Fatalf("ZDT3 front point %v dominates %v", zdt3[i], zdt3[j])
			}
		}
	}

	if benchmarks.NewDTLZ2(12, 3).TrueParetoFront(10) != nil {
		t.Error("DTLZ2 with 3 objectives should not sample a 2-D front")
	}
}
