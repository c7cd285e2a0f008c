package benchmarks

import (
	"math"
	"math/rand/v2"

	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
)

// DTLZ1 is a scalable many-objective problem whose true front is the linear
// simplex sum(f_i) = 0.5. The recommended variable count is numObjs+4.
type DTLZ1 struct {
	numVars int
	numObjs int
}

func NewDTLZ1(numVars, numObjs int) *DTLZ1 {
	return &DTLZ1{numVars, numObjs}
}

func (p *DTLZ1) Name() string {
	return "DTLZ1"
}

func (p *DTLZ1) Objectives() []framework.Objective {
	return framework.MinimizeAll(p.numObjs)
}

func (p *DTLZ1) g(xx []float64) float64 {
	k := p.numVars - p.numObjs + 1
	g := float64(k)
	for i := p.numVars - k; i < p.numVars; i++ {
		d := xx[i] - 0.5
		g += d*d - math.Cos(20.0*math.Pi*d)
	}
	return 100.0 * g
}

func (p *DTLZ1) ObjectiveFuncs() []framework.ObjectiveFunc {
	funcs := make([]framework.ObjectiveFunc, p.numObjs)
	for m := 0; m < p.numObjs; m++ {
		m := m
		funcs[m] = func(x framework.Solution) float64 {
			xx := x.(*framework.RealSolution).Variables
			f := 0.5 * (1.0 + p.g(xx))
			for i := 0; i < p.numObjs-m-1; i++ {
				f *= xx[i]
			}
			if m > 0 {
				f *= 1.0 - xx[p.numObjs-m-1]
			}
			return f
		}
	}
	return funcs
}

func (p *DTLZ1) Constraints() []framework.Constraint {
	return nil
}

func (p *DTLZ1) Bounds() []framework.Bounds {
	return unitBounds(p.numVars)
}

func (p *DTLZ1) Initialize(popSize int, rng *rand.Rand) []framework.Solution {
	return randomRealPopulation(popSize, p.Bounds(), rng)
}

// TrueParetoFront is only sampled for the 2-objective posing, where it is
// the segment f1 + f2 = 0.5.
func (p *DTLZ1) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	if p.numObjs != 2 {
		return nil
	}
	points := make([]framework.ObjectiveSpacePoint, numPoints)
	for i := 0; i < numPoints; i++ {
		x := 0.5 * float64(i) / float64(numPoints-1)
		points[i] = framework.ObjectiveSpacePoint{x, 0.5 - x}
	}
	return points
}
