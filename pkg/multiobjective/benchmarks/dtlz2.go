package benchmarks

import (
	"math"
	"math/rand/v2"

	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
)

// DTLZ2 is a scalable many-objective problem whose true front is the unit
// sphere octant sum(f_i^2) = 1. The recommended variable count is numObjs+9.
type DTLZ2 struct {
	numVars int
	numObjs int
}

func NewDTLZ2(numVars, numObjs int) *DTLZ2 {
	return &DTLZ2{numVars, numObjs}
}

func (p *DTLZ2) Name() string {
	return "DTLZ2"
}

func (p *DTLZ2) Objectives() []framework.Objective {
	return framework.MinimizeAll(p.numObjs)
}

func (p *DTLZ2) g(xx []float64) float64 {
	g := 0.0
	for i := p.numObjs - 1; i < p.numVars; i++ {
		d := xx[i] - 0.5
		g += d * d
	}
	return g
}

func (p *DTLZ2) ObjectiveFuncs() []framework.ObjectiveFunc {
	funcs := make([]framework.ObjectiveFunc, p.numObjs)
	for m := 0; m < p.numObjs; m++ {
		m := m
		funcs[m] = func(x framework.Solution) float64 {
			xx := x.(*framework.RealSolution).Variables
			f := 1.0 + p.g(xx)
			for i := 0; i < p.numObjs-m-1; i++ {
				f *= math.Cos(xx[i] * math.Pi / 2.0)
			}
			if m > 0 {
				f *= math.Sin(xx[p.numObjs-m-1] * math.Pi / 2.0)
			}
			return f
		}
	}
	return funcs
}

func (p *DTLZ2) Constraints() []framework.Constraint {
	return nil
}

func (p *DTLZ2) Bounds() []framework.Bounds {
	return unitBounds(p.numVars)
}

func (p *DTLZ2) Initialize(popSize int, rng *rand.Rand) []framework.Solution {
	return randomRealPopulation(popSize, p.Bounds(), rng)
}

// TrueParetoFront is only sampled for the 2-objective posing, the quarter
// circle f1^2 + f2^2 = 1.
func (p *DTLZ2) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	if p.numObjs != 2 {
		return nil
	}
	points := make([]framework.ObjectiveSpacePoint, numPoints)
	for i := 0; i < numPoints; i++ {
		theta := math.Pi / 2.0 * float64(i) / float64(numPoints-1)
		points[i] = framework.ObjectiveSpacePoint{math.Cos(theta), math.Sin(theta)}
	}
	return points
}
