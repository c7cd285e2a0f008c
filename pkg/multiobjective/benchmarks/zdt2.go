package benchmarks

import (
	"math/rand/v2"

	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
)

// ZDT2 is the non-convex sibling of ZDT1: the true front is the curve
// f2 = 1 - f1^2.
type ZDT2 struct {
	numVars int
}

func NewZDT2(numVars int) *ZDT2 {
	return &ZDT2{
		numVars,
	}
}

func (p *ZDT2) Name() string {
	return "ZDT2"
}

func (p *ZDT2) Objectives() []framework.Objective {
	return framework.MinimizeAll(2)
}

func (p *ZDT2) ObjectiveFuncs() []framework.ObjectiveFunc {
	return []framework.ObjectiveFunc{
		p.f1, p.f2,
	}
}

func (p *ZDT2) f1(x framework.Solution) float64 {
	xx := x.(*framework.RealSolution)
	return xx.Variables[0]
}

func (p *ZDT2) f2(x framework.Solution) float64 {
	xx := x.(*framework.RealSolution).Variables
	g := 1.0
	for i := 1; i < len(xx); i++ {
		g += 9.0 * xx[i] / float64(len(xx)-1)
	}
	r := xx[0] / g
	return g * (1.0 - r*r)
}

func (p *ZDT2) Constraints() []framework.Constraint {
	return nil
}

func (p *ZDT2) Bounds() []framework.Bounds {
	return unitBounds(p.numVars)
}

func (p *ZDT2) Initialize(popSize int, rng *rand.Rand) []framework.Solution {
	return randomRealPopulation(popSize, p.Bounds(), rng)
}

func (p *ZDT2) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	points := make([]framework.ObjectiveSpacePoint, numPoints)
	for i := 0; i < numPoints; i++ {
		x := float64(i) / float64(numPoints-1)
		points[i] = framework.ObjectiveSpacePoint{
			x, 1.0 - x*x,
		}
	}
	return points
}
