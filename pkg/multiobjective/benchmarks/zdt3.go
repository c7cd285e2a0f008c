package benchmarks

import (
	"math"
	"math/rand/v2"

	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
)

// ZDT3 has a disconnected true front of five convex segments, which makes it
// a good diversity stress test.
type ZDT3 struct {
	numVars int
}

func NewZDT3(numVars int) *ZDT3 {
	return &ZDT3{
		numVars,
	}
}

func (p *ZDT3) Name() string {
	return "ZDT3"
}

func (p *ZDT3) Objectives() []framework.Objective {
	return framework.MinimizeAll(2)
}

func (p *ZDT3) ObjectiveFuncs() []framework.ObjectiveFunc {
	return []framework.ObjectiveFunc{
		p.f1, p.f2,
	}
}

func (p *ZDT3) f1(x framework.Solution) float64 {
	xx := x.(*framework.RealSolution)
	return xx.Variables[0]
}

func (p *ZDT3) f2(x framework.Solution) float64 {
	xx := x.(*framework.RealSolution).Variables
	g := 1.0
	for i := 1; i < len(xx); i++ {
		g += 9.0 * xx[i] / float64(len(xx)-1)
	}
	r := xx[0] / g
	return g * (1.0 - math.Sqrt(r) - r*math.Sin(10.0*math.Pi*xx[0]))
}

func (p *ZDT3) Constraints() []framework.Constraint {
	return nil
}

func (p *ZDT3) Bounds() []framework.Bounds {
	return unitBounds(p.numVars)
}

func (p *ZDT3) Initialize(popSize int, rng *rand.Rand) []framework.Solution {
	return randomRealPopulation(popSize, p.Bounds(), rng)
}

// TrueParetoFront samples the non-dominated parts of the curve
// f2 = 1 - sqrt(f1) - f1*sin(10*pi*f1) over the known segment ranges.
func (p *ZDT3) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	segments := [][2]float64{
		{0.0, 0.0830015349},
		{0.1822287280, 0.2577623634},
		{0.4093136748, 0.4538821041},
		{0.6183967944, 0.6525117038},
		{0.8233317983, 0.8518328654},
	}
	perSegment := numPoints / len(segments)
	if perSegment < 2 {
		perSegment = 2
	}
	var points []framework.ObjectiveSpacePoint
	for si, seg := range segments {
		// The left boundary of every segment after the first shares its f2
		// value with the previous segment's right endpoint and is dominated
		// by it, so those segments are sampled half-open.
		start := 0
		if si > 0 {
			start = 1
		}
		for i := start; i < perSegment; i++ {
			x := seg[0] + (seg[1]-seg[0])*float64(i)/float64(perSegment-1)
			points = append(points, framework.ObjectiveSpacePoint{
				x, 1.0 - math.Sqrt(x) - x*math.Sin(10.0*math.Pi*x),
			})
		}
	}
	return points
}
