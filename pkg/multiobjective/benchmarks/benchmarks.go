// Package benchmarks holds standard synthetic test problems (ZDT, DTLZ)
// used to exercise the selection strategies in tests and the bench CLI.
package benchmarks

import (
	"math/rand/v2"

	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
)

// unitBounds returns n decision variables bounded to [0,1].
func unitBounds(n int) []framework.Bounds {
	b := make([]framework.Bounds, n)
	for i := range b {
		b[i] = framework.Bounds{L: 0.0, H: 1.0}
	}
	return b
}

// randomRealPopulation samples a uniform random population within bounds.
func randomRealPopulation(popSize int, bounds []framework.Bounds, rng *rand.Rand) []framework.Solution {
	population := make([]framework.Solution, popSize)
	for i := 0; i < popSize; i++ {
		vars := make([]float64, len(bounds))
		for j := range bounds {
			vars[j] = bounds[j].L + rng.Float64()*(bounds[j].H-bounds[j].L)
		}
		population[i] = framework.NewRealSolution(vars, bounds)
	}
	return population
}
