// Package strategies holds the concrete multi-objective selection
// strategies. Every type implements framework.Strategy; the dominance,
// diversity, hypervolume, reference and scalarize primitives are injected as
// collaborators, so the strategies stay independent of each other.
package strategies

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"

	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
)

// binaryTournament draws two members with replacement and keeps the better
// one under the given ordering.
func binaryTournament(pop framework.Population, rng *rand.Rand, better func(a, b *framework.Individual) bool) *framework.Individual {
	a := pop[rng.IntN(len(pop))]
	b := pop[rng.IntN(len(pop))]
	if better(b, a) {
		return b
	}
	return a
}

// tournamentParents fills a parent pool of the given size by repeated binary
// tournaments.
func tournamentParents(pop framework.Population, n int, rng *rand.Rand, better func(a, b *framework.Individual) bool) framework.Population {
	parents := make(framework.Population, n)
	for i := range parents {
		parents[i] = binaryTournament(pop, rng, better)
	}
	return parents
}

// minView returns a copy of the fitness vector posed as minimization:
// maximized objectives are negated. Scalarizer-based strategies do their
// internal math on this view.
func minView(f framework.FitnessVector, objs []framework.Objective) framework.FitnessVector {
	v := f.Clone()
	for j, obj := range objs {
		if obj.Direction == framework.Maximize {
			v[j] = -v[j]
		}
	}
	return v
}

// idealPoint returns the per-objective best over the population in
// minimization view.
func idealPoint(pop framework.Population, objs []framework.Objective) framework.FitnessVector {
	z := make(framework.FitnessVector, len(objs))
	for j := range objs {
		for i, ind := range pop {
			v := ind.Fitness[j]
			if objs[j].Direction == framework.Maximize {
				v = -v
			}
			if i == 0 || v < z[j] {
				z[j] = v
			}
		}
	}
	return z
}

// normalizedMaxClones deep-copies a population and rescales the copies'
// fitness to [0,1] maximization posing for the hypervolume engine. The
// result maps clone index to source index.
func normalizedMaxClones(pop framework.Population, objs []framework.Objective, opt framework.ScaleOptions) (framework.Population, error) {
	clones := pop.Clone()
	if err := framework.NormalizeMax(clones, objs, opt); err != nil {
		return nil, err
	}
	return clones, nil
}

// originRef returns the hypervolume reference at the origin.
func originRef(dim int) []float64 {
	return make([]float64, dim)
}

func euclid(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// requireUniform rejects mixed-direction objective models for strategies
// whose internal order assumes one consistent direction.
func requireUniform(name string, objs []framework.Objective) error {
	if len(objs) < 2 {
		return framework.Configf("objectives", "%s needs at least 2 objectives, got %d", name, len(objs))
	}
	if !framework.UniformDirection(objs) {
		return framework.Configf("objectives", "%s cannot mix minimized and maximized objectives in one comparator", name)
	}
	return nil
}
