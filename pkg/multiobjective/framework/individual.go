package framework

import (
	"math/rand/v2"
	"sort"
)

// FitnessVector is the ordered sequence of objective values of an individual.
// Its length equals the configured objective count for the whole run.
type FitnessVector []float64

// At returns the i-th objective value or an ObjectiveAccessError when the
// vector does not carry it.
func (f FitnessVector) At(i int) (float64, error) {
	if i < 0 || i >= len(f) {
		return 0, &ObjectiveAccessError{Index: i, Len: len(f)}
	}
	return f[i], nil
}

// Clone returns an independent copy.
func (f FitnessVector) Clone() FitnessVector {
	c := make(FitnessVector, len(f))
	copy(c, f)
	return c
}

// Individual is one candidate solution as seen by the selection core: an
// optional encoded genotype plus its fitness vector. Ownership lies with the
// surrounding population or archive, never with a single strategy.
type Individual struct {
	Solution Solution
	Fitness  FitnessVector

	// Infeasible is set by the evaluator when a constraint is violated.
	Infeasible bool
}

// NewIndividual wraps a fitness vector. Handy in tests and for strategies
// operating purely in objective space.
func NewIndividual(fitness ...float64) *Individual {
	return &Individual{Fitness: fitness}
}

// Feasible reports whether the individual satisfies all constraints.
func (ind *Individual) Feasible() bool {
	return !ind.Infeasible
}

// ObjectiveValue returns one objective value, signalling an
// ObjectiveAccessError instead of silently ranking missing values.
func (ind *Individual) ObjectiveValue(i int) (float64, error) {
	return ind.Fitness.At(i)
}

// Clone produces an independent deep copy. Strategies mutate auxiliary data
// on copies, never on the caller's originals.
func (ind *Individual) Clone() *Individual {
	c := &Individual{
		Fitness:    ind.Fitness.Clone(),
		Infeasible: ind.Infeasible,
	}
	if ind.Solution != nil {
		c.Solution = ind.Solution.Clone()
	}
	return c
}

// Population is an ordered mutable sequence of individuals, passed by
// reference between lifecycle operations. Sorting and shuffling mutate in
// place; extraction and splitting return derived sequences.
type Population []*Individual

// Clone deep-copies every member.
func (pop Population) Clone() Population {
	c := make(Population, len(pop))
	for i, ind := range pop {
		c[i] = ind.Clone()
	}
	return c
}

// Fitnesses returns the raw objective vectors, sharing the underlying slices.
func (pop Population) Fitnesses() []FitnessVector {
	fs := make([]FitnessVector, len(pop))
	for i, ind := range pop {
		fs[i] = ind.Fitness
	}
	return fs
}

// Shuffle permutes the population in place using the shared random source.
func (pop Population) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(pop), func(i, j int) {
		pop[i], pop[j] = pop[j], pop[i]
	})
}

// SortBy sorts the population in place. The sort is stable so that ties keep
// list order, which the crowding and grid metrics rely on.
func (pop Population) SortBy(less func(a, b *Individual) bool) {
	sort.SliceStable(pop, func(i, j int) bool { return less(pop[i], pop[j]) })
}

// Contains reports identity membership.
func (pop Population) Contains(ind *Individual) bool {
	for _, p := range pop {
		if p == ind {
			return true
		}
	}
	return false
}

// Without returns a derived population with ind removed (by identity).
func (pop Population) Without(ind *Individual) Population {
	out := make(Population, 0, len(pop))
	for _, p := range pop {
		if p != ind {
			out = append(out, p)
		}
	}
	return out
}
