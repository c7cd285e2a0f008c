package framework

import "math/rand/v2"

// StrategyContext is the read-only execution environment an external driver
// supplies to a strategy once per lifecycle call. Strategies consume it and
// never own it. Rand must be a single generator instance for the whole run
// so results stay reproducible.
type StrategyContext struct {
	Objectives     []Objective
	PopulationSize int
	Generation     int
	MaxGenerations int

	// VarBounds are the genotype bounds; the PSO variants need them to
	// clamp particle flight.
	VarBounds []Bounds

	// Evaluate is the driver's objective evaluator. Most strategies never
	// touch it; MOCHC needs it to score the genotypes minted by a
	// cataclysmic restart.
	Evaluate func(Solution) *Individual

	Rand *rand.Rand
}

// NumObjectives returns the configured objective count.
func (ctx *StrategyContext) NumObjectives() int {
	return len(ctx.Objectives)
}

// Strategy is the five-operation selection lifecycle. An external controller
// drives it once per generation:
//
//	archive = Initialize(population)
//	loop:
//	  Update()
//	  parents = MatingSelection(population, archive)
//	  (external variation produces offspring)
//	  population = EnvironmentalSelection(population, offspring, archive)
//	  archive    = UpdateArchive(population, offspring, archive)
//
// EnvironmentalSelection and UpdateArchive must not depend on each other's
// side effects within one generation; implementations mutate auxiliary data
// on explicit copies only, except for operations documented as in-place.
type Strategy interface {
	Name() string

	// Initialize performs strategy-specific setup and returns the initial
	// archive (nil for strategies without external elitism).
	Initialize(ctx *StrategyContext, pop Population) (Population, error)

	// Update runs end-of-generation bookkeeping.
	Update(ctx *StrategyContext) error

	// MatingSelection picks the parents of the next offspring batch.
	MatingSelection(ctx *StrategyContext, pop, archive Population) (Population, error)

	// EnvironmentalSelection reduces population plus offspring to the next
	// generation's population.
	EnvironmentalSelection(ctx *StrategyContext, pop, offspring, archive Population) (Population, error)

	// UpdateArchive folds the offspring into the archive, honouring the
	// strategy's size bound and truncation policy.
	UpdateArchive(ctx *StrategyContext, pop, offspring, archive Population) (Population, error)
}

// ComparatorProvider exposes the active dominance comparator to reporting
// layers outside the core.
type ComparatorProvider interface {
	Comparator() Comparator
}

// ReferenceVectorProvider exposes the weight/reference vectors of
// decomposition-based strategies.
type ReferenceVectorProvider interface {
	ReferenceVectors() [][]float64
}

// ReferencePointProvider exposes the reference points of point-based
// strategies such as NSGA-III and PAR.
type ReferencePointProvider interface {
	ReferencePoints() [][]float64
}
