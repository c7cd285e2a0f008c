package strategies

import (
	"github.com/kdis-lab/moea-go/pkg/multiobjective/diversity"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/dominance"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
)

const NSGA2Name = "NSGA-II"

// NSGA2Config configures NSGA-II. The algorithm has no parameters beyond
// the objective model; the struct exists for symmetry with the other
// strategies and future tuning knobs.
type NSGA2Config struct{}

// NSGA2 keeps no archive: elitism comes from merging parents and offspring
// before survival. Survivors are taken whole fronts at a time; the critical
// front is reduced in crowding-distance order.
type NSGA2 struct {
	objs []framework.Objective
	cmp  *dominance.ParetoComparator

	// Side tables over the current population, rebuilt by fitness
	// assignment; never attached to the individuals themselves.
	rank  map[*framework.Individual]int
	crowd map[*framework.Individual]float64
}

var _ framework.Strategy = &NSGA2{}
var _ framework.ComparatorProvider = &NSGA2{}

func NewNSGA2(_ NSGA2Config, objs []framework.Objective) (*NSGA2, error) {
	if len(objs) < 2 {
		return nil, framework.Configf("objectives", "NSGA-II needs at least 2 objectives, got %d", len(objs))
	}
	return &NSGA2{objs: objs, cmp: dominance.NewParetoComparator(objs)}, nil
}

func (s *NSGA2) Name() string { return NSGA2Name }

func (s *NSGA2) Comparator() framework.Comparator { return s.cmp }

// fitnessAssignment rebuilds the rank and crowding side tables for pop.
func (s *NSGA2) fitnessAssignment(pop framework.Population) error {
	fronts, err := dominance.Sort(pop, s.cmp)
	if err != nil {
		return err
	}
	s.rank = dominance.Ranks(fronts)
	s.crowd = make(map[*framework.Individual]float64, len(pop))
	for _, front := range fronts {
		dist, err := diversity.CrowdingDistance(front, s.objs)
		if err != nil {
			return err
		}
		for ind, d := range dist {
			s.crowd[ind] = d
		}
	}
	return nil
}

func (s *NSGA2) Initialize(_ *framework.StrategyContext, pop framework.Population) (framework.Population, error) {
	return nil, s.fitnessAssignment(pop)
}

func (s *NSGA2) Update(*framework.StrategyContext) error { return nil }

// crowdedBetter is the crowded-comparison operator: lower rank first,
// larger crowding distance on ties.
func (s *NSGA2) crowdedBetter(a, b *framework.Individual) bool {
	if s.rank[a] != s.rank[b] {
		return s.rank[a] < s.rank[b]
	}
	return s.crowd[a] > s.crowd[b]
}

func (s *NSGA2) MatingSelection(ctx *framework.StrategyContext, pop, _ framework.Population) (framework.Population, error) {
	if len(pop) < 2 {
		return nil, &framework.DegenerateInputError{Op: "NSGA-II mating selection", Want: 2, Got: len(pop)}
	}
	return tournamentParents(pop, ctx.PopulationSize, ctx.Rand, s.crowdedBetter), nil
}

func (s *NSGA2) EnvironmentalSelection(ctx *framework.StrategyContext, pop, offspring, _ framework.Population) (framework.Population, error) {
	combined := make(framework.Population, 0, len(pop)+len(offspring))
	combined = append(combined, pop...)
	combined = append(combined, offspring...)

	fronts, err := dominance.Sort(combined, s.cmp)
	if err != nil {
		return nil, err
	}

	next := make(framework.Population, 0, ctx.PopulationSize)
	for _, front := range fronts {
		if len(next)+len(front) <= ctx.PopulationSize {
			next = append(next, front...)
			continue
		}
		dist, err := diversity.CrowdingDistance(front, s.objs)
		if err != nil {
			return nil, err
		}
		critical := make(framework.Population, len(front))
		copy(critical, front)
		diversity.SortByCrowding(critical, dist)
		next = append(next, critical[:ctx.PopulationSize-len(next)]...)
		break
	}

	return next, s.fitnessAssignment(next)
}

func (s *NSGA2) UpdateArchive(_ *framework.StrategyContext, _, _, archive framework.Population) (framework.Population, error) {
	return archive, nil
}
