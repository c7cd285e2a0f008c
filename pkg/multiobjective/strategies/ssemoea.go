package strategies

import (
	"github.com/kdis-lab/moea-go/pkg/multiobjective/diversity"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/dominance"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
)

const SSeMOEAName = "SSeMOEA"

// SSeMOEAConfig configures the steady-state epsilon-dominance strategy.
type SSeMOEAConfig struct {
	// Epsilons are the per-objective cell widths of the epsilon grid.
	Epsilons []float64
}

// SSeMOEA keeps an unbounded epsilon-dominance archive holding at most one
// representative per grid cell: a candidate sharing a cell with a member
// replaces it by dominance, or by sitting closer to the cell's utopian
// corner when the two are incomparable. The working population evolves
// steady-state by dominance replacement.
type SSeMOEA struct {
	cfg  SSeMOEAConfig
	objs []framework.Objective
	cmp  *dominance.ParetoComparator
	eps  *dominance.EpsilonComparator
}

var _ framework.Strategy = &SSeMOEA{}
var _ framework.ComparatorProvider = &SSeMOEA{}

func NewSSeMOEA(cfg SSeMOEAConfig, objs []framework.Objective) (*SSeMOEA, error) {
	if len(objs) < 2 {
		return nil, framework.Configf("objectives", "SSeMOEA needs at least 2 objectives, got %d", len(objs))
	}
	eps, err := dominance.NewEpsilonComparator(objs, cfg.Epsilons, make([]float64, len(objs)))
	if err != nil {
		return nil, err
	}
	return &SSeMOEA{cfg: cfg, objs: objs, cmp: dominance.NewParetoComparator(objs), eps: eps}, nil
}

func (s *SSeMOEA) Name() string { return SSeMOEAName }

func (s *SSeMOEA) Comparator() framework.Comparator { return s.cmp }

func (s *SSeMOEA) Initialize(_ *framework.StrategyContext, pop framework.Population) (framework.Population, error) {
	archive := framework.Population{}
	for _, ind := range pop {
		next, err := s.admit(archive, ind)
		if err != nil {
			return nil, err
		}
		archive = next
	}
	return archive, nil
}

func (s *SSeMOEA) Update(*framework.StrategyContext) error { return nil }

// MatingSelection pairs one population parent, picked by dominance
// tournament, with one random archive member per offspring slot.
func (s *SSeMOEA) MatingSelection(ctx *framework.StrategyContext, pop, archive framework.Population) (framework.Population, error) {
	if len(pop) < 2 {
		return nil, &framework.DegenerateInputError{Op: "SSeMOEA mating selection", Want: 2, Got: len(pop)}
	}
	parents := make(framework.Population, 0, ctx.PopulationSize)
	for len(parents) < ctx.PopulationSize {
		a := pop[ctx.Rand.IntN(len(pop))]
		b := pop[ctx.Rand.IntN(len(pop))]
		rel, err := dominance.ConstrainedCompare(a, b, s.cmp)
		if err != nil {
			return nil, err
		}
		if rel == framework.Dominated {
			a = b
		}
		mate := a
		if len(archive) > 0 {
			mate = archive[ctx.Rand.IntN(len(archive))]
		}
		parents = append(parents, a, mate)
	}
	return parents[:ctx.PopulationSize], nil
}

// EnvironmentalSelection folds each offspring in steady-state: it replaces a
// random population member it dominates, is discarded when dominated, and
// otherwise displaces a random member.
func (s *SSeMOEA) EnvironmentalSelection(ctx *framework.StrategyContext, pop, offspring, _ framework.Population) (framework.Population, error) {
	next := make(framework.Population, len(pop))
	copy(next, pop)

	for _, child := range offspring {
		var dominated []int
		childDominated := false
		for i, member := range next {
			rel, err := dominance.ConstrainedCompare(child, member, s.cmp)
			if err != nil {
				return nil, err
			}
			switch rel {
			case framework.Dominating:
				dominated = append(dominated, i)
			case framework.Dominated:
				childDominated = true
			}
			if childDominated {
				break
			}
		}
		switch {
		case childDominated:
		case len(dominated) > 0:
			next[dominated[ctx.Rand.IntN(len(dominated))]] = child
		default:
			next[ctx.Rand.IntN(len(next))] = child
		}
	}
	return next, nil
}

// UpdateArchive admits every offspring through the epsilon grid.
func (s *SSeMOEA) UpdateArchive(_ *framework.StrategyContext, _, offspring, archive framework.Population) (framework.Population, error) {
	next := archive
	for _, child := range offspring {
		admitted, err := s.admit(next, child)
		if err != nil {
			return nil, err
		}
		next = admitted
	}
	return next, nil
}

// admit applies the epsilon-archiving rule for a single candidate and
// returns the updated archive.
func (s *SSeMOEA) admit(archive framework.Population, child *framework.Individual) (framework.Population, error) {
	childCoord, err := s.eps.Coordinate(child.Fitness)
	if err != nil {
		return nil, err
	}

	keep := make(framework.Population, 0, len(archive)+1)
	for _, member := range archive {
		coord, err := s.eps.Coordinate(member.Fitness)
		if err != nil {
			return nil, err
		}
		if sameCoords(coord, childCoord) {
			winner, err := s.cellWinner(member, child)
			if err != nil {
				return nil, err
			}
			if winner == member {
				return archive, nil
			}
			continue // member loses its cell to the candidate
		}
		switch dominance.CompareCoordinates(coord, childCoord, s.objs) {
		case framework.Dominating:
			return archive, nil
		case framework.Dominated:
			continue
		}
		keep = append(keep, member)
	}
	return append(keep, child), nil
}

// cellWinner settles a same-cell duel: Pareto dominance first, then the
// smaller distance to the cell's utopian corner.
func (s *SSeMOEA) cellWinner(member, child *framework.Individual) (*framework.Individual, error) {
	rel, err := dominance.ConstrainedCompare(member, child, s.cmp)
	if err != nil {
		return nil, err
	}
	switch rel {
	case framework.Dominating:
		return member, nil
	case framework.Dominated:
		return child, nil
	}

	grid, err := diversity.NewGridWithEpsilons(framework.Population{member, child}, s.objs,
		s.cfg.Epsilons, make([]float64, len(s.objs)))
	if err != nil {
		return nil, err
	}
	dm, err := grid.PointDistance(member)
	if err != nil {
		return nil, err
	}
	dc, err := grid.PointDistance(child)
	if err != nil {
		return nil, err
	}
	if dc < dm {
		return child, nil
	}
	return member, nil
}

func sameCoords(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
