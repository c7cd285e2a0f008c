package strategies

import (
	"github.com/kdis-lab/moea-go/pkg/multiobjective/diversity"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/dominance"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
)

const GrEAName = "GrEA"

// GrEAConfig configures GrEA.
type GrEAConfig struct {
	// Divisions is the number of hypercubes per objective axis.
	Divisions int
}

// GrEA ranks survivors on a hypercube grid rebuilt per selection: grid
// ranking (coordinate sum), grid crowding and the distance to the cell's
// utopian corner. The critical front shrinks through an iterative
// pick-best / penalize-neighbours loop rather than a one-shot sort.
type GrEA struct {
	cfg  GrEAConfig
	objs []framework.Objective
	cmp  *dominance.ParetoComparator

	rank  map[*framework.Individual]int
	crowd map[*framework.Individual]float64
}

var _ framework.Strategy = &GrEA{}
var _ framework.ComparatorProvider = &GrEA{}

func NewGrEA(cfg GrEAConfig, objs []framework.Objective) (*GrEA, error) {
	if len(objs) < 2 {
		return nil, framework.Configf("objectives", "GrEA needs at least 2 objectives, got %d", len(objs))
	}
	if cfg.Divisions < 1 {
		return nil, framework.Configf("divisions", "must be positive, got %d", cfg.Divisions)
	}
	return &GrEA{cfg: cfg, objs: objs, cmp: dominance.NewParetoComparator(objs)}, nil
}

func (s *GrEA) Name() string { return GrEAName }

func (s *GrEA) Comparator() framework.Comparator { return s.cmp }

// fitnessAssignment rebuilds the grid side tables over the current
// population for mating selection.
func (s *GrEA) fitnessAssignment(pop framework.Population) error {
	s.rank = make(map[*framework.Individual]int, len(pop))
	s.crowd = make(map[*framework.Individual]float64, len(pop))
	if len(pop) == 0 {
		return nil
	}
	grid, err := diversity.NewGrid(pop, s.objs, s.cfg.Divisions)
	if err != nil {
		return err
	}
	for _, ind := range pop {
		r, err := grid.Ranking(ind)
		if err != nil {
			return err
		}
		c, err := grid.Crowding(ind, pop)
		if err != nil {
			return err
		}
		s.rank[ind] = r
		s.crowd[ind] = c
	}
	return nil
}

func (s *GrEA) Initialize(_ *framework.StrategyContext, pop framework.Population) (framework.Population, error) {
	return nil, s.fitnessAssignment(pop)
}

func (s *GrEA) Update(*framework.StrategyContext) error { return nil }

// MatingSelection runs binary tournaments: dominance first, then grid
// ranking, then grid crowding.
func (s *GrEA) MatingSelection(ctx *framework.StrategyContext, pop, _ framework.Population) (framework.Population, error) {
	if len(pop) < 2 {
		return nil, &framework.DegenerateInputError{Op: "GrEA mating selection", Want: 2, Got: len(pop)}
	}
	parents := make(framework.Population, ctx.PopulationSize)
	for i := range parents {
		a := pop[ctx.Rand.IntN(len(pop))]
		b := pop[ctx.Rand.IntN(len(pop))]
		rel, err := dominance.ConstrainedCompare(a, b, s.cmp)
		if err != nil {
			return nil, err
		}
		switch {
		case rel == framework.Dominating:
			parents[i] = a
		case rel == framework.Dominated:
			parents[i] = b
		case s.rank[a] != s.rank[b]:
			if s.rank[a] < s.rank[b] {
				parents[i] = a
			} else {
				parents[i] = b
			}
		case s.crowd[a] <= s.crowd[b]:
			parents[i] = a
		default:
			parents[i] = b
		}
	}
	return parents, nil
}

func (s *GrEA) EnvironmentalSelection(ctx *framework.StrategyContext, pop, offspring, _ framework.Population) (framework.Population, error) {
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
		chosen, err := s.reduceFront(front, ctx.PopulationSize-len(next))
		if err != nil {
			return nil, err
		}
		next = append(next, chosen...)
		break
	}

	return next, s.fitnessAssignment(next)
}

// reduceFront picks want members from the critical front. Each round takes
// the best remaining individual by (ranking, crowding, point distance)
// lexicographic order, then penalizes its grid neighbourhood so the next
// round steers away from the region just served.
func (s *GrEA) reduceFront(front framework.Population, want int) (framework.Population, error) {
	grid, err := diversity.NewGrid(front, s.objs, s.cfg.Divisions)
	if err != nil {
		return nil, err
	}

	m := len(s.objs)
	rank := make(map[*framework.Individual]float64, len(front))
	crowd := make(map[*framework.Individual]float64, len(front))
	pd := make(map[*framework.Individual]float64, len(front))
	for _, ind := range front {
		r, err := grid.Ranking(ind)
		if err != nil {
			return nil, err
		}
		d, err := grid.PointDistance(ind)
		if err != nil {
			return nil, err
		}
		rank[ind] = float64(r)
		crowd[ind] = 0
		pd[ind] = d
	}

	remaining := make(framework.Population, len(front))
	copy(remaining, front)
	chosen := make(framework.Population, 0, want)

	for len(chosen) < want && len(remaining) > 0 {
		best := remaining[0]
		for _, ind := range remaining[1:] {
			if rank[ind] < rank[best] ||
				(rank[ind] == rank[best] && crowd[ind] < crowd[best]) ||
				(rank[ind] == rank[best] && crowd[ind] == crowd[best] && pd[ind] < pd[best]) {
				best = ind
			}
		}
		chosen = append(chosen, best)
		remaining = remaining.Without(best)

		for _, other := range remaining {
			same, err := grid.SameCell(best, other)
			if err != nil {
				return nil, err
			}
			d, err := grid.ChebyshevDistance(best, other)
			if err != nil {
				return nil, err
			}
			switch {
			case same:
				rank[other] += float64(m) + 2
			case s.gridDominates(grid, best, other):
				rank[other] += float64(m)
			case d < m:
				crowd[other] += float64(m - d)
			}
		}
	}
	return chosen, nil
}

// gridDominates applies the dominance rule to the cell coordinates of two
// members.
func (s *GrEA) gridDominates(grid *diversity.Grid, a, b *framework.Individual) bool {
	ca, errA := grid.Coordinate(a)
	cb, errB := grid.Coordinate(b)
	if errA != nil || errB != nil {
		return false
	}
	return dominance.CompareCoordinates(ca, cb, s.objs) == framework.Dominating
}

func (s *GrEA) UpdateArchive(_ *framework.StrategyContext, _, _, archive framework.Population) (framework.Population, error) {
	return archive, nil
}
