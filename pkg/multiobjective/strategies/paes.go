package strategies

import (
	"github.com/kdis-lab/moea-go/pkg/multiobjective/diversity"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/dominance"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
)

const PAESName = "PAES"

// PAESConfig configures PAES and its (mu+lambda) variant.
type PAESConfig struct {
	// Bisections splits every objective axis into 2^Bisections grid
	// divisions.
	Bisections int
	// ArchiveSize is the fixed archive bound.
	ArchiveSize int
	// Lambda > 0 switches to the (mu+lambda) variant accepting whole
	// populations; 0 keeps the strict (1+1) arity.
	Lambda int
}

// PAES keeps a fixed-size archive over an adaptive hypercube grid. The grid
// and its cell-occupancy counters are rebuilt from the archive whenever it
// changes; replacement evicts a random member of the most crowded cell.
type PAES struct {
	cfg  PAESConfig
	objs []framework.Objective
	cmp  *dominance.ParetoComparator

	grid *diversity.Grid
	// occupancy counts archive members per cell key.
	occupancy map[string]int
}

var _ framework.Strategy = &PAES{}
var _ framework.ComparatorProvider = &PAES{}

func NewPAES(cfg PAESConfig, objs []framework.Objective) (*PAES, error) {
	if len(objs) < 2 {
		return nil, framework.Configf("objectives", "PAES needs at least 2 objectives, got %d", len(objs))
	}
	if cfg.Bisections < 1 {
		return nil, framework.Configf("number-of-bisections", "must be positive, got %d", cfg.Bisections)
	}
	if cfg.ArchiveSize < 1 {
		return nil, framework.Configf("archive-size", "must be positive, got %d", cfg.ArchiveSize)
	}
	if cfg.Lambda < 0 {
		return nil, framework.Configf("lambda", "must not be negative, got %d", cfg.Lambda)
	}
	return &PAES{cfg: cfg, objs: objs, cmp: dominance.NewParetoComparator(objs)}, nil
}

func (s *PAES) Name() string {
	if s.cfg.Lambda > 0 {
		return PAESName + "+lambda"
	}
	return PAESName
}

func (s *PAES) Comparator() framework.Comparator { return s.cmp }

func (s *PAES) divisions() int { return 1 << s.cfg.Bisections }

// rebuildGrid recomputes the adaptive grid and the occupancy counters from
// the archive's own objective spread.
func (s *PAES) rebuildGrid(archive framework.Population) error {
	if len(archive) == 0 {
		s.grid, s.occupancy = nil, nil
		return nil
	}
	grid, err := diversity.NewGrid(archive, s.objs, s.divisions())
	if err != nil {
		return err
	}
	cells, err := grid.CellOccupants(archive)
	if err != nil {
		return err
	}
	s.grid = grid
	s.occupancy = make(map[string]int, len(cells))
	for key, members := range cells {
		s.occupancy[key] = len(members)
	}
	return nil
}

func (s *PAES) Initialize(ctx *framework.StrategyContext, pop framework.Population) (framework.Population, error) {
	archive, err := dominance.NonDominated(pop, s.cmp)
	if err != nil {
		return nil, err
	}
	// An oversize seed archive sheds members through the same grid-occupancy
	// eviction the archive update uses.
	for len(archive) > s.cfg.ArchiveSize {
		if err := s.rebuildGrid(archive); err != nil {
			return nil, err
		}
		victim, err := s.mostCrowdedVictim(archive, ctx)
		if err != nil {
			return nil, err
		}
		archive = archive.Without(victim)
	}
	return archive, s.rebuildGrid(archive)
}

func (s *PAES) Update(*framework.StrategyContext) error { return nil }

// MatingSelection returns the current solutions themselves: PAES is a
// mutation-only strategy, the driver runs it with crossover disabled.
func (s *PAES) MatingSelection(_ *framework.StrategyContext, pop, _ framework.Population) (framework.Population, error) {
	if s.cfg.Lambda == 0 && len(pop) != 1 {
		return nil, &framework.DegenerateInputError{Op: "PAES mating selection", Want: 1, Got: len(pop)}
	}
	parents := make(framework.Population, len(pop))
	copy(parents, pop)
	return parents, nil
}

// EnvironmentalSelection settles each parent/mutant duel: dominance first,
// then grid crowding of the cells the contenders fall into.
func (s *PAES) EnvironmentalSelection(_ *framework.StrategyContext, pop, offspring, _ framework.Population) (framework.Population, error) {
	if s.cfg.Lambda == 0 && (len(pop) != 1 || len(offspring) != 1) {
		return nil, &framework.DegenerateInputError{Op: "PAES environmental selection", Want: 1, Got: len(offspring)}
	}
	next := make(framework.Population, len(pop))
	copy(next, pop)
	for i, child := range offspring {
		if i >= len(next) {
			break
		}
		rel, err := dominance.ConstrainedCompare(child, next[i], s.cmp)
		if err != nil {
			return nil, err
		}
		switch rel {
		case framework.Dominating:
			next[i] = child
		case framework.Dominated:
			// keep the parent
		default:
			if s.lessCrowdedThan(child, next[i]) {
				next[i] = child
			}
		}
	}
	return next, nil
}

func (s *PAES) lessCrowdedThan(a, b *framework.Individual) bool {
	if s.grid == nil {
		return false
	}
	keyA, errA := s.grid.CellKey(a)
	keyB, errB := s.grid.CellKey(b)
	if errA != nil || errB != nil {
		return false
	}
	return s.occupancy[keyA] < s.occupancy[keyB]
}

// UpdateArchive folds each candidate into the fixed-size archive: dominated
// candidates are discarded, dominating ones evict their victims, and when
// the bound is hit a random member of the most crowded cell makes room.
func (s *PAES) UpdateArchive(ctx *framework.StrategyContext, _, offspring, archive framework.Population) (framework.Population, error) {
	next := make(framework.Population, len(archive))
	copy(next, archive)

	for _, child := range offspring {
		dominated := false
		keep := make(framework.Population, 0, len(next))
		for _, member := range next {
			rel, err := dominance.ConstrainedCompare(member, child, s.cmp)
			if err != nil {
				return nil, err
			}
			switch rel {
			case framework.Dominating:
				dominated = true
			case framework.Dominated:
				continue // evicted by the candidate
			}
			keep = append(keep, member)
			if dominated {
				break
			}
		}
		if dominated {
			continue
		}
		next = keep
		if len(next) >= s.cfg.ArchiveSize {
			if err := s.rebuildGrid(next); err != nil {
				return nil, err
			}
			victim, err := s.mostCrowdedVictim(next, ctx)
			if err != nil {
				return nil, err
			}
			next = next.Without(victim)
		}
		next = append(next, child)
		if err := s.rebuildGrid(next); err != nil {
			return nil, err
		}
	}
	return next, nil
}

// mostCrowdedVictim picks a random occupant of the cell with the highest
// occupancy counter.
func (s *PAES) mostCrowdedVictim(archive framework.Population, ctx *framework.StrategyContext) (*framework.Individual, error) {
	cells, err := s.grid.CellOccupants(archive)
	if err != nil {
		return nil, err
	}
	var crowded framework.Population
	for _, members := range cells {
		if len(members) > len(crowded) {
			crowded = members
		}
	}
	return crowded[ctx.Rand.IntN(len(crowded))], nil
}
