package strategies

import (
	"github.com/kdis-lab/moea-go/pkg/multiobjective/diversity"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/dominance"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
)

const OMOPSOName = "OMOPSO"

// OMOPSOConfig configures OMOPSO.
type OMOPSOConfig struct {
	// ArchiveSize bounds the leader archive.
	ArchiveSize int
	// Epsilons are the per-objective cell widths of the epsilon-dominance
	// filter applied on archive entry.
	Epsilons []float64
}

// OMOPSO is the selection half of the OMOPSO particle swarm: the particle
// flight is external variation. Leaders live in a crowding-bounded archive
// guarded by an epsilon-dominance filter, and are drawn by binary
// crowding tournaments.
type OMOPSO struct {
	cfg  OMOPSOConfig
	objs []framework.Objective
	cmp  *dominance.ParetoComparator
	eps  *dominance.EpsilonComparator

	crowd map[*framework.Individual]float64
}

var _ framework.Strategy = &OMOPSO{}
var _ framework.ComparatorProvider = &OMOPSO{}

func NewOMOPSO(cfg OMOPSOConfig, objs []framework.Objective) (*OMOPSO, error) {
	if len(objs) < 2 {
		return nil, framework.Configf("objectives", "OMOPSO needs at least 2 objectives, got %d", len(objs))
	}
	if cfg.ArchiveSize < 1 {
		return nil, framework.Configf("archive-size", "must be positive, got %d", cfg.ArchiveSize)
	}
	eps, err := dominance.NewEpsilonComparator(objs, cfg.Epsilons, make([]float64, len(objs)))
	if err != nil {
		return nil, err
	}
	return &OMOPSO{cfg: cfg, objs: objs, cmp: dominance.NewParetoComparator(objs), eps: eps}, nil
}

func (s *OMOPSO) Name() string { return OMOPSOName }

func (s *OMOPSO) Comparator() framework.Comparator { return s.cmp }

func (s *OMOPSO) refreshCrowding(archive framework.Population) error {
	crowd, err := diversity.CrowdingDistance(archive, s.objs)
	if err != nil {
		return err
	}
	s.crowd = crowd
	return nil
}

func (s *OMOPSO) Initialize(ctx *framework.StrategyContext, pop framework.Population) (framework.Population, error) {
	archive, err := dominance.NonDominated(pop, s.cmp)
	if err != nil {
		return nil, err
	}
	archive, err = crowdingTruncate(archive, s.cfg.ArchiveSize, s.objs, ctx)
	if err != nil {
		return nil, err
	}
	return archive, s.refreshCrowding(archive)
}

func (s *OMOPSO) Update(*framework.StrategyContext) error { return nil }

// MatingSelection draws one leader per particle from the archive by binary
// tournament on crowding distance; the flight operator pairs each particle
// with its leader outside the strategy.
func (s *OMOPSO) MatingSelection(ctx *framework.StrategyContext, pop, archive framework.Population) (framework.Population, error) {
	pool := archive
	if len(pool) == 0 {
		pool = pop
	}
	if len(pool) == 0 {
		return nil, &framework.DegenerateInputError{Op: "OMOPSO mating selection", Want: 1, Got: 0}
	}
	leaders := make(framework.Population, len(pop))
	for i := range leaders {
		leaders[i] = binaryTournament(pool, ctx.Rand, func(a, b *framework.Individual) bool {
			return s.crowd[a] > s.crowd[b]
		})
	}
	return leaders, nil
}

// EnvironmentalSelection replaces the swarm with the moved particles; all
// elitism lives in the leader archive.
func (s *OMOPSO) EnvironmentalSelection(_ *framework.StrategyContext, pop, offspring, _ framework.Population) (framework.Population, error) {
	if len(offspring) == 0 {
		return pop, nil
	}
	return offspring, nil
}

// UpdateArchive admits epsilon-non-dominated offspring, re-filters the union
// under Pareto dominance and truncates by crowding.
func (s *OMOPSO) UpdateArchive(ctx *framework.StrategyContext, _, offspring, archive framework.Population) (framework.Population, error) {
	next := make(framework.Population, len(archive))
	copy(next, archive)

	for _, child := range offspring {
		admitted, filtered, err := epsilonAdmit(next, child, s.eps)
		if err != nil {
			return nil, err
		}
		if admitted {
			next = append(filtered, child)
		}
	}

	next, err := dominance.NonDominated(dedupe(next), s.cmp)
	if err != nil {
		return nil, err
	}
	next, err = crowdingTruncate(next, s.cfg.ArchiveSize, s.objs, ctx)
	if err != nil {
		return nil, err
	}
	return next, s.refreshCrowding(next)
}

// epsilonAdmit tests a candidate against the archive under epsilon
// dominance. It reports admission and returns the archive with the
// candidate's epsilon-dominated victims removed.
func epsilonAdmit(archive framework.Population, child *framework.Individual, eps *dominance.EpsilonComparator) (bool, framework.Population, error) {
	keep := make(framework.Population, 0, len(archive))
	for _, member := range archive {
		rel, err := dominance.ConstrainedCompare(member, child, eps)
		if err != nil {
			return false, nil, err
		}
		switch rel {
		case framework.Dominating:
			return false, archive, nil
		case framework.Dominated:
			continue
		}
		keep = append(keep, member)
	}
	return true, keep, nil
}

// crowdingTruncate bounds a set by crowding distance: sort descending,
// truncate, shuffle so positional bias does not leak into tournaments.
func crowdingTruncate(pop framework.Population, size int, objs []framework.Objective, ctx *framework.StrategyContext) (framework.Population, error) {
	if len(pop) <= size {
		return pop, nil
	}
	crowd, err := diversity.CrowdingDistance(pop, objs)
	if err != nil {
		return nil, err
	}
	out := make(framework.Population, len(pop))
	copy(out, pop)
	diversity.SortByCrowding(out, crowd)
	out = out[:size]
	out.Shuffle(ctx.Rand)
	return out, nil
}
