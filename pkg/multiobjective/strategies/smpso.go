package strategies

import (
	"github.com/kdis-lab/moea-go/pkg/multiobjective/diversity"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/dominance"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
)

const SMPSOName = "SMPSO"

// SMPSOConfig configures SMPSO.
type SMPSOConfig struct {
	// ArchiveSize bounds the leader archive.
	ArchiveSize int
}

// SMPSO is the selection half of the speed-constrained particle swarm: the
// constricted flight is external variation. It keeps a plain Pareto leader
// archive truncated by crowding distance.
type SMPSO struct {
	cfg  SMPSOConfig
	objs []framework.Objective
	cmp  *dominance.ParetoComparator

	crowd map[*framework.Individual]float64
}

var _ framework.Strategy = &SMPSO{}
var _ framework.ComparatorProvider = &SMPSO{}

func NewSMPSO(cfg SMPSOConfig, objs []framework.Objective) (*SMPSO, error) {
	if len(objs) < 2 {
		return nil, framework.Configf("objectives", "SMPSO needs at least 2 objectives, got %d", len(objs))
	}
	if cfg.ArchiveSize < 1 {
		return nil, framework.Configf("archive-size", "must be positive, got %d", cfg.ArchiveSize)
	}
	return &SMPSO{cfg: cfg, objs: objs, cmp: dominance.NewParetoComparator(objs)}, nil
}

func (s *SMPSO) Name() string { return SMPSOName }

func (s *SMPSO) Comparator() framework.Comparator { return s.cmp }

func (s *SMPSO) refreshCrowding(archive framework.Population) error {
	crowd, err := diversity.CrowdingDistance(archive, s.objs)
	if err != nil {
		return err
	}
	s.crowd = crowd
	return nil
}

func (s *SMPSO) Initialize(ctx *framework.StrategyContext, pop framework.Population) (framework.Population, error) {
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

func (s *SMPSO) Update(*framework.StrategyContext) error { return nil }

func (s *SMPSO) MatingSelection(ctx *framework.StrategyContext, pop, archive framework.Population) (framework.Population, error) {
	pool := archive
	if len(pool) == 0 {
		pool = pop
	}
	if len(pool) == 0 {
		return nil, &framework.DegenerateInputError{Op: "SMPSO mating selection", Want: 1, Got: 0}
	}
	leaders := make(framework.Population, len(pop))
	for i := range leaders {
		leaders[i] = binaryTournament(pool, ctx.Rand, func(a, b *framework.Individual) bool {
			return s.crowd[a] > s.crowd[b]
		})
	}
	return leaders, nil
}

func (s *SMPSO) EnvironmentalSelection(_ *framework.StrategyContext, pop, offspring, _ framework.Population) (framework.Population, error) {
	if len(offspring) == 0 {
		return pop, nil
	}
	return offspring, nil
}

// UpdateArchive merges the moved particles into the leader archive under
// Pareto dominance and truncates by crowding.
func (s *SMPSO) UpdateArchive(ctx *framework.StrategyContext, _, offspring, archive framework.Population) (framework.Population, error) {
	union := make(framework.Population, 0, len(archive)+len(offspring))
	union = append(union, archive...)
	union = append(union, offspring...)

	next, err := dominance.NonDominated(dedupe(union), s.cmp)
	if err != nil {
		return nil, err
	}
	next, err = crowdingTruncate(next, s.cfg.ArchiveSize, s.objs, ctx)
	if err != nil {
		return nil, err
	}
	return next, s.refreshCrowding(next)
}
