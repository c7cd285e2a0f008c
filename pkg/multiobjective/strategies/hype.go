package strategies

import (
	"github.com/kdis-lab/moea-go/pkg/multiobjective/dominance"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/hypervolume"
)

const HypEName = "HypE"

// HypEConfig configures HypE.
type HypEConfig struct {
	// Samples switches the contribution computation to Monte-Carlo with
	// that many samples; 0 selects the exact engine up to ExactLimit
	// objectives and 10000 samples beyond.
	Samples int
	// ExactLimit is the largest objective count still computed exactly when
	// Samples is 0. Defaults to 3.
	ExactLimit int
}

const hypeDefaultSamples = 10000

// HypE ranks survival by hypervolume contribution: whole fronts survive
// first, and the critical front shrinks by repeatedly dropping the point
// contributing least to the volume the front would lose.
type HypE struct {
	cfg  HypEConfig
	objs []framework.Objective
	cmp  *dominance.ParetoComparator

	rank    map[*framework.Individual]int
	fitness map[*framework.Individual]float64
}

var _ framework.Strategy = &HypE{}
var _ framework.ComparatorProvider = &HypE{}

func NewHypE(cfg HypEConfig, objs []framework.Objective) (*HypE, error) {
	if err := requireUniform(HypEName, objs); err != nil {
		return nil, err
	}
	if cfg.Samples < 0 {
		return nil, framework.Configf("samples", "must not be negative, got %d", cfg.Samples)
	}
	if cfg.ExactLimit == 0 {
		cfg.ExactLimit = 3
	}
	if cfg.ExactLimit < 2 {
		return nil, framework.Configf("exact-limit", "must be at least 2, got %d", cfg.ExactLimit)
	}
	return &HypE{cfg: cfg, objs: objs, cmp: dominance.NewParetoComparator(objs)}, nil
}

func (s *HypE) Name() string { return HypEName }

func (s *HypE) Comparator() framework.Comparator { return s.cmp }

// contributions computes the HypE fitness of a front for removing k points,
// exact or Monte-Carlo depending on dimension and configuration.
func (s *HypE) contributions(ctx *framework.StrategyContext, front framework.Population, k int) ([]float64, error) {
	clones, err := normalizedMaxClones(front, s.objs, framework.ScaleOptions{})
	if err != nil {
		return nil, err
	}
	points := make([]framework.FitnessVector, len(clones))
	for i, c := range clones {
		points[i] = c.Fitness
	}
	ref := originRef(len(s.objs))

	if s.cfg.Samples > 0 {
		return hypervolume.ContributionsMC(points, k, ref, s.cfg.Samples, ctx.Rand)
	}
	if len(s.objs) > s.cfg.ExactLimit {
		return hypervolume.ContributionsMC(points, k, ref, hypeDefaultSamples, ctx.Rand)
	}
	return hypervolume.Contributions(points, k, ref)
}

// fitnessAssignment rebuilds rank and contribution side tables for pop.
func (s *HypE) fitnessAssignment(ctx *framework.StrategyContext, pop framework.Population) error {
	fronts, err := dominance.Sort(pop, s.cmp)
	if err != nil {
		return err
	}
	s.rank = dominance.Ranks(fronts)
	s.fitness = make(map[*framework.Individual]float64, len(pop))
	for _, front := range fronts {
		contrib, err := s.contributions(ctx, front, 1)
		if err != nil {
			return err
		}
		for i, ind := range front {
			s.fitness[ind] = contrib[i]
		}
	}
	return nil
}

func (s *HypE) Initialize(ctx *framework.StrategyContext, pop framework.Population) (framework.Population, error) {
	return nil, s.fitnessAssignment(ctx, pop)
}

func (s *HypE) Update(*framework.StrategyContext) error { return nil }

func (s *HypE) MatingSelection(ctx *framework.StrategyContext, pop, _ framework.Population) (framework.Population, error) {
	if len(pop) < 2 {
		return nil, &framework.DegenerateInputError{Op: "HypE mating selection", Want: 2, Got: len(pop)}
	}
	return tournamentParents(pop, ctx.PopulationSize, ctx.Rand, func(a, b *framework.Individual) bool {
		if s.rank[a] != s.rank[b] {
			return s.rank[a] < s.rank[b]
		}
		return s.fitness[a] > s.fitness[b]
	}), nil
}

// EnvironmentalSelection peels fronts and reduces the critical front by
// contribution, recomputing after every removal since dropping a point
// shifts its neighbours' shares.
func (s *HypE) EnvironmentalSelection(ctx *framework.StrategyContext, pop, offspring, _ framework.Population) (framework.Population, error) {
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
		critical := make(framework.Population, len(front))
		copy(critical, front)
		for len(next)+len(critical) > ctx.PopulationSize {
			excess := len(next) + len(critical) - ctx.PopulationSize
			contrib, err := s.contributions(ctx, critical, excess)
			if err != nil {
				return nil, err
			}
			worst := 0
			for i := range critical {
				if contrib[i] < contrib[worst] {
					worst = i
				}
			}
			critical = append(critical[:worst], critical[worst+1:]...)
		}
		next = append(next, critical...)
		break
	}

	return next, s.fitnessAssignment(ctx, next)
}

func (s *HypE) UpdateArchive(_ *framework.StrategyContext, _, _, archive framework.Population) (framework.Population, error) {
	return archive, nil
}
