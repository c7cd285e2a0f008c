package strategies

import (
	"github.com/kdis-lab/moea-go/pkg/multiobjective/dominance"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/hypervolume"
)

const SMSEMOAName = "SMS-EMOA"

// SMSEMOAConfig configures SMS-EMOA.
type SMSEMOAConfig struct {
	// Offspring is how many children enter per generation; SMS-EMOA is
	// steady-state, so each one is folded in individually. Defaults to 1.
	Offspring int
}

// SMSEMOA maximizes the population's dominated hypervolume steady-state
// style: each offspring joins the population and the member of the worst
// front contributing least to that front's volume leaves.
type SMSEMOA struct {
	cfg  SMSEMOAConfig
	objs []framework.Objective
	cmp  *dominance.ParetoComparator

	rank map[*framework.Individual]int
}

var _ framework.Strategy = &SMSEMOA{}
var _ framework.ComparatorProvider = &SMSEMOA{}

func NewSMSEMOA(cfg SMSEMOAConfig, objs []framework.Objective) (*SMSEMOA, error) {
	if err := requireUniform(SMSEMOAName, objs); err != nil {
		return nil, err
	}
	if cfg.Offspring < 0 {
		return nil, framework.Configf("offspring", "must not be negative, got %d", cfg.Offspring)
	}
	if cfg.Offspring == 0 {
		cfg.Offspring = 1
	}
	return &SMSEMOA{cfg: cfg, objs: objs, cmp: dominance.NewParetoComparator(objs)}, nil
}

func (s *SMSEMOA) Name() string { return SMSEMOAName }

func (s *SMSEMOA) Comparator() framework.Comparator { return s.cmp }

func (s *SMSEMOA) fitnessAssignment(pop framework.Population) error {
	fronts, err := dominance.Sort(pop, s.cmp)
	if err != nil {
		return err
	}
	s.rank = dominance.Ranks(fronts)
	return nil
}

func (s *SMSEMOA) Initialize(_ *framework.StrategyContext, pop framework.Population) (framework.Population, error) {
	return nil, s.fitnessAssignment(pop)
}

func (s *SMSEMOA) Update(*framework.StrategyContext) error { return nil }

// MatingSelection returns Offspring parent pairs; the driver turns each pair
// into one steady-state child.
func (s *SMSEMOA) MatingSelection(ctx *framework.StrategyContext, pop, _ framework.Population) (framework.Population, error) {
	if len(pop) < 2 {
		return nil, &framework.DegenerateInputError{Op: "SMS-EMOA mating selection", Want: 2, Got: len(pop)}
	}
	return tournamentParents(pop, 2*s.cfg.Offspring, ctx.Rand, func(a, b *framework.Individual) bool {
		return s.rank[a] < s.rank[b]
	}), nil
}

// EnvironmentalSelection folds the offspring in one at a time. After each
// insertion the member of the worst front with the smallest hypervolume
// contribution is removed, so the population size never drifts.
func (s *SMSEMOA) EnvironmentalSelection(_ *framework.StrategyContext, pop, offspring, _ framework.Population) (framework.Population, error) {
	next := make(framework.Population, len(pop))
	copy(next, pop)

	for _, child := range offspring {
		next = append(next, child)
		fronts, err := dominance.Sort(next, s.cmp)
		if err != nil {
			return nil, err
		}
		worst := fronts[len(fronts)-1]

		var victim *framework.Individual
		if len(worst) == 1 {
			victim = worst[0]
		} else {
			victim, err = s.minContributor(worst)
			if err != nil {
				return nil, err
			}
		}
		next = next.Without(victim)
	}

	return next, s.fitnessAssignment(next)
}

func (s *SMSEMOA) minContributor(front framework.Population) (*framework.Individual, error) {
	clones, err := normalizedMaxClones(front, s.objs, framework.ScaleOptions{})
	if err != nil {
		return nil, err
	}
	points := make([]framework.FitnessVector, len(clones))
	for i, c := range clones {
		points[i] = c.Fitness
	}
	contrib, err := hypervolume.Contributions(points, 1, originRef(len(s.objs)))
	if err != nil {
		return nil, err
	}
	worst := 0
	for i := range front {
		if contrib[i] < contrib[worst] {
			worst = i
		}
	}
	return front[worst], nil
}

func (s *SMSEMOA) UpdateArchive(_ *framework.StrategyContext, _, _, archive framework.Population) (framework.Population, error) {
	return archive, nil
}
