package strategies

import (
	"math"

	"github.com/kdis-lab/moea-go/pkg/multiobjective/dominance"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/hypervolume"
)

const IBEAName = "IBEA"

// IBEAIndicator selects the pairwise quality indicator variant.
type IBEAIndicator string

const (
	// IndicatorEpsilon is the additive epsilon indicator.
	IndicatorEpsilon IBEAIndicator = "epsilon"
	// IndicatorHypervolume is the volume dominated by one point but not the
	// other.
	IndicatorHypervolume IBEAIndicator = "hypervolume"
)

// IBEAConfig configures IBEA and its indicator variants.
type IBEAConfig struct {
	// Kappa scales the exponential fitness amplification.
	Kappa float64
	// Indicator picks the pairwise indicator; empty means epsilon.
	Indicator IBEAIndicator
}

// IBEA scores every individual by the aggregated indicator losses the rest
// of the population would suffer without it, and truncates by iteratively
// dropping the worst-scored member, rescoring after each drop.
type IBEA struct {
	cfg  IBEAConfig
	objs []framework.Objective
	cmp  *dominance.ParetoComparator

	fitness map[*framework.Individual]float64
}

var _ framework.Strategy = &IBEA{}
var _ framework.ComparatorProvider = &IBEA{}

func NewIBEA(cfg IBEAConfig, objs []framework.Objective) (*IBEA, error) {
	if err := requireUniform(IBEAName, objs); err != nil {
		return nil, err
	}
	if cfg.Kappa <= 0 {
		return nil, framework.Configf("k", "fitness scaling factor must be positive, got %v", cfg.Kappa)
	}
	switch cfg.Indicator {
	case "", IndicatorEpsilon, IndicatorHypervolume:
	default:
		return nil, framework.Configf("indicator", "unknown indicator %q", cfg.Indicator)
	}
	return &IBEA{cfg: cfg, objs: objs, cmp: dominance.NewParetoComparator(objs)}, nil
}

func (s *IBEA) Name() string {
	if s.cfg.Indicator == IndicatorHypervolume {
		return IBEAName + "-HV"
	}
	return IBEAName + "-eps"
}

func (s *IBEA) Comparator() framework.Comparator { return s.cmp }

// indicator computes I(a,b) on normalized maximization vectors: the loss b
// inflicts on a.
func (s *IBEA) indicator(a, b framework.FitnessVector) (float64, error) {
	if s.cfg.Indicator == IndicatorHypervolume {
		return hypervolume.Indicator(a, b)
	}
	// Additive epsilon: the smallest shift after which a weakly dominates b.
	eps := math.Inf(-1)
	for j := range a {
		if v := b[j] - a[j]; v > eps {
			eps = v
		}
	}
	return eps, nil
}

// indicatorMatrix scores all ordered pairs over normalized clones and
// returns the matrix plus its largest absolute value.
func (s *IBEA) indicatorMatrix(pop framework.Population) ([][]float64, float64, error) {
	clones, err := normalizedMaxClones(pop, s.objs, framework.ScaleOptions{})
	if err != nil {
		return nil, 0, err
	}
	n := len(clones)
	m := make([][]float64, n)
	maxAbs := 0.0
	for i := 0; i < n; i++ {
		m[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			v, err := s.indicator(clones[i].Fitness, clones[j].Fitness)
			if err != nil {
				return nil, 0, err
			}
			m[i][j] = v
			if a := math.Abs(v); a > maxAbs {
				maxAbs = a
			}
		}
	}
	if maxAbs == 0 {
		maxAbs = 1
	}
	return m, maxAbs, nil
}

func (s *IBEA) fitnessAssignment(pop framework.Population) ([][]float64, float64, error) {
	m, c, err := s.indicatorMatrix(pop)
	if err != nil {
		return nil, 0, err
	}
	s.fitness = make(map[*framework.Individual]float64, len(pop))
	for i, ind := range pop {
		f := 0.0
		for j := range pop {
			if i != j {
				f -= math.Exp(-m[j][i] / (c * s.cfg.Kappa))
			}
		}
		s.fitness[ind] = f
	}
	return m, c, nil
}

func (s *IBEA) Initialize(_ *framework.StrategyContext, pop framework.Population) (framework.Population, error) {
	_, _, err := s.fitnessAssignment(pop)
	return nil, err
}

func (s *IBEA) Update(*framework.StrategyContext) error { return nil }

func (s *IBEA) MatingSelection(ctx *framework.StrategyContext, pop, _ framework.Population) (framework.Population, error) {
	if len(pop) < 2 {
		return nil, &framework.DegenerateInputError{Op: "IBEA mating selection", Want: 2, Got: len(pop)}
	}
	return tournamentParents(pop, ctx.PopulationSize, ctx.Rand, func(a, b *framework.Individual) bool {
		return s.fitness[a] > s.fitness[b]
	}), nil
}

// EnvironmentalSelection merges parents and offspring, then iteratively
// drops the worst-scored member, adding back each survivor's share of the
// removed indicator term before the next drop.
func (s *IBEA) EnvironmentalSelection(ctx *framework.StrategyContext, pop, offspring, _ framework.Population) (framework.Population, error) {
	combined := make(framework.Population, 0, len(pop)+len(offspring))
	combined = append(combined, pop...)
	combined = append(combined, offspring...)

	m, c, err := s.fitnessAssignment(combined)
	if err != nil {
		return nil, err
	}

	alive := make([]bool, len(combined))
	for i := range alive {
		alive[i] = true
	}
	remaining := len(combined)

	for remaining > ctx.PopulationSize {
		worst := -1
		for i, ind := range combined {
			if !alive[i] {
				continue
			}
			if worst == -1 || s.fitness[ind] < s.fitness[combined[worst]] {
				worst = i
			}
		}
		alive[worst] = false
		remaining--
		for i, ind := range combined {
			if alive[i] {
				s.fitness[ind] += math.Exp(-m[worst][i] / (c * s.cfg.Kappa))
			}
		}
	}

	next := make(framework.Population, 0, ctx.PopulationSize)
	for i, ind := range combined {
		if alive[i] {
			next = append(next, ind)
		}
	}
	return next, nil
}

func (s *IBEA) UpdateArchive(_ *framework.StrategyContext, _, _, archive framework.Population) (framework.Population, error) {
	return archive, nil
}
