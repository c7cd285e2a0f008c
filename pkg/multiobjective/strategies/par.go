package strategies

import (
	"math"

	"github.com/kdis-lab/moea-go/pkg/multiobjective/dominance"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/reference"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/scalarize"
)

const PARName = "PAR"

// PARConfig configures the preference-articulated ranking strategy.
type PARConfig struct {
	// Divisions is the Das-Dennis division count used when UserPoints is
	// empty.
	Divisions int
	// UserPoints supplies explicit reference points.
	UserPoints [][]float64
}

// PAR biases NSGA-II-style ranking toward a reference point set: within a
// front, individuals are ordered by their smallest achievement scalarizing
// value across the reference points, so survivors cluster around the
// preferred directions instead of spreading by crowding.
type PAR struct {
	cfg    PARConfig
	objs   []framework.Objective
	cmp    *dominance.ParetoComparator
	points [][]float64

	rank map[*framework.Individual]int
	asf  map[*framework.Individual]float64
}

var _ framework.Strategy = &PAR{}
var _ framework.ComparatorProvider = &PAR{}
var _ framework.ReferencePointProvider = &PAR{}

func NewPAR(cfg PARConfig, objs []framework.Objective) (*PAR, error) {
	if err := requireUniform(PARName, objs); err != nil {
		return nil, err
	}
	points := cfg.UserPoints
	if len(points) == 0 {
		if cfg.Divisions < 1 {
			return nil, framework.Configf("divisions", "must be positive, got %d", cfg.Divisions)
		}
		generated, err := reference.DasDennis(cfg.Divisions, len(objs))
		if err != nil {
			return nil, err
		}
		points = generated
	}
	for i, p := range points {
		if len(p) != len(objs) {
			return nil, framework.Configf("reference-points",
				"point %d has %d coordinates, expected %d", i, len(p), len(objs))
		}
	}
	return &PAR{cfg: cfg, objs: objs, cmp: dominance.NewParetoComparator(objs), points: points}, nil
}

func (s *PAR) Name() string { return PARName }

func (s *PAR) Comparator() framework.Comparator { return s.cmp }

func (s *PAR) ReferencePoints() [][]float64 { return s.points }

// fitnessAssignment rebuilds the rank and best-ASF side tables. The ASF is
// anchored at the population's ideal point; each reference point doubles as
// the weight vector of its own scalarization.
func (s *PAR) fitnessAssignment(pop framework.Population) error {
	fronts, err := dominance.Sort(pop, s.cmp)
	if err != nil {
		return err
	}
	s.rank = dominance.Ranks(fronts)

	ideal := idealPoint(pop, s.objs)
	s.asf = make(map[*framework.Individual]float64, len(pop))
	for _, ind := range pop {
		view := minView(ind.Fitness, s.objs)
		best := math.Inf(1)
		for _, p := range s.points {
			v, err := scalarize.ASF(view, ideal, p)
			if err != nil {
				return err
			}
			if v < best {
				best = v
			}
		}
		s.asf[ind] = best
	}
	return nil
}

func (s *PAR) better(a, b *framework.Individual) bool {
	if s.rank[a] != s.rank[b] {
		return s.rank[a] < s.rank[b]
	}
	return s.asf[a] < s.asf[b]
}

func (s *PAR) Initialize(_ *framework.StrategyContext, pop framework.Population) (framework.Population, error) {
	return nil, s.fitnessAssignment(pop)
}

func (s *PAR) Update(*framework.StrategyContext) error { return nil }

func (s *PAR) MatingSelection(ctx *framework.StrategyContext, pop, _ framework.Population) (framework.Population, error) {
	if len(pop) < 2 {
		return nil, &framework.DegenerateInputError{Op: "PAR mating selection", Want: 2, Got: len(pop)}
	}
	return tournamentParents(pop, ctx.PopulationSize, ctx.Rand, s.better), nil
}

func (s *PAR) EnvironmentalSelection(ctx *framework.StrategyContext, pop, offspring, _ framework.Population) (framework.Population, error) {
	combined := make(framework.Population, 0, len(pop)+len(offspring))
	combined = append(combined, pop...)
	combined = append(combined, offspring...)
	if err := s.fitnessAssignment(combined); err != nil {
		return nil, err
	}

	sorted := make(framework.Population, len(combined))
	copy(sorted, combined)
	sorted.SortBy(s.better)
	next := sorted[:min(ctx.PopulationSize, len(sorted))]

	return next, s.fitnessAssignment(next)
}

func (s *PAR) UpdateArchive(_ *framework.StrategyContext, _, _, archive framework.Population) (framework.Population, error) {
	return archive, nil
}
