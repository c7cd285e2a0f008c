package strategies

import (
	"sort"

	"github.com/kdis-lab/moea-go/pkg/multiobjective/dominance"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/reference"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/scalarize"
)

const MOEADName = "MOEA/D"

// MOEADConfig configures MOEA/D.
type MOEADConfig struct {
	// T is the neighbourhood size of each subproblem.
	T int
	// Nr bounds how many neighbours one offspring may replace.
	Nr int
	// H is the uniform weight-vector division count; the subproblem count
	// is the number of vectors it yields and must equal the population size.
	H int
	// ExternalArchive keeps a Pareto-updated external population.
	ExternalArchive bool
	// Scalarizer collapses a fitness vector per subproblem; nil means
	// Tchebycheff.
	Scalarizer scalarize.Func
}

// MOEAD decomposes the problem into scalar subproblems along uniform weight
// vectors connected by a T-nearest-neighbour graph. The evolving ideal point
// is the strategy's only mutable state beyond its side tables.
type MOEAD struct {
	cfg     MOEADConfig
	objs    []framework.Objective
	cmp     *dominance.ParetoComparator
	weights [][]float64
	// neighbors[i] lists the subproblems with the T closest weight vectors,
	// self included.
	neighbors [][]int

	scalar scalarize.Func
	ideal  framework.FitnessVector
}

var _ framework.Strategy = &MOEAD{}
var _ framework.ComparatorProvider = &MOEAD{}
var _ framework.ReferenceVectorProvider = &MOEAD{}

func NewMOEAD(cfg MOEADConfig, objs []framework.Objective) (*MOEAD, error) {
	if err := requireUniform(MOEADName, objs); err != nil {
		return nil, err
	}
	weights, err := reference.UniformWeights(cfg.H, len(objs))
	if err != nil {
		return nil, err
	}
	if cfg.T < 2 || cfg.T > len(weights) {
		return nil, framework.Configf("t", "neighbourhood size must be within [2,%d], got %d", len(weights), cfg.T)
	}
	if cfg.Nr < 1 {
		return nil, framework.Configf("nr", "replacement bound must be positive, got %d", cfg.Nr)
	}
	s := &MOEAD{cfg: cfg, objs: objs, cmp: dominance.NewParetoComparator(objs), weights: weights}
	s.scalar = cfg.Scalarizer
	if s.scalar == nil {
		s.scalar = scalarize.Tchebycheff
	}
	s.buildNeighborhood()
	return s, nil
}

func (s *MOEAD) Name() string { return MOEADName }

func (s *MOEAD) Comparator() framework.Comparator { return s.cmp }

// ReferenceVectors exposes the subproblem weight vectors.
func (s *MOEAD) ReferenceVectors() [][]float64 { return s.weights }

// IdealPoint exposes the evolving ideal point, in minimization view.
func (s *MOEAD) IdealPoint() framework.FitnessVector { return s.ideal }

func (s *MOEAD) buildNeighborhood() {
	n := len(s.weights)
	s.neighbors = make([][]int, n)
	for i := 0; i < n; i++ {
		order := make([]int, n)
		for j := range order {
			order[j] = j
		}
		sort.SliceStable(order, func(a, b int) bool {
			return euclid(s.weights[i], s.weights[order[a]]) < euclid(s.weights[i], s.weights[order[b]])
		})
		s.neighbors[i] = order[:s.cfg.T]
	}
}

func (s *MOEAD) updateIdeal(f framework.FitnessVector) {
	v := minView(f, s.objs)
	if s.ideal == nil {
		s.ideal = v
		return
	}
	for j := range s.ideal {
		if v[j] < s.ideal[j] {
			s.ideal[j] = v[j]
		}
	}
}

func (s *MOEAD) Initialize(ctx *framework.StrategyContext, pop framework.Population) (framework.Population, error) {
	if len(pop) != len(s.weights) {
		return nil, framework.Configf("h",
			"H=%d yields %d subproblems but the population holds %d individuals", s.cfg.H, len(s.weights), len(pop))
	}
	for _, ind := range pop {
		s.updateIdeal(ind.Fitness)
	}
	if !s.cfg.ExternalArchive {
		return nil, nil
	}
	return dominance.NonDominated(pop, s.cmp)
}

func (s *MOEAD) Update(*framework.StrategyContext) error { return nil }

// MatingSelection draws both parents of subproblem i from its neighbourhood;
// offspring k is folded back through the neighbourhood of subproblem k.
func (s *MOEAD) MatingSelection(ctx *framework.StrategyContext, pop, _ framework.Population) (framework.Population, error) {
	if len(pop) != len(s.weights) {
		return nil, &framework.DegenerateInputError{Op: "MOEA/D mating selection", Want: len(s.weights), Got: len(pop)}
	}
	parents := make(framework.Population, 0, 2*len(s.weights))
	for i := range s.weights {
		b := s.neighbors[i]
		parents = append(parents,
			pop[b[ctx.Rand.IntN(len(b))]],
			pop[b[ctx.Rand.IntN(len(b))]])
	}
	return parents, nil
}

// EnvironmentalSelection folds every offspring into the neighbourhood of its
// subproblem, replacing at most Nr neighbours whose scalarized value it
// improves. The caller's population is not mutated.
func (s *MOEAD) EnvironmentalSelection(ctx *framework.StrategyContext, pop, offspring, _ framework.Population) (framework.Population, error) {
	next := make(framework.Population, len(pop))
	copy(next, pop)

	for k, child := range offspring {
		s.updateIdeal(child.Fitness)
		sub := k % len(s.weights)

		order := make([]int, len(s.neighbors[sub]))
		copy(order, s.neighbors[sub])
		ctx.Rand.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		childView := minView(child.Fitness, s.objs)
		replaced := 0
		for _, j := range order {
			if replaced >= s.cfg.Nr {
				break
			}
			childVal, err := s.scalar(childView, s.ideal, s.weights[j])
			if err != nil {
				return nil, err
			}
			curVal, err := s.scalar(minView(next[j].Fitness, s.objs), s.ideal, s.weights[j])
			if err != nil {
				return nil, err
			}
			if childVal < curVal {
				next[j] = child
				replaced++
			}
		}
	}
	return next, nil
}

// UpdateArchive Pareto-updates the optional external population.
func (s *MOEAD) UpdateArchive(_ *framework.StrategyContext, _, offspring, archive framework.Population) (framework.Population, error) {
	if !s.cfg.ExternalArchive {
		return archive, nil
	}
	union := make(framework.Population, 0, len(archive)+len(offspring))
	union = append(union, archive...)
	union = append(union, offspring...)
	return dominance.NonDominated(dedupe(union), s.cmp)
}
