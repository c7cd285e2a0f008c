package strategies

import (
	"k8s.io/klog/v2"

	"github.com/kdis-lab/moea-go/pkg/multiobjective/diversity"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/dominance"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
)

const MOCHCName = "MOCHC"

// MOCHCConfig configures MOCHC.
type MOCHCConfig struct {
	// InitialThreshold is the starting incest-prevention distance; 0 derives
	// chromosomeLength/4 from the first binary genotype seen.
	InitialThreshold int
	// PreservedFraction of the population survives a cataclysmic restart
	// untouched. Defaults to 0.05.
	PreservedFraction float64
	// RestartMutationRate is the bit-flip rate applied to the refilled part
	// of the population on restart. Defaults to 0.35.
	RestartMutationRate float64
}

// MOCHC is the multi-objective CHC variant over binary genotypes. Mating is
// incest-prevented: a pair only recombines while their Hamming distance
// exceeds an adaptive threshold. When a generation produces no survivors the
// threshold shrinks, and once it drops below zero the population is
// cataclysmically restarted from its best members.
type MOCHC struct {
	cfg  MOCHCConfig
	objs []framework.Objective
	cmp  *dominance.ParetoComparator

	rank  map[*framework.Individual]int
	crowd map[*framework.Individual]float64

	threshold  int
	stalled    bool
	restartDue bool
}

var _ framework.Strategy = &MOCHC{}
var _ framework.ComparatorProvider = &MOCHC{}

func NewMOCHC(cfg MOCHCConfig, objs []framework.Objective) (*MOCHC, error) {
	if len(objs) < 2 {
		return nil, framework.Configf("objectives", "MOCHC needs at least 2 objectives, got %d", len(objs))
	}
	if cfg.InitialThreshold < 0 {
		return nil, framework.Configf("initial-threshold", "must not be negative, got %d", cfg.InitialThreshold)
	}
	if cfg.PreservedFraction < 0 || cfg.PreservedFraction > 1 {
		return nil, framework.Configf("preserved-fraction", "must be within [0,1], got %v", cfg.PreservedFraction)
	}
	if cfg.PreservedFraction == 0 {
		cfg.PreservedFraction = 0.05
	}
	if cfg.RestartMutationRate < 0 || cfg.RestartMutationRate > 1 {
		return nil, framework.Configf("restart-mutation-rate", "must be within [0,1], got %v", cfg.RestartMutationRate)
	}
	if cfg.RestartMutationRate == 0 {
		cfg.RestartMutationRate = 0.35
	}
	return &MOCHC{cfg: cfg, objs: objs, cmp: dominance.NewParetoComparator(objs), threshold: cfg.InitialThreshold}, nil
}

func (s *MOCHC) Name() string { return MOCHCName }

func (s *MOCHC) Comparator() framework.Comparator { return s.cmp }

func (s *MOCHC) fitnessAssignment(pop framework.Population) error {
	fronts, err := dominance.Sort(pop, s.cmp)
	if err != nil {
		return err
	}
	s.rank = dominance.Ranks(fronts)
	s.crowd = make(map[*framework.Individual]float64, len(pop))
	for _, front := range fronts {
		dist, err := diversity.CrowdingDistance(front, s.objs)
		if err != nil {
			return err
		}
		for ind, d := range dist {
			s.crowd[ind] = d
		}
	}
	return nil
}

func (s *MOCHC) crowdedBetter(a, b *framework.Individual) bool {
	if s.rank[a] != s.rank[b] {
		return s.rank[a] < s.rank[b]
	}
	return s.crowd[a] > s.crowd[b]
}

// genotype extracts the binary encoding MOCHC requires.
func genotype(ind *framework.Individual) (*framework.BinarySolution, error) {
	bits, ok := ind.Solution.(*framework.BinarySolution)
	if !ok {
		return nil, framework.Configf("encoding", "MOCHC requires binary genotypes")
	}
	return bits, nil
}

func (s *MOCHC) Initialize(_ *framework.StrategyContext, pop framework.Population) (framework.Population, error) {
	if len(pop) > 0 && s.threshold == 0 {
		bits, err := genotype(pop[0])
		if err != nil {
			return nil, err
		}
		s.threshold = len(bits.Bits) / 4
	}
	return nil, s.fitnessAssignment(pop)
}

// Update adapts the incest threshold: a stalled generation shrinks it, and
// crossing zero schedules a cataclysmic restart.
func (s *MOCHC) Update(*framework.StrategyContext) error {
	if !s.stalled {
		return nil
	}
	s.stalled = false
	s.threshold--
	if s.threshold < 0 {
		s.restartDue = true
		klog.V(4).InfoS("Convergence threshold exhausted, scheduling cataclysmic restart")
	}
	return nil
}

// MatingSelection pairs random parents and keeps only incest-safe pairs:
// half the Hamming distance must exceed the current threshold.
func (s *MOCHC) MatingSelection(ctx *framework.StrategyContext, pop, _ framework.Population) (framework.Population, error) {
	if len(pop) < 2 {
		return nil, &framework.DegenerateInputError{Op: "MOCHC mating selection", Want: 2, Got: len(pop)}
	}
	parents := make(framework.Population, 0, ctx.PopulationSize)
	attempts := 0
	for len(parents) < ctx.PopulationSize && attempts < 10*ctx.PopulationSize {
		attempts++
		a := pop[ctx.Rand.IntN(len(pop))]
		b := pop[ctx.Rand.IntN(len(pop))]
		if a == b {
			continue
		}
		ga, err := genotype(a)
		if err != nil {
			return nil, err
		}
		gb, err := genotype(b)
		if err != nil {
			return nil, err
		}
		if framework.HammingDistance(ga, gb)/2 > s.threshold {
			parents = append(parents, a, b)
		}
	}
	// A converged population may admit few or no pairs; the short pool
	// stalls the generation and Update decays the threshold.
	return parents, nil
}

// EnvironmentalSelection truncates the union by rank and crowding and flags a
// stall when no offspring survive. A due restart preserves the best slice and
// refills from heavily mutated copies of it.
func (s *MOCHC) EnvironmentalSelection(ctx *framework.StrategyContext, pop, offspring, _ framework.Population) (framework.Population, error) {
	if s.restartDue {
		return s.restart(ctx, pop)
	}

	combined := make(framework.Population, 0, len(pop)+len(offspring))
	combined = append(combined, pop...)
	combined = append(combined, offspring...)
	if err := s.fitnessAssignment(combined); err != nil {
		return nil, err
	}

	sorted := make(framework.Population, len(combined))
	copy(sorted, combined)
	sorted.SortBy(s.crowdedBetter)
	next := sorted[:min(ctx.PopulationSize, len(sorted))]

	survived := false
	for _, ind := range next {
		for _, child := range offspring {
			if ind == child {
				survived = true
				break
			}
		}
		if survived {
			break
		}
	}
	s.stalled = !survived

	return next, s.fitnessAssignment(next)
}

func (s *MOCHC) restart(ctx *framework.StrategyContext, pop framework.Population) (framework.Population, error) {
	s.restartDue = false
	if len(pop) > 0 {
		bits, err := genotype(pop[0])
		if err != nil {
			return nil, err
		}
		s.threshold = int(s.cfg.RestartMutationRate * (1 - s.cfg.RestartMutationRate) * float64(len(bits.Bits)))
	}

	if err := s.fitnessAssignment(pop); err != nil {
		return nil, err
	}
	sorted := make(framework.Population, len(pop))
	copy(sorted, pop)
	sorted.SortBy(s.crowdedBetter)

	keep := int(s.cfg.PreservedFraction * float64(len(sorted)))
	if keep < 1 {
		keep = 1
	}
	next := make(framework.Population, 0, len(sorted))
	next = append(next, sorted[:keep]...)
	for len(next) < len(sorted) {
		seed := sorted[ctx.Rand.IntN(keep)].Solution.Clone()
		seed.Mutate(s.cfg.RestartMutationRate, ctx.Rand)
		if ctx.Evaluate == nil {
			return nil, framework.Configf("evaluator", "MOCHC restart requires an evaluator in the strategy context")
		}
		next = append(next, ctx.Evaluate(seed))
	}
	klog.V(4).InfoS("Cataclysmic restart", "preserved", keep, "threshold", s.threshold)
	return next, s.fitnessAssignment(next)
}

func (s *MOCHC) UpdateArchive(_ *framework.StrategyContext, _, _, archive framework.Population) (framework.Population, error) {
	return archive, nil
}
