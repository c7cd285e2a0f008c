package strategies

import (
	"math"
	"sort"

	"github.com/kdis-lab/moea-go/pkg/multiobjective/dominance"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
)

const SPEA2Name = "SPEA2"

// SPEA2Config configures SPEA2.
type SPEA2Config struct {
	// ArchiveSize bounds the external archive; 0 means the population size.
	ArchiveSize int
}

// SPEA2 assigns strength/raw/kNN-density fitness on the merged population
// and archive. The archive replaces the population each generation; oversize
// archives drop the member closest to its k-th nearest neighbour until the
// bound holds.
type SPEA2 struct {
	cfg  SPEA2Config
	objs []framework.Objective
	cmp  *dominance.ParetoComparator

	fitness map[*framework.Individual]float64
}

var _ framework.Strategy = &SPEA2{}
var _ framework.ComparatorProvider = &SPEA2{}

func NewSPEA2(cfg SPEA2Config, objs []framework.Objective) (*SPEA2, error) {
	if len(objs) < 2 {
		return nil, framework.Configf("objectives", "SPEA2 needs at least 2 objectives, got %d", len(objs))
	}
	if cfg.ArchiveSize < 0 {
		return nil, framework.Configf("archive-size", "must not be negative, got %d", cfg.ArchiveSize)
	}
	return &SPEA2{cfg: cfg, objs: objs, cmp: dominance.NewParetoComparator(objs)}, nil
}

func (s *SPEA2) Name() string { return SPEA2Name }

func (s *SPEA2) Comparator() framework.Comparator { return s.cmp }

func (s *SPEA2) archiveSize(ctx *framework.StrategyContext) int {
	if s.cfg.ArchiveSize > 0 {
		return s.cfg.ArchiveSize
	}
	return ctx.PopulationSize
}

// fitnessAssignment computes F = R + D over the merged set: strength S is
// the number of individuals one dominates, raw fitness R the summed strength
// of one's dominators and density D is derived from the distance to the
// sqrt(N)-th nearest neighbour.
func (s *SPEA2) fitnessAssignment(union framework.Population) error {
	n := len(union)
	strength := make([]int, n)
	dominatedBy := make([][]int, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			rel, err := dominance.ConstrainedCompare(union[i], union[j], s.cmp)
			if err != nil {
				return err
			}
			switch rel {
			case framework.Dominating:
				strength[i]++
				dominatedBy[j] = append(dominatedBy[j], i)
			case framework.Dominated:
				strength[j]++
				dominatedBy[i] = append(dominatedBy[i], j)
			}
		}
	}

	k := int(math.Sqrt(float64(n)))
	if k < 1 {
		k = 1
	}
	s.fitness = make(map[*framework.Individual]float64, n)
	for i := 0; i < n; i++ {
		raw := 0.0
		for _, d := range dominatedBy[i] {
			raw += float64(strength[d])
		}
		dists := make([]float64, 0, n-1)
		for j := 0; j < n; j++ {
			if i != j {
				dists = append(dists, euclid(union[i].Fitness, union[j].Fitness))
			}
		}
		sort.Float64s(dists)
		sigma := 0.0
		if len(dists) > 0 {
			// dists excludes self, so the k-th nearest neighbour sits at
			// index k-1.
			idx := k - 1
			if idx >= len(dists) {
				idx = len(dists) - 1
			}
			sigma = dists[idx]
		}
		s.fitness[union[i]] = raw + 1.0/(sigma+2.0)
	}
	return nil
}

func (s *SPEA2) Initialize(ctx *framework.StrategyContext, pop framework.Population) (framework.Population, error) {
	if err := s.fitnessAssignment(pop); err != nil {
		return nil, err
	}
	return s.selectArchive(ctx, pop)
}

func (s *SPEA2) Update(*framework.StrategyContext) error { return nil }

func (s *SPEA2) MatingSelection(ctx *framework.StrategyContext, pop, archive framework.Population) (framework.Population, error) {
	pool := archive
	if len(pool) < 2 {
		pool = pop
	}
	if len(pool) < 2 {
		return nil, &framework.DegenerateInputError{Op: "SPEA2 mating selection", Want: 2, Got: len(pool)}
	}
	return tournamentParents(pool, ctx.PopulationSize, ctx.Rand, func(a, b *framework.Individual) bool {
		return s.fitness[a] < s.fitness[b]
	}), nil
}

// EnvironmentalSelection: the offspring become the next population; SPEA2's
// elitism lives entirely in the archive.
func (s *SPEA2) EnvironmentalSelection(ctx *framework.StrategyContext, pop, offspring, _ framework.Population) (framework.Population, error) {
	next := make(framework.Population, 0, ctx.PopulationSize)
	next = append(next, offspring...)
	for i := 0; len(next) < ctx.PopulationSize && i < len(pop); i++ {
		next = append(next, pop[i])
	}
	if len(next) > ctx.PopulationSize {
		next = next[:ctx.PopulationSize]
	}
	return next, nil
}

func (s *SPEA2) UpdateArchive(ctx *framework.StrategyContext, pop, offspring, archive framework.Population) (framework.Population, error) {
	union := make(framework.Population, 0, len(pop)+len(offspring)+len(archive))
	union = append(union, archive...)
	union = append(union, pop...)
	union = append(union, offspring...)
	union = dedupe(union)

	if err := s.fitnessAssignment(union); err != nil {
		return nil, err
	}
	return s.selectArchive(ctx, union)
}

// selectArchive keeps the non-dominated members (F < 1), fills a shortfall
// with the best dominated ones and truncates an excess by iteratively
// dropping the individual closest to its nearest neighbours.
func (s *SPEA2) selectArchive(ctx *framework.StrategyContext, union framework.Population) (framework.Population, error) {
	size := s.archiveSize(ctx)

	next := make(framework.Population, 0, size)
	for _, ind := range union {
		if s.fitness[ind] < 1 {
			next = append(next, ind)
		}
	}

	if len(next) < size {
		rest := make(framework.Population, 0, len(union)-len(next))
		for _, ind := range union {
			if s.fitness[ind] >= 1 {
				rest = append(rest, ind)
			}
		}
		rest.SortBy(func(a, b *framework.Individual) bool {
			return s.fitness[a] < s.fitness[b]
		})
		need := size - len(next)
		if need > len(rest) {
			need = len(rest)
		}
		next = append(next, rest[:need]...)
		return next, nil
	}

	for len(next) > size {
		drop := s.closestByKNN(next)
		next = next.Without(drop)
	}
	return next, nil
}

// closestByKNN returns the member whose sorted neighbour-distance list is
// lexicographically smallest, the SPEA2 truncation criterion.
func (s *SPEA2) closestByKNN(pop framework.Population) *framework.Individual {
	n := len(pop)
	dists := make([][]float64, n)
	for i := 0; i < n; i++ {
		dists[i] = make([]float64, 0, n-1)
		for j := 0; j < n; j++ {
			if i != j {
				dists[i] = append(dists[i], euclid(pop[i].Fitness, pop[j].Fitness))
			}
		}
		sort.Float64s(dists[i])
	}
	worst := 0
	for i := 1; i < n; i++ {
		if lexLess(dists[i], dists[worst]) {
			worst = i
		}
	}
	return pop[worst]
}

func lexLess(a, b []float64) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// dedupe removes repeated pointers while preserving order; the archive and
// population may share members between generations.
func dedupe(pop framework.Population) framework.Population {
	seen := make(map[*framework.Individual]bool, len(pop))
	out := make(framework.Population, 0, len(pop))
	for _, ind := range pop {
		if !seen[ind] {
			seen[ind] = true
			out = append(out, ind)
		}
	}
	return out
}
