package strategies

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/kdis-lab/moea-go/pkg/multiobjective/dominance"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/reference"
)

const RVEAName = "RVEA"

// RVEAConfig configures RVEA.
type RVEAConfig struct {
	// Divisions is the Das-Dennis division count for the initial vector set.
	Divisions int
	// Alpha controls how fast the angle-penalty grows over the run.
	Alpha float64
	// Fr is the fraction of the run between vector renormalizations, within
	// [0,1]. 0 disables adaptation.
	Fr float64
}

// RVEA partitions the population among unit reference vectors and keeps, per
// vector, the member with the smallest angle-penalized distance. The vector
// set is periodically rescaled to the population's objective ranges, the
// strategy's only mutable state besides its ideal point.
type RVEA struct {
	cfg  RVEAConfig
	objs []framework.Objective
	cmp  *dominance.ParetoComparator

	// base holds the pristine simplex vectors; vectors is the working,
	// renormalized set.
	base    [][]float64
	vectors [][]float64
	// minAngle[v] is the angle from vector v to its closest peer.
	minAngle []float64
	ideal    framework.FitnessVector
	// lastPop feeds the next renormalization checkpoint.
	lastPop framework.Population
}

var _ framework.Strategy = &RVEA{}
var _ framework.ComparatorProvider = &RVEA{}
var _ framework.ReferenceVectorProvider = &RVEA{}

func NewRVEA(cfg RVEAConfig, objs []framework.Objective) (*RVEA, error) {
	if err := requireUniform(RVEAName, objs); err != nil {
		return nil, err
	}
	if cfg.Divisions < 1 {
		return nil, framework.Configf("divisions", "must be positive, got %d", cfg.Divisions)
	}
	if cfg.Alpha <= 0 {
		return nil, framework.Configf("alpha", "penalty exponent must be positive, got %v", cfg.Alpha)
	}
	if cfg.Fr < 0 || cfg.Fr > 1 {
		return nil, framework.Configf("fr", "renormalization fraction must be within [0,1], got %v", cfg.Fr)
	}
	simplex, err := reference.DasDennis(cfg.Divisions, len(objs))
	if err != nil {
		return nil, err
	}
	s := &RVEA{cfg: cfg, objs: objs, cmp: dominance.NewParetoComparator(objs), base: simplex}
	s.vectors = unitVectors(simplex)
	s.refreshMinAngles()
	return s, nil
}

func (s *RVEA) Name() string { return RVEAName }

func (s *RVEA) Comparator() framework.Comparator { return s.cmp }

func (s *RVEA) ReferenceVectors() [][]float64 { return s.vectors }

// unitVectors rescales every vector to unit Euclidean length.
func unitVectors(vs [][]float64) [][]float64 {
	out := make([][]float64, len(vs))
	for i, v := range vs {
		u := make([]float64, len(v))
		copy(u, v)
		if n := floats.Norm(u, 2); n > 0 {
			floats.Scale(1/n, u)
		}
		out[i] = u
	}
	return out
}

func (s *RVEA) refreshMinAngles() {
	s.minAngle = make([]float64, len(s.vectors))
	for i := range s.vectors {
		s.minAngle[i] = math.Pi
		for j := range s.vectors {
			if i == j {
				continue
			}
			if a := angle(s.vectors[i], s.vectors[j]); a < s.minAngle[i] {
				s.minAngle[i] = a
			}
		}
	}
}

func angle(a, b []float64) float64 {
	cos := floats.Dot(a, b)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}

func (s *RVEA) Initialize(ctx *framework.StrategyContext, pop framework.Population) (framework.Population, error) {
	s.ideal = idealPoint(pop, s.objs)
	s.lastPop = pop
	return nil, nil
}

// Update renormalizes the vectors to the population's current objective
// spread at every Fr-spaced checkpoint of the run.
func (s *RVEA) Update(ctx *framework.StrategyContext) error {
	if s.cfg.Fr == 0 || ctx.MaxGenerations == 0 || len(s.lastPop) == 0 {
		return nil
	}
	period := int(s.cfg.Fr * float64(ctx.MaxGenerations))
	if period < 1 {
		period = 1
	}
	if ctx.Generation%period != 0 {
		return nil
	}
	span := make([]float64, len(s.objs))
	for j := range s.objs {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, ind := range s.lastPop {
			v := ind.Fitness[j]
			if s.objs[j].Direction == framework.Maximize {
				v = -v
			}
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		span[j] = hi - lo
		if span[j] == 0 {
			span[j] = 1
		}
	}
	scaled := make([][]float64, len(s.base))
	for i, v := range s.base {
		w := make([]float64, len(v))
		for j := range v {
			w[j] = v[j] * span[j]
		}
		scaled[i] = w
	}
	s.vectors = unitVectors(scaled)
	s.refreshMinAngles()
	return nil
}

func (s *RVEA) MatingSelection(ctx *framework.StrategyContext, pop, _ framework.Population) (framework.Population, error) {
	if len(pop) < 2 {
		return nil, &framework.DegenerateInputError{Op: "RVEA mating selection", Want: 2, Got: len(pop)}
	}
	// RVEA mates uniformly; all pressure sits in environmental selection.
	parents := make(framework.Population, ctx.PopulationSize)
	for i := range parents {
		parents[i] = pop[ctx.Rand.IntN(len(pop))]
	}
	return parents, nil
}

// EnvironmentalSelection associates every member with its smallest-angle
// vector and keeps, per vector, the one with the smallest angle-penalized
// distance. Vectors with no associates contribute no survivor.
func (s *RVEA) EnvironmentalSelection(ctx *framework.StrategyContext, pop, offspring, _ framework.Population) (framework.Population, error) {
	combined := make(framework.Population, 0, len(pop)+len(offspring))
	combined = append(combined, pop...)
	combined = append(combined, offspring...)

	for _, ind := range combined {
		v := minView(ind.Fitness, s.objs)
		for j := range s.ideal {
			if v[j] < s.ideal[j] {
				s.ideal[j] = v[j]
			}
		}
	}

	// Translate by the ideal point so every vector points into the
	// population's own quadrant.
	translated := make([][]float64, len(combined))
	for i, ind := range combined {
		t := minView(ind.Fitness, s.objs)
		floats.Sub(t, s.ideal)
		translated[i] = t
	}

	assigned := make([][]int, len(s.vectors))
	angles := make([]float64, len(combined))
	for i, t := range translated {
		if floats.Norm(t, 2) == 0 {
			// Sits on the ideal point; attach it to the first vector.
			assigned[0] = append(assigned[0], i)
			continue
		}
		u := make([]float64, len(t))
		copy(u, t)
		floats.Scale(1/floats.Norm(u, 2), u)
		best, bestAngle := 0, math.Inf(1)
		for v := range s.vectors {
			if a := angle(u, s.vectors[v]); a < bestAngle {
				best, bestAngle = v, a
			}
		}
		assigned[best] = append(assigned[best], i)
		angles[i] = bestAngle
	}

	progress := 0.0
	if ctx.MaxGenerations > 0 {
		progress = float64(ctx.Generation) / float64(ctx.MaxGenerations)
	}
	penaltyScale := float64(len(s.objs)) * math.Pow(progress, s.cfg.Alpha)

	next := make(framework.Population, 0, len(s.vectors))
	for v, members := range assigned {
		if len(members) == 0 {
			continue
		}
		best, bestAPD := -1, math.Inf(1)
		for _, i := range members {
			gamma := s.minAngle[v]
			if gamma == 0 {
				gamma = 1e-64
			}
			apd := (1 + penaltyScale*angles[i]/gamma) * floats.Norm(translated[i], 2)
			if apd < bestAPD {
				best, bestAPD = i, apd
			}
		}
		next = append(next, combined[best])
	}
	s.lastPop = next
	return next, nil
}

func (s *RVEA) UpdateArchive(_ *framework.StrategyContext, _, _, archive framework.Population) (framework.Population, error) {
	return archive, nil
}
