package strategies

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"k8s.io/klog/v2"

	"github.com/kdis-lab/moea-go/pkg/multiobjective/dominance"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/reference"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/scalarize"
)

const NSGA3Name = "NSGA-III"

// NSGA3Config configures NSGA-III. Reference points come from exactly one
// source: explicit UserPoints, a PointsFile, or Das-Dennis generation from
// P1 (and optionally an inner layer from P2).
type NSGA3Config struct {
	// P1 is the boundary-layer Das-Dennis division count.
	P1 int
	// P2 adds an inner simplex layer when positive.
	P2 int
	// UserPoints supplies explicit reference points instead of generating.
	UserPoints [][]float64
	// PointsFile loads reference points from a whitespace-separated file.
	PointsFile string
}

// NSGA3 replaces NSGA-II's crowding with reference-point niching: after the
// usual front fill, the critical front is consumed by repeatedly serving the
// reference point with the fewest survivors attached.
type NSGA3 struct {
	cfg    NSGA3Config
	objs   []framework.Objective
	cmp    *dominance.ParetoComparator
	points [][]float64

	rank map[*framework.Individual]int
}

var _ framework.Strategy = &NSGA3{}
var _ framework.ComparatorProvider = &NSGA3{}
var _ framework.ReferencePointProvider = &NSGA3{}

func NewNSGA3(cfg NSGA3Config, objs []framework.Objective) (*NSGA3, error) {
	if err := requireUniform(NSGA3Name, objs); err != nil {
		return nil, err
	}
	points, err := resolvePoints(cfg, len(objs))
	if err != nil {
		return nil, err
	}
	return &NSGA3{cfg: cfg, objs: objs, cmp: dominance.NewParetoComparator(objs), points: points}, nil
}

func resolvePoints(cfg NSGA3Config, dim int) ([][]float64, error) {
	switch {
	case len(cfg.UserPoints) > 0:
		for i, p := range cfg.UserPoints {
			if len(p) != dim {
				return nil, framework.Configf("reference-points",
					"point %d has %d coordinates, expected %d", i, len(p), dim)
			}
		}
		return cfg.UserPoints, nil
	case cfg.PointsFile != "":
		return reference.LoadPoints(cfg.PointsFile, dim)
	case cfg.P2 > 0:
		return reference.TwoLayer(cfg.P1, cfg.P2, dim)
	default:
		return reference.DasDennis(cfg.P1, dim)
	}
}

func (s *NSGA3) Name() string { return NSGA3Name }

func (s *NSGA3) Comparator() framework.Comparator { return s.cmp }

// ReferencePoints exposes the active reference point set.
func (s *NSGA3) ReferencePoints() [][]float64 { return s.points }

func (s *NSGA3) fitnessAssignment(pop framework.Population) error {
	fronts, err := dominance.Sort(pop, s.cmp)
	if err != nil {
		return err
	}
	s.rank = dominance.Ranks(fronts)
	return nil
}

func (s *NSGA3) Initialize(_ *framework.StrategyContext, pop framework.Population) (framework.Population, error) {
	return nil, s.fitnessAssignment(pop)
}

func (s *NSGA3) Update(*framework.StrategyContext) error { return nil }

func (s *NSGA3) MatingSelection(ctx *framework.StrategyContext, pop, _ framework.Population) (framework.Population, error) {
	if len(pop) < 2 {
		return nil, &framework.DegenerateInputError{Op: "NSGA-III mating selection", Want: 2, Got: len(pop)}
	}
	return tournamentParents(pop, ctx.PopulationSize, ctx.Rand, func(a, b *framework.Individual) bool {
		return s.rank[a] < s.rank[b]
	}), nil
}

func (s *NSGA3) EnvironmentalSelection(ctx *framework.StrategyContext, pop, offspring, _ framework.Population) (framework.Population, error) {
	combined := make(framework.Population, 0, len(pop)+len(offspring))
	combined = append(combined, pop...)
	combined = append(combined, offspring...)

	fronts, err := dominance.Sort(combined, s.cmp)
	if err != nil {
		return nil, err
	}

	next := make(framework.Population, 0, ctx.PopulationSize)
	var critical framework.Population
	for _, front := range fronts {
		if len(next)+len(front) <= ctx.PopulationSize {
			next = append(next, front...)
			if len(next) == ctx.PopulationSize {
				break
			}
			continue
		}
		critical = front
		break
	}

	if len(critical) > 0 {
		chosen, err := s.niche(ctx, next, critical, ctx.PopulationSize-len(next))
		if err != nil {
			return nil, err
		}
		next = append(next, chosen...)
	}

	return next, s.fitnessAssignment(next)
}

// niche normalizes the candidate set, associates everyone with the closest
// reference line and fills the remaining slots from the critical front by
// repeatedly serving the least-populated reference point.
func (s *NSGA3) niche(ctx *framework.StrategyContext, selected, critical framework.Population, want int) (framework.Population, error) {
	all := make(framework.Population, 0, len(selected)+len(critical))
	all = append(all, selected...)
	all = append(all, critical...)

	normalized, err := s.normalize(all)
	if err != nil {
		return nil, err
	}

	// closest[ind] = reference point index; perp[ind] = distance to its line.
	closest := make(map[*framework.Individual]int, len(all))
	perp := make(map[*framework.Individual]float64, len(all))
	for i, ind := range all {
		best, bestDist := 0, math.Inf(1)
		for p := range s.points {
			d := perpendicularDistance(normalized[i], s.points[p])
			if d < bestDist {
				best, bestDist = p, d
			}
		}
		closest[ind] = best
		perp[ind] = bestDist
	}

	// Niche counts over the already-selected members only.
	count := make([]int, len(s.points))
	for _, ind := range selected {
		count[closest[ind]]++
	}

	pool := make(framework.Population, len(critical))
	copy(pool, critical)
	active := make([]bool, len(s.points))
	for i := range active {
		active[i] = true
	}

	chosen := make(framework.Population, 0, want)
	for len(chosen) < want {
		// Least-populated active reference point, random tie-break.
		best, candidates := -1, []int(nil)
		for p := range s.points {
			if !active[p] {
				continue
			}
			switch {
			case best == -1 || count[p] < count[best]:
				best = p
				candidates = candidates[:0]
				candidates = append(candidates, p)
			case count[p] == count[best]:
				candidates = append(candidates, p)
			}
		}
		if best == -1 {
			break
		}
		pick := candidates[ctx.Rand.IntN(len(candidates))]

		var members framework.Population
		for _, ind := range pool {
			if closest[ind] == pick {
				members = append(members, ind)
			}
		}
		if len(members) == 0 {
			active[pick] = false
			continue
		}

		var winner *framework.Individual
		if count[pick] == 0 {
			// An empty niche takes its closest representative.
			winner = members[0]
			for _, ind := range members[1:] {
				if perp[ind] < perp[winner] {
					winner = ind
				}
			}
		} else {
			winner = members[ctx.Rand.IntN(len(members))]
		}
		chosen = append(chosen, winner)
		pool = pool.Without(winner)
		count[pick]++
	}
	return chosen, nil
}

// normalize translates by the ideal point and divides by the hyperplane
// intercepts spanned by the per-objective extreme points.
func (s *NSGA3) normalize(pop framework.Population) ([][]float64, error) {
	m := len(s.objs)
	views := make([][]float64, len(pop))
	for i, ind := range pop {
		views[i] = minView(ind.Fitness, s.objs)
	}
	ideal := make([]float64, m)
	for j := 0; j < m; j++ {
		ideal[j] = views[0][j]
		for _, v := range views[1:] {
			if v[j] < ideal[j] {
				ideal[j] = v[j]
			}
		}
	}
	for _, v := range views {
		for j := range v {
			v[j] -= ideal[j]
		}
	}

	// Extreme point of axis j: the member minimizing the ASF with the
	// j-th axis-aligned weight vector.
	extremes := make([][]float64, m)
	for j := 0; j < m; j++ {
		w := make([]float64, m)
		w[j] = 1
		best, bestVal := 0, math.Inf(1)
		for i, v := range views {
			val, err := scalarize.ASF(v, make(framework.FitnessVector, m), w)
			if err != nil {
				return nil, err
			}
			if val < bestVal {
				best, bestVal = i, val
			}
		}
		extremes[j] = views[best]
	}

	intercepts := hyperplaneIntercepts(extremes, m)
	if intercepts == nil {
		klog.V(4).InfoS("Degenerate extreme-point hyperplane, falling back to per-objective maxima")
		intercepts = make([]float64, m)
		for j := 0; j < m; j++ {
			for _, v := range views {
				if v[j] > intercepts[j] {
					intercepts[j] = v[j]
				}
			}
		}
	}
	for j := range intercepts {
		if intercepts[j] <= 0 {
			intercepts[j] = 1
		}
	}

	for _, v := range views {
		for j := range v {
			v[j] /= intercepts[j]
		}
	}
	return views, nil
}

// hyperplaneIntercepts solves E·x = 1 for the plane through the extreme
// points; intercept j is 1/x_j. Returns nil when the system is singular or
// yields a non-positive intercept.
func hyperplaneIntercepts(extremes [][]float64, m int) []float64 {
	a := mat.NewDense(m, m, nil)
	for i, e := range extremes {
		a.SetRow(i, e)
	}
	b := mat.NewVecDense(m, nil)
	for i := 0; i < m; i++ {
		b.SetVec(i, 1)
	}
	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return nil
	}
	intercepts := make([]float64, m)
	for j := 0; j < m; j++ {
		v := x.AtVec(j)
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		intercepts[j] = 1 / v
	}
	return intercepts
}

// perpendicularDistance is the distance from a normalized point to the line
// through the origin along a reference point.
func perpendicularDistance(point, ref []float64) float64 {
	num, den := 0.0, 0.0
	for j := range ref {
		num += ref[j] * point[j]
		den += ref[j] * ref[j]
	}
	if den == 0 {
		return math.Inf(1)
	}
	t := num / den
	sum := 0.0
	for j := range ref {
		d := point[j] - t*ref[j]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func (s *NSGA3) UpdateArchive(_ *framework.StrategyContext, _, _, archive framework.Population) (framework.Population, error) {
	return archive, nil
}
