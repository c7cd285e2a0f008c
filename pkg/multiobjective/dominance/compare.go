// Package dominance provides the Pareto and epsilon/grid dominance
// comparators and the dominance-based population partitioners shared by the
// concrete selection strategies.
package dominance

import (
	"math"

	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
)

// ParetoComparator compares fitness vectors under Pareto dominance, honouring
// each objective's direction. a dominates b iff a is not worse than b in
// every objective and strictly better in at least one.
type ParetoComparator struct {
	objectives []framework.Objective
}

var _ framework.Comparator = &ParetoComparator{}

func NewParetoComparator(objs []framework.Objective) *ParetoComparator {
	return &ParetoComparator{objectives: objs}
}

// Objectives returns the objective model the comparator was built for.
func (c *ParetoComparator) Objectives() []framework.Objective {
	return c.objectives
}

func (c *ParetoComparator) Compare(a, b framework.FitnessVector) (int, error) {
	aBetter, bBetter := false, false
	for j, obj := range c.objectives {
		av, err := a.At(j)
		if err != nil {
			return framework.Incomparable, err
		}
		bv, err := b.At(j)
		if err != nil {
			return framework.Incomparable, err
		}
		if obj.Direction == framework.Maximize {
			av, bv = -av, -bv
		}
		switch {
		case av < bv:
			aBetter = true
		case bv < av:
			bBetter = true
		}
	}
	switch {
	case aBetter && !bBetter:
		return framework.Dominating, nil
	case bBetter && !aBetter:
		return framework.Dominated, nil
	default:
		return framework.Incomparable, nil
	}
}

// ConstrainedCompare applies the feasibility rule before dominance: a
// feasible individual dominates an infeasible one regardless of fitness.
func ConstrainedCompare(a, b *framework.Individual, cmp framework.Comparator) (int, error) {
	switch {
	case a.Feasible() && !b.Feasible():
		return framework.Dominating, nil
	case b.Feasible() && !a.Feasible():
		return framework.Dominated, nil
	}
	return cmp.Compare(a.Fitness, b.Fitness)
}

// EpsilonComparator applies the Pareto rule to integer grid coordinates
// instead of raw values. The coarser relation bounds archive growth in the
// epsilon-archiving strategies.
type EpsilonComparator struct {
	objectives []framework.Objective
	epsilons   []float64
	origins    []float64
}

var _ framework.Comparator = &EpsilonComparator{}

// NewEpsilonComparator builds a grid comparator with per-objective cell width
// epsilon and grid origin (the objective minimum).
func NewEpsilonComparator(objs []framework.Objective, epsilons, origins []float64) (*EpsilonComparator, error) {
	if len(epsilons) != len(objs) || len(origins) != len(objs) {
		return nil, framework.Configf("epsilon", "need %d epsilons and origins, got %d/%d",
			len(objs), len(epsilons), len(origins))
	}
	for j, e := range epsilons {
		if e <= 0 {
			return nil, framework.Configf("epsilon", "objective %d: epsilon must be positive, got %v", j, e)
		}
	}
	return &EpsilonComparator{objectives: objs, epsilons: epsilons, origins: origins}, nil
}

// Coordinate maps a fitness vector onto its integer grid cell: floor for
// minimized objectives, ceil for maximized ones.
func (c *EpsilonComparator) Coordinate(f framework.FitnessVector) ([]int, error) {
	coords := make([]int, len(c.objectives))
	for j, obj := range c.objectives {
		v, err := f.At(j)
		if err != nil {
			return nil, err
		}
		scaled := (v - c.origins[j]) / c.epsilons[j]
		if obj.Direction == framework.Minimize {
			coords[j] = int(math.Floor(scaled))
		} else {
			coords[j] = int(math.Ceil(scaled))
		}
	}
	return coords, nil
}

func (c *EpsilonComparator) Compare(a, b framework.FitnessVector) (int, error) {
	ca, err := c.Coordinate(a)
	if err != nil {
		return framework.Incomparable, err
	}
	cb, err := c.Coordinate(b)
	if err != nil {
		return framework.Incomparable, err
	}
	return CompareCoordinates(ca, cb, c.objectives), nil
}

// CompareCoordinates applies the dominance rule to two grid coordinate
// vectors of equal length.
func CompareCoordinates(a, b []int, objs []framework.Objective) int {
	aBetter, bBetter := false, false
	for j, obj := range objs {
		av, bv := a[j], b[j]
		if obj.Direction == framework.Maximize {
			av, bv = -av, -bv
		}
		switch {
		case av < bv:
			aBetter = true
		case bv < av:
			bBetter = true
		}
	}
	switch {
	case aBetter && !bBetter:
		return framework.Dominating
	case bBetter && !aBetter:
		return framework.Dominated
	default:
		return framework.Incomparable
	}
}
