package dominance

import (
	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
)

// NonDominated extracts the individuals no remaining member dominates, by a
// single O(n²) scan. Suited to the small sets it is used on (archives,
// critical fronts).
func NonDominated(pop framework.Population, cmp framework.Comparator) (framework.Population, error) {
	var out framework.Population
	for i, a := range pop {
		dominated := false
		for j, b := range pop {
			if i == j {
				continue
			}
			rel, err := ConstrainedCompare(b, a, cmp)
			if err != nil {
				return nil, err
			}
			if rel == framework.Dominating {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, a)
		}
	}
	return out, nil
}

// Peel repeatedly extracts the non-dominated subset of what remains until
// the population is exhausted. Equivalent to Sort but O(n²) per subset, so
// it is only used where inputs are known to be small.
func Peel(pop framework.Population, cmp framework.Comparator) ([]framework.Population, error) {
	remaining := make(framework.Population, len(pop))
	copy(remaining, pop)

	var subsets []framework.Population
	for len(remaining) > 0 {
		subset, err := NonDominated(remaining, cmp)
		if err != nil {
			return nil, err
		}
		if len(subset) == 0 {
			// Cannot happen under a strict partial order; guards a
			// miswired comparator from looping forever.
			subset = remaining
		}
		subsets = append(subsets, subset)
		keep := make(framework.Population, 0, len(remaining)-len(subset))
		for _, ind := range remaining {
			if !subset.Contains(ind) {
				keep = append(keep, ind)
			}
		}
		remaining = keep
	}
	return subsets, nil
}
