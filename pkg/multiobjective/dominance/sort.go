package dominance

import (
	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
)

// Sort performs fast non-dominated sorting on the population. Front 1 (index
// 0 of the result) holds the non-dominated individuals; front k+1 holds the
// individuals non-dominated once fronts 1..k are removed. The union of all
// fronts is the input population, each member exactly once, and order within
// a front is the stable source order. Cost O(n²) comparisons.
func Sort(pop framework.Population, cmp framework.Comparator) ([]framework.Population, error) {
	n := len(pop)
	if n == 0 {
		return nil, nil
	}

	dominated := make([][]int, n)
	domCount := make([]int, n)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			rel, err := ConstrainedCompare(pop[i], pop[j], cmp)
			if err != nil {
				return nil, err
			}
			switch rel {
			case framework.Dominating:
				dominated[i] = append(dominated[i], j)
				domCount[j]++
			case framework.Dominated:
				dominated[j] = append(dominated[j], i)
				domCount[i]++
			}
		}
	}

	var fronts []framework.Population
	current := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if domCount[i] == 0 {
			current = append(current, i)
		}
	}

	for len(current) > 0 {
		front := make(framework.Population, len(current))
		for i, idx := range current {
			front[i] = pop[idx]
		}
		fronts = append(fronts, front)

		next := make([]int, 0)
		for _, idx := range current {
			for _, d := range dominated[idx] {
				domCount[d]--
				if domCount[d] == 0 {
					next = append(next, d)
				}
			}
		}
		current = next
	}

	return fronts, nil
}

// Ranks flattens sorted fronts into per-individual front numbers, contiguous
// from 1.
func Ranks(fronts []framework.Population) map[*framework.Individual]int {
	ranks := make(map[*framework.Individual]int)
	for i, front := range fronts {
		for _, ind := range front {
			ranks[ind] = i + 1
		}
	}
	return ranks
}
