// Package diversity provides the density estimators the strategies use to
// spread survivors along a front: NSGA-II crowding distance and the adaptive
// grid metrics of the hypercube-based algorithms.
package diversity

import (
	"math"
	"sort"

	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
)

// CrowdingDistance computes the NSGA-II density estimator for every member
// of a front. Per objective the front is sorted ascending (ties keep list
// order), the two boundary individuals get +Inf and each interior individual
// accumulates its neighbour gap scaled by the configured bounds or, when
// unbounded, by the front's own min/max. The final distance is the
// per-objective accumulation averaged over the objectives.
func CrowdingDistance(front framework.Population, objs []framework.Objective) (map[*framework.Individual]float64, error) {
	dist := make(map[*framework.Individual]float64, len(front))
	if len(front) == 0 {
		return dist, nil
	}
	if len(front) <= 2 {
		for _, ind := range front {
			dist[ind] = math.Inf(1)
		}
		return dist, nil
	}

	for _, ind := range front {
		if _, err := ind.Fitness.At(len(objs) - 1); err != nil {
			return nil, err
		}
	}

	order := make(framework.Population, len(front))
	copy(order, front)

	for j := range objs {
		m := j
		sort.SliceStable(order, func(a, b int) bool {
			return order[a].Fitness[m] < order[b].Fitness[m]
		})

		dist[order[0]] = math.Inf(1)
		dist[order[len(order)-1]] = math.Inf(1)

		lower, upper := framework.ObjectiveRange(front, objs, j)
		span := upper - lower
		if span == 0 {
			continue
		}
		for i := 1; i < len(order)-1; i++ {
			dist[order[i]] += (order[i+1].Fitness[j] - order[i-1].Fitness[j]) / span
		}
	}

	for _, ind := range front {
		dist[ind] /= float64(len(objs))
	}
	return dist, nil
}

// SortByCrowding orders a front in place by descending crowding distance,
// most isolated first. Ties keep list order.
func SortByCrowding(front framework.Population, dist map[*framework.Individual]float64) {
	front.SortBy(func(a, b *framework.Individual) bool {
		return dist[a] > dist[b]
	})
}
