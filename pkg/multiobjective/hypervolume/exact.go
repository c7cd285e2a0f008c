// Package hypervolume measures the objective-space volume a solution set
// dominates. All functions pose the input as maximization in normalized
// space: objectives scaled to [0,1] and inverted where needed (see
// framework.NormalizeMax) with the reference point at the origin. The engine
// serves both survival ranking (HypE, SMS-EMOA) and the pairwise indicator
// of IBEA's hypervolume variant.
package hypervolume

import (
	"sort"

	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
)

// Rho returns the HypE weight vector for removing k of n points:
// rho[i] = (1/i) * prod_{j=1}^{i-1} (k-j)/(n-j), zero beyond k. rho[0] is
// unused padding so that rho[i] weighs subvolumes dominated by exactly i
// points.
func Rho(n, k int) []float64 {
	rho := make([]float64, n+1)
	for i := 1; i <= n; i++ {
		w := 1.0 / float64(i)
		for j := 1; j < i; j++ {
			w *= float64(k-j) / float64(n-j)
		}
		rho[i] = w
	}
	return rho
}

func validate(points []framework.FitnessVector, ref []float64) error {
	for _, p := range points {
		if _, err := p.At(len(ref) - 1); err != nil {
			return err
		}
	}
	return nil
}

// Volume returns the exact hypervolume dominated by the point set relative
// to the reference. Volume({origin}) is 0 and Volume({(1,...,1)}) with the
// reference at the origin is 1.
func Volume(points []framework.FitnessVector, ref []float64) (float64, error) {
	if err := validate(points, ref); err != nil {
		return 0, err
	}
	// Weighting a subvolume dominated by i points with 1/i per dominator
	// counts it exactly once in the total.
	rho := make([]float64, len(points)+1)
	for i := 1; i <= len(points); i++ {
		rho[i] = 1.0 / float64(i)
	}
	contrib := contributions(points, ref, rho)
	total := 0.0
	for _, c := range contrib {
		total += c
	}
	return total, nil
}

// Contributions returns the HypE fitness of every point: its share of the
// hypervolume expected to be lost when k points are removed. With k=1 this
// is the exclusive contribution used by SMS-EMOA.
func Contributions(points []framework.FitnessVector, k int, ref []float64) ([]float64, error) {
	if k < 1 {
		return nil, framework.Configf("k", "removal count must be positive, got %d", k)
	}
	if err := validate(points, ref); err != nil {
		return nil, err
	}
	return contributions(points, ref, Rho(len(points), k)), nil
}

// contributions runs the recursive slicing over all dimensions with an
// arbitrary dominator-count weighting.
func contributions(points []framework.FitnessVector, ref []float64, rho []float64) []float64 {
	contrib := make([]float64, len(points))
	if len(points) == 0 {
		return contrib
	}
	idx := make([]int, len(points))
	for i := range idx {
		idx[i] = i
	}
	slice(points, idx, len(ref)-1, ref, rho, 1.0, contrib)
	return contrib
}

// slice processes one dimension: points sorted by the current axis, each
// accumulating a weighted extrusion (the gap to the next sorted value, or to
// the reference bound for the last), recursing into the remaining dimensions
// for non-zero extrusions. Bottoms out at dimension 0, where a slab
// dominated by exactly i points adds rho[i] per dominator.
func slice(points []framework.FitnessVector, idx []int, dim int, ref, rho []float64, mult float64, contrib []float64) {
	sorted := make([]int, len(idx))
	copy(sorted, idx)
	sort.SliceStable(sorted, func(a, b int) bool {
		return points[sorted[a]][dim] > points[sorted[b]][dim]
	})

	for i := 0; i < len(sorted); i++ {
		var extrusion float64
		if i < len(sorted)-1 {
			extrusion = points[sorted[i]][dim] - points[sorted[i+1]][dim]
		} else {
			extrusion = points[sorted[i]][dim] - ref[dim]
		}
		if extrusion <= 0 {
			continue
		}
		if dim == 0 {
			w := rho[i+1] * mult * extrusion
			if w != 0 {
				for _, p := range sorted[:i+1] {
					contrib[p] += w
				}
			}
		} else {
			slice(points, sorted[:i+1], dim-1, ref, rho, mult*extrusion, contrib)
		}
	}
}
