package reference

import (
	"math"

	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
)

// SumTolerance is the acceptance window around 1 for an enumerated weight
// vector's coordinate sum.
const SumTolerance = 1e-8

// UniformWeights enumerates every combination of {0, 1/H, ..., 1} across dim
// coordinates and keeps those summing to 1 within SumTolerance, the MOEA/D
// subproblem weights. (H, dim) pairs yielding no valid combination are
// rejected.
func UniformWeights(h, dim int) ([][]float64, error) {
	if dim < 2 {
		return nil, framework.Configf("objectives", "need at least 2 objectives, got %d", dim)
	}
	if h < 1 {
		return nil, framework.Configf("h", "division count must be positive, got %d", h)
	}
	var weights [][]float64
	vector := make([]float64, dim)
	enumerate(h, 0, 0, vector, &weights)
	if len(weights) == 0 {
		return nil, framework.Configf("h", "no uniform weight vector sums to 1 for H=%d and %d objectives", h, dim)
	}
	return weights, nil
}

func enumerate(h, coord int, sum float64, vector []float64, out *[][]float64) {
	if coord == len(vector) {
		if math.Abs(sum-1) <= SumTolerance {
			w := make([]float64, len(vector))
			copy(w, vector)
			*out = append(*out, w)
		}
		return
	}
	for i := 0; i <= h; i++ {
		v := float64(i) / float64(h)
		if sum+v > 1+SumTolerance {
			break
		}
		vector[coord] = v
		enumerate(h, coord+1, sum+v, vector, out)
	}
}
