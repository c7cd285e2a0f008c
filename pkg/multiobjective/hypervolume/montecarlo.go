package hypervolume

import (
	"math/rand/v2"

	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
)

// ContributionsMC estimates the HypE contributions by Monte-Carlo sampling,
// trading exactness for tractability as the objective count grows. Samples
// are drawn uniformly in the bounding box between the reference and the
// per-objective maxima; every sample weakly dominated by 1..k points adds
// rho[domCount] to each dominator, and the accumulators are scaled by
// box volume / samples.
func ContributionsMC(points []framework.FitnessVector, k int, ref []float64, samples int, rng *rand.Rand) ([]float64, error) {
	if k < 1 {
		return nil, framework.Configf("k", "removal count must be positive, got %d", k)
	}
	if samples < 1 {
		return nil, framework.Configf("samples", "must be positive, got %d", samples)
	}
	if err := validate(points, ref); err != nil {
		return nil, err
	}

	d := len(ref)
	upper := make([]float64, d)
	copy(upper, ref)
	for _, p := range points {
		for j := 0; j < d; j++ {
			if p[j] > upper[j] {
				upper[j] = p[j]
			}
		}
	}
	boxVolume := 1.0
	for j := 0; j < d; j++ {
		boxVolume *= upper[j] - ref[j]
	}

	contrib := make([]float64, len(points))
	if boxVolume == 0 {
		return contrib, nil
	}

	rho := Rho(len(points), k)
	sample := make([]float64, d)
	dominators := make([]int, 0, len(points))

	for s := 0; s < samples; s++ {
		for j := 0; j < d; j++ {
			sample[j] = ref[j] + rng.Float64()*(upper[j]-ref[j])
		}
		dominators = dominators[:0]
		for i, p := range points {
			dominates := true
			for j := 0; j < d; j++ {
				if p[j] < sample[j] {
					dominates = false
					break
				}
			}
			if dominates {
				dominators = append(dominators, i)
			}
		}
		if n := len(dominators); n > 0 && n <= k {
			for _, i := range dominators {
				contrib[i] += rho[n]
			}
		}
	}

	scale := boxVolume / float64(samples)
	for i := range contrib {
		contrib[i] *= scale
	}
	return contrib, nil
}
