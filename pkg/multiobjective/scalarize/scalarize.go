// Package scalarize holds the scalarizing functions that collapse a fitness
// vector into one value relative to a reference point and weight vector.
// MOEA/D decomposes with them, PAR and NSGA-III's extreme-point detection
// use the ASF as a tie-break distance.
package scalarize

import (
	"math"

	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
)

// WeightClamp is the lower bound applied to weight components so that
// axis-aligned weight vectors do not blow up the division.
const WeightClamp = 1e-6

// Func collapses fitness f against ideal point z under weights w.
type Func func(f, z framework.FitnessVector, w []float64) (float64, error)

func checkArity(f, z framework.FitnessVector, w []float64) error {
	if len(z) != len(w) {
		return &framework.ObjectiveAccessError{Index: len(w) - 1, Len: len(z)}
	}
	if len(f) < len(w) {
		return &framework.ObjectiveAccessError{Index: len(w) - 1, Len: len(f)}
	}
	return nil
}

// ASF is the achievement scalarizing function
// max_i (f_i - z_i) / w_i, with near-zero weights clamped to WeightClamp.
func ASF(f, z framework.FitnessVector, w []float64) (float64, error) {
	if err := checkArity(f, z, w); err != nil {
		return 0, err
	}
	best := math.Inf(-1)
	for i := range w {
		wi := w[i]
		if wi < WeightClamp {
			wi = WeightClamp
		}
		if v := (f[i] - z[i]) / wi; v > best {
			best = v
		}
	}
	return best, nil
}

// Tchebycheff is the weighted Chebyshev distance max_i w_i * |f_i - z_i|.
func Tchebycheff(f, z framework.FitnessVector, w []float64) (float64, error) {
	if err := checkArity(f, z, w); err != nil {
		return 0, err
	}
	best := math.Inf(-1)
	for i := range w {
		wi := w[i]
		if wi < WeightClamp {
			wi = WeightClamp
		}
		if v := wi * math.Abs(f[i]-z[i]); v > best {
			best = v
		}
	}
	return best, nil
}

// WeightedSum ignores the ideal point and aggregates sum_i w_i * f_i.
func WeightedSum(f, _ framework.FitnessVector, w []float64) (float64, error) {
	if len(f) < len(w) {
		return 0, &framework.ObjectiveAccessError{Index: len(w) - 1, Len: len(f)}
	}
	sum := 0.0
	for i := range w {
		sum += w[i] * f[i]
	}
	return sum, nil
}

// PBI is the penalty-based boundary intersection function with penalty
// theta: projection distance along the weight direction plus theta times the
// perpendicular deviation from it.
func PBI(theta float64) Func {
	return func(f, z framework.FitnessVector, w []float64) (float64, error) {
		if err := checkArity(f, z, w); err != nil {
			return 0, err
		}
		norm := 0.0
		for i := range w {
			norm += w[i] * w[i]
		}
		norm = math.Sqrt(norm)
		if norm < WeightClamp {
			norm = WeightClamp
		}
		d1 := 0.0
		for i := range w {
			d1 += (f[i] - z[i]) * w[i]
		}
		d1 = math.Abs(d1) / norm
		d2 := 0.0
		for i := range w {
			dev := f[i] - (z[i] + d1*w[i]/norm)
			d2 += dev * dev
		}
		return d1 + theta*math.Sqrt(d2), nil
	}
}
