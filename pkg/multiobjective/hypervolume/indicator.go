package hypervolume

import (
	"math"

	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
)

// Indicator returns the volume dominated by b but not by a, the pairwise
// quantity IBEA's hypervolume variant scores with. Inputs are normalized
// maximization vectors in [0,1] with the reference at the origin.
func Indicator(a, b framework.FitnessVector) (float64, error) {
	if len(a) != len(b) {
		return 0, &framework.ObjectiveAccessError{Index: len(b) - 1, Len: len(a)}
	}
	if len(a) == 0 {
		return 0, nil
	}
	return exclusive(a, b, len(a)-1), nil
}

// exclusive computes the measure of D(b) \ D(a) over dimensions 0..dim,
// where D(x) is the box between the origin and x. The slab below
// min(a,b) along the current axis keeps a active; the slab between a and b
// (when b reaches higher) is dominated by b alone.
func exclusive(a, b framework.FitnessVector, dim int) float64 {
	if dim < 0 {
		return 0
	}
	ad, bd := a[dim], b[dim]
	vol := math.Min(ad, bd) * exclusive(a, b, dim-1)
	if bd > ad {
		vol += (bd - ad) * box(b, dim-1)
	}
	return vol
}

func box(p framework.FitnessVector, dim int) float64 {
	v := 1.0
	for j := 0; j <= dim; j++ {
		v *= p[j]
	}
	return v
}
