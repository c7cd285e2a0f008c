// Package reference generates the fixed direction vectors and points the
// decomposition- and niching-based strategies steer by: Das–Dennis simplex
// points and MOEA/D uniform weight vectors.
package reference

import (
	"gonum.org/v1/gonum/stat/combin"

	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
)

// Count is the number of Das–Dennis points for dim objectives and p
// divisions: C(p+dim-1, dim-1).
func Count(divisions, dim int) int {
	return combin.Binomial(divisions+dim-1, dim-1)
}

// DasDennis generates the structured simplex points of Deb's systematic
// approach: p integer divisions distributed recursively across the
// coordinates, every point summing to 1.
func DasDennis(divisions, dim int) ([][]float64, error) {
	if dim < 2 {
		return nil, framework.Configf("objectives", "need at least 2 objectives, got %d", dim)
	}
	if divisions < 1 {
		return nil, framework.Configf("divisions", "must be positive, got %d", divisions)
	}
	points := make([][]float64, 0, Count(divisions, dim))
	point := make([]float64, dim)
	dasDennis(divisions, divisions, 0, point, &points)
	return points, nil
}

// dasDennis fixes one coordinate per call to i/p and recurses on what
// remains; the terminal coordinate absorbs the remainder.
func dasDennis(divisions, remaining, coord int, point []float64, out *[][]float64) {
	if coord == len(point)-1 {
		point[coord] = float64(remaining) / float64(divisions)
		p := make([]float64, len(point))
		copy(p, point)
		*out = append(*out, p)
		return
	}
	for i := 0; i <= remaining; i++ {
		point[coord] = float64(i) / float64(divisions)
		dasDennis(divisions, remaining-i, coord+1, point, out)
	}
}

// TwoLayer adds an inner, re-centered simplex (division count p2) to the
// boundary layer, reducing boundary bias for many objectives. Points of the
// inner layer are shrunk halfway towards the simplex centroid.
func TwoLayer(outerDivisions, innerDivisions, dim int) ([][]float64, error) {
	points, err := DasDennis(outerDivisions, dim)
	if err != nil {
		return nil, err
	}
	if innerDivisions < 1 {
		return points, nil
	}
	inner, err := DasDennis(innerDivisions, dim)
	if err != nil {
		return nil, err
	}
	center := 1.0 / float64(dim)
	for _, p := range inner {
		for j := range p {
			p[j] = 0.5*p[j] + 0.5*center
		}
		points = append(points, p)
	}
	return points, nil
}
