package reference_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/reference"
)

func TestDasDennisCardinality(t *testing.T) {
	tests := []struct {
		divisions, dim int
	}{
		{4, 2},
		{12, 2},
		{4, 3},
		{6, 3},
		{3, 5},
	}
	for _, tc := range tests {
		points, err := reference.DasDennis(tc.divisions, tc.dim)
		if err != nil {
			t.Fatalf("DasDennis(%d, %d): %v", tc.divisions, tc.dim, err)
		}
		want := reference.Count(tc.divisions, tc.dim)
		if len(points) != want {
			t.Errorf("DasDennis(%d, %d) yields %d points, want %d", tc.divisions, tc.dim, len(points), want)
		}
		for _, p := range points {
			sum := 0.0
			for _, v := range p {
				sum += v
			}
			if math.Abs(sum-1) > 1e-9 {
				t.Errorf("point %v sums to %v, want 1", p, sum)
			}
		}
	}
}

func TestDasDennisSpacing(t *testing.T) {
	points, err := reference.DasDennis(4, 2)
	if err != nil {
		t.Fatalf("DasDennis: %v", err)
	}
	// 2 objectives, 4 divisions: first coordinates 0, 0.25, ..., 1.
	for i, p := range points {
		want := float64(i) / 4.0
		if math.Abs(p[0]-want) > 1e-12 {
			t.Errorf("point %d first coordinate = %v, want %v", i, p[0], want)
		}
	}
}

func TestTwoLayer(t *testing.T) {
	points, err := reference.TwoLayer(3, 2, 3)
	if err != nil {
		t.Fatalf("TwoLayer: %v", err)
	}
	want := reference.Count(3, 3) + reference.Count(2, 3)
	if len(points) != want {
		t.Fatalf("TwoLayer yields %d points, want %d", len(points), want)
	}
	// Inner-layer points still sum to 1 and sit strictly inside the simplex.
	for _, p := range points[reference.Count(3, 3):] {
		sum := 0.0
		for _, v := range p {
			sum += v
			if v >= 1 {
				t.Errorf("inner point %v touches the simplex boundary", p)
			}
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("inner point %v sums to %v, want 1", p, sum)
		}
	}
}

func TestUniformWeights(t *testing.T) {
	weights, err := reference.UniformWeights(5, 2)
	if err != nil {
		t.Fatalf("UniformWeights: %v", err)
	}
	if len(weights) != 6 {
		t.Fatalf("got %d vectors, want 6", len(weights))
	}
	for _, w := range weights {
		sum := 0.0
		for _, v := range w {
			sum += v
		}
		if math.Abs(sum-1) > reference.SumTolerance {
			t.Errorf("vector %v sums to %v, want 1", w, sum)
		}
	}
}

func TestUniformWeightsMatchesDasDennisCount(t *testing.T) {
	weights, err := reference.UniformWeights(4, 3)
	if err != nil {
		t.Fatalf("UniformWeights: %v", err)
	}
	if want := reference.Count(4, 3); len(weights) != want {
		t.Errorf("got %d vectors, want %d", len(weights), want)
	}
}

func TestUniformWeightsValidation(t *testing.T) {
	var cfgErr *framework.ConfigurationError
	if _, err := reference.UniformWeights(0, 2); !errors.As(err, &cfgErr) {
		t.Errorf("expected ConfigurationError for H=0, got %v", err)
	}
	if _, err := reference.UniformWeights(3, 1); !errors.As(err, &cfgErr) {
		t.Errorf("expected ConfigurationError for one objective, got %v", err)
	}
}

func TestLoadPoints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.txt")
	content := "# boundary points\n0.0 1.0\n0.5 0.5\n\n1.0 0.0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	points, err := reference.LoadPoints(path, 2)
	if err != nil {
		t.Fatalf("LoadPoints: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("got %d points, want 3", len(points))
	}
	if points[1][0] != 0.5 || points[1][1] != 0.5 {
		t.Errorf("point 1 = %v, want [0.5 0.5]", points[1])
	}
}

func TestLoadPointsDimensionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.txt")
	if err := os.WriteFile(path, []byte("0.0 1.0 0.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var cfgErr *framework.ConfigurationError
	if _, err := reference.LoadPoints(path, 2); !errors.As(err, &cfgErr) {
		t.Errorf("expected ConfigurationError, got %v", err)
	}
}
