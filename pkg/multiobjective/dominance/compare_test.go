package dominance_test

import (
	"errors"
	"testing"

	"github.com/kdis-lab/moea-go/pkg/multiobjective/dominance"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
)

func TestParetoCompare(t *testing.T) {
	cmp := dominance.NewParetoComparator(framework.MinimizeAll(2))

	tests := []struct {
		name string
		a, b framework.FitnessVector
		want int
	}{
		{"dominates", framework.FitnessVector{1, 1}, framework.FitnessVector{2, 2}, framework.Dominating},
		{"dominated", framework.FitnessVector{2, 2}, framework.FitnessVector{1, 1}, framework.Dominated},
		{"weak dominance", framework.FitnessVector{1, 2}, framework.FitnessVector{1, 3}, framework.Dominating},
		{"incomparable", framework.FitnessVector{0, 5}, framework.FitnessVector{5, 0}, framework.Incomparable},
		{"equal", framework.FitnessVector{1, 2}, framework.FitnessVector{1, 2}, framework.Incomparable},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := cmp.Compare(tc.a, tc.b)
			if err != nil {
				t.Fatalf("Compare: %v", err)
			}
			if got != tc.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tc.a, tc.b, got, tc.want)
			}
			// Antisymmetry must hold for every pair.
			rev, err := cmp.Compare(tc.b, tc.a)
			if err != nil {
				t.Fatalf("reverse Compare: %v", err)
			}
			if rev != -got {
				t.Errorf("Compare(b,a) = %d, want %d", rev, -got)
			}
		})
	}
}

func TestParetoCompareDirections(t *testing.T) {
	objs := []framework.Objective{
		framework.NewObjective(framework.Minimize),
		framework.NewObjective(framework.Maximize),
	}
	cmp := dominance.NewParetoComparator(objs)

	// Lower first value and higher second value both count as better.
	got, err := cmp.Compare(framework.FitnessVector{1, 9}, framework.FitnessVector{2, 3})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if got != framework.Dominating {
		t.Errorf("mixed-direction Compare = %d, want Dominating", got)
	}
}

func TestParetoCompareMissingObjective(t *testing.T) {
	cmp := dominance.NewParetoComparator(framework.MinimizeAll(3))

	_, err := cmp.Compare(framework.FitnessVector{1, 2}, framework.FitnessVector{1, 2, 3})
	var accessErr *framework.ObjectiveAccessError
	if !errors.As(err, &accessErr) {
		t.Fatalf("expected ObjectiveAccessError, got %v", err)
	}
	if accessErr.Index != 2 {
		t.Errorf("error index = %d, want 2", accessErr.Index)
	}
}

func TestConstrainedCompare(t *testing.T) {
	cmp := dominance.NewParetoComparator(framework.MinimizeAll(2))

	feasible := framework.NewIndividual(9, 9)
	infeasible := framework.NewIndividual(0, 0)
	infeasible.Infeasible = true

	got, err := dominance.ConstrainedCompare(feasible, infeasible, cmp)
	if err != nil {
		t.Fatalf("ConstrainedCompare: %v", err)
	}
	if got != framework.Dominating {
		t.Errorf("feasible vs infeasible = %d, want Dominating", got)
	}
}

func TestEpsilonCoordinate(t *testing.T) {
	objs := framework.MinimizeAll(1)
	cmp, err := dominance.NewEpsilonComparator(objs, []float64{1}, []float64{0})
	if err != nil {
		t.Fatalf("NewEpsilonComparator: %v", err)
	}

	// epsilon=1, min=0, minimize, value=2.6 -> coordinate 2.
	coords, err := cmp.Coordinate(framework.FitnessVector{2.6})
	if err != nil {
		t.Fatalf("Coordinate: %v", err)
	}
	if coords[0] != 2 {
		t.Errorf("coordinate = %d, want 2", coords[0])
	}
}

func TestEpsilonCoordinateMaximizeCeils(t *testing.T) {
	objs := []framework.Objective{framework.NewObjective(framework.Maximize)}
	cmp, err := dominance.NewEpsilonComparator(objs, []float64{1}, []float64{0})
	if err != nil {
		t.Fatalf("NewEpsilonComparator: %v", err)
	}
	coords, err := cmp.Coordinate(framework.FitnessVector{2.6})
	if err != nil {
		t.Fatalf("Coordinate: %v", err)
	}
	if coords[0] != 3 {
		t.Errorf("coordinate = %d, want 3", coords[0])
	}
}

func TestEpsilonCompareCoarserThanPareto(t *testing.T) {
	objs := framework.MinimizeAll(2)
	cmp, err := dominance.NewEpsilonComparator(objs, []float64{1, 1}, []float64{0, 0})
	if err != nil {
		t.Fatalf("NewEpsilonComparator: %v", err)
	}

	// Distinct points in the same cell are incomparable under the grid.
	got, err := cmp.Compare(framework.FitnessVector{0.1, 0.1}, framework.FitnessVector{0.9, 0.9})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if got != framework.Incomparable {
		t.Errorf("same-cell Compare = %d, want Incomparable", got)
	}

	// A whole cell closer wins.
	got, err = cmp.Compare(framework.FitnessVector{0.1, 0.1}, framework.FitnessVector{1.5, 1.5})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if got != framework.Dominating {
		t.Errorf("lower-cell Compare = %d, want Dominating", got)
	}
}

func TestEpsilonComparatorValidation(t *testing.T) {
	objs := framework.MinimizeAll(2)

	_, err := dominance.NewEpsilonComparator(objs, []float64{1}, []float64{0, 0})
	var cfgErr *framework.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError for arity mismatch, got %v", err)
	}

	_, err = dominance.NewEpsilonComparator(objs, []float64{1, 0}, []float64{0, 0})
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError for non-positive epsilon, got %v", err)
	}
}
