package scalarize_test

import (
	"math"
	"testing"

	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/scalarize"
)

func TestASF(t *testing.T) {
	f := framework.FitnessVector{3, 2}
	z := framework.FitnessVector{1, 1}
	w := []float64{1, 0.5}

	// max((3-1)/1, (2-1)/0.5) = 2.
	got, err := scalarize.ASF(f, z, w)
	if err != nil {
		t.Fatalf("ASF: %v", err)
	}
	if math.Abs(got-2) > 1e-12 {
		t.Errorf("ASF = %v, want 2", got)
	}
}

func TestASFClampsAxisWeights(t *testing.T) {
	f := framework.FitnessVector{1, 2}
	z := framework.FitnessVector{0, 0}

	// A zero weight component is clamped instead of dividing by zero.
	got, err := scalarize.ASF(f, z, []float64{1, 0})
	if err != nil {
		t.Fatalf("ASF: %v", err)
	}
	want := 2 / scalarize.WeightClamp
	if math.Abs(got-want) > 1e-3 {
		t.Errorf("ASF = %v, want %v", got, want)
	}
	if math.IsInf(got, 0) || math.IsNaN(got) {
		t.Errorf("ASF blew up on an axis weight: %v", got)
	}
}

func TestTchebycheff(t *testing.T) {
	f := framework.FitnessVector{3, 2}
	z := framework.FitnessVector{1, 1}
	w := []float64{0.5, 1}

	// max(0.5*|3-1|, 1*|2-1|) = 1.
	got, err := scalarize.Tchebycheff(f, z, w)
	if err != nil {
		t.Fatalf("Tchebycheff: %v", err)
	}
	if math.Abs(got-1) > 1e-12 {
		t.Errorf("Tchebycheff = %v, want 1", got)
	}
}

func TestWeightedSum(t *testing.T) {
	got, err := scalarize.WeightedSum(framework.FitnessVector{2, 4}, nil, []float64{0.25, 0.75})
	if err != nil {
		t.Fatalf("WeightedSum: %v", err)
	}
	if math.Abs(got-3.5) > 1e-12 {
		t.Errorf("WeightedSum = %v, want 3.5", got)
	}
}

func TestPBI(t *testing.T) {
	pbi := scalarize.PBI(5)
	z := framework.FitnessVector{0, 0}
	w := []float64{1, 1}

	// A point on the weight direction has no perpendicular deviation.
	onAxis, err := pbi(framework.FitnessVector{1, 1}, z, w)
	if err != nil {
		t.Fatalf("PBI: %v", err)
	}
	if math.Abs(onAxis-math.Sqrt(2)) > 1e-9 {
		t.Errorf("PBI on axis = %v, want %v", onAxis, math.Sqrt(2))
	}

	// Deviating from the direction must cost more under the penalty.
	offAxis, err := pbi(framework.FitnessVector{2, 0}, z, w)
	if err != nil {
		t.Fatalf("PBI: %v", err)
	}
	if offAxis <= onAxis {
		t.Errorf("PBI off axis = %v, want > %v", offAxis, onAxis)
	}
}

func TestArityErrors(t *testing.T) {
	_, err := scalarize.ASF(framework.FitnessVector{1}, framework.FitnessVector{0, 0}, []float64{1, 1})
	if err == nil {
		t.Error("expected error for short fitness vector")
	}
	_, err = scalarize.Tchebycheff(framework.FitnessVector{1, 2}, framework.FitnessVector{0}, []float64{1, 1})
	if err == nil {
		t.Error("expected error for short ideal point")
	}
}
