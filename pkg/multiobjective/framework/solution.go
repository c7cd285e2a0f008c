package framework

import (
	"math"
	"math/rand/v2"
)

// Solution is the encoded genotype of an individual. Variation is the
// business of the external driver; the selection core only needs cloning,
// and the PSO/MOCHC strategies additionally need the concrete encodings.
type Solution interface {
	Clone() Solution
	Crossover(other Solution, rate float64, rng *rand.Rand) (Solution, Solution)
	Mutate(rate float64, rng *rand.Rand)
}

// BinarySolution uses a binary encoding scheme, where each bit
// or group of bits can have a meaning in the context of the problem.
type BinarySolution struct {
	Bits []bool
}

func NewBinarySolution(bits []bool) *BinarySolution {
	return &BinarySolution{Bits: bits}
}

func (s *BinarySolution) Clone() Solution {
	bits := make([]bool, len(s.Bits))
	copy(bits, s.Bits)
	return &BinarySolution{Bits: bits}
}

// Crossover implements Solution using HUX: half of the differing bits are
// exchanged, which is what MOCHC's incest prevention assumes.
func (s *BinarySolution) Crossover(other Solution, rate float64, rng *rand.Rand) (Solution, Solution) {
	o := other.(*BinarySolution)
	child1 := s.Clone().(*BinarySolution)
	child2 := o.Clone().(*BinarySolution)

	if rng.Float64() < rate {
		var differing []int
		for i := range s.Bits {
			if s.Bits[i] != o.Bits[i] {
				differing = append(differing, i)
			}
		}
		rng.Shuffle(len(differing), func(i, j int) {
			differing[i], differing[j] = differing[j], differing[i]
		})
		for _, i := range differing[:len(differing)/2] {
			child1.Bits[i], child2.Bits[i] = child2.Bits[i], child1.Bits[i]
		}
	}

	return child1, child2
}

// Mutate implements Solution using bit-flip mutation.
func (s *BinarySolution) Mutate(rate float64, rng *rand.Rand) {
	for i := range s.Bits {
		if rng.Float64() < rate {
			s.Bits[i] = !s.Bits[i]
		}
	}
}

// HammingDistance counts differing bits between two binary solutions.
func HammingDistance(a, b *BinarySolution) int {
	d := 0
	for i := range a.Bits {
		if a.Bits[i] != b.Bits[i] {
			d++
		}
	}
	return d
}

// RealSolution represents a solution with real-valued variables.
type RealSolution struct {
	Variables []float64
	Bounds    []Bounds
}

func NewRealSolution(vars []float64, b []Bounds) *RealSolution {
	return &RealSolution{Variables: vars, Bounds: b}
}

func (s *RealSolution) Clone() Solution {
	vars := make([]float64, len(s.Variables))
	copy(vars, s.Variables)
	return &RealSolution{Variables: vars, Bounds: s.Bounds}
}

// Crossover performs SBX (Simulated Binary Crossover).
func (s *RealSolution) Crossover(other Solution, rate float64, rng *rand.Rand) (Solution, Solution) {
	o := other.(*RealSolution)
	child1 := s.Clone().(*RealSolution)
	child2 := o.Clone().(*RealSolution)

	if rng.Float64() < rate {
		for i := range s.Variables {
			beta := 0.0
			if rng.Float64() <= 0.5 {
				beta = math.Pow(2*rng.Float64(), 1.0/3.0)
			} else {
				beta = math.Pow(1.0/(2*(1.0-rng.Float64())), 1.0/3.0)
			}

			child1.Variables[i] = 0.5 * ((1+beta)*s.Variables[i] + (1-beta)*o.Variables[i])
			child2.Variables[i] = 0.5 * ((1-beta)*s.Variables[i] + (1+beta)*o.Variables[i])

			// Bound checking
			child1.Variables[i] = math.Max(s.Bounds[i].L, math.Min(s.Bounds[i].H, child1.Variables[i]))
			child2.Variables[i] = math.Max(s.Bounds[i].L, math.Min(s.Bounds[i].H, child2.Variables[i]))
		}
	} else {
		copy(child1.Variables, s.Variables)
		copy(child2.Variables, o.Variables)
	}

	return child1, child2
}

// Mutate performs polynomial mutation.
func (s *RealSolution) Mutate(rate float64, rng *rand.Rand) {
	for i := range s.Variables {
		if rng.Float64() < rate {
			delta := 0.0
			if rng.Float64() <= 0.5 {
				delta = math.Pow(2*rng.Float64(), 1.0/3.0) - 1
			} else {
				delta = 1 - math.Pow(2*(1-rng.Float64()), 1.0/3.0)
			}

			s.Variables[i] += delta * (s.Bounds[i].H - s.Bounds[i].L)
			s.Variables[i] = math.Max(s.Bounds[i].L, math.Min(s.Bounds[i].H, s.Variables[i]))
		}
	}
}
