package framework

import (
	"math"
	"math/rand/v2"
)

// Direction tells whether an objective is minimized or maximized.
type Direction int

const (
	Minimize Direction = iota
	Maximize
)

func (d Direction) String() string {
	if d == Maximize {
		return "maximize"
	}
	return "minimize"
}

// Objective describes one optimization objective: its direction and, when
// known up front, its value bounds. Immutable once configured.
type Objective struct {
	Direction Direction
	Lower     float64
	Upper     float64
}

// NewObjective returns an unbounded objective for the given direction.
func NewObjective(d Direction) Objective {
	return Objective{Direction: d, Lower: math.Inf(-1), Upper: math.Inf(1)}
}

// NewBoundedObjective returns an objective with known value bounds.
func NewBoundedObjective(d Direction, lower, upper float64) Objective {
	return Objective{Direction: d, Lower: lower, Upper: upper}
}

// Bounded reports whether the objective carries finite bounds.
func (o Objective) Bounded() bool {
	return !math.IsInf(o.Lower, -1) && !math.IsInf(o.Upper, 1) && o.Lower < o.Upper
}

// MinimizeAll is a convenience constructor for n minimized objectives,
// the usual posing of the benchmark problems.
func MinimizeAll(n int) []Objective {
	objs := make([]Objective, n)
	for i := range objs {
		objs[i] = NewObjective(Minimize)
	}
	return objs
}

// UniformDirection reports whether all objectives share one direction.
// Strategies that need a consistent partial order reject mixed directions
// at configuration time.
func UniformDirection(objs []Objective) bool {
	for _, o := range objs {
		if o.Direction != objs[0].Direction {
			return false
		}
	}
	return true
}

// Comparison outcomes of a dominance comparator. The encoding guarantees
// Compare(a,b) == -Compare(b,a).
const (
	Dominating   = 1
	Incomparable = 0
	Dominated    = -1
)

// Comparator compares two fitness vectors under some dominance relation.
type Comparator interface {
	// Compare returns Dominating when a dominates b, Dominated when b
	// dominates a and Incomparable otherwise (including equality).
	Compare(a, b FitnessVector) (int, error)
}

// ObjectiveFunc evaluates one objective for a candidate solution.
type ObjectiveFunc func(Solution) float64

// Constraint returns true if the constraint is satisfied and false otherwise.
type Constraint func(Solution) bool

// ObjectiveSpacePoint represents an N-dimensional point in the objective space.
// As an example, for a problem with 2 objective functions f1 and f2, a point
// in the objective space could be [f1(x'), f2(x')], for the input of x'.
type ObjectiveSpacePoint []float64

// Bounds delimits one decision variable.
type Bounds struct {
	L float64
	H float64
}

// Problem describes the contract a specific multi-objective problem needs to
// implement. It is the evaluator collaborator of the selection core: it owns
// the objective count, directions and value bounds.
type Problem interface {
	Name() string

	Objectives() []Objective
	ObjectiveFuncs() []ObjectiveFunc
	Constraints() []Constraint
	Bounds() []Bounds
	Initialize(n int, rng *rand.Rand) []Solution

	// TrueParetoFront is optional due to the difficulty of finding the true
	// front in some types of problems. When there isn't a way to find the
	// true front, just return nil.
	TrueParetoFront(int) []ObjectiveSpacePoint
}
