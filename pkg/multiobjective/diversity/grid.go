package diversity

import (
	"math"

	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
)

// Grid discretizes the objective space of one population into hypercubes.
// Each individual gets one integer coordinate per objective; individuals
// with equal coordinates occupy the same cell. The grid is rebuilt per
// selection step, so the coordinates are side data of the strategy that
// owns the grid, not part of the base fitness.
type Grid struct {
	objs     []framework.Objective
	mins     []float64
	epsilons []float64

	coords map[*framework.Individual][]int
}

// NewGrid derives per-objective cell widths (max-min)/divisions from the
// population's own value spread and assigns every member its coordinates.
func NewGrid(pop framework.Population, objs []framework.Objective, divisions int) (*Grid, error) {
	if divisions < 1 {
		return nil, framework.Configf("divisions", "must be positive, got %d", divisions)
	}
	mins := make([]float64, len(objs))
	epsilons := make([]float64, len(objs))
	for j := range objs {
		lower, upper := framework.ObjectiveRange(pop, objs, j)
		mins[j] = lower
		span := upper - lower
		if span == 0 {
			// Degenerate axis; every member lands in coordinate 0.
			epsilons[j] = 1
			continue
		}
		epsilons[j] = span / float64(divisions)
	}
	return NewGridWithEpsilons(pop, objs, epsilons, mins)
}

// NewGridWithEpsilons builds a grid from user-supplied cell widths and
// origins, the epsilon-archiving configuration.
func NewGridWithEpsilons(pop framework.Population, objs []framework.Objective, epsilons, mins []float64) (*Grid, error) {
	if len(epsilons) != len(objs) || len(mins) != len(objs) {
		return nil, framework.Configf("epsilon", "need %d epsilons and origins, got %d/%d",
			len(objs), len(epsilons), len(mins))
	}
	for j, e := range epsilons {
		if e <= 0 {
			return nil, framework.Configf("epsilon", "objective %d: cell width must be positive, got %v", j, e)
		}
	}
	g := &Grid{
		objs:     objs,
		mins:     mins,
		epsilons: epsilons,
		coords:   make(map[*framework.Individual][]int, len(pop)),
	}
	for _, ind := range pop {
		c, err := g.coordinate(ind.Fitness)
		if err != nil {
			return nil, err
		}
		g.coords[ind] = c
	}
	return g, nil
}

func (g *Grid) coordinate(f framework.FitnessVector) ([]int, error) {
	c := make([]int, len(g.objs))
	for j, obj := range g.objs {
		v, err := f.At(j)
		if err != nil {
			return nil, err
		}
		scaled := (v - g.mins[j]) / g.epsilons[j]
		if obj.Direction == framework.Minimize {
			c[j] = int(math.Floor(scaled))
		} else {
			c[j] = int(math.Ceil(scaled))
		}
	}
	return c, nil
}

// Coordinate returns the cached cell coordinates of a member, computing and
// caching them for individuals added after construction.
func (g *Grid) Coordinate(ind *framework.Individual) ([]int, error) {
	if c, ok := g.coords[ind]; ok {
		return c, nil
	}
	c, err := g.coordinate(ind.Fitness)
	if err != nil {
		return nil, err
	}
	g.coords[ind] = c
	return c, nil
}

// SameCell reports whether two members occupy the same hypercube.
func (g *Grid) SameCell(a, b *framework.Individual) (bool, error) {
	ca, err := g.Coordinate(a)
	if err != nil {
		return false, err
	}
	cb, err := g.Coordinate(b)
	if err != nil {
		return false, err
	}
	for j := range ca {
		if ca[j] != cb[j] {
			return false, nil
		}
	}
	return true, nil
}

// ChebyshevDistance is the grid distance between two members: the largest
// per-axis coordinate difference.
func (g *Grid) ChebyshevDistance(a, b *framework.Individual) (int, error) {
	ca, err := g.Coordinate(a)
	if err != nil {
		return 0, err
	}
	cb, err := g.Coordinate(b)
	if err != nil {
		return 0, err
	}
	d := 0
	for j := range ca {
		diff := ca[j] - cb[j]
		if diff < 0 {
			diff = -diff
		}
		if diff > d {
			d = diff
		}
	}
	return d, nil
}

// Ranking is the GrEA grid ranking: the coordinate sum. With minimized
// objectives a lower sum means a cell closer to the utopian corner.
func (g *Grid) Ranking(ind *framework.Individual) (int, error) {
	c, err := g.Coordinate(ind)
	if err != nil {
		return 0, err
	}
	sum := 0
	for _, v := range c {
		sum += v
	}
	return sum, nil
}

// Crowding is the GrEA grid crowding degree: every neighbour within
// Chebyshev grid distance below the objective count contributes its
// proximity weight (objectives - distance).
func (g *Grid) Crowding(ind *framework.Individual, pop framework.Population) (float64, error) {
	m := len(g.objs)
	crowd := 0.0
	for _, other := range pop {
		if other == ind {
			continue
		}
		d, err := g.ChebyshevDistance(ind, other)
		if err != nil {
			return 0, err
		}
		if d < m {
			crowd += float64(m - d)
		}
	}
	return crowd, nil
}

// PointDistance is the grid-normalized Euclidean distance from a member to
// the utopian corner of its own cell; it breaks ties between same-cell
// members.
func (g *Grid) PointDistance(ind *framework.Individual) (float64, error) {
	c, err := g.Coordinate(ind)
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for j := range g.objs {
		corner := g.mins[j] + float64(c[j])*g.epsilons[j]
		d := (ind.Fitness[j] - corner) / g.epsilons[j]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// CellOccupants groups a population by cell. The map key is the packed
// coordinate string.
func (g *Grid) CellOccupants(pop framework.Population) (map[string]framework.Population, error) {
	cells := make(map[string]framework.Population)
	for _, ind := range pop {
		key, err := g.CellKey(ind)
		if err != nil {
			return nil, err
		}
		cells[key] = append(cells[key], ind)
	}
	return cells, nil
}

// CellKey packs a member's coordinates into a comparable key.
func (g *Grid) CellKey(ind *framework.Individual) (string, error) {
	c, err := g.Coordinate(ind)
	if err != nil {
		return "", err
	}
	// Small fixed-size coordinates; a compact manual pack avoids fmt in the
	// archive hot path.
	buf := make([]byte, 0, len(c)*4)
	for _, v := range c {
		buf = append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	}
	return string(buf), nil
}
