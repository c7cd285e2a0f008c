package framework

import "math"

// ScaleOptions controls how scaling treats fitness vectors that do not carry
// every configured objective.
type ScaleOptions struct {
	// MissingAsZero substitutes 0 for inaccessible objective values instead
	// of propagating an ObjectiveAccessError. This silently degrades
	// crowding/hypervolume/ASF accuracy and is therefore opt-in.
	MissingAsZero bool
}

// ObjectiveRange returns the scaling range for objective j: the configured
// bounds when finite, otherwise the population's own min/max.
func ObjectiveRange(pop Population, objs []Objective, j int) (lower, upper float64) {
	if objs[j].Bounded() {
		return objs[j].Lower, objs[j].Upper
	}
	lower, upper = math.Inf(1), math.Inf(-1)
	for _, ind := range pop {
		if j >= len(ind.Fitness) {
			continue
		}
		v := ind.Fitness[j]
		lower = math.Min(lower, v)
		upper = math.Max(upper, v)
	}
	return lower, upper
}

// NormalizeMax rescales every fitness vector in place to [0,1] posed as
// maximization: minimized objectives are inverted so that 1 is best and the
// hypervolume reference sits at the origin. Documented in-place operation;
// callers that need the originals pass a cloned population.
func NormalizeMax(pop Population, objs []Objective, opt ScaleOptions) error {
	if len(pop) == 0 {
		return nil
	}
	for j := range objs {
		lower, upper := ObjectiveRange(pop, objs, j)
		span := upper - lower
		for _, ind := range pop {
			v, err := ind.Fitness.At(j)
			if err != nil {
				if !opt.MissingAsZero {
					return err
				}
				v = 0
			}
			var scaled float64
			if span > 0 {
				scaled = (v - lower) / span
			}
			if objs[j].Direction == Minimize {
				scaled = 1 - scaled
			}
			if j < len(ind.Fitness) {
				ind.Fitness[j] = scaled
			}
		}
	}
	return nil
}
