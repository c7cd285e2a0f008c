// Package report defines the JSON schema a driver emits after a run, plus
// helpers turning populations and strategy accessors into records. The
// schema is consumed by reporting layers outside the selection core.
package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/kdis-lab/moea-go/pkg/multiobjective/dominance"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
)

// SolutionRecord is one individual's objective-space result.
type SolutionRecord struct {
	// Fitness holds the raw objective values, one per configured objective.
	Fitness []float64 `json:"fitness"`

	// Rank is the non-dominated front index, counted from 1.
	Rank int `json:"rank"`

	// Feasible reports constraint satisfaction.
	Feasible bool `json:"feasible"`
}

// ObjectiveRecord describes one objective of the run.
type ObjectiveRecord struct {
	Direction string  `json:"direction"`
	Lower     float64 `json:"lower,omitempty"`
	Upper     float64 `json:"upper,omitempty"`
}

// RunReport is the full result document of one optimization run.
type RunReport struct {
	Strategy   string            `json:"strategy"`
	Problem    string            `json:"problem"`
	Objectives []ObjectiveRecord `json:"objectives"`

	PopulationSize int    `json:"populationSize"`
	Generations    int    `json:"generations"`
	Seed           uint64 `json:"seed"`

	// Population and Archive are the final state, ranked by front.
	Population []SolutionRecord `json:"population"`
	Archive    []SolutionRecord `json:"archive,omitempty"`

	// ReferenceVectors and ReferencePoints are present for decomposition and
	// point-based strategies.
	ReferenceVectors [][]float64 `json:"referenceVectors,omitempty"`
	ReferencePoints  [][]float64 `json:"referencePoints,omitempty"`

	Duration    time.Duration `json:"durationNanos"`
	GeneratedAt time.Time     `json:"generatedAt"`
}

// records ranks a population under the strategy's comparator and flattens it
// into solution records.
func records(pop framework.Population, cmp framework.Comparator) ([]SolutionRecord, error) {
	if len(pop) == 0 {
		return nil, nil
	}
	fronts, err := dominance.Sort(pop, cmp)
	if err != nil {
		return nil, err
	}
	ranks := dominance.Ranks(fronts)

	out := make([]SolutionRecord, 0, len(pop))
	for _, ind := range pop {
		out = append(out, SolutionRecord{
			Fitness:  ind.Fitness.Clone(),
			Rank:     ranks[ind],
			Feasible: ind.Feasible(),
		})
	}
	return out, nil
}

// New assembles a report from a finished run. The strategy's optional
// accessor interfaces fill in the comparator, reference vectors and points.
func New(problem framework.Problem, strategy framework.Strategy, cfg framework.EngineConfig,
	pop, archive framework.Population, duration time.Duration) (*RunReport, error) {

	var cmp framework.Comparator = dominance.NewParetoComparator(problem.Objectives())
	if provider, ok := strategy.(framework.ComparatorProvider); ok {
		cmp = provider.Comparator()
	}

	popRecords, err := records(pop, cmp)
	if err != nil {
		return nil, err
	}
	archiveRecords, err := records(archive, cmp)
	if err != nil {
		return nil, err
	}

	objectives := make([]ObjectiveRecord, 0, len(problem.Objectives()))
	for _, obj := range problem.Objectives() {
		rec := ObjectiveRecord{Direction: obj.Direction.String()}
		if obj.Bounded() {
			rec.Lower, rec.Upper = obj.Lower, obj.Upper
		}
		objectives = append(objectives, rec)
	}

	r := &RunReport{
		Strategy:       strategy.Name(),
		Problem:        problem.Name(),
		Objectives:     objectives,
		PopulationSize: cfg.PopulationSize,
		Generations:    cfg.MaxGenerations,
		Seed:           cfg.Seed,
		Population:     popRecords,
		Archive:        archiveRecords,
		Duration:       duration,
		GeneratedAt:    time.Now().UTC(),
	}
	if provider, ok := strategy.(framework.ReferenceVectorProvider); ok {
		r.ReferenceVectors = provider.ReferenceVectors()
	}
	if provider, ok := strategy.(framework.ReferencePointProvider); ok {
		r.ReferencePoints = provider.ReferencePoints()
	}
	return r, nil
}

// Write serializes the report as indented JSON.
func (r *RunReport) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
