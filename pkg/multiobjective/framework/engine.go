package framework

import (
	"fmt"
	"math/rand/v2"

	"k8s.io/klog/v2"
)

// EngineConfig configures a generational run.
type EngineConfig struct {
	PopulationSize int
	MaxGenerations int
	CrossoverRate  float64
	MutationRate   float64
	Seed           uint64
}

// Engine is the external controller of a strategy lifecycle: it owns the
// problem evaluation and the variation step, and drives the five strategy
// operations once per generation. It runs purely sequential: a step either
// completes or returns an error.
type Engine struct {
	Problem  Problem
	Strategy Strategy
	Config   EngineConfig

	ctx *StrategyContext
}

// NewEngine validates the configuration and wires a run.
func NewEngine(problem Problem, strategy Strategy, cfg EngineConfig) (*Engine, error) {
	if problem == nil {
		return nil, Configf("problem", "must not be nil")
	}
	if strategy == nil {
		return nil, Configf("strategy", "must not be nil")
	}
	if cfg.PopulationSize < 2 {
		return nil, Configf("population-size", "must be at least 2, got %d", cfg.PopulationSize)
	}
	if cfg.MaxGenerations < 1 {
		return nil, Configf("max-generations", "must be positive, got %d", cfg.MaxGenerations)
	}
	if cfg.CrossoverRate < 0 || cfg.CrossoverRate > 1 {
		return nil, Configf("crossover-rate", "must be within [0,1], got %v", cfg.CrossoverRate)
	}
	if cfg.MutationRate < 0 || cfg.MutationRate > 1 {
		return nil, Configf("mutation-rate", "must be within [0,1], got %v", cfg.MutationRate)
	}
	return &Engine{Problem: problem, Strategy: strategy, Config: cfg}, nil
}

// Context returns the strategy context of the current run.
func (e *Engine) Context() *StrategyContext {
	return e.ctx
}

// Evaluate computes the fitness vector and feasibility of one solution.
func (e *Engine) Evaluate(sol Solution) *Individual {
	funcs := e.Problem.ObjectiveFuncs()
	fitness := make(FitnessVector, len(funcs))
	for i, f := range funcs {
		fitness[i] = f(sol)
	}
	ind := &Individual{Solution: sol, Fitness: fitness}
	for _, c := range e.Problem.Constraints() {
		if !c(sol) {
			ind.Infeasible = true
			break
		}
	}
	return ind
}

// Run executes the full lifecycle and returns the final population and
// archive.
func (e *Engine) Run() (Population, Population, error) {
	rng := rand.New(rand.NewPCG(e.Config.Seed, e.Config.Seed^0x9e3779b97f4a7c15))
	e.ctx = &StrategyContext{
		Objectives:     e.Problem.Objectives(),
		PopulationSize: e.Config.PopulationSize,
		MaxGenerations: e.Config.MaxGenerations,
		VarBounds:      e.Problem.Bounds(),
		Evaluate:       e.Evaluate,
		Rand:           rng,
	}

	pop := make(Population, 0, e.Config.PopulationSize)
	for _, sol := range e.Problem.Initialize(e.Config.PopulationSize, rng) {
		pop = append(pop, e.Evaluate(sol))
	}

	archive, err := e.Strategy.Initialize(e.ctx, pop)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing %s: %w", e.Strategy.Name(), err)
	}

	for gen := 0; gen < e.Config.MaxGenerations; gen++ {
		e.ctx.Generation = gen

		if err := e.Strategy.Update(e.ctx); err != nil {
			return nil, nil, fmt.Errorf("generation %d update: %w", gen, err)
		}

		parents, err := e.Strategy.MatingSelection(e.ctx, pop, archive)
		if err != nil {
			return nil, nil, fmt.Errorf("generation %d mating selection: %w", gen, err)
		}

		offspring := e.variation(parents, rng)

		pop, err = e.Strategy.EnvironmentalSelection(e.ctx, pop, offspring, archive)
		if err != nil {
			return nil, nil, fmt.Errorf("generation %d environmental selection: %w", gen, err)
		}

		archive, err = e.Strategy.UpdateArchive(e.ctx, pop, offspring, archive)
		if err != nil {
			return nil, nil, fmt.Errorf("generation %d archive update: %w", gen, err)
		}

		klog.V(4).InfoS("generation complete", "strategy", e.Strategy.Name(),
			"problem", e.Problem.Name(), "generation", gen, "population", len(pop), "archive", len(archive))
	}

	return pop, archive, nil
}

// variation produces one offspring batch from the selected parents by
// pairwise crossover and mutation.
func (e *Engine) variation(parents Population, rng *rand.Rand) Population {
	offspring := make(Population, 0, len(parents))
	for i := 0; i+1 < len(parents); i += 2 {
		c1, c2 := parents[i].Solution.Crossover(parents[i+1].Solution, e.Config.CrossoverRate, rng)
		c1.Mutate(e.Config.MutationRate, rng)
		c2.Mutate(e.Config.MutationRate, rng)
		offspring = append(offspring, e.Evaluate(c1), e.Evaluate(c2))
	}
	if len(parents)%2 == 1 {
		last := parents[len(parents)-1].Solution.Clone()
		last.Mutate(e.Config.MutationRate, rng)
		offspring = append(offspring, e.Evaluate(last))
	}
	return offspring
}
