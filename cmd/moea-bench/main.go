// moea-bench runs one selection strategy against one benchmark problem and
// emits a JSON run report, optionally with an HTML front plot.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/kdis-lab/moea-go/pkg/multiobjective/benchmarks"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/report"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/strategies"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/util"
)

type options struct {
	strategy       string
	problem        string
	numVars        int
	populationSize int
	generations    int
	crossoverRate  float64
	mutationRate   float64
	seed           uint64
	divisions      int
	epsilon        float64
	reportPath     string
	plot           bool
}

func main() {
	var opts options
	pflag.StringVar(&opts.strategy, "strategy", "nsga2",
		"selection strategy: nsga2, nsga3, spea2, moead, paes, ibea, ibea-hv, hype, grea, rvea, smsemoa, omopso, smpso, ssemoea, par")
	pflag.StringVar(&opts.problem, "problem", "zdt1", "benchmark problem: zdt1, zdt2, zdt3, dtlz1, dtlz2")
	pflag.IntVar(&opts.numVars, "vars", 30, "decision variable count")
	pflag.IntVar(&opts.populationSize, "population", 100, "population size")
	pflag.IntVar(&opts.generations, "generations", 250, "generation count")
	pflag.Float64Var(&opts.crossoverRate, "crossover-rate", 0.9, "crossover probability")
	pflag.Float64Var(&opts.mutationRate, "mutation-rate", 0.03, "per-variable mutation probability")
	pflag.Uint64Var(&opts.seed, "seed", 1, "random seed")
	pflag.IntVar(&opts.divisions, "divisions", 12, "grid/reference divisions for GrEA, RVEA, NSGA-III and PAR")
	pflag.Float64Var(&opts.epsilon, "epsilon", 0.0075, "epsilon cell width for OMOPSO and SSeMOEA")
	pflag.StringVar(&opts.reportPath, "report", "", "write the JSON run report to this file instead of stdout")
	pflag.BoolVar(&opts.plot, "plot", false, "render an HTML front plot next to the report")

	klog.InitFlags(nil)
	pflag.CommandLine.AddGoFlagSet(flag.CommandLine)
	pflag.Parse()

	if err := run(opts); err != nil {
		klog.ErrorS(err, "Benchmark run failed")
		os.Exit(1)
	}
}

func run(opts options) error {
	problem, err := buildProblem(opts)
	if err != nil {
		return err
	}
	objs := problem.Objectives()

	strategy, popSize, err := buildStrategy(opts, objs)
	if err != nil {
		return err
	}
	if popSize != opts.populationSize {
		klog.InfoS("Adjusted population size to the strategy's vector count",
			"requested", opts.populationSize, "effective", popSize)
	}

	cfg := framework.EngineConfig{
		PopulationSize: popSize,
		MaxGenerations: opts.generations,
		CrossoverRate:  opts.crossoverRate,
		MutationRate:   opts.mutationRate,
		Seed:           opts.seed,
	}
	engine, err := framework.NewEngine(problem, strategy, cfg)
	if err != nil {
		return err
	}

	klog.InfoS("Starting run", "strategy", strategy.Name(), "problem", problem.Name(),
		"population", popSize, "generations", opts.generations, "seed", opts.seed)
	start := time.Now()
	pop, archive, err := engine.Run()
	if err != nil {
		return fmt.Errorf("running %s on %s: %w", strategy.Name(), problem.Name(), err)
	}
	elapsed := time.Since(start)

	result, err := report.New(problem, strategy, cfg, pop, archive, elapsed)
	if err != nil {
		return err
	}
	out := os.Stdout
	if opts.reportPath != "" {
		f, err := os.Create(opts.reportPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if err := result.Write(out); err != nil {
		return err
	}

	if opts.plot {
		final := pop
		if len(archive) > 0 {
			final = archive
		}
		points := make([]framework.ObjectiveSpacePoint, len(final))
		for i, ind := range final {
			points[i] = framework.ObjectiveSpacePoint(ind.Fitness.Clone())
		}
		if err := util.PlotResultsFile(points, problem, strategy.Name()); err != nil {
			return fmt.Errorf("plotting: %w", err)
		}
	}

	klog.InfoS("Run complete", "strategy", strategy.Name(), "problem", problem.Name(),
		"duration", elapsed, "population", len(pop), "archive", len(archive))
	return nil
}

func buildProblem(opts options) (framework.Problem, error) {
	switch strings.ToLower(opts.problem) {
	case "zdt1":
		return benchmarks.NewZDT1(opts.numVars), nil
	case "zdt2":
		return benchmarks.NewZDT2(opts.numVars), nil
	case "zdt3":
		return benchmarks.NewZDT3(opts.numVars), nil
	case "dtlz1":
		return benchmarks.NewDTLZ1(opts.numVars, 2), nil
	case "dtlz2":
		return benchmarks.NewDTLZ2(opts.numVars, 2), nil
	default:
		return nil, fmt.Errorf("unknown problem %q", opts.problem)
	}
}

// buildStrategy wires the chosen strategy with CLI-level defaults. It returns
// the effective population size, which decomposition strategies pin to their
// weight-vector count.
func buildStrategy(opts options, objs []framework.Objective) (framework.Strategy, int, error) {
	popSize := opts.populationSize
	epsilons := make([]float64, len(objs))
	for i := range epsilons {
		epsilons[i] = opts.epsilon
	}

	switch strings.ToLower(opts.strategy) {
	case "nsga2":
		s, err := strategies.NewNSGA2(strategies.NSGA2Config{}, objs)
		return s, popSize, err
	case "nsga3":
		s, err := strategies.NewNSGA3(strategies.NSGA3Config{P1: opts.divisions}, objs)
		return s, popSize, err
	case "spea2":
		s, err := strategies.NewSPEA2(strategies.SPEA2Config{ArchiveSize: popSize}, objs)
		return s, popSize, err
	case "moead":
		// H is chosen so the subproblem count lands on the population size
		// for the 2-objective benchmarks.
		h := popSize - 1
		s, err := strategies.NewMOEAD(strategies.MOEADConfig{T: 20, Nr: 2, H: h, ExternalArchive: true}, objs)
		if err != nil {
			return nil, 0, err
		}
		return s, len(s.ReferenceVectors()), nil
	case "paes":
		s, err := strategies.NewPAES(strategies.PAESConfig{Bisections: 5, ArchiveSize: popSize, Lambda: popSize}, objs)
		return s, popSize, err
	case "ibea":
		s, err := strategies.NewIBEA(strategies.IBEAConfig{Kappa: 0.05, Indicator: strategies.IndicatorEpsilon}, objs)
		return s, popSize, err
	case "ibea-hv":
		s, err := strategies.NewIBEA(strategies.IBEAConfig{Kappa: 0.05, Indicator: strategies.IndicatorHypervolume}, objs)
		return s, popSize, err
	case "hype":
		s, err := strategies.NewHypE(strategies.HypEConfig{}, objs)
		return s, popSize, err
	case "grea":
		s, err := strategies.NewGrEA(strategies.GrEAConfig{Divisions: opts.divisions}, objs)
		return s, popSize, err
	case "rvea":
		s, err := strategies.NewRVEA(strategies.RVEAConfig{Divisions: popSize - 1, Alpha: 2, Fr: 0.1}, objs)
		if err != nil {
			return nil, 0, err
		}
		return s, len(s.ReferenceVectors()), nil
	case "smsemoa":
		s, err := strategies.NewSMSEMOA(strategies.SMSEMOAConfig{}, objs)
		return s, popSize, err
	case "omopso":
		s, err := strategies.NewOMOPSO(strategies.OMOPSOConfig{ArchiveSize: popSize, Epsilons: epsilons}, objs)
		return s, popSize, err
	case "smpso":
		s, err := strategies.NewSMPSO(strategies.SMPSOConfig{ArchiveSize: popSize}, objs)
		return s, popSize, err
	case "ssemoea":
		s, err := strategies.NewSSeMOEA(strategies.SSeMOEAConfig{Epsilons: epsilons}, objs)
		return s, popSize, err
	case "par":
		s, err := strategies.NewPAR(strategies.PARConfig{Divisions: opts.divisions}, objs)
		return s, popSize, err
	case "mochc":
		return nil, 0, fmt.Errorf("mochc needs a binary-encoded problem; the bundled benchmarks are real-valued")
	default:
		return nil, 0, fmt.Errorf("unknown strategy %q", opts.strategy)
	}
}
