package strategies_test

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
	"github.com/kdis-lab/moea-go/pkg/multiobjective/strategies"
)

func testCtx(popSize int, seed uint64) *framework.StrategyContext {
	return &framework.StrategyContext{
		Objectives:     framework.MinimizeAll(2),
		PopulationSize: popSize,
		MaxGenerations: 100,
		Rand:           rand.New(rand.NewPCG(seed, seed+1)),
	}
}

// lineFront builds n mutually non-dominated points on the line f1+f2 = n-1.
func lineFront(n int) framework.Population {
	pop := make(framework.Population, n)
	for i := range pop {
		pop[i] = framework.NewIndividual(float64(i), float64(n-1-i))
	}
	return pop
}

// shiftedFront builds n points dominated by the corresponding lineFront(n)
// members.
func shiftedFront(n int) framework.Population {
	pop := make(framework.Population, n)
	for i := range pop {
		pop[i] = framework.NewIndividual(float64(i)+0.5, float64(n-1-i)+0.5)
	}
	return pop
}

func subsetOf(t *testing.T, got framework.Population, pools ...framework.Population) {
	t.Helper()
	for _, ind := range got {
		found := false
		for _, pool := range pools {
			if pool.Contains(ind) {
				found = true
				break
			}
		}
		require.True(t, found, "selected individual %v came from nowhere", ind.Fitness)
	}
}

func TestConstructorValidation(t *testing.T) {
	objs := framework.MinimizeAll(2)
	one := framework.MinimizeAll(1)
	mixed := []framework.Objective{
		framework.NewObjective(framework.Minimize),
		framework.NewObjective(framework.Maximize),
	}

	cases := []struct {
		name string
		make func() error
	}{
		{"nsga2/one objective", func() error {
			_, err := strategies.NewNSGA2(strategies.NSGA2Config{}, one)
			return err
		}},
		{"spea2/negative archive", func() error {
			_, err := strategies.NewSPEA2(strategies.SPEA2Config{ArchiveSize: -1}, objs)
			return err
		}},
		{"moead/neighbourhood too small", func() error {
			_, err := strategies.NewMOEAD(strategies.MOEADConfig{H: 4, T: 1, Nr: 1}, objs)
			return err
		}},
		{"moead/zero replacement bound", func() error {
			_, err := strategies.NewMOEAD(strategies.MOEADConfig{H: 4, T: 2, Nr: 0}, objs)
			return err
		}},
		{"moead/mixed directions", func() error {
			_, err := strategies.NewMOEAD(strategies.MOEADConfig{H: 4, T: 2, Nr: 1}, mixed)
			return err
		}},
		{"paes/zero bisections", func() error {
			_, err := strategies.NewPAES(strategies.PAESConfig{Bisections: 0, ArchiveSize: 10}, objs)
			return err
		}},
		{"paes/zero archive", func() error {
			_, err := strategies.NewPAES(strategies.PAESConfig{Bisections: 3, ArchiveSize: 0}, objs)
			return err
		}},
		{"ibea/zero kappa", func() error {
			_, err := strategies.NewIBEA(strategies.IBEAConfig{Kappa: 0}, objs)
			return err
		}},
		{"ibea/unknown indicator", func() error {
			_, err := strategies.NewIBEA(strategies.IBEAConfig{Kappa: 0.05, Indicator: "r2"}, objs)
			return err
		}},
		{"hype/negative samples", func() error {
			_, err := strategies.NewHypE(strategies.HypEConfig{Samples: -1}, objs)
			return err
		}},
		{"hype/exact limit too small", func() error {
			_, err := strategies.NewHypE(strategies.HypEConfig{ExactLimit: 1}, objs)
			return err
		}},
		{"grea/zero divisions", func() error {
			_, err := strategies.NewGrEA(strategies.GrEAConfig{Divisions: 0}, objs)
			return err
		}},
		{"rvea/zero alpha", func() error {
			_, err := strategies.NewRVEA(strategies.RVEAConfig{Divisions: 4, Alpha: 0, Fr: 0.1}, objs)
			return err
		}},
		{"rvea/fr out of range", func() error {
			_, err := strategies.NewRVEA(strategies.RVEAConfig{Divisions: 4, Alpha: 2, Fr: 1.5}, objs)
			return err
		}},
		{"nsga3/wrong point dimension", func() error {
			_, err := strategies.NewNSGA3(strategies.NSGA3Config{UserPoints: [][]float64{{1, 0, 0}}}, objs)
			return err
		}},
		{"smsemoa/negative offspring", func() error {
			_, err := strategies.NewSMSEMOA(strategies.SMSEMOAConfig{Offspring: -1}, objs)
			return err
		}},
		{"omopso/zero archive", func() error {
			_, err := strategies.NewOMOPSO(strategies.OMOPSOConfig{ArchiveSize: 0, Epsilons: []float64{0.1, 0.1}}, objs)
			return err
		}},
		{"omopso/epsilon arity", func() error {
			_, err := strategies.NewOMOPSO(strategies.OMOPSOConfig{ArchiveSize: 10, Epsilons: []float64{0.1}}, objs)
			return err
		}},
		{"smpso/zero archive", func() error {
			_, err := strategies.NewSMPSO(strategies.SMPSOConfig{ArchiveSize: 0}, objs)
			return err
		}},
		{"mochc/preserved fraction out of range", func() error {
			_, err := strategies.NewMOCHC(strategies.MOCHCConfig{PreservedFraction: 2}, objs)
			return err
		}},
		{"par/zero divisions without points", func() error {
			_, err := strategies.NewPAR(strategies.PARConfig{Divisions: 0}, objs)
			return err
		}},
		{"ssemoea/negative epsilon", func() error {
			_, err := strategies.NewSSeMOEA(strategies.SSeMOEAConfig{Epsilons: []float64{-1, 1}}, objs)
			return err
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.make()
			require.Error(t, err)
			var cfgErr *framework.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestNSGA2EnvironmentalSelection(t *testing.T) {
	ctx := testCtx(6, 1)
	s, err := strategies.NewNSGA2(strategies.NSGA2Config{}, ctx.Objectives)
	require.NoError(t, err)

	pop := lineFront(6)
	_, err = s.Initialize(ctx, pop)
	require.NoError(t, err)

	offspring := shiftedFront(6)
	next, err := s.EnvironmentalSelection(ctx, pop, offspring, nil)
	require.NoError(t, err)
	require.Len(t, next, ctx.PopulationSize)

	// The dominated offspring must all lose to the first front.
	for _, ind := range next {
		require.True(t, pop.Contains(ind), "dominated offspring %v survived", ind.Fitness)
	}
}

func TestNSGA2MatingNeedsTwo(t *testing.T) {
	ctx := testCtx(4, 1)
	s, err := strategies.NewNSGA2(strategies.NSGA2Config{}, ctx.Objectives)
	require.NoError(t, err)

	_, err = s.MatingSelection(ctx, lineFront(1), nil)
	var degErr *framework.DegenerateInputError
	require.ErrorAs(t, err, &degErr)
}

func TestSPEA2ArchiveBound(t *testing.T) {
	ctx := testCtx(10, 2)
	s, err := strategies.NewSPEA2(strategies.SPEA2Config{ArchiveSize: 4}, ctx.Objectives)
	require.NoError(t, err)

	pop := lineFront(10)
	archive, err := s.Initialize(ctx, pop)
	require.NoError(t, err)
	require.Len(t, archive, 4)

	archive, err = s.UpdateArchive(ctx, pop, shiftedFront(10), archive)
	require.NoError(t, err)
	require.Len(t, archive, 4)
	subsetOf(t, archive, pop)
}

func TestSPEA2ArchiveFillsFromDominated(t *testing.T) {
	ctx := testCtx(4, 3)
	s, err := strategies.NewSPEA2(strategies.SPEA2Config{ArchiveSize: 4}, ctx.Objectives)
	require.NoError(t, err)

	// One non-dominated point plus three dominated ones: the shortfall is
	// filled with the best dominated members.
	pop := framework.Population{
		framework.NewIndividual(0, 0),
		framework.NewIndividual(1, 1),
		framework.NewIndividual(2, 2),
		framework.NewIndividual(3, 3),
	}
	archive, err := s.Initialize(ctx, pop)
	require.NoError(t, err)
	require.Len(t, archive, 4)
}

func TestSPEA2DensityPrefersSparserMembers(t *testing.T) {
	ctx := testCtx(4, 30)
	s, err := strategies.NewSPEA2(strategies.SPEA2Config{ArchiveSize: 2}, ctx.Objectives)
	require.NoError(t, err)

	a := framework.NewIndividual(0, 0)
	b := framework.NewIndividual(1, 3)
	c := framework.NewIndividual(3, 2)
	pop := framework.Population{a, b, c, framework.NewIndividual(6, 5)}

	// b and c carry the same raw fitness (each dominated by a alone), so the
	// shortfall slot is decided by density. With k = sqrt(4) = 2 the k-th
	// nearest neighbour of b lies at sqrt(10) and of c at sqrt(13), making c
	// the sparser member.
	archive, err := s.Initialize(ctx, pop)
	require.NoError(t, err)
	require.Len(t, archive, 2)
	require.True(t, archive.Contains(a))
	require.True(t, archive.Contains(c))
	require.False(t, archive.Contains(b))
}

func TestMOEADSubproblemCountMustMatchPopulation(t *testing.T) {
	ctx := testCtx(5, 4)
	s, err := strategies.NewMOEAD(strategies.MOEADConfig{H: 4, T: 2, Nr: 1}, ctx.Objectives)
	require.NoError(t, err)
	require.Len(t, s.ReferenceVectors(), 5)

	_, err = s.Initialize(ctx, lineFront(4))
	var cfgErr *framework.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)

	_, err = s.Initialize(ctx, lineFront(5))
	require.NoError(t, err)
}

func TestMOEADSelectionShapes(t *testing.T) {
	ctx := testCtx(5, 5)
	s, err := strategies.NewMOEAD(strategies.MOEADConfig{H: 4, T: 3, Nr: 2}, ctx.Objectives)
	require.NoError(t, err)

	pop := lineFront(5)
	_, err = s.Initialize(ctx, pop)
	require.NoError(t, err)

	parents, err := s.MatingSelection(ctx, pop, nil)
	require.NoError(t, err)
	require.Len(t, parents, 10, "two parents per subproblem")

	offspring := shiftedFront(5)
	next, err := s.EnvironmentalSelection(ctx, pop, offspring, nil)
	require.NoError(t, err)
	require.Len(t, next, 5)
	subsetOf(t, next, pop, offspring)
}

func TestMOEADExternalArchiveIsPareto(t *testing.T) {
	ctx := testCtx(5, 6)
	s, err := strategies.NewMOEAD(strategies.MOEADConfig{H: 4, T: 2, Nr: 1, ExternalArchive: true}, ctx.Objectives)
	require.NoError(t, err)

	pop := lineFront(5)
	archive, err := s.Initialize(ctx, pop)
	require.NoError(t, err)
	require.Len(t, archive, 5, "a mutually non-dominated population survives whole")

	archive, err = s.UpdateArchive(ctx, pop, shiftedFront(5), archive)
	require.NoError(t, err)
	require.Len(t, archive, 5)
	subsetOf(t, archive, pop)
}

func TestPAESStrictArity(t *testing.T) {
	ctx := testCtx(1, 7)
	s, err := strategies.NewPAES(strategies.PAESConfig{Bisections: 3, ArchiveSize: 5}, ctx.Objectives)
	require.NoError(t, err)

	_, err = s.MatingSelection(ctx, lineFront(2), nil)
	var degErr *framework.DegenerateInputError
	require.ErrorAs(t, err, &degErr)

	parents, err := s.MatingSelection(ctx, lineFront(1), nil)
	require.NoError(t, err)
	require.Len(t, parents, 1)
}

func TestPAESArchiveBound(t *testing.T) {
	ctx := testCtx(6, 8)
	s, err := strategies.NewPAES(strategies.PAESConfig{Bisections: 2, ArchiveSize: 3, Lambda: 6}, ctx.Objectives)
	require.NoError(t, err)

	pop := lineFront(6)
	archive, err := s.Initialize(ctx, pop)
	require.NoError(t, err)
	require.Len(t, archive, 3)

	archive, err = s.UpdateArchive(ctx, pop, lineFront(6), archive)
	require.NoError(t, err)
	require.LessOrEqual(t, len(archive), 3)
}

func TestPAESInitializeEvictsFromCrowdedCells(t *testing.T) {
	ctx := testCtx(6, 31)
	s, err := strategies.NewPAES(strategies.PAESConfig{Bisections: 2, ArchiveSize: 4, Lambda: 6}, ctx.Objectives)
	require.NoError(t, err)

	lo := framework.NewIndividual(0, 10)
	hi := framework.NewIndividual(10, 0)
	pop := framework.Population{
		lo,
		framework.NewIndividual(6.0, 4.0),
		framework.NewIndividual(6.1, 3.9),
		framework.NewIndividual(6.2, 3.8),
		framework.NewIndividual(6.3, 3.7),
		hi,
	}

	// All six are non-dominated; the overflow must come out of the single
	// grid cell holding the four clustered members, never the extremes.
	archive, err := s.Initialize(ctx, pop)
	require.NoError(t, err)
	require.Len(t, archive, 4)
	require.True(t, archive.Contains(lo))
	require.True(t, archive.Contains(hi))
}

func TestPAESDuelKeepsDominatingChild(t *testing.T) {
	ctx := testCtx(1, 9)
	s, err := strategies.NewPAES(strategies.PAESConfig{Bisections: 3, ArchiveSize: 5}, ctx.Objectives)
	require.NoError(t, err)

	parent := framework.NewIndividual(2, 2)
	child := framework.NewIndividual(1, 1)
	next, err := s.EnvironmentalSelection(ctx, framework.Population{parent}, framework.Population{child}, nil)
	require.NoError(t, err)
	require.Len(t, next, 1)
	require.Same(t, child, next[0])

	// The dominated mutant loses the duel.
	worse := framework.NewIndividual(3, 3)
	next, err = s.EnvironmentalSelection(ctx, next, framework.Population{worse}, nil)
	require.NoError(t, err)
	require.Same(t, child, next[0])
}

func TestIBEAEnvironmentalSelection(t *testing.T) {
	for _, indicator := range []strategies.IBEAIndicator{strategies.IndicatorEpsilon, strategies.IndicatorHypervolume} {
		t.Run(string(indicator), func(t *testing.T) {
			ctx := testCtx(5, 10)
			s, err := strategies.NewIBEA(strategies.IBEAConfig{Kappa: 0.05, Indicator: indicator}, ctx.Objectives)
			require.NoError(t, err)

			pop := lineFront(5)
			_, err = s.Initialize(ctx, pop)
			require.NoError(t, err)

			offspring := shiftedFront(5)
			next, err := s.EnvironmentalSelection(ctx, pop, offspring, nil)
			require.NoError(t, err)
			require.Len(t, next, ctx.PopulationSize)
			subsetOf(t, next, pop, offspring)
		})
	}
}

func TestHypEEnvironmentalSelection(t *testing.T) {
	ctx := testCtx(5, 11)
	s, err := strategies.NewHypE(strategies.HypEConfig{}, ctx.Objectives)
	require.NoError(t, err)

	pop := lineFront(8)
	_, err = s.Initialize(ctx, pop)
	require.NoError(t, err)

	next, err := s.EnvironmentalSelection(ctx, pop, nil, nil)
	require.NoError(t, err)
	require.Len(t, next, ctx.PopulationSize)
	subsetOf(t, next, pop)

	parents, err := s.MatingSelection(ctx, next, nil)
	require.NoError(t, err)
	require.Len(t, parents, ctx.PopulationSize)
}

func TestGrEACriticalFrontReduction(t *testing.T) {
	ctx := testCtx(4, 12)
	s, err := strategies.NewGrEA(strategies.GrEAConfig{Divisions: 4}, ctx.Objectives)
	require.NoError(t, err)

	pop := lineFront(8)
	_, err = s.Initialize(ctx, pop)
	require.NoError(t, err)

	next, err := s.EnvironmentalSelection(ctx, pop, nil, nil)
	require.NoError(t, err)
	require.Len(t, next, ctx.PopulationSize)
	subsetOf(t, next, pop)

	parents, err := s.MatingSelection(ctx, next, nil)
	require.NoError(t, err)
	require.Len(t, parents, ctx.PopulationSize)
}

func TestRVEAKeepsOnePerVector(t *testing.T) {
	ctx := testCtx(8, 13)
	s, err := strategies.NewRVEA(strategies.RVEAConfig{Divisions: 4, Alpha: 2, Fr: 0.1}, ctx.Objectives)
	require.NoError(t, err)
	require.Len(t, s.ReferenceVectors(), 5)

	pop := lineFront(8)
	_, err = s.Initialize(ctx, pop)
	require.NoError(t, err)

	offspring := shiftedFront(8)
	next, err := s.EnvironmentalSelection(ctx, pop, offspring, nil)
	require.NoError(t, err)
	require.NotEmpty(t, next)
	require.LessOrEqual(t, len(next), len(s.ReferenceVectors()),
		"at most one survivor per reference vector")

	// At generation 0 the angle penalty is off: per vector the closest point
	// to the ideal wins, and the shifted duplicates all sit farther out.
	for _, ind := range next {
		require.True(t, pop.Contains(ind), "dominated offspring %v survived", ind.Fitness)
	}
}

func TestNSGA3Niching(t *testing.T) {
	ctx := testCtx(6, 14)
	s, err := strategies.NewNSGA3(strategies.NSGA3Config{P1: 4}, ctx.Objectives)
	require.NoError(t, err)
	require.Len(t, s.ReferencePoints(), 5)

	pop := lineFront(8)
	_, err = s.Initialize(ctx, pop)
	require.NoError(t, err)

	next, err := s.EnvironmentalSelection(ctx, pop, lineFront(8), nil)
	require.NoError(t, err)
	require.Len(t, next, ctx.PopulationSize)
}

func TestNSGA3UserPoints(t *testing.T) {
	points := [][]float64{{1, 0}, {0.5, 0.5}, {0, 1}}
	s, err := strategies.NewNSGA3(strategies.NSGA3Config{UserPoints: points}, framework.MinimizeAll(2))
	require.NoError(t, err)
	require.Equal(t, points, s.ReferencePoints())
}

func TestSMSEMOASteadyState(t *testing.T) {
	ctx := testCtx(6, 15)
	s, err := strategies.NewSMSEMOA(strategies.SMSEMOAConfig{}, ctx.Objectives)
	require.NoError(t, err)

	pop := lineFront(6)
	_, err = s.Initialize(ctx, pop)
	require.NoError(t, err)

	parents, err := s.MatingSelection(ctx, pop, nil)
	require.NoError(t, err)
	require.Len(t, parents, 2, "one parent pair per steady-state child")

	// A dominated child enters and leaves again; the size never drifts.
	child := framework.NewIndividual(3.5, 3.5)
	next, err := s.EnvironmentalSelection(ctx, pop, framework.Population{child}, nil)
	require.NoError(t, err)
	require.Len(t, next, len(pop))
	require.False(t, next.Contains(child))

	// A child dominating a member replaces it.
	better := framework.NewIndividual(2.5, 2.5)
	next, err = s.EnvironmentalSelection(ctx, next, framework.Population{better}, nil)
	require.NoError(t, err)
	require.Len(t, next, len(pop))
	require.True(t, next.Contains(better))
}

func TestOMOPSOArchive(t *testing.T) {
	ctx := testCtx(10, 16)
	s, err := strategies.NewOMOPSO(strategies.OMOPSOConfig{ArchiveSize: 10, Epsilons: []float64{0.05, 0.05}}, ctx.Objectives)
	require.NoError(t, err)

	pop := lineFront(10)
	archive, err := s.Initialize(ctx, pop)
	require.NoError(t, err)
	require.Len(t, archive, 10)

	// The swarm replacement returns the moved particles unchanged.
	moved := shiftedFront(10)
	next, err := s.EnvironmentalSelection(ctx, pop, moved, archive)
	require.NoError(t, err)
	require.Equal(t, moved.Fitnesses(), next.Fitnesses())

	// Every moved particle is epsilon-dominated by an existing leader, so
	// none displaces the front.
	archive, err = s.UpdateArchive(ctx, next, moved, archive)
	require.NoError(t, err)
	subsetOf(t, archive, pop)

	leaders, err := s.MatingSelection(ctx, next, archive)
	require.NoError(t, err)
	require.Len(t, leaders, len(next))
	subsetOf(t, leaders, archive)
}

func TestOMOPSOArchiveTruncation(t *testing.T) {
	ctx := testCtx(10, 24)
	s, err := strategies.NewOMOPSO(strategies.OMOPSOConfig{ArchiveSize: 4, Epsilons: []float64{0.05, 0.05}}, ctx.Objectives)
	require.NoError(t, err)

	archive, err := s.Initialize(ctx, lineFront(10))
	require.NoError(t, err)
	require.Len(t, archive, 4)
}

func TestSMPSOArchive(t *testing.T) {
	ctx := testCtx(10, 17)
	s, err := strategies.NewSMPSO(strategies.SMPSOConfig{ArchiveSize: 4}, ctx.Objectives)
	require.NoError(t, err)

	pop := lineFront(10)
	archive, err := s.Initialize(ctx, pop)
	require.NoError(t, err)
	require.Len(t, archive, 4)

	offspring := shiftedFront(10)
	archive, err = s.UpdateArchive(ctx, pop, offspring, archive)
	require.NoError(t, err)
	require.Len(t, archive, 4)
	subsetOf(t, archive, pop, offspring)
}

func TestMOCHCRequiresBinaryGenotypes(t *testing.T) {
	ctx := testCtx(4, 18)
	s, err := strategies.NewMOCHC(strategies.MOCHCConfig{}, ctx.Objectives)
	require.NoError(t, err)

	_, err = s.MatingSelection(ctx, lineFront(4), nil)
	var cfgErr *framework.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func binaryInd(bits []bool, fitness ...float64) *framework.Individual {
	return &framework.Individual{Solution: framework.NewBinarySolution(bits), Fitness: fitness}
}

func TestMOCHCIncestPrevention(t *testing.T) {
	ctx := testCtx(4, 19)
	s, err := strategies.NewMOCHC(strategies.MOCHCConfig{}, ctx.Objectives)
	require.NoError(t, err)

	zeros := binaryInd(make([]bool, 8), 0, 3)
	ones := binaryInd([]bool{true, true, true, true, true, true, true, true}, 3, 0)
	pop := framework.Population{zeros, ones}

	// Threshold derives to 8/4 = 2; the only admissible pair sits at Hamming
	// distance 8, well past it.
	_, err = s.Initialize(ctx, pop)
	require.NoError(t, err)

	parents, err := s.MatingSelection(ctx, pop, nil)
	require.NoError(t, err)
	require.Len(t, parents, ctx.PopulationSize)
	subsetOf(t, parents, pop)
}

func TestMOCHCMatingAdmitsNoConvergedPairs(t *testing.T) {
	ctx := testCtx(4, 32)
	s, err := strategies.NewMOCHC(strategies.MOCHCConfig{InitialThreshold: 2}, ctx.Objectives)
	require.NoError(t, err)

	// Four copies of one genotype: every pair sits at Hamming distance zero,
	// so nothing clears the threshold and the pool comes back empty.
	genome := []bool{true, false, true, false, true, false, true, false}
	pop := make(framework.Population, 4)
	for i := range pop {
		pop[i] = binaryInd(append([]bool(nil), genome...), 1, 2)
	}
	_, err = s.Initialize(ctx, pop)
	require.NoError(t, err)

	parents, err := s.MatingSelection(ctx, pop, nil)
	require.NoError(t, err)
	require.Empty(t, parents)
}

func TestMOCHCSelectionTruncates(t *testing.T) {
	ctx := testCtx(4, 20)
	s, err := strategies.NewMOCHC(strategies.MOCHCConfig{InitialThreshold: 2}, ctx.Objectives)
	require.NoError(t, err)

	pop := framework.Population{
		binaryInd([]bool{false, false, false, false}, 0, 3),
		binaryInd([]bool{false, false, true, true}, 1, 2),
		binaryInd([]bool{true, true, false, false}, 2, 1),
		binaryInd([]bool{true, true, true, true}, 3, 0),
	}
	_, err = s.Initialize(ctx, pop)
	require.NoError(t, err)

	offspring := framework.Population{
		binaryInd([]bool{false, true, false, true}, 0.5, 0.5),
		binaryInd([]bool{true, false, true, false}, 4, 4),
	}
	next, err := s.EnvironmentalSelection(ctx, pop, offspring, nil)
	require.NoError(t, err)
	require.Len(t, next, ctx.PopulationSize)
	require.True(t, next.Contains(offspring[0]), "non-dominated child must survive")
	require.False(t, next.Contains(offspring[1]), "dominated child must not survive")
}

func TestSSeMOEAArchiveAdmission(t *testing.T) {
	ctx := testCtx(4, 21)
	s, err := strategies.NewSSeMOEA(strategies.SSeMOEAConfig{Epsilons: []float64{1, 1}}, ctx.Objectives)
	require.NoError(t, err)

	a := framework.NewIndividual(1.1, 1.1)
	pop := framework.Population{
		a,
		framework.NewIndividual(1.2, 1.2), // same cell, dominated by a
		framework.NewIndividual(5.5, 5.5), // cell grid-dominated by a's cell
		framework.NewIndividual(1.4, 5.2), // cell grid-dominated by a's cell
	}
	archive, err := s.Initialize(ctx, pop)
	require.NoError(t, err)
	require.Len(t, archive, 1)
	require.Same(t, a, archive[0])

	// A same-cell child dominating the representative takes its place.
	e := framework.NewIndividual(1.05, 1.05)
	archive, err = s.UpdateArchive(ctx, pop, framework.Population{e}, archive)
	require.NoError(t, err)
	require.Len(t, archive, 1)
	require.Same(t, e, archive[0])

	// Children in incomparable cells join alongside.
	f := framework.NewIndividual(3.2, 0.1)
	g := framework.NewIndividual(0.1, 3.2)
	archive, err = s.UpdateArchive(ctx, pop, framework.Population{f, g}, archive)
	require.NoError(t, err)
	require.Len(t, archive, 3)
}

func TestSSeMOEASteadyStateReplacement(t *testing.T) {
	ctx := testCtx(3, 22)
	s, err := strategies.NewSSeMOEA(strategies.SSeMOEAConfig{Epsilons: []float64{0.5, 0.5}}, ctx.Objectives)
	require.NoError(t, err)

	pop := framework.Population{
		framework.NewIndividual(1, 1),
		framework.NewIndividual(2, 2),
		framework.NewIndividual(3, 3),
	}
	// A dominating child replaces one of its victims; a dominated child is
	// discarded outright.
	winner := framework.NewIndividual(0.5, 0.5)
	loser := framework.NewIndividual(9, 9)
	next, err := s.EnvironmentalSelection(ctx, pop, framework.Population{winner, loser}, nil)
	require.NoError(t, err)
	require.Len(t, next, len(pop))
	require.True(t, next.Contains(winner))
	require.False(t, next.Contains(loser))
}

func TestPARSelectionFollowsPreferences(t *testing.T) {
	ctx := testCtx(5, 23)
	s, err := strategies.NewPAR(strategies.PARConfig{Divisions: 4}, ctx.Objectives)
	require.NoError(t, err)
	require.Len(t, s.ReferencePoints(), 5)

	pop := lineFront(8)
	_, err = s.Initialize(ctx, pop)
	require.NoError(t, err)

	next, err := s.EnvironmentalSelection(ctx, pop, shiftedFront(8), nil)
	require.NoError(t, err)
	require.Len(t, next, ctx.PopulationSize)
	// Rank dominates the ordering: the dominated offspring never outlive a
	// full first front.
	subsetOf(t, next, pop)
}

func TestStrategyNames(t *testing.T) {
	objs := framework.MinimizeAll(2)

	paes, err := strategies.NewPAES(strategies.PAESConfig{Bisections: 3, ArchiveSize: 10, Lambda: 4}, objs)
	require.NoError(t, err)
	require.Equal(t, "PAES+lambda", paes.Name())

	ibea, err := strategies.NewIBEA(strategies.IBEAConfig{Kappa: 0.05, Indicator: strategies.IndicatorHypervolume}, objs)
	require.NoError(t, err)
	require.Equal(t, "IBEA-HV", ibea.Name())
}

func TestComparatorProviders(t *testing.T) {
	objs := framework.MinimizeAll(2)
	nsga2, err := strategies.NewNSGA2(strategies.NSGA2Config{}, objs)
	require.NoError(t, err)

	var provider framework.ComparatorProvider = nsga2
	require.NotNil(t, provider.Comparator())

	cmp := provider.Comparator()
	rel, err := cmp.Compare(framework.FitnessVector{0, 0}, framework.FitnessVector{1, 1})
	require.NoError(t, err)
	require.Equal(t, framework.Dominating, rel)

	var missing *framework.ObjectiveAccessError
	_, err = cmp.Compare(framework.FitnessVector{0}, framework.FitnessVector{1, 1})
	require.True(t, errors.As(err, &missing))
}
