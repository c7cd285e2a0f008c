package util

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
)

// FrontSeries is one named point set on a front plot.
type FrontSeries struct {
	Name   string
	Points []framework.ObjectiveSpacePoint
}

// PopulationSeries turns a population's fitness vectors into a plot series.
func PopulationSeries(name string, pop framework.Population) FrontSeries {
	points := make([]framework.ObjectiveSpacePoint, len(pop))
	for i, ind := range pop {
		points[i] = framework.ObjectiveSpacePoint(ind.Fitness.Clone())
	}
	return FrontSeries{Name: name, Points: points}
}

// PlotFronts renders a scatter chart of one or more 2D fronts, optionally
// with the problem's true Pareto front as a reference series.
func PlotFronts(w io.Writer, title string, problem framework.Problem, series ...FrontSeries) error {
	if len(series) == 0 {
		return fmt.Errorf("no series to plot for %q", title)
	}
	for _, s := range series {
		if len(s.Points) == 0 {
			return fmt.Errorf("series %q is empty", s.Name)
		}
		if len(s.Points[0]) != 2 {
			return fmt.Errorf("series %q: can only plot 2D fronts", s.Name)
		}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "f1(x)",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "f2(x)",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}))

	if problem != nil {
		if trueFront := problem.TrueParetoFront(100); len(trueFront) > 0 {
			data := make([]opts.ScatterData, len(trueFront))
			for i, p := range trueFront {
				data[i] = opts.ScatterData{
					Value:      p,
					Symbol:     "circle",
					SymbolSize: 10,
				}
			}
			scatter.AddSeries("True Pareto Front", data)
		}
	}

	for _, s := range series {
		data := make([]opts.ScatterData, len(s.Points))
		for i, p := range s.Points {
			data[i] = opts.ScatterData{
				Value:      []float64{p[0], p[1]},
				Symbol:     "triangle",
				SymbolSize: 10,
			}
		}
		scatter.AddSeries(s.Name, data)
	}
	scatter.SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{
			Show: opts.Bool(false),
		}),
		charts.WithEmphasisOpts(opts.Emphasis{}),
	)

	return scatter.Render(w)
}

// PlotResultsFile renders a front comparison straight to an HTML file named
// after the problem and strategy.
func PlotResultsFile(results []framework.ObjectiveSpacePoint, problem framework.Problem, strategyName string) error {
	f, err := os.Create(fmt.Sprintf("%s_%s_results.html", problem.Name(), strategyName))
	if err != nil {
		return err
	}
	defer f.Close()

	title := fmt.Sprintf("%s Results for %s Benchmark", strategyName, problem.Name())
	return PlotFronts(f, title, problem, FrontSeries{
		Name:   fmt.Sprintf("%s Solutions", strategyName),
		Points: results,
	})
}
