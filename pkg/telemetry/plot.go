// Package telemetry carries the solver's observability surface: metrics,
// tracing, structured logging, and convergence plotting, wired into the
// evolution loop as an evolution.Observer.
package telemetry

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// GenerationPoint is one generation's logged fitness, the primary
// (first-component) value of the best individual found so far.
type GenerationPoint struct {
	Generation int
	Best       float64
	Average    float64
}

// PlotConvergence renders a best/average-fitness-vs-generation line chart
// to outputPath, the objective-space curve rather than a geospatial route
// map (spec.md §1's geospatial visualisation remains out of scope).
func PlotConvergence(points []GenerationPoint, runName string, outputPath string) error {
	if len(points) == 0 {
		return fmt.Errorf("telemetry: no generation points to plot for %s", runName)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("Convergence for %s", runName),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "generation"}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "fitness",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
	)

	xAxis := make([]string, len(points))
	best := make([]opts.LineData, len(points))
	avg := make([]opts.LineData, len(points))
	for i, p := range points {
		xAxis[i] = fmt.Sprintf("%d", p.Generation)
		best[i] = opts.LineData{Value: p.Best}
		avg[i] = opts.LineData{Value: p.Average}
	}

	line.SetXAxis(xAxis).
		AddSeries("best", best).
		AddSeries("average", avg).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}),
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(false)}),
		)

	if outputPath == "" {
		outputPath = fmt.Sprintf("%s_convergence.html", runName)
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer f.Close()

	return line.Render(f)
}
