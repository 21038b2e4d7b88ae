package render

import (
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"

	"btviz/internal/sweep"
)

const maxYAxisTicks = 6

// SummaryChart builds the Best-vs-Average figure for one metric pair:
// solid best line, dashed average line, generation on x. Rate-like metrics
// get a percentage y-axis; everything else renders as plain scalars with no
// order-of-magnitude offset.
func SummaryChart(table sweep.Table, pair sweep.MetricPair, opts Options) (chart.Chart, error) {
	opts = opts.withDefaults()

	bestX, bestY := table.Series(pair.Best)
	avgX, avgY := table.Series(pair.Avg)
	if len(bestX) < 2 && len(avgX) < 2 {
		return chart.Chart{}, fmt.Errorf("metric %s has too few points to plot", pair.Base)
	}

	formatter := scalarFormatter
	if pair.Percent() {
		formatter = percentFormatter
	}
	ticks, yRange := summaryTicks(bestY, avgY, formatter)

	series := make([]chart.Series, 0, 2)
	if len(bestX) >= 2 {
		series = append(series, chart.ContinuousSeries{
			Name:    "Best",
			XValues: bestX,
			YValues: bestY,
			Style:   chart.Style{StrokeWidth: 2},
		})
	}
	if len(avgX) >= 2 {
		series = append(series, chart.ContinuousSeries{
			Name:    "Average",
			XValues: avgX,
			YValues: avgY,
			Style:   chart.Style{StrokeWidth: 2, StrokeDashArray: []float64{5, 5}},
		})
	}

	graph := chart.Chart{
		Title:  pair.Base,
		Width:  opts.Width,
		Height: opts.Height,
		XAxis: chart.XAxis{
			Name: "Generation",
			ValueFormatter: func(v interface{}) string {
				return chart.FloatValueFormatterWithFormat(v, "%.0f")
			},
		},
		YAxis: chart.YAxis{
			Name:           pair.Base,
			Ticks:          ticks,
			Range:          yRange,
			ValueFormatter: formatter,
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph, nil
}

// WriteSummaryPNG renders one metric pair to disk.
func WriteSummaryPNG(path string, table sweep.Table, pair sweep.MetricPair, opts Options) error {
	graph, err := SummaryChart(table, pair, opts)
	if err != nil {
		return err
	}
	return writeFile(path, func(w io.Writer) error {
		return graph.Render(chart.PNG, w)
	})
}

// summaryTicks caps the y-axis at maxYAxisTicks labels so they never
// overlap, and pins the range to the tick extremes.
func summaryTicks(bestY, avgY []float64, format chart.ValueFormatter) ([]chart.Tick, chart.Range) {
	all := append(append([]float64{}, bestY...), avgY...)
	min, max := all[0], all[0]
	for _, v := range all[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	values := niceTicks(min, max, maxYAxisTicks)
	ticks := make([]chart.Tick, len(values))
	for i, v := range values {
		ticks[i] = chart.Tick{Value: v, Label: format(v)}
	}
	return ticks, &chart.ContinuousRange{Min: values[0], Max: values[len(values)-1]}
}

func percentFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f%%", f*100)
	}
	return ""
}

func scalarFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%g", f)
	}
	return ""
}
