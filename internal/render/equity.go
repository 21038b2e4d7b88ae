package render

import (
	"io"

	chart "github.com/wcharczuk/go-chart/v2"

	"btviz/internal/replay"
)

// EquityChart builds the equity-curve figure for one replay frame, imposing
// the renderer's axis limits rather than letting the backend autoscale.
func EquityChart(frame replay.Frame, scale replay.Scale, opts Options) chart.Chart {
	opts = opts.withDefaults()

	scaleLabel := "log-scale"
	var yRange chart.Range = &chart.LogarithmicRange{Min: frame.YMin, Max: frame.YMax}
	if scale == replay.ScaleLinear {
		scaleLabel = "linear scale"
		yRange = &chart.ContinuousRange{Min: frame.YMin, Max: frame.YMax}
	}

	return chart.Chart{
		Title:  "Equity over Time (" + scaleLabel + ")",
		Width:  opts.Width,
		Height: opts.Height,
		XAxis: chart.XAxis{
			Name:           "Time",
			ValueFormatter: chart.TimeValueFormatter,
			Range: &chart.ContinuousRange{
				Min: float64(frame.XMin.UnixNano()),
				Max: float64(frame.XMax.UnixNano()),
			},
		},
		YAxis: chart.YAxis{
			Name:  "Equity ($)",
			Range: yRange,
			ValueFormatter: func(v interface{}) string {
				return chart.FloatValueFormatterWithFormat(v, "%.0f")
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Equity",
				XValues: frame.Times,
				YValues: frame.Equity,
				Style:   chart.Style{StrokeWidth: 2},
			},
		},
	}
}

// WriteEquityPNG renders one frame to disk. Frames with fewer than two
// points cannot form a line and are skipped; the bool reports whether a
// file was written.
func WriteEquityPNG(path string, frame replay.Frame, scale replay.Scale, opts Options) (bool, error) {
	if len(frame.Times) < 2 {
		return false, nil
	}

	graph := EquityChart(frame, scale, opts)
	err := writeFile(path, func(w io.Writer) error {
		return graph.Render(chart.PNG, w)
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// RenderEquity renders one frame to an arbitrary writer.
func RenderEquity(w io.Writer, frame replay.Frame, scale replay.Scale, opts Options) error {
	graph := EquityChart(frame, scale, opts)
	return graph.Render(chart.PNG, w)
}
