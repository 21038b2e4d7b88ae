package render

import (
	"fmt"
	"io"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"btviz/internal/logagg"
)

// Heat-map layout margins, in pixels.
const (
	heatMarginLeft   = 70
	heatMarginRight  = 110
	heatMarginTop    = 50
	heatMarginBottom = 60
	legendBarWidth   = 24
)

// viridisStops approximates the viridis color map.
var viridisStops = []drawing.Color{
	{R: 68, G: 1, B: 84, A: 255},
	{R: 59, G: 82, B: 139, A: 255},
	{R: 33, G: 145, B: 140, A: 255},
	{R: 94, G: 201, B: 98, A: 255},
	{R: 253, G: 231, B: 37, A: 255},
}

// WriteHeatmapPNG renders the aggregate matrix as a heat-map. go-chart has
// no heat-map series, so cells are drawn directly with its raster renderer.
// An empty matrix still produces a valid (title-only) image.
func WriteHeatmapPNG(path string, m logagg.Matrix, opts Options) error {
	return writeFile(path, func(w io.Writer) error {
		return RenderHeatmap(w, m, opts)
	})
}

// RenderHeatmap draws the heat-map to an arbitrary writer.
func RenderHeatmap(w io.Writer, m logagg.Matrix, opts Options) error {
	opts = opts.withDefaults()

	r, err := chart.PNG(opts.Width, opts.Height)
	if err != nil {
		return fmt.Errorf("create raster renderer: %w", err)
	}

	font, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("load default font: %w", err)
	}
	r.SetFont(font)
	r.SetFontColor(chart.ColorBlack)

	// Background.
	fillRect(r, 0, 0, opts.Width, opts.Height, chart.ColorWhite)

	r.SetFontSize(14)
	r.Text("Average Sharpe Ratio by n and depth", heatMarginLeft, 28)

	if m.Empty() {
		return r.Save(w)
	}

	plotW := opts.Width - heatMarginLeft - heatMarginRight
	plotH := opts.Height - heatMarginTop - heatMarginBottom
	cols := len(m.DepthVals)
	rows := len(m.NVals)
	cellW := plotW / cols
	cellH := plotH / rows

	lo, hi := m.Min(), m.Max()

	for i := range m.NVals {
		for j := range m.DepthVals {
			x := heatMarginLeft + j*cellW
			y := heatMarginTop + i*cellH
			fillRect(r, x, y, cellW, cellH, heatColor(m.Cells[i][j], lo, hi))
		}
	}

	// Axis labels: depth along x, n along y.
	r.SetFontSize(11)
	for j, depth := range m.DepthVals {
		label := strconv.Itoa(depth)
		x := heatMarginLeft + j*cellW + cellW/2 - textWidth(r, label)/2
		r.Text(label, x, heatMarginTop+plotH+18)
	}
	for i, n := range m.NVals {
		label := strconv.Itoa(n)
		y := heatMarginTop + i*cellH + cellH/2 + 4
		r.Text(label, heatMarginLeft-14-textWidth(r, label), y)
	}
	r.Text("depth", heatMarginLeft+plotW/2-15, opts.Height-18)
	r.Text("n", 22, heatMarginTop+plotH/2)

	drawLegendBar(r, opts, lo, hi)

	return r.Save(w)
}

// drawLegendBar paints the vertical value gradient with min/max labels.
func drawLegendBar(r chart.Renderer, opts Options, lo, hi float64) {
	barX := opts.Width - heatMarginRight + 30
	barTop := heatMarginTop
	barH := opts.Height - heatMarginTop - heatMarginBottom

	steps := 64
	stepH := barH / steps
	if stepH < 1 {
		stepH = 1
	}
	for s := 0; s < steps; s++ {
		// top of the bar is the maximum
		v := hi - (hi-lo)*float64(s)/float64(steps-1)
		fillRect(r, barX, barTop+s*stepH, legendBarWidth, stepH+1, heatColor(v, lo, hi))
	}

	r.SetFontSize(11)
	r.Text(fmt.Sprintf("%.2f", hi), barX+legendBarWidth+6, barTop+10)
	r.Text(fmt.Sprintf("%.2f", lo), barX+legendBarWidth+6, barTop+barH)
}

func fillRect(r chart.Renderer, x, y, w, h int, c drawing.Color) {
	r.SetFillColor(c)
	r.MoveTo(x, y)
	r.LineTo(x+w, y)
	r.LineTo(x+w, y+h)
	r.LineTo(x, y+h)
	r.Close()
	r.Fill()
}

func textWidth(r chart.Renderer, s string) int {
	return r.MeasureText(s).Width()
}

// heatColor maps a value in [lo, hi] onto the viridis gradient. A zero-size
// range maps everything to the middle stop.
func heatColor(v, lo, hi float64) drawing.Color {
	t := 0.5
	if hi > lo {
		t = (v - lo) / (hi - lo)
	}
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	pos := t * float64(len(viridisStops)-1)
	idx := int(pos)
	if idx >= len(viridisStops)-1 {
		return viridisStops[len(viridisStops)-1]
	}
	frac := pos - float64(idx)
	a, b := viridisStops[idx], viridisStops[idx+1]
	return drawing.Color{
		R: lerpByte(a.R, b.R, frac),
		G: lerpByte(a.G, b.G, frac),
		B: lerpByte(a.B, b.B, frac),
		A: 255,
	}
}

func lerpByte(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}
