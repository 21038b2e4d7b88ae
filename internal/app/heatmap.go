package app

import (
	"fmt"
	"os"
	"path/filepath"

	"btviz/internal/logagg"
	"btviz/internal/render"
)

// Heatmap scans the run log, aggregates the (n, depth) sweep, and emits the
// heat-map PNG and/or the tabular fallback.
func (a *App) Heatmap(opts HeatmapOptions) error {
	logPath := opts.LogPath
	if logPath == "" {
		logPath = a.Config.Inputs.Log
	}

	raw, err := os.ReadFile(logPath)
	if err != nil {
		return fmt.Errorf("open run log: %w", err)
	}

	records := logagg.Extract(string(raw))
	matrix := logagg.Aggregate(records)

	a.Logger.Info().
		Int("records", len(records)).
		Int("rows", len(matrix.NVals)).
		Int("cols", len(matrix.DepthVals)).
		Msg("aggregated run log")

	if matrix.Empty() {
		a.Logger.Warn().Str("log", logPath).Msg("no observations found in run log")
	}

	if opts.TableOnly {
		return matrix.WriteTable(os.Stdout)
	}

	pngPath := opts.PNGPath
	if pngPath == "" {
		pngPath = filepath.Join(a.Config.Render.OutDir, "heatmap.png")
	}
	if err := render.WriteHeatmapPNG(pngPath, matrix, a.renderOptions()); err != nil {
		return err
	}

	a.Logger.Info().Str("png", pngPath).Msg("heat-map written")
	return matrix.WriteTable(os.Stdout)
}
