package app

import (
	"path/filepath"

	"btviz/internal/render"
	"btviz/internal/sweep"
)

// Summary renders one Best-vs-Average figure per discovered metric pair in
// the sweep-results table.
func (a *App) Summary(opts SummaryOptions) error {
	csvPath := opts.CSVPath
	if csvPath == "" {
		csvPath = a.Config.Inputs.Summary
	}

	table, err := sweep.Load(csvPath)
	if err != nil {
		return err
	}

	pairs := table.DiscoverPairs()
	if len(pairs) == 0 {
		a.Logger.Warn().Str("summary", csvPath).Msg("no Best/Avg metric pairs found")
		return nil
	}

	outDir := opts.OutDir
	if outDir == "" {
		outDir = a.Config.Render.OutDir
	}

	for _, pair := range pairs {
		path := filepath.Join(outDir, "summary_"+pair.Base+".png")
		if err := render.WriteSummaryPNG(path, table, pair, a.renderOptions()); err != nil {
			return err
		}
		a.Logger.Info().
			Str("metric", pair.Base).
			Bool("percent", pair.Percent()).
			Str("png", path).
			Msg("summary figure written")
	}
	return nil
}
