package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"btviz/internal/config"
	"btviz/internal/render"
	"btviz/internal/storage"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logger.With().Str("component", "app").Logger()}
}

func (a *App) renderOptions() render.Options {
	return render.Options{
		Width:  a.Config.Render.Width,
		Height: a.Config.Render.Height,
	}
}

func (a *App) openStore(ctx context.Context) (*storage.Store, func(), error) {
	if a.Config.Database.DSN == "" {
		return nil, nil, nil
	}

	pool, err := storage.NewPool(ctx, a.Config.Database)
	if err != nil {
		return nil, nil, err
	}

	store := storage.NewStore(pool)
	closer := func() {
		store.Close()
	}
	return store, closer, nil
}

// HeatmapOptions configure the heatmap command.
type HeatmapOptions struct {
	LogPath   string
	PNGPath   string
	TableOnly bool
}

// ReplayOptions configure the equity replay.
type ReplayOptions struct {
	CSVPath   string
	FromDB    bool
	From      *time.Time
	To        *time.Time
	PNGPath   string
	FramesDir string
	BatchSize int
	FPS       float64
	Scale     string
	NoFeed    bool
}

// SummaryOptions configure the sweep summary command.
type SummaryOptions struct {
	CSVPath string
	OutDir  string
}

// ImportOptions configure the ledger import job.
type ImportOptions struct {
	CSVPath string
	DryRun  bool
}

// ShowOptions configure the show command.
type ShowOptions struct {
	Limit int
}
