package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"btviz/internal/feed"
	"btviz/internal/ledger"
	"btviz/internal/render"
	"btviz/internal/replay"
)

// Replay streams the trade ledger through the equity renderer at the
// configured frame rate, emitting the console feed and the equity PNG.
func (a *App) Replay(ctx context.Context, opts ReplayOptions) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	trades, err := a.loadTrades(ctx, opts)
	if err != nil {
		return err
	}
	if len(trades) == 0 {
		a.Logger.Warn().Msg("no valid trades after filtering; nothing to replay")
		return nil
	}

	scale := replay.Scale(opts.Scale)
	if opts.Scale == "" {
		scale = replay.Scale(a.Config.Render.Scale)
	}
	batch := a.Config.ResolveBatch(opts.BatchSize)
	fps := a.Config.ResolveFPS(opts.FPS)

	var tradeFeed feed.Feed = feed.Nop{}
	if !opts.NoFeed {
		tradeFeed = feed.NewConsole()
	}

	renderer := replay.New(trades, replay.Options{
		BatchSize: batch,
		Scale:     scale,
		Feed:      tradeFeed,
	})

	pngPath := opts.PNGPath
	if pngPath == "" {
		pngPath = filepath.Join(a.Config.Render.OutDir, "equity.png")
	}

	a.Logger.Info().
		Int("trades", len(trades)).
		Int("batch", batch).
		Float64("fps", fps).
		Str("scale", string(scale)).
		Msg("starting equity replay")

	tradeFeed.Header()

	var lastFrame replay.Frame
	frames := 0
	tick := func(ctx context.Context) (bool, error) {
		frame, ok := renderer.Advance()
		if !ok {
			return true, nil
		}
		lastFrame = frame
		frames++

		if opts.FramesDir != "" {
			framePath := filepath.Join(opts.FramesDir, fmt.Sprintf("frame_%04d.png", frames))
			if _, err := render.WriteEquityPNG(framePath, frame, scale, a.renderOptions()); err != nil {
				return false, err
			}
		}
		return renderer.State() == replay.StateDone, nil
	}

	driver := replay.NewDriver(replay.DriverOptions{FPS: fps}, a.Logger)
	if err := driver.Run(ctx, tick); err != nil {
		if errors.Is(err, context.Canceled) {
			a.Logger.Warn().Int("frames", frames).Msg("replay interrupted")
			return nil
		}
		return err
	}

	written, err := render.WriteEquityPNG(pngPath, lastFrame, scale, a.renderOptions())
	if err != nil {
		return err
	}
	if written {
		a.Logger.Info().Str("png", pngPath).Int("frames", frames).
			Int("trades", lastFrame.Consumed).Msg("equity curve written")
	} else {
		a.Logger.Warn().Msg("too few points to draw an equity curve")
	}
	return nil
}

func (a *App) loadTrades(ctx context.Context, opts ReplayOptions) ([]ledger.Trade, error) {
	if !opts.FromDB {
		path := opts.CSVPath
		if path == "" {
			path = a.Config.Inputs.Trades
		}
		return ledger.Load(path)
	}

	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errors.New("database not configured; cannot replay from db")
	}
	if closeStore != nil {
		defer closeStore()
	}

	to := time.Now().UTC()
	if opts.To != nil {
		to = opts.To.UTC()
	}
	from := time.Time{}
	if opts.From != nil {
		from = opts.From.UTC()
	}

	return store.ListTradesBetween(ctx, from, to)
}
