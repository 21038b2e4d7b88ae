package replay

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// TickFunc runs one frame. It reports done=true once there is nothing left
// to render; a non-nil error aborts the run.
type TickFunc func(ctx context.Context) (done bool, err error)

// DriverOptions tune the frame cadence.
type DriverOptions struct {
	FPS          float64
	StartupDelay time.Duration
}

// Driver invokes a tick function at a fixed frame rate until the tick
// signals completion or the context is cancelled. Ticks never overlap: each
// one finishes before the next timer is armed, which keeps the trade feed
// and the plotted curve consistent.
type Driver struct {
	opts   DriverOptions
	logger zerolog.Logger
}

// NewDriver constructs a Driver instance.
func NewDriver(opts DriverOptions, logger zerolog.Logger) *Driver {
	if opts.FPS <= 0 {
		panic("replay: frame rate must be positive")
	}
	return &Driver{opts: opts, logger: logger.With().Str("component", "driver").Logger()}
}

// Interval returns the per-frame delay derived from the frame rate.
func (d *Driver) Interval() time.Duration {
	return time.Duration(float64(time.Second) / d.opts.FPS)
}

// Run blocks, invoking tick once per frame interval until done or ctx ends.
func (d *Driver) Run(ctx context.Context, tick TickFunc) error {
	if d.opts.StartupDelay > 0 {
		timer := time.NewTimer(d.opts.StartupDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	interval := d.Interval()
	frames := 0
	for {
		done, err := tick(ctx)
		if err != nil {
			return err
		}
		frames++
		if done {
			d.logger.Debug().Int("frames", frames).Msg("replay finished")
			return nil
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
