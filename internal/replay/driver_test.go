package replay

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestDriverRunsUntilDone(t *testing.T) {
	d := NewDriver(DriverOptions{FPS: 1000}, zerolog.Nop())

	ticks := 0
	err := d.Run(context.Background(), func(ctx context.Context) (bool, error) {
		ticks++
		return ticks == 4, nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ticks != 4 {
		t.Fatalf("ticks = %d, want 4", ticks)
	}
}

func TestDriverPropagatesTickError(t *testing.T) {
	d := NewDriver(DriverOptions{FPS: 1000}, zerolog.Nop())

	wantErr := errors.New("frame write failed")
	err := d.Run(context.Background(), func(ctx context.Context) (bool, error) {
		return false, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}

func TestDriverHonoursCancellation(t *testing.T) {
	d := NewDriver(DriverOptions{FPS: 10}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	err := d.Run(ctx, func(ctx context.Context) (bool, error) {
		cancel()
		return false, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestDriverInterval(t *testing.T) {
	d := NewDriver(DriverOptions{FPS: 2}, zerolog.Nop())
	if got := d.Interval(); got != 500*time.Millisecond {
		t.Fatalf("interval = %s, want 500ms", got)
	}
}

func TestDriverRejectsNonPositiveFPS(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for fps <= 0")
		}
	}()
	NewDriver(DriverOptions{FPS: 0}, zerolog.Nop())
}
