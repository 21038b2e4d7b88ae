// Package replay owns the stateful equity-curve renderer: it consumes an
// ordered trade sequence in fixed-size batches and maintains the growing
// series plus scale-aware axis limits for the chart sink.
package replay

import (
	"time"

	"btviz/internal/feed"
	"btviz/internal/ledger"
)

// Scale selects the y-axis regime, fixed for the renderer's lifetime.
type Scale string

const (
	ScaleLog    Scale = "log"
	ScaleLinear Scale = "linear"
)

// State tracks renderer progress. Transitions are strictly forward:
// Empty -> Streaming -> Done.
type State int

const (
	StateEmpty State = iota
	StateStreaming
	StateDone
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateStreaming:
		return "streaming"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

const (
	// xMargin pads the time axis on both sides.
	xMargin = 24 * time.Hour
	// yMargin is the 5% axis padding, multiplicative in log mode and
	// range-proportional in linear mode.
	yMargin = 0.05
	// degeneratePad replaces the linear padding when every accumulated
	// equity value is identical, so the axis never collapses to zero size.
	degeneratePad = 1.0
)

// Options configure a renderer instance.
type Options struct {
	BatchSize int
	Scale     Scale
	Feed      feed.Feed
}

// Frame is the snapshot handed to the chart sink after an advance.
type Frame struct {
	Times  []time.Time
	Equity []float64
	XMin   time.Time
	XMax   time.Time
	YMin   float64
	YMax   float64

	Consumed int
	Total    int
}

// Renderer advances through a fixed, already-cleaned trade sequence. The
// input must be ascending by timestamp with finite equity values; that
// contract is enforced by the ledger package, not re-checked here.
//
// A Renderer is owned by a single goroutine; Advance must not be called
// concurrently.
type Renderer struct {
	trades []ledger.Trade
	batch  int
	scale  Scale
	feed   feed.Feed

	cursor int
	times  []time.Time
	equity []float64
	state  State
}

// New constructs a renderer over trades. BatchSize must be at least one;
// Scale defaults to log.
func New(trades []ledger.Trade, opts Options) *Renderer {
	if opts.BatchSize < 1 {
		panic("replay: batch size must be at least one")
	}
	scale := opts.Scale
	if scale == "" {
		scale = ScaleLog
	}
	f := opts.Feed
	if f == nil {
		f = feed.Nop{}
	}
	return &Renderer{
		trades: trades,
		batch:  opts.BatchSize,
		scale:  scale,
		feed:   f,
		state:  StateEmpty,
	}
}

// State returns the current lifecycle state.
func (r *Renderer) State() State { return r.state }

// Scale returns the fixed axis scale mode.
func (r *Renderer) Scale() Scale { return r.scale }

// Len returns the number of accumulated points.
func (r *Renderer) Len() int { return len(r.equity) }

// Advance consumes the next batch of trades, emits one feed event per
// trade, and recomputes axis limits over the entire accumulated series.
// It returns false when there is nothing left to consume: on an exhausted
// renderer and on a renderer constructed over zero trades, which stays in
// StateEmpty without attempting any axis computation.
func (r *Renderer) Advance() (Frame, bool) {
	if r.state == StateDone || r.cursor >= len(r.trades) {
		if len(r.trades) > 0 {
			r.state = StateDone
		}
		return Frame{}, false
	}

	end := r.cursor + r.batch
	if end > len(r.trades) {
		end = len(r.trades)
	}

	for _, trade := range r.trades[r.cursor:end] {
		r.times = append(r.times, trade.Timestamp)
		r.equity = append(r.equity, trade.Equity.InexactFloat64())
		r.feed.Trade(trade)
	}
	r.cursor = end

	if r.cursor >= len(r.trades) {
		r.state = StateDone
	} else {
		r.state = StateStreaming
	}

	return r.frame(), true
}

func (r *Renderer) frame() Frame {
	f := Frame{
		Times:    r.times,
		Equity:   r.equity,
		Consumed: r.cursor,
		Total:    len(r.trades),
	}

	// Input is ascending, so the accumulated extremes sit at the ends.
	f.XMin = r.times[0].Add(-xMargin)
	f.XMax = r.times[len(r.times)-1].Add(xMargin)

	yMin, yMax := minMax(r.equity)
	switch r.scale {
	case ScaleLinear:
		pad := yMargin * (yMax - yMin)
		if pad == 0 {
			pad = degeneratePad
		}
		f.YMin = yMin - pad
		f.YMax = yMax + pad
	default:
		// Additive padding is meaningless on a log axis and can push the
		// lower bound non-positive, so pad multiplicatively.
		f.YMin = yMin * (1 - yMargin)
		f.YMax = yMax * (1 + yMargin)
	}
	return f
}

func minMax(vals []float64) (float64, float64) {
	min, max := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
