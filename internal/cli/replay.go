package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"btviz/internal/app"
)

var (
	replayCSVPath   string
	replayFromDB    bool
	replayFrom      string
	replayTo        string
	replayPNGPath   string
	replayFramesDir string
	replayBatch     int
	replayFPS       float64
	replayLog       bool
	replayLinear    bool
	replayNoFeed    bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Animate the equity curve trade by trade",
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayLog && replayLinear {
			return fmt.Errorf("--log and --linear are mutually exclusive")
		}

		opts := app.ReplayOptions{
			CSVPath:   replayCSVPath,
			FromDB:    replayFromDB,
			PNGPath:   replayPNGPath,
			FramesDir: replayFramesDir,
			BatchSize: replayBatch,
			FPS:       replayFPS,
			NoFeed:    replayNoFeed,
		}
		if replayLog {
			opts.Scale = "log"
		}
		if replayLinear {
			opts.Scale = "linear"
		}

		if replayFrom != "" {
			from, err := time.Parse(time.RFC3339, replayFrom)
			if err != nil {
				return fmt.Errorf("invalid --from value: %w", err)
			}
			opts.From = &from
		}
		if replayTo != "" {
			to, err := time.Parse(time.RFC3339, replayTo)
			if err != nil {
				return fmt.Errorf("invalid --to value: %w", err)
			}
			opts.To = &to
		}

		return getApp().Replay(cmd.Context(), opts)
	},
}

func init() {
	replayCmd.Flags().StringVarP(&replayCSVPath, "file", "f", "", "Trade ledger CSV (defaults to config)")
	replayCmd.Flags().BoolVar(&replayFromDB, "from-db", false, "Replay imported trades from the database")
	replayCmd.Flags().StringVar(&replayFrom, "from", "", "Start timestamp for --from-db (RFC3339, inclusive)")
	replayCmd.Flags().StringVar(&replayTo, "to", "", "End timestamp for --from-db (RFC3339, exclusive)")
	replayCmd.Flags().StringVar(&replayPNGPath, "png", "", "Path to write the final equity PNG")
	replayCmd.Flags().StringVar(&replayFramesDir, "frames-dir", "", "Directory for per-frame PNGs (optional)")
	replayCmd.Flags().IntVarP(&replayBatch, "batch", "n", 0, "Trades per frame (defaults to config)")
	replayCmd.Flags().Float64Var(&replayFPS, "fps", 0, "Frames per second (defaults to config)")
	replayCmd.Flags().BoolVar(&replayLog, "log", false, "Logarithmic y-axis (config default)")
	replayCmd.Flags().BoolVar(&replayLinear, "linear", false, "Linear y-axis")
	replayCmd.Flags().BoolVar(&replayNoFeed, "no-feed", false, "Suppress the per-trade console feed")
}
