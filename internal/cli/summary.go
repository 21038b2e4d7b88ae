package cli

import (
	"github.com/spf13/cobra"

	"btviz/internal/app"
)

var (
	summaryCSVPath string
	summaryOutDir  string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Draw Best-vs-Average curves for every metric in the sweep results",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.SummaryOptions{
			CSVPath: summaryCSVPath,
			OutDir:  summaryOutDir,
		}
		return getApp().Summary(opts)
	},
}

func init() {
	summaryCmd.Flags().StringVarP(&summaryCSVPath, "file", "f", "", "Sweep results CSV (defaults to config)")
	summaryCmd.Flags().StringVar(&summaryOutDir, "out-dir", "", "Directory for the summary PNGs (defaults to config)")
}
