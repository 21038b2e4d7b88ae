package cli

import (
	"github.com/spf13/cobra"

	"btviz/internal/app"
)

var (
	heatmapLogPath   string
	heatmapPNGPath   string
	heatmapTableOnly bool
)

var heatmapCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Aggregate the run log into a (n, depth) metric heat-map",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.HeatmapOptions{
			LogPath:   heatmapLogPath,
			PNGPath:   heatmapPNGPath,
			TableOnly: heatmapTableOnly,
		}
		return getApp().Heatmap(opts)
	},
}

func init() {
	heatmapCmd.Flags().StringVar(&heatmapLogPath, "log", "", "Run log to scan (defaults to config)")
	heatmapCmd.Flags().StringVar(&heatmapPNGPath, "png", "", "Path to write the heat-map PNG")
	heatmapCmd.Flags().BoolVar(&heatmapTableOnly, "table", false, "Print the aggregate table only, no PNG")
}
