package cli

import (
	"github.com/spf13/cobra"

	"btviz/internal/app"
)

var (
	importCSVPath string
	importDryRun  bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a trade ledger CSV into the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.ImportOptions{
			CSVPath: importCSVPath,
			DryRun:  importDryRun,
		}
		return getApp().Import(cmd.Context(), opts)
	},
}

func init() {
	importCmd.Flags().StringVarP(&importCSVPath, "file", "f", "", "Trade ledger CSV (defaults to config)")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Parse and report without writing to the database")
}
