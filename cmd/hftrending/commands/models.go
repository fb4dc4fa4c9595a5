package commands

import (
	"fmt"
	"hftrending/internal/export"
	"io"

	"github.com/spf13/cobra"
)

var modelsOut string

func init() {
	modelsCmd.Flags().StringVar(&modelsOut, "out", "", "The csv file to write, stdout if neither this nor export.models_csv is set.")
	rootCmd.AddCommand(modelsCmd)
}

var modelsCmd = &cobra.Command{
	Use:   "models [--out <path/to/models.csv>]",
	Short: "Scrapes the trending models listing and writes it as csv.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newScraper()
		if err != nil {
			return err
		}
		models, err := client.TrendingModels(cmd.Context())
		if err != nil {
			return fmt.Errorf("scrape models: %w", err)
		}
		return writeOutput(cmd, firstNonEmpty(modelsOut, cfg.Export.ModelsCsv), func(w io.Writer) error {
			return export.WriteModelsCSV(w, models)
		})
	},
}
