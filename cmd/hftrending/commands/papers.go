package commands

import (
	"fmt"
	"hftrending/internal/export"
	"io"

	"github.com/spf13/cobra"
)

var papersOut string

func init() {
	papersCmd.Flags().StringVar(&papersOut, "out", "", "The csv file to write, stdout if neither this nor export.papers_csv is set.")
	addPolicyFlag(papersCmd)
	rootCmd.AddCommand(papersCmd)
}

var papersCmd = &cobra.Command{
	Use:   "papers [--out <path/to/papers.csv>] [--policy abort|drop]",
	Short: "Scrapes the trending papers and their detail pages and writes them as csv.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newScraper()
		if err != nil {
			return err
		}
		papers, err := client.TrendingPapers(cmd.Context())
		if err != nil {
			return fmt.Errorf("scrape papers: %w", err)
		}
		return writeOutput(cmd, firstNonEmpty(papersOut, cfg.Export.PapersCsv), func(w io.Writer) error {
			return export.WritePapersCSV(w, papers)
		})
	},
}
