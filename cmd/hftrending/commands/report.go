package commands

import (
	"bytes"
	"fmt"
	"hftrending/internal/digest"
	"hftrending/internal/export"
	"hftrending/internal/normalize"
	"hftrending/internal/scrapers/huggingface"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
)

var (
	reportDb     string
	reportEmail  bool
	reportTop    int
	reportSearch string
)

func init() {
	reportCmd.Flags().StringVar(&reportDb, "db", "", "The sqlite file to write the snapshot to, overrides export.sqlite.")
	reportCmd.Flags().BoolVar(&reportEmail, "email", false, "Mail the report to digest.to.")
	reportCmd.Flags().IntVar(&reportTop, "top", 10, "How many papers and models to rank.")
	reportCmd.Flags().StringVar(&reportSearch, "search", "", "Also list the papers and models matching this query.")
	addPolicyFlag(reportCmd)
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report [--db <path/to/snapshot.db>] [--email] [--top <n>] [--search <query>]",
	Short: "Scrapes both listings and prints a summary of them.",
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
		papers, err := client.TrendingPapers(cmd.Context())
		if err != nil {
			return fmt.Errorf("scrape papers: %w", err)
		}

		var rendered bytes.Buffer
		renderReport(&rendered, models, papers, reportOptions{
			Top:    reportTop,
			Search: reportSearch,
		})
		_, err = cmd.OutOrStdout().Write(rendered.Bytes())
		if err != nil {
			return err
		}

		if cfg.Export.ModelsCsv != "" {
			err = writeOutput(cmd, cfg.Export.ModelsCsv, func(w io.Writer) error {
				return export.WriteModelsCSV(w, models)
			})
			if err != nil {
				return err
			}
		}
		if cfg.Export.PapersCsv != "" {
			err = writeOutput(cmd, cfg.Export.PapersCsv, func(w io.Writer) error {
				return export.WritePapersCSV(w, papers)
			})
			if err != nil {
				return err
			}
		}

		database := cfg.Export.Sqlite
		if reportDb != "" {
			database = export.SQLite{File: reportDb}
		}
		if database.Enabled() {
			err = writeSnapshot(cmd, database, models, papers)
			if err != nil {
				return err
			}
		}

		if reportEmail {
			subject := fmt.Sprintf("Hugging Face trending digest %s", time.Now().Format(normalize.DateLayout))
			err = digest.Send(cmd.Context(), cfg.Digest, subject, rendered.String())
			if err != nil {
				return err
			}
			slog.Info("sent digest", "to", cfg.Digest.To)
		}
		return nil
	},
}

func writeSnapshot(cmd *cobra.Command, database export.SQLite, models []huggingface.ModelRecord, papers []huggingface.PaperRecord) error {
	db, err := database.OpenDB()
	if err != nil {
		return fmt.Errorf("open snapshot db: %w", err)
	}
	defer db.Close()

	runID, err := export.NewRunID()
	if err != nil {
		return err
	}
	err = export.WriteSnapshot(cmd.Context(), db, runID, models, papers)
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	slog.Info("wrote snapshot", "run_id", runID, "models", len(models), "papers", len(papers))
	return nil
}
