package commands

import (
	"context"
	"fmt"
	"hftrending/internal/components/telemetry"
	"hftrending/internal/config"
	"hftrending/internal/scrapers/huggingface"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	policy     string
	dumpDir    string
)

// set by the root command before any subcommand runs
var (
	cfg       config.Config
	providers telemetry.Telemetry
	tel       telemetry.API = telemetry.SlogAPI{}
)

var rootCmd = &cobra.Command{
	Use:          "hftrending",
	Short:        "hftrending collects the trending papers and models of huggingface.co.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(verbose)

		var loaded config.Config
		var err error
		if cmd.Flag("config").Changed {
			loaded, err = config.Load(configPath, true)
		} else {
			loaded, err = config.LoadNearest()
		}
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		cfg = loaded

		providers, err = telemetry.Setup(cmd.Context(), "hftrending", cfg.Telemetry)
		if err != nil {
			return fmt.Errorf("setup telemetry: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "The json5 config file to read, by default the nearest "+config.DefaultPath+" in this directory or its parents.")
	rootCmd.PersistentFlags().StringVar(&dumpDir, "dump-dir", "", "Also write every fetched page into this directory, existing files are kept.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output, this includes every request made.")
}

func ExecuteContext(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)

	telemetry.RecordPerfStats(ctx, tel)
	shutdownErr := providers.Shutdown(context.Background())
	if shutdownErr != nil {
		slog.Warn("failed to flush telemetry", "err", shutdownErr.Error())
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// addPolicyFlag registers --policy on a command that runs the papers pipeline.
func addPolicyFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&policy, "policy", "", "What to do when a paper's detail page can't be fetched: abort or drop. Overrides the config.")
}

func newScraper() (*huggingface.Client, error) {
	opts, err := cfg.ScraperOptions()
	if err != nil {
		return nil, err
	}
	if dumpDir != "" {
		opts.DumpDir = dumpDir
	}
	if policy != "" {
		opts.DetailFailurePolicy, err = huggingface.ParseDetailFailurePolicy(policy)
		if err != nil {
			return nil, err
		}
	}
	return huggingface.NewClient(opts, tel)
}

// writeOutput writes to the file at path, or to the command's output when path is
// empty.
func writeOutput(cmd *cobra.Command, path string, write func(w io.Writer) error) error {
	if path == "" {
		return write(cmd.OutOrStdout())
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = write(f)
	closeErr := f.Close()
	if err != nil {
		return err
	}
	if closeErr != nil {
		return closeErr
	}
	slog.Info("wrote csv", "path", path)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
