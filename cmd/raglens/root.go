package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/DjordjeVuckovic/raglens/internal/config"
	"github.com/DjordjeVuckovic/raglens/internal/domain"
	"github.com/DjordjeVuckovic/raglens/internal/ingest"
	"github.com/DjordjeVuckovic/raglens/internal/storage"
	"github.com/DjordjeVuckovic/raglens/internal/storage/factory"
	"github.com/DjordjeVuckovic/raglens/pkg/config/env"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	pointsFile string
	configFile string
	weight     float64
	sortBy     string
	format     string
	noColor    bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "raglens",
		Short: "Inspect retrieval quality of RAG runs",
		Long: `raglens aggregates generation runs into per-document chunk fingerprints and
score distributions so weak retrievals can be traced back to their source chunks.

Points are read from --file, or from the storage selected by STORAGE_TYPE.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if opts.noColor {
				color.NoColor = true
			}
			level := slog.LevelWarn
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetLogLoggerLevel(level)

			if opts.format != formatTable && opts.format != formatJSON {
				return fmt.Errorf("unknown format %q, expected %s or %s", opts.format, formatTable, formatJSON)
			}
			return nil
		},
	}

	f := cmd.PersistentFlags()
	f.StringVarP(&opts.pointsFile, "file", "f", "", "JSON file with metric points (default: STORAGE_TYPE backend)")
	f.StringVar(&opts.configFile, "config", "", "dashboard settings YAML")
	f.Float64VarP(&opts.weight, "weight", "w", 0, "severity weight of one human flag (default from settings)")
	f.StringVarP(&opts.sortBy, "sort", "s", "", "fingerprint sort: severity, flags, poor or retrieved")
	f.StringVarP(&opts.format, "format", "o", formatTable, "output format: table or json")
	f.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")

	cmd.AddCommand(
		newFingerprintsCmd(opts),
		newHistogramCmd(opts),
		newExportCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// settings resolves the dashboard settings with flag overrides applied.
func (o *rootOptions) settings() (*config.Settings, error) {
	s := config.Default()
	if o.configFile != "" {
		var err error
		if s, err = config.LoadFromFile(o.configFile); err != nil {
			return nil, err
		}
	}
	if o.weight != 0 {
		s.SeverityWeight = ingest.ClampWeight(o.weight)
	}
	if o.sortBy != "" {
		s.SortBy = ingest.ParseSortKey(o.sortBy)
	}
	return s, nil
}

func (o *rootOptions) loadPoints(ctx context.Context) ([]domain.MetricPoint, error) {
	if o.pointsFile != "" {
		return storage.NewJSONFileReader(o.pointsFile).LoadPoints(ctx)
	}

	if err := env.LoadDotEnv(os.Getenv("ENV"), ".env"); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}
	cfg, err := factory.LoadEnv()
	if err != nil {
		return nil, fmt.Errorf("no --file given and storage is not configured: %w", err)
	}
	backend, err := factory.NewBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer backend.Close()

	return backend.Reader.LoadPoints(ctx)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "raglens %s\n", Version)
		},
	}
}
