package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/DjordjeVuckovic/raglens/internal/dashboard"
	"github.com/DjordjeVuckovic/raglens/internal/domain"
	"github.com/DjordjeVuckovic/raglens/internal/report"
	"github.com/DjordjeVuckovic/raglens/internal/view/distribution"
)

func newExportCmd(root *rootOptions) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write SVG charts and the dashboard scene to a directory",
		Long: `Writes correlation.svg, one distribution-<metric>.svg per metric,
fingerprints.json and scene.json (the unfiltered dashboard) into --out.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := root.settings()
			if err != nil {
				return err
			}
			points, err := root.loadPoints(cmd.Context())
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}

			sess := dashboard.NewStore(*settings).Create(points)

			files := map[string]func(io.Writer) error{
				"correlation.svg": func(w io.Writer) error {
					return report.CorrelationSVG(w, points, nil)
				},
				"fingerprints.json": func(w io.Writer) error {
					return report.WriteJSON(w, sess.Fingerprints())
				},
				"scene.json": func(w io.Writer) error {
					return report.WriteJSON(w, sess.Dashboard())
				},
			}
			for _, m := range domain.Metrics {
				h := distribution.NewHistogram(points, m)
				files["distribution-"+string(m)+".svg"] = func(w io.Writer) error {
					return report.DistributionSVG(w, h, nil)
				}
			}

			written := 0
			for name, render := range files {
				ok, err := writeFile(filepath.Join(outDir, name), render)
				if err != nil {
					return err
				}
				if ok {
					written++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d files to %s\n", written, outDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "raglens-export", "output directory")
	return cmd
}

// writeFile renders into memory first so a failed chart never leaves a partial
// file behind. Charts without data are skipped.
func writeFile(path string, render func(io.Writer) error) (bool, error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		if errors.Is(err, report.ErrNoData) {
			slog.Warn("Skipping empty chart", "path", path)
			return false, nil
		}
		return false, err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}
