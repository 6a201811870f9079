package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DjordjeVuckovic/raglens/internal/domain"
	"github.com/DjordjeVuckovic/raglens/internal/ingest"
	"github.com/DjordjeVuckovic/raglens/internal/report"
	"github.com/DjordjeVuckovic/raglens/internal/view/distribution"
)

func newHistogramCmd(root *rootOptions) *cobra.Command {
	var barWidth int

	cmd := &cobra.Command{
		Use:   "histogram [metric...]",
		Short: "Show the score distribution of llm and/or similarity",
		Long: `Bins each metric into ten fixed ranges over [0,1]. Without arguments both
metrics are shown.`,
		ValidArgs: []string{string(domain.MetricLLM), string(domain.MetricSimilarity)},
		RunE: func(cmd *cobra.Command, args []string) error {
			metrics := domain.Metrics
			if len(args) > 0 {
				metrics = make([]domain.Metric, 0, len(args))
				for _, a := range args {
					m, err := ingest.ParseMetric(a)
					if err != nil {
						return err
					}
					metrics = append(metrics, m)
				}
			}

			points, err := root.loadPoints(cmd.Context())
			if err != nil {
				return err
			}

			hists := make([]distribution.Histogram, 0, len(metrics))
			for _, m := range metrics {
				hists = append(hists, distribution.NewHistogram(points, m))
			}
			if root.format == formatJSON {
				return report.WriteJSON(cmd.OutOrStdout(), hists)
			}

			out := cmd.OutOrStdout()
			for i, h := range hists {
				if i > 0 {
					fmt.Fprintln(out)
				}
				if err := report.WriteHistogram(out, h, nil, barWidth); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&barWidth, "bar-width", report.DefaultBarWidth, "width of the longest bar")
	return cmd
}
