package main

import (
	"github.com/spf13/cobra"

	"github.com/DjordjeVuckovic/raglens/internal/fingerprint"
	"github.com/DjordjeVuckovic/raglens/internal/report"
)

func newFingerprintsCmd(root *rootOptions) *cobra.Command {
	var opts report.FingerprintOptions

	cmd := &cobra.Command{
		Use:     "fingerprints",
		Aliases: []string{"fp"},
		Short:   "Rank documents by how often their chunks back poor or flagged answers",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := root.settings()
			if err != nil {
				return err
			}
			points, err := root.loadPoints(cmd.Context())
			if err != nil {
				return err
			}

			result := fingerprint.Compute(points, settings.SeverityWeight, settings.SortBy)
			if root.format == formatJSON {
				return report.WriteJSON(cmd.OutOrStdout(), result)
			}
			return report.WriteFingerprints(cmd.OutOrStdout(), result, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "show only the first n documents")
	cmd.Flags().IntVar(&opts.StripWidth, "strip-width", report.DefaultStripWidth, "maximum glyphs per fingerprint strip")
	return cmd
}
