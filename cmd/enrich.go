package cmd

import (
	"github.com/roneystein/structured-content-tools/core"
	"github.com/roneystein/structured-content-tools/internal/contract"
	"github.com/spf13/cobra"
)

// enrichCmd walks issue documents and writes working-time metrics into them.
var enrichCmd = &cobra.Command{
	Use:   "enrich [doc-path ...]",
	Short: "Write time-in-status working hours into issue documents.",
	Long: `Walk issue tracker export documents and write, into every status change,
how many working hours the issue spent in the status it is leaving.

Each positional argument is a JSON document or a directory that is scanned
recursively for JSON documents. Documents are rewritten in place unless
--out-dir is given.

For every document the command:
- Replays the change history in order, from the issue creation timestamp
- Computes the working time between consecutive status changes
- Writes the rounded-up hour count into each status item
- Copies issue-level context fields onto every history entry

Malformed documents or timestamps are reported as warnings and never abort
the run.

Examples:
  # Enrich every export under ./issues in place
  sct enrich ./issues

  # Keep originals and write enriched copies elsewhere
  sct enrich ./issues --out-dir ./enriched

  # Drop non-status noise from histories and slim the output docs
  sct enrich ./issues --prune --keep-fields key,changelog

  # Custom working day (9-17, 6h) with a CSV report
  sct enrich ./issues --start-hour 9 --end-hour 17 --hours-per-day 6 --output csv --output-file report.csv`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteEnrich(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run enrichment", err)
		}
	},
}
