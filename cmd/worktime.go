package cmd

import (
	"github.com/roneystein/structured-content-tools/core"
	"github.com/roneystein/structured-content-tools/internal/contract"
	"github.com/spf13/cobra"
)

// worktimeCmd computes the working time between two timestamps.
var worktimeCmd = &cobra.Command{
	Use:   "worktime",
	Short: "Compute the working time between two timestamps.",
	Long: `Compute how much working time elapsed between two timestamps, using the
same business-hours rules the enrich command applies to documents.

Both timestamps must use the configured --date-format. Time outside the
working day and weekends is discarded; a multi-day range counts each full
working day at --hours-per-day hours.

Examples:
  # Working time across a weekend
  sct worktime --start "2015-10-02T16:00:00.000-0300" --end "2015-10-05T10:00:00.000-0300"

  # Same range on a 9-17 working day
  sct worktime --start-hour 9 --end-hour 17 \
    --start "2015-10-02T16:00:00.000-0300" --end "2015-10-05T10:00:00.000-0300"`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteWorktime(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot compute working time", err)
		}
	},
}
