package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/calendar"
	"github.com/tally-dev/tally/internal/report"
	"github.com/tally-dev/tally/internal/spending"
)

func newSpendingCommand(root *rootOptions) *cobra.Command {
	var r rangeFlags

	cmd := &cobra.Command{
		Use:   "spending",
		Short: "Print spending per period and category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(cmd.Context(), root.path())
			if err != nil {
				return err
			}
			start, end, err := ws.narrow(cmd.Context(), r, false)
			if err != nil {
				return err
			}

			weekStart := time.Monday
			if ws.cfg.Period.WeekStart != "" {
				if weekStart, err = calendar.ParseWeekday(ws.cfg.Period.WeekStart); err != nil {
					return fmt.Errorf("period.week_start: %w", err)
				}
			}
			period, err := calendar.NewPeriod(ws.cfg.Period.Length, weekStart)
			if err != nil {
				return fmt.Errorf("period.length: %w", err)
			}

			buckets, err := spending.Aggregate(ws.timelines, period.IsStart, start, end, ws.cfg.Mapper(), ws.cfg.Currency)
			if err != nil {
				return err
			}
			return report.WriteSpending(cmd.OutOrStdout(), buckets, ws.cfg.Currency, period.Label)
		},
	}

	cmd.Flags().StringVar(&r.from, "from", "", "first day to report (yyyy-mm-dd)")
	cmd.Flags().StringVar(&r.to, "to", "", "last day to report (yyyy-mm-dd)")

	return cmd
}
