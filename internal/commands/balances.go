package commands

import (
	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/report"
)

func newBalancesCommand(root *rootOptions) *cobra.Command {
	var r rangeFlags

	cmd := &cobra.Command{
		Use:   "balances",
		Short: "Print daily balances of every account as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(cmd.Context(), root.path())
			if err != nil {
				return err
			}
			start, end, err := ws.narrow(cmd.Context(), r, true)
			if err != nil {
				return err
			}
			return report.WriteBalances(cmd.OutOrStdout(), ws.timelines, start, end)
		},
	}

	cmd.Flags().StringVar(&r.from, "from", "", "first day to report (yyyy-mm-dd)")
	cmd.Flags().StringVar(&r.to, "to", "", "last day to report (yyyy-mm-dd)")

	return cmd
}
