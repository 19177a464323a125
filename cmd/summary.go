package cmd

import (
	"github.com/frahmantamala/expense-tracker/internal/report"
	"github.com/spf13/cobra"
)

func newSummaryCmd(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show total spending per category, largest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := app.dependencies(cmd.Context())
			if err != nil {
				return err
			}

			totals, err := deps.Expenses.Summary(cmd.Context())
			if err != nil {
				return err
			}
			return report.RenderSummary(cmd.OutOrStdout(), totals)
		},
	}
}
