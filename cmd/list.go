package cmd

import (
	"fmt"

	"github.com/frahmantamala/expense-tracker/internal/report"
	"github.com/spf13/cobra"
)

func newListCmd(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded expenses in entry order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := app.dependencies(cmd.Context())
			if err != nil {
				return err
			}

			table, err := deps.Expenses.ListExpenses(cmd.Context())
			if err != nil {
				return err
			}
			if table.Len() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No expenses recorded yet.")
				return nil
			}
			return report.RenderExpenses(cmd.OutOrStdout(), table)
		},
	}
}
