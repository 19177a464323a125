package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/frahmantamala/expense-tracker/internal/report"
	"github.com/spf13/cobra"
)

func newBudgetCmd(app *application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Set and view per-category budgets",
		Long: `Budgets are kept in memory for the running process. Use them inside
"expense-tracker shell" or through the HTTP server to keep them across actions.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:     "set CATEGORY AMOUNT",
			Short:   "Set the budget for a category, replacing any earlier value",
			Example: `  expense-tracker budget set Food 250`,
			Args:    cobra.MaximumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				deps, err := app.dependencies(cmd.Context())
				if err != nil {
					return err
				}

				// missing arguments are reported by the table as empty fields
				padded := append(append([]string{}, args...), "", "")
				_, err = deps.Budgets.Set(cmd.Context(), padded[0], padded[1])
				return err
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List budgets in category order",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				deps, err := app.dependencies(cmd.Context())
				if err != nil {
					return err
				}

				budgets := deps.Budgets.List()
				if len(budgets) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No budgets set.")
					return nil
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "Category\tBudget")
				for _, b := range budgets {
					fmt.Fprintf(tw, "%s\t%s\n", b.Category, report.FormatMoney(b.Amount))
				}
				return tw.Flush()
			},
		},
	)

	return cmd
}
