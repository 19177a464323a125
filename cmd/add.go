package cmd

import (
	"github.com/frahmantamala/expense-tracker/internal/category"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/spf13/cobra"
)

func newAddCmd(app *application) *cobra.Command {
	var (
		date        string
		amount      string
		categoryArg string
		description string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense",
		Long:  `Validate and record one expense. The table is saved right after the record is added.`,
		Example: `  expense-tracker add --date 2024-01-15 --amount 10.50 --description "Lunch"
  expense-tracker add --date 2024-01-15 --amount 1200 --category Rent`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := app.dependencies(cmd.Context())
			if err != nil {
				return err
			}

			_, err = deps.Expenses.AddExpense(cmd.Context(), expense.CreateExpenseDTO{
				Date:        date,
				Amount:      expense.RawAmount(amount),
				Category:    categoryArg,
				Description: description,
			})
			return err
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "expense date (YYYY-MM-DD), required")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "amount spent, a positive number")
	cmd.Flags().StringVarP(&categoryArg, "category", "c", category.Default(), "one of: "+joinNames())
	cmd.Flags().StringVarP(&description, "description", "m", "", "optional note")

	return cmd
}
