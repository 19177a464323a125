package cmd

import (
	"fmt"

	"github.com/frahmantamala/expense-tracker/internal/category"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/spf13/cobra"
)

var sampleExpenses = []expense.CreateExpenseDTO{
	{Date: "2024-01-01", Amount: "1200", Category: category.Rent, Description: "January rent"},
	{Date: "2024-01-03", Amount: "54.20", Category: category.Food, Description: "Groceries"},
	{Date: "2024-01-05", Amount: "2.75", Category: category.Transportation, Description: "Bus fare"},
	{Date: "2024-01-08", Amount: "89.99", Category: category.Utilities, Description: "Electricity"},
	{Date: "2024-01-10", Amount: "15", Category: category.Entertainment, Description: "Cinema"},
	{Date: "2024-01-12", Amount: "12.50", Category: category.Food, Description: "Lunch"},
	{Date: "2024-01-15", Amount: "45", Category: category.Transportation, Description: "Fuel"},
	{Date: "2024-01-18", Amount: "39.90", Category: category.Utilities, Description: "Internet"},
	{Date: "2024-01-21", Amount: "9.99", Category: category.Entertainment, Description: "Streaming subscription"},
	{Date: "2024-01-24", Amount: "20", Category: category.Others, Description: "Gift"},
}

func newSeedCmd(app *application) *cobra.Command {
	var clearData bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the store with sample expenses",
		Long:  `Append a month of sample expenses for development and demos.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.status = nil
			deps, err := app.dependencies(cmd.Context())
			if err != nil {
				return err
			}

			if clearData {
				if err := deps.Storage.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Cleared existing expenses")
			}

			for _, dto := range sampleExpenses {
				if _, err := deps.Expenses.AddExpense(cmd.Context(), dto); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d expenses\n", len(sampleExpenses))
			return nil
		},
	}

	cmd.Flags().BoolVar(&clearData, "clear", false, "Clear existing data before seeding")
	return cmd
}
