package cmd

import (
	"fmt"
	"strings"

	"github.com/frahmantamala/expense-tracker/internal/category"
	"github.com/spf13/cobra"
)

func newCategoriesCmd(_ *application) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the expense categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, c := range category.All() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-15s %s\n", c.Name, c.Description)
			}
			return nil
		},
	}
}

func joinNames() string {
	return strings.Join(category.Names(), ", ")
}
