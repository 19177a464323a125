package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/frahmantamala/expense-tracker/internal/report"
	"github.com/spf13/cobra"
)

func newExportCmd(app *application) *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:     "export",
		Short:   "Export expenses to a spreadsheet",
		Example: `  expense-tracker export --format xlsx --out expenses.xlsx`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			if format != report.FormatXLSX && format != report.FormatCSV {
				return internal.NewValidationFieldError("format", "Format must be xlsx or csv.", internal.ErrCodeValidationFailed)
			}
			if strings.TrimSpace(out) == "" {
				return internal.NewValidationFieldError("out", "Output path is required.", internal.ErrCodeRequiredField)
			}

			deps, err := app.dependencies(cmd.Context())
			if err != nil {
				return err
			}

			table, err := deps.Expenses.ListExpenses(cmd.Context())
			if err != nil {
				return err
			}

			err = writeFile(out, func(f *os.File) error {
				if format == report.FormatCSV {
					return report.ExportCSV(f, table)
				}
				return report.ExportXLSX(f, table, expense.Summarize(table))
			})
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d expenses to %s\n", table.Len(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", report.FormatXLSX, "xlsx or csv")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file path")
	return cmd
}
