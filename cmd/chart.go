package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/frahmantamala/expense-tracker/internal/report"
	"github.com/spf13/cobra"
)

func newChartCmd(app *application) *cobra.Command {
	var pdfPath string

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Show spending by category as a pie chart",
		Long:  `Print the category shares as bars, or write a PDF pie chart with --pdf.`,
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
			slices := report.PieSlices(totals)

			if pdfPath == "" {
				return report.RenderChart(cmd.OutOrStdout(), slices)
			}
			if len(slices) == 0 {
				return report.ErrNothingToVisualize
			}

			if err := writeFile(pdfPath, func(f *os.File) error {
				return report.RenderPDF(f, report.ChartTitle, slices)
			}); err != nil {
				return fmt.Errorf("write chart: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Chart written to %s\n", pdfPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&pdfPath, "pdf", "", "write the chart as a PDF to this path")
	return cmd
}

// writeFile creates path (and its directory) and hands it to write.
func writeFile(path string, write func(f *os.File) error) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}
