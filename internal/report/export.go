package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/xuri/excelize/v2"
)

const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"

	SheetExpenses = "Expenses"
	SheetSummary  = "Summary"
)

// ExportXLSX writes a workbook with the full table and the category summary.
func ExportXLSX(w io.Writer, table expense.Table, totals []expense.CategoryTotal) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetExpenses); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(expense.Columns))
	for i, c := range expense.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetExpenses, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, rec := range table {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{rec.Date, rec.Amount.InexactFloat64(), rec.Category, rec.Description}
		if err := f.SetSheetRow(SheetExpenses, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	_ = f.SetColWidth(SheetExpenses, "A", "A", 12)
	_ = f.SetColWidth(SheetExpenses, "B", "B", 12)
	_ = f.SetColWidth(SheetExpenses, "C", "C", 16)
	_ = f.SetColWidth(SheetExpenses, "D", "D", 40)

	if _, err := f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	summaryHeader := []interface{}{"Category", "Total Amount", "Share"}
	if err := f.SetSheetRow(SheetSummary, "A1", &summaryHeader); err != nil {
		return fmt.Errorf("write summary header: %w", err)
	}
	for i, s := range PieSlices(totals) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{s.Category, s.Total.InexactFloat64(), FormatPercent(s.Percent)}
		if err := f.SetSheetRow(SheetSummary, cell, &row); err != nil {
			return fmt.Errorf("write summary row %d: %w", i+1, err)
		}
	}
	_ = f.SetColWidth(SheetSummary, "A", "A", 16)
	_ = f.SetColWidth(SheetSummary, "B", "C", 14)

	f.SetActiveSheet(0)
	return f.Write(w)
}

// ExportCSV writes the table with a header row using the persisted column names.
func ExportCSV(w io.Writer, table expense.Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(expense.Columns); err != nil {
		return err
	}
	for _, rec := range table {
		if err := writer.Write([]string{rec.Date, rec.Amount.String(), rec.Category, rec.Description}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
