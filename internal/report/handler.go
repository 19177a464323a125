package report

import (
	"bytes"
	"context"
	"net/http"

	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/frahmantamala/expense-tracker/internal/transport"
)

type ExpenseSource interface {
	ListExpenses(ctx context.Context) (expense.Table, error)
	Summary(ctx context.Context) ([]expense.CategoryTotal, error)
}

type Handler struct {
	*transport.BaseHandler
	Source ExpenseSource
}

func NewHandler(baseHandler *transport.BaseHandler, source ExpenseSource) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Source:      source,
	}
}

type ChartResponse struct {
	Title  string  `json:"title"`
	Slices []Slice `json:"slices"`
}

func (h *Handler) GetChart(w http.ResponseWriter, r *http.Request) {
	slices, err := h.slices(r.Context())
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ChartResponse{Title: ChartTitle, Slices: slices})
}

func (h *Handler) GetChartPDF(w http.ResponseWriter, r *http.Request) {
	slices, err := h.slices(r.Context())
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	// render into memory first so a failure can still produce a JSON error
	var buf bytes.Buffer
	if err := RenderPDF(&buf, ChartTitle, slices); err != nil {
		h.Log(r).Error("GetChartPDF: render failed", "error", err)
		h.HandleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="spending.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	table, err := h.Source.ListExpenses(r.Context())
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	totals, err := h.Source.Summary(r.Context())
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := ExportXLSX(&buf, table, totals); err != nil {
		h.Log(r).Error("ExportXLSX: render failed", "error", err)
		h.WriteError(w, r, http.StatusInternalServerError, "failed to build workbook")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="expenses.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) slices(ctx context.Context) ([]Slice, error) {
	totals, err := h.Source.Summary(ctx)
	if err != nil {
		return nil, err
	}
	slices := PieSlices(totals)
	if len(slices) == 0 {
		return nil, ErrNothingToVisualize
	}
	return slices, nil
}
