package expense

import (
	"context"
	"net/http"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/transport"
)

type ServiceAPI interface {
	AddExpense(ctx context.Context, dto CreateExpenseDTO) (*Record, error)
	ListExpenses(ctx context.Context) (Table, error)
	Summary(ctx context.Context) ([]CategoryTotal, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

type ExpensesResponse struct {
	Expenses Table `json:"expenses"`
	Count    int   `json:"count"`
}

type SummaryResponse struct {
	Categories []CategoryTotal `json:"categories"`
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var dto CreateExpenseDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Log(r).Warn("CreateExpense: invalid request body", "error", err)
		h.WriteError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.Service.AddExpense(r.Context(), dto)
	if err != nil {
		if rec != nil {
			h.Log(r).Error("CreateExpense: expense recorded in memory only", "error", err)
		}
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, rec)
}

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	table, err := h.Service.ListExpenses(r.Context())
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	if table == nil {
		table = Table{}
	}

	h.WriteJSON(w, http.StatusOK, ExpensesResponse{Expenses: table, Count: len(table)})
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	totals, err := h.Service.Summary(r.Context())
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	if len(totals) == 0 {
		h.HandleServiceError(w, r, internal.ErrNoExpenses)
		return
	}

	h.WriteJSON(w, http.StatusOK, SummaryResponse{Categories: totals})
}
