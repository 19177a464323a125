package budget

import (
	"context"
	"net/http"

	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/frahmantamala/expense-tracker/internal/transport"
	"github.com/go-chi/chi"
)

type TableAPI interface {
	Set(ctx context.Context, categoryName, amount string) (*Budget, error)
	List() []Budget
}

type Handler struct {
	*transport.BaseHandler
	Table TableAPI
}

func NewHandler(baseHandler *transport.BaseHandler, table TableAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Table:       table,
	}
}

type SetBudgetDTO struct {
	Amount expense.RawAmount `json:"amount"`
}

type BudgetsResponse struct {
	Budgets []Budget `json:"budgets"`
}

func (h *Handler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, BudgetsResponse{Budgets: h.Table.List()})
}

func (h *Handler) SetBudget(w http.ResponseWriter, r *http.Request) {
	categoryName := chi.URLParam(r, "category")

	var dto SetBudgetDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Log(r).Warn("SetBudget: invalid request body", "error", err)
		h.WriteError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	b, err := h.Table.Set(r.Context(), categoryName, string(dto.Amount))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, b)
}
