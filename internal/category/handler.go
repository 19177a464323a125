package category

import (
	"net/http"

	"github.com/frahmantamala/expense-tracker/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
}

func NewHandler(baseHandler *transport.BaseHandler) *Handler {
	return &Handler{BaseHandler: baseHandler}
}

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	all := All()
	responses := make([]CategoryResponse, 0, len(all))
	for _, c := range all {
		responses = append(responses, c.ToResponse())
	}

	h.WriteJSON(w, http.StatusOK, CategoriesResponse{
		Categories: responses,
		Default:    Default(),
	})
}
