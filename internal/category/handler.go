package category

import (
	"context"
	"net/http"

	"github.com/frahmantamala/finflow/internal/finance"
	"github.com/frahmantamala/finflow/internal/transport"
)

type ServiceAPI interface {
	EnsureDefaults(ctx context.Context, userID string) ([]finance.Category, error)
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

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.UserID(w, r)
	if !ok {
		return
	}

	categories, err := h.Service.EnsureDefaults(r.Context(), userID)
	if err != nil {
		h.Logger.ErrorContext(r.Context(), "GetCategories: failed to get categories", "error", err, "user_id", userID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, CategoriesResponse{Categories: categories})
}
