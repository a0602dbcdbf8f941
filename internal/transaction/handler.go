package transaction

import (
	"context"
	"math"
	"net/http"

	"github.com/frahmantamala/finflow/internal/finance"
	"github.com/frahmantamala/finflow/internal/transport"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ServiceAPI interface {
	Create(ctx context.Context, userID string, dto CreateTransactionDTO) (*finance.Transaction, error)
	QuickAdd(ctx context.Context, userID string, dto QuickAddDTO) (*QuickAddResult, error)
	List(ctx context.Context, userID string, limit, offset int) ([]finance.Transaction, int64, error)
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

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.UserID(w, r)
	if !ok {
		return
	}

	var dto CreateTransactionDTO
	if !h.DecodeJSON(w, r, &dto) {
		return
	}

	tx, err := h.Service.Create(r.Context(), userID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, tx)
}

func (h *Handler) QuickAdd(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.UserID(w, r)
	if !ok {
		return
	}

	var dto QuickAddDTO
	if !h.DecodeJSON(w, r, &dto) {
		return
	}

	result, err := h.Service.QuickAdd(r.Context(), userID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.InfoContext(r.Context(), "QuickAdd: transaction added",
		"transaction_id", result.Transaction.ID,
		"source", result.Source)

	h.WriteJSON(w, http.StatusCreated, result)
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.UserID(w, r)
	if !ok {
		return
	}

	limit := h.QueryInt(r, "limit", defaultPageSize, 1, maxPageSize)
	offset := h.QueryInt(r, "offset", 0, 0, math.MaxInt32)

	txs, total, err := h.Service.List(r.Context(), userID, limit, offset)
	if err != nil {
		h.Logger.ErrorContext(r.Context(), "ListTransactions: service error", "error", err, "user_id", userID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ListResponse{
		Transactions: txs,
		Total:        total,
		Limit:        limit,
		Offset:       offset,
	})
}
