package report

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/frahmantamala/finflow/internal/finance"
	"github.com/frahmantamala/finflow/internal/transport"
)

const maxReportMonths = 24

type SnapshotProvider interface {
	Get(ctx context.Context, userID string) (finance.Snapshot, error)
}

type Handler struct {
	*transport.BaseHandler
	Snapshots SnapshotProvider
	now       func() time.Time
}

func NewHandler(baseHandler *transport.BaseHandler, snapshots SnapshotProvider) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Snapshots:   snapshots,
		now:         time.Now,
	}
}

func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) (finance.Snapshot, bool) {
	userID, ok := h.UserID(w, r)
	if !ok {
		return finance.Snapshot{}, false
	}

	snap, err := h.Snapshots.Get(r.Context(), userID)
	if err != nil {
		h.HandleServiceError(w, err)
		return finance.Snapshot{}, false
	}
	return snap, true
}

func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}
	h.WriteJSON(w, http.StatusOK, finance.BuildOverview(snap, h.now()))
}

func (h *Handler) GetReports(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}
	months := h.QueryInt(r, "months", finance.DefaultSeriesMonths, 1, maxReportMonths)
	h.WriteJSON(w, http.StatusOK, finance.BuildReport(snap, h.now(), months))
}

func ledgerFilter(r *http.Request) finance.LedgerFilter {
	q := r.URL.Query()
	return finance.LedgerFilter{Category: q.Get("category"), Query: q.Get("q")}
}

func (h *Handler) GetLedger(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}
	h.WriteJSON(w, http.StatusOK, BuildLedger(snap, ledgerFilter(r), h.now()))
}

func (h *Handler) ExportLedger(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	filtered := finance.FilterLedger(snap.Transactions, ledgerFilter(r))

	var buf bytes.Buffer
	if err := WriteLedgerXLSX(&buf, snap.Categories, filtered); err != nil {
		h.Logger.ErrorContext(r.Context(), "ExportLedger: failed to build workbook", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	filename := fmt.Sprintf("finflow-ledger-%s.xlsx", h.now().Format("2006-01-02"))
	w.Header().Set("Content-Type", XLSXContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.Logger.WarnContext(r.Context(), "ExportLedger: write interrupted", "error", err)
	}
}
