package sales

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kiosco-labs/backend-kiosco/internal/common"
)

// Handler exposes the sales history over HTTP.
type Handler struct {
	Svc *Service
}

// List returns recent transactions, newest first. ?limit= caps the page.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "sales service not configured", nil)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	transactions, err := h.Svc.List(r.Context(), limit)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to load sales history", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": transactions})
}

// Get returns one finalized transaction for receipt or refund display.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "sales service not configured", nil)
		return
	}
	t, err := h.Svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "transaction not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to load transaction", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": t})
}
