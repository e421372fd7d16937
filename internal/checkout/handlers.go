package checkout

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"

	"github.com/kiosco-labs/backend-kiosco/internal/common"
)

// Handler exposes cart finalization over HTTP.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
}

// Checkout finalizes the register's cart into an immutable transaction.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "checkout service not configured", nil)
		return
	}
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(in); err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
			return
		}
	}
	t, err := h.Svc.Checkout(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyCart):
			common.JSONError(w, http.StatusBadRequest, "EMPTY_CART", err.Error(), nil)
		case errors.Is(err, ErrInsufficientTender):
			common.JSONError(w, http.StatusBadRequest, "INSUFFICIENT_TENDER", err.Error(), nil)
		case errors.Is(err, ErrInvalidInput):
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		default:
			common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "checkout failed", nil)
		}
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": t})
}
