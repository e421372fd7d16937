package cart

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/kiosco-labs/backend-kiosco/internal/common"
	"github.com/kiosco-labs/backend-kiosco/internal/loyalty"
	"github.com/kiosco-labs/backend-kiosco/internal/obs"
	"github.com/kiosco-labs/backend-kiosco/internal/pricing"
	"github.com/kiosco-labs/backend-kiosco/internal/promo"
)

// Handler wires register cart operations to HTTP. Every response carries the
// cart together with totals recomputed from the snapshot, so the register
// screen never renders stale amounts.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
	Currency string
}

type addItemPayload struct {
	ProductID string           `json:"productId"`
	Name      string           `json:"name"`
	UnitPrice *decimal.Decimal `json:"unitPrice"`
	Qty       int              `json:"qty" validate:"required,gt=0"`
	Custom    bool             `json:"custom"`
}

type updateItemPayload struct {
	Qty            *int              `json:"qty" validate:"omitempty,gt=0"`
	Discount       *pricing.Discount `json:"discount"`
	RemoveDiscount bool              `json:"removeDiscount"`
	Override       *decimal.Decimal  `json:"override"`
	RemoveOverride bool              `json:"removeOverride"`
}

// Get returns the cart with freshly computed totals.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	c, err := h.Svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.respond(w, http.StatusOK, c)
}

// AddItem appends a catalog product or a free-form custom line.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	var payload addItemPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if err := h.validate(payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	registerID := chi.URLParam(r, "id")

	var (
		c   Cart
		err error
	)
	if payload.Custom {
		if payload.UnitPrice == nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "unitPrice required for custom items", nil)
			return
		}
		c, err = h.Svc.AddCustom(r.Context(), registerID, payload.Name, *payload.UnitPrice, payload.Qty)
	} else {
		c, err = h.Svc.AddProduct(r.Context(), registerID, payload.ProductID, payload.Qty)
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, c)
}

// UpdateItem patches quantity, discount or price override on a line.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	var payload updateItemPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if err := h.validate(payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	registerID := chi.URLParam(r, "id")
	itemID := chi.URLParam(r, "itemId")

	var (
		c   Cart
		err error
	)
	switch {
	case payload.Qty != nil:
		c, err = h.Svc.SetQty(r.Context(), registerID, itemID, *payload.Qty)
	case payload.Discount != nil || payload.RemoveDiscount:
		c, err = h.Svc.SetItemDiscount(r.Context(), registerID, itemID, payload.Discount)
	case payload.Override != nil || payload.RemoveOverride:
		c, err = h.Svc.SetItemOverride(r.Context(), registerID, itemID, payload.Override)
	default:
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "nothing to update", nil)
		return
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.respond(w, http.StatusOK, c)
}

// RemoveItem deletes a line from the cart.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	c, err := h.Svc.Remove(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "itemId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.respond(w, http.StatusOK, c)
}

// Clear empties the register's cart.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	if err := h.Svc.Clear(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ApplyDiscount sets a manual global discount as the single adjustment.
func (h *Handler) ApplyDiscount(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	var payload pricing.Discount
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	c, err := h.Svc.ApplyDiscount(r.Context(), chi.URLParam(r, "id"), payload)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if obs.AdjustmentAppliedTotal != nil {
		obs.AdjustmentAppliedTotal.WithLabelValues(string(pricing.AdjustmentDiscount)).Inc()
	}
	h.respond(w, http.StatusOK, c)
}

// ApplyPromotion activates one catalog promotion.
func (h *Handler) ApplyPromotion(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	var payload struct {
		PromotionID string `json:"promotionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	c, err := h.Svc.ApplyPromotion(r.Context(), chi.URLParam(r, "id"), promo.ID(payload.PromotionID))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if obs.AdjustmentAppliedTotal != nil {
		obs.AdjustmentAppliedTotal.WithLabelValues(string(pricing.AdjustmentPromotion)).Inc()
	}
	h.respond(w, http.StatusOK, c)
}

// RedeemLoyalty converts a points balance into a fixed cart deduction.
func (h *Handler) RedeemLoyalty(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	var payload struct {
		Points int `json:"points"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	c, err := h.Svc.RedeemLoyalty(r.Context(), chi.URLParam(r, "id"), payload.Points)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if obs.AdjustmentAppliedTotal != nil {
		obs.AdjustmentAppliedTotal.WithLabelValues(string(pricing.AdjustmentLoyalty)).Inc()
	}
	h.respond(w, http.StatusOK, c)
}

// ClearAdjustment removes the active cart-level adjustment.
func (h *Handler) ClearAdjustment(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	c, err := h.Svc.ClearAdjustment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.respond(w, http.StatusOK, c)
}

func (h *Handler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}

// respond renders the cart plus totals recomputed from the snapshot.
func (h *Handler) respond(w http.ResponseWriter, status int, c Cart) {
	lines := c.Lines()
	credits := promo.Credits{}
	if c.Adjustment.Kind == pricing.AdjustmentPromotion {
		credits = promo.Evaluate(lines, promo.ID(c.Adjustment.PromotionID))
	}
	summary := pricing.Compute(lines, c.Adjustment, credits)

	promoDiscounts := make(map[string]string, len(credits))
	for id, credit := range credits {
		promoDiscounts[id] = pricing.Display(credit)
	}
	common.JSON(w, status, map[string]any{
		"data": map[string]any{
			"cart": c,
			"totals": map[string]any{
				"subtotal":               pricing.Display(summary.Subtotal),
				"totalDiscount":          pricing.Display(summary.TotalDiscount),
				"finalTotal":             pricing.Display(summary.Total),
				"itemizedPromoDiscounts": promoDiscounts,
			},
			"currency": h.Currency,
		},
	})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, ErrCustomLine):
		common.JSONError(w, http.StatusBadRequest, "CUSTOM_LINE", err.Error(), nil)
	case errors.Is(err, loyalty.ErrInsufficientPoints):
		common.JSONError(w, http.StatusBadRequest, "INSUFFICIENT_POINTS", err.Error(), nil)
	case errors.Is(err, ErrInvalidInput):
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart operation failed", nil)
	}
}
