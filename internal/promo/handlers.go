package promo

import (
	"net/http"

	"github.com/kiosco-labs/backend-kiosco/internal/common"
)

// Handler exposes the promotion catalog over HTTP.
type Handler struct{}

// List returns the fixed promotion catalog.
func (h Handler) List(w http.ResponseWriter, _ *http.Request) {
	common.JSON(w, http.StatusOK, map[string]any{"data": Catalog()})
}
