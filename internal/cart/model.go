package cart

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kiosco-labs/backend-kiosco/internal/pricing"
)

// Item is one cart line on a register. Custom items are free-form entries
// typed in at the register; they never reference the catalog and never carry
// a discount or override.
type Item struct {
	ID        string            `json:"id"`
	ProductID string            `json:"productId,omitempty"`
	Name      string            `json:"name"`
	Category  string            `json:"category,omitempty"`
	UnitPrice decimal.Decimal   `json:"unitPrice"`
	Qty       int               `json:"qty"`
	Override  *decimal.Decimal  `json:"override,omitempty"`
	Discount  *pricing.Discount `json:"discount,omitempty"`
	Custom    bool              `json:"custom,omitempty"`
}

// Cart is the mutable working state of one register: an ordered item list
// plus at most one cart-level adjustment.
type Cart struct {
	RegisterID string             `json:"registerId"`
	Items      []Item             `json:"items"`
	Adjustment pricing.Adjustment `json:"adjustment"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

// Lines projects the cart into the pricing engine's input. Item order is
// preserved; promotion tie-breaks depend on it.
func (c Cart) Lines() []pricing.Line {
	lines := make([]pricing.Line, 0, len(c.Items))
	for _, it := range c.Items {
		lines = append(lines, pricing.Line{
			ID:        it.ID,
			Name:      it.Name,
			Category:  it.Category,
			UnitPrice: it.UnitPrice,
			Qty:       it.Qty,
			Override:  it.Override,
			Discount:  it.Discount,
			Custom:    it.Custom,
		})
	}
	return lines
}

func (c *Cart) findItem(itemID string) *Item {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i]
		}
	}
	return nil
}

func (c *Cart) removeItem(itemID string) bool {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}
