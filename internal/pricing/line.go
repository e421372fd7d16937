package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Line is the pricing view of one cart entry. Custom (free-form) lines must
// never carry a discount or a price override; callers are expected to block
// that path before the engine runs.
type Line struct {
	ID       string
	Name     string
	Category string
	// UnitPrice is the catalog base price for one unit.
	UnitPrice decimal.Decimal
	Qty       int
	// Override replaces UnitPrice for all computations when set.
	Override *decimal.Decimal
	Discount *Discount
	Custom   bool
}

// LineQuote holds the computed amounts for a single line.
type LineQuote struct {
	// EffectiveUnitPrice is the overridden price when present, the base
	// price otherwise.
	EffectiveUnitPrice decimal.Decimal
	// Total is effective price times quantity, before any discount.
	Total decimal.Decimal
	// DiscountedTotal is Total after the line's own discount. Never
	// negative and never above Total.
	DiscountedTotal decimal.Decimal
}

// EffectiveUnitPrice resolves the unit price the line is actually sold at.
func (l Line) EffectiveUnitPrice() decimal.Decimal {
	if l.Override != nil {
		return *l.Override
	}
	return l.UnitPrice
}

// Quote computes the line's totals. It panics when a custom line carries a
// discount or override: no legitimate caller path produces that state, so it
// is a programmer error rather than input to degrade on.
func (l Line) Quote() LineQuote {
	if l.Custom && (l.Discount != nil || l.Override != nil) {
		panic(fmt.Sprintf("pricing: custom line %s carries a discount or override", l.ID))
	}
	unit := l.EffectiveUnitPrice()
	qty := l.Qty
	if qty < 0 {
		qty = 0
	}
	total := unit.Mul(decimal.NewFromInt(int64(qty)))
	if total.Sign() < 0 {
		total = decimal.Zero
	}
	discounted := total.Sub(l.Discount.AmountOff(total))
	if discounted.Sign() < 0 {
		discounted = decimal.Zero
	}
	return LineQuote{
		EffectiveUnitPrice: unit,
		Total:              total,
		DiscountedTotal:    discounted,
	}
}
