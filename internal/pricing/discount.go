package pricing

import "github.com/shopspring/decimal"

// DiscountKind distinguishes percentage discounts from fixed-amount ones.
type DiscountKind string

const (
	// DiscountPercentage reduces a total by a percentage of its value.
	DiscountPercentage DiscountKind = "percentage"
	// DiscountFixed reduces a total by a flat amount.
	DiscountFixed DiscountKind = "fixed"
)

var (
	hundred = decimal.NewFromInt(100)
)

// Discount is an immutable percentage or fixed reduction attachable to a
// single line or to the whole cart.
type Discount struct {
	Kind   DiscountKind    `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
}

// Normalize clamps the discount into its valid range and collapses no-op
// values to nil. Percentages are clamped to [0,100], fixed amounts to >= 0.
// A zero-amount discount is equivalent to no discount at all.
func Normalize(d *Discount) *Discount {
	if d == nil {
		return nil
	}
	amount := d.Amount
	switch d.Kind {
	case DiscountPercentage:
		if amount.GreaterThan(hundred) {
			amount = hundred
		}
	case DiscountFixed:
		// nothing beyond the floor below
	default:
		return nil
	}
	if amount.Sign() <= 0 {
		return nil
	}
	return &Discount{Kind: d.Kind, Amount: amount}
}

// AmountOff returns the reduction the discount produces on the given total.
// The result is never negative and never exceeds the total.
func (d *Discount) AmountOff(total decimal.Decimal) decimal.Decimal {
	if d == nil || total.Sign() <= 0 {
		return decimal.Zero
	}
	norm := Normalize(d)
	if norm == nil {
		return decimal.Zero
	}
	var off decimal.Decimal
	switch norm.Kind {
	case DiscountPercentage:
		off = total.Mul(norm.Amount).Div(hundred)
	case DiscountFixed:
		off = norm.Amount
	}
	if off.GreaterThan(total) {
		return total
	}
	return off
}
