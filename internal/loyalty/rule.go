package loyalty

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInsufficientPoints is returned when the customer's balance is below the
// redemption threshold.
var ErrInsufficientPoints = errors.New("insufficient loyalty points")

// Rule converts an accrued points balance into a one-time fixed cart
// discount, gated by a points threshold. The engine holds no redemption
// state; marking points as spent belongs to the customer ledger upstream.
type Rule struct {
	// PointsRequired is the minimum balance needed to redeem.
	PointsRequired int
	// Value is the fixed amount deducted from the cart on redemption.
	Value decimal.Decimal
}

// Eligible reports whether the balance clears the redemption threshold.
func (r Rule) Eligible(points int) bool {
	return r.PointsRequired > 0 && points >= r.PointsRequired
}

// Redeem returns the redemption value for the given balance.
func (r Rule) Redeem(points int) (decimal.Decimal, error) {
	if !r.Eligible(points) {
		return decimal.Zero, ErrInsufficientPoints
	}
	if r.Value.Sign() <= 0 {
		return decimal.Zero, nil
	}
	return r.Value, nil
}
