package pricing

import "github.com/shopspring/decimal"

// AdjustmentKind enumerates the mutually exclusive cart-level discount
// mechanisms. A cart holds at most one adjustment at a time.
type AdjustmentKind string

const (
	// AdjustmentNone means no cart-level adjustment is active.
	AdjustmentNone AdjustmentKind = ""
	// AdjustmentDiscount is a manual percentage or fixed global discount.
	AdjustmentDiscount AdjustmentKind = "discount"
	// AdjustmentPromotion activates one promotion rule by id.
	AdjustmentPromotion AdjustmentKind = "promotion"
	// AdjustmentLoyalty is a one-shot fixed deduction from a loyalty
	// redemption.
	AdjustmentLoyalty AdjustmentKind = "loyalty"
)

// Adjustment is the single tagged cart-level adjustment. Modelling the three
// mechanisms as one variant field removes the inconsistent state where more
// than one is set.
type Adjustment struct {
	Kind AdjustmentKind `json:"kind"`
	// Discount is set when Kind is AdjustmentDiscount.
	Discount *Discount `json:"discount,omitempty"`
	// PromotionID is set when Kind is AdjustmentPromotion.
	PromotionID string `json:"promotionId,omitempty"`
	// LoyaltyValue is set when Kind is AdjustmentLoyalty.
	LoyaltyValue decimal.Decimal `json:"loyaltyValue,omitempty"`
}

// GlobalDiscount applies when the adjustment is a manual discount.
func (a Adjustment) GlobalDiscount() *Discount {
	if a.Kind != AdjustmentDiscount {
		return nil
	}
	return Normalize(a.Discount)
}

// LoyaltyAmount applies when the adjustment is a loyalty redemption.
func (a Adjustment) LoyaltyAmount() decimal.Decimal {
	if a.Kind != AdjustmentLoyalty || a.LoyaltyValue.Sign() <= 0 {
		return decimal.Zero
	}
	return a.LoyaltyValue
}
