package pricing

import "github.com/shopspring/decimal"

// Summary aggregates the computed pricing components for a cart. Values keep
// full decimal precision; rounding to two places happens only when a value is
// rendered or persisted.
type Summary struct {
	Subtotal        decimal.Decimal
	ItemDiscount    decimal.Decimal
	PromoDiscount   decimal.Decimal
	GlobalDiscount  decimal.Decimal
	LoyaltyDiscount decimal.Decimal
	TotalDiscount   decimal.Decimal
	Total           decimal.Decimal
}

// Compute aggregates line totals, promotional credits and the single active
// adjustment into the final subtotal/discount/total triple. promoCredits maps
// line id to the credit produced by the promotion evaluator; it is honoured
// only while the adjustment actually is a promotion, so a stale credit map
// can never discount a cart twice.
func Compute(lines []Line, adj Adjustment, promoCredits map[string]decimal.Decimal) Summary {
	var (
		subtotal       decimal.Decimal
		itemDiscount   decimal.Decimal
		discountedBase decimal.Decimal
	)
	for _, line := range lines {
		if line.Qty <= 0 {
			continue
		}
		q := line.Quote()
		subtotal = subtotal.Add(q.Total)
		itemDiscount = itemDiscount.Add(q.Total.Sub(q.DiscountedTotal))
		discountedBase = discountedBase.Add(q.DiscountedTotal)
	}

	var promoDiscount decimal.Decimal
	if adj.Kind == AdjustmentPromotion {
		for _, credit := range promoCredits {
			if credit.Sign() > 0 {
				promoDiscount = promoDiscount.Add(credit)
			}
		}
	}

	globalBase := discountedBase.Sub(promoDiscount)
	if globalBase.Sign() < 0 {
		globalBase = decimal.Zero
	}
	globalDiscount := adj.GlobalDiscount().AmountOff(globalBase)
	loyaltyDiscount := adj.LoyaltyAmount()

	totalDiscount := itemDiscount.Add(promoDiscount).Add(globalDiscount).Add(loyaltyDiscount)
	total := subtotal.Sub(totalDiscount)
	if total.Sign() < 0 {
		total = decimal.Zero
	}

	return Summary{
		Subtotal:        subtotal,
		ItemDiscount:    itemDiscount,
		PromoDiscount:   promoDiscount,
		GlobalDiscount:  globalDiscount,
		LoyaltyDiscount: loyaltyDiscount,
		TotalDiscount:   totalDiscount,
		Total:           total,
	}
}

// Display formats a monetary value for presentation with two decimal places.
func Display(d decimal.Decimal) string {
	return d.StringFixed(2)
}
