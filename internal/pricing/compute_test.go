package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestComputePlainCart(t *testing.T) {
	lines := []Line{
		{ID: "a", UnitPrice: dec("10"), Qty: 2},
		{ID: "b", UnitPrice: dec("3.5"), Qty: 1},
	}
	s := Compute(lines, Adjustment{}, nil)
	if !s.Subtotal.Equal(dec("23.5")) {
		t.Fatalf("expected subtotal 23.5, got %s", s.Subtotal)
	}
	if s.TotalDiscount.Sign() != 0 {
		t.Fatalf("expected no discount, got %s", s.TotalDiscount)
	}
	if !s.Total.Equal(s.Subtotal) {
		t.Fatalf("expected total == subtotal, got %s", s.Total)
	}
}

func TestComputeGlobalDiscountAppliesToDiscountedBase(t *testing.T) {
	lines := []Line{
		{ID: "a", UnitPrice: dec("10"), Qty: 2, Discount: &Discount{Kind: DiscountFixed, Amount: dec("5")}},
	}
	adj := Adjustment{Kind: AdjustmentDiscount, Discount: &Discount{Kind: DiscountPercentage, Amount: dec("10")}}
	s := Compute(lines, adj, nil)
	// item discount 5, base 15, global 10% of 15 = 1.5
	if !s.GlobalDiscount.Equal(dec("1.5")) {
		t.Fatalf("expected global discount 1.5, got %s", s.GlobalDiscount)
	}
	if !s.Total.Equal(dec("13.5")) {
		t.Fatalf("expected total 13.5, got %s", s.Total)
	}
}

func TestComputePromotionWinsOverStaleCredits(t *testing.T) {
	lines := []Line{{ID: "a", UnitPrice: dec("20"), Qty: 1}}
	credits := map[string]decimal.Decimal{"a": dec("2")}

	// Credits are ignored while the adjustment is not a promotion.
	s := Compute(lines, Adjustment{Kind: AdjustmentDiscount, Discount: &Discount{Kind: DiscountFixed, Amount: dec("3")}}, credits)
	if s.PromoDiscount.Sign() != 0 {
		t.Fatalf("expected stale credits ignored, got %s", s.PromoDiscount)
	}
	if !s.Total.Equal(dec("17")) {
		t.Fatalf("expected total 17, got %s", s.Total)
	}

	// A promotion zeroes global and loyalty amounts regardless of stored values.
	s = Compute(lines, Adjustment{Kind: AdjustmentPromotion, PromotionID: "PROMO_BEBIDAS", LoyaltyValue: dec("5")}, credits)
	if s.GlobalDiscount.Sign() != 0 || s.LoyaltyDiscount.Sign() != 0 {
		t.Fatalf("expected promotion to exclude other mechanisms, got global=%s loyalty=%s", s.GlobalDiscount, s.LoyaltyDiscount)
	}
	if !s.Total.Equal(dec("18")) {
		t.Fatalf("expected total 18, got %s", s.Total)
	}
}

func TestComputeLoyaltyRedemption(t *testing.T) {
	lines := []Line{{ID: "a", UnitPrice: dec("20"), Qty: 1}}
	s := Compute(lines, Adjustment{Kind: AdjustmentLoyalty, LoyaltyValue: dec("5")}, nil)
	if !s.Total.Equal(dec("15")) {
		t.Fatalf("expected total 15, got %s", s.Total)
	}
}

func TestComputeTotalNeverNegative(t *testing.T) {
	lines := []Line{{ID: "a", UnitPrice: dec("4"), Qty: 1}}
	s := Compute(lines, Adjustment{Kind: AdjustmentLoyalty, LoyaltyValue: dec("10")}, nil)
	if s.Total.Sign() != 0 {
		t.Fatalf("expected total clamped to 0, got %s", s.Total)
	}
	if s.Total.GreaterThan(s.Subtotal) {
		t.Fatalf("total above subtotal: %s > %s", s.Total, s.Subtotal)
	}
}

func TestComputeDeterministic(t *testing.T) {
	lines := []Line{
		{ID: "a", UnitPrice: dec("10.33"), Qty: 3, Discount: &Discount{Kind: DiscountPercentage, Amount: dec("7")}},
		{ID: "b", UnitPrice: dec("1.99"), Qty: 5},
	}
	adj := Adjustment{Kind: AdjustmentDiscount, Discount: &Discount{Kind: DiscountPercentage, Amount: dec("12.5")}}
	first := Compute(lines, adj, nil)
	second := Compute(lines, adj, nil)
	if first.Total.Cmp(second.Total) != 0 || first.TotalDiscount.Cmp(second.TotalDiscount) != 0 || first.Subtotal.Cmp(second.Subtotal) != 0 {
		t.Fatalf("recomputation diverged: %+v vs %+v", first, second)
	}
}
