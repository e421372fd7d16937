package pricing

import "testing"

func TestQuoteUsesOverridePrice(t *testing.T) {
	override := dec("8")
	line := Line{ID: "a", UnitPrice: dec("10"), Qty: 3, Override: &override}
	q := line.Quote()
	if !q.EffectiveUnitPrice.Equal(dec("8")) {
		t.Fatalf("expected effective price 8, got %s", q.EffectiveUnitPrice)
	}
	if !q.Total.Equal(dec("24")) {
		t.Fatalf("expected total 24, got %s", q.Total)
	}
}

func TestQuotePercentageDiscount(t *testing.T) {
	line := Line{ID: "a", UnitPrice: dec("10"), Qty: 2, Discount: &Discount{Kind: DiscountPercentage, Amount: dec("25")}}
	q := line.Quote()
	if !q.DiscountedTotal.Equal(dec("15")) {
		t.Fatalf("expected discounted total 15, got %s", q.DiscountedTotal)
	}
}

func TestQuoteFixedDiscountFloorsAtZero(t *testing.T) {
	line := Line{ID: "a", UnitPrice: dec("5"), Qty: 1, Discount: &Discount{Kind: DiscountFixed, Amount: dec("9")}}
	q := line.Quote()
	if q.DiscountedTotal.Sign() != 0 {
		t.Fatalf("expected discounted total 0, got %s", q.DiscountedTotal)
	}
}

func TestQuoteDiscountedNeverAboveTotal(t *testing.T) {
	lines := []Line{
		{ID: "a", UnitPrice: dec("7.5"), Qty: 4, Discount: &Discount{Kind: DiscountPercentage, Amount: dec("33")}},
		{ID: "b", UnitPrice: dec("3"), Qty: 2, Discount: &Discount{Kind: DiscountFixed, Amount: dec("1.25")}},
		{ID: "c", UnitPrice: dec("12"), Qty: 1},
	}
	for _, line := range lines {
		q := line.Quote()
		if q.DiscountedTotal.GreaterThan(q.Total) || q.DiscountedTotal.Sign() < 0 || q.Total.Sign() < 0 {
			t.Fatalf("line %s violates bounds: total=%s discounted=%s", line.ID, q.Total, q.DiscountedTotal)
		}
	}
}

func TestQuoteCustomLineWithDiscountPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for custom line carrying a discount")
		}
	}()
	line := Line{ID: "x", UnitPrice: dec("5"), Qty: 1, Custom: true, Discount: &Discount{Kind: DiscountFixed, Amount: dec("1")}}
	line.Quote()
}
