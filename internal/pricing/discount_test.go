package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestNormalizeZeroIsAbsent(t *testing.T) {
	cases := []*Discount{
		{Kind: DiscountPercentage, Amount: decimal.Zero},
		{Kind: DiscountFixed, Amount: decimal.Zero},
		{Kind: DiscountPercentage, Amount: dec("-5")},
		{Kind: DiscountFixed, Amount: dec("-10")},
		nil,
	}
	for _, d := range cases {
		if got := Normalize(d); got != nil {
			t.Fatalf("expected nil for %+v, got %+v", d, got)
		}
	}
}

func TestNormalizeClampsPercentage(t *testing.T) {
	d := Normalize(&Discount{Kind: DiscountPercentage, Amount: dec("150")})
	if d == nil || !d.Amount.Equal(dec("100")) {
		t.Fatalf("expected percentage clamped to 100, got %+v", d)
	}
}

func TestNormalizeUnknownKind(t *testing.T) {
	if d := Normalize(&Discount{Kind: "mystery", Amount: dec("10")}); d != nil {
		t.Fatalf("expected unknown kind to normalize away, got %+v", d)
	}
}

func TestAmountOffPercentage(t *testing.T) {
	d := &Discount{Kind: DiscountPercentage, Amount: dec("10")}
	if got := d.AmountOff(dec("20")); !got.Equal(dec("2")) {
		t.Fatalf("expected 2, got %s", got)
	}
}

func TestAmountOffFixedNeverExceedsTotal(t *testing.T) {
	d := &Discount{Kind: DiscountFixed, Amount: dec("50")}
	if got := d.AmountOff(dec("30")); !got.Equal(dec("30")) {
		t.Fatalf("expected discount capped at 30, got %s", got)
	}
}

func TestAmountOffNilDiscount(t *testing.T) {
	var d *Discount
	if got := d.AmountOff(dec("30")); !got.Equal(decimal.Zero) {
		t.Fatalf("expected zero, got %s", got)
	}
}
