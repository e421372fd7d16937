package promo

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/kiosco-labs/backend-kiosco/internal/pricing"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestBebidasCreditsTenPercent(t *testing.T) {
	lines := []pricing.Line{
		{ID: "a", Category: CategoryBebidas, UnitPrice: dec("10"), Qty: 2},
		{ID: "b", Category: CategorySnacks, UnitPrice: dec("4"), Qty: 1},
	}
	credits := Evaluate(lines, Bebidas)
	if len(credits) != 1 {
		t.Fatalf("expected one credited line, got %d", len(credits))
	}
	if !credits["a"].Equal(dec("2")) {
		t.Fatalf("expected credit 2.00, got %s", credits["a"])
	}
}

func TestBebidasAppliesAfterItemDiscount(t *testing.T) {
	lines := []pricing.Line{
		{ID: "a", Category: CategoryBebidas, UnitPrice: dec("10"), Qty: 1,
			Discount: &pricing.Discount{Kind: pricing.DiscountPercentage, Amount: dec("50")}},
	}
	credits := Evaluate(lines, Bebidas)
	if !credits["a"].Equal(dec("0.5")) {
		t.Fatalf("expected credit on discounted total, got %s", credits["a"])
	}
}

func TestComboKioscoCreditsCheapestCandyUnit(t *testing.T) {
	lines := []pricing.Line{
		{ID: "drink", Category: CategoryBebidas, UnitPrice: dec("7"), Qty: 1},
		{ID: "candy5", Category: CategoryGolosina, UnitPrice: dec("5"), Qty: 1},
		{ID: "candy3", Category: CategoryGolosina, UnitPrice: dec("3"), Qty: 1},
	}
	credits := Evaluate(lines, ComboKiosco)
	if len(credits) != 1 {
		t.Fatalf("expected exactly one credited line, got %v", credits)
	}
	if !credits["candy3"].Equal(dec("1.5")) {
		t.Fatalf("expected 1.50 on the cheaper candy, got %s", credits["candy3"])
	}
}

func TestComboKioscoSingleUnitEvenWithQuantity(t *testing.T) {
	lines := []pricing.Line{
		{ID: "drink", Category: CategoryBebidas, UnitPrice: dec("7"), Qty: 1},
		{ID: "candy", Category: CategoryGolosina, UnitPrice: dec("3"), Qty: 4},
	}
	credits := Evaluate(lines, ComboKiosco)
	if !credits["candy"].Equal(dec("1.5")) {
		t.Fatalf("expected half of one unit only, got %s", credits["candy"])
	}
}

func TestComboKioscoRequiresBothCategories(t *testing.T) {
	lines := []pricing.Line{
		{ID: "candy", Category: CategoryGolosina, UnitPrice: dec("3"), Qty: 2},
	}
	if credits := Evaluate(lines, ComboKiosco); len(credits) != 0 {
		t.Fatalf("expected no credits without a drink, got %v", credits)
	}
}

func TestComboKioscoTieBreaksOnCartOrder(t *testing.T) {
	lines := []pricing.Line{
		{ID: "drink", Category: CategoryBebidas, UnitPrice: dec("7"), Qty: 1},
		{ID: "first", Category: CategoryGolosina, UnitPrice: dec("3"), Qty: 1},
		{ID: "second", Category: CategoryGolosina, UnitPrice: dec("3"), Qty: 1},
	}
	credits := Evaluate(lines, ComboKiosco)
	if _, ok := credits["first"]; !ok {
		t.Fatalf("expected earliest line to win the tie, got %v", credits)
	}
}

func TestSnacks3x2FreesCheapestPerGroup(t *testing.T) {
	lines := []pricing.Line{
		{ID: "s2", Category: CategorySnacks, UnitPrice: dec("2"), Qty: 1},
		{ID: "s3", Category: CategorySnacks, UnitPrice: dec("3"), Qty: 1},
		{ID: "s4", Category: CategorySnacks, UnitPrice: dec("4"), Qty: 1},
		{ID: "s5", Category: CategorySnacks, UnitPrice: dec("5"), Qty: 1},
	}
	credits := Evaluate(lines, Snacks3x2)
	if !credits["s2"].Equal(dec("2")) {
		t.Fatalf("expected the 2-priced unit free, got %v", credits)
	}
	if !credits.Total().Equal(dec("2")) {
		t.Fatalf("expected total credit 2.00, got %s", credits.Total())
	}
}

func TestSnacks3x2ExpandsQuantities(t *testing.T) {
	// Six units across two lines form two complete groups.
	lines := []pricing.Line{
		{ID: "cheap", Category: CategorySnacks, UnitPrice: dec("1"), Qty: 4},
		{ID: "rich", Category: CategorySnacks, UnitPrice: dec("9"), Qty: 2},
	}
	credits := Evaluate(lines, Snacks3x2)
	// Sorted units: 1,1,1,1,9,9 -> free units at positions 0 and 3, both from "cheap".
	if !credits["cheap"].Equal(dec("2")) {
		t.Fatalf("expected two free cheap units, got %v", credits)
	}
	if _, ok := credits["rich"]; ok {
		t.Fatalf("expected no credit on the expensive line, got %v", credits)
	}
}

func TestSnacks3x2PartialGroupGetsNothing(t *testing.T) {
	lines := []pricing.Line{
		{ID: "a", Category: CategorySnacks, UnitPrice: dec("2"), Qty: 2},
	}
	if credits := Evaluate(lines, Snacks3x2); len(credits) != 0 {
		t.Fatalf("expected no credits for a partial group, got %v", credits)
	}
}

func TestEvaluateNoMatchingCategory(t *testing.T) {
	lines := []pricing.Line{
		{ID: "a", Category: CategorySnacks, UnitPrice: dec("2"), Qty: 1},
	}
	if credits := Evaluate(lines, Bebidas); len(credits) != 0 {
		t.Fatalf("expected empty credits, got %v", credits)
	}
}

func TestEvaluateUnknownPromotion(t *testing.T) {
	lines := []pricing.Line{
		{ID: "a", Category: CategoryBebidas, UnitPrice: dec("2"), Qty: 1},
	}
	if credits := Evaluate(lines, ID("PROMO_FANTASMA")); len(credits) != 0 {
		t.Fatalf("expected graceful degradation, got %v", credits)
	}
}

func TestCatalogAndRulesStayInSync(t *testing.T) {
	for _, p := range Catalog() {
		if ruleFor(p.ID) == nil {
			t.Fatalf("catalog entry %s has no evaluator rule", p.ID)
		}
	}
	for _, id := range []ID{Bebidas, ComboKiosco, Snacks3x2} {
		if _, ok := Lookup(id); !ok {
			t.Fatalf("rule id %s missing from catalog", id)
		}
	}
}
