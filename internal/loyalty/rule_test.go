package loyalty

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestEligibility(t *testing.T) {
	rule := Rule{PointsRequired: 100, Value: decimal.NewFromInt(5)}
	if rule.Eligible(99) {
		t.Fatal("99 points should not be eligible")
	}
	if !rule.Eligible(100) {
		t.Fatal("100 points should be eligible")
	}
}

func TestRedeemBelowThreshold(t *testing.T) {
	rule := Rule{PointsRequired: 100, Value: decimal.NewFromInt(5)}
	_, err := rule.Redeem(40)
	if !errors.Is(err, ErrInsufficientPoints) {
		t.Fatalf("expected ErrInsufficientPoints, got %v", err)
	}
}

func TestRedeemValue(t *testing.T) {
	rule := Rule{PointsRequired: 100, Value: decimal.NewFromInt(5)}
	value, err := rule.Redeem(150)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !value.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("expected redemption value 5, got %s", value)
	}
}

func TestZeroRuleNeverEligible(t *testing.T) {
	var rule Rule
	if rule.Eligible(1_000_000) {
		t.Fatal("unconfigured rule must not redeem")
	}
}
