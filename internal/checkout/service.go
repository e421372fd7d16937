package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kiosco-labs/backend-kiosco/internal/cart"
	"github.com/kiosco-labs/backend-kiosco/internal/obs"
	"github.com/kiosco-labs/backend-kiosco/internal/pricing"
	"github.com/kiosco-labs/backend-kiosco/internal/promo"
	"github.com/kiosco-labs/backend-kiosco/internal/sales"
)

// ErrEmptyCart is returned when finalizing a register with nothing on it.
var ErrEmptyCart = errors.New("cart is empty")

// ErrInsufficientTender is returned when a cash payment does not cover the
// total.
var ErrInsufficientTender = errors.New("amount tendered below total")

// ErrInvalidInput is returned when the checkout payload is invalid.
var ErrInvalidInput = errors.New("invalid input")

// Payment methods accepted at the register.
const (
	PaymentCash = "cash"
	PaymentCard = "card"
)

// SalesRecorder persists finalized transactions.
type SalesRecorder interface {
	Create(ctx context.Context, t sales.Transaction) (sales.Transaction, error)
}

// Quote is the recomputed pricing view of a cart: the summary plus the
// per-line promotional credits the register UI itemizes.
type Quote struct {
	Cart    cart.Cart
	Credits promo.Credits
	Summary pricing.Summary
}

// Input carries the finalize request from the register.
type Input struct {
	PaymentMethod  string          `json:"paymentMethod" validate:"required,oneof=cash card"`
	AmountTendered decimal.Decimal `json:"amountTendered"`
}

// Service recomputes totals for a register's cart and finalizes it into an
// immutable transaction.
type Service struct {
	Carts *cart.Service
	Sales SalesRecorder
	Now   func() time.Time
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Quote recomputes the cart's totals from its current snapshot. It is pure
// given the snapshot: promotion credits are evaluated, then the aggregator
// folds line totals, credits and the single active adjustment.
func (s *Service) Quote(ctx context.Context, registerID string) (Quote, error) {
	if s == nil || s.Carts == nil {
		return Quote{}, errors.New("checkout service not configured")
	}
	c, err := s.Carts.Get(ctx, registerID)
	if err != nil {
		return Quote{}, err
	}
	return quoteCart(c), nil
}

func quoteCart(c cart.Cart) Quote {
	lines := c.Lines()
	credits := promo.Credits{}
	if c.Adjustment.Kind == pricing.AdjustmentPromotion {
		credits = promo.Evaluate(lines, promo.ID(c.Adjustment.PromotionID))
	}
	summary := pricing.Compute(lines, c.Adjustment, credits)
	return Quote{Cart: c, Credits: credits, Summary: summary}
}

// Checkout finalizes the register's cart: validates tender, snapshots the
// sale into the transaction history and clears the cart. Amounts round to
// two decimals at this persistence boundary, never earlier.
func (s *Service) Checkout(ctx context.Context, registerID string, in Input) (sales.Transaction, error) {
	if s == nil || s.Carts == nil || s.Sales == nil {
		return sales.Transaction{}, errors.New("checkout service not configured")
	}
	if in.PaymentMethod != PaymentCash && in.PaymentMethod != PaymentCard {
		return sales.Transaction{}, fmt.Errorf("unknown payment method %q: %w", in.PaymentMethod, ErrInvalidInput)
	}
	c, err := s.Carts.Get(ctx, registerID)
	if err != nil {
		return sales.Transaction{}, err
	}
	if len(c.Items) == 0 {
		return sales.Transaction{}, ErrEmptyCart
	}

	q := quoteCart(c)
	total := q.Summary.Total.Round(2)

	tendered := in.AmountTendered
	change := decimal.Zero
	switch in.PaymentMethod {
	case PaymentCash:
		if tendered.LessThan(total) {
			return sales.Transaction{}, fmt.Errorf("tendered %s for total %s: %w",
				pricing.Display(tendered), pricing.Display(total), ErrInsufficientTender)
		}
		change = tendered.Sub(total)
	case PaymentCard:
		tendered = total
	}

	t := sales.Transaction{
		ID:             uuid.NewString(),
		RegisterID:     registerID,
		Subtotal:       q.Summary.Subtotal.Round(2),
		DiscountTotal:  q.Summary.TotalDiscount.Round(2),
		Total:          total,
		PaymentMethod:  in.PaymentMethod,
		AmountTendered: tendered.Round(2),
		Change:         change.Round(2),
		Items:          transactionItems(q),
		CreatedAt:      s.now(),
	}
	if c.Adjustment.Kind == pricing.AdjustmentPromotion {
		t.PromotionID = c.Adjustment.PromotionID
	}

	created, err := s.Sales.Create(ctx, t)
	if err != nil {
		if obs.CheckoutTotal != nil {
			obs.CheckoutTotal.WithLabelValues(in.PaymentMethod, "error").Inc()
		}
		return sales.Transaction{}, err
	}
	if err := s.Carts.Clear(ctx, registerID); err != nil {
		return sales.Transaction{}, err
	}

	if obs.CheckoutTotal != nil {
		obs.CheckoutTotal.WithLabelValues(in.PaymentMethod, "ok").Inc()
	}
	if t.PromotionID != "" && obs.PromoCreditTotal != nil {
		credit, _ := q.Credits.Total().Round(2).Float64()
		obs.PromoCreditTotal.WithLabelValues(t.PromotionID).Add(credit)
	}
	return created, nil
}

func transactionItems(q Quote) []sales.Item {
	items := make([]sales.Item, 0, len(q.Cart.Items))
	for _, it := range q.Cart.Items {
		line := pricing.Line{
			ID:        it.ID,
			Name:      it.Name,
			Category:  it.Category,
			UnitPrice: it.UnitPrice,
			Qty:       it.Qty,
			Override:  it.Override,
			Discount:  it.Discount,
			Custom:    it.Custom,
		}
		lq := line.Quote()
		items = append(items, sales.Item{
			ID:          it.ID,
			ProductID:   it.ProductID,
			Name:        it.Name,
			Category:    it.Category,
			UnitPrice:   lq.EffectiveUnitPrice.Round(2),
			Qty:         it.Qty,
			LineTotal:   lq.Total.Round(2),
			Discounted:  lq.DiscountedTotal.Round(2),
			PromoCredit: q.Credits[it.ID].Round(2),
			Custom:      it.Custom,
		})
	}
	return items
}
