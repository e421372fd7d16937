package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kiosco-labs/backend-kiosco/internal/catalog"
	"github.com/kiosco-labs/backend-kiosco/internal/loyalty"
	"github.com/kiosco-labs/backend-kiosco/internal/pricing"
	"github.com/kiosco-labs/backend-kiosco/internal/promo"
)

// ErrNotFound indicates the referenced cart item does not exist.
var ErrNotFound = errors.New("cart item not found")

// ErrInvalidInput is returned when the provided payload is invalid.
var ErrInvalidInput = errors.New("invalid input")

// ErrCustomLine is returned when a discount or override targets a custom
// item; the register UI is expected to block that path.
var ErrCustomLine = errors.New("custom items cannot carry a discount or override")

// ProductSource resolves catalog products for cart additions.
type ProductSource interface {
	Get(ctx context.Context, id string) (catalog.Product, error)
}

// Service encapsulates register cart mutations. Every mutation loads the
// snapshot, applies the change and writes it back; totals are never stored,
// only recomputed from the snapshot on read.
type Service struct {
	Store    *Store
	Products ProductSource
	Loyalty  loyalty.Rule
	Now      func() time.Time
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Get loads the register's cart, returning an empty one when absent.
func (s *Service) Get(ctx context.Context, registerID string) (Cart, error) {
	if s == nil || s.Store == nil {
		return Cart{}, errors.New("cart service not configured")
	}
	if strings.TrimSpace(registerID) == "" {
		return Cart{}, fmt.Errorf("register id required: %w", ErrInvalidInput)
	}
	c, ok, err := s.Store.Load(ctx, registerID)
	if err != nil {
		return Cart{}, err
	}
	if !ok {
		return Cart{RegisterID: registerID, Items: []Item{}}, nil
	}
	return c, nil
}

// AddProduct appends a catalog product to the cart, merging into an existing
// plain line for the same product.
func (s *Service) AddProduct(ctx context.Context, registerID, productID string, qty int) (Cart, error) {
	if s == nil || s.Products == nil {
		return Cart{}, errors.New("cart service not configured")
	}
	if qty <= 0 {
		return Cart{}, fmt.Errorf("qty must be positive: %w", ErrInvalidInput)
	}
	c, err := s.Get(ctx, registerID)
	if err != nil {
		return Cart{}, err
	}
	product, err := s.Products.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return Cart{}, fmt.Errorf("product %s: %w", productID, ErrNotFound)
		}
		return Cart{}, err
	}

	merged := false
	for i := range c.Items {
		it := &c.Items[i]
		// Lines that already carry per-line adjustments stay untouched so
		// the adjustment keeps applying to the quantity it was entered for.
		if it.ProductID == product.ID && !it.Custom && it.Override == nil && it.Discount == nil {
			it.Qty += qty
			merged = true
			break
		}
	}
	if !merged {
		c.Items = append(c.Items, Item{
			ID:        uuid.NewString(),
			ProductID: product.ID,
			Name:      product.Name,
			Category:  product.Category,
			UnitPrice: product.UnitPrice,
			Qty:       qty,
		})
	}
	return s.save(ctx, c)
}

// AddCustom appends a free-form line with a typed-in price.
func (s *Service) AddCustom(ctx context.Context, registerID, name string, price decimal.Decimal, qty int) (Cart, error) {
	if strings.TrimSpace(name) == "" {
		return Cart{}, fmt.Errorf("name required: %w", ErrInvalidInput)
	}
	if price.Sign() < 0 {
		return Cart{}, fmt.Errorf("price must not be negative: %w", ErrInvalidInput)
	}
	if qty <= 0 {
		return Cart{}, fmt.Errorf("qty must be positive: %w", ErrInvalidInput)
	}
	c, err := s.Get(ctx, registerID)
	if err != nil {
		return Cart{}, err
	}
	c.Items = append(c.Items, Item{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		UnitPrice: price,
		Qty:       qty,
		Custom:    true,
	})
	return s.save(ctx, c)
}

// SetQty replaces an item's quantity.
func (s *Service) SetQty(ctx context.Context, registerID, itemID string, qty int) (Cart, error) {
	if qty <= 0 {
		return Cart{}, fmt.Errorf("qty must be positive: %w", ErrInvalidInput)
	}
	return s.mutateItem(ctx, registerID, itemID, func(it *Item) error {
		it.Qty = qty
		return nil
	})
}

// Increment adjusts an item's quantity by delta; reaching zero removes the
// line.
func (s *Service) Increment(ctx context.Context, registerID, itemID string, delta int) (Cart, error) {
	c, err := s.Get(ctx, registerID)
	if err != nil {
		return Cart{}, err
	}
	it := c.findItem(itemID)
	if it == nil {
		return Cart{}, ErrNotFound
	}
	it.Qty += delta
	if it.Qty <= 0 {
		c.removeItem(itemID)
	}
	return s.save(ctx, c)
}

// Remove deletes a line from the cart.
func (s *Service) Remove(ctx context.Context, registerID, itemID string) (Cart, error) {
	c, err := s.Get(ctx, registerID)
	if err != nil {
		return Cart{}, err
	}
	if !c.removeItem(itemID) {
		return Cart{}, ErrNotFound
	}
	return s.save(ctx, c)
}

// Clear empties the register's cart entirely, adjustment included.
func (s *Service) Clear(ctx context.Context, registerID string) error {
	if s == nil || s.Store == nil {
		return errors.New("cart service not configured")
	}
	return s.Store.Delete(ctx, registerID)
}

// SetItemDiscount attaches a per-line discount. Zero or invalid values
// normalize to no discount rather than failing; custom lines are rejected.
func (s *Service) SetItemDiscount(ctx context.Context, registerID, itemID string, d *pricing.Discount) (Cart, error) {
	return s.mutateItem(ctx, registerID, itemID, func(it *Item) error {
		if it.Custom {
			return ErrCustomLine
		}
		it.Discount = pricing.Normalize(d)
		return nil
	})
}

// SetItemOverride replaces the item's unit price for all computations; nil
// restores the catalog price. Custom lines are rejected.
func (s *Service) SetItemOverride(ctx context.Context, registerID, itemID string, price *decimal.Decimal) (Cart, error) {
	return s.mutateItem(ctx, registerID, itemID, func(it *Item) error {
		if it.Custom {
			return ErrCustomLine
		}
		if price != nil && price.Sign() < 0 {
			return fmt.Errorf("override must not be negative: %w", ErrInvalidInput)
		}
		it.Override = price
		return nil
	})
}

// ApplyDiscount sets a manual global discount as the cart's single
// adjustment, displacing any promotion or loyalty redemption. A discount
// that normalizes to nothing clears the adjustment instead.
func (s *Service) ApplyDiscount(ctx context.Context, registerID string, d pricing.Discount) (Cart, error) {
	c, err := s.Get(ctx, registerID)
	if err != nil {
		return Cart{}, err
	}
	norm := pricing.Normalize(&d)
	if norm == nil {
		c.Adjustment = pricing.Adjustment{}
	} else {
		c.Adjustment = pricing.Adjustment{Kind: pricing.AdjustmentDiscount, Discount: norm}
	}
	return s.save(ctx, c)
}

// ApplyPromotion activates a catalog promotion as the cart's single
// adjustment. Ids outside the catalog are rejected at this boundary; stale
// ids already persisted still degrade gracefully at evaluation time.
func (s *Service) ApplyPromotion(ctx context.Context, registerID string, id promo.ID) (Cart, error) {
	if _, ok := promo.Lookup(id); !ok {
		return Cart{}, fmt.Errorf("unknown promotion %q: %w", id, ErrInvalidInput)
	}
	c, err := s.Get(ctx, registerID)
	if err != nil {
		return Cart{}, err
	}
	c.Adjustment = pricing.Adjustment{Kind: pricing.AdjustmentPromotion, PromotionID: string(id)}
	return s.save(ctx, c)
}

// RedeemLoyalty converts a points balance into a fixed cart deduction,
// displacing any other adjustment.
func (s *Service) RedeemLoyalty(ctx context.Context, registerID string, points int) (Cart, error) {
	value, err := s.Loyalty.Redeem(points)
	if err != nil {
		return Cart{}, err
	}
	c, err := s.Get(ctx, registerID)
	if err != nil {
		return Cart{}, err
	}
	if value.Sign() <= 0 {
		c.Adjustment = pricing.Adjustment{}
	} else {
		c.Adjustment = pricing.Adjustment{Kind: pricing.AdjustmentLoyalty, LoyaltyValue: value}
	}
	return s.save(ctx, c)
}

// ClearAdjustment removes the active cart-level adjustment.
func (s *Service) ClearAdjustment(ctx context.Context, registerID string) (Cart, error) {
	c, err := s.Get(ctx, registerID)
	if err != nil {
		return Cart{}, err
	}
	c.Adjustment = pricing.Adjustment{}
	return s.save(ctx, c)
}

func (s *Service) mutateItem(ctx context.Context, registerID, itemID string, fn func(*Item) error) (Cart, error) {
	c, err := s.Get(ctx, registerID)
	if err != nil {
		return Cart{}, err
	}
	it := c.findItem(itemID)
	if it == nil {
		return Cart{}, ErrNotFound
	}
	if err := fn(it); err != nil {
		return Cart{}, err
	}
	return s.save(ctx, c)
}

func (s *Service) save(ctx context.Context, c Cart) (Cart, error) {
	c.UpdatedAt = s.now()
	if err := s.Store.Save(ctx, c); err != nil {
		return Cart{}, err
	}
	return c, nil
}
