package sales

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ErrNotFound indicates the requested transaction does not exist.
var ErrNotFound = errors.New("transaction not found")

// Item is the immutable snapshot of one sold line, amounts already rounded
// for the receipt.
type Item struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId,omitempty"`
	Name        string          `json:"name"`
	Category    string          `json:"category,omitempty"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Qty         int             `json:"qty"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
	Discounted  decimal.Decimal `json:"discounted"`
	PromoCredit decimal.Decimal `json:"promoCredit"`
	Custom      bool            `json:"custom,omitempty"`
}

// Transaction is a finalized sale, written once at checkout and read back
// for the sales-history and receipt/refund screens.
type Transaction struct {
	ID             string          `json:"id"`
	RegisterID     string          `json:"registerId"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountTotal  decimal.Decimal `json:"discountTotal"`
	Total          decimal.Decimal `json:"total"`
	PromotionID    string          `json:"promotionId,omitempty"`
	PaymentMethod  string          `json:"paymentMethod"`
	AmountTendered decimal.Decimal `json:"amountTendered"`
	Change         decimal.Decimal `json:"change"`
	Items          []Item          `json:"items"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// Service persists finalized transactions in Postgres.
type Service struct {
	Pool *pgxpool.Pool
}

// Create inserts the transaction and its item snapshot atomically.
func (s *Service) Create(ctx context.Context, t Transaction) (Transaction, error) {
	if s == nil || s.Pool == nil {
		return Transaction{}, errors.New("sales service not configured")
	}
	items, err := json.Marshal(t.Items)
	if err != nil {
		return Transaction{}, fmt.Errorf("encode items: %w", err)
	}
	row := s.Pool.QueryRow(ctx, `INSERT INTO transactions
		(id, register_id, subtotal, discount_total, total, promotion_id, payment_method, amount_tendered, change, items, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10, $11)
		RETURNING id, created_at`,
		t.ID, t.RegisterID,
		t.Subtotal.StringFixed(2), t.DiscountTotal.StringFixed(2), t.Total.StringFixed(2),
		t.PromotionID, t.PaymentMethod,
		t.AmountTendered.StringFixed(2), t.Change.StringFixed(2),
		items, t.CreatedAt,
	)
	if err := row.Scan(&t.ID, &t.CreatedAt); err != nil {
		return Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	return t, nil
}

// List returns the most recent transactions for the sales-history screen.
func (s *Service) List(ctx context.Context, limit int) ([]Transaction, error) {
	if s == nil || s.Pool == nil {
		return nil, errors.New("sales service not configured")
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx, `SELECT id, register_id, subtotal, discount_total, total,
		COALESCE(promotion_id, ''), payment_method, amount_tendered, change, items, created_at
		FROM transactions ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	out := make([]Transaction, 0, limit)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Get fetches one transaction for receipt or refund display.
func (s *Service) Get(ctx context.Context, id string) (Transaction, error) {
	if s == nil || s.Pool == nil {
		return Transaction{}, errors.New("sales service not configured")
	}
	row := s.Pool.QueryRow(ctx, `SELECT id, register_id, subtotal, discount_total, total,
		COALESCE(promotion_id, ''), payment_method, amount_tendered, change, items, created_at
		FROM transactions WHERE id = $1`, id)
	t, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Transaction{}, ErrNotFound
		}
		return Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

func scanTransaction(row pgx.Row) (Transaction, error) {
	var (
		t                                          Transaction
		subtotal, discount, total, tendered, chnge string
		items                                      []byte
	)
	if err := row.Scan(&t.ID, &t.RegisterID, &subtotal, &discount, &total,
		&t.PromotionID, &t.PaymentMethod, &tendered, &chnge, &items, &t.CreatedAt); err != nil {
		return Transaction{}, err
	}
	var err error
	if t.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
		return Transaction{}, fmt.Errorf("parse subtotal: %w", err)
	}
	if t.DiscountTotal, err = decimal.NewFromString(discount); err != nil {
		return Transaction{}, fmt.Errorf("parse discount: %w", err)
	}
	if t.Total, err = decimal.NewFromString(total); err != nil {
		return Transaction{}, fmt.Errorf("parse total: %w", err)
	}
	if t.AmountTendered, err = decimal.NewFromString(tendered); err != nil {
		return Transaction{}, fmt.Errorf("parse tendered: %w", err)
	}
	if t.Change, err = decimal.NewFromString(chnge); err != nil {
		return Transaction{}, fmt.Errorf("parse change: %w", err)
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &t.Items); err != nil {
			return Transaction{}, fmt.Errorf("decode items: %w", err)
		}
	}
	return t, nil
}
