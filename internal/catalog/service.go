package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ErrNotFound indicates the requested product does not exist or is inactive.
var ErrNotFound = errors.New("product not found")

// Product is one sellable catalog entry. UnitPrice is the base price a line
// item starts from; the register may override it per sale.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Active    bool            `json:"active"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Service reads the product catalog from Postgres with a Redis read-through
// cache in front.
type Service struct {
	Pool  *pgxpool.Pool
	Cache *Cache
}

const listKey = "catalog:products"

// List returns active products, optionally filtered by category label.
func (s *Service) List(ctx context.Context, category string) ([]Product, error) {
	if s == nil || s.Pool == nil {
		return nil, errors.New("catalog service not configured")
	}
	category = strings.TrimSpace(category)

	key := listKey
	if category != "" {
		key = listKey + ":" + strings.ToLower(category)
	}
	var cached []Product
	if ok, err := s.Cache.GetJSON(ctx, key, &cached); err == nil && ok {
		return cached, nil
	}

	query := `SELECT id, name, category, unit_price, active, updated_at
		FROM products WHERE active ORDER BY category, name`
	args := []any{}
	if category != "" {
		query = `SELECT id, name, category, unit_price, active, updated_at
			FROM products WHERE active AND category = $1 ORDER BY name`
		args = append(args, category)
	}
	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0, 32)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	_ = s.Cache.SetJSON(ctx, key, products)
	return products, nil
}

// Get resolves a single active product by id.
func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	if s == nil || s.Pool == nil {
		return Product{}, errors.New("catalog service not configured")
	}
	row := s.Pool.QueryRow(ctx, `SELECT id, name, category, unit_price, active, updated_at
		FROM products WHERE id = $1 AND active`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func scanProduct(row pgx.Row) (Product, error) {
	var (
		p     Product
		price string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Category, &price, &p.Active, &p.UpdatedAt); err != nil {
		return Product{}, err
	}
	unit, err := decimal.NewFromString(price)
	if err != nil {
		return Product{}, fmt.Errorf("parse unit price: %w", err)
	}
	p.UnitPrice = unit
	return p, nil
}
