// Package sqlite serves the product catalog from the register's local
// database (see internal/pkg/sqlitedb for the schema).
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/pos-checkout/internal/catalog"
	"github.com/jcmexdev/pos-checkout/internal/checkout/domain"
	"github.com/jcmexdev/pos-checkout/internal/checkout/ports"
)

type Catalog struct {
	db *sql.DB
}

var _ ports.Catalog = (*Catalog)(nil)

func New(db *sql.DB) *Catalog {
	return &Catalog{db: db}
}

// LookupProduct returns an active product. Inactive and unknown ids are both
// reported as domain.ErrProductNotFound.
func (c *Catalog) LookupProduct(ctx context.Context, id string) (domain.Product, error) {
	const q = `SELECT id, name, unit_price FROM products WHERE id = ? AND active = 1`

	var (
		p     domain.Product
		price string
	)
	err := c.db.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.Name, &price)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("sqlite: product %q: %w", id, domain.ErrProductNotFound)
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("sqlite: lookup product %q: %w", id, err)
	}

	p.UnitPrice, err = decimal.NewFromString(price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("sqlite: product %q price %q: %w", id, price, err)
	}
	return p, nil
}

// List returns active products matching f, ordered by id as inserted.
func (c *Catalog) List(ctx context.Context, f catalog.Filter) ([]catalog.Item, error) {
	const q = `SELECT id, name, unit_price, category FROM products WHERE active = 1 ORDER BY CAST(id AS INTEGER), id`

	rows, err := c.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list products: %w", err)
	}
	defer rows.Close()

	var out []catalog.Item
	for rows.Next() {
		var (
			it    catalog.Item
			price string
		)
		if err := rows.Scan(&it.ID, &it.Name, &price, &it.Category); err != nil {
			return nil, fmt.Errorf("sqlite: scan product: %w", err)
		}
		if it.UnitPrice, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("sqlite: product %q price %q: %w", it.ID, price, err)
		}
		if f.Match(it) {
			out = append(out, it)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list products: %w", err)
	}
	return out, nil
}

// Upsert inserts or replaces a product. Negative prices are refused.
func (c *Catalog) Upsert(ctx context.Context, it catalog.Item) error {
	if it.ID == "" || it.UnitPrice.IsNegative() {
		return fmt.Errorf("sqlite: upsert product %q: %w", it.ID, domain.ErrInvalidProduct)
	}
	const q = `
		INSERT INTO products (id, name, unit_price, category, active)
		VALUES (?, ?, ?, ?, 1)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			unit_price = excluded.unit_price,
			category = excluded.category,
			active = 1`

	if _, err := c.db.ExecContext(ctx, q, it.ID, it.Name, it.UnitPrice.String(), it.Category); err != nil {
		return fmt.Errorf("sqlite: upsert product %q: %w", it.ID, err)
	}
	return nil
}

// Deactivate hides a product from lookups without deleting it.
func (c *Catalog) Deactivate(ctx context.Context, id string) error {
	res, err := c.db.ExecContext(ctx, `UPDATE products SET active = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deactivate product %q: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("sqlite: deactivate product %q: %w", id, domain.ErrProductNotFound)
	}
	return nil
}
