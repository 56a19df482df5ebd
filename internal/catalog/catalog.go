// Package catalog provides the product lookups the register scans against.
package catalog

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/pos-checkout/internal/checkout/domain"
	"github.com/jcmexdev/pos-checkout/internal/checkout/ports"
)

// Item is a catalog entry as listed on the product grid.
type Item struct {
	domain.Product
	Category string
}

// Filter narrows a listing. Zero values match everything.
type Filter struct {
	Category string
	Query    string
}

// Match reports whether it passes f. Query is a case-insensitive substring
// match on the product name.
func (f Filter) Match(it Item) bool {
	if f.Category != "" && f.Category != "all" && !strings.EqualFold(f.Category, it.Category) {
		return false
	}
	return f.Query == "" || strings.Contains(strings.ToLower(it.Name), strings.ToLower(f.Query))
}

// Memory is a fixed, read-only catalog.
type Memory struct {
	items []Item
}

var _ ports.Catalog = (*Memory)(nil)

func NewMemory(items []Item) *Memory {
	return &Memory{items: slices.Clone(items)}
}

func (m *Memory) LookupProduct(_ context.Context, id string) (domain.Product, error) {
	for _, it := range m.items {
		if it.ID == id {
			return it.Product, nil
		}
	}
	return domain.Product{}, fmt.Errorf("catalog: product %q: %w", id, domain.ErrProductNotFound)
}

func (m *Memory) List(_ context.Context, f Filter) ([]Item, error) {
	out := make([]Item, 0, len(m.items))
	for _, it := range m.items {
		if f.Match(it) {
			out = append(out, it)
		}
	}
	return out, nil
}

// Reference is the product grid a fresh register ships with.
func Reference() []Item {
	return []Item{
		item("1", "Espresso", "3.50", "beverages"),
		item("2", "Cappuccino", "4.50", "beverages"),
		item("3", "Latte", "4.00", "beverages"),
		item("4", "Croissant", "3.00", "food"),
		item("5", "Sandwich", "6.50", "food"),
		item("6", "Muffin", "2.50", "food"),
		item("7", "USB Cable", "12.00", "electronics"),
		item("8", "Earbuds", "25.00", "electronics"),
		item("9", "T-Shirt", "19.99", "clothing"),
		item("10", "Cap", "14.99", "accessories"),
		item("11", "Iced Tea", "3.00", "beverages"),
		item("12", "Bagel", "2.75", "food"),
	}
}

func item(id, name, price, category string) Item {
	return Item{
		Product:  domain.Product{ID: id, Name: name, UnitPrice: decimal.RequireFromString(price)},
		Category: category,
	}
}
