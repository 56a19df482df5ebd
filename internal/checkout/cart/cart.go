// Package cart holds the line items and discount of the order being rung up
// and derives its monetary totals.
//
// A Cart has a single writer: it does no locking of its own.
package cart

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/pos-checkout/internal/checkout/domain"
	"github.com/jcmexdev/pos-checkout/internal/checkout/money"
)

var maxDiscount = decimal.NewFromInt(100)

type Cart struct {
	items    []domain.LineItem
	discount decimal.Decimal
	taxRate  decimal.Decimal
}

// New returns an empty cart that taxes at taxRate (a fraction, 0.08 for 8%).
func New(taxRate decimal.Decimal) *Cart {
	return &Cart{taxRate: taxRate}
}

// AddItem appends product with quantity 1, or bumps the quantity of the
// existing line for the same product id.
func (c *Cart) AddItem(p domain.Product) error {
	if p.ID == "" || p.UnitPrice.IsNegative() {
		return fmt.Errorf("add item %q: %w", p.ID, domain.ErrInvalidProduct)
	}
	if i := c.index(p.ID); i >= 0 {
		c.items[i].Quantity++
		return nil
	}
	c.items = append(c.items, domain.LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.UnitPrice,
		Quantity:  1,
	})
	return nil
}

// SetQuantity sets the quantity of a line; qty <= 0 removes it.
// Unknown product ids are ignored.
func (c *Cart) SetQuantity(productID string, qty int) {
	i := c.index(productID)
	if i < 0 {
		return
	}
	if qty <= 0 {
		c.items = slices.Delete(c.items, i, i+1)
		return
	}
	c.items[i].Quantity = qty
}

func (c *Cart) RemoveItem(productID string) {
	if i := c.index(productID); i >= 0 {
		c.items = slices.Delete(c.items, i, i+1)
	}
}

// SetDiscountPercent stores an order-level discount. Values outside [0,100]
// are rejected and the current discount is kept.
func (c *Cart) SetDiscountPercent(p decimal.Decimal) error {
	if p.IsNegative() || p.GreaterThan(maxDiscount) {
		return fmt.Errorf("set discount %s: %w", p, domain.ErrDiscountOutOfRange)
	}
	c.discount = p
	return nil
}

// Clear empties the cart and resets the discount. The tax rate is kept.
func (c *Cart) Clear() {
	c.items = nil
	c.discount = decimal.Zero
}

// Restore replaces the cart content with a previously held bill.
func (c *Cart) Restore(items []domain.LineItem, discount decimal.Decimal) error {
	if err := c.SetDiscountPercent(discount); err != nil {
		return err
	}
	c.items = slices.Clone(items)
	return nil
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []domain.LineItem {
	return slices.Clone(c.items)
}

func (c *Cart) Len() int { return len(c.items) }

func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

func (c *Cart) DiscountPercent() decimal.Decimal { return c.discount }

func (c *Cart) TaxRate() decimal.Decimal { return c.taxRate }

// Quantity returns the quantity on the line for productID, or 0.
func (c *Cart) Quantity(productID string) int {
	if i := c.index(productID); i >= 0 {
		return c.items[i].Quantity
	}
	return 0
}

// Totals derives subtotal, discount, tax and total. The discount is taken off
// first and tax is charged on what remains; that order is fixed.
func (c *Cart) Totals() domain.Totals {
	subtotal := decimal.Zero
	for _, it := range c.items {
		subtotal = subtotal.Add(it.LineTotal())
	}
	subtotal = money.Round(subtotal)

	discount := money.Percent(subtotal, c.discount)
	taxable := subtotal.Sub(discount)
	tax := money.Rate(taxable, c.taxRate)

	return domain.Totals{
		Subtotal:        subtotal,
		DiscountPercent: c.discount,
		DiscountAmount:  discount,
		TaxRate:         c.taxRate,
		TaxAmount:       tax,
		Total:           taxable.Add(tax),
	}
}

func (c *Cart) index(productID string) int {
	return slices.IndexFunc(c.items, func(it domain.LineItem) bool {
		return it.ProductID == productID
	})
}
