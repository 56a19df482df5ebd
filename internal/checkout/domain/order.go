// Package domain holds the value types shared by the checkout engine: catalog
// products, line items, totals, payment results and receipts.
package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Product is what the catalog provider hands to the cart.
type Product struct {
	ID        string
	Name      string
	UnitPrice decimal.Decimal
}

type LineItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// LineTotal is UnitPrice × Quantity, unrounded.
func (i LineItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Totals is the monetary breakdown of a cart. Total always equals
// Subtotal - DiscountAmount + TaxAmount.
type Totals struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	Total           decimal.Decimal `json:"total"`
}

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentWallet PaymentMethod = "wallet"
)

// ParsePaymentMethod validates operator input against the supported tenders.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(s); m {
	case PaymentCash, PaymentCard, PaymentWallet:
		return m, nil
	}
	return "", ErrInvalidMethod
}

// ExactTender reports whether the method always tenders exactly the due amount.
func (m PaymentMethod) ExactTender() bool {
	return m == PaymentCard || m == PaymentWallet
}

func (m PaymentMethod) String() string { return string(m) }

// PaymentResult is produced by a completed payment session.
type PaymentResult struct {
	Method     PaymentMethod   `json:"method"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
	ChangeDue  decimal.Decimal `json:"change_due"`
}

// Receipt is the record of a completed sale. It is handed out by value and its
// Items slice is never shared with the cart it was taken from.
type Receipt struct {
	ID              string          `json:"receipt_id"`
	TerminalID      string          `json:"terminal_id"`
	IssuedAt        time.Time       `json:"timestamp"`
	Items           []LineItem      `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	Total           decimal.Decimal `json:"total"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	AmountPaid      decimal.Decimal `json:"amount_paid"`
	ChangeDue       decimal.Decimal `json:"change_due"`
	CustomerName    string          `json:"customer_name,omitempty"`
}

// Clone returns a copy that shares no mutable state with r.
func (r Receipt) Clone() Receipt {
	r.Items = slices.Clone(r.Items)
	return r
}

// ShowsDiscount reports whether the discount line belongs on the printed receipt.
func (r Receipt) ShowsDiscount() bool { return r.DiscountPercent.IsPositive() }

// ShowsChange reports whether the change line belongs on the printed receipt.
func (r Receipt) ShowsChange() bool { return r.ChangeDue.IsPositive() }

// HeldBill is a suspended order handed to a hold archive.
type HeldBill struct {
	ID              string          `json:"id"`
	TerminalID      string          `json:"terminal_id"`
	HeldAt          time.Time       `json:"held_at"`
	Items           []LineItem      `json:"items"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	CustomerPhone   string          `json:"customer_phone,omitempty"`
}
