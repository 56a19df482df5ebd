package httpx

import (
	"time"

	"github.com/jcmexdev/pos-checkout/internal/catalog"
	"github.com/jcmexdev/pos-checkout/internal/checkout/domain"
	"github.com/jcmexdev/pos-checkout/internal/checkout/money"
	"github.com/jcmexdev/pos-checkout/internal/checkout/order"
)

type AddItemRequest struct {
	ProductID string `json:"product_id"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// Amounts in requests are operator input strings such as "10", "15.50" or "$15".
type DiscountRequest struct {
	Percent string `json:"percent"`
}

type CustomerRequest struct {
	Phone string `json:"phone"`
}

type MethodRequest struct {
	Method string `json:"method"`
}

type TenderRequest struct {
	Amount string `json:"amount"`
}

type HoldResponse struct {
	HoldID   string           `json:"hold_id"`
	Terminal TerminalResponse `json:"terminal"`
}

type TerminalResponse struct {
	TerminalID string             `json:"terminal_id"`
	State      string             `json:"state"`
	Items      []LineItemResponse `json:"items"`
	Totals     TotalsResponse     `json:"totals"`
	Customer   *CustomerResponse  `json:"customer,omitempty"`
	Payment    *PaymentResponse   `json:"payment,omitempty"`
	Receipt    *ReceiptResponse   `json:"receipt,omitempty"`
}

type LineItemResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type TotalsResponse struct {
	Subtotal        string `json:"subtotal"`
	DiscountPercent string `json:"discount_percent"`
	DiscountAmount  string `json:"discount_amount"`
	TaxRate         string `json:"tax_rate"`
	TaxAmount       string `json:"tax_amount"`
	Total           string `json:"total"`
}

type CustomerResponse struct {
	Phone string `json:"phone"`
	Name  string `json:"name,omitempty"`
}

type PaymentResponse struct {
	State        string   `json:"state"`
	Method       string   `json:"method"`
	Due          string   `json:"due"`
	Tendered     string   `json:"tendered"`
	Change       string   `json:"change"`
	CanComplete  bool     `json:"can_complete"`
	QuickAmounts []string `json:"quick_amounts,omitempty"`
}

type ReceiptResponse struct {
	ReceiptID     string             `json:"receipt_id"`
	TerminalID    string             `json:"terminal_id"`
	Timestamp     string             `json:"timestamp"`
	Items         []LineItemResponse `json:"items"`
	Totals        TotalsResponse     `json:"totals"`
	PaymentMethod string             `json:"payment_method"`
	AmountPaid    string             `json:"amount_paid"`
	ChangeDue     string             `json:"change_due"`
	CustomerName  string             `json:"customer_name,omitempty"`
}

type ProductResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Category  string `json:"category"`
}

type ProductRequest struct {
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Category  string `json:"category"`
}

type ErrorResponse struct {
	Error    string            `json:"error"`
	Message  string            `json:"message,omitempty"`
	Terminal *TerminalResponse `json:"terminal,omitempty"`
}

func mapView(v order.View) TerminalResponse {
	resp := TerminalResponse{
		TerminalID: v.TerminalID,
		State:      v.State.String(),
		Items:      mapItems(v.Items),
		Totals:     mapTotals(v.Totals),
	}
	if v.CustomerPhone != "" {
		resp.Customer = &CustomerResponse{Phone: v.CustomerPhone, Name: v.CustomerName}
	}
	if p := v.Payment; p != nil {
		quick := make([]string, 0, len(p.QuickAmounts))
		for _, q := range p.QuickAmounts {
			quick = append(quick, money.Format(q))
		}
		resp.Payment = &PaymentResponse{
			State:        p.State.String(),
			Method:       p.Method.String(),
			Due:          money.Format(p.Due),
			Tendered:     money.Format(p.Tendered),
			Change:       money.Format(p.Change),
			CanComplete:  p.CanComplete,
			QuickAmounts: quick,
		}
	}
	if v.Receipt != nil {
		r := mapReceipt(*v.Receipt)
		resp.Receipt = &r
	}
	return resp
}

func mapItems(items []domain.LineItem) []LineItemResponse {
	out := make([]LineItemResponse, len(items))
	for i, it := range items {
		out[i] = LineItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: money.Format(it.UnitPrice),
			Quantity:  it.Quantity,
			LineTotal: money.Format(it.LineTotal()),
		}
	}
	return out
}

func mapTotals(t domain.Totals) TotalsResponse {
	return TotalsResponse{
		Subtotal:        money.Format(t.Subtotal),
		DiscountPercent: t.DiscountPercent.String(),
		DiscountAmount:  money.Format(t.DiscountAmount),
		TaxRate:         t.TaxRate.String(),
		TaxAmount:       money.Format(t.TaxAmount),
		Total:           money.Format(t.Total),
	}
}

func mapReceipt(r domain.Receipt) ReceiptResponse {
	return ReceiptResponse{
		ReceiptID:  r.ID,
		TerminalID: r.TerminalID,
		Timestamp:  r.IssuedAt.Format(time.RFC3339),
		Items:      mapItems(r.Items),
		Totals: mapTotals(domain.Totals{
			Subtotal:        r.Subtotal,
			DiscountPercent: r.DiscountPercent,
			DiscountAmount:  r.DiscountAmount,
			TaxRate:         r.TaxRate,
			TaxAmount:       r.TaxAmount,
			Total:           r.Total,
		}),
		PaymentMethod: r.PaymentMethod.String(),
		AmountPaid:    money.Format(r.AmountPaid),
		ChangeDue:     money.Format(r.ChangeDue),
		CustomerName:  r.CustomerName,
	}
}

func mapProducts(items []catalog.Item) []ProductResponse {
	out := make([]ProductResponse, len(items))
	for i, it := range items {
		out[i] = ProductResponse{
			ID:        it.ID,
			Name:      it.Name,
			UnitPrice: money.Format(it.UnitPrice),
			Category:  it.Category,
		}
	}
	return out
}
