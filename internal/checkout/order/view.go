package order

import (
	"github.com/shopspring/decimal"

	"github.com/jcmexdev/pos-checkout/internal/checkout/domain"
	"github.com/jcmexdev/pos-checkout/internal/checkout/payment"
)

// View is a read-only snapshot of a Session for display.
type View struct {
	TerminalID    string
	State         State
	Items         []domain.LineItem
	Totals        domain.Totals
	CustomerPhone string
	CustomerName  string
	Payment       *PaymentView
	Receipt       *domain.Receipt
}

type PaymentView struct {
	State        payment.State
	Method       domain.PaymentMethod
	Due          decimal.Decimal
	Tendered     decimal.Decimal
	Change       decimal.Decimal
	CanComplete  bool
	QuickAmounts []decimal.Decimal
}

func (s *Session) Snapshot() View {
	v := View{
		TerminalID: s.terminalID,
		State:      s.state,
		Items:      s.cart.Items(),
		Totals:     s.cart.Totals(),
	}
	v.CustomerPhone, v.CustomerName = s.Customer()

	if s.state == AwaitingPayment {
		v.Payment = &PaymentView{
			State:        s.payment.State(),
			Method:       s.payment.Method(),
			Due:          s.payment.Due(),
			Tendered:     s.payment.Tendered(),
			Change:       s.payment.Change(),
			CanComplete:  s.payment.CanComplete(),
			QuickAmounts: s.payment.QuickAmounts(),
		}
	}
	if r, ok := s.LastReceipt(); ok {
		v.Receipt = &r
	}
	return v
}
