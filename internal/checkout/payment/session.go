// Package payment implements the tender step of a sale: method selection,
// cash entry and completion against a frozen due amount.
package payment

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/pos-checkout/internal/checkout/domain"
	"github.com/jcmexdev/pos-checkout/internal/checkout/money"
)

type State int

const (
	Idle State = iota
	Open
	Completing
	Completed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Open:
		return "open"
	case Completing:
		return "completing"
	case Completed:
		return "completed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Session is one attempt at taking payment for a due amount.
// It is not safe for concurrent use.
type Session struct {
	state    State
	method   domain.PaymentMethod
	due      decimal.Decimal
	tendered decimal.Decimal
	result   domain.PaymentResult
}

func NewSession() *Session {
	return &Session{}
}

// Open freezes due and starts the session with cash selected and nothing tendered.
func (s *Session) Open(due decimal.Decimal) error {
	if s.state != Idle {
		return s.invalid("open")
	}
	s.state = Open
	s.method = domain.PaymentCash
	s.due = due
	s.tendered = decimal.Zero
	return nil
}

func (s *Session) SelectMethod(m domain.PaymentMethod) error {
	if s.state != Open {
		return s.invalid("select method")
	}
	if _, err := domain.ParsePaymentMethod(string(m)); err != nil {
		return fmt.Errorf("select method %q: %w", m, err)
	}
	s.method = m
	return nil
}

// SetCashTendered records the cash handed over. There is no upper bound.
func (s *Session) SetCashTendered(amount decimal.Decimal) error {
	if s.state != Open || s.method != domain.PaymentCash {
		return s.invalid("set cash tendered")
	}
	if amount.IsNegative() {
		return fmt.Errorf("set cash tendered %s: %w", amount, domain.ErrInvalidTender)
	}
	s.tendered = amount
	return nil
}

// CanComplete is always true for card and wallet; cash needs tendered >= due.
func (s *Session) CanComplete() bool {
	if s.state != Open {
		return false
	}
	if s.method.ExactTender() {
		return true
	}
	return s.tendered.GreaterThanOrEqual(s.due)
}

// Complete closes the session and reports what was paid. A cash shortfall
// fails with an error matching both ErrInsufficientTender and ErrInvalidState.
func (s *Session) Complete() (domain.PaymentResult, error) {
	if s.state != Open {
		return domain.PaymentResult{}, s.invalid("complete")
	}
	if !s.CanComplete() {
		return domain.PaymentResult{}, fmt.Errorf("complete: tendered %s of %s: %w: %w",
			money.Format(s.tendered), money.Format(s.due), domain.ErrInsufficientTender, domain.ErrInvalidState)
	}
	s.state = Completing

	paid := s.due
	if !s.method.ExactTender() {
		paid = s.tendered
	}
	s.result = domain.PaymentResult{
		Method:     s.method,
		AmountPaid: paid,
		ChangeDue:  paid.Sub(s.due),
	}
	s.state = Completed
	return s.result, nil
}

// Cancel abandons an open session and returns it to Idle.
func (s *Session) Cancel() error {
	if s.state != Open {
		return s.invalid("cancel")
	}
	*s = Session{}
	return nil
}

func (s *Session) State() State { return s.state }
func (s *Session) Method() domain.PaymentMethod { return s.method }
func (s *Session) Due() decimal.Decimal { return s.due }
func (s *Session) Tendered() decimal.Decimal { return s.tendered }
func (s *Session) Result() domain.PaymentResult { return s.result }

// Change is tendered minus due while cash is selected, zero otherwise.
// It may be negative while the operator is still entering cash.
func (s *Session) Change() decimal.Decimal {
	if s.method != domain.PaymentCash {
		return decimal.Zero
	}
	return s.tendered.Sub(s.due)
}

// QuickAmounts suggests cash buttons for the open due amount.
func (s *Session) QuickAmounts() []decimal.Decimal {
	if s.state != Open {
		return nil
	}
	return QuickAmounts(s.due)
}

func (s *Session) invalid(op string) error {
	return fmt.Errorf("payment %s while %s: %w", op, s.state, domain.ErrInvalidState)
}
