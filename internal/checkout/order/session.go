// Package order drives one register's sale from the first scanned item to the
// emitted receipt.
//
// A Session is created per terminal and owned by the caller. It is the only
// place the cart, the customer binding and the payment session are combined,
// and every transition is checked against the current State:
//
//	Building ──StartPayment──▶ AwaitingPayment ──Finalize──▶ Completed
//	   ▲  │                          │                          │
//	   │  └─HoldBill / ClearCart     └─CancelPayment            │
//	   └────────────────────────────────────────StartNewSale────┘
//
// Session does no locking: callers serialize access per terminal.
package order

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcmexdev/pos-checkout/internal/checkout/cart"
	"github.com/jcmexdev/pos-checkout/internal/checkout/customer"
	"github.com/jcmexdev/pos-checkout/internal/checkout/domain"
	"github.com/jcmexdev/pos-checkout/internal/checkout/payment"
	"github.com/jcmexdev/pos-checkout/internal/checkout/ports"
)

type State int

const (
	Building State = iota
	AwaitingPayment
	Completed
)

func (s State) String() string {
	switch s {
	case Building:
		return "building"
	case AwaitingPayment:
		return "awaiting_payment"
	case Completed:
		return "completed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Deps are the collaborators a Session calls out to. Catalog is required;
// a nil Directory never resolves a customer, a nil Sink drops receipts and a
// nil Holds discards held bills.
type Deps struct {
	Catalog   ports.Catalog
	Directory ports.Directory
	Sink      ports.ReceiptSink
	Holds     ports.HoldArchive
	Logger    *slog.Logger
	Now       func() time.Time
	NewID     func() string
}

type Session struct {
	terminalID string
	deps       Deps

	state    State
	cart     *cart.Cart
	customer *customer.Binding
	payment  *payment.Session
	receipt  *domain.Receipt
}

// NewSession returns an empty Building session for terminalID taxing at taxRate.
func NewSession(terminalID string, taxRate decimal.Decimal, deps Deps) *Session {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.NewID == nil {
		deps.NewID = uuid.NewString
	}
	return &Session{
		terminalID: terminalID,
		deps:       deps,
		state:      Building,
		cart:       cart.New(taxRate),
		customer:   customer.NewBinding(deps.Directory),
		payment:    payment.NewSession(),
	}
}

func (s *Session) TerminalID() string { return s.terminalID }
func (s *Session) State() State { return s.state }

// AddItem looks productID up in the catalog and adds one unit to the cart.
func (s *Session) AddItem(ctx context.Context, productID string) error {
	if err := s.require(Building, "add item"); err != nil {
		return err
	}
	p, err := s.deps.Catalog.LookupProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("add item %q: %w", productID, err)
	}
	return s.cart.AddItem(p)
}

func (s *Session) SetQuantity(productID string, qty int) error {
	if err := s.require(Building, "set quantity"); err != nil {
		return err
	}
	s.cart.SetQuantity(productID, qty)
	return nil
}

func (s *Session) RemoveItem(productID string) error {
	if err := s.require(Building, "remove item"); err != nil {
		return err
	}
	s.cart.RemoveItem(productID)
	return nil
}

func (s *Session) SetDiscountPercent(p decimal.Decimal) error {
	if err := s.require(Building, "set discount"); err != nil {
		return err
	}
	return s.cart.SetDiscountPercent(p)
}

// SetCustomerPhone binds a customer by phone. A directory miss is not an error.
func (s *Session) SetCustomerPhone(ctx context.Context, phone string) error {
	if err := s.require(Building, "set customer"); err != nil {
		return err
	}
	return s.customer.SetPhone(ctx, phone)
}

func (s *Session) ClearCustomer() error {
	if err := s.require(Building, "clear customer"); err != nil {
		return err
	}
	s.customer.Clear()
	return nil
}

// StartPayment freezes the current total as the due amount and opens a
// payment session.
func (s *Session) StartPayment() (decimal.Decimal, error) {
	if err := s.require(Building, "start payment"); err != nil {
		return decimal.Zero, err
	}
	if s.cart.IsEmpty() {
		return decimal.Zero, fmt.Errorf("start payment: %w", domain.ErrEmptyCart)
	}
	due := s.cart.Totals().Total
	s.payment = payment.NewSession()
	if err := s.payment.Open(due); err != nil {
		return decimal.Zero, fmt.Errorf("start payment: %w", err)
	}
	s.state = AwaitingPayment
	return due, nil
}

func (s *Session) SelectMethod(m domain.PaymentMethod) error {
	if err := s.require(AwaitingPayment, "select method"); err != nil {
		return err
	}
	return s.payment.SelectMethod(m)
}

func (s *Session) SetCashTendered(amount decimal.Decimal) error {
	if err := s.require(AwaitingPayment, "set cash tendered"); err != nil {
		return err
	}
	return s.payment.SetCashTendered(amount)
}

func (s *Session) CanComplete() bool {
	return s.state == AwaitingPayment && s.payment.CanComplete()
}

func (s *Session) QuickAmounts() []decimal.Decimal {
	if s.state != AwaitingPayment {
		return nil
	}
	return s.payment.QuickAmounts()
}

// CancelPayment discards the open payment and returns to Building with the
// cart untouched.
func (s *Session) CancelPayment() error {
	if err := s.require(AwaitingPayment, "cancel payment"); err != nil {
		return err
	}
	if err := s.payment.Cancel(); err != nil {
		return err
	}
	s.state = Building
	return nil
}

// CompletePayment closes the payment session. The sale is not over until
// Finalize is called with the returned result.
func (s *Session) CompletePayment() (domain.PaymentResult, error) {
	if err := s.require(AwaitingPayment, "complete payment"); err != nil {
		return domain.PaymentResult{}, err
	}
	return s.payment.Complete()
}

// Finalize snapshots the cart, totals and customer into a Receipt, hands it
// to the receipt sink and moves to Completed. result must be the one returned
// by CompletePayment. A sink failure is logged and does not undo the sale.
func (s *Session) Finalize(ctx context.Context, result domain.PaymentResult) (domain.Receipt, error) {
	if err := s.require(AwaitingPayment, "finalize"); err != nil {
		return domain.Receipt{}, err
	}
	if s.payment.State() != payment.Completed {
		return domain.Receipt{}, fmt.Errorf("finalize before payment completed: %w", domain.ErrInvalidState)
	}
	if !sameResult(result, s.payment.Result()) {
		return domain.Receipt{}, fmt.Errorf("finalize with foreign payment result: %w", domain.ErrInvalidState)
	}

	totals := s.cart.Totals()
	r := domain.Receipt{
		ID:              s.receiptID(),
		TerminalID:      s.terminalID,
		IssuedAt:        s.deps.Now().UTC(),
		Items:           s.cart.Items(),
		Subtotal:        totals.Subtotal,
		DiscountPercent: totals.DiscountPercent,
		DiscountAmount:  totals.DiscountAmount,
		TaxRate:         totals.TaxRate,
		TaxAmount:       totals.TaxAmount,
		Total:           totals.Total,
		PaymentMethod:   result.Method,
		AmountPaid:      result.AmountPaid,
		ChangeDue:       result.ChangeDue,
		CustomerName:    s.customer.ResolvedName(),
	}
	s.receipt = &r
	s.state = Completed

	if s.deps.Sink != nil {
		if err := s.deps.Sink.Emit(ctx, r.Clone()); err != nil {
			s.deps.Logger.ErrorContext(ctx, "receipt delivery failed",
				slog.String("terminal_id", s.terminalID),
				slog.String("receipt_id", r.ID),
				slog.Any("error", err),
			)
		}
	}
	s.deps.Logger.InfoContext(ctx, "sale completed",
		slog.String("terminal_id", s.terminalID),
		slog.String("receipt_id", r.ID),
		slog.String("total", r.Total.StringFixed(2)),
		slog.String("method", r.PaymentMethod.String()),
	)
	return r.Clone(), nil
}

// Checkout completes the open payment and finalizes the sale in one step.
func (s *Session) Checkout(ctx context.Context) (domain.Receipt, error) {
	res, err := s.CompletePayment()
	if err != nil {
		return domain.Receipt{}, err
	}
	return s.Finalize(ctx, res)
}

// StartNewSale drops the completed sale and starts an empty one. Receipts
// already handed out stay valid.
func (s *Session) StartNewSale() error {
	if err := s.require(Completed, "start new sale"); err != nil {
		return err
	}
	s.reset()
	return nil
}

// ClearCart abandons the order being built without any receipt.
func (s *Session) ClearCart() error {
	if err := s.require(Building, "clear cart"); err != nil {
		return err
	}
	s.reset()
	return nil
}

// HoldBill parks the current order in the hold archive and starts an empty
// one. The returned id is what ResumeHeld expects. If the archive rejects the
// bill the order is left as it was.
func (s *Session) HoldBill(ctx context.Context) (string, error) {
	if err := s.require(Building, "hold bill"); err != nil {
		return "", err
	}
	if s.cart.IsEmpty() {
		return "", fmt.Errorf("hold bill: %w", domain.ErrEmptyCart)
	}

	bill := domain.HeldBill{
		ID:              s.deps.NewID(),
		TerminalID:      s.terminalID,
		HeldAt:          s.deps.Now().UTC(),
		Items:           s.cart.Items(),
		DiscountPercent: s.cart.DiscountPercent(),
		CustomerPhone:   s.customer.Phone(),
	}
	if s.deps.Holds != nil {
		if err := s.deps.Holds.Save(ctx, bill); err != nil {
			return "", fmt.Errorf("hold bill: %w", err)
		}
	}
	s.deps.Logger.InfoContext(ctx, "bill held",
		slog.String("terminal_id", s.terminalID),
		slog.String("hold_id", bill.ID),
		slog.Int("lines", len(bill.Items)),
	)
	s.reset()
	return bill.ID, nil
}

// ResumeHeld restores a held bill. The session must be Building with an
// empty cart. The customer phone is looked up again; a failed lookup keeps
// the phone without a name.
func (s *Session) ResumeHeld(ctx context.Context, holdID string) error {
	if err := s.require(Building, "resume held bill"); err != nil {
		return err
	}
	if !s.cart.IsEmpty() {
		return fmt.Errorf("resume held bill over a non-empty cart: %w", domain.ErrInvalidState)
	}
	if s.deps.Holds == nil {
		return fmt.Errorf("resume held bill %q: %w", holdID, domain.ErrHoldNotFound)
	}

	bill, err := s.deps.Holds.Take(ctx, holdID)
	if err != nil {
		return fmt.Errorf("resume held bill %q: %w", holdID, err)
	}
	if err := s.cart.Restore(bill.Items, bill.DiscountPercent); err != nil {
		return fmt.Errorf("resume held bill %q: %w", holdID, err)
	}
	if err := s.customer.SetPhone(ctx, bill.CustomerPhone); err != nil {
		s.deps.Logger.WarnContext(ctx, "customer lookup failed on resume",
			slog.String("terminal_id", s.terminalID),
			slog.String("hold_id", holdID),
			slog.Any("error", err),
		)
	}
	return nil
}

// LastReceipt is the receipt of the completed sale, until StartNewSale.
func (s *Session) LastReceipt() (domain.Receipt, bool) {
	if s.receipt == nil {
		return domain.Receipt{}, false
	}
	return s.receipt.Clone(), true
}

func (s *Session) Items() []domain.LineItem { return s.cart.Items() }
func (s *Session) Totals() domain.Totals { return s.cart.Totals() }

func (s *Session) Customer() (phone, name string) {
	return s.customer.Phone(), s.customer.ResolvedName()
}

func (s *Session) reset() {
	s.cart.Clear()
	s.customer.Clear()
	s.payment = payment.NewSession()
	s.receipt = nil
	s.state = Building
}

func (s *Session) require(want State, op string) error {
	if s.state != want {
		return fmt.Errorf("%s while %s: %w", op, s.state, domain.ErrInvalidState)
	}
	return nil
}

// receiptIDChars hex digits keep collisions negligible across every
// register sharing one journal.
const receiptIDChars = 12

func (s *Session) receiptID() string {
	id := strings.ReplaceAll(s.deps.NewID(), "-", "")
	if len(id) > receiptIDChars {
		id = id[:receiptIDChars]
	}
	return "RCP-" + strings.ToUpper(id)
}

func sameResult(a, b domain.PaymentResult) bool {
	return a.Method == b.Method && a.AmountPaid.Equal(b.AmountPaid) && a.ChangeDue.Equal(b.ChangeDue)
}
