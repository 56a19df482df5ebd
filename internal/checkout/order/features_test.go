package order

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/jcmexdev/pos-checkout/internal/checkout/customer"
	"github.com/jcmexdev/pos-checkout/internal/checkout/domain"
	"github.com/jcmexdev/pos-checkout/internal/checkout/money"
)

type checkoutTestContext struct {
	terminal string
	taxRate  decimal.Decimal
	catalog  mapCatalog
	holds    *mapHolds
	session  *Session
	receipt  domain.Receipt
	holdID   string
	err      error
}

func (c *checkoutTestContext) reset() {
	*c = checkoutTestContext{catalog: mapCatalog{}, holds: newMapHolds()}
}

func (c *checkoutTestContext) sess() *Session {
	if c.session == nil {
		c.session = NewSession(c.terminal, c.taxRate, Deps{
			Catalog:   c.catalog,
			Directory: customer.ReferenceDirectory(),
			Holds:     c.holds,
		})
	}
	return c.session
}

func (c *checkoutTestContext) aRegisterTaxingAt(id string, pct string) error {
	c.terminal = id
	c.taxRate = money.MustParse(pct).Div(decimal.NewFromInt(100))
	return nil
}

func (c *checkoutTestContext) theCatalog(table *godog.Table) error {
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		price, err := money.Parse(row.Cells[2].Value)
		if err != nil {
			return err
		}
		c.catalog[row.Cells[0].Value] = domain.Product{ID: row.Cells[0].Value, Name: row.Cells[1].Value, UnitPrice: price}
	}
	return nil
}

func (c *checkoutTestContext) iAddProduct(ctx context.Context, id string) error {
	return c.sess().AddItem(ctx, id)
}

func (c *checkoutTestContext) iSetTheDiscountTo(pct string) error {
	c.err = c.sess().SetDiscountPercent(money.MustParse(pct))
	return nil
}

func (c *checkoutTestContext) iSetTheQuantityOf(id string, qty int) error {
	return c.sess().SetQuantity(id, qty)
}

func (c *checkoutTestContext) iEnterCustomerPhone(ctx context.Context, phone string) error {
	return c.sess().SetCustomerPhone(ctx, phone)
}

func (c *checkoutTestContext) iStartPayment() error {
	_, c.err = c.sess().StartPayment()
	return nil
}

func (c *checkoutTestContext) iTenderInCash(amount string) error {
	return c.sess().SetCashTendered(money.MustParse(amount))
}

func (c *checkoutTestContext) iPayBy(method string) error {
	m, err := domain.ParsePaymentMethod(method)
	if err != nil {
		return err
	}
	return c.sess().SelectMethod(m)
}

func (c *checkoutTestContext) iCompleteTheSale(ctx context.Context) error {
	r, err := c.sess().Checkout(ctx)
	if err != nil {
		return err
	}
	c.receipt = r
	return nil
}

func (c *checkoutTestContext) iCancelPayment() error {
	return c.sess().CancelPayment()
}

func (c *checkoutTestContext) iHoldTheBill(ctx context.Context) error {
	id, err := c.sess().HoldBill(ctx)
	c.holdID = id
	return err
}

func (c *checkoutTestContext) iResumeTheHeldBill(ctx context.Context) error {
	return c.sess().ResumeHeld(ctx, c.holdID)
}

func (c *checkoutTestContext) iStartANewSale() error {
	return c.sess().StartNewSale()
}

func expectAmount(what, want string, got decimal.Decimal) error {
	if money.Format(got) != want {
		return fmt.Errorf("%s: expected %s, got %s", what, want, money.Format(got))
	}
	return nil
}

func (c *checkoutTestContext) theSubtotalIs(want string) error {
	return expectAmount("subtotal", want, c.sess().Totals().Subtotal)
}

func (c *checkoutTestContext) theDiscountAmountIs(want string) error {
	return expectAmount("discount", want, c.sess().Totals().DiscountAmount)
}

func (c *checkoutTestContext) theTaxAmountIs(want string) error {
	return expectAmount("tax", want, c.sess().Totals().TaxAmount)
}

func (c *checkoutTestContext) theTotalIs(want string) error {
	return expectAmount("total", want, c.sess().Totals().Total)
}

func (c *checkoutTestContext) theReceiptShowsChangeOf(want string) error {
	return expectAmount("change", want, c.receipt.ChangeDue)
}

func (c *checkoutTestContext) theReceiptShowsAmountPaidOf(want string) error {
	return expectAmount("amount paid", want, c.receipt.AmountPaid)
}

func (c *checkoutTestContext) theReceiptListsLines(n int) error {
	if len(c.receipt.Items) != n {
		return fmt.Errorf("expected %d receipt lines, got %d", n, len(c.receipt.Items))
	}
	return nil
}

func (c *checkoutTestContext) theReceiptIsForCustomer(name string) error {
	if c.receipt.CustomerName != name {
		return fmt.Errorf("expected receipt customer %q, got %q", name, c.receipt.CustomerName)
	}
	return nil
}

func (c *checkoutTestContext) theSaleIsCompleted() error {
	return c.expectState(Completed)
}

func (c *checkoutTestContext) theOrderIsBuilding() error {
	return c.expectState(Building)
}

func (c *checkoutTestContext) expectState(want State) error {
	if got := c.sess().State(); got != want {
		return fmt.Errorf("expected state %s, got %s", want, got)
	}
	return nil
}

func (c *checkoutTestContext) paymentCanComplete() error {
	if !c.sess().CanComplete() {
		return errors.New("expected payment to be completable")
	}
	return nil
}

func (c *checkoutTestContext) paymentCannotComplete() error {
	if c.sess().CanComplete() {
		return errors.New("expected payment not to be completable")
	}
	return nil
}

func (c *checkoutTestContext) theCartHasLines(n int) error {
	if got := len(c.sess().Items()); got != n {
		return fmt.Errorf("expected %d cart lines, got %d", n, got)
	}
	return nil
}

func (c *checkoutTestContext) theCartIsEmpty() error {
	if err := c.theCartHasLines(0); err != nil {
		return err
	}
	if d := c.sess().Totals().DiscountPercent; !d.IsZero() {
		return fmt.Errorf("expected no discount, got %s", d)
	}
	return nil
}

func (c *checkoutTestContext) theCustomerIs(name string) error {
	if _, got := c.sess().Customer(); got != name {
		return fmt.Errorf("expected customer %q, got %q", name, got)
	}
	return nil
}

func (c *checkoutTestContext) noCustomerIsAttached() error {
	return c.theCustomerIs("")
}

var errorsByName = map[string]error{
	"empty cart":            domain.ErrEmptyCart,
	"invalid state":         domain.ErrInvalidState,
	"insufficient tender":   domain.ErrInsufficientTender,
	"discount out of range": domain.ErrDiscountOutOfRange,
}

func (c *checkoutTestContext) theOperationFailsWith(name string) error {
	want, ok := errorsByName[name]
	if !ok {
		return fmt.Errorf("unknown error name %q", name)
	}
	if !errors.Is(c.err, want) {
		return fmt.Errorf("expected %v, got %v", want, c.err)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &checkoutTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a register "([^"]*)" taxing at ([\d.]+)%$`, tc.aRegisterTaxingAt)
	ctx.Step(`^the catalog:$`, tc.theCatalog)

	// When steps
	ctx.Step(`^I add product "([^"]*)"$`, tc.iAddProduct)
	ctx.Step(`^I set the discount to (-?[\d.]+)%$`, tc.iSetTheDiscountTo)
	ctx.Step(`^I set the quantity of "([^"]*)" to (-?\d+)$`, tc.iSetTheQuantityOf)
	ctx.Step(`^I enter customer phone "([^"]*)"$`, tc.iEnterCustomerPhone)
	ctx.Step(`^I start payment$`, tc.iStartPayment)
	ctx.Step(`^I tender "([^"]*)" in cash$`, tc.iTenderInCash)
	ctx.Step(`^I pay by "([^"]*)"$`, tc.iPayBy)
	ctx.Step(`^I complete the sale$`, tc.iCompleteTheSale)
	ctx.Step(`^I cancel payment$`, tc.iCancelPayment)
	ctx.Step(`^I hold the bill$`, tc.iHoldTheBill)
	ctx.Step(`^I resume the held bill$`, tc.iResumeTheHeldBill)
	ctx.Step(`^I start a new sale$`, tc.iStartANewSale)

	// Then steps
	ctx.Step(`^the subtotal is "([^"]*)"$`, tc.theSubtotalIs)
	ctx.Step(`^the discount amount is "([^"]*)"$`, tc.theDiscountAmountIs)
	ctx.Step(`^the tax amount is "([^"]*)"$`, tc.theTaxAmountIs)
	ctx.Step(`^the total is "([^"]*)"$`, tc.theTotalIs)
	ctx.Step(`^the sale is completed$`, tc.theSaleIsCompleted)
	ctx.Step(`^the order is building$`, tc.theOrderIsBuilding)
	ctx.Step(`^the receipt shows change of "([^"]*)"$`, tc.theReceiptShowsChangeOf)
	ctx.Step(`^the receipt shows amount paid of "([^"]*)"$`, tc.theReceiptShowsAmountPaidOf)
	ctx.Step(`^the receipt lists (\d+) lines$`, tc.theReceiptListsLines)
	ctx.Step(`^the receipt is for customer "([^"]*)"$`, tc.theReceiptIsForCustomer)
	ctx.Step(`^payment can complete$`, tc.paymentCanComplete)
	ctx.Step(`^payment cannot complete$`, tc.paymentCannotComplete)
	ctx.Step(`^the cart has (\d+) lines?$`, tc.theCartHasLines)
	ctx.Step(`^the cart is empty$`, tc.theCartIsEmpty)
	ctx.Step(`^the customer is "([^"]*)"$`, tc.theCustomerIs)
	ctx.Step(`^no customer is attached$`, tc.noCustomerIsAttached)
	ctx.Step(`^the operation fails with "([^"]*)"$`, tc.theOperationFailsWith)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
			Strict:   true,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
