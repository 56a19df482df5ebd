// Package receipts delivers finalized receipts off the register: rendered
// for the till printer, or published as events for downstream systems.
package receipts

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jcmexdev/pos-checkout/internal/checkout/domain"
	"github.com/jcmexdev/pos-checkout/internal/checkout/money"
)

// Width is the character width of a till roll line.
const Width = 40

const dateLayout = "2006-01-02 15:04"

// Header is the business block printed above and below every receipt.
type Header struct {
	Name    string
	Address string
	Phone   string
	Footer  string
}

// Render lays r out as till roll lines. The discount line appears only when a
// discount was applied and the change line only when change is due.
func Render(r domain.Receipt, h Header) []string {
	sep := strings.Repeat("-", Width)
	var out []string

	out = append(out, center(h.Name))
	if h.Address != "" {
		out = append(out, center(h.Address))
	}
	if h.Phone != "" {
		out = append(out, center("Tel: "+h.Phone))
	}
	out = append(out, sep, row(r.ID, r.IssuedAt.Format(dateLayout)))
	if r.CustomerName != "" {
		out = append(out, row("Customer", r.CustomerName))
	}
	out = append(out, sep)

	for _, it := range r.Items {
		out = append(out, row(fmt.Sprintf("%dx %s", it.Quantity, it.Name), usd(it.LineTotal())))
	}
	out = append(out, sep, row("Subtotal", usd(r.Subtotal)))
	if r.ShowsDiscount() {
		out = append(out, row(fmt.Sprintf("Discount (%s%%)", r.DiscountPercent.String()), "-"+usd(r.DiscountAmount)))
	}
	out = append(out,
		row(fmt.Sprintf("Tax (%s)", money.FormatPercent(r.TaxRate)), usd(r.TaxAmount)),
		sep,
		row("TOTAL", usd(r.Total)),
		sep,
		row("Payment Method", cases.Title(language.English).String(r.PaymentMethod.String())),
		row("Amount Paid", usd(r.AmountPaid)),
	)
	if r.ShowsChange() {
		out = append(out, row("Change", usd(r.ChangeDue)))
	}
	out = append(out, sep)
	if h.Footer != "" {
		out = append(out, center(h.Footer))
	}
	return out
}

func row(label, value string) string {
	gap := Width - utf8.RuneCountInString(label) - utf8.RuneCountInString(value)
	if gap < 1 {
		gap = 1
	}
	return label + strings.Repeat(" ", gap) + value
}

func center(s string) string {
	pad := (Width - utf8.RuneCountInString(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}

func usd(d decimal.Decimal) string {
	return "$" + money.Format(d)
}
