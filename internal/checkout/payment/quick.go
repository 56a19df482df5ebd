package payment

import "github.com/shopspring/decimal"

const maxQuickAmounts = 4

var quickSteps = []decimal.Decimal{
	decimal.NewFromInt(1),
	decimal.NewFromInt(10),
	decimal.NewFromInt(20),
	decimal.NewFromInt(50),
}

// QuickAmounts rounds due up to the next whole unit and to the next multiple
// of 10, 20 and 50, in that order. Duplicates are dropped and no suggestion is
// below due.
func QuickAmounts(due decimal.Decimal) []decimal.Decimal {
	out := make([]decimal.Decimal, 0, maxQuickAmounts)
	for _, step := range quickSteps {
		v := due.Div(step).Ceil().Mul(step)
		if v.LessThan(due) || containsAmount(out, v) {
			continue
		}
		out = append(out, v)
		if len(out) == maxQuickAmounts {
			break
		}
	}
	return out
}

func containsAmount(list []decimal.Decimal, v decimal.Decimal) bool {
	for _, d := range list {
		if d.Equal(v) {
			return true
		}
	}
	return false
}
