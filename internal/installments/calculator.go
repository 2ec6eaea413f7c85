package installments

import (
	"github.com/shopspring/decimal"
)

// RuleSet captures the configured installment rules for a shop.
type RuleSet struct {
	Enabled             bool
	MaxInstallments     int
	WithoutInterest     int
	MonthlyInterestRate decimal.Decimal
	MinInstallmentValue decimal.Decimal
}

// Option is a single installment offer. Values are rounded to currency
// precision and never mutated after creation.
type Option struct {
	Count       int             `json:"count"`
	Value       decimal.Decimal `json:"value"`
	Total       decimal.Decimal `json:"total"`
	HasInterest bool            `json:"hasInterest"`
}

// Plan is the ordered list of installment options for one price, ascending by
// count and truncated at the first option whose value falls below the
// configured minimum.
type Plan []Option

// Best returns the headline option: the last surviving entry, i.e. the
// highest installment count still above the minimum parcel value. The ok
// result is false for an empty plan.
func (p Plan) Best() (Option, bool) {
	if len(p) == 0 {
		return Option{}, false
	}
	return p[len(p)-1], true
}

var one = decimal.NewFromInt(1)
var hundred = decimal.NewFromInt(100)

// Calculate produces the installment plan for basePrice under rules.
//
// Interest-bearing counts use a markup model: the total owed is
// basePrice x (1 + rate/100)^count and is divided evenly across the
// installments. This intentionally scales the total with the count rather
// than amortizing a fixed payment, matching how the retailer advertises the
// offer.
func Calculate(basePrice decimal.Decimal, rules RuleSet) Plan {
	if !rules.Enabled {
		return nil
	}
	if basePrice.LessThanOrEqual(decimal.Zero) {
		return nil
	}
	if rules.MaxInstallments < 1 {
		return nil
	}

	factor := one.Add(rules.MonthlyInterestRate.Div(hundred))
	plan := make(Plan, 0, rules.MaxInstallments)
	for count := 1; count <= rules.MaxInstallments; count++ {
		hasInterest := count > rules.WithoutInterest

		var total decimal.Decimal
		if hasInterest {
			total = basePrice.Mul(factor.Pow(decimal.NewFromInt(int64(count))))
		} else {
			total = basePrice
		}
		value := total.Div(decimal.NewFromInt(int64(count)))

		value = roundCurrency(value)
		total = roundCurrency(total)

		if value.LessThan(rules.MinInstallmentValue) {
			break
		}
		plan = append(plan, Option{
			Count:       count,
			Value:       value,
			Total:       total,
			HasInterest: hasInterest,
		})
	}
	return plan
}

// roundCurrency rounds to 2 decimal places, half up.
func roundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
