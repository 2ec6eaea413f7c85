package pix

import (
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)

	// minTrustedBasePrice is the smallest base price for which discount math
	// is considered meaningful. Anything below it smells like bad catalog
	// data and is rejected wholesale.
	minTrustedBasePrice = decimal.NewFromInt(1)

	// maxDiscountPercent caps the accepted discount: at 99.9% and beyond the
	// configured price is treated as a mistake, not an offer.
	maxDiscountPercent = decimal.NewFromFloat(99.9)
)

// Discount is the evaluated gap between a base price and an instant-payment
// price.
type Discount struct {
	Amount  decimal.Decimal `json:"amount"`
	Percent decimal.Decimal `json:"percent"`
}

// EvaluateDiscount computes the discount between basePrice and pixPrice.
// It is the single validity gate shared by the product-page path and the
// cart-line recompute path: ok is false (and the discount zero) whenever the
// pair would produce a zero, negative, or near-total discount, or when the
// base price is too small to trust.
func EvaluateDiscount(basePrice, pixPrice decimal.Decimal) (Discount, bool) {
	if basePrice.LessThanOrEqual(decimal.Zero) || pixPrice.LessThanOrEqual(decimal.Zero) {
		return Discount{}, false
	}
	if pixPrice.GreaterThanOrEqual(basePrice) {
		return Discount{}, false
	}
	if basePrice.LessThan(minTrustedBasePrice) {
		return Discount{}, false
	}

	amount := basePrice.Sub(pixPrice)
	percent := amount.Div(basePrice).Mul(hundred)

	if percent.LessThanOrEqual(decimal.Zero) || percent.GreaterThanOrEqual(maxDiscountPercent) {
		return Discount{}, false
	}
	return Discount{Amount: amount, Percent: percent}, true
}
