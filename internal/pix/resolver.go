package pix

import (
	"github.com/shopspring/decimal"
)

// PriceContext carries the inputs needed to resolve the instant-payment
// price for one product or variant.
type PriceContext struct {
	BasePrice       decimal.Decimal
	IndividualPrice *decimal.Decimal
	GlobalDiscount  *decimal.Decimal
}

// ResolvedPrice is a validated instant-payment price together with the
// discount it represents against the base price.
type ResolvedPrice struct {
	Price           decimal.Decimal `json:"price"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
}

// Resolve determines the instant-payment price for ctx. Priority order: an
// individually configured price wins, otherwise the global percentage
// discount applies, otherwise there is no instant-payment price. Every
// candidate passes through EvaluateDiscount, so a resolved price is always a
// genuine, non-suspicious discount. The ok result is false when no valid
// price exists.
func Resolve(ctx PriceContext) (ResolvedPrice, bool) {
	if ctx.BasePrice.LessThanOrEqual(decimal.Zero) {
		return ResolvedPrice{}, false
	}

	if ctx.IndividualPrice != nil {
		price := *ctx.IndividualPrice
		if price.GreaterThan(decimal.Zero) && price.LessThan(ctx.BasePrice) {
			d, ok := EvaluateDiscount(ctx.BasePrice, price)
			if !ok {
				return ResolvedPrice{}, false
			}
			return ResolvedPrice{Price: price, DiscountAmount: d.Amount, DiscountPercent: d.Percent}, true
		}
		// An out-of-bounds individual price is ignored; the global discount
		// still gets a chance to apply.
	}

	if ctx.GlobalDiscount != nil {
		percent := *ctx.GlobalDiscount
		if percent.GreaterThan(decimal.Zero) && percent.LessThanOrEqual(hundred) {
			price := ctx.BasePrice.Sub(ctx.BasePrice.Mul(percent).Div(hundred))
			if d, ok := EvaluateDiscount(ctx.BasePrice, price); ok {
				return ResolvedPrice{Price: price, DiscountAmount: d.Amount, DiscountPercent: d.Percent}, true
			}
		}
	}

	return ResolvedPrice{}, false
}
