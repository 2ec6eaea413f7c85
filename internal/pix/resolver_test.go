package pix

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestResolveIndividualPriceWins(t *testing.T) {
	resolved, ok := Resolve(PriceContext{
		BasePrice:       dec("200.00"),
		IndividualPrice: decPtr("180.00"),
		GlobalDiscount:  decPtr("50"),
	})
	require.True(t, ok)
	require.True(t, resolved.Price.Equal(dec("180.00")))
	require.True(t, resolved.DiscountAmount.Equal(dec("20.00")))
	require.True(t, resolved.DiscountPercent.Equal(dec("10")))
}

func TestResolveOutOfBoundsIndividualFallsThrough(t *testing.T) {
	// An individual price at or above base is ignored, not an error; the
	// global discount still applies.
	resolved, ok := Resolve(PriceContext{
		BasePrice:       dec("100.00"),
		IndividualPrice: decPtr("150.00"),
		GlobalDiscount:  decPtr("10"),
	})
	require.True(t, ok)
	require.True(t, resolved.Price.Equal(dec("90.00")))
	require.True(t, resolved.DiscountPercent.Equal(dec("10")))
}

func TestResolveGlobalDiscount(t *testing.T) {
	resolved, ok := Resolve(PriceContext{
		BasePrice:      dec("10.00"),
		GlobalDiscount: decPtr("95"),
	})
	require.True(t, ok)
	require.True(t, resolved.Price.Equal(dec("0.50")))
	require.True(t, resolved.DiscountPercent.Equal(dec("95")))
}

func TestResolveNone(t *testing.T) {
	_, ok := Resolve(PriceContext{BasePrice: dec("100.00")})
	require.False(t, ok)

	_, ok = Resolve(PriceContext{BasePrice: dec("0")})
	require.False(t, ok)

	// Discount percent outside (0,100] is not applied.
	_, ok = Resolve(PriceContext{BasePrice: dec("100.00"), GlobalDiscount: decPtr("0")})
	require.False(t, ok)
	_, ok = Resolve(PriceContext{BasePrice: dec("100.00"), GlobalDiscount: decPtr("101")})
	require.False(t, ok)
}

func TestResolveUntrustedBasePrice(t *testing.T) {
	// Prices under 1.00 are too small to trust for discount math.
	_, ok := Resolve(PriceContext{BasePrice: dec("0.50"), GlobalDiscount: decPtr("10")})
	require.False(t, ok)
	_, ok = Resolve(PriceContext{BasePrice: dec("0.50"), IndividualPrice: decPtr("0.25")})
	require.False(t, ok)
}
