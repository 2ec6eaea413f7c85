package pix

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluateDiscount(t *testing.T) {
	d, ok := EvaluateDiscount(dec("200.00"), dec("180.00"))
	require.True(t, ok)
	require.True(t, d.Amount.Equal(dec("20.00")))
	require.True(t, d.Percent.Equal(dec("10")))
}

func TestEvaluateDiscountRejections(t *testing.T) {
	cases := map[string]struct {
		base string
		pix  string
	}{
		"zero base":           {"0", "10"},
		"negative base":       {"-5", "1"},
		"zero pix":            {"100", "0"},
		"pix equals base":     {"100", "100"},
		"pix above base":      {"100", "120"},
		"untrusted base":      {"0.99", "0.50"},
		"near total discount": {"1000.00", "1.00"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, ok := EvaluateDiscount(dec(tc.base), dec(tc.pix))
			require.False(t, ok)
		})
	}
}

func TestEvaluateDiscountCeiling(t *testing.T) {
	// 99.9% exactly is rejected; just below it is accepted.
	_, ok := EvaluateDiscount(dec("1000.00"), dec("1.00"))
	require.False(t, ok)

	d, ok := EvaluateDiscount(dec("1000.00"), dec("2.00"))
	require.True(t, ok)
	require.True(t, d.Percent.Equal(dec("99.8")))
}
