package settings

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeDropsUnknownKeys(t *testing.T) {
	out, err := Sanitize(DomainInstallmentRules, map[string]any{
		"max_installments": 6,
		"dangerous":        "<script>",
	})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"max_installments": 6}, out)

	_, err = Sanitize(Domain("nonsense"), nil)
	require.ErrorIs(t, err, ErrUnknownDomain)
}

func TestValidateRulesBounds(t *testing.T) {
	require.NoError(t, Validate(DomainInstallmentRules, map[string]any{
		"max_installments":              6,
		"installments_without_interest": 6,
	}))

	err := Validate(DomainInstallmentRules, map[string]any{"max_installments": 0})
	require.ErrorIs(t, err, ErrInvalid)

	err = Validate(DomainInstallmentRules, map[string]any{"max_installments": 48})
	require.ErrorIs(t, err, ErrInvalid)

	err = Validate(DomainInstallmentRules, map[string]any{
		"max_installments":              6,
		"installments_without_interest": 12,
	})
	require.ErrorIs(t, err, ErrInvalid)

	err = Validate(DomainInstallmentRules, map[string]any{"interest_rate": "-1"})
	require.ErrorIs(t, err, ErrInvalid)

	err = Validate(DomainInstallmentRules, map[string]any{"table_display_type": "carousel"})
	require.ErrorIs(t, err, ErrInvalid)

	err = Validate(DomainInstallmentRules, map[string]any{"product_position": "footer"})
	require.ErrorIs(t, err, ErrInvalid)
}

func TestValidateGlobalDiscountRange(t *testing.T) {
	require.NoError(t, Validate(DomainPricingGlobal, map[string]any{"global_discount": "10"}))
	require.NoError(t, Validate(DomainPricingGlobal, map[string]any{"global_discount": "100"}))
	require.NoError(t, Validate(DomainPricingGlobal, nil))

	err := Validate(DomainPricingGlobal, map[string]any{"global_discount": "101"})
	require.ErrorIs(t, err, ErrInvalid)
}

func TestValidateDesignDomainsAreFreeForm(t *testing.T) {
	require.NoError(t, Validate(DomainPricingDesign, map[string]any{"background_color": "anything"}))
	require.NoError(t, Validate(DomainInstallmentDesign, nil))
}
