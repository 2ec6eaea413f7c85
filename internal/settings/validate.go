package settings

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrInvalid wraps every admin-update validation failure.
var ErrInvalid = errors.New("settings: invalid value")

var validate = validator.New(validator.WithRequiredStructEnabled())

// allowedKeys mirrors the admin surface: only keys the domain knows are ever
// persisted.
var allowedKeys = map[Domain][]string{
	DomainPricingGlobal: {
		"global_discount", "show_in_gallery", "pix_position",
	},
	DomainPricingDesign: {
		"background_color", "border_color", "hide_border", "text_color",
		"price_color", "pix_icon", "show_pix_icon_gallery", "custom_text",
		"discount_text", "border_style", "font_size",
		"allow_transparent_background", "margin_product", "padding_product",
		"margin_gallery", "padding_gallery", "border_radius",
	},
	DomainInstallmentRules: {
		"enabled", "max_installments", "installments_without_interest",
		"interest_rate", "min_installment_value", "show_table",
		"table_display_type", "text_before_installments",
		"text_after_installments", "display_locations", "product_position",
		"location_texts",
	},
	DomainInstallmentDesign: {
		"background_color", "border_color", "text_color", "price_color",
		"border_style", "font_size", "card_icon", "show_card_icon",
		"show_card_icon_gallery", "card_icon_position",
		"allow_transparent_background", "margin_product", "padding_product",
		"margin_gallery", "padding_gallery", "border_radius",
	},
}

// Sanitize drops keys the domain does not know about. It never rejects a
// value: shape problems are the cascade's concern, bounds problems are
// Validate's.
func Sanitize(domain Domain, values map[string]any) (map[string]any, error) {
	keys, ok := allowedKeys[domain]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDomain, domain)
	}
	out := make(map[string]any, len(values))
	for _, key := range keys {
		if v, present := values[key]; present {
			out[key] = v
		}
	}
	return out, nil
}

// rulesBounds is the validatable projection of the installments/rules
// domain.
type rulesBounds struct {
	MaxInstallments  int    `validate:"min=1,max=36"`
	WithoutInterest  int    `validate:"min=0"`
	TableDisplayType string `validate:"oneof=accordion table list"`
	ProductPosition  string `validate:"oneof=before_price after_price before_add_to_cart after_add_to_cart before_meta after_meta"`
}

// Validate checks the bounds of an admin update. The sparse map is resolved
// onto defaults first, so partial updates are checked against the values
// that would actually take effect.
func Validate(domain Domain, values map[string]any) error {
	switch domain {
	case DomainPricingGlobal:
		resolved := ResolveGlobalPricing(values)
		if resolved.GlobalDiscountPercent != nil {
			p := *resolved.GlobalDiscountPercent
			if p.LessThanOrEqual(decimal.Zero) || p.GreaterThan(decimal.NewFromInt(100)) {
				return fmt.Errorf("%w: global_discount must be in (0, 100]", ErrInvalid)
			}
		}
		return nil

	case DomainInstallmentRules:
		resolved := ResolveInstallmentRules(values)
		bounds := rulesBounds{
			MaxInstallments:  resolved.MaxInstallments,
			WithoutInterest:  resolved.WithoutInterest,
			TableDisplayType: resolved.TableDisplayType,
			ProductPosition:  resolved.ProductPosition,
		}
		if err := validate.Struct(bounds); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		if resolved.WithoutInterest > resolved.MaxInstallments {
			return fmt.Errorf("%w: installments_without_interest cannot exceed max_installments", ErrInvalid)
		}
		if resolved.InterestRate.IsNegative() {
			return fmt.Errorf("%w: interest_rate cannot be negative", ErrInvalid)
		}
		if resolved.MinInstallmentValue.IsNegative() {
			return fmt.Errorf("%w: min_installment_value cannot be negative", ErrInvalid)
		}
		return nil

	case DomainPricingDesign, DomainInstallmentDesign:
		// Design values are free-form; the cascade already guards shape.
		return nil

	default:
		return fmt.Errorf("%w: %s", ErrUnknownDomain, domain)
	}
}
