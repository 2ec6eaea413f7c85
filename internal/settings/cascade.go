package settings

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// The cascade merges a sparse, loosely-typed override map onto the domain's
// defaults. Every consumer receives a fully populated record: overrides win
// key by key when they have the expected shape, malformed values fall back
// to the default for that key only, and unknown keys are ignored. Nothing
// here ever fails.

// ResolveGlobalPricing resolves the pricing/global domain.
func ResolveGlobalPricing(overrides map[string]any) GlobalPricing {
	out := DefaultGlobalPricing()
	if overrides == nil {
		return out
	}
	if raw, ok := overrides["global_discount"]; ok {
		// An empty string means "not configured", matching how the admin
		// surface clears the field.
		if d, ok := decimalValue(raw); ok && d.GreaterThan(decimal.Zero) {
			out.GlobalDiscountPercent = &d
		}
	}
	boolKey(overrides, "show_in_gallery", &out.ShowInGallery)
	stringKey(overrides, "pix_position", &out.PixPosition)
	return out
}

// ResolvePixDesign resolves the pricing/design domain.
func ResolvePixDesign(overrides map[string]any) PixDesign {
	out := DefaultPixDesign()
	if overrides == nil {
		return out
	}
	stringKey(overrides, "background_color", &out.BackgroundColor)
	stringKey(overrides, "border_color", &out.BorderColor)
	boolKey(overrides, "hide_border", &out.HideBorder)
	stringKey(overrides, "text_color", &out.TextColor)
	stringKey(overrides, "price_color", &out.PriceColor)
	stringKey(overrides, "pix_icon", &out.Icon)
	if out.Icon == "" {
		out.Icon = DefaultPixIcon
	}
	boolKey(overrides, "show_pix_icon_gallery", &out.ShowIconGallery)
	stringKey(overrides, "custom_text", &out.CustomText)
	stringKey(overrides, "discount_text", &out.DiscountText)
	stringKey(overrides, "border_style", &out.BorderStyle)
	intKey(overrides, "font_size", &out.FontSize)
	boolKey(overrides, "allow_transparent_background", &out.AllowTransparentBackground)
	spacingKey(overrides, "margin_product", &out.MarginProduct)
	spacingKey(overrides, "padding_product", &out.PaddingProduct)
	spacingKey(overrides, "margin_gallery", &out.MarginGallery)
	spacingKey(overrides, "padding_gallery", &out.PaddingGallery)
	borderRadiusKey(overrides, "border_radius", &out.BorderRadius)
	return out
}

// ResolveInstallmentRules resolves the installments/rules domain.
func ResolveInstallmentRules(overrides map[string]any) InstallmentRules {
	out := DefaultInstallmentRules()
	if overrides == nil {
		return out
	}
	boolKey(overrides, "enabled", &out.Enabled)
	intKey(overrides, "max_installments", &out.MaxInstallments)
	intKey(overrides, "installments_without_interest", &out.WithoutInterest)
	decimalKey(overrides, "interest_rate", &out.InterestRate)
	decimalKey(overrides, "min_installment_value", &out.MinInstallmentValue)
	boolKey(overrides, "show_table", &out.ShowTable)
	stringKey(overrides, "table_display_type", &out.TableDisplayType)
	stringKey(overrides, "text_before_installments", &out.TextBefore)
	stringKey(overrides, "text_after_installments", &out.TextAfter)
	locationsKey(overrides, "display_locations", &out.DisplayLocations)
	stringKey(overrides, "product_position", &out.ProductPosition)
	locationTextsKey(overrides, "location_texts", &out.LocationTexts)
	return out
}

// ResolveInstallmentDesign resolves the installments/design domain.
func ResolveInstallmentDesign(overrides map[string]any) InstallmentDesign {
	out := DefaultInstallmentDesign()
	if overrides == nil {
		return out
	}
	stringKey(overrides, "background_color", &out.BackgroundColor)
	stringKey(overrides, "border_color", &out.BorderColor)
	stringKey(overrides, "text_color", &out.TextColor)
	stringKey(overrides, "price_color", &out.PriceColor)
	stringKey(overrides, "border_style", &out.BorderStyle)
	intKey(overrides, "font_size", &out.FontSize)
	stringKey(overrides, "card_icon", &out.Icon)
	if out.Icon == "" {
		out.Icon = DefaultCardIcon
	}
	boolKey(overrides, "show_card_icon", &out.ShowIcon)
	boolKey(overrides, "show_card_icon_gallery", &out.ShowIconGallery)
	stringKey(overrides, "card_icon_position", &out.IconPosition)
	boolKey(overrides, "allow_transparent_background", &out.AllowTransparentBackground)
	spacingKey(overrides, "margin_product", &out.MarginProduct)
	spacingKey(overrides, "padding_product", &out.PaddingProduct)
	spacingKey(overrides, "margin_gallery", &out.MarginGallery)
	spacingKey(overrides, "padding_gallery", &out.PaddingGallery)
	borderRadiusKey(overrides, "border_radius", &out.BorderRadius)
	return out
}

// Typed coercion helpers. Stored values arrive from JSON (or older string
// based storage), so each helper accepts the shapes that historically show
// up: native types, numeric strings, and "1"/"0" flags.

func stringKey(overrides map[string]any, key string, dst *string) {
	raw, ok := overrides[key]
	if !ok {
		return
	}
	if s, ok := raw.(string); ok {
		*dst = s
	}
}

func boolKey(overrides map[string]any, key string, dst *bool) {
	raw, ok := overrides[key]
	if !ok {
		return
	}
	if b, ok := boolValue(raw); ok {
		*dst = b
	}
}

func intKey(overrides map[string]any, key string, dst *int) {
	raw, ok := overrides[key]
	if !ok {
		return
	}
	if d, ok := decimalValue(raw); ok {
		*dst = int(d.IntPart())
	}
}

func decimalKey(overrides map[string]any, key string, dst *decimal.Decimal) {
	raw, ok := overrides[key]
	if !ok {
		return
	}
	if d, ok := decimalValue(raw); ok {
		*dst = d
	}
}

func boolValue(raw any) (bool, bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "on":
			return true, true
		case "0", "false", "no", "off", "":
			return false, true
		}
		return false, false
	case float64:
		return v != 0, true
	case int:
		return v != 0, true
	}
	return false, false
}

func decimalValue(raw any) (decimal.Decimal, bool) {
	switch v := raw.(type) {
	case float64:
		return decimal.NewFromFloat(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return decimal.Decimal{}, false
		}
		d, err := decimal.NewFromString(trimmed)
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	case decimal.Decimal:
		return v, true
	}
	return decimal.Decimal{}, false
}

func floatValue(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// spacingKey merges a spacing override side by side: a map specifying only
// {"top": 10} keeps the default right/bottom/left untouched.
func spacingKey(overrides map[string]any, key string, dst *Spacing) {
	raw, ok := overrides[key]
	if !ok {
		return
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return
	}
	if f, ok := floatValue(m["top"]); ok {
		dst.Top = f
	}
	if f, ok := floatValue(m["right"]); ok {
		dst.Right = f
	}
	if f, ok := floatValue(m["bottom"]); ok {
		dst.Bottom = f
	}
	if f, ok := floatValue(m["left"]); ok {
		dst.Left = f
	}
}

func borderRadiusKey(overrides map[string]any, key string, dst *BorderRadius) {
	raw, ok := overrides[key]
	if !ok {
		return
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return
	}
	if f, ok := floatValue(m["value"]); ok {
		dst.Value = f
	}
	if s, ok := m["unit"].(string); ok && s != "" {
		dst.Unit = s
	}
}

func locationsKey(overrides map[string]any, key string, dst *Locations) {
	raw, ok := overrides[key]
	if !ok {
		return
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return
	}
	if b, ok := boolValue(m["product"]); ok {
		dst.Product = b
	}
	if b, ok := boolValue(m["gallery"]); ok {
		dst.Gallery = b
	}
	if b, ok := boolValue(m["cart"]); ok {
		dst.Cart = b
	}
	if b, ok := boolValue(m["checkout"]); ok {
		dst.Checkout = b
	}
}

func locationTextsKey(overrides map[string]any, key string, dst *map[string]string) {
	raw, ok := overrides[key]
	if !ok {
		return
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return
	}
	texts := make(map[string]string, len(m))
	for k, v := range m {
		if s, ok := v.(string); ok {
			texts[k] = s
		}
	}
	*dst = texts
}
