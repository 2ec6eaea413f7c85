package settings

import (
	"github.com/shopspring/decimal"
)

// Domain names one of the four independent configuration domains. Each is
// persisted as a sparse key-value map and resolved onto its defaults by the
// cascade.
type Domain string

const (
	DomainPricingGlobal     Domain = "pricing/global"
	DomainPricingDesign     Domain = "pricing/design"
	DomainInstallmentRules  Domain = "installments/rules"
	DomainInstallmentDesign Domain = "installments/design"
)

// Domains lists every known settings domain.
func Domains() []Domain {
	return []Domain{DomainPricingGlobal, DomainPricingDesign, DomainInstallmentRules, DomainInstallmentDesign}
}

// Valid reports whether d names a known domain.
func (d Domain) Valid() bool {
	switch d {
	case DomainPricingGlobal, DomainPricingDesign, DomainInstallmentRules, DomainInstallmentDesign:
		return true
	}
	return false
}

// Spacing holds per-side spacing values in pixels. Margins may be negative.
type Spacing struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// BorderRadius is a single radius applied to all corners.
type BorderRadius struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Locations toggles the page types a fragment family renders on.
type Locations struct {
	Product  bool `json:"product"`
	Gallery  bool `json:"gallery"`
	Cart     bool `json:"cart"`
	Checkout bool `json:"checkout"`
}

// GlobalPricing is the resolved pricing/global domain.
type GlobalPricing struct {
	// GlobalDiscountPercent is nil when no shop-wide discount is configured.
	GlobalDiscountPercent *decimal.Decimal `json:"globalDiscountPercent"`
	ShowInGallery         bool             `json:"showInGallery"`
	PixPosition           string           `json:"pixPosition"`
}

// PixDesign is the resolved pricing/design domain.
type PixDesign struct {
	BackgroundColor            string       `json:"backgroundColor"`
	BorderColor                string       `json:"borderColor"`
	HideBorder                 bool         `json:"hideBorder"`
	TextColor                  string       `json:"textColor"`
	PriceColor                 string       `json:"priceColor"`
	Icon                       string       `json:"icon"`
	ShowIconGallery            bool         `json:"showIconGallery"`
	CustomText                 string       `json:"customText"`
	DiscountText               string       `json:"discountText"`
	BorderStyle                string       `json:"borderStyle"`
	FontSize                   int          `json:"fontSize"`
	AllowTransparentBackground bool         `json:"allowTransparentBackground"`
	MarginProduct              Spacing      `json:"marginProduct"`
	PaddingProduct             Spacing      `json:"paddingProduct"`
	MarginGallery              Spacing      `json:"marginGallery"`
	PaddingGallery             Spacing      `json:"paddingGallery"`
	BorderRadius               BorderRadius `json:"borderRadius"`
}

// InstallmentRules is the resolved installments/rules domain.
type InstallmentRules struct {
	Enabled             bool              `json:"enabled"`
	MaxInstallments     int               `json:"maxInstallments"`
	WithoutInterest     int               `json:"withoutInterest"`
	InterestRate        decimal.Decimal   `json:"interestRate"`
	MinInstallmentValue decimal.Decimal   `json:"minInstallmentValue"`
	ShowTable           bool              `json:"showTable"`
	TableDisplayType    string            `json:"tableDisplayType"`
	TextBefore          string            `json:"textBefore"`
	TextAfter           string            `json:"textAfter"`
	DisplayLocations    Locations         `json:"displayLocations"`
	ProductPosition     string            `json:"productPosition"`
	LocationTexts       map[string]string `json:"locationTexts"`
}

// InstallmentDesign is the resolved installments/design domain.
type InstallmentDesign struct {
	BackgroundColor            string       `json:"backgroundColor"`
	BorderColor                string       `json:"borderColor"`
	TextColor                  string       `json:"textColor"`
	PriceColor                 string       `json:"priceColor"`
	BorderStyle                string       `json:"borderStyle"`
	FontSize                   int          `json:"fontSize"`
	Icon                       string       `json:"icon"`
	ShowIcon                   bool         `json:"showIcon"`
	ShowIconGallery            bool         `json:"showIconGallery"`
	IconPosition               string       `json:"iconPosition"`
	AllowTransparentBackground bool         `json:"allowTransparentBackground"`
	MarginProduct              Spacing      `json:"marginProduct"`
	PaddingProduct             Spacing      `json:"paddingProduct"`
	MarginGallery              Spacing      `json:"marginGallery"`
	PaddingGallery             Spacing      `json:"paddingGallery"`
	BorderRadius               BorderRadius `json:"borderRadius"`
}

// Default icon references handed to the templating layer when no custom icon
// is configured.
const (
	DefaultPixIcon  = "pix"
	DefaultCardIcon = "credit-card"
)

// DefaultGlobalPricing returns the pricing/global defaults.
func DefaultGlobalPricing() GlobalPricing {
	return GlobalPricing{
		GlobalDiscountPercent: nil,
		ShowInGallery:         false,
		PixPosition:           "after_installments",
	}
}

// DefaultPixDesign returns the pricing/design defaults.
func DefaultPixDesign() PixDesign {
	return PixDesign{
		BackgroundColor:            "#e8f5e9",
		BorderColor:                "#4caf50",
		HideBorder:                 false,
		TextColor:                  "#2e7d32",
		PriceColor:                 "#1b5e20",
		Icon:                       DefaultPixIcon,
		ShowIconGallery:            true,
		CustomText:                 "Pagando com PIX:",
		DiscountText:               "de desconto",
		BorderStyle:                "solid",
		FontSize:                   16,
		AllowTransparentBackground: false,
		BorderRadius:               BorderRadius{Unit: "px"},
	}
}

// DefaultInstallmentRules returns the installments/rules defaults.
func DefaultInstallmentRules() InstallmentRules {
	return InstallmentRules{
		Enabled:             false,
		MaxInstallments:     12,
		WithoutInterest:     3,
		InterestRate:        decimal.RequireFromString("2.99"),
		MinInstallmentValue: decimal.NewFromInt(5),
		ShowTable:           true,
		TableDisplayType:    "accordion",
		DisplayLocations:    Locations{Product: true},
		ProductPosition:     "after_price",
		LocationTexts:       map[string]string{},
	}
}

// DefaultInstallmentDesign returns the installments/design defaults.
func DefaultInstallmentDesign() InstallmentDesign {
	return InstallmentDesign{
		BackgroundColor:            "#f5f5f5",
		BorderColor:                "#2c3e50",
		TextColor:                  "#333333",
		PriceColor:                 "#2c3e50",
		BorderStyle:                "solid",
		FontSize:                   16,
		Icon:                       DefaultCardIcon,
		ShowIcon:                   true,
		ShowIconGallery:            true,
		IconPosition:               "before",
		AllowTransparentBackground: false,
		BorderRadius:               BorderRadius{Unit: "px"},
	}
}
