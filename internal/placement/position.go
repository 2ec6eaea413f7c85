package placement

import "strings"

// LogicalPosition names a page anchor the installment block can be attached
// to on the single-product page. It is the public scheduling model; numeric
// ranks are an internal detail of Order.
type LogicalPosition string

const (
	BeforePrice    LogicalPosition = "before_price"
	AfterPrice     LogicalPosition = "after_price"
	BeforePurchase LogicalPosition = "before_add_to_cart"
	AfterPurchase  LogicalPosition = "after_add_to_cart"
	BeforeMeta     LogicalPosition = "before_meta"
	AfterMeta      LogicalPosition = "after_meta"
)

// Positions lists every recognised logical position.
func Positions() []LogicalPosition {
	return []LogicalPosition{BeforePrice, AfterPrice, BeforePurchase, AfterPurchase, BeforeMeta, AfterMeta}
}

// ParsePosition maps a stored configuration value onto a LogicalPosition.
// Unrecognised values silently fall back to BeforePurchase: a bad setting
// must never block page rendering.
func ParsePosition(value string) LogicalPosition {
	switch LogicalPosition(strings.ToLower(strings.TrimSpace(value))) {
	case BeforePrice:
		return BeforePrice
	case AfterPrice:
		return AfterPrice
	case BeforePurchase:
		return BeforePurchase
	case AfterPurchase:
		return AfterPurchase
	case BeforeMeta:
		return BeforeMeta
	case AfterMeta:
		return AfterMeta
	default:
		return BeforePurchase
	}
}
