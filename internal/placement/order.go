package placement

// Order is the derived placement for the three product-page fragments.
// Whatever logical position configuration picked, SummaryRank < PixRank <
// TableRank always holds: the installment summary renders first, the
// instant-payment price second, the detail table last.
type Order struct {
	SummaryRank int `json:"summaryRank"`
	PixRank     int `json:"pixRank"`
	TableRank   int `json:"tableRank"`
}

// Anchor ranks on the product summary ladder. The purchase action sits at 40;
// everything this package schedules must land strictly below it.
const (
	rankBeforePrice    = 15
	rankAfterPrice     = 25
	rankBeforePurchase = 35
)

// OrderFor derives the placement for a configured logical position. The
// three positions that conceptually request "after the purchase action"
// (after_add_to_cart, before_meta, after_meta) are remapped to the anchor
// immediately before it: price and installment information never renders
// below the buy button, even when configuration asks for it.
func OrderFor(pos LogicalPosition) Order {
	var base int
	switch pos {
	case BeforePrice:
		base = rankBeforePrice
	case AfterPrice:
		base = rankAfterPrice
	default:
		// BeforePurchase, the three after-purchase positions, and anything
		// unrecognised all land just before the purchase action.
		base = rankBeforePurchase
	}
	return Order{SummaryRank: base, PixRank: base + 1, TableRank: base + 2}
}
