package placement

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderInvariantHoldsForAllPositions(t *testing.T) {
	for _, pos := range Positions() {
		order := OrderFor(pos)
		require.Less(t, order.SummaryRank, order.PixRank, "position %s", pos)
		require.Less(t, order.PixRank, order.TableRank, "position %s", pos)
	}
}

func TestOrderForAnchors(t *testing.T) {
	require.Equal(t, Order{SummaryRank: 15, PixRank: 16, TableRank: 17}, OrderFor(BeforePrice))
	require.Equal(t, Order{SummaryRank: 25, PixRank: 26, TableRank: 27}, OrderFor(AfterPrice))
	require.Equal(t, Order{SummaryRank: 35, PixRank: 36, TableRank: 37}, OrderFor(BeforePurchase))
}

func TestOrderForRemapsAfterPurchasePositions(t *testing.T) {
	// Nothing schedules below the buy button, whatever configuration says.
	beforePurchase := OrderFor(BeforePurchase)
	for _, pos := range []LogicalPosition{AfterPurchase, BeforeMeta, AfterMeta} {
		require.Equal(t, beforePurchase, OrderFor(pos), "position %s", pos)
	}
}

func TestParsePosition(t *testing.T) {
	require.Equal(t, AfterPrice, ParsePosition("after_price"))
	require.Equal(t, AfterPrice, ParsePosition("  After_Price "))
	require.Equal(t, BeforePurchase, ParsePosition("somewhere_else"))
	require.Equal(t, BeforePurchase, ParsePosition(""))
}
