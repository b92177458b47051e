package trade

import (
	"fmt"
	"strings"
)

// Format renders a validated execution as a Telegram Markdown message.
// Money fields print with two decimals; quantity prints exactly as
// received since crypto amounts need arbitrary precision.
func Format(e *Execution) string {
	var b strings.Builder

	icon := "🟢"
	if e.Side == SideSell {
		icon = "🔴"
	}
	fmt.Fprintf(&b, "%s *%s %s*\n\n", icon, e.Side, e.Crypto)
	fmt.Fprintf(&b, "Price: $%s\n", e.Price.StringFixed(2))
	fmt.Fprintf(&b, "Quantity: %s %s\n", e.Quantity.String(), e.Crypto)
	fmt.Fprintf(&b, "Total Cost: $%s\n", e.TotalCost.StringFixed(2))
	fmt.Fprintf(&b, "Fee (%s%%): $%s\n", e.FeePercentage.StringFixed(2), e.FeeAmount.StringFixed(2))
	fmt.Fprintf(&b, "Net Total: $%s\n", e.NetTotal.StringFixed(2))
	fmt.Fprintf(&b, "Order ID: %s", e.OrderID)

	if e.Side == SideSell {
		pnlIcon := "💰"
		if e.ProfitLossUSDT.IsNegative() {
			pnlIcon = "📉"
		}
		fmt.Fprintf(&b, "\n\n%s P/L: %s%% ($%s)\n", pnlIcon,
			e.ProfitLossPercentage.StringFixed(2), e.ProfitLossUSDT.StringFixed(2))
		fmt.Fprintf(&b, "Avg Buy Price: $%s\n", e.AvgBuyPrice.StringFixed(2))
		fmt.Fprintf(&b, "Sell Price: $%s", e.SellPrice.StringFixed(2))
	}

	return b.String()
}
