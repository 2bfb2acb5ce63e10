// Package exchange holds the pure conversion math between two USD-priced
// tokens. These are display helpers, not validators: bad input yields zero,
// never an error, so the form can recompute on every keystroke.
package exchange

import (
	"strconv"

	"github.com/swapdesk/swapdesk/internal/token"
)

const (
	// AmountDecimals is the fixed precision for derived token amounts.
	AmountDecimals = 6
	// USDDecimals is the fixed precision for USD equivalents.
	USDDecimals = 2
)

// Convert returns the amount of `to` obtained for `amount` of `from`,
// valued through their common USD prices. Non-positive amounts or prices
// yield 0.
func Convert(amount float64, from, to token.Token) float64 {
	if amount <= 0 {
		return 0
	}
	if from.Price <= 0 || to.Price <= 0 {
		return 0
	}
	usdValue := amount * from.Price
	return usdValue / to.Price
}

// Rate returns how many units of `to` one unit of `from` buys, or 0 when
// either price is unusable.
func Rate(from, to token.Token) float64 {
	return Convert(1, from, to)
}

// FormatAmount renders a token amount with a fixed number of decimals,
// rounding half away from zero.
func FormatAmount(value float64, decimals int) string {
	return strconv.FormatFloat(value, 'f', decimals, 64)
}

// FormatUSD renders a USD equivalent with two decimals.
func FormatUSD(value float64) string {
	return strconv.FormatFloat(value, 'f', USDDecimals, 64)
}
