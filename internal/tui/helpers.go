package tui

import (
	"github.com/pureline/invoicer/internal/render"
)

// formatMoney formats an amount with the configured currency symbol and
// two fixed decimals, matching the document renderer
func formatMoney(currency string, amount float64) string {
	return render.Money(currency, amount)
}

// truncateStr truncates a string to the specified length with ellipsis
func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
