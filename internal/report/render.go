// Package report renders processing and submission results for the terminal.
package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney formats a decimal as currency with thousands separators.
// Negative amounts render in accounting parentheses.
func FormatMoney(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	if negative {
		amount = amount.Neg()
	}

	s := amount.StringFixed(2)
	intPart, decPart, _ := strings.Cut(s, ".")

	var parts []string
	for len(intPart) > 3 {
		parts = append([]string{intPart[len(intPart)-3:]}, parts...)
		intPart = intPart[:len(intPart)-3]
	}
	parts = append([]string{intPart}, parts...)

	formatted := fmt.Sprintf("$%s.%s", strings.Join(parts, ","), decPart)

	if negative {
		return "(" + formatted + ")"
	}
	return formatted
}

// truncate shortens a string with ellipsis
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
