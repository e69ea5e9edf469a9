package parser

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseDecimalOrZero parses a plain decimal field. Empty or unparsable
// values coerce to zero, matching how the source exports are cleaned.
func parseDecimalOrZero(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}

	val, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return val
}

// parseCurrencyOrZero parses a currency field that may carry $ and comma
// formatting. Empty or unparsable values coerce to zero.
func parseCurrencyOrZero(s string) decimal.Decimal {
	return parseDecimalOrZero(cleanCurrency(s))
}

// cleanCurrency removes $ and commas from currency strings.
// Also handles accounting notation: (123.45) → -123.45
func cleanCurrency(s string) string {
	s = strings.TrimSpace(s)

	isNegative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		isNegative = true
		s = strings.TrimPrefix(s, "(")
		s = strings.TrimSuffix(s, ")")
		s = strings.TrimSpace(s)
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if isNegative && s != "" && s != "0" && s != "0.00" {
		s = "-" + s
	}

	return s
}
