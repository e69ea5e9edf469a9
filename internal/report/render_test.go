package report

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/skilledgarden/lmn2qbo/internal/invoice"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":          "$0.00",
		"85":         "$85.00",
		"1234.5":     "$1,234.50",
		"1234567.89": "$1,234,567.89",
		"-42.10":     "($42.10)",
	}
	for input, want := range cases {
		got := FormatMoney(decimal.RequireFromString(input))
		assert.Equal(t, want, got, "input %s", input)
	}
}

func TestWriteInvoicePreview(t *testing.T) {
	inv := invoice.InvoiceData{
		JobsiteID:    "J1",
		JobsiteName:  "Smith Residence",
		CustomerName: "Alice Smith",
		InvoiceDate:  "2026-08-15",
		LineItems: []invoice.LineItem{
			{Description: "Skilled Garden Hourly Labor 8/10", Quantity: decimal.RequireFromString("3.5"),
				Rate: decimal.NewFromInt(85), Amount: decimal.RequireFromString("297.50")},
		},
		Subtotal:         decimal.RequireFromString("297.50"),
		DirectPaymentFee: decimal.RequireFromString("29.75"),
		Total:            decimal.RequireFromString("327.25"),
	}

	var buf strings.Builder
	WriteInvoicePreview(&buf, inv)

	out := buf.String()
	assert.Contains(t, out, "Smith Residence (Jobsite J1)")
	assert.Contains(t, out, "Skilled Garden Hourly Labor 8/10")
	assert.Contains(t, out, "$297.50")
	assert.Contains(t, out, "$327.25")
}
