// Package invoice composes per-jobsite invoices from billable hours and
// service entries, applying the direct payment fee schedule.
package invoice

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/skilledgarden/lmn2qbo/internal/parser"
	"github.com/skilledgarden/lmn2qbo/internal/timecalc"
)

// LineItem is a single invoice line. Amount is not always quantity × rate:
// service entry amounts come pre-computed from LMN and are trusted as-is;
// only the labor line computes amount from hours × rate.
type LineItem struct {
	Description string
	Quantity    decimal.Decimal
	Rate        decimal.Decimal
	Amount      decimal.Decimal
}

// InvoiceData is the complete invoice for a single jobsite. Subtotal is the
// sum of line amounts before the fee; the fee line itself is appended to
// LineItems when the fee is nonzero.
type InvoiceData struct {
	JobsiteID        string
	JobsiteName      string
	CustomerName     string
	InvoiceDate      string
	LineItems        []LineItem
	Subtotal         decimal.Decimal
	DirectPaymentFee decimal.Decimal
	Total            decimal.Decimal
	TimesheetIDs     []string
	WorkDates        []string
}

var (
	feeTierOne = decimal.NewFromInt(1000)
	feeTierTwo = decimal.NewFromInt(2000)
	feeLowRate = decimal.RequireFromString("0.10")
	feeMid     = decimal.NewFromInt(15)
	feeHigh    = decimal.NewFromInt(20)
)

// DirectPaymentFee computes the fee for a subtotal: 10% under $1,000,
// $15 flat from $1,000 through $2,000, $20 flat above that.
func DirectPaymentFee(subtotal decimal.Decimal) decimal.Decimal {
	switch {
	case subtotal.LessThan(feeTierOne):
		return subtotal.Mul(feeLowRate).Round(2)
	case subtotal.LessThanOrEqual(feeTierTwo):
		return feeMid
	default:
		return feeHigh
	}
}

// FormatLaborDescription builds the labor line description, naming a single
// work date as M/DD or a range as M/DD-M/DD.
func FormatLaborDescription(dates []string) string {
	var dateStr string
	switch {
	case len(dates) == 0:
	case len(dates) == 1:
		dateStr = formatDateShort(dates[0])
	default:
		dateStr = formatDateShort(dates[0]) + "-" + formatDateShort(dates[len(dates)-1])
	}

	return strings.TrimSpace("Skilled Garden Hourly Labor " + dateStr)
}

// formatDateShort converts a YYYY-MM-DD date to M/DD (no leading zero on the
// month). Anything unparsable passes through unchanged.
func formatDateShort(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%d/%02d", int(t.Month()), t.Day())
}

// ServiceLineItems extracts the billable service/material lines for a
// jobsite. Billable means Total Price > 0 and an invoice type other than
// "Included" (any case). Amounts are carried over verbatim.
func ServiceLineItems(entries []parser.ServiceEntry, jobsiteID string) []LineItem {
	var items []LineItem
	for _, e := range entries {
		if e.JobsiteID != jobsiteID {
			continue
		}
		if !e.TotalPrice.GreaterThan(decimal.Zero) {
			continue
		}
		if strings.EqualFold(e.InvoiceType, "included") {
			continue
		}
		items = append(items, LineItem{
			Description: e.ServiceActivity,
			Quantity:    e.TimesheetQty,
			Rate:        e.UnitPrice,
			Amount:      e.TotalPrice,
		})
	}
	return items
}

// Build composes the invoice for one jobsite from its hours and the shared
// service entry set. An empty invoiceDate defaults to today.
func Build(hours timecalc.JobsiteHours, services []parser.ServiceEntry, invoiceDate string) InvoiceData {
	if invoiceDate == "" {
		invoiceDate = time.Now().Format("2006-01-02")
	}

	inv := InvoiceData{
		JobsiteID:    hours.JobsiteID,
		JobsiteName:  hours.JobsiteName,
		CustomerName: hours.CustomerName,
		InvoiceDate:  invoiceDate,
		TimesheetIDs: hours.TimesheetIDs,
		WorkDates:    hours.Dates,
	}

	if hours.TotalBillableHours.GreaterThan(decimal.Zero) {
		inv.LineItems = append(inv.LineItems, LineItem{
			Description: FormatLaborDescription(hours.Dates),
			Quantity:    hours.TotalBillableHours,
			Rate:        hours.BillableRate,
			Amount:      hours.TotalBillableHours.Mul(hours.BillableRate).Round(2),
		})
	}

	inv.LineItems = append(inv.LineItems, ServiceLineItems(services, hours.JobsiteID)...)

	subtotal := decimal.Zero
	for _, item := range inv.LineItems {
		subtotal = subtotal.Add(item.Amount)
	}
	inv.Subtotal = subtotal.Round(2)
	inv.DirectPaymentFee = DirectPaymentFee(inv.Subtotal)
	inv.Total = inv.Subtotal.Add(inv.DirectPaymentFee).Round(2)

	if inv.DirectPaymentFee.GreaterThan(decimal.Zero) {
		inv.LineItems = append(inv.LineItems, LineItem{
			Description: "Please subtract if paying by USPS check",
			Quantity:    decimal.NewFromInt(1),
			Rate:        inv.DirectPaymentFee,
			Amount:      inv.DirectPaymentFee,
		})
	}

	return inv
}

// BuildAll composes invoices for every jobsite, dropping those with nothing
// billable (zero subtotal).
func BuildAll(hours []timecalc.JobsiteHours, services []parser.ServiceEntry, invoiceDate string) []InvoiceData {
	var invoices []InvoiceData
	for _, h := range hours {
		inv := Build(h, services, invoiceDate)
		if inv.Subtotal.GreaterThan(decimal.Zero) {
			invoices = append(invoices, inv)
		}
	}
	return invoices
}
