package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/skilledgarden/lmn2qbo/internal/invoice"
	"github.com/skilledgarden/lmn2qbo/internal/pipeline"
)

// WriteInvoicePreview renders one invoice as a line-item table.
func WriteInvoicePreview(w io.Writer, inv invoice.InvoiceData) {
	fmt.Fprintf(w, "\n%s (Jobsite %s)\n", inv.JobsiteName, inv.JobsiteID)
	fmt.Fprintf(w, "Customer: %s   Invoice date: %s\n", inv.CustomerName, inv.InvoiceDate)
	fmt.Fprintln(w, strings.Repeat("-", 78))
	fmt.Fprintf(w, "%-44s %9s %10s %11s\n", "Description", "Qty", "Rate", "Amount")
	fmt.Fprintln(w, strings.Repeat("-", 78))
	for _, item := range inv.LineItems {
		fmt.Fprintf(w, "%-44s %9s %10s %11s\n",
			truncate(item.Description, 44),
			item.Quantity.StringFixed(2),
			FormatMoney(item.Rate),
			FormatMoney(item.Amount))
	}
	fmt.Fprintln(w, strings.Repeat("-", 78))
	fmt.Fprintf(w, "%-65s %11s\n", "Subtotal", FormatMoney(inv.Subtotal))
	if inv.DirectPaymentFee.IsPositive() {
		fmt.Fprintf(w, "%-65s %11s\n", "Direct payment fee", FormatMoney(inv.DirectPaymentFee))
	}
	fmt.Fprintf(w, "%-65s %11s\n", "Total", FormatMoney(inv.Total))
}

// WriteProcessSummary renders the run summary and per-invoice previews.
func WriteProcessSummary(w io.Writer, result *pipeline.ProcessResult) {
	for _, inv := range result.Invoices {
		WriteInvoicePreview(w, inv)
	}

	fmt.Fprintf(w, "\nJobsites: %d   Mapped: %d   Unmapped: %d   Line items: %d\n",
		result.Summary.TotalJobsites,
		result.Summary.MappedJobsites,
		result.Summary.UnmappedJobsites,
		result.Summary.TotalLineItems)
	fmt.Fprintf(w, "Total for mapped jobsites: %s\n", FormatMoney(result.TotalAmount))

	WriteUnmapped(w, result.Unmapped)
}

// WriteUnmapped lists jobsites that need a customer mapping before
// submission.
func WriteUnmapped(w io.Writer, unmapped []pipeline.UnmappedJobsite) {
	if len(unmapped) == 0 {
		return
	}
	fmt.Fprintf(w, "\n⚠️  %d jobsite(s) have no QBO customer mapping and will be skipped:\n", len(unmapped))
	for _, u := range unmapped {
		fmt.Fprintf(w, "  %s  %-40s %s\n",
			u.JobsiteID, truncate(u.JobsiteName, 40), FormatMoney(u.EstimatedAmount))
	}
	fmt.Fprintln(w, "\nAdd mappings with: lmn2qbo mapping set <jobsite-id> <qbo-customer-id>")
}
