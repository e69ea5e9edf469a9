package report

import (
	"fmt"
	"io"

	"github.com/skilledgarden/lmn2qbo/internal/pipeline"
)

// WriteBatchResult renders the outcome of a submission run.
func WriteBatchResult(w io.Writer, result *pipeline.BatchResult) {
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "⚠️  %s\n", warning)
	}
	if len(result.Warnings) > 0 {
		fmt.Fprintln(w)
	}

	for _, res := range result.Created {
		fmt.Fprintf(w, "✅ %s: invoice %s (%s) for %s\n",
			res.CustomerName, res.InvoiceNumber, res.InvoiceID, FormatMoney(res.Total))
	}
	for _, res := range result.Errors {
		fmt.Fprintf(w, "❌ %s (jobsite %s): %s\n",
			res.CustomerName, res.JobsiteID, res.Err)
	}
	for _, inv := range result.Skipped {
		fmt.Fprintf(w, "⏭️  %s (jobsite %s): no customer mapping\n",
			inv.JobsiteName, inv.JobsiteID)
	}

	fmt.Fprintf(w, "\nCreated %d invoice(s) totaling %s; %d failed, %d skipped\n",
		len(result.Created), FormatMoney(result.TotalCreated()),
		len(result.Errors), len(result.Skipped))
}
