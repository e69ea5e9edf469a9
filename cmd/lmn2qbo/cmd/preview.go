package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skilledgarden/lmn2qbo/internal/pipeline"
	"github.com/skilledgarden/lmn2qbo/internal/report"
)

var previewInvoiceDate string

// previewCmd represents the preview command.
var previewCmd = &cobra.Command{
	Use:   "preview <time-data-file> <service-data-file>",
	Short: "Show the invoices a pair of exports would produce",
	Long: `Preview runs the full computation without leaving the machine: billable
hours per jobsite, composed line items, the direct payment fee, and which
jobsites still lack a customer mapping. Mappings come from the override CSV
only; the LMN API and database are never contacted.

Example:
  lmn2qbo preview time_data.csv service_data.xlsx`,
	Args: cobra.ExactArgs(2),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringVar(&previewInvoiceDate, "invoice-date", "", "invoice date YYYY-MM-DD (default today)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	p := pipeline.New(fileOnlyResolver(), log)

	result, err := processInputs(cmd.Context(), p, args, previewInvoiceDate)
	if err != nil {
		return err
	}

	report.WriteProcessSummary(os.Stdout, result)

	fmt.Println("\nBillable hours per jobsite:")
	fmt.Println(strings.Repeat("-", 78))
	for _, h := range result.Hours {
		fmt.Printf("%-8s %-36s work %6s  drive %6s  total %6s\n",
			h.JobsiteID, h.JobsiteName,
			h.WorkHours.StringFixed(2),
			h.AllocatedDriveTime.StringFixed(2),
			h.TotalBillableHours.StringFixed(2))
	}

	return nil
}
