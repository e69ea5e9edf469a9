package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skilledgarden/lmn2qbo/internal/db"
	"github.com/skilledgarden/lmn2qbo/internal/report"
)

var historyJobsite string

// historyCmd represents the history command.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously created invoices",
	Long: `History lists the invoices this tool has created in QuickBooks, newest
first. Requires DATABASE_URL.

Example:
  lmn2qbo history
  lmn2qbo history --jobsite 12345`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.RequireDatabase(); err != nil {
			return err
		}
		conn, err := openDatabase(cmd)
		if err != nil {
			return err
		}
		defer conn.Close()

		entries, err := db.NewHistoryStore(conn).List(cmd.Context(), historyJobsite)
		if err != nil {
			return fmt.Errorf("loading invoice history: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No invoices recorded yet.")
			return nil
		}

		fmt.Printf("%-12s %-10s %-10s %-24s %10s\n", "Created", "Jobsite", "Invoice", "Work Dates", "Total")
		for _, e := range entries {
			fmt.Printf("%-12s %-10s %-10s %-24s %10s\n",
				e.CreatedAt.Format("2006-01-02"),
				e.JobsiteID,
				e.QBOInvoiceNumber,
				strings.Join(e.WorkDates, ","),
				report.FormatMoney(e.TotalAmount))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyJobsite, "jobsite", "", "only show invoices for this jobsite ID")
}
