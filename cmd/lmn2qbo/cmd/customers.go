package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skilledgarden/lmn2qbo/internal/qbo"
)

// customersCmd groups the QBO customer subcommands.
var customersCmd = &cobra.Command{
	Use:   "customers",
	Short: "Look up QuickBooks customers for mapping",
}

var customersExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export all QBO customers as CSV (stdout when no file is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.RequireQBO(); err != nil {
			return err
		}
		client := newQBOClient()

		out := os.Stdout
		if len(args) == 1 {
			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("creating %s: %w", args[0], err)
			}
			defer f.Close()
			out = f
		}

		n, err := client.ExportCustomersCSV(cmd.Context(), out)
		if err != nil {
			return fmt.Errorf("exporting customers: %w", err)
		}
		if len(args) == 1 {
			fmt.Printf("✅ Exported %d customers to %s\n", n, args[0])
		}
		return nil
	},
}

var customersSearchCmd = &cobra.Command{
	Use:   "search <name>",
	Short: "Search QBO customers by display name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.RequireQBO(); err != nil {
			return err
		}
		client := newQBOClient()

		customers, err := client.SearchCustomersByName(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("searching customers: %w", err)
		}
		if len(customers) == 0 {
			fmt.Printf("No customers matching %q\n", args[0])
			return nil
		}

		fmt.Printf("%-10s %s\n", "QBO ID", "Display Name")
		for _, c := range customers {
			fmt.Printf("%-10s %s\n", c.ID, c.DisplayName)
		}
		return nil
	},
}

func newQBOClient() *qbo.Client {
	return qbo.NewClient(qbo.ClientConfig{
		AccessToken: cfg.QBO.AccessToken,
		RealmID:     cfg.QBO.RealmID,
		Environment: cfg.QBO.Environment,
	})
}

func init() {
	customersCmd.AddCommand(customersExportCmd)
	customersCmd.AddCommand(customersSearchCmd)
}
