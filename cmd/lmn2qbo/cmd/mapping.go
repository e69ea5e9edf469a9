package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/skilledgarden/lmn2qbo/internal/mapping"
	"github.com/skilledgarden/lmn2qbo/internal/report"
)

var (
	mappingNotes   string
	templateOutput string
)

// mappingCmd groups the customer mapping subcommands.
var mappingCmd = &cobra.Command{
	Use:   "mapping",
	Short: "Inspect and edit the jobsite to QBO customer mapping",
}

var mappingListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the merged mapping table",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openDatabase(cmd)
		if err != nil {
			return err
		}
		if conn != nil {
			defer conn.Close()
		}

		table := newResolver(conn).Load(cmd.Context())
		if len(table) == 0 {
			fmt.Println("No mappings configured.")
			return nil
		}

		ids := make([]string, 0, len(table))
		for id := range table {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		fmt.Printf("%-10s %-12s %-32s %s\n", "Jobsite", "QBO ID", "Display Name", "Notes")
		for _, id := range ids {
			m := table[id]
			fmt.Printf("%-10s %-12s %-32s %s\n", m.JobsiteID, m.QBOCustomerID, m.QBODisplayName, m.Notes)
		}
		return nil
	},
}

var mappingSetCmd = &cobra.Command{
	Use:   "set <jobsite-id> <qbo-customer-id> [display-name]",
	Short: "Add or update a mapping override",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openDatabase(cmd)
		if err != nil {
			return err
		}
		if conn != nil {
			defer conn.Close()
		}

		m := mapping.Mapping{
			JobsiteID:     args[0],
			QBOCustomerID: args[1],
			Notes:         mappingNotes,
		}
		if len(args) == 3 {
			m.QBODisplayName = args[2]
		}

		if err := newResolver(conn).SaveOverride(cmd.Context(), m); err != nil {
			return fmt.Errorf("saving mapping: %w", err)
		}
		fmt.Printf("✅ Jobsite %s now maps to QBO customer %s\n", m.JobsiteID, m.QBOCustomerID)
		return nil
	},
}

var mappingDeleteCmd = &cobra.Command{
	Use:   "delete <jobsite-id>",
	Short: "Remove a mapping override",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openDatabase(cmd)
		if err != nil {
			return err
		}
		if conn != nil {
			defer conn.Close()
		}

		deleted, err := newResolver(conn).DeleteOverride(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("deleting mapping: %w", err)
		}
		if !deleted {
			fmt.Printf("No override found for jobsite %s\n", args[0])
			return nil
		}
		fmt.Printf("✅ Removed override for jobsite %s\n", args[0])
		return nil
	},
}

var mappingTemplateCmd = &cobra.Command{
	Use:   "template <time-data-file> <service-data-file>",
	Short: "Write a mapping CSV template for the unmapped jobsites in a pair of exports",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openDatabase(cmd)
		if err != nil {
			return err
		}
		if conn != nil {
			defer conn.Close()
		}

		p := newPipeline(conn)
		result, err := processInputs(cmd.Context(), p, args, "")
		if err != nil {
			return err
		}

		if len(result.Unmapped) == 0 {
			fmt.Println("All jobsites are mapped, nothing to template.")
			return nil
		}

		ids := make([]string, 0, len(result.Unmapped))
		for _, u := range result.Unmapped {
			ids = append(ids, u.JobsiteID)
		}
		if err := mapping.WriteTemplate(templateOutput, ids); err != nil {
			return fmt.Errorf("writing template: %w", err)
		}

		report.WriteUnmapped(cmd.OutOrStdout(), result.Unmapped)
		fmt.Printf("\n✅ Wrote template rows to %s\n", templateOutput)
		return nil
	},
}

func init() {
	mappingSetCmd.Flags().StringVar(&mappingNotes, "notes", "", "free-form note stored with the mapping")
	mappingTemplateCmd.Flags().StringVar(&templateOutput, "output", "config/lmn_jobsites.csv", "file the template rows are written to")

	mappingCmd.AddCommand(mappingListCmd)
	mappingCmd.AddCommand(mappingSetCmd)
	mappingCmd.AddCommand(mappingDeleteCmd)
	mappingCmd.AddCommand(mappingTemplateCmd)
}
