package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/skilledgarden/lmn2qbo/internal/db"
	"github.com/skilledgarden/lmn2qbo/internal/pipeline"
	"github.com/skilledgarden/lmn2qbo/internal/report"
)

var (
	invoiceDate string
	terms       string
	dryRun      bool
)

// processCmd represents the process command.
var processCmd = &cobra.Command{
	Use:   "process <time-data-file> <service-data-file>",
	Short: "Process a pair of LMN exports and create QBO draft invoices",
	Long: `Process reads the two LMN export files (in either order, CSV or XLSX),
computes billable hours per jobsite, composes invoices, and creates them as
drafts in QuickBooks Online. Jobsites without a customer mapping are listed
and skipped.

Example:
  lmn2qbo process time_data.csv service_data.csv
  lmn2qbo process exports/*.xlsx --invoice-date 2026-08-15 --terms "Net 30"
  lmn2qbo process time_data.csv service_data.csv --dry-run`,
	Args: cobra.ExactArgs(2),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVar(&invoiceDate, "invoice-date", "", "invoice date YYYY-MM-DD (default today)")
	processCmd.Flags().StringVar(&terms, "terms", "Net 15", `payment terms: "Net 10", "Net 15", "Net 30", "Net 60", "Due on receipt"`)
	processCmd.Flags().BoolVar(&dryRun, "dry-run", false, "preview only, create nothing in QBO")
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if !dryRun {
		if err := cfg.RequireQBO(); err != nil {
			return err
		}
	}

	conn, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	if conn != nil {
		defer conn.Close()
	}

	p := newPipeline(conn)

	result, err := processInputs(ctx, p, args, invoiceDate)
	if err != nil {
		return err
	}

	report.WriteProcessSummary(os.Stdout, result)

	if dryRun {
		fmt.Println("\nDry run, nothing was created in QuickBooks.")
		return nil
	}
	if result.Summary.MappedJobsites == 0 {
		fmt.Println("\nNo mapped jobsites to invoice.")
		return nil
	}

	client := newQBOClient()

	var history pipeline.HistoryRecorder
	if conn != nil {
		history = db.NewHistoryStore(conn)
	}

	batch := p.SubmitInvoices(ctx, client, history, result.Invoices, result.Mappings, terms)

	fmt.Println()
	report.WriteBatchResult(os.Stdout, batch)

	if len(batch.Errors) > 0 {
		return fmt.Errorf("%d invoice(s) failed", len(batch.Errors))
	}
	return nil
}

// processInputs opens the named export files and runs them through the
// pipeline.
func processInputs(ctx context.Context, p *pipeline.Pipeline, paths []string, invoiceDate string) (*pipeline.ProcessResult, error) {
	var files []pipeline.InputFile
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		files = append(files, pipeline.InputFile{Name: filepath.Base(path), Reader: f})
	}
	return p.ProcessFiles(ctx, files, invoiceDate)
}
