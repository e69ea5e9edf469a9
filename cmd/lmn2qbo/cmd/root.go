// Package cmd provides CLI commands for lmn2qbo.
package cmd

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/skilledgarden/lmn2qbo/internal/config"
	"github.com/skilledgarden/lmn2qbo/internal/db"
	"github.com/skilledgarden/lmn2qbo/internal/lmn"
	"github.com/skilledgarden/lmn2qbo/internal/logger"
	"github.com/skilledgarden/lmn2qbo/internal/mapping"
	"github.com/skilledgarden/lmn2qbo/internal/pipeline"
)

var (
	envFile     string
	mappingFile string

	cfg *config.Config
	log *zap.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "lmn2qbo",
	Short: "Turn LMN timesheet exports into QuickBooks Online draft invoices",
	Long: `lmn2qbo reads LMN time data and service data exports, computes billable
hours per jobsite (allocating drive time across the day's jobsites), composes
invoices with the direct payment fee, and creates them as drafts in
QuickBooks Online.

Example:
  lmn2qbo preview time_data.csv service_data.xlsx
  lmn2qbo process time_data.csv service_data.xlsx --invoice-date 2026-08-15
  lmn2qbo mapping set 12345 67`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(envFile)
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		if mappingFile != "" {
			cfg.MappingFile = mappingFile
		}
		log, err = logger.New(cfg.Logging)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

// Execute runs the root command. Called by main.main().
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "path to .env file (default is ./.env when present)")
	rootCmd.PersistentFlags().StringVar(&mappingFile, "mapping", "", "customer mapping CSV (overrides CUSTOMER_MAPPING_FILE)")

	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(mappingCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(customersCmd)
}

// openDatabase connects to Postgres and ensures the schema exists. Returns
// nil without error when no DATABASE_URL is configured.
func openDatabase(cmd *cobra.Command) (*sql.DB, error) {
	if !cfg.HasDatabase() {
		return nil, nil
	}
	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := db.EnsureSchema(cmd.Context(), conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("preparing database schema: %w", err)
	}
	return conn, nil
}

func newPipeline(conn *sql.DB) *pipeline.Pipeline {
	return pipeline.New(newResolver(conn), log)
}

// fileOnlyResolver resolves mappings from the override CSV alone, for
// commands that must not touch the network or the database.
func fileOnlyResolver() *mapping.Resolver {
	return mapping.NewResolver(nil, nil, cfg.MappingFile, log)
}

// newResolver builds the mapping resolver from whatever is configured: the
// LMN API as the base layer when credentials exist, Postgres overrides when
// a database is connected, and the mapping file always.
func newResolver(conn *sql.DB) *mapping.Resolver {
	var base mapping.Provider
	if cfg.HasLMN() {
		base = lmn.NewClient(lmn.ClientConfig{
			APIURL: cfg.LMN.APIURL,
			Token:  cfg.LMN.Token,
		})
	}
	var store mapping.OverrideStore
	if conn != nil {
		store = db.NewOverrideStore(conn)
	}
	return mapping.NewResolver(base, store, cfg.MappingFile, log)
}
