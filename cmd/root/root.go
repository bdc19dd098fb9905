// Package root contains the root command for the application
package root

import (
	"github.com/krystal-group/stripe-statements/internal/classifier"
	"github.com/krystal-group/stripe-statements/internal/common"
	"github.com/krystal-group/stripe-statements/internal/companies"
	"github.com/krystal-group/stripe-statements/internal/config"
	"github.com/krystal-group/stripe-statements/internal/currencyutils"
	"github.com/krystal-group/stripe-statements/internal/export"
	"github.com/krystal-group/stripe-statements/internal/fileutils"
	"github.com/krystal-group/stripe-statements/internal/loader"
	"github.com/krystal-group/stripe-statements/internal/logging"
	"github.com/krystal-group/stripe-statements/internal/reconcile"
	"github.com/krystal-group/stripe-statements/internal/statement"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Company string
	Year    int
	Month   int
	Opening string
	Output  string
	Format  string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg holds the resolved application configuration after PersistentPreRun
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "stripe-statements",
		Short: "A CLI tool to reconcile Stripe CSV exports and produce monthly statements.",
		Long: `stripe-statements reads Stripe CSV exports for the registered companies,
classifies the transactions and produces monthly statements and payout
reconciliation reports in JSON, HTML or CSV form.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to stripe-statements!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize and configure logging
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Invalid configuration: %v", err)
			}
			Cfg = cfg
			Log = config.ConfigureLoggingFromConfig(cfg)

			// Set the configured logger for all packages
			loader.SetLogger(Log)
			classifier.SetLogger(Log)
			reconcile.SetLogger(Log)
			statement.SetLogger(Log)
			export.SetLogger(Log)
			companies.SetLogger(Log)
			common.SetLogger(Log)
			currencyutils.SetLogger(Log)
			fileutils.SetLogger(Log)

			// Apply the configured CSV delimiter
			if cfg.CSV.Delimiter != "" {
				common.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])
			}
		},
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Company, "company", "c", "", "Company code (cgge, ki, kt)")
	Cmd.PersistentFlags().IntVarP(&SharedFlags.Year, "year", "y", 0, "Statement year, e.g. 2025")
	Cmd.PersistentFlags().IntVarP(&SharedFlags.Month, "month", "m", 0, "Statement month (1-12)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Opening, "opening", "", "Opening balance override, e.g. 554.77")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (default: stdout)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Format, "format", "f", "json", "Output format: json, html, pdf or csv")
}

// GetLogrusAdapter returns the shared logger wrapped in the Logger interface
func GetLogrusAdapter() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(Log)
}

// Components builds the loader and engine from the resolved configuration.
func Components() (*loader.Loader, *reconcile.Engine, *companies.Registry, error) {
	registryFile := ""
	configuredDir := ""
	if Cfg != nil {
		registryFile = Cfg.Companies.RegistryFile
		configuredDir = Cfg.Data.Directory
	}

	registry, err := companies.Load(registryFile)
	if err != nil {
		return nil, nil, nil, err
	}

	dir := loader.ResolveDataDir(configuredDir)
	l := loader.New(dir, registry)
	return l, reconcile.NewEngine(l), registry, nil
}
