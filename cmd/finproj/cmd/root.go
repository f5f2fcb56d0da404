// Package cmd provides the CLI commands for finproj.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/finkit/finproj/internal/calculation"
	"github.com/finkit/finproj/internal/config"
	"github.com/finkit/finproj/internal/domain"
	"github.com/finkit/finproj/internal/locale"
	"github.com/finkit/finproj/internal/logging"
	"github.com/finkit/finproj/internal/output"
)

// Version is set at build time
var Version = "0.1.0"

// rootOptions holds the persistent flags and the settings loaded from them
type rootOptions struct {
	cfgFile   string
	verbose   bool
	locale    string
	format    string
	outputDir string

	app *config.AppConfig
	loc locale.Locale
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "finproj",
		Short: "Project savings, plan retirement and compare fixed-income investments",
		Long: `finproj is a financial projection and comparison engine.

It projects compound savings under up to three rate regimes, plans the
capital needed for retirement, and ranks two fixed-income instruments
after withholding and transaction taxes.

Examples:
  finproj compound --principal "R$ 10.000,00" --contribution 500 --rate 1 --years 5
  finproj retire --income 8000 --percentage 15 --age 30 --retire-at 60 --return 8
  finproj compare --a-rate 110 --b-category LCA --b-rate 92 --months 24
  finproj run scenarios.yaml --format html --output-dir reports
  finproj serve --port 8080`,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is ./"+config.DefaultAppConfigFile+" when present)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVarP(&opts.locale, "locale", "l", "", "locale for parsing and formatting amounts (pt-BR, en-US, es-ES)")
	flags.StringVarP(&opts.format, "format", "f", "console", "output format (console, console-lite, csv, detailed-csv, html, json, yaml, xlsx, all)")
	flags.StringVarP(&opts.outputDir, "output-dir", "o", "", "write the report to files in this directory instead of stdout")

	root.AddCommand(
		newCompoundCmd(opts),
		newRetireCmd(opts),
		newCompareCmd(opts),
		newRunCmd(opts),
		newExampleCmd(opts),
		newServeCmd(opts),
		newInstrumentsCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the CLI
func Execute() error {
	return NewRootCmd().Execute()
}

func (o *rootOptions) init() error {
	app, err := config.LoadApp(o.cfgFile)
	if err != nil {
		return err
	}
	if o.locale != "" {
		app.Locale = o.locale
	}
	loc, err := locale.Lookup(app.Locale)
	if err != nil {
		return err
	}
	if o.verbose {
		app.Logging.Level = "debug"
	}
	if err := logging.Initialize(app.Logging); err != nil {
		logging.Warn("failed to initialize logging, keeping defaults", zap.Error(err))
	}
	o.app = app
	o.loc = loc
	return nil
}

// engine creates a calculation engine for rules logging through zap
func (o *rootOptions) engine(rules domain.CalculationRules) *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngineWithConfig(rules)
	engine.SetLogger(logging.Named("calculation"))
	return engine
}

// emit renders the report to stdout, or to files when an output directory is set
func (o *rootOptions) emit(cmd *cobra.Command, report *domain.Report) error {
	if o.outputDir != "" {
		if err := os.MkdirAll(o.outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		files, err := output.GenerateReport(report, o.format, o.loc, o.outputDir)
		if err != nil {
			return err
		}
		for _, f := range files {
			logging.Debug("report written", zap.String("file", f), zap.String("format", o.format))
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", f)
		}
		return nil
	}

	if output.NormalizeFormatName(o.format) == "all" {
		return errors.New(`format "all" writes several files; set --output-dir`)
	}
	f, err := output.LookupFormatter(o.format, o.loc)
	if err != nil {
		return err
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// runScenario runs a single scenario with the configured rules and emits it
func (o *rootOptions) runScenario(cmd *cobra.Command, scenario domain.Scenario) error {
	report, err := o.engine(o.app.Rules).RunScenarios(cmd.Context(), []domain.Scenario{scenario})
	if err != nil {
		return err
	}
	return o.emit(cmd, report)
}
