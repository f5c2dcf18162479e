package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/mawc/internal/calculation"
	"github.com/rgehrsitz/mawc/internal/config"
	"github.com/rgehrsitz/mawc/internal/domain"
	"github.com/rgehrsitz/mawc/internal/output"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mawc %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mawc",
		Short: "Massachusetts Workers' Compensation benefit calculator",
		Long: "Calculates weekly benefit rates under M.G.L. c.152 §§31, 34, 34A and 35, " +
			"prorates payment periods into weeks, and tracks remaining entitlement " +
			"against the statutory and combined limits.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("settings", config.DefaultSettingsFile, "TOML settings file supplying flag defaults")

	root.AddCommand(
		calculateCmd(),
		entitlementCmd(),
		validateCmd(),
		ratesCmd(),
		weeksCmd(),
		ledgerCmd(),
		serveCmd(),
		versionCmd(),
	)
	return root
}

// loadSettings reads the settings file. The default file is optional; one
// named explicitly with --settings must exist.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	path, _ := cmd.Flags().GetString("settings")
	return config.LoadSettings(path, cmd.Flags().Changed("settings"))
}

// stringFlag returns the flag value when set on the command line, otherwise fallback.
func stringFlag(cmd *cobra.Command, name, fallback string) string {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	return fallback
}

// decimalFlag parses a decimal flag. An unset or empty flag yields nil.
func decimalFlag(cmd *cobra.Command, name string) (*decimal.Decimal, error) {
	raw, _ := cmd.Flags().GetString(name)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q: %w", name, raw, err)
	}
	return &v, nil
}

// dateFlag parses a YYYY-MM-DD flag. An unset flag yields nil.
func dateFlag(cmd *cobra.Command, name string) (*domain.Date, error) {
	raw, _ := cmd.Flags().GetString(name)
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return &d, nil
}

func loadRateTable(cmd *cobra.Command, settings config.Settings) (domain.RateTable, error) {
	path := stringFlag(cmd, "rates", settings.RatesFile)
	table, err := config.NewInputParser().LoadRateTable(path)
	if err != nil {
		return domain.RateTable{}, err
	}
	return *table, nil
}

func lookupFormatter(cmd *cobra.Command, settings config.Settings) (output.Formatter, error) {
	return output.LookupFormatter(stringFlag(cmd, "format", settings.Format))
}

func newEngine(cmd *cobra.Command) *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		engine.SetLogger(simpleCLILogger{})
	}
	return engine
}

func addRatesFlag(cmd *cobra.Command) {
	cmd.Flags().String("rates", "", "Rate table JSON file (default from settings)")
}

func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "", fmt.Sprintf("Output format: %s (default from settings)",
		strings.Join(output.AvailableFormatterNames(), ", ")))
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
