package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/mawc/internal/config"
	"github.com/rgehrsitz/mawc/internal/domain"
	"github.com/rgehrsitz/mawc/internal/output"
)

// evaluateClaim loads a claim file and evaluates it against the rate table
// named by --rates or the settings.
func evaluateClaim(cmd *cobra.Command, claimFile string) (*domain.ClaimReport, config.Settings, error) {
	settings, err := loadSettings(cmd)
	if err != nil {
		return nil, settings, err
	}

	claim, err := config.NewInputParser().LoadClaim(claimFile)
	if err != nil {
		return nil, settings, err
	}
	if claim.WeekMode == "" {
		claim.WeekMode = domain.WeekMode(settings.WeekMode)
	}
	if cmd.Flags().Lookup("as-of") != nil {
		asOf, err := dateFlag(cmd, "as-of")
		if err != nil {
			return nil, settings, err
		}
		if asOf != nil {
			claim.AsOf = asOf
		}
	}

	table, err := loadRateTable(cmd, settings)
	if err != nil {
		return nil, settings, err
	}

	report, err := newEngine(cmd).Evaluate(claim, table)
	if err != nil {
		return nil, settings, fmt.Errorf("failed to evaluate %s: %w", claimFile, err)
	}
	return report, settings, nil
}

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [claim-file]",
		Short: "Calculate weekly rates and remaining entitlements for a claim",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, settings, err := evaluateClaim(cmd, args[0])
			if err != nil {
				return err
			}
			f, err := lookupFormatter(cmd, settings)
			if err != nil {
				return err
			}

			if err := output.WriteReport(cmd.OutOrStdout(), f, report); err != nil {
				return err
			}

			if save, _ := cmd.Flags().GetBool("save"); save {
				filename, err := output.WriteFormatted(f, report, output.FileExtension(f))
				if err != nil {
					return fmt.Errorf("failed to save report: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Report saved to %s\n", filename)
			}
			return nil
		},
	}
	addRatesFlag(cmd)
	addFormatFlag(cmd)
	cmd.Flags().String("as-of", "", "Evaluation date YYYY-MM-DD (overrides the claim's as_of)")
	cmd.Flags().Bool("debug", false, "Log rate lookups and applied rules")
	cmd.Flags().Bool("save", false, "Also write the report to a timestamped file")
	return cmd
}

func entitlementCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entitlement [claim-file]",
		Short: "Show remaining entitlements for a claim",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, settings, err := evaluateClaim(cmd, args[0])
			if err != nil {
				return err
			}
			f, err := lookupFormatter(cmd, settings)
			if err != nil {
				return err
			}
			data, err := f.FormatEntitlements(report.Entitlements)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	addRatesFlag(cmd)
	addFormatFlag(cmd)
	cmd.Flags().String("as-of", "", "Evaluation date YYYY-MM-DD (overrides the claim's as_of)")
	cmd.Flags().Bool("debug", false, "Log rate lookups and applied rules")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [claim-file]",
		Short: "Validate a claim file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			claim, err := config.NewInputParser().LoadClaim(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Claim file %s is valid (%d ledger entries)\n", args[0], len(claim.Ledger))
			return nil
		},
	}
}
