package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/mawc/internal/calculation"
	"github.com/rgehrsitz/mawc/internal/config"
	"github.com/rgehrsitz/mawc/internal/domain"
	"github.com/rgehrsitz/mawc/internal/output"
)

func ledgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Manage a claim's payment ledger",
	}
	cmd.AddCommand(ledgerAddCmd())
	return cmd
}

func ledgerAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [claim-file]",
		Short: "Price a payment period and append it to the claim's ledger",
		Long: "Computes the weeks and weekly rate of a payment period and appends it to the " +
			"claim file, which is rewritten in its own format. Without --end the period is " +
			"ongoing and is measured up to the claim's as_of date.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			claimFile := args[0]
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			parser := config.NewInputParser()
			claim, err := parser.LoadClaim(claimFile)
			if err != nil {
				return err
			}
			table, err := loadRateTable(cmd, settings)
			if err != nil {
				return err
			}

			in, err := ledgerInputFromFlags(cmd)
			if err != nil {
				return err
			}

			entry, err := newEngine(cmd).PriceLedgerEntry(claim, table, in)
			if err != nil {
				return err
			}
			claim.Ledger = append(claim.Ledger, entry)
			if err := calculation.ValidateLedger(claim.Ledger); err != nil {
				return err
			}
			if err := parser.SaveClaim(claimFile, claim); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added ledger entry %s (section %s): %s weeks at %s/week, %s paid\n",
				entry.ID, entry.Type, output.FormatWeeks(entry.Weeks),
				output.FormatCurrency(entry.FinalWeekly), output.FormatCurrency(entry.DollarsPaid))
			return nil
		},
	}
	cmd.Flags().String("type", "", "Benefit type: 34, 35, 35ec, 34A, 31 (or TTD, TPD, TPD_EC)")
	cmd.Flags().String("start", "", "First day of the payment period YYYY-MM-DD")
	cmd.Flags().String("end", "", "Last day of the payment period; omit for an ongoing period")
	cmd.Flags().String("aww", "", "Average weekly wage (default: the claim's)")
	cmd.Flags().String("ec", "", "Earning capacity for 35ec entries (default: the claim's)")
	cmd.Flags().String("id", "", "Entry id (default: generated)")
	cmd.Flags().String("notes", "", "Free-form notes")
	cmd.Flags().Bool("debug", false, "Log the priced entry")
	addRatesFlag(cmd)
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}

func ledgerInputFromFlags(cmd *cobra.Command) (domain.LedgerInput, error) {
	var in domain.LedgerInput

	rawType, _ := cmd.Flags().GetString("type")
	bt, err := domain.ParseBenefitType(rawType)
	if err != nil {
		return in, err
	}
	in.Type = bt

	start, err := dateFlag(cmd, "start")
	if err != nil {
		return in, err
	}
	if start == nil {
		return in, fmt.Errorf("--start is required")
	}
	in.Start = *start

	if in.End, err = dateFlag(cmd, "end"); err != nil {
		return in, err
	}
	aww, err := decimalFlag(cmd, "aww")
	if err != nil {
		return in, err
	}
	if aww != nil {
		in.AWW = *aww
	}
	if in.EC, err = decimalFlag(cmd, "ec"); err != nil {
		return in, err
	}

	in.ID, _ = cmd.Flags().GetString("id")
	in.Notes, _ = cmd.Flags().GetString("notes")
	return in, nil
}
