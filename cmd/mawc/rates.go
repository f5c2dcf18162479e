package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/mawc/internal/calculation"
	"github.com/rgehrsitz/mawc/internal/domain"
)

func ratesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Calculate the weekly rate of every benefit type",
		Long: "Calculates raw and final weekly rates for §§34, 35, 35 earning capacity, 34A and 31 " +
			"using the state minimum and maximum in effect on the date of injury. " +
			"The earning-capacity rate is skipped when --ec is not given.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			aww, err := decimalFlag(cmd, "aww")
			if err != nil {
				return err
			}
			if aww == nil {
				return fmt.Errorf("--aww is required")
			}
			doi, err := dateFlag(cmd, "injury-date")
			if err != nil {
				return err
			}
			if doi == nil {
				return fmt.Errorf("--injury-date is required")
			}
			ec, err := decimalFlag(cmd, "ec")
			if err != nil {
				return err
			}

			table, err := loadRateTable(cmd, settings)
			if err != nil {
				return err
			}
			f, err := lookupFormatter(cmd, settings)
			if err != nil {
				return err
			}

			period, err := calculation.GetStateMinMax(*doi, table.Rates)
			if err != nil {
				return err
			}
			rates, skipped, err := calculation.CalculateAllRates(*aww, calculation.RateOptions{
				EarningCapacity: ec,
				DateOfInjury:    *doi,
				StateTable:      table.Rates,
			})
			if err != nil {
				return err
			}

			data, err := f.FormatRates(period, rates.Ordered(), skipped)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().String("aww", "", "Average weekly wage")
	cmd.Flags().String("injury-date", "", "Date of injury YYYY-MM-DD")
	cmd.Flags().String("ec", "", "Earning capacity for the §35 earning-capacity rate")
	addRatesFlag(cmd)
	addFormatFlag(cmd)
	return cmd
}

func weeksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weeks [start] [end]",
		Short: "Convert a date interval into benefit weeks",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			start, err := domain.ParseDate(args[0])
			if err != nil {
				return fmt.Errorf("invalid start: %w", err)
			}
			end, err := domain.ParseDate(args[1])
			if err != nil {
				return fmt.Errorf("invalid end: %w", err)
			}
			mode, err := calculation.ParseWeekMode(stringFlag(cmd, "mode", settings.WeekMode))
			if err != nil {
				return err
			}
			f, err := lookupFormatter(cmd, settings)
			if err != nil {
				return err
			}

			weeks, err := calculation.WeeksBetween(start, end, mode)
			if err != nil {
				return err
			}
			data, err := f.FormatWeeks(start, end, mode, weeks)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().String("mode", "", "Proration mode: days or calendar (default from settings)")
	addFormatFlag(cmd)
	return cmd
}
