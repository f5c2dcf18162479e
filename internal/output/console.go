package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/mawc/internal/domain"
)

const (
	ruleWidth  = 92
	labelWidth = 44
)

// ConsoleFormatter renders a plain-text report for terminals.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.ClaimReport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", ruleWidth))
	fmt.Fprintln(&buf, "MASSACHUSETTS WORKERS' COMPENSATION BENEFIT SUMMARY")
	fmt.Fprintln(&buf, strings.Repeat("=", ruleWidth))
	if report.Claimant != "" {
		fmt.Fprintf(&buf, "Claimant:             %s\n", report.Claimant)
	}
	fmt.Fprintf(&buf, "Average Weekly Wage:  %s\n", FormatCurrency(report.AWW))
	fmt.Fprintf(&buf, "Date of Injury:       %s\n", report.DateOfInjury)
	fmt.Fprintf(&buf, "Earning Capacity:     %s\n", formatOptionalCurrency(report.EarningCapacity))
	fmt.Fprintf(&buf, "Evaluated As Of:      %s (%s weeks)\n", report.AsOf, report.WeekMode)
	fmt.Fprintln(&buf)

	writeRates(&buf, report.RatePeriod, report.Rates, report.Skipped)
	fmt.Fprintln(&buf)
	writeEntitlements(&buf, report.Entitlements)
	fmt.Fprintln(&buf)
	writeLedger(&buf, report.Ledger)

	return buf.Bytes(), nil
}

func (c ConsoleFormatter) FormatRates(period domain.StateMinMax, rates []domain.WeeklyRateResult, skipped []domain.SkippedRate) ([]byte, error) {
	var buf bytes.Buffer
	writeRates(&buf, period, rates, skipped)
	return buf.Bytes(), nil
}

func (c ConsoleFormatter) FormatEntitlements(summary domain.EntitlementSummary) ([]byte, error) {
	var buf bytes.Buffer
	writeEntitlements(&buf, summary)
	return buf.Bytes(), nil
}

func (c ConsoleFormatter) FormatWeeks(start, end domain.Date, mode domain.WeekMode, weeks domain.WeekCalculation) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Interval:          %s to %s (%s)\n", start, end, mode)
	fmt.Fprintf(&buf, "Days:              %d\n", weeks.Days)
	fmt.Fprintf(&buf, "Weeks:             %s\n", FormatWeeks(weeks.WeeksDecimal))
	fmt.Fprintf(&buf, "Full Weeks:        %d\n", weeks.FullWeeks)
	fmt.Fprintf(&buf, "Fractional Weeks:  %s\n", FormatWeeks(weeks.FractionalWeeks))
	return buf.Bytes(), nil
}

func writeRates(buf *bytes.Buffer, period domain.StateMinMax, rates []domain.WeeklyRateResult, skipped []domain.SkippedRate) {
	fmt.Fprintln(buf, "WEEKLY RATES")
	fmt.Fprintln(buf, strings.Repeat("-", ruleWidth))
	fmt.Fprintf(buf, "Rate period %s to %s: state minimum %s, state maximum %s\n",
		period.EffectiveFrom, period.EffectiveTo, FormatCurrency(period.StateMin), FormatCurrency(period.StateMax))
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "%-*s %12s %12s  %s\n", labelWidth, "Benefit", "Raw", "Final", "Rule")
	for _, r := range rates {
		fmt.Fprintf(buf, "%-*s %12s %12s  %s\n", labelWidth, r.Type.Label(),
			FormatCurrency(r.RawWeekly), FormatCurrency(r.FinalWeekly), r.AppliedRule)
	}
	for _, s := range skipped {
		fmt.Fprintf(buf, "%-*s %12s %12s  %s\n", labelWidth, s.Type.Label(), "-", "-", s.Reason)
	}
}

func writeEntitlements(buf *bytes.Buffer, summary domain.EntitlementSummary) {
	fmt.Fprintln(buf, "REMAINING ENTITLEMENTS")
	fmt.Fprintln(buf, strings.Repeat("-", ruleWidth))
	fmt.Fprintf(buf, "%-*s %6s %10s %10s %14s\n", labelWidth, "Benefit", "Max", "Used", "Remaining", "$ Remaining")
	shared := false
	for _, e := range summary.PerType {
		label := e.Type.Label()
		if len(e.SharesLimitWith) > 0 {
			label += " *"
			shared = true
		}
		fmt.Fprintf(buf, "%-*s %6s %10s %10s %14s\n", labelWidth, label,
			formatMaxWeeks(e.StatutoryMaxWeeks), FormatWeeks(e.WeeksUsed),
			formatOptionalWeeks(e.WeeksRemaining), formatOptionalCurrency(e.DollarsRemaining))
	}
	if shared {
		fmt.Fprintln(buf, "* shares one limit; remaining weeks are not additive")
	}
	fmt.Fprintln(buf)

	c35 := summary.Combined35Usage
	fmt.Fprintf(buf, "Combined §35 limit (%d weeks):      used %s, remaining %s\n",
		c35.MaxWeeks, FormatWeeks(c35.WeeksUsed), FormatWeeks(c35.WeeksRemaining))
	c := summary.CombinedUsage
	fmt.Fprintf(buf, "Combined 7-year limit (%d weeks):   used %s, remaining %s\n",
		c.MaxWeeks, FormatWeeks(c.WeeksUsed), FormatWeeks(c.WeeksRemaining))
	fmt.Fprintf(buf, "Total Paid:                          %s\n", FormatCurrency(summary.TotalDollarsPaid))
	fmt.Fprintf(buf, "Total Remaining (at current rates):  %s\n", FormatCurrency(summary.TotalDollarsRemaining))
}

func writeLedger(buf *bytes.Buffer, ledger []domain.LedgerEntry) {
	fmt.Fprintln(buf, "PAYMENT LEDGER")
	fmt.Fprintln(buf, strings.Repeat("-", ruleWidth))
	if len(ledger) == 0 {
		fmt.Fprintln(buf, "No payments recorded.")
		return
	}
	fmt.Fprintf(buf, "%-14s %-5s %-10s %-10s %10s %12s %14s\n", "ID", "Type", "Start", "End", "Weeks", "Weekly", "Paid")
	for _, e := range ledger {
		end := "ongoing"
		if !e.IsOngoing() {
			end = e.End.String()
		}
		fmt.Fprintf(buf, "%-14s %-5s %-10s %-10s %10s %12s %14s\n", truncate(e.ID, 14), e.Type, e.Start, end,
			FormatWeeks(e.Weeks), FormatCurrency(e.FinalWeekly), FormatCurrency(e.DollarsPaid))
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
