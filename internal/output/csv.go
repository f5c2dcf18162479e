package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/rgehrsitz/mawc/internal/domain"
)

// CSVFormatter renders one row per benefit type. A full report joins the
// rate and entitlement columns on the type.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *domain.ClaimReport) ([]byte, error) {
	header := []string{
		"Type", "Name", "RawWeekly", "FinalWeekly", "AppliedRule",
		"StatutoryMaxWeeks", "WeeksUsed", "WeeksRemaining", "DollarsRemaining", "SharesLimitWith",
	}
	var rows [][]string
	for _, e := range report.Entitlements.PerType {
		raw, final, rule := "", "", ""
		if r, ok := report.Rate(e.Type); ok {
			raw, final, rule = r.RawWeekly.StringFixed(2), r.FinalWeekly.StringFixed(2), string(r.AppliedRule)
		}
		rows = append(rows, append([]string{string(e.Type), e.Type.Name(), raw, final, rule}, entitlementColumns(e)...))
	}
	return writeCSV(header, rows)
}

func (c CSVFormatter) FormatRates(_ domain.StateMinMax, rates []domain.WeeklyRateResult, _ []domain.SkippedRate) ([]byte, error) {
	header := []string{"Type", "Name", "RawWeekly", "FinalWeekly", "AppliedRule", "StateMin", "StateMax"}
	rows := make([][]string, 0, len(rates))
	for _, r := range rates {
		rows = append(rows, []string{
			string(r.Type),
			r.Type.Name(),
			r.RawWeekly.StringFixed(2),
			r.FinalWeekly.StringFixed(2),
			string(r.AppliedRule),
			r.StateMin.StringFixed(2),
			r.StateMax.StringFixed(2),
		})
	}
	return writeCSV(header, rows)
}

func (c CSVFormatter) FormatEntitlements(summary domain.EntitlementSummary) ([]byte, error) {
	header := []string{"Type", "Name", "StatutoryMaxWeeks", "WeeksUsed", "WeeksRemaining", "DollarsRemaining", "SharesLimitWith"}
	rows := make([][]string, 0, len(summary.PerType))
	for _, e := range summary.PerType {
		rows = append(rows, append([]string{string(e.Type), e.Type.Name()}, entitlementColumns(e)...))
	}
	return writeCSV(header, rows)
}

func (c CSVFormatter) FormatWeeks(start, end domain.Date, mode domain.WeekMode, weeks domain.WeekCalculation) ([]byte, error) {
	header := []string{"Start", "End", "Mode", "Days", "WeeksDecimal", "FullWeeks", "FractionalWeeks"}
	row := []string{
		start.String(),
		end.String(),
		string(mode),
		strconv.Itoa(weeks.Days),
		weeks.WeeksDecimal.String(),
		strconv.Itoa(weeks.FullWeeks),
		weeks.FractionalWeeks.String(),
	}
	return writeCSV(header, [][]string{row})
}

func entitlementColumns(e domain.RemainingEntitlement) []string {
	maxWeeks, remaining, dollars := "", "", ""
	if e.StatutoryMaxWeeks != nil {
		maxWeeks = strconv.Itoa(*e.StatutoryMaxWeeks)
	}
	if e.WeeksRemaining != nil {
		remaining = e.WeeksRemaining.String()
	}
	if e.DollarsRemaining != nil {
		dollars = e.DollarsRemaining.StringFixed(2)
	}
	shares := make([]string, len(e.SharesLimitWith))
	for i, bt := range e.SharesLimitWith {
		shares[i] = string(bt)
	}
	return []string{maxWeeks, e.WeeksUsed.String(), remaining, dollars, strings.Join(shares, ";")}
}

func writeCSV(header []string, rows [][]string) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
