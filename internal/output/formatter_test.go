package output

import (
	"bytes"
	"encoding/csv"
	"os"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/mawc/internal/calculation"
	"github.com/rgehrsitz/mawc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestReport(t *testing.T) *domain.ClaimReport {
	t.Helper()
	ec := decimal.NewFromInt(600)
	end := domain.MustParseDate("2025-05-03")
	claim := &domain.Claim{
		Claimant:        "Jane Doe",
		AWW:             decimal.NewFromInt(1000),
		DateOfInjury:    domain.MustParseDate("2024-11-01"),
		EarningCapacity: &ec,
		Ledger: []domain.LedgerEntry{
			{
				ID:          "ttd-1",
				Type:        domain.BenefitTTD,
				Start:       domain.MustParseDate("2024-11-02"),
				End:         &end,
				AWWUsed:     decimal.NewFromInt(1000),
				Weeks:       decimal.NewFromInt(26),
				RawWeekly:   decimal.NewFromInt(600),
				FinalWeekly: decimal.NewFromInt(600),
				DollarsPaid: decimal.NewFromInt(15600),
			},
		},
	}
	table := domain.RateTable{Rates: []domain.RateTableRow{{
		EffectiveFrom: domain.MustParseDate("2024-10-01"),
		EffectiveTo:   domain.MustParseDate("2025-09-30"),
		StateMin:      decimal.RequireFromString("365.83"),
		StateMax:      decimal.RequireFromString("1829.13"),
	}}}

	engine := calculation.NewCalculationEngine()
	engine.Now = func() time.Time { return time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC) }
	report, err := engine.Evaluate(claim, table)
	require.NoError(t, err)
	return report
}

func TestConsoleFormatter_Format(t *testing.T) {
	output, err := ConsoleFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)

	content := string(output)
	assert.Contains(t, content, "MASSACHUSETTS WORKERS' COMPENSATION BENEFIT SUMMARY", "Should have header")
	assert.Contains(t, content, "Claimant:             Jane Doe")
	assert.Contains(t, content, "Average Weekly Wage:  $1000.00")
	assert.Contains(t, content, "state minimum $365.83, state maximum $1829.13")
	assert.Contains(t, content, "raised_to_min", "Should show the applied rule")
	assert.Contains(t, content, "$365.83")
	assert.Contains(t, content, "shares one limit", "Should flag the shared §35 pool")
	assert.Contains(t, content, "remaining 338", "Should show the 7-year pool")
	assert.Contains(t, content, "Total Paid:                          $15600.00")
	assert.Contains(t, content, "ttd-1")
}

func TestConsoleFormatter_LifeBenefitsAndEmptyLedger(t *testing.T) {
	report := buildTestReport(t)
	report.Ledger = nil

	output, err := ConsoleFormatter{}.Format(report)
	require.NoError(t, err)

	content := string(output)
	assert.Contains(t, content, "No payments recorded.")
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "Permanent & Total (§34A)") && strings.Contains(line, "life") {
			return
		}
	}
	t.Errorf("expected a life row for §34A in:\n%s", content)
}

func TestConsoleFormatter_FormatWeeks(t *testing.T) {
	weeks, err := calculation.WeeksBetween(domain.MustParseDate("2024-11-01"), domain.MustParseDate("2024-11-04"), domain.WeekModeDays)
	require.NoError(t, err)

	output, err := ConsoleFormatter{}.FormatWeeks(domain.MustParseDate("2024-11-01"), domain.MustParseDate("2024-11-04"), domain.WeekModeDays, weeks)
	require.NoError(t, err)
	assert.Contains(t, string(output), "Weeks:             0.4286")
	assert.Contains(t, string(output), "Days:              3")
}

func TestJSONFormatter_Format(t *testing.T) {
	output, err := JSONFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(output, &decoded))

	assert.Equal(t, "2024-11-01", decoded["date_of_injury"])
	assert.Contains(t, decoded, "rates")
	assert.Contains(t, decoded, "entitlements")

	ents := decoded["entitlements"].(map[string]any)
	combined := ents["combined_usage"].(map[string]any)
	assert.Equal(t, float64(364), combined["max_weeks"])
}

func TestJSONFormatter_FormatRates(t *testing.T) {
	report := buildTestReport(t)
	output, err := JSONFormatter{}.FormatRates(report.RatePeriod, report.Rates, report.Skipped)
	require.NoError(t, err)

	content := string(output)
	assert.Contains(t, content, `"rate_period"`)
	assert.Contains(t, content, `"applied_rule": "raised_to_min"`)
	assert.NotContains(t, content, `"skipped"`, "empty skipped list is omitted")
}

func TestCSVFormatter_Format(t *testing.T) {
	output, err := CSVFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(output)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1+len(domain.AllBenefitTypes))

	assert.Equal(t, "Type", records[0][0])
	assert.Equal(t, []string{"34", "TTD", "600.00", "600.00", "unchanged", "156", "26", "130", "78000.00", ""}, records[1])
	assert.Equal(t, "35", records[3][9], "TPD_EC shares its limit with TPD")
	assert.Equal(t, "", records[4][5], "life benefits have no maximum")
}

func TestCSVFormatter_FormatEntitlements(t *testing.T) {
	report := buildTestReport(t)
	output, err := CSVFormatter{}.FormatEntitlements(report.Entitlements)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(output)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1+len(domain.AllBenefitTypes))
	assert.Equal(t, "TPD", records[2][1])
}

func TestFormatterNames(t *testing.T) {
	tests := []struct {
		name     string
		lookup   string
		expected string
	}{
		{name: "console", lookup: "console", expected: "console"},
		{name: "case insensitive", lookup: "JSON", expected: "json"},
		{name: "csv", lookup: "csv", expected: "csv"},
		{name: "alias", lookup: "text", expected: "console"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := GetFormatterByName(tt.lookup)
			require.NotNil(t, f)
			assert.Equal(t, tt.expected, f.Name())
		})
	}

	assert.Nil(t, GetFormatterByName("html"), "Should return nil for an unknown name")
	_, err := LookupFormatter("html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "console, json, csv")

	assert.Equal(t, []string{"console", "json", "csv"}, AvailableFormatterNames())
	assert.Equal(t, []string{"table", "text"}, AvailableFormatAliases())
}

func TestWriteFormatted(t *testing.T) {
	tmpDir := t.TempDir()
	originalDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	defer os.Chdir(originalDir)

	f := CSVFormatter{}
	filename, err := WriteFormatted(f, buildTestReport(t), FileExtension(f))
	require.NoError(t, err)

	assert.Contains(t, filename, "mawc_report_", "Should have correct prefix")
	assert.True(t, strings.HasSuffix(filename, ".csv"), "Should have correct extension")

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "Type,Name"))
}
