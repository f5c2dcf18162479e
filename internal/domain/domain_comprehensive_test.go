package domain

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    Date
		expectError bool
	}{
		{name: "ISO date", input: "2024-11-01", expected: NewDate(2024, time.November, 1)},
		{name: "padded", input: "  2025-09-30 ", expected: NewDate(2025, time.September, 30)},
		{name: "RFC 3339 keeps calendar date", input: "2024-10-01T13:45:00-04:00", expected: NewDate(2024, time.October, 1)},
		{name: "US format rejected", input: "11/01/2024", expectError: true},
		{name: "garbage rejected", input: "yesterday", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestDate_Arithmetic(t *testing.T) {
	start := MustParseDate("2024-02-26")

	assert.Equal(t, 7, start.DaysUntil(MustParseDate("2024-03-04")), "leap-year February spans 7 days")
	assert.Equal(t, -3, start.DaysUntil(MustParseDate("2024-02-23")))
	assert.Equal(t, "2024-03-01", start.AddDays(4).String())
	assert.Equal(t, time.Monday, start.Weekday())
	assert.True(t, start.Before(start.AddDays(1)))
	assert.True(t, start.AddDays(1).After(start))
	assert.Equal(t, "", Date{}.String(), "zero date renders empty")
}

func TestDate_DaysUntilLongSpans(t *testing.T) {
	start := MustParseDate("1600-01-01")
	end := MustParseDate("2024-01-01")

	assert.Equal(t, 154863, start.DaysUntil(end), "spans beyond time.Duration's range stay exact")
	assert.Equal(t, -154863, end.DaysUntil(start))
}

func TestDate_JSONUsesISOString(t *testing.T) {
	data, err := json.Marshal(struct {
		D Date `json:"d"`
	}{D: NewDate(2024, time.November, 1)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"2024-11-01"}`, string(data))
}

func TestParseBenefitType(t *testing.T) {
	tests := []struct {
		input    string
		expected BenefitType
	}{
		{"34", BenefitTTD},
		{"TTD", BenefitTTD},
		{"35", BenefitTPD},
		{"35ec", BenefitTPDEC},
		{"TPD_EC", BenefitTPDEC},
		{"34A", BenefitPermanentTotal},
		{"34a", BenefitPermanentTotal},
		{"31", BenefitDependent},
		{"dependent", BenefitDependent},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBenefitType(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.True(t, got.Valid())
		})
	}

	_, err := ParseBenefitType("36")
	assert.Error(t, err, "section 36 is not a weekly indemnity benefit")
	assert.False(t, BenefitType("36").Valid())
}

func TestBenefitType_Labels(t *testing.T) {
	for _, bt := range AllBenefitTypes {
		assert.NotEqual(t, string(bt), bt.Label(), "every known type has a descriptive label")
		assert.NotEmpty(t, bt.Name())
	}
	assert.Len(t, AllBenefitTypes, 5)
}

func TestClaim_DecodeYAML(t *testing.T) {
	doc := `
claimant: Jane Roe
aww: 1000
date_of_injury: 2024-11-01
earning_capacity: "600.50"
ledger:
  - id: a1
    type: "34"
    start: 2024-11-02
    end: 2025-05-02
    aww_used: 1000
    weeks: 26
    raw_weekly: 600
    final_weekly: 600
    dollars_paid: 15600
  - id: a2
    type: 35ec
    start: 2025-05-03
    aww_used: 1000
    ec_used: 600
    weeks: 4
    raw_weekly: 240
    final_weekly: 365.83
    dollars_paid: 1463.32
`
	var claim Claim
	require.NoError(t, yaml.Unmarshal([]byte(doc), &claim))

	assert.Equal(t, "Jane Roe", claim.Claimant)
	assert.True(t, claim.AWW.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, "2024-11-01", claim.DateOfInjury.String())
	require.NotNil(t, claim.EarningCapacity)
	assert.Equal(t, "600.5", claim.EarningCapacity.String())
	require.Len(t, claim.Ledger, 2)

	assert.Equal(t, BenefitTTD, claim.Ledger[0].Type)
	assert.False(t, claim.Ledger[0].IsOngoing())
	assert.Equal(t, "2025-05-02", claim.Ledger[0].End.String())

	assert.Equal(t, BenefitTPDEC, claim.Ledger[1].Type)
	assert.True(t, claim.Ledger[1].IsOngoing())
	assert.Equal(t, "365.83", claim.Ledger[1].FinalWeekly.String())
}

func TestClaim_DecodeYAMLRejectsUnknownType(t *testing.T) {
	doc := `
aww: 1000
date_of_injury: 2024-11-01
ledger:
  - id: x
    type: "99"
    start: 2024-11-02
`
	var claim Claim
	assert.Error(t, yaml.Unmarshal([]byte(doc), &claim))
}

func TestClaim_Defaults(t *testing.T) {
	claim := &Claim{}
	now := time.Date(2025, time.March, 3, 22, 15, 0, 0, time.UTC)

	assert.Equal(t, WeekModeDays, claim.EffectiveWeekMode())
	assert.Equal(t, "2025-03-03", claim.EvaluationDate(now).String())

	asOf := MustParseDate("2025-01-15")
	claim.AsOf = &asOf
	claim.WeekMode = WeekModeCalendar
	assert.Equal(t, WeekModeCalendar, claim.EffectiveWeekMode())
	assert.Equal(t, "2025-01-15", claim.EvaluationDate(now).String())
}

func TestRateTable_Validate(t *testing.T) {
	valid := RateTableRow{
		EffectiveFrom: MustParseDate("2024-10-01"),
		EffectiveTo:   MustParseDate("2025-09-30"),
		StateMin:      decimal.RequireFromString("365.83"),
		StateMax:      decimal.RequireFromString("1829.13"),
	}

	tests := []struct {
		name        string
		mutate      func(r *RateTableRow)
		expectError bool
		description string
	}{
		{name: "valid", mutate: func(r *RateTableRow) {}, description: "a well-formed row passes"},
		{name: "missing from", mutate: func(r *RateTableRow) { r.EffectiveFrom = Date{} }, expectError: true, description: "dates are required"},
		{name: "reversed", mutate: func(r *RateTableRow) { r.EffectiveTo = MustParseDate("2024-09-30") }, expectError: true, description: "to must not precede from"},
		{name: "zero min", mutate: func(r *RateTableRow) { r.StateMin = decimal.Zero }, expectError: true, description: "min must be positive"},
		{name: "max not above min", mutate: func(r *RateTableRow) { r.StateMax = r.StateMin }, expectError: true, description: "max must exceed min"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := valid
			tt.mutate(&row)
			err := RateTable{Rates: []RateTableRow{row}}.Validate()
			if tt.expectError {
				assert.Error(t, err, tt.description)
			} else {
				assert.NoError(t, err, tt.description)
			}
		})
	}

	assert.Error(t, RateTable{}.Validate(), "empty table is invalid")
}

func TestRateTable_SortedDoesNotReorderSource(t *testing.T) {
	later := RateTableRow{EffectiveFrom: MustParseDate("2024-10-01"), EffectiveTo: MustParseDate("2025-09-30")}
	earlier := RateTableRow{EffectiveFrom: MustParseDate("2023-10-01"), EffectiveTo: MustParseDate("2024-09-30")}
	table := RateTable{Rates: []RateTableRow{later, earlier}}

	sorted := table.Sorted()

	assert.Equal(t, "2023-10-01", sorted[0].EffectiveFrom.String())
	assert.Equal(t, "2024-10-01", table.Rates[0].EffectiveFrom.String(), "source order is preserved")
	assert.True(t, later.Contains(MustParseDate("2025-09-30")), "effective_to is inclusive")
	assert.False(t, later.Contains(MustParseDate("2025-10-01")))
}
