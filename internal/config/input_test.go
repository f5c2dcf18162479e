package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/mawc/internal/calculation"
	"github.com/rgehrsitz/mawc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const claimYAML = `claimant: Jane Doe
aww: 1000
date_of_injury: 2024-11-01
earning_capacity: 600
as_of: 2025-05-03
ledger:
  - id: ttd-1
    type: "34"
    start: 2024-11-02
    end: 2025-05-03
    aww_used: 1000
    weeks: 26
    raw_weekly: 600
    final_weekly: 600
    dollars_paid: 15600
  - id: ec-1
    type: 35ec
    start: 2025-05-03
    aww_used: 1000
    ec_used: 600
    weeks: 0
    raw_weekly: 240
    final_weekly: 365.83
    dollars_paid: 0
`

const claimJSON = `{
  "claimant": "Jane Doe",
  "aww": 1000,
  "date_of_injury": "2024-11-01",
  "earning_capacity": "600",
  "week_mode": "calendar",
  "ledger": [
    {"id": "ttd-1", "type": "34", "start": "2024-11-02", "end": "2025-05-03",
     "aww_used": 1000, "weeks": 26, "raw_weekly": 600, "final_weekly": 600, "dollars_paid": 15600}
  ]
}`

const claimTOML = `claimant = "Jane Doe"
aww = 1000
date_of_injury = 2024-11-01
earning_capacity = "600"

[[ledger]]
id = "ttd-1"
type = "34"
start = "2024-11-02"
end = 2025-05-03
aww_used = "1000"
weeks = "26"
raw_weekly = "600"
final_weekly = "600"
dollars_paid = "15600"
`

const rateTableJSON = `{
  "last_updated": "2025-10-01T12:00:00Z",
  "rates": [
    {"effective_from": "2024-10-01", "effective_to": "2025-09-30", "state_min": 365.83, "state_max": 1829.13, "source": "mass.gov"},
    {"effective_from": "2023-10-01", "effective_to": "2024-09-30", "state_min": "351.17", "state_max": "1755.86"}
  ]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser, "Should create input parser")
}

func TestInputParser_LoadClaim_Formats(t *testing.T) {
	tests := []struct {
		name         string
		file         string
		content      string
		expectedMode domain.WeekMode
		ledgerLen    int
	}{
		{name: "YAML", file: "claim.yaml", content: claimYAML, ledgerLen: 2},
		{name: "YML extension", file: "claim.yml", content: claimYAML, ledgerLen: 2},
		{name: "JSON", file: "claim.json", content: claimJSON, expectedMode: domain.WeekModeCalendar, ledgerLen: 1},
		{name: "TOML", file: "claim.toml", content: claimTOML, ledgerLen: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claim, err := NewInputParser().LoadClaim(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)

			assert.Equal(t, "Jane Doe", claim.Claimant)
			assert.True(t, claim.AWW.Equal(decimal.NewFromInt(1000)))
			assert.Equal(t, "2024-11-01", claim.DateOfInjury.String())
			require.NotNil(t, claim.EarningCapacity)
			assert.True(t, claim.EarningCapacity.Equal(decimal.NewFromInt(600)))
			assert.Equal(t, tt.expectedMode, claim.WeekMode)

			require.Len(t, claim.Ledger, tt.ledgerLen)
			first := claim.Ledger[0]
			assert.Equal(t, domain.BenefitTTD, first.Type)
			require.NotNil(t, first.End)
			assert.Equal(t, "2025-05-03", first.End.String())
			assert.True(t, first.Weeks.Equal(decimal.NewFromInt(26)))
		})
	}
}

func TestInputParser_LoadClaim_YAMLOngoingEntry(t *testing.T) {
	claim, err := NewInputParser().LoadClaim(writeFile(t, "claim.yaml", claimYAML))
	require.NoError(t, err)

	ec := claim.Ledger[1]
	assert.Equal(t, domain.BenefitTPDEC, ec.Type)
	assert.True(t, ec.IsOngoing())
	require.NotNil(t, ec.ECUsed)
	require.NotNil(t, claim.AsOf)
	assert.Equal(t, "2025-05-03", claim.AsOf.String())
}

func TestInputParser_LoadClaim_Errors(t *testing.T) {
	tests := []struct {
		name          string
		file          string
		content       string
		expectedError string
	}{
		{name: "unsupported extension", file: "claim.txt", content: claimYAML, expectedError: "unsupported file extension"},
		{name: "invalid YAML", file: "claim.yaml", content: "invalid: yaml: content: [unclosed", expectedError: "failed to parse YAML"},
		{name: "invalid JSON", file: "claim.json", content: "{", expectedError: "failed to parse JSON"},
		{name: "invalid TOML", file: "claim.toml", content: "aww = = 1", expectedError: "failed to parse TOML"},
		{name: "localized date", file: "claim.yaml", content: "aww: 1000\ndate_of_injury: 11/01/2024\n", expectedError: "failed to parse YAML"},
		{name: "missing AWW", file: "claim.yaml", content: "date_of_injury: 2024-11-01\n", expectedError: "claim validation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claim, err := NewInputParser().LoadClaim(writeFile(t, tt.file, tt.content))
			assert.Error(t, err)
			assert.Nil(t, claim)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}

	_, err := NewInputParser().LoadClaim(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func validClaim() *domain.Claim {
	end := domain.MustParseDate("2025-05-03")
	return &domain.Claim{
		AWW:          decimal.NewFromInt(1000),
		DateOfInjury: domain.MustParseDate("2024-11-01"),
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
}

func TestInputParser_ValidateClaim(t *testing.T) {
	parser := NewInputParser()
	require.NoError(t, parser.ValidateClaim(validClaim()))

	negative := decimal.NewFromInt(-1)
	early := domain.MustParseDate("2024-10-31")

	tests := []struct {
		name        string
		mutate      func(c *domain.Claim)
		expectedErr error
		description string
	}{
		{name: "zero AWW", mutate: func(c *domain.Claim) { c.AWW = decimal.Zero }, expectedErr: calculation.ErrInvalidAWW, description: "AWW must be positive"},
		{name: "negative EC", mutate: func(c *domain.Claim) { c.EarningCapacity = &negative }, expectedErr: calculation.ErrNegativeEarningCapacity, description: "EC cannot be negative"},
		{name: "as_of before injury", mutate: func(c *domain.Claim) { c.AsOf = &early }, expectedErr: calculation.ErrInvalidDateRange, description: "as_of follows the injury"},
		{name: "bad week mode", mutate: func(c *domain.Claim) { c.WeekMode = "monthly" }, expectedErr: calculation.ErrInvalidWeekMode, description: "only days or calendar"},
		{name: "bad ledger", mutate: func(c *domain.Claim) { c.Ledger[0].Weeks = decimal.NewFromInt(-2) }, expectedErr: calculation.ErrInvalidLedgerEntry, description: "ledger contract enforced"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validClaim()
			tt.mutate(c)
			err := parser.ValidateClaim(c)
			require.Error(t, err, tt.description)
			assert.True(t, errors.Is(err, tt.expectedErr), "expected %v, got %v", tt.expectedErr, err)
		})
	}

	c := validClaim()
	c.DateOfInjury = domain.Date{}
	assert.Error(t, parser.ValidateClaim(c), "date of injury is required")
}

func TestInputParser_SaveClaim(t *testing.T) {
	for _, ext := range []string{".yaml", ".json", ".toml"} {
		t.Run(ext, func(t *testing.T) {
			parser := NewInputParser()
			path := filepath.Join(t.TempDir(), "claim"+ext)
			original := validClaim()
			original.Claimant = "Saved"

			require.NoError(t, parser.SaveClaim(path, original))
			loaded, err := parser.LoadClaim(path)
			require.NoError(t, err)

			assert.Equal(t, "Saved", loaded.Claimant)
			assert.True(t, loaded.AWW.Equal(original.AWW))
			assert.True(t, loaded.DateOfInjury.Equal(original.DateOfInjury))
			require.Len(t, loaded.Ledger, 1)
			assert.Equal(t, "ttd-1", loaded.Ledger[0].ID)
			assert.True(t, loaded.Ledger[0].DollarsPaid.Equal(decimal.NewFromInt(15600)))
		})
	}

	err := NewInputParser().SaveClaim(filepath.Join(t.TempDir(), "claim.xml"), validClaim())
	assert.Error(t, err)
}

func TestInputParser_LoadRateTable(t *testing.T) {
	table, err := NewInputParser().LoadRateTable(writeFile(t, "rates.json", rateTableJSON))
	require.NoError(t, err)

	assert.Equal(t, "2025-10-01T12:00:00Z", table.LastUpdated)
	require.Len(t, table.Rates, 2)
	assert.True(t, table.Rates[0].StateMin.Equal(decimal.RequireFromString("365.83")))
	assert.True(t, table.Rates[1].StateMax.Equal(decimal.RequireFromString("1755.86")), "quoted decimals are accepted")
	assert.Equal(t, "mass.gov", table.Rates[0].Source)
}

func TestInputParser_LoadRateTable_Errors(t *testing.T) {
	tests := []struct {
		name          string
		content       string
		expectedError string
	}{
		{name: "malformed", content: `{"rates": [`, expectedError: "failed to parse rate table JSON"},
		{name: "empty", content: `{"rates": []}`, expectedError: "rate table has no rows"},
		{name: "max below min", content: `{"rates": [{"effective_from": "2024-10-01", "effective_to": "2025-09-30", "state_min": 500, "state_max": 400}]}`, expectedError: "must be greater than state_min"},
		{name: "bad date", content: `{"rates": [{"effective_from": "10/01/2024", "effective_to": "2025-09-30", "state_min": 1, "state_max": 2}]}`, expectedError: "failed to parse rate table JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInputParser().LoadRateTable(writeFile(t, "rates.json", tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}

	_, err := NewInputParser().LoadRateTable(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
