package calculation

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rgehrsitz/mawc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ledgerOptions() LedgerOptions {
	return LedgerOptions{
		DateOfInjury: domain.MustParseDate("2024-11-01"),
		StateTable:   testTable(),
		AsOf:         domain.MustParseDate("2025-03-01"),
		WeekMode:     domain.WeekModeDays,
	}
}

func datePtr(s string) *domain.Date {
	v := domain.MustParseDate(s)
	return &v
}

func TestNewLedgerEntry(t *testing.T) {
	in := domain.LedgerInput{
		ID:    "ttd-1",
		Type:  domain.BenefitTTD,
		Start: domain.MustParseDate("2024-11-02"),
		End:   datePtr("2025-05-03"),
		AWW:   d("1000"),
		Notes: "initial TTD",
	}

	got, err := NewLedgerEntry(in, ledgerOptions())
	require.NoError(t, err)

	assert.Equal(t, "ttd-1", got.ID)
	assert.True(t, got.Weeks.Equal(d("26")))
	assert.True(t, got.FinalWeekly.Equal(d("600")))
	assert.True(t, got.DollarsPaid.Equal(d("15600")))
	assert.Equal(t, "2025-05-03", got.End.String())
	assert.Nil(t, got.ECUsed)
	assert.Equal(t, "initial TTD", got.Notes)
}

func TestNewLedgerEntry_OngoingUsesAsOf(t *testing.T) {
	in := domain.LedgerInput{
		Type:  domain.BenefitTPDEC,
		Start: domain.MustParseDate("2025-02-01"),
		AWW:   d("1000"),
		EC:    decPtr("600"),
	}

	got, err := NewLedgerEntry(in, ledgerOptions())
	require.NoError(t, err)

	_, parseErr := uuid.Parse(got.ID)
	assert.NoError(t, parseErr, "a missing id is replaced with a UUID")
	assert.True(t, got.IsOngoing())
	assert.True(t, got.Weeks.Equal(d("4")), "2025-02-01 to 2025-03-01 is 28 days")
	assert.True(t, got.RawWeekly.Equal(d("240")))
	assert.True(t, got.FinalWeekly.Equal(d("365.83")))
	require.NotNil(t, got.ECUsed)
	assert.True(t, got.ECUsed.Equal(d("600")))
}

func TestNewLedgerEntry_Errors(t *testing.T) {
	tests := []struct {
		name     string
		in       domain.LedgerInput
		expected error
	}{
		{
			name:     "unknown type",
			in:       domain.LedgerInput{Type: "36", Start: domain.MustParseDate("2024-11-02"), AWW: d("1000")},
			expected: ErrUnknownBenefitType,
		},
		{
			name:     "end before start",
			in:       domain.LedgerInput{Type: domain.BenefitTTD, Start: domain.MustParseDate("2024-11-02"), End: datePtr("2024-11-01"), AWW: d("1000")},
			expected: ErrInvalidDateRange,
		},
		{
			name:     "ongoing starting after as-of",
			in:       domain.LedgerInput{Type: domain.BenefitTTD, Start: domain.MustParseDate("2025-04-01"), AWW: d("1000")},
			expected: ErrInvalidDateRange,
		},
		{
			name:     "earning capacity missing",
			in:       domain.LedgerInput{Type: domain.BenefitTPDEC, Start: domain.MustParseDate("2024-11-02"), AWW: d("1000")},
			expected: ErrMissingEarningCapacity,
		},
		{
			name:     "non-positive AWW",
			in:       domain.LedgerInput{Type: domain.BenefitTTD, Start: domain.MustParseDate("2024-11-02"), AWW: d("0")},
			expected: ErrInvalidAWW,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLedgerEntry(tt.in, ledgerOptions())
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.expected), "expected %v, got %v", tt.expected, err)
		})
	}
}

func TestRefreshOngoing(t *testing.T) {
	closed := entry("closed", domain.BenefitTTD, "26", "600")
	closed.End = datePtr("2025-05-03")
	ongoing := entry("open", domain.BenefitTPD, "1", "450")
	ongoing.Start = domain.MustParseDate("2025-05-04")
	ledger := []domain.LedgerEntry{closed, ongoing}

	refreshed, err := RefreshOngoing(ledger, domain.MustParseDate("2025-06-15"), domain.WeekModeDays)
	require.NoError(t, err)

	assert.True(t, refreshed[0].Weeks.Equal(d("26")), "closed entries keep their recorded weeks")
	assert.True(t, refreshed[1].Weeks.Equal(d("6")), "42 days")
	assert.True(t, refreshed[1].DollarsPaid.Equal(d("2700")))
	assert.True(t, ledger[1].Weeks.Equal(d("1")), "input ledger is not mutated")

	_, err = RefreshOngoing(ledger, domain.MustParseDate("2025-05-01"), domain.WeekModeDays)
	assert.True(t, errors.Is(err, ErrInvalidDateRange))
}

func TestValidateLedger(t *testing.T) {
	valid := func() []domain.LedgerEntry {
		return []domain.LedgerEntry{
			entry("a", domain.BenefitTTD, "26", "600"),
			entry("b", domain.BenefitTPDEC, "4", "365.83"),
		}
	}
	require.NoError(t, ValidateLedger(valid()))
	require.NoError(t, ValidateLedger(nil))

	tests := []struct {
		name        string
		mutate      func(l []domain.LedgerEntry)
		description string
	}{
		{name: "duplicate id", mutate: func(l []domain.LedgerEntry) { l[1].ID = "a" }, description: "ids are unique"},
		{name: "empty id", mutate: func(l []domain.LedgerEntry) { l[0].ID = "" }, description: "ids are required"},
		{name: "unknown type", mutate: func(l []domain.LedgerEntry) { l[0].Type = "99" }, description: "type must be one of the five"},
		{name: "missing start", mutate: func(l []domain.LedgerEntry) { l[0].Start = domain.Date{} }, description: "start is required"},
		{name: "reversed dates", mutate: func(l []domain.LedgerEntry) { l[0].End = datePtr("2024-01-01") }, description: "end must not precede start"},
		{name: "EC missing", mutate: func(l []domain.LedgerEntry) { l[1].ECUsed = nil }, description: "TPD_EC needs ec_used"},
		{name: "EC negative", mutate: func(l []domain.LedgerEntry) { l[1].ECUsed = decPtr("-0.01") }, description: "ec_used is non-negative"},
		{name: "negative weeks", mutate: func(l []domain.LedgerEntry) { l[0].Weeks = d("-1") }, description: "weeks are non-negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := valid()
			tt.mutate(l)
			err := ValidateLedger(l)
			require.Error(t, err, tt.description)
			assert.True(t, errors.Is(err, ErrInvalidLedgerEntry))
		})
	}
}
