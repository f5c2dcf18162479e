package calculation

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rgehrsitz/mawc/internal/domain"
	"github.com/shopspring/decimal"
)

// LedgerOptions is the claim context a new ledger entry is priced against.
type LedgerOptions struct {
	DateOfInjury domain.Date
	StateTable   []domain.RateTableRow
	// AsOf closes ongoing periods when measuring their weeks.
	AsOf     domain.Date
	WeekMode domain.WeekMode
}

// NewLedgerEntry prices a payment period: it measures its weeks, computes the
// weekly rate in force for the injury date and records the dollars paid.
// An empty ID is replaced with a random UUID.
func NewLedgerEntry(in domain.LedgerInput, opts LedgerOptions) (domain.LedgerEntry, error) {
	if !in.Type.Valid() {
		return domain.LedgerEntry{}, fmt.Errorf("%w: %w: %q", ErrInvalidLedgerEntry, ErrUnknownBenefitType, in.Type)
	}
	if in.Start.IsZero() {
		return domain.LedgerEntry{}, fmt.Errorf("%w: start date is required", ErrInvalidLedgerEntry)
	}

	end := opts.AsOf
	if in.End != nil && !in.End.IsZero() {
		end = *in.End
	}
	weeks, err := WeeksBetween(in.Start, end, opts.WeekMode)
	if err != nil {
		return domain.LedgerEntry{}, fmt.Errorf("%w: %w", ErrInvalidLedgerEntry, err)
	}

	rate, err := CalculateWeeklyRate(in.Type, in.AWW, RateOptions{
		EarningCapacity: in.EC,
		DateOfInjury:    opts.DateOfInjury,
		StateTable:      opts.StateTable,
	})
	if err != nil {
		return domain.LedgerEntry{}, err
	}

	id := in.ID
	if id == "" {
		id = uuid.New().String()
	}

	entry := domain.LedgerEntry{
		ID:          id,
		Type:        in.Type,
		Start:       in.Start,
		AWWUsed:     in.AWW,
		Weeks:       weeks.WeeksDecimal,
		RawWeekly:   rate.RawWeekly,
		FinalWeekly: rate.FinalWeekly,
		DollarsPaid: rate.FinalWeekly.Mul(weeks.WeeksDecimal),
		Notes:       in.Notes,
	}
	if in.End != nil && !in.End.IsZero() {
		e := *in.End
		entry.End = &e
	}
	if in.Type == domain.BenefitTPDEC && in.EC != nil {
		ec := *in.EC
		entry.ECUsed = &ec
	}
	return entry, nil
}

// RefreshOngoing returns a copy of the ledger in which every ongoing entry
// has its weeks and dollars re-measured up to asOf. Closed entries keep the
// figures recorded when they were created.
func RefreshOngoing(ledger []domain.LedgerEntry, asOf domain.Date, mode domain.WeekMode) ([]domain.LedgerEntry, error) {
	out := make([]domain.LedgerEntry, len(ledger))
	copy(out, ledger)
	for i := range out {
		if !out[i].IsOngoing() {
			continue
		}
		weeks, err := WeeksBetween(out[i].Start, asOf, mode)
		if err != nil {
			return nil, fmt.Errorf("ongoing entry %s: %w", out[i].ID, err)
		}
		out[i].End = nil
		out[i].Weeks = weeks.WeeksDecimal
		out[i].DollarsPaid = out[i].FinalWeekly.Mul(weeks.WeeksDecimal)
	}
	return out, nil
}

// ValidateLedger enforces the contract every ledger entry must satisfy before
// it is aggregated.
func ValidateLedger(ledger []domain.LedgerEntry) error {
	seen := make(map[string]bool, len(ledger))
	for i, entry := range ledger {
		if err := validateEntry(entry); err != nil {
			return fmt.Errorf("%w %d (%s): %s", ErrInvalidLedgerEntry, i, entry.ID, err)
		}
		if seen[entry.ID] {
			return fmt.Errorf("%w %d: duplicate id %q", ErrInvalidLedgerEntry, i, entry.ID)
		}
		seen[entry.ID] = true
	}
	return nil
}

func validateEntry(entry domain.LedgerEntry) error {
	if entry.ID == "" {
		return fmt.Errorf("id is required")
	}
	if !entry.Type.Valid() {
		return fmt.Errorf("unknown benefit type %q", entry.Type)
	}
	if entry.Start.IsZero() {
		return fmt.Errorf("start date is required")
	}
	if !entry.IsOngoing() && entry.End.Before(entry.Start) {
		return fmt.Errorf("end %s is before start %s", entry.End, entry.Start)
	}
	if entry.Type == domain.BenefitTPDEC {
		if entry.ECUsed == nil {
			return fmt.Errorf("ec_used is required for section 35 earning-capacity entries")
		}
		if entry.ECUsed.IsNegative() {
			return fmt.Errorf("ec_used cannot be negative")
		}
	}
	if entry.Weeks.LessThan(decimal.Zero) {
		return fmt.Errorf("weeks cannot be negative")
	}
	return nil
}
