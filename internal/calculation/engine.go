package calculation

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/mawc/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine evaluates claims against a rate table. It holds no claim
// state; every call is a pure function of its arguments and the clock.
type CalculationEngine struct {
	Logger Logger
	// Now supplies the evaluation date for claims without as_of.
	Now func() time.Time
}

// NewCalculationEngine creates an engine with a no-op logger and the system clock.
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Logger: NopLogger{},
		Now:    time.Now,
	}
}

// SetLogger installs l, or restores the no-op logger when l is nil.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

func (ce *CalculationEngine) now() time.Time {
	if ce.Now == nil {
		return time.Now()
	}
	return ce.Now()
}

// Evaluate computes the current weekly rates for a claim and aggregates its
// ledger into remaining entitlements.
func (ce *CalculationEngine) Evaluate(claim *domain.Claim, table domain.RateTable) (*domain.ClaimReport, error) {
	if claim == nil {
		return nil, fmt.Errorf("claim is required")
	}
	if claim.AWW.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidAWW, claim.AWW)
	}
	if claim.DateOfInjury.IsZero() {
		return nil, fmt.Errorf("date of injury is required")
	}
	if claim.EarningCapacity != nil && claim.EarningCapacity.IsNegative() {
		return nil, fmt.Errorf("%w: got %s", ErrNegativeEarningCapacity, claim.EarningCapacity)
	}
	if claim.AsOf != nil && !claim.AsOf.IsZero() && claim.AsOf.Before(claim.DateOfInjury) {
		return nil, fmt.Errorf("%w: as_of %s is before date_of_injury %s", ErrInvalidDateRange, claim.AsOf, claim.DateOfInjury)
	}
	mode, err := ParseWeekMode(string(claim.WeekMode))
	if err != nil {
		return nil, err
	}
	if err := ValidateLedger(claim.Ledger); err != nil {
		return nil, err
	}

	period, err := GetStateMinMax(claim.DateOfInjury, table.Rates)
	if err != nil {
		return nil, err
	}
	ce.Logger.Debugf("rate period %s to %s: min %s max %s",
		period.EffectiveFrom, period.EffectiveTo, period.StateMin.StringFixed(2), period.StateMax.StringFixed(2))

	rates, skipped, err := CalculateAllRates(claim.AWW, RateOptions{
		EarningCapacity: claim.EarningCapacity,
		DateOfInjury:    claim.DateOfInjury,
		StateTable:      table.Rates,
	})
	if err != nil {
		return nil, err
	}
	for _, r := range rates.Ordered() {
		ce.Logger.Debugf("section %s: raw %s final %s (%s)", r.Type, r.RawWeekly.StringFixed(2), r.FinalWeekly.StringFixed(2), r.AppliedRule)
	}
	for _, s := range skipped {
		ce.Logger.Infof("section %s skipped: %s", s.Type, s.Reason)
	}

	asOf := claim.EvaluationDate(ce.now())
	ledger, err := RefreshOngoing(claim.Ledger, asOf, mode)
	if err != nil {
		return nil, err
	}

	summary := AggregateEntitlements(ledger, rates)
	if summary.CombinedUsage.WeeksRemaining.IsZero() {
		ce.Logger.Warnf("combined 7-year limit of %d weeks is exhausted", summary.CombinedUsage.MaxWeeks)
	}

	return &domain.ClaimReport{
		Claimant:        claim.Claimant,
		AWW:             claim.AWW,
		DateOfInjury:    claim.DateOfInjury,
		EarningCapacity: claim.EarningCapacity,
		AsOf:            asOf,
		WeekMode:        mode,
		RatePeriod:      period,
		Rates:           rates.Ordered(),
		Skipped:         skipped,
		Ledger:          ledger,
		Entitlements:    summary,
	}, nil
}

// PriceLedgerEntry builds a new ledger entry for claim. Missing AWW and
// earning capacity default to the claim's own values.
func (ce *CalculationEngine) PriceLedgerEntry(claim *domain.Claim, table domain.RateTable, in domain.LedgerInput) (domain.LedgerEntry, error) {
	if in.AWW.IsZero() {
		in.AWW = claim.AWW
	}
	if in.Type == domain.BenefitTPDEC && in.EC == nil {
		in.EC = claim.EarningCapacity
	}
	mode, err := ParseWeekMode(string(claim.WeekMode))
	if err != nil {
		return domain.LedgerEntry{}, err
	}
	entry, err := NewLedgerEntry(in, LedgerOptions{
		DateOfInjury: claim.DateOfInjury,
		StateTable:   table.Rates,
		AsOf:         claim.EvaluationDate(ce.now()),
		WeekMode:     mode,
	})
	if err != nil {
		return domain.LedgerEntry{}, err
	}
	ce.Logger.Infof("priced ledger entry %s: section %s, %s weeks at %s", entry.ID, entry.Type, entry.Weeks.String(), entry.FinalWeekly.StringFixed(2))
	return entry, nil
}
