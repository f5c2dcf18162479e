package calculation

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/mawc/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	sixtyPercent       = decimal.RequireFromString("0.60")
	seventyFivePercent = decimal.RequireFromString("0.75")
	two                = decimal.NewFromInt(2)
	three              = decimal.NewFromInt(3)
)

// RateOptions carries the inputs a weekly rate depends on besides the AWW.
type RateOptions struct {
	// EarningCapacity is required for BenefitTPDEC and ignored otherwise.
	EarningCapacity *decimal.Decimal
	DateOfInjury    domain.Date
	StateTable      []domain.RateTableRow
}

// CalculateWeeklyRate computes the raw and clamped weekly rate for one
// benefit type.
func CalculateWeeklyRate(bt domain.BenefitType, aww decimal.Decimal, opts RateOptions) (domain.WeeklyRateResult, error) {
	if aww.LessThanOrEqual(decimal.Zero) {
		return domain.WeeklyRateResult{}, fmt.Errorf("%w: got %s", ErrInvalidAWW, aww)
	}
	if _, ok := schedule[bt]; !ok {
		return domain.WeeklyRateResult{}, fmt.Errorf("%w: %q", ErrUnknownBenefitType, bt)
	}
	if bt == domain.BenefitTPDEC {
		if opts.EarningCapacity == nil {
			return domain.WeeklyRateResult{}, ErrMissingEarningCapacity
		}
		if opts.EarningCapacity.IsNegative() {
			return domain.WeeklyRateResult{}, fmt.Errorf("%w: got %s", ErrNegativeEarningCapacity, opts.EarningCapacity)
		}
	}

	limits, err := GetStateMinMax(opts.DateOfInjury, opts.StateTable)
	if err != nil {
		return domain.WeeklyRateResult{}, err
	}

	var raw decimal.Decimal
	switch bt {
	case domain.BenefitTTD:
		raw = aww.Mul(sixtyPercent)
	case domain.BenefitTPD:
		// §35 is 75% of the §34 rate after the §34 rate has itself been
		// clamped, then clamped again below.
		ttd, err := CalculateWeeklyRate(domain.BenefitTTD, aww, opts)
		if err != nil {
			return domain.WeeklyRateResult{}, err
		}
		raw = ttd.FinalWeekly.Mul(seventyFivePercent)
	case domain.BenefitTPDEC:
		ec := *opts.EarningCapacity
		if ec.GreaterThanOrEqual(aww) {
			raw = decimal.Zero
		} else {
			raw = aww.Sub(ec).Mul(sixtyPercent)
		}
	case domain.BenefitPermanentTotal, domain.BenefitDependent:
		raw = aww.Mul(two).Div(three)
	}

	final, rule := ApplyStateMinMax(raw, aww, limits.StateMin, limits.StateMax)
	return domain.WeeklyRateResult{
		Type:        bt,
		RawWeekly:   raw,
		FinalWeekly: final,
		AppliedRule: rule,
		StateMin:    limits.StateMin,
		StateMax:    limits.StateMax,
	}, nil
}

// ApplyStateMinMax clamps a raw weekly rate to the state limits.
//
// A raw rate of exactly zero (earning capacity at or above the AWW) is never
// raised. A worker whose AWW is itself below the state minimum is paid the AWW.
func ApplyStateMinMax(raw, aww, stateMin, stateMax decimal.Decimal) (decimal.Decimal, domain.AppliedRule) {
	switch {
	case raw.IsZero():
		return decimal.Zero, domain.RuleUnchanged
	case raw.GreaterThan(stateMax):
		return stateMax, domain.RuleCappedToMax
	case raw.LessThan(stateMin):
		if aww.GreaterThanOrEqual(stateMin) {
			return stateMin, domain.RuleRaisedToMin
		}
		return aww, domain.RuleAWWBelowMinKeepAWW
	default:
		return raw, domain.RuleUnchanged
	}
}

// CurrentRates maps each benefit type to its current weekly rate. Types with
// no computable rate are absent.
type CurrentRates map[domain.BenefitType]domain.WeeklyRateResult

// CalculateAllRates computes every benefit type for the same inputs. A missing
// earning capacity skips TPD_EC rather than failing the whole set; any other
// error is returned.
func CalculateAllRates(aww decimal.Decimal, opts RateOptions) (CurrentRates, []domain.SkippedRate, error) {
	rates := make(CurrentRates, len(domain.AllBenefitTypes))
	var skipped []domain.SkippedRate
	for _, bt := range domain.AllBenefitTypes {
		result, err := CalculateWeeklyRate(bt, aww, opts)
		if errors.Is(err, ErrMissingEarningCapacity) {
			skipped = append(skipped, domain.SkippedRate{Type: bt, Reason: "no earning capacity supplied"})
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("section %s rate: %w", bt, err)
		}
		rates[bt] = result
	}
	return rates, skipped, nil
}

// Ordered returns the rates in display order.
func (cr CurrentRates) Ordered() []domain.WeeklyRateResult {
	out := make([]domain.WeeklyRateResult, 0, len(cr))
	for _, bt := range domain.AllBenefitTypes {
		if r, ok := cr[bt]; ok {
			out = append(out, r)
		}
	}
	return out
}
