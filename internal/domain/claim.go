package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Claim is the complete input for evaluating one workers' compensation claim.
type Claim struct {
	Claimant        string           `yaml:"claimant,omitempty" json:"claimant,omitempty" toml:"claimant,omitempty"`
	AWW             decimal.Decimal  `yaml:"aww" json:"aww" toml:"aww"`
	DateOfInjury    Date             `yaml:"date_of_injury" json:"date_of_injury" toml:"date_of_injury"`
	EarningCapacity *decimal.Decimal `yaml:"earning_capacity,omitempty" json:"earning_capacity,omitempty" toml:"earning_capacity,omitempty"`
	AsOf            *Date            `yaml:"as_of,omitempty" json:"as_of,omitempty" toml:"as_of,omitempty"`
	WeekMode        WeekMode         `yaml:"week_mode,omitempty" json:"week_mode,omitempty" toml:"week_mode,omitempty"`
	Ledger          []LedgerEntry    `yaml:"ledger" json:"ledger" toml:"ledger"`
}

// EvaluationDate returns AsOf when set, otherwise the calendar date of now.
// Ongoing ledger entries are measured up to this date.
func (c *Claim) EvaluationDate(now time.Time) Date {
	if c.AsOf != nil && !c.AsOf.IsZero() {
		return *c.AsOf
	}
	return DateOf(now)
}

// EffectiveWeekMode returns the claim's proration mode, defaulting to days.
func (c *Claim) EffectiveWeekMode() WeekMode {
	if c.WeekMode == "" {
		return WeekModeDays
	}
	return c.WeekMode
}

// SkippedRate explains why a benefit type has no current rate.
type SkippedRate struct {
	Type   BenefitType `yaml:"type" json:"type"`
	Reason string      `yaml:"reason" json:"reason"`
}

// ClaimReport is the evaluated state of a claim at a point in time.
type ClaimReport struct {
	Claimant        string             `yaml:"claimant,omitempty" json:"claimant,omitempty"`
	AWW             decimal.Decimal    `yaml:"aww" json:"aww"`
	DateOfInjury    Date               `yaml:"date_of_injury" json:"date_of_injury"`
	EarningCapacity *decimal.Decimal   `yaml:"earning_capacity,omitempty" json:"earning_capacity,omitempty"`
	AsOf            Date               `yaml:"as_of" json:"as_of"`
	WeekMode        WeekMode           `yaml:"week_mode" json:"week_mode"`
	RatePeriod      StateMinMax        `yaml:"rate_period" json:"rate_period"`
	Rates           []WeeklyRateResult `yaml:"rates" json:"rates"`
	Skipped         []SkippedRate      `yaml:"skipped,omitempty" json:"skipped,omitempty"`
	Ledger          []LedgerEntry      `yaml:"ledger" json:"ledger"`
	Entitlements    EntitlementSummary `yaml:"entitlements" json:"entitlements"`
}

// Rate returns the current weekly rate for bt, if one was computed.
func (r *ClaimReport) Rate(bt BenefitType) (WeeklyRateResult, bool) {
	for _, rate := range r.Rates {
		if rate.Type == bt {
			return rate, true
		}
	}
	return WeeklyRateResult{}, false
}
