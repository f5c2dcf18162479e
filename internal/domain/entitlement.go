package domain

import (
	"github.com/shopspring/decimal"
)

// AppliedRule records which state min/max policy produced a final weekly rate.
type AppliedRule string

const (
	RuleCappedToMax        AppliedRule = "capped_to_max"
	RuleRaisedToMin        AppliedRule = "raised_to_min"
	RuleAWWBelowMinKeepAWW AppliedRule = "aww_below_min_keep_aww"
	RuleUnchanged          AppliedRule = "unchanged"
)

// WeeklyRateResult is the output of one benefit rate calculation.
//
// FinalWeekly is always within [0, StateMax] unless AppliedRule is
// RuleAWWBelowMinKeepAWW, in which case it equals the AWW and may be below
// StateMin.
type WeeklyRateResult struct {
	Type        BenefitType     `yaml:"type" json:"type"`
	RawWeekly   decimal.Decimal `yaml:"raw_weekly" json:"raw_weekly"`
	FinalWeekly decimal.Decimal `yaml:"final_weekly" json:"final_weekly"`
	AppliedRule AppliedRule     `yaml:"applied_rule" json:"applied_rule"`
	StateMin    decimal.Decimal `yaml:"state_min" json:"state_min"`
	StateMax    decimal.Decimal `yaml:"state_max" json:"state_max"`
}

// WeekMode selects how an interval is converted into weeks.
type WeekMode string

const (
	// WeekModeDays prorates elapsed days by seven.
	WeekModeDays WeekMode = "days"
	// WeekModeCalendar counts Monday-starting weeks touched by the interval.
	WeekModeCalendar WeekMode = "calendar"
)

// WeekCalculation is the result of converting a date interval into weeks.
type WeekCalculation struct {
	Days            int             `yaml:"days" json:"days"`
	WeeksDecimal    decimal.Decimal `yaml:"weeks_decimal" json:"weeks_decimal"`
	FullWeeks       int             `yaml:"full_weeks" json:"full_weeks"`
	FractionalWeeks decimal.Decimal `yaml:"fractional_weeks" json:"fractional_weeks"`
}

// RemainingEntitlement is the derived entitlement position of one benefit type.
// The pointer fields are nil for life benefits.
type RemainingEntitlement struct {
	Type              BenefitType      `yaml:"type" json:"type"`
	StatutoryMaxWeeks *int             `yaml:"statutory_max_weeks" json:"statutory_max_weeks"`
	WeeksUsed         decimal.Decimal  `yaml:"weeks_used" json:"weeks_used"`
	WeeksRemaining    *decimal.Decimal `yaml:"weeks_remaining" json:"weeks_remaining"`
	DollarsRemaining  *decimal.Decimal `yaml:"dollars_remaining" json:"dollars_remaining"`
	FinalWeekly       decimal.Decimal  `yaml:"final_weekly" json:"final_weekly"`
	IsLifeBenefit     bool             `yaml:"is_life_benefit" json:"is_life_benefit"`
	SharesLimitWith   []BenefitType    `yaml:"shares_limit_with" json:"shares_limit_with"`
}

// CombinedUsage is a snapshot of one shared-cap pool.
type CombinedUsage struct {
	WeeksUsed      decimal.Decimal `yaml:"weeks_used" json:"weeks_used"`
	WeeksRemaining decimal.Decimal `yaml:"weeks_remaining" json:"weeks_remaining"`
	MaxWeeks       int             `yaml:"max_weeks" json:"max_weeks"`
}

// EntitlementSummary aggregates a ledger against the current weekly rates.
//
// PerType reports TPD and TPD_EC against their shared pool, so their
// WeeksRemaining values must not be added together; use Combined35Usage.
type EntitlementSummary struct {
	PerType               []RemainingEntitlement `yaml:"per_type" json:"per_type"`
	CombinedUsage         CombinedUsage          `yaml:"combined_usage" json:"combined_usage"`
	Combined35Usage       CombinedUsage          `yaml:"combined_35_usage" json:"combined_35_usage"`
	TotalDollarsPaid      decimal.Decimal        `yaml:"total_dollars_paid" json:"total_dollars_paid"`
	TotalDollarsRemaining decimal.Decimal        `yaml:"total_dollars_remaining" json:"total_dollars_remaining"`
}

// Entitlement returns the per-type entry for bt.
func (s *EntitlementSummary) Entitlement(bt BenefitType) (RemainingEntitlement, bool) {
	for _, e := range s.PerType {
		if e.Type == bt {
			return e, true
		}
	}
	return RemainingEntitlement{}, false
}
