package domain

import (
	"github.com/shopspring/decimal"
)

// LedgerEntry is one historical payment period of a claim.
// A nil End means the period is ongoing and runs to the evaluation date.
type LedgerEntry struct {
	ID          string           `yaml:"id" json:"id" toml:"id"`
	Type        BenefitType      `yaml:"type" json:"type" toml:"type"`
	Start       Date             `yaml:"start" json:"start" toml:"start"`
	End         *Date            `yaml:"end,omitempty" json:"end,omitempty" toml:"end,omitempty"`
	AWWUsed     decimal.Decimal  `yaml:"aww_used" json:"aww_used" toml:"aww_used"`
	ECUsed      *decimal.Decimal `yaml:"ec_used,omitempty" json:"ec_used,omitempty" toml:"ec_used,omitempty"`
	Weeks       decimal.Decimal  `yaml:"weeks" json:"weeks" toml:"weeks"`
	RawWeekly   decimal.Decimal  `yaml:"raw_weekly" json:"raw_weekly" toml:"raw_weekly"`
	FinalWeekly decimal.Decimal  `yaml:"final_weekly" json:"final_weekly" toml:"final_weekly"`
	DollarsPaid decimal.Decimal  `yaml:"dollars_paid" json:"dollars_paid" toml:"dollars_paid"`
	Notes       string           `yaml:"notes,omitempty" json:"notes,omitempty" toml:"notes,omitempty"`
}

// IsOngoing reports whether the entry has no end date.
func (e LedgerEntry) IsOngoing() bool {
	return e.End == nil || e.End.IsZero()
}

// LedgerInput describes a payment period before its weeks and rates are computed.
type LedgerInput struct {
	ID    string
	Type  BenefitType
	Start Date
	End   *Date
	AWW   decimal.Decimal
	EC    *decimal.Decimal
	Notes string
}
