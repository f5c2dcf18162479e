package tui

import (
	"github.com/rgehrsitz/mawc/internal/domain"
)

// Field identifies one of the editable inputs.
type Field int

const (
	FieldAWW Field = iota
	FieldDateOfInjury
	FieldEarningCapacity
	fieldCount
)

func (f Field) String() string {
	switch f {
	case FieldAWW:
		return "Average Weekly Wage"
	case FieldDateOfInjury:
		return "Date of Injury"
	case FieldEarningCapacity:
		return "Earning Capacity"
	default:
		return "Unknown"
	}
}

// ClaimLoadedMsg carries a claim read from disk. Its ledger, as-of date and
// week mode are kept while the inputs are edited.
type ClaimLoadedMsg struct {
	Path  string
	Claim *domain.Claim
}

// ErrorMsg reports a failure outside of recomputation, such as a load error.
type ErrorMsg struct {
	Err error
}
