package domain

import (
	"fmt"
	"strings"
)

// BenefitType identifies a weekly indemnity benefit by its M.G.L. c.152 section.
type BenefitType string

const (
	BenefitTTD            BenefitType = "34"   // Temporary total incapacity
	BenefitTPD            BenefitType = "35"   // Temporary partial incapacity
	BenefitTPDEC          BenefitType = "35ec" // Partial incapacity from earning capacity
	BenefitPermanentTotal BenefitType = "34A"  // Permanent and total incapacity
	BenefitDependent      BenefitType = "31"   // Dependency benefits
)

// AllBenefitTypes lists every benefit type in display order.
var AllBenefitTypes = []BenefitType{
	BenefitTTD,
	BenefitTPD,
	BenefitTPDEC,
	BenefitPermanentTotal,
	BenefitDependent,
}

var benefitAliases = map[string]BenefitType{
	"34":              BenefitTTD,
	"ttd":             BenefitTTD,
	"35":              BenefitTPD,
	"tpd":             BenefitTPD,
	"35ec":            BenefitTPDEC,
	"tpd_ec":          BenefitTPDEC,
	"34a":             BenefitPermanentTotal,
	"permanenttotal":  BenefitPermanentTotal,
	"permanent_total": BenefitPermanentTotal,
	"31":              BenefitDependent,
	"dependent":       BenefitDependent,
}

// ParseBenefitType accepts a section code ("34", "35ec", "34A") or a short
// name ("TTD", "TPD_EC"), case-insensitively.
func ParseBenefitType(s string) (BenefitType, error) {
	if bt, ok := benefitAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return bt, nil
	}
	return "", fmt.Errorf("unknown benefit type %q", s)
}

// Valid reports whether bt is one of the five known benefit types.
func (bt BenefitType) Valid() bool {
	switch bt {
	case BenefitTTD, BenefitTPD, BenefitTPDEC, BenefitPermanentTotal, BenefitDependent:
		return true
	}
	return false
}

// Name returns the short name used in reports.
func (bt BenefitType) Name() string {
	switch bt {
	case BenefitTTD:
		return "TTD"
	case BenefitTPD:
		return "TPD"
	case BenefitTPDEC:
		return "TPD_EC"
	case BenefitPermanentTotal:
		return "PermanentTotal"
	case BenefitDependent:
		return "Dependent"
	default:
		return string(bt)
	}
}

// Label returns a human-readable description including the section.
func (bt BenefitType) Label() string {
	switch bt {
	case BenefitTTD:
		return "Temporary Total (§34)"
	case BenefitTPD:
		return "Temporary Partial (§35)"
	case BenefitTPDEC:
		return "Temporary Partial w/ Earning Capacity (§35)"
	case BenefitPermanentTotal:
		return "Permanent & Total (§34A)"
	case BenefitDependent:
		return "Dependency (§31)"
	default:
		return string(bt)
	}
}

func (bt BenefitType) String() string { return string(bt) }

// MarshalText implements encoding.TextMarshaler.
func (bt BenefitType) MarshalText() ([]byte, error) {
	return []byte(bt), nil
}

// UnmarshalText implements encoding.TextUnmarshaler and rejects unknown codes.
func (bt *BenefitType) UnmarshalText(text []byte) error {
	parsed, err := ParseBenefitType(string(text))
	if err != nil {
		return err
	}
	*bt = parsed
	return nil
}
