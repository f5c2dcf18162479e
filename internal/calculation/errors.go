package calculation

import "errors"

// Sentinel errors returned by the calculators. Callers wrap them with context
// and test for them with errors.Is.
var (
	// ErrInvalidAWW is returned when the average weekly wage is zero or negative.
	ErrInvalidAWW = errors.New("average weekly wage must be positive")

	// ErrNoApplicableRate is returned when a date falls outside every period
	// of the supplied rate table.
	ErrNoApplicableRate = errors.New("no applicable rate period")

	// ErrInvalidDateRange is returned when an interval ends before it starts.
	ErrInvalidDateRange = errors.New("end date is before start date")

	// ErrInvalidWeekMode is returned for an unknown proration mode.
	ErrInvalidWeekMode = errors.New("invalid week mode")

	// ErrMissingEarningCapacity is returned when a §35 earning-capacity rate
	// is requested without an earning capacity.
	ErrMissingEarningCapacity = errors.New("earning capacity is required for section 35 earning-capacity benefits")

	// ErrNegativeEarningCapacity is returned when the earning capacity is below zero.
	ErrNegativeEarningCapacity = errors.New("earning capacity cannot be negative")

	// ErrUnknownBenefitType is returned for a benefit type outside the schedule.
	ErrUnknownBenefitType = errors.New("unknown benefit type")

	// ErrInvalidLedgerEntry is returned when a ledger entry breaks the ledger contract.
	ErrInvalidLedgerEntry = errors.New("invalid ledger entry")
)
