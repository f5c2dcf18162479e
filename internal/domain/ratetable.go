package domain

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// RateTable is the persisted form of the state minimum/maximum weekly
// compensation rates, one row per fiscal year (October 1 - September 30).
type RateTable struct {
	LastUpdated string         `yaml:"last_updated" json:"last_updated"`
	Rates       []RateTableRow `yaml:"rates" json:"rates"`
}

// RateTableRow is one state-mandated min/max period. Both dates are inclusive.
type RateTableRow struct {
	EffectiveFrom Date            `yaml:"effective_from" json:"effective_from"`
	EffectiveTo   Date            `yaml:"effective_to" json:"effective_to"`
	StateMin      decimal.Decimal `yaml:"state_min" json:"state_min"`
	StateMax      decimal.Decimal `yaml:"state_max" json:"state_max"`
	Source        string          `yaml:"source,omitempty" json:"source,omitempty"`
}

// StateMinMax is the result of looking up an injury date in a rate table.
type StateMinMax struct {
	StateMin      decimal.Decimal `yaml:"state_min" json:"state_min"`
	StateMax      decimal.Decimal `yaml:"state_max" json:"state_max"`
	EffectiveFrom Date            `yaml:"effective_from" json:"effective_from"`
	EffectiveTo   Date            `yaml:"effective_to" json:"effective_to"`
}

// Contains reports whether d falls within the row's inclusive range.
func (r RateTableRow) Contains(d Date) bool {
	return !d.Before(r.EffectiveFrom) && !d.After(r.EffectiveTo)
}

// Period renders the row's range as "from to to".
func (r RateTableRow) Period() string {
	return fmt.Sprintf("%s to %s", r.EffectiveFrom, r.EffectiveTo)
}

// Validate checks a single row.
func (r RateTableRow) Validate() error {
	if r.EffectiveFrom.IsZero() || r.EffectiveTo.IsZero() {
		return fmt.Errorf("effective_from and effective_to are required")
	}
	if r.EffectiveTo.Before(r.EffectiveFrom) {
		return fmt.Errorf("effective_to %s is before effective_from %s", r.EffectiveTo, r.EffectiveFrom)
	}
	if r.StateMin.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("state_min must be positive")
	}
	if r.StateMax.LessThanOrEqual(r.StateMin) {
		return fmt.Errorf("state_max (%s) must be greater than state_min (%s)", r.StateMax, r.StateMin)
	}
	return nil
}

// Validate checks every row. Overlapping periods are allowed; lookup takes
// the first match.
func (t RateTable) Validate() error {
	if len(t.Rates) == 0 {
		return fmt.Errorf("rate table has no rows")
	}
	for i, row := range t.Rates {
		if err := row.Validate(); err != nil {
			return fmt.Errorf("rate row %d (%s): %w", i, row.Period(), err)
		}
	}
	return nil
}

// Sorted returns a copy of the rows ordered by EffectiveFrom.
func (t RateTable) Sorted() []RateTableRow {
	rows := append([]RateTableRow(nil), t.Rates...)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].EffectiveFrom.Before(rows[j].EffectiveFrom)
	})
	return rows
}
