package calculation

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/mawc/internal/domain"
)

// GetStateMinMax returns the state minimum and maximum weekly rates in force
// on date. The first row whose inclusive range contains date wins; a date
// outside every period is an error, never the nearest period.
func GetStateMinMax(date domain.Date, rows []domain.RateTableRow) (domain.StateMinMax, error) {
	for _, row := range rows {
		if row.Contains(date) {
			return domain.StateMinMax{
				StateMin:      row.StateMin,
				StateMax:      row.StateMax,
				EffectiveFrom: row.EffectiveFrom,
				EffectiveTo:   row.EffectiveTo,
			}, nil
		}
	}
	return domain.StateMinMax{}, fmt.Errorf("%w for %s; available periods: %s",
		ErrNoApplicableRate, date, describePeriods(rows))
}

func describePeriods(rows []domain.RateTableRow) string {
	if len(rows) == 0 {
		return "none"
	}
	periods := make([]string, len(rows))
	for i, row := range rows {
		periods[i] = row.Period()
	}
	return strings.Join(periods, ", ")
}
