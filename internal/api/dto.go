package api

import (
	"github.com/rgehrsitz/mawc/internal/calculation"
	"github.com/rgehrsitz/mawc/internal/domain"
	"github.com/shopspring/decimal"
)

// RatesRequest asks for the weekly rate of one benefit type, or of every
// type when Type is empty.
type RatesRequest struct {
	Type            string           `json:"type,omitempty"`
	AWW             decimal.Decimal  `json:"aww"`
	DateOfInjury    domain.Date      `json:"date_of_injury"`
	EarningCapacity *decimal.Decimal `json:"earning_capacity,omitempty"`
}

// RatesResponse carries the computed rates and the period they came from.
type RatesResponse struct {
	RatePeriod domain.StateMinMax        `json:"rate_period"`
	Rates      []domain.WeeklyRateResult `json:"rates"`
	Skipped    []domain.SkippedRate      `json:"skipped,omitempty"`
}

// WeeksResponse echoes the interval with its week count.
type WeeksResponse struct {
	Start domain.Date     `json:"start"`
	End   domain.Date     `json:"end"`
	Mode  domain.WeekMode `json:"mode"`
	domain.WeekCalculation
}

// ScheduleResponse is the statutory schedule.
type ScheduleResponse struct {
	Entries          []calculation.ScheduleEntry `json:"entries"`
	Pools            []calculation.CombinedPool  `json:"pools"`
	CombinedMaxWeeks int                         `json:"combined_max_weeks"`
}

// HealthResponse reports liveness and the loaded rate table.
type HealthResponse struct {
	Status      string `json:"status"`
	RatePeriods int    `json:"rate_periods"`
	LastUpdated string `json:"last_updated,omitempty"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
