package output

import (
	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/mawc/internal/domain"
)

// JSONFormatter renders machine-readable output.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.ClaimReport) ([]byte, error) {
	return marshal(report)
}

func (j JSONFormatter) FormatRates(period domain.StateMinMax, rates []domain.WeeklyRateResult, skipped []domain.SkippedRate) ([]byte, error) {
	return marshal(struct {
		RatePeriod domain.StateMinMax        `json:"rate_period"`
		Rates      []domain.WeeklyRateResult `json:"rates"`
		Skipped    []domain.SkippedRate      `json:"skipped,omitempty"`
	}{period, rates, skipped})
}

func (j JSONFormatter) FormatEntitlements(summary domain.EntitlementSummary) ([]byte, error) {
	return marshal(summary)
}

func (j JSONFormatter) FormatWeeks(start, end domain.Date, mode domain.WeekMode, weeks domain.WeekCalculation) ([]byte, error) {
	return marshal(struct {
		Start domain.Date     `json:"start"`
		End   domain.Date     `json:"end"`
		Mode  domain.WeekMode `json:"mode"`
		domain.WeekCalculation
	}{start, end, mode, weeks})
}

func marshal(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
