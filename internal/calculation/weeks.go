package calculation

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/mawc/internal/domain"
	"github.com/shopspring/decimal"
)

const weekPrecision = 4

var daysPerWeek = decimal.NewFromInt(7)

// ParseWeekMode parses "days" or "calendar". An empty string selects days.
func ParseWeekMode(s string) (domain.WeekMode, error) {
	switch domain.WeekMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", domain.WeekModeDays:
		return domain.WeekModeDays, nil
	case domain.WeekModeCalendar:
		return domain.WeekModeCalendar, nil
	}
	return "", fmt.Errorf("%w: %q (expected days or calendar)", ErrInvalidWeekMode, s)
}

// WeeksBetween converts the interval [start, end] into weeks.
//
// In days mode the elapsed days are divided by seven and rounded to four
// places. In calendar mode the result is the number of Monday-starting weeks
// the interval touches. The two modes can disagree for partial weeks.
func WeeksBetween(start, end domain.Date, mode domain.WeekMode) (domain.WeekCalculation, error) {
	if end.Before(start) {
		return domain.WeekCalculation{}, fmt.Errorf("%w: %s to %s", ErrInvalidDateRange, start, end)
	}
	mode, err := ParseWeekMode(string(mode))
	if err != nil {
		return domain.WeekCalculation{}, err
	}

	days := start.DaysUntil(end)
	if days == 0 {
		return domain.WeekCalculation{WeeksDecimal: decimal.Zero, FractionalWeeks: decimal.Zero}, nil
	}

	var weeks decimal.Decimal
	if mode == domain.WeekModeCalendar {
		weeks = decimal.NewFromInt(int64(calendarWeeks(start, end)))
	} else {
		weeks = decimal.NewFromInt(int64(days)).Div(daysPerWeek).Round(weekPrecision)
	}

	full := weeks.Floor()
	return domain.WeekCalculation{
		Days:            days,
		WeeksDecimal:    weeks,
		FullWeeks:       int(full.IntPart()),
		FractionalWeeks: weeks.Sub(full).Round(weekPrecision),
	}, nil
}

// calendarWeeks counts the Monday-starting weeks intersected by [start, end].
func calendarWeeks(start, end domain.Date) int {
	first := weekStart(start)
	last := weekStart(end)
	return first.DaysUntil(last)/7 + 1
}

func weekStart(d domain.Date) domain.Date {
	// Monday = 0 ... Sunday = 6
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDays(-offset)
}
