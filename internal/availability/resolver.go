// Package availability resolves calendar-day statuses and prices from a
// property's availability periods, and models the check-in/check-out range
// selection used by the booking calendar.
package availability

import (
	"github.com/rivieracrest/villa-bookings/internal/domain"
)

// DayStatus is what the calendar paints for a single day.
type DayStatus string

const (
	DayPast      DayStatus = "past"
	DayAvailable DayStatus = "available"
	DayBooked    DayStatus = "booked"
	DayBlocked   DayStatus = "blocked"
	// DayNone means no period covers the day; callers treat it as
	// unselectable or neutral.
	DayNone DayStatus = "none"
)

// ResolveStatus returns the status of d given the property's periods. Days
// strictly before today are past regardless of any period. Otherwise the
// first period in list order containing d wins; overlapping periods with
// conflicting statuses resolve purely by list order.
func ResolveStatus(d domain.Date, periods []domain.AvailabilityPeriod, today domain.Date) DayStatus {
	if d.Before(today) {
		return DayPast
	}
	for i := range periods {
		if periods[i].Contains(d) {
			switch periods[i].Status {
			case domain.PeriodBooked:
				return DayBooked
			case domain.PeriodBlocked:
				return DayBlocked
			default:
				return DayAvailable
			}
		}
	}
	return DayNone
}

// WeeklyPriceFor returns the price_per_week of the first available period
// containing d. The scan mirrors ResolveStatus: list order, no precedence.
func WeeklyPriceFor(d domain.Date, periods []domain.AvailabilityPeriod) (int64, bool) {
	for i := range periods {
		if periods[i].Status == domain.PeriodAvailable && periods[i].Contains(d) {
			return periods[i].PricePerWeek, true
		}
	}
	return 0, false
}

// Day is one rendered calendar cell.
type Day struct {
	Date         domain.Date `json:"date"`
	Status       DayStatus   `json:"status"`
	PricePerWeek *int64      `json:"price_per_week,omitempty"`
}

// Calendar resolves every day in [from, from+days) for rendering. The UI
// only ever renders one or two months, so the linear scan per day is fine.
func Calendar(from domain.Date, days int, periods []domain.AvailabilityPeriod, today domain.Date) []Day {
	out := make([]Day, 0, days)
	for i := 0; i < days; i++ {
		d := from.AddDays(i)
		day := Day{Date: d, Status: ResolveStatus(d, periods, today)}
		if day.Status == DayAvailable {
			if price, ok := WeeklyPriceFor(d, periods); ok {
				day.PricePerWeek = &price
			}
		}
		out = append(out, day)
	}
	return out
}
