package domain

// PeriodStatus is the admin-assigned state of an availability period.
type PeriodStatus string

const (
	PeriodAvailable PeriodStatus = "available"
	PeriodBooked    PeriodStatus = "booked"
	PeriodBlocked   PeriodStatus = "blocked"
)

func ParsePeriodStatus(s string) (PeriodStatus, bool) {
	switch PeriodStatus(s) {
	case PeriodAvailable, PeriodBooked, PeriodBlocked:
		return PeriodStatus(s), true
	default:
		return "", false
	}
}

// AvailabilityPeriod is a date range on one property with a status and a
// weekly price. StartDate and EndDate are inclusive.
type AvailabilityPeriod struct {
	ID            int64        `json:"id"`
	PropertyID    int64        `json:"property_id"`
	StartDate     Date         `json:"start_date"`
	EndDate       Date         `json:"end_date"`
	PricePerWeek  int64        `json:"price_per_week"`
	PricePerNight *int64       `json:"price_per_night,omitempty"`
	MinNights     int          `json:"min_nights"`
	Status        PeriodStatus `json:"status"`
	Notes         string       `json:"notes"`
}

// Contains reports whether d falls inside the inclusive [start, end] range.
func (p *AvailabilityPeriod) Contains(d Date) bool {
	return !d.Before(p.StartDate) && !d.After(p.EndDate)
}

// Valid enforces the start <= end invariant and a sensible minimum stay.
func (p *AvailabilityPeriod) Valid() bool {
	if p.StartDate.IsZero() || p.EndDate.IsZero() || p.EndDate.Before(p.StartDate) {
		return false
	}
	if _, ok := ParsePeriodStatus(string(p.Status)); !ok {
		return false
	}
	return p.MinNights >= 1
}
