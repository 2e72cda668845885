package availability

import (
	"errors"
	"math"

	"github.com/rivieracrest/villa-bookings/internal/domain"
)

// Selection tracks an in-progress check-in/check-out pick. It is ephemeral
// state for one open calendar widget; it holds a snapshot of the periods
// and does not see edits made while it is open.
type Selection struct {
	CheckIn  *domain.Date
	CheckOut *domain.Date

	selectingCheckOut bool
	periods           []domain.AvailabilityPeriod
	today             domain.Date
}

func NewSelection(periods []domain.AvailabilityPeriod, today domain.Date) *Selection {
	return &Selection{periods: periods, today: today}
}

// Click applies one calendar click. Past, booked and blocked days are
// ignored. The first eligible click sets check-in; the next sets check-out
// when it extends the range forward, otherwise it restarts the selection
// at the clicked day.
func (s *Selection) Click(d domain.Date) {
	switch ResolveStatus(d, s.periods, s.today) {
	case DayPast, DayBooked, DayBlocked:
		return
	}

	if !s.selectingCheckOut {
		s.setCheckIn(d)
		return
	}

	if s.CheckIn != nil && d.After(*s.CheckIn) {
		out := d
		s.CheckOut = &out
		s.selectingCheckOut = false
		return
	}

	// click-to-restart: a click that does not extend the range forward
	// starts a new selection
	s.setCheckIn(d)
}

func (s *Selection) setCheckIn(d domain.Date) {
	in := d
	s.CheckIn = &in
	s.CheckOut = nil
	s.selectingCheckOut = true
}

// Clear resets the selection to its initial state.
func (s *Selection) Clear() {
	s.CheckIn = nil
	s.CheckOut = nil
	s.selectingCheckOut = false
}

// Complete reports whether both endpoints are set.
func (s *Selection) Complete() bool {
	return s.CheckIn != nil && s.CheckOut != nil
}

// Nights returns the stay length, 0 while the selection is incomplete.
func (s *Selection) Nights() int {
	if !s.Complete() {
		return 0
	}
	return s.CheckIn.DaysUntil(*s.CheckOut)
}

// Total prorates the check-in day's weekly price over the selected nights.
// ok is false when the selection is incomplete or no weekly price is
// resolvable, in which case no price may be shown.
func (s *Selection) Total() (int64, bool) {
	if !s.Complete() {
		return 0, false
	}
	weekly, ok := WeeklyPriceFor(*s.CheckIn, s.periods)
	if !ok {
		return 0, false
	}
	return prorate(weekly, s.Nights()), true
}

func prorate(weeklyPrice int64, nights int) int64 {
	return int64(math.Round(float64(weeklyPrice) * float64(nights) / 7.0))
}

// Quote is the server-side price computation for a confirmed date range.
type Quote struct {
	CheckIn      domain.Date `json:"check_in"`
	CheckOut     domain.Date `json:"check_out"`
	Nights       int         `json:"nights"`
	PricePerWeek int64       `json:"price_per_week"`
	Total        int64       `json:"total"`
}

var (
	ErrInvalidRange = errors.New("check-out must be after check-in")
	ErrNoPrice      = errors.New("no price available for the requested dates")
)

// QuoteRange validates the range and computes nights and a prorated total
// from the check-in day's weekly price.
func QuoteRange(checkIn, checkOut domain.Date, periods []domain.AvailabilityPeriod) (*Quote, error) {
	if checkIn.IsZero() || checkOut.IsZero() || !checkOut.After(checkIn) {
		return nil, ErrInvalidRange
	}
	weekly, ok := WeeklyPriceFor(checkIn, periods)
	if !ok {
		return nil, ErrNoPrice
	}
	nights := checkIn.DaysUntil(checkOut)
	return &Quote{
		CheckIn:      checkIn,
		CheckOut:     checkOut,
		Nights:       nights,
		PricePerWeek: weekly,
		Total:        prorate(weekly, nights),
	}, nil
}
