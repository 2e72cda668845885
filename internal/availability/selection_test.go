package availability

import (
	"testing"
	"time"

	"github.com/rivieracrest/villa-bookings/internal/domain"
)

func summerPeriods() []domain.AvailabilityPeriod {
	return []domain.AvailabilityPeriod{
		period(date(2025, time.July, 1), date(2025, time.July, 31), domain.PeriodAvailable, 7000),
		period(date(2025, time.August, 1), date(2025, time.August, 10), domain.PeriodBooked, 0),
	}
}

func TestSelection_WeekAtSevenThousand(t *testing.T) {
	s := NewSelection(summerPeriods(), today)

	s.Click(date(2025, time.July, 10))
	s.Click(date(2025, time.July, 17))

	if !s.Complete() {
		t.Fatal("selection should be complete")
	}
	if got := s.Nights(); got != 7 {
		t.Fatalf("Nights = %d, want 7", got)
	}
	total, ok := s.Total()
	if !ok || total != 7000 {
		t.Fatalf("Total = %d, %v, want 7000", total, ok)
	}
}

func TestSelection_ProratedTotal(t *testing.T) {
	s := NewSelection(summerPeriods(), today)

	s.Click(date(2025, time.July, 10))
	s.Click(date(2025, time.July, 13))

	if got := s.Nights(); got != 3 {
		t.Fatalf("Nights = %d, want 3", got)
	}
	total, ok := s.Total()
	if !ok || total != 3000 { // round(7000 * 3/7)
		t.Fatalf("Total = %d, %v, want 3000", total, ok)
	}
}

func TestSelection_ClickOnBookedDayIsIgnored(t *testing.T) {
	s := NewSelection(summerPeriods(), today)
	s.Click(date(2025, time.July, 10))

	before := *s.CheckIn
	s.Click(date(2025, time.August, 5)) // booked

	if s.CheckIn == nil || !s.CheckIn.Equal(before) || s.CheckOut != nil {
		t.Fatalf("booked click must be a no-op, got in=%v out=%v", s.CheckIn, s.CheckOut)
	}
}

func TestSelection_ClickOnPastDayIsIgnored(t *testing.T) {
	s := NewSelection(summerPeriods(), today)
	s.Click(date(2025, time.June, 20))

	if s.CheckIn != nil {
		t.Fatalf("past click must be a no-op, got %v", s.CheckIn)
	}
}

func TestSelection_ClickBeforeCheckInRestarts(t *testing.T) {
	s := NewSelection(summerPeriods(), today)

	s.Click(date(2025, time.July, 10))
	s.Click(date(2025, time.July, 5))

	if s.CheckIn == nil || !s.CheckIn.Equal(date(2025, time.July, 5)) {
		t.Fatalf("CheckIn = %v, want 2025-07-05", s.CheckIn)
	}
	if s.CheckOut != nil {
		t.Fatalf("CheckOut = %v, want nil", s.CheckOut)
	}
}

func TestSelection_ClickSameDayRestarts(t *testing.T) {
	s := NewSelection(summerPeriods(), today)

	d := date(2025, time.July, 10)
	s.Click(d)
	s.Click(d)

	if s.CheckIn == nil || !s.CheckIn.Equal(d) || s.CheckOut != nil {
		t.Fatalf("same-day click should restart, got in=%v out=%v", s.CheckIn, s.CheckOut)
	}
}

func TestSelection_ThirdClickStartsNewRange(t *testing.T) {
	s := NewSelection(summerPeriods(), today)

	s.Click(date(2025, time.July, 10))
	s.Click(date(2025, time.July, 17))
	s.Click(date(2025, time.July, 20))

	if s.CheckIn == nil || !s.CheckIn.Equal(date(2025, time.July, 20)) || s.CheckOut != nil {
		t.Fatalf("third click should begin a new selection, got in=%v out=%v", s.CheckIn, s.CheckOut)
	}
}

func TestSelection_TotalUndefinedWithoutPrice(t *testing.T) {
	// no periods at all: days resolve to none, which is selectable, but
	// no price can be shown
	s := NewSelection(nil, today)
	s.Click(date(2025, time.July, 10))
	s.Click(date(2025, time.July, 17))

	if !s.Complete() {
		t.Fatal("selection should be complete")
	}
	if _, ok := s.Total(); ok {
		t.Fatal("Total must be undefined when no price is resolvable")
	}
}

func TestSelection_Clear(t *testing.T) {
	s := NewSelection(summerPeriods(), today)
	s.Click(date(2025, time.July, 10))
	s.Clear()

	if s.CheckIn != nil || s.CheckOut != nil {
		t.Fatal("Clear should reset both endpoints")
	}
	s.Click(date(2025, time.July, 12))
	if s.CheckIn == nil || !s.CheckIn.Equal(date(2025, time.July, 12)) {
		t.Fatal("selection should restart cleanly after Clear")
	}
}

func TestQuoteRange(t *testing.T) {
	q, err := QuoteRange(date(2025, time.July, 10), date(2025, time.July, 17), summerPeriods())
	if err != nil {
		t.Fatalf("QuoteRange: %v", err)
	}
	if q.Nights != 7 || q.Total != 7000 || q.PricePerWeek != 7000 {
		t.Fatalf("quote = %+v", q)
	}

	if _, err := QuoteRange(date(2025, time.July, 17), date(2025, time.July, 10), summerPeriods()); err != ErrInvalidRange {
		t.Fatalf("reversed range: err = %v, want ErrInvalidRange", err)
	}
	if _, err := QuoteRange(date(2025, time.August, 2), date(2025, time.August, 9), summerPeriods()); err != ErrNoPrice {
		t.Fatalf("booked range: err = %v, want ErrNoPrice", err)
	}
}
