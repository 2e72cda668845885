package mailer

import (
	"strings"
	"testing"
	"time"

	"github.com/rivieracrest/villa-bookings/internal/domain"
)

func testInquiry(loc domain.Locale) *domain.Inquiry {
	in := domain.NewDate(2025, time.July, 10)
	out := domain.NewDate(2025, time.July, 17)
	guests := 6
	return &domain.Inquiry{
		ID:       1,
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "+15551234567",
		CheckIn:  &in,
		CheckOut: &out,
		Guests:   &guests,
		Locale:   loc,
	}
}

func testVilla() *domain.Property {
	return &domain.Property{
		Slug: "villa-azura", Kind: domain.KindVilla,
		NameEN: "Villa Azura", NameDE: "Villa Azura",
		Guests: 10, Bedrooms: 5, Bathrooms: 4,
		HeroImage: "https://cdn.example.com/azura.jpg",
	}
}

func TestRenderConfirmation_English(t *testing.T) {
	msg := renderConfirmation(testInquiry(domain.LocaleEN), testVilla())

	if msg.Subject != "Your inquiry for Villa Azura" {
		t.Errorf("subject = %q", msg.Subject)
	}
	if !strings.Contains(msg.Text, "Dear Jane Doe,") {
		t.Errorf("missing greeting in %q", msg.Text)
	}
	if !strings.Contains(msg.Text, "2025-07-10") || !strings.Contains(msg.Text, "2025-07-17") {
		t.Errorf("dates missing in %q", msg.Text)
	}
	if !strings.Contains(msg.HTML, "azura.jpg") {
		t.Errorf("hero image missing in HTML")
	}
}

func TestRenderConfirmation_German(t *testing.T) {
	msg := renderConfirmation(testInquiry(domain.LocaleDE), testVilla())

	if msg.Subject != "Ihre Anfrage für Villa Azura" {
		t.Errorf("subject = %q", msg.Subject)
	}
	if !strings.Contains(msg.Text, "vielen Dank für Ihre Anfrage") {
		t.Errorf("German body missing in %q", msg.Text)
	}
	if !strings.Contains(msg.Text, "Reisedaten") {
		t.Errorf("German dates label missing in %q", msg.Text)
	}
}

func TestRenderConfirmation_NoProperty(t *testing.T) {
	msg := renderConfirmation(testInquiry(domain.LocaleEN), nil)
	if msg.Subject != "We received your inquiry" {
		t.Errorf("subject = %q", msg.Subject)
	}
}

func TestRenderAlert(t *testing.T) {
	inq := testInquiry(domain.LocaleDE) // alert stays in English
	inq.Message = "We would love a sea view."
	msg := renderAlert(inq, testVilla())

	if msg.Subject != "New inquiry: Villa Azura — Jane Doe" {
		t.Errorf("subject = %q", msg.Subject)
	}
	for _, want := range []string{"jane@example.com", "+15551234567", "Guests: 6", "sea view"} {
		if !strings.Contains(msg.Text, want) {
			t.Errorf("alert text missing %q:\n%s", want, msg.Text)
		}
	}
}

func TestRenderAlert_FlexibleDates(t *testing.T) {
	inq := testInquiry(domain.LocaleEN)
	inq.CheckIn, inq.CheckOut = nil, nil
	msg := renderAlert(inq, nil)

	if !strings.Contains(msg.Text, "Dates: flexible") {
		t.Errorf("expected flexible dates line in %q", msg.Text)
	}
	if msg.Subject != "New inquiry from Jane Doe" {
		t.Errorf("subject = %q", msg.Subject)
	}
}
