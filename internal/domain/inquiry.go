package domain

import (
	"strings"
	"time"

	"github.com/rivieracrest/villa-bookings/internal/utils"
)

type InquiryStatus string

const (
	InquiryNew       InquiryStatus = "new"
	InquiryContacted InquiryStatus = "contacted"
	InquiryClosed    InquiryStatus = "closed"
	InquiryBooked    InquiryStatus = "booked"
)

func ParseInquiryStatus(s string) (InquiryStatus, bool) {
	switch InquiryStatus(s) {
	case InquiryNew, InquiryContacted, InquiryClosed, InquiryBooked:
		return InquiryStatus(s), true
	default:
		return "", false
	}
}

// Inquiry is a lead captured from the public contact/booking form.
type Inquiry struct {
	ID         int64         `json:"id"`
	PropertyID *int64        `json:"property_id,omitempty"`
	CheckIn    *Date         `json:"check_in,omitempty"`
	CheckOut   *Date         `json:"check_out,omitempty"`
	Guests     *int          `json:"guests,omitempty"`
	FullName   string        `json:"full_name"`
	Email      string        `json:"email"`
	Phone      string        `json:"phone"`
	Message    string        `json:"message"`
	SourceURL  string        `json:"source_url"`
	Locale     Locale        `json:"locale"`
	Status     InquiryStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
}

// InquiryCreateReq is the public submission payload.
type InquiryCreateReq struct {
	PropertySlug string `json:"property_slug"`
	CheckIn      *Date  `json:"check_in,omitempty"`
	CheckOut     *Date  `json:"check_out,omitempty"`
	Guests       *int   `json:"guests,omitempty"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Message      string `json:"message"`
	SourceURL    string `json:"source_url"`
	Locale       string `json:"locale"`
}

// FieldErrors maps a field name to a human-readable problem.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Normalize trims inputs and canonicalizes the email before validation.
func (r *InquiryCreateReq) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = utils.NormalizeEmail(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Message = strings.TrimSpace(r.Message)
	r.PropertySlug = strings.TrimSpace(r.PropertySlug)
}

// Validate enforces the lead-capture invariants: a name and a syntactically
// valid email are required, the phone (if present) must carry at least
// seven digits, and a date range must be ordered.
func (r *InquiryCreateReq) Validate() FieldErrors {
	errs := FieldErrors{}
	if r.FullName == "" {
		errs["full_name"] = "full name is required"
	}
	if !utils.IsValidEmail(r.Email) {
		errs["email"] = "a valid email address is required"
	}
	if r.Phone != "" && !utils.IsValidPhone(r.Phone) {
		errs["phone"] = "phone must contain at least 7 digits"
	}
	if r.Guests != nil && *r.Guests < 1 {
		errs["guests"] = "guest count must be at least 1"
	}
	if r.CheckIn != nil && r.CheckOut != nil && !r.CheckOut.After(*r.CheckIn) {
		errs["check_out"] = "check-out must be after check-in"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
