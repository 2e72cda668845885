package mailer

import "github.com/rivieracrest/villa-bookings/internal/domain"

// Service sends the two inquiry notifications. prop may be nil when the
// inquiry did not reference a known property.
type Service interface {
	// SendInquiryAlert notifies the back office about a new lead.
	SendInquiryAlert(inq *domain.Inquiry, prop *domain.Property) error
	// SendInquiryConfirmation acknowledges the inquiry to the customer
	// in their locale.
	SendInquiryConfirmation(inq *domain.Inquiry, prop *domain.Property) error
}
