package mailer

import (
	"github.com/rivieracrest/villa-bookings/internal/domain"
	"github.com/rivieracrest/villa-bookings/pkg/logger"
)

// DevMailer logs emails instead of sending them.
type DevMailer struct{}

func NewDevMailer() *DevMailer { return &DevMailer{} }

func (d *DevMailer) SendInquiryAlert(inq *domain.Inquiry, prop *domain.Property) error {
	msg := renderAlert(inq, prop)
	logger.Info("[DEV MAIL] inquiry alert",
		"inquiry_id", inq.ID,
		"subject", msg.Subject,
		"body", msg.Text,
	)
	return nil
}

func (d *DevMailer) SendInquiryConfirmation(inq *domain.Inquiry, prop *domain.Property) error {
	msg := renderConfirmation(inq, prop)
	logger.Info("[DEV MAIL] inquiry confirmation",
		"inquiry_id", inq.ID,
		"to", inq.Email,
		"locale", inq.Locale,
		"subject", msg.Subject,
		"body", msg.Text,
	)
	return nil
}

var _ Service = (*DevMailer)(nil)
