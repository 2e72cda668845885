package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"

	"github.com/rivieracrest/villa-bookings/internal/domain"
)

type MailerSendClient struct {
	client  *mailersend.Mailersend
	from    mailersend.From
	alertTo mailersend.Recipient
	enabled bool
}

func NewMailerSend(apiKey, fromName, fromEmail, alertName, alertEmail string) *MailerSendClient {
	m := &MailerSendClient{
		enabled: apiKey != "" && fromEmail != "",
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
		alertTo: mailersend.Recipient{
			Name:  alertName,
			Email: alertEmail,
		},
	}

	if m.enabled {
		m.client = mailersend.NewMailersend(apiKey)
	}

	return m
}

func (m *MailerSendClient) SendInquiryAlert(inq *domain.Inquiry, prop *domain.Property) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}
	msg := renderAlert(inq, prop)
	return m.send(m.alertTo.Email, m.alertTo.Name, msg)
}

func (m *MailerSendClient) SendInquiryConfirmation(inq *domain.Inquiry, prop *domain.Property) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}
	msg := renderConfirmation(inq, prop)
	return m.send(inq.Email, inq.FullName, msg)
}

func (m *MailerSendClient) send(toEmail, toName string, msg message) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	out := m.client.Email.NewMessage()
	out.SetFrom(m.from)
	out.SetRecipients([]mailersend.Recipient{{Name: toName, Email: toEmail}})
	out.SetSubject(msg.Subject)

	if strings.TrimSpace(msg.Text) != "" {
		out.SetText(msg.Text)
	}
	if strings.TrimSpace(msg.HTML) != "" {
		out.SetHTML(msg.HTML)
	}

	_, err := m.client.Email.Send(ctx, out)
	return err
}

var _ Service = (*MailerSendClient)(nil)
