package mailer

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rivieracrest/villa-bookings/internal/domain"
)

// SMTPMailer covers local dev (Mailpit) and plain staging SMTP.
type SMTPMailer struct {
	Host    string
	Port    int
	From    string
	User    string
	Pass    string
	UseTLS  bool
	AlertTo string
}

func NewSMTPMailer(host string, port int, from, user, pass string, useTLS bool, alertTo string) *SMTPMailer {
	return &SMTPMailer{
		Host:    strings.TrimSpace(host),
		Port:    port,
		From:    strings.TrimSpace(from),
		User:    strings.TrimSpace(user),
		Pass:    strings.TrimSpace(pass),
		UseTLS:  useTLS,
		AlertTo: strings.TrimSpace(alertTo),
	}
}

func (s *SMTPMailer) SendInquiryAlert(inq *domain.Inquiry, prop *domain.Property) error {
	return s.send(s.AlertTo, renderAlert(inq, prop))
}

func (s *SMTPMailer) SendInquiryConfirmation(inq *domain.Inquiry, prop *domain.Property) error {
	return s.send(inq.Email, renderConfirmation(inq, prop))
}

func (s *SMTPMailer) send(toEmail string, msg message) error {
	toEmail = strings.TrimSpace(toEmail)
	if toEmail == "" {
		return fmt.Errorf("empty recipient email")
	}

	var buf bytes.Buffer
	boundary := "mixed-boundary"
	fmt.Fprintf(&buf, "From: %s\r\n", s.From)
	fmt.Fprintf(&buf, "To: %s\r\n", toEmail)
	fmt.Fprintf(&buf, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", boundary)

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	fmt.Fprintf(&buf, "Content-Type: text/plain; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&buf, "%s\r\n\r\n", msg.Text)

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	fmt.Fprintf(&buf, "Content-Type: text/html; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&buf, "%s\r\n\r\n", msg.HTML)

	fmt.Fprintf(&buf, "--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)

	// Mailpit on 1025: no auth, no TLS
	if !s.UseTLS && s.User == "" {
		return smtp.SendMail(addr, nil, s.From, []string{toEmail}, buf.Bytes())
	}

	var auth smtp.Auth
	if s.User != "" {
		auth = smtp.PlainAuth("", s.User, s.Pass, s.Host)
	}

	// SendMail negotiates STARTTLS when the server advertises it
	sendErr := smtp.SendMail(addr, auth, s.From, []string{toEmail}, buf.Bytes())
	if sendErr == nil {
		return nil
	}

	// fall back to implicit TLS (port 465 style) when requested
	if s.UseTLS {
		tlsCfg := &tls.Config{ServerName: s.Host}
		conn, err := tls.Dial("tcp", addr, tlsCfg)
		if err != nil {
			return err
		}
		defer conn.Close()

		c, err := smtp.NewClient(conn, s.Host)
		if err != nil {
			return err
		}
		defer c.Quit()

		if s.User != "" {
			if err := c.Auth(auth); err != nil {
				return err
			}
		}
		if err := c.Mail(s.From); err != nil {
			return err
		}
		if err := c.Rcpt(toEmail); err != nil {
			return err
		}
		w, err := c.Data()
		if err != nil {
			return err
		}
		if _, err := w.Write(buf.Bytes()); err != nil {
			return err
		}
		return w.Close()
	}

	return sendErr
}

var _ Service = (*SMTPMailer)(nil)
