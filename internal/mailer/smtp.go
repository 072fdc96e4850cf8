package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/SainteOfficial/autohaus-service/internal/inventory/domain"
	"github.com/SainteOfficial/autohaus-service/internal/platform/logger"
)

// SMTPMailer implements Mailer over a plain SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	inbox  string
	logger *logger.Logger
}

func NewSMTPMailer(host string, port int, username, password, from, inbox string, log *logger.Logger) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		inbox:  inbox,
		logger: log,
	}
}

func (m *SMTPMailer) SendInquiryNotification(inquiry *domain.Inquiry, vehicleTitle string) error {
	subject := "New inquiry: " + inquiry.Subject
	if vehicleTitle != "" {
		subject = fmt.Sprintf("New inquiry about %s: %s", vehicleTitle, inquiry.Subject)
	}

	body := fmt.Sprintf("From: %s <%s>\nPhone: %s\n\n%s",
		inquiry.Name, inquiry.Email, inquiry.Phone, inquiry.Message)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.inbox)
	msg.SetHeader("Reply-To", inquiry.Email)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error("failed to send inquiry notification", "inquiry_id", inquiry.ID, "error", err)
		return fmt.Errorf("send inquiry notification: %w", err)
	}
	return nil
}

func (m *SMTPMailer) SendInquiryReply(inquiry *domain.Inquiry, replyBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", inquiry.Email)
	msg.SetHeader("Subject", "Re: "+inquiry.Subject)
	msg.SetBody("text/plain", replyBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error("failed to send inquiry reply", "inquiry_id", inquiry.ID, "error", err)
		return fmt.Errorf("send inquiry reply: %w", err)
	}
	return nil
}
