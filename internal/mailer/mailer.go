// Package mailer sends the dealership's notification mail.
package mailer

import "github.com/SainteOfficial/autohaus-service/internal/inventory/domain"

// Mailer is the outbound-mail contract used by the inquiry flow.
type Mailer interface {
	// SendInquiryNotification notifies the dealership inbox about a new
	// customer inquiry. vehicleTitle may be empty for general inquiries.
	SendInquiryNotification(inquiry *domain.Inquiry, vehicleTitle string) error

	// SendInquiryReply sends the admin's reply to the customer.
	SendInquiryReply(inquiry *domain.Inquiry, replyBody string) error
}
