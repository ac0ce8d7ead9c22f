// services/mailer.go
package services

import (
	"fmt"
	"log"
	"net/smtp"
	"os"

	"voltworks-backend/models"
)

// Mailer sends plain-text email. Implementations must be safe for concurrent
// use.
type Mailer interface {
	Send(to, subject, body string) error
}

// DefaultMailer is the process-wide mailer, replaced in tests.
var DefaultMailer Mailer = smtpMailer{}

type smtpMailer struct{}

func (smtpMailer) Send(to, subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return fmt.Errorf("SMTP_HOST not set")
	}
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	from := os.Getenv("SMTP_FROM")

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", from, to, subject, body)

	auth := smtp.PlainAuth("", os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASSWORD"), host)
	return smtp.SendMail(host+":"+port, auth, from, []string{to}, []byte(msg))
}

// SendInvoiceEmail emails the payment portal link to the invoice recipient.
// Best-effort: failures are logged and discarded so they can never undo the
// already-generated link or fail the send operation.
func SendInvoiceEmail(business models.User, invoice models.Invoice, portalURL string) {
	if invoice.ClientEmail == "" {
		return
	}

	subject := fmt.Sprintf("Invoice %s from %s", invoice.InvoiceNumber, business.BusinessName)
	body := fmt.Sprintf(
		"Hi %s,\n\nInvoice %s for £%.2f is ready. You can view and pay it here:\n\n%s\n\nThanks,\n%s",
		invoice.ClientName, invoice.InvoiceNumber, invoice.Amount, portalURL, business.BusinessName)

	if err := DefaultMailer.Send(invoice.ClientEmail, subject, body); err != nil {
		log.Printf("invoice email: send to %s failed: %v", invoice.ClientEmail, err)
	}
}
