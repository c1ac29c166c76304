// Package mailer sends transactional email over SMTP. It is only ever
// invoked from the notification consumer, never from a request path, so a
// slow or failing SMTP server cannot affect API latency or outcomes.
package mailer

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"
)

// ErrDisabled is returned when no SMTP host is configured. The consumer
// logs the notification instead of delivering it.
var ErrDisabled = errors.New("mailer disabled: no SMTP host configured")

// Mailer wraps a gomail dialer with the sender identity and the client base
// URL used for links in email bodies.
type Mailer struct {
	dialer    *gomail.Dialer
	fromName  string
	fromEmail string
	clientURL string
}

// New builds a Mailer. When host is empty the Mailer is disabled and every
// send returns ErrDisabled.
func New(host string, port int, user, pass, fromName, fromEmail, clientURL string) *Mailer {
	m := &Mailer{fromName: fromName, fromEmail: fromEmail, clientURL: clientURL}
	if host != "" {
		m.dialer = gomail.NewDialer(host, port, user, pass)
	}
	return m
}

// BookingEmail carries the fields rendered into a booking confirmation.
type BookingEmail struct {
	To          string
	HolderName  string
	Reference   string
	EventTitle  string
	EventDate   string
	EventTime   string
	Venue       string
	Seats       int64
	TotalAmount int64
	BookingID   uint64
}

// SendBookingConfirmation emails the ticket to the booking holder with the
// QR artifact embedded inline.
func (m *Mailer) SendBookingConfirmation(b BookingEmail, qrPNG []byte) error {
	if m.dialer == nil {
		return ErrDisabled
	}
	ticketURL := fmt.Sprintf("%s/user/bookings/%d", m.clientURL, b.BookingID)

	msg := gomail.NewMessage()
	msg.SetHeader("From", fmt.Sprintf("%s <%s>", m.fromName, m.fromEmail))
	msg.SetHeader("To", b.To)
	msg.SetHeader("Subject", "Booking Confirmation - EventSense")
	msg.SetBody("text/html", bookingConfirmationBody(b, ticketURL))
	msg.Embed("qrcode.png", gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(qrPNG)
		return err
	}))
	return m.dialer.DialAndSend(msg)
}

// ApprovalEmail carries the fields rendered into an event approval notice.
type ApprovalEmail struct {
	To            string
	OrganizerName string
	EventTitle    string
}

// SendEventApproved notifies an organizer that their event went live.
func (m *Mailer) SendEventApproved(a ApprovalEmail) error {
	if m.dialer == nil {
		return ErrDisabled
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", fmt.Sprintf("%s <%s>", m.fromName, m.fromEmail))
	msg.SetHeader("To", a.To)
	msg.SetHeader("Subject", "Event Approved - EventSense")
	msg.SetBody("text/html", eventApprovedBody(a))
	return m.dialer.DialAndSend(msg)
}
