package mailer

import (
	"bytes"
	"html/template"
)

// Templates are parsed once at init; a malformed template is a programming
// error, so Must is appropriate.
var (
	bookingTmpl = template.Must(template.New("booking").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Booking Confirmed 🎉</h2>
  <p>Hi {{.HolderName}},</p>
  <p>Your booking for <strong>{{.EventTitle}}</strong> is confirmed.</p>
  <table cellpadding="6" style="border-collapse: collapse;">
    <tr><td><strong>Reference</strong></td><td>{{.Reference}}</td></tr>
    <tr><td><strong>Date</strong></td><td>{{.EventDate}}</td></tr>
    <tr><td><strong>Time</strong></td><td>{{.EventTime}}</td></tr>
    <tr><td><strong>Venue</strong></td><td>{{.Venue}}</td></tr>
    <tr><td><strong>Seats</strong></td><td>{{.Seats}}</td></tr>
    <tr><td><strong>Total</strong></td><td>{{.TotalAmount}}</td></tr>
  </table>
  <p>Show this QR code at the entrance:</p>
  <img src="cid:qrcode.png" alt="Ticket QR code" width="300" height="300"/>
  <p><a href="{{.TicketURL}}">View your ticket online</a></p>
  <p>See you there!<br/>The EventSense team</p>
</div>`))

	approvalTmpl = template.Must(template.New("approval").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Your event is live 🎊</h2>
  <p>Hi {{.OrganizerName}},</p>
  <p>Good news — <strong>{{.EventTitle}}</strong> has been approved and is now
  visible to everyone browsing EventSense.</p>
  <p>The EventSense team</p>
</div>`))
)

type bookingTmplData struct {
	BookingEmail
	TicketURL string
}

func bookingConfirmationBody(b BookingEmail, ticketURL string) string {
	var buf bytes.Buffer
	// Errors are impossible for a vetted template over a plain struct.
	_ = bookingTmpl.Execute(&buf, bookingTmplData{BookingEmail: b, TicketURL: ticketURL})
	return buf.String()
}

func eventApprovedBody(a ApprovalEmail) string {
	var buf bytes.Buffer
	_ = approvalTmpl.Execute(&buf, a)
	return buf.String()
}
