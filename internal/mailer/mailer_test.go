package mailer

import (
	"errors"
	"strings"
	"testing"
)

func TestDisabledMailerReturnsErrDisabled(t *testing.T) {
	m := New("", 587, "", "", "EventSense", "no-reply@eventsense.local", "http://localhost:5173")
	if err := m.SendBookingConfirmation(BookingEmail{To: "a@b.c"}, nil); !errors.Is(err, ErrDisabled) {
		t.Errorf("booking send: err = %v, want ErrDisabled", err)
	}
	if err := m.SendEventApproved(ApprovalEmail{To: "a@b.c"}); !errors.Is(err, ErrDisabled) {
		t.Errorf("approval send: err = %v, want ErrDisabled", err)
	}
}

func TestBookingConfirmationBody(t *testing.T) {
	body := bookingConfirmationBody(BookingEmail{
		HolderName:  "Dana",
		Reference:   "ES-X-ABCDE",
		EventTitle:  "Jazz Night",
		EventDate:   "2026-11-20",
		EventTime:   "20:00",
		Venue:       "Blue Note",
		Seats:       2,
		TotalAmount: 4998,
	}, "http://localhost:5173/user/bookings/7")

	for _, want := range []string{
		"Dana", "ES-X-ABCDE", "Jazz Night", "2026-11-20", "20:00",
		"Blue Note", "4998", "cid:qrcode.png", "http://localhost:5173/user/bookings/7",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestBookingConfirmationBodyEscapesHTML(t *testing.T) {
	body := bookingConfirmationBody(BookingEmail{
		HolderName: "<script>alert(1)</script>",
		EventTitle: "Safe & Sound",
	}, "")
	if strings.Contains(body, "<script>") {
		t.Error("holder name not HTML-escaped")
	}
	if !strings.Contains(body, "Safe &amp; Sound") {
		t.Error("event title not HTML-escaped")
	}
}

func TestEventApprovedBody(t *testing.T) {
	body := eventApprovedBody(ApprovalEmail{
		OrganizerName: "Org",
		EventTitle:    "Expo",
	})
	if !strings.Contains(body, "Org") || !strings.Contains(body, "Expo") {
		t.Errorf("body missing fields: %s", body)
	}
}
