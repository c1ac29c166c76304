package handler

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/eventsense/eventsense-api/internal/model"
	"github.com/eventsense/eventsense-api/internal/repository"
)

func TestSplitPrefs(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"Music", []string{"Music"}},
		{"Music,Sports", []string{"Music", "Sports"}},
		{" Music , , Sports ", []string{"Music", "Sports"}},
	}
	for _, tc := range cases {
		if got := splitPrefs(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("splitPrefs(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestJoinPrefs(t *testing.T) {
	if got := joinPrefs([]string{" Music ", "", "Sports"}); got != "Music,Sports" {
		t.Errorf("joinPrefs = %q", got)
	}
	if got := joinPrefs(nil); got != "" {
		t.Errorf("joinPrefs(nil) = %q", got)
	}
}

func TestNewEventJSON(t *testing.T) {
	ev := model.Event{
		ID:             9,
		OrganizerID:    3,
		Title:          "Expo",
		Category:       "Technology",
		Date:           time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC),
		Time:           "18:00",
		Price:          2499,
		TotalSeats:     500,
		AvailableSeats: 498,
		Status:         model.EventApproved,
		OrganizerName:  "Org",
		OrganizerEmail: "org@example.com",
	}
	j := newEventJSON(ev)
	if j.Date != "2026-12-24" {
		t.Errorf("date = %q, want 2026-12-24", j.Date)
	}
	if j.Organizer.ID != 3 || j.Organizer.Email != "org@example.com" {
		t.Errorf("organizer part = %+v", j.Organizer)
	}
	if j.AvailableSeats != 498 || j.TotalSeats != 500 {
		t.Errorf("seats = %d/%d", j.AvailableSeats, j.TotalSeats)
	}
}

func TestNewBookingJSONEmbedsQRDataURL(t *testing.T) {
	d := repository.BookingDetail{
		Booking: model.Booking{
			ID:          1,
			Reference:   "ES-X-ABCDE",
			Seats:       2,
			TotalAmount: 4998,
			Status:      model.BookingConfirmed,
			QRCode:      []byte{0x89, 'P', 'N', 'G'},
		},
		AccountName:  "Dana",
		AccountEmail: "dana@example.com",
	}
	j := newBookingJSON(d)
	if j.Reference != "ES-X-ABCDE" || j.TotalAmount != 4998 {
		t.Errorf("booking json = %+v", j)
	}
	if !strings.HasPrefix(j.QRCode, "data:image/png;base64,") {
		t.Errorf("qr code not a data URL: %q", j.QRCode)
	}
	if j.User.Name != "Dana" {
		t.Errorf("user part = %+v", j.User)
	}

	d.Booking.QRCode = nil
	if j := newBookingJSON(d); j.QRCode != "" {
		t.Errorf("empty qr should serialize empty, got %q", j.QRCode)
	}
}
