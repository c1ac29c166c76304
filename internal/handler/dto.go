package handler

import (
	"strings"
	"time"

	"github.com/eventsense/eventsense-api/internal/model"
	"github.com/eventsense/eventsense-api/internal/repository"
	"github.com/eventsense/eventsense-api/internal/ticket"
)

// ----- response shapes -----
//
// The wire format uses camelCase keys and nests the joined organizer/holder
// contact details as small objects. Dates render as YYYY-MM-DD because event
// dates are calendar dates, not instants.

type organizerPart struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type eventJSON struct {
	ID             uint64        `json:"id"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	Category       string        `json:"category"`
	Location       string        `json:"location"`
	Venue          string        `json:"venue"`
	Date           string        `json:"date"`
	Time           string        `json:"time"`
	Price          int64         `json:"price"`
	TotalSeats     int64         `json:"totalSeats"`
	AvailableSeats int64         `json:"availableSeats"`
	Status         string        `json:"status"`
	BookingCount   int64         `json:"bookingCount"`
	AverageRating  float64       `json:"averageRating"`
	ReviewCount    int64         `json:"reviewCount"`
	Organizer      organizerPart `json:"organizer"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

func newEventJSON(ev model.Event) eventJSON {
	return eventJSON{
		ID:             ev.ID,
		Title:          ev.Title,
		Description:    ev.Description,
		Category:       ev.Category,
		Location:       ev.Location,
		Venue:          ev.Venue,
		Date:           ev.Date.Format("2006-01-02"),
		Time:           ev.Time,
		Price:          ev.Price,
		TotalSeats:     ev.TotalSeats,
		AvailableSeats: ev.AvailableSeats,
		Status:         ev.Status,
		BookingCount:   ev.BookingCount,
		AverageRating:  ev.AverageRating,
		ReviewCount:    ev.ReviewCount,
		Organizer: organizerPart{
			ID:    ev.OrganizerID,
			Name:  ev.OrganizerName,
			Email: ev.OrganizerEmail,
			Phone: ev.OrganizerPhone,
		},
		CreatedAt: ev.CreatedAt,
		UpdatedAt: ev.UpdatedAt,
	}
}

func newEventListJSON(events []model.Event) []eventJSON {
	out := make([]eventJSON, 0, len(events))
	for _, ev := range events {
		out = append(out, newEventJSON(ev))
	}
	return out
}

type holderPart struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type bookingJSON struct {
	ID          uint64     `json:"id"`
	Reference   string     `json:"bookingReference"`
	Seats       int64      `json:"seats"`
	TotalAmount int64      `json:"totalAmount"`
	Status      string     `json:"status"`
	QRCode      string     `json:"qrCode,omitempty"`
	User        holderPart `json:"user"`
	Event       eventJSON  `json:"event"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func newBookingJSON(d repository.BookingDetail) bookingJSON {
	b := bookingJSON{
		ID:          d.Booking.ID,
		Reference:   d.Booking.Reference,
		Seats:       d.Booking.Seats,
		TotalAmount: d.Booking.TotalAmount,
		Status:      d.Booking.Status,
		User:        holderPart{Name: d.AccountName, Email: d.AccountEmail, Phone: d.AccountPhone},
		Event:       newEventJSON(d.Event),
		CreatedAt:   d.Booking.CreatedAt,
	}
	if len(d.Booking.QRCode) > 0 {
		b.QRCode = ticket.DataURL(d.Booking.QRCode)
	}
	return b
}

func newBookingListJSON(details []repository.BookingDetail) []bookingJSON {
	out := make([]bookingJSON, 0, len(details))
	for _, d := range details {
		out = append(out, newBookingJSON(d))
	}
	return out
}

type reviewJSON struct {
	ID        uint64    `json:"id"`
	EventID   uint64    `json:"eventId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	UserName  string    `json:"userName"`
	CreatedAt time.Time `json:"createdAt"`
}

func newReviewJSON(rv model.Review) reviewJSON {
	return reviewJSON{
		ID:        rv.ID,
		EventID:   rv.EventID,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		UserName:  rv.AccountName,
		CreatedAt: rv.CreatedAt,
	}
}

type accountJSON struct {
	ID                  uint64    `json:"id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	Phone               string    `json:"phone,omitempty"`
	Role                string    `json:"role"`
	PreferredCategories []string  `json:"preferredCategories"`
	PreferredLocations  []string  `json:"preferredLocations"`
	CreatedAt           time.Time `json:"createdAt"`
}

func newAccountJSON(a model.Account) accountJSON {
	return accountJSON{
		ID:                  a.ID,
		Name:                a.Name,
		Email:               a.Email,
		Phone:               a.Phone,
		Role:                a.Role,
		PreferredCategories: splitPrefs(a.PreferredCategories),
		PreferredLocations:  splitPrefs(a.PreferredLocations),
		CreatedAt:           a.CreatedAt,
	}
}

// splitPrefs turns a comma-joined preference set back into a slice, dropping
// empty entries so an unset preference serializes as [].
func splitPrefs(s string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// joinPrefs is the inverse of splitPrefs, used when storing preferences.
func joinPrefs(items []string) string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if p := strings.TrimSpace(it); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ",")
}
