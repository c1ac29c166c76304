package model

import "time"

// Event lifecycle states. An event is created pending, an admin moves it to
// approved or rejected, and neither terminal state transitions back.
const (
	EventPending  = "pending"
	EventApproved = "approved"
	EventRejected = "rejected"
)

// Categories is the closed enumeration of event categories.
var Categories = []string{
	"Music",
	"Technology",
	"Sports",
	"Art",
	"Education",
	"Business",
	"Food",
	"Health",
	"Entertainment",
	"Other",
}

// ValidCategory reports whether s is a member of Categories.
func ValidCategory(s string) bool {
	for _, c := range Categories {
		if c == s {
			return true
		}
	}
	return false
}

// Event represents a row in the `events` table. AvailableSeats is set to
// TotalSeats exactly once at creation and only ever decreases; the booking
// path enforces 0 <= AvailableSeats <= TotalSeats with a conditional update
// at the storage layer. BookingCount, AverageRating and ReviewCount are
// denormalized aggregates maintained under the same transaction as the
// write that changes them.
//
// Fields:
//
//	ID             – primary key identifier.
//	OrganizerID    – owning organizer account.
//	Title          – event title.
//	Description    – free-form description.
//	Category       – one of Categories.
//	Location       – city/area, substring-searchable.
//	Venue          – venue name.
//	Date           – calendar date of the event.
//	Time           – human-readable start time (e.g. "19:30").
//	Price          – ticket price per seat, whole currency units, >= 0.
//	TotalSeats     – fixed capacity, >= 1.
//	AvailableSeats – remaining capacity, 0..TotalSeats.
//	Status         – pending/approved/rejected.
//	BookingCount   – number of bookings made, monotonically non-decreasing.
//	AverageRating  – mean of all review ratings.
//	ReviewCount    – number of reviews.
type Event struct {
	ID             uint64    // events.id
	OrganizerID    uint64    // events.organizer_id
	Title          string    // events.title
	Description    string    // events.description
	Category       string    // events.category
	Location       string    // events.location
	Venue          string    // events.venue
	Date           time.Time // events.event_date
	Time           string    // events.event_time
	Price          int64     // events.price
	TotalSeats     int64     // events.total_seats
	AvailableSeats int64     // events.available_seats
	Status         string    // events.status
	BookingCount   int64     // events.booking_count
	AverageRating  float64   // events.average_rating
	ReviewCount    int64     // events.review_count
	CreatedAt      time.Time // events.created_at
	UpdatedAt      time.Time // events.updated_at

	// Organizer contact, populated by joined reads only.
	OrganizerName  string
	OrganizerEmail string
	OrganizerPhone string
}
