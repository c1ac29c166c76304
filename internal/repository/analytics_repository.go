package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/eventsense/eventsense-api/internal/model"
)

// AnalyticsRepo holds the read-only aggregation queries behind the admin
// and organizer dashboards. Nothing here mutates state or carries an
// invariant of its own; it sums and groups the underlying records.
type AnalyticsRepo struct {
	db *sql.DB
}

// NewAnalyticsRepo returns a new AnalyticsRepo bound to the given database.
func NewAnalyticsRepo(db *sql.DB) *AnalyticsRepo { return &AnalyticsRepo{db: db} }

// EventStatusCounts holds event totals broken down by lifecycle status.
type EventStatusCounts struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// CountEventsByStatus returns event totals per status in one scan.
func (r *AnalyticsRepo) CountEventsByStatus(ctx context.Context) (EventStatusCounts, error) {
	const q = `SELECT
		COUNT(*),
		COALESCE(SUM(status = 'pending'), 0),
		COALESCE(SUM(status = 'approved'), 0),
		COALESCE(SUM(status = 'rejected'), 0)
		FROM events`
	var c EventStatusCounts
	err := r.db.QueryRowContext(ctx, q).Scan(&c.Total, &c.Pending, &c.Approved, &c.Rejected)
	return c, err
}

// CountEventsByStatusForOrganizer is CountEventsByStatus scoped to one
// organizer's events.
func (r *AnalyticsRepo) CountEventsByStatusForOrganizer(ctx context.Context, organizerID uint64) (EventStatusCounts, error) {
	const q = `SELECT
		COUNT(*),
		COALESCE(SUM(status = 'pending'), 0),
		COALESCE(SUM(status = 'approved'), 0),
		COALESCE(SUM(status = 'rejected'), 0)
		FROM events WHERE organizer_id = ?`
	var c EventStatusCounts
	err := r.db.QueryRowContext(ctx, q, organizerID).Scan(&c.Total, &c.Pending, &c.Approved, &c.Rejected)
	return c, err
}

// CountBookings returns the total number of bookings ever created.
func (r *AnalyticsRepo) CountBookings(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM bookings").Scan(&n)
	return n, err
}

// TotalRevenue sums booking amounts. With confirmedOnly false every booking
// counts regardless of status; true restricts the sum to confirmed
// bookings. The choice is an aggregation policy set in configuration.
func (r *AnalyticsRepo) TotalRevenue(ctx context.Context, confirmedOnly bool) (int64, error) {
	q := "SELECT COALESCE(SUM(total_amount), 0) FROM bookings"
	args := []any{}
	if confirmedOnly {
		q += " WHERE status = ?"
		args = append(args, model.BookingConfirmed)
	}
	var total int64
	err := r.db.QueryRowContext(ctx, q, args...).Scan(&total)
	return total, err
}

// CategoryCount pairs a category with the number of approved events in it.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// ApprovedEventsByCategory groups approved events by category, most
// populated category first.
func (r *AnalyticsRepo) ApprovedEventsByCategory(ctx context.Context) ([]CategoryCount, error) {
	const q = `SELECT category, COUNT(*) FROM events
		WHERE status = 'approved'
		GROUP BY category
		ORDER BY COUNT(*) DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]CategoryCount, 0)
	for rows.Next() {
		var cc CategoryCount
		if err := rows.Scan(&cc.Category, &cc.Count); err != nil {
			return nil, err
		}
		out = append(out, cc)
	}
	return out, rows.Err()
}

// RecentBooking is a row of the admin dashboard's latest-bookings feed.
type RecentBooking struct {
	ID           uint64    `json:"id"`
	Reference    string    `json:"bookingReference"`
	Seats        int64     `json:"seats"`
	TotalAmount  int64     `json:"totalAmount"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	AccountName  string    `json:"userName"`
	AccountEmail string    `json:"userEmail"`
	EventTitle   string    `json:"eventTitle"`
	EventDate    time.Time `json:"eventDate"`
}

// RecentBookings returns the latest bookings across all events with holder
// and event identity joined.
func (r *AnalyticsRepo) RecentBookings(ctx context.Context, limit int) ([]RecentBooking, error) {
	const q = `SELECT b.id, b.booking_reference, b.seats, b.total_amount, b.status, b.created_at,
			a.name, a.email, e.title, e.event_date
		FROM bookings b
		JOIN accounts a ON a.id = b.account_id
		JOIN events e ON e.id = b.event_id
		ORDER BY b.created_at DESC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]RecentBooking, 0)
	for rows.Next() {
		var rb RecentBooking
		if err := rows.Scan(&rb.ID, &rb.Reference, &rb.Seats, &rb.TotalAmount, &rb.Status,
			&rb.CreatedAt, &rb.AccountName, &rb.AccountEmail, &rb.EventTitle, &rb.EventDate); err != nil {
			return nil, err
		}
		out = append(out, rb)
	}
	return out, rows.Err()
}

// EventStats is the per-event line of the organizer dashboard. Sold seats,
// revenue and booking count cover confirmed bookings only.
type EventStats struct {
	EventID        uint64    `json:"eventId"`
	Title          string    `json:"title"`
	Date           time.Time `json:"date"`
	Status         string    `json:"status"`
	TotalSeats     int64     `json:"totalSeats"`
	AvailableSeats int64     `json:"availableSeats"`
	SeatsSold      int64     `json:"seatsSold"`
	BookingCount   int64     `json:"bookingCount"`
	Revenue        int64     `json:"revenue"`
}

// EventStatsForOrganizer aggregates confirmed bookings per event for every
// event the organizer owns, newest event first.
func (r *AnalyticsRepo) EventStatsForOrganizer(ctx context.Context, organizerID uint64) ([]EventStats, error) {
	const q = `SELECT e.id, e.title, e.event_date, e.status, e.total_seats, e.available_seats,
			COALESCE(SUM(b.seats), 0), COUNT(b.id), COALESCE(SUM(b.total_amount), 0)
		FROM events e
		LEFT JOIN bookings b ON b.event_id = e.id AND b.status = 'confirmed'
		WHERE e.organizer_id = ?
		GROUP BY e.id, e.title, e.event_date, e.status, e.total_seats, e.available_seats
		ORDER BY e.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, organizerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]EventStats, 0)
	for rows.Next() {
		var s EventStats
		if err := rows.Scan(&s.EventID, &s.Title, &s.Date, &s.Status, &s.TotalSeats,
			&s.AvailableSeats, &s.SeatsSold, &s.BookingCount, &s.Revenue); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// MonthRevenue pairs a "YYYY-MM" bucket with revenue booked in that month.
type MonthRevenue struct {
	Month   string `json:"month"`
	Revenue int64  `json:"revenue"`
}

// MonthlyRevenueForOrganizer sums confirmed-booking revenue on the
// organizer's events, grouped by the booking's creation month, for
// bookings created at or after since. Months without revenue are absent
// from the result; the handler fills the gaps.
func (r *AnalyticsRepo) MonthlyRevenueForOrganizer(ctx context.Context, organizerID uint64, since time.Time) ([]MonthRevenue, error) {
	const q = `SELECT DATE_FORMAT(b.created_at, '%Y-%m'), COALESCE(SUM(b.total_amount), 0)
		FROM bookings b
		JOIN events e ON e.id = b.event_id
		WHERE e.organizer_id = ? AND b.status = 'confirmed' AND b.created_at >= ?
		GROUP BY DATE_FORMAT(b.created_at, '%Y-%m')
		ORDER BY DATE_FORMAT(b.created_at, '%Y-%m')`
	rows, err := r.db.QueryContext(ctx, q, organizerID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]MonthRevenue, 0)
	for rows.Next() {
		var m MonthRevenue
		if err := rows.Scan(&m.Month, &m.Revenue); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
