package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/eventsense/eventsense-api/internal/model"
)

// ErrEventNotFound is returned when an event lookup matches no row.
var ErrEventNotFound = errors.New("event not found")

// EventRepo provides CRUD operations and the seat-inventory mutation for
// events. The only shared-mutable state in the system is the
// available_seats / booking_count pair on an event row; every write to it
// goes through ReserveSeatsTx, which serializes concurrent bookings with a
// conditional UPDATE at the storage layer instead of an application-level
// read-then-write.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns a new EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions that
// span events and bookings.
func (r *EventRepo) DB() *sql.DB { return r.db }

const eventCols = `e.id, e.organizer_id, e.title, e.description, e.category, e.location, e.venue,
       e.event_date, e.event_time, e.price, e.total_seats, e.available_seats, e.status,
       e.booking_count, e.average_rating, e.review_count, e.created_at, e.updated_at,
       a.name, a.email, a.phone`

const eventFrom = ` FROM events e JOIN accounts a ON a.id = e.organizer_id`

func scanEvent(row interface{ Scan(...any) error }) (model.Event, error) {
	var ev model.Event
	err := row.Scan(&ev.ID, &ev.OrganizerID, &ev.Title, &ev.Description, &ev.Category,
		&ev.Location, &ev.Venue, &ev.Date, &ev.Time, &ev.Price, &ev.TotalSeats,
		&ev.AvailableSeats, &ev.Status, &ev.BookingCount, &ev.AverageRating,
		&ev.ReviewCount, &ev.CreatedAt, &ev.UpdatedAt,
		&ev.OrganizerName, &ev.OrganizerEmail, &ev.OrganizerPhone)
	return ev, err
}

func (r *EventRepo) queryEvents(ctx context.Context, q string, args ...any) ([]model.Event, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]model.Event, 0)
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Create inserts a new event. Status is always pending and available_seats
// starts equal to total_seats; neither is caller-controlled. The generated
// ID is written back onto the event.
func (r *EventRepo) Create(ctx context.Context, ev *model.Event) error {
	const q = `INSERT INTO events
		(organizer_id, title, description, category, location, venue, event_date, event_time,
		 price, total_seats, available_seats, status)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`
	res, err := r.db.ExecContext(ctx, q,
		ev.OrganizerID, ev.Title, ev.Description, ev.Category, ev.Location, ev.Venue,
		ev.Date, ev.Time, ev.Price, ev.TotalSeats, ev.TotalSeats, model.EventPending)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	ev.ID = uint64(id)
	ev.AvailableSeats = ev.TotalSeats
	ev.Status = model.EventPending
	return nil
}

// GetByID returns an event of any status, joined with its organizer's
// contact details. Returns ErrEventNotFound when absent.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (model.Event, error) {
	ev, err := scanEvent(r.db.QueryRowContext(ctx,
		"SELECT "+eventCols+eventFrom+" WHERE e.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Event{}, ErrEventNotFound
	}
	return ev, err
}

// Update rewrites the mutable fields of an event. Counters and status are
// deliberately excluded: available_seats only moves through ReserveSeatsTx,
// status only through UpdateStatus. When total_seats changes, available
// seats shift by the same delta so already-sold seats stay accounted for;
// the caller validates that the delta cannot push availability negative.
func (r *EventRepo) Update(ctx context.Context, ev *model.Event, seatDelta int64) error {
	const q = `UPDATE events SET
		title = ?, description = ?, category = ?, location = ?, venue = ?,
		event_date = ?, event_time = ?, price = ?,
		total_seats = ?, available_seats = available_seats + ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q,
		ev.Title, ev.Description, ev.Category, ev.Location, ev.Venue,
		ev.Date, ev.Time, ev.Price, ev.TotalSeats, seatDelta, ev.ID)
	return err
}

// Delete removes an event. Deletion is refused with ErrConflict while
// confirmed bookings reference the event, so no booking is ever orphaned.
func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
	var n int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE event_id = ? AND status = ?",
		id, model.BookingConfirmed).Scan(&n)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrEventNotFound
	}
	return nil
}

// UpdateStatus moves an event to approved or rejected. The caller validates
// the status value and the admin role.
func (r *EventRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE events SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrEventNotFound
	}
	return nil
}

// ListByOrganizer returns every event owned by an organizer, newest first.
func (r *EventRepo) ListByOrganizer(ctx context.Context, organizerID uint64) ([]model.Event, error) {
	return r.queryEvents(ctx,
		"SELECT "+eventCols+eventFrom+" WHERE e.organizer_id = ? ORDER BY e.created_at DESC",
		organizerID)
}

// ListPending returns all events awaiting moderation, newest first.
func (r *EventRepo) ListPending(ctx context.Context) ([]model.Event, error) {
	return r.queryEvents(ctx,
		"SELECT "+eventCols+eventFrom+" WHERE e.status = ? ORDER BY e.created_at DESC",
		model.EventPending)
}

// ListRecommended returns up to limit approved events matching the given
// preference sets, best rated first, then most booked. Empty preference
// slices put no restriction on that dimension, so an account without
// preferences falls back to all approved events.
func (r *EventRepo) ListRecommended(ctx context.Context, categories, locations []string, limit int) ([]model.Event, error) {
	where := []string{"e.status = ?"}
	args := []any{model.EventApproved}
	if len(categories) > 0 {
		where = append(where, "e.category IN ("+placeholders(len(categories))+")")
		for _, c := range categories {
			args = append(args, c)
		}
	}
	if len(locations) > 0 {
		where = append(where, "e.location IN ("+placeholders(len(locations))+")")
		for _, l := range locations {
			args = append(args, l)
		}
	}
	args = append(args, limit)
	q := "SELECT " + eventCols + eventFrom +
		" WHERE " + strings.Join(where, " AND ") +
		" ORDER BY e.average_rating DESC, e.booking_count DESC LIMIT ?"
	return r.queryEvents(ctx, q, args...)
}

// ReserveSeatsTx atomically claims seats on an approved event inside the
// given transaction. The decrement and the booking-count increment are a
// single conditional UPDATE guarded by available_seats >= seats, so the sum
// of seats across committed bookings can never exceed total_seats no matter
// how requests interleave. When the guard fails the row is re-read to
// report why: ErrEventNotFound, ErrEventNotApproved, or a CapacityError
// carrying the exact remaining count.
func (r *EventRepo) ReserveSeatsTx(ctx context.Context, tx *sql.Tx, eventID uint64, seats int64) error {
	const q = `UPDATE events
		SET available_seats = available_seats - ?, booking_count = booking_count + 1
		WHERE id = ? AND status = ? AND available_seats >= ?`
	res, err := tx.ExecContext(ctx, q, seats, eventID, model.EventApproved, seats)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 1 {
		return nil
	}
	var status string
	var available int64
	err = tx.QueryRowContext(ctx,
		"SELECT status, available_seats FROM events WHERE id = ?", eventID).
		Scan(&status, &available)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrEventNotFound
	}
	if err != nil {
		return err
	}
	if status != model.EventApproved {
		return ErrEventNotApproved
	}
	return &CapacityError{Remaining: available}
}

// placeholders returns n comma-joined "?" markers for IN clauses.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?,", n-1) + "?"
}
