package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/eventsense/eventsense-api/internal/model"
)

// ErrBookingNotFound is returned when a booking lookup matches no row.
var ErrBookingNotFound = errors.New("booking not found")

// BookingRepo provides creation and joined reads for bookings. Booking rows
// are written exactly once, inside the same transaction as the seat
// decrement on the parent event; afterwards only status could ever change.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// BookingDetail is a booking joined with its holder's contact details and
// the full parent event. Which parts are populated depends on the read:
// user-facing reads join the event, organizer-facing reads join the holder.
type BookingDetail struct {
	Booking      model.Booking
	AccountName  string
	AccountEmail string
	AccountPhone string
	Event        model.Event
}

// CreateTx inserts a booking within the scope of an existing transaction.
// It populates the generated ID and timestamps on the provided record. A
// collision on the unique booking_reference index returns
// ErrDuplicateReference so the caller can regenerate and retry; the row is
// never overwritten. The caller must commit or roll back the transaction.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings
		(account_id, event_id, seats, total_amount, booking_reference, qr_code, status)
		VALUES (?,?,?,?,?,?,?)`
	res, err := tx.ExecContext(ctx, q,
		b.AccountID, b.EventID, b.Seats, b.TotalAmount, b.Reference, b.QRCode, model.BookingConfirmed)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateReference
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	b.Status = model.BookingConfirmed
	// Query back the row to populate the DB-assigned timestamps.
	return tx.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM bookings WHERE id = ?", b.ID).
		Scan(&b.CreatedAt, &b.UpdatedAt)
}

const bookingCols = `b.id, b.account_id, b.event_id, b.seats, b.total_amount,
       b.booking_reference, b.qr_code, b.status, b.created_at, b.updated_at`

const bookingEventCols = `e.id, e.organizer_id, e.title, e.description, e.category, e.location,
       e.venue, e.event_date, e.event_time, e.price, e.total_seats, e.available_seats,
       e.status, e.booking_count, e.average_rating, e.review_count, e.created_at, e.updated_at`

func scanBookingDetail(row interface{ Scan(...any) error }) (BookingDetail, error) {
	var d BookingDetail
	b := &d.Booking
	ev := &d.Event
	err := row.Scan(
		&b.ID, &b.AccountID, &b.EventID, &b.Seats, &b.TotalAmount,
		&b.Reference, &b.QRCode, &b.Status, &b.CreatedAt, &b.UpdatedAt,
		&d.AccountName, &d.AccountEmail, &d.AccountPhone,
		&ev.ID, &ev.OrganizerID, &ev.Title, &ev.Description, &ev.Category, &ev.Location,
		&ev.Venue, &ev.Date, &ev.Time, &ev.Price, &ev.TotalSeats, &ev.AvailableSeats,
		&ev.Status, &ev.BookingCount, &ev.AverageRating, &ev.ReviewCount,
		&ev.CreatedAt, &ev.UpdatedAt)
	return d, err
}

const bookingSelect = `SELECT ` + bookingCols + `, a.name, a.email, a.phone, ` + bookingEventCols + `
	FROM bookings b
	JOIN accounts a ON a.id = b.account_id
	JOIN events e ON e.id = b.event_id`

func (r *BookingRepo) queryDetails(ctx context.Context, q string, args ...any) ([]BookingDetail, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]BookingDetail, 0)
	for rows.Next() {
		d, err := scanBookingDetail(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// GetByID returns a single booking with holder and event joined. Ownership
// is not enforced here; the handler decides between 404 and 403 so a
// foreign booking is distinguishable from a missing one.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (BookingDetail, error) {
	d, err := scanBookingDetail(r.db.QueryRowContext(ctx, bookingSelect+" WHERE b.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return BookingDetail{}, ErrBookingNotFound
	}
	return d, err
}

// ListByAccount returns all bookings owned by an account, newest first.
func (r *BookingRepo) ListByAccount(ctx context.Context, accountID uint64) ([]BookingDetail, error) {
	return r.queryDetails(ctx, bookingSelect+" WHERE b.account_id = ? ORDER BY b.created_at DESC", accountID)
}

// ListByEvent returns all bookings placed against an event, newest first.
// The caller must have verified that the requester owns the event.
func (r *BookingRepo) ListByEvent(ctx context.Context, eventID uint64) ([]BookingDetail, error) {
	return r.queryDetails(ctx, bookingSelect+" WHERE b.event_id = ? ORDER BY b.created_at DESC", eventID)
}
