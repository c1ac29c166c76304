package repository

import (
	"context"
	"database/sql"

	"github.com/eventsense/eventsense-api/internal/model"
)

// ReviewRepo provides creation and reads for reviews plus the recomputation
// of the denormalized rating aggregates on the parent event.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo returns a new ReviewRepo bound to the given database.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions that
// span reviews and events.
func (r *ReviewRepo) DB() *sql.DB { return r.db }

// HasConfirmedBooking reports whether the account holds a confirmed booking
// for the event. Reviewing requires one.
func (r *ReviewRepo) HasConfirmedBooking(ctx context.Context, accountID, eventID uint64) (bool, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE account_id = ? AND event_id = ? AND status = ?",
		accountID, eventID, model.BookingConfirmed).Scan(&n)
	return n > 0, err
}

// Exists reports whether the account has already reviewed the event.
func (r *ReviewRepo) Exists(ctx context.Context, accountID, eventID uint64) (bool, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM reviews WHERE account_id = ? AND event_id = ?",
		accountID, eventID).Scan(&n)
	return n > 0, err
}

// CreateTx inserts a review within the given transaction and populates the
// generated ID and timestamp. A collision on the unique (account, event)
// index returns ErrAlreadyReviewed, so a race past the pre-emptive
// existence check still surfaces as the same conflict.
func (r *ReviewRepo) CreateTx(ctx context.Context, tx *sql.Tx, rv *model.Review) error {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO reviews (account_id, event_id, rating, comment) VALUES (?,?,?,?)",
		rv.AccountID, rv.EventID, rv.Rating, rv.Comment)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrAlreadyReviewed
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rv.ID = uint64(id)
	return tx.QueryRowContext(ctx,
		"SELECT created_at FROM reviews WHERE id = ?", rv.ID).Scan(&rv.CreatedAt)
}

// RecomputeEventRatingTx rewrites average_rating and review_count on the
// event from the full review set. A full recomputation rather than an
// incremental update keeps the aggregates exact regardless of how the
// review set was reached.
func (r *ReviewRepo) RecomputeEventRatingTx(ctx context.Context, tx *sql.Tx, eventID uint64) error {
	const q = `UPDATE events SET
		average_rating = COALESCE((SELECT AVG(rating) FROM reviews WHERE event_id = ?), 0),
		review_count = (SELECT COUNT(*) FROM reviews WHERE event_id = ?)
		WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, eventID, eventID, eventID)
	return err
}

// ListByEvent returns all reviews for an event, newest first, with the
// reviewer's name joined.
func (r *ReviewRepo) ListByEvent(ctx context.Context, eventID uint64) ([]model.Review, error) {
	const q = `SELECT r.id, r.account_id, r.event_id, r.rating, r.comment, r.created_at, a.name
		FROM reviews r
		JOIN accounts a ON a.id = r.account_id
		WHERE r.event_id = ?
		ORDER BY r.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	reviews := make([]model.Review, 0)
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.AccountID, &rv.EventID, &rv.Rating, &rv.Comment,
			&rv.CreatedAt, &rv.AccountName); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}
