package model

import "time"

// Review represents a row in the `reviews` table. A (account, event) pair
// may review at most once, enforced by a unique index; a second attempt
// fails rather than overwriting. Rating is an integer in [1,5].
type Review struct {
	ID        uint64    // reviews.id
	AccountID uint64    // reviews.account_id
	EventID   uint64    // reviews.event_id
	Rating    int       // reviews.rating
	Comment   string    // reviews.comment
	CreatedAt time.Time // reviews.created_at

	// Reviewer name, populated by joined reads only.
	AccountName string
}
