// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios: ErrForbidden means the
// caller does not own the resource, ErrConflict means dependent records
// block the operation (e.g. deleting an event that has bookings), and the
// duplicate errors surface unique-constraint violations so a late race maps
// to the same user-facing message as the pre-emptive check.
package repository

import (
	"errors"
	"fmt"
)

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete or update cannot be performed
// because of conflicting state, such as deleting an event that still has
// confirmed bookings. Handlers translate this into HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrEmailExists is returned when registering an account with an email that
// is already taken.
var ErrEmailExists = errors.New("email already exists")

// ErrDuplicateReference is returned when a booking insert collides on the
// unique booking_reference index. The caller regenerates the reference and
// retries a bounded number of times; the collision is never resolved by
// overwriting.
var ErrDuplicateReference = errors.New("duplicate booking reference")

// ErrAlreadyReviewed is returned when a review insert collides on the
// unique (account, event) index, or when the pre-emptive existence check
// finds a prior review.
var ErrAlreadyReviewed = errors.New("already reviewed")

// ErrEventNotApproved is returned when a booking targets an event that is
// still pending or was rejected.
var ErrEventNotApproved = errors.New("event is not approved yet")

// CapacityError reports a seat request that exceeds the event's remaining
// capacity. Remaining carries the exact count left so the message shown to
// the user can state it.
type CapacityError struct {
	Remaining int64
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("only %d seats available", e.Remaining)
}
