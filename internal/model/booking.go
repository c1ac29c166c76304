package model

import "time"

// Booking statuses. No exposed operation cancels a booking; the cancelled
// state is reachable-but-unused and exists for forward compatibility.
const (
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// Booking represents a row in the `bookings` table. TotalAmount is fixed at
// creation time (seats * event price then) and never recomputed, even if the
// event price later changes. Reference is globally unique, enforced by a
// unique index; QRCode holds the PNG ticket artifact bytes.
type Booking struct {
	ID          uint64    // bookings.id
	AccountID   uint64    // bookings.account_id
	EventID     uint64    // bookings.event_id
	Seats       int64     // bookings.seats
	TotalAmount int64     // bookings.total_amount
	Reference   string    // bookings.booking_reference
	QRCode      []byte    // bookings.qr_code (PNG)
	Status      string    // bookings.status
	CreatedAt   time.Time // bookings.created_at
	UpdatedAt   time.Time // bookings.updated_at
}
