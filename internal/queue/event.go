// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into outbound email. The
// request path only ever publishes; delivery failures stay on this side of
// the broker and can never affect a committed booking or approval.
package queue

// BookingConfirmedEvent is published after a booking transaction commits.
// It carries everything the notification consumer needs to build and send
// the confirmation email, including the PNG ticket artifact, without
// querying the primary database.
type BookingConfirmedEvent struct {
	BookingID   uint64 `json:"booking_id"`
	Reference   string `json:"booking_reference"`
	Seats       int64  `json:"seats"`
	TotalAmount int64  `json:"total_amount"`
	HolderName  string `json:"holder_name"`
	HolderEmail string `json:"holder_email"`
	EventTitle  string `json:"event_title"`
	EventDate   string `json:"event_date"`
	EventTime   string `json:"event_time"`
	Venue       string `json:"venue"`
	QRCode      []byte `json:"qr_code"`
	ConfirmedAt string `json:"confirmed_at"`
}

// EventApprovedEvent is published when an admin approves an event, so the
// owning organizer can be notified.
type EventApprovedEvent struct {
	EventID        uint64 `json:"event_id"`
	EventTitle     string `json:"event_title"`
	OrganizerName  string `json:"organizer_name"`
	OrganizerEmail string `json:"organizer_email"`
	ApprovedAt     string `json:"approved_at"`
}
