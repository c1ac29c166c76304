package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventsense/eventsense-api/internal/model"
	"github.com/eventsense/eventsense-api/internal/queue"
	"github.com/eventsense/eventsense-api/internal/repository"
	queue_publisher "github.com/eventsense/eventsense-api/internal/service"
	"github.com/eventsense/eventsense-api/internal/ticket"
	"github.com/eventsense/eventsense-api/internal/utils"
)

// referenceAttempts bounds how many times a colliding booking reference is
// regenerated before the request gives up.
const referenceAttempts = 3

// BookingHandler owns the booking transaction: the seat decrement, the
// booking insert and the ticket artifact are committed as one unit, then the
// confirmation notification is handed off to the broker fire-and-forget.
type BookingHandler struct {
	responder
	Bookings *repository.BookingRepo
	Events   *repository.EventRepo
	Accounts *repository.AccountRepo
	AMQPURL  string
}

func NewBookingHandler(env string, bookings *repository.BookingRepo, events *repository.EventRepo, accounts *repository.AccountRepo, amqpURL string) *BookingHandler {
	return &BookingHandler{
		responder: responder{Env: env},
		Bookings:  bookings,
		Events:    events,
		Accounts:  accounts,
		AMQPURL:   amqpURL,
	}
}

type createBookingReq struct {
	EventID uint64 `json:"eventId"`
	Seats   int64  `json:"seats"`
}

// Create handles POST /v1/bookings. The seat decrement and the booking
// insert commit in one database transaction; the conditional update inside
// ReserveSeatsTx is what keeps concurrent requests from overselling. The QR
// artifact is generated before the transaction opens, so its failure aborts
// the attempt with no mutation.
func (h *BookingHandler) Create(c echo.Context) error {
	accountID, err := currentAccount(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.EventID == 0 {
		return fail(c, http.StatusBadRequest, "eventId is required")
	}
	if req.Seats < 1 {
		return fail(c, http.StatusBadRequest, "seats must be at least 1")
	}

	ctx := c.Request().Context()
	ev, err := h.Events.GetByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return fail(c, http.StatusNotFound, "Event not found")
		}
		return h.unexpected(c, "failed to load event", err)
	}
	if ev.Status != model.EventApproved {
		return fail(c, http.StatusBadRequest, "Event is not approved yet")
	}
	// Fast-path capacity check on the loaded snapshot. The authoritative
	// check is the conditional update inside the transaction below.
	if req.Seats > ev.AvailableSeats {
		return fail(c, http.StatusBadRequest, fmt.Sprintf("Only %d seats available", ev.AvailableSeats))
	}

	acct, err := h.Accounts.GetByID(ctx, accountID)
	if err != nil {
		return h.unexpected(c, "failed to load account", err)
	}

	total := req.Seats * ev.Price

	var booking *model.Booking
	for attempt := 0; attempt < referenceAttempts; attempt++ {
		ref, err := utils.NewBookingReference()
		if err != nil {
			return h.unexpected(c, "failed to generate booking reference", err)
		}
		b := &model.Booking{
			AccountID:   accountID,
			EventID:     ev.ID,
			Seats:       req.Seats,
			TotalAmount: total,
			Reference:   ref,
		}
		png, err := ticket.Generate(ticket.Payload{
			Reference:  b.Reference,
			EventTitle: ev.Title,
			HolderName: acct.Name,
			Seats:      b.Seats,
			EventDate:  ev.Date.Format("2006-01-02"),
		})
		if err != nil {
			return h.unexpected(c, "failed to generate ticket", err)
		}
		b.QRCode = png

		tx, err := h.Events.DB().BeginTx(ctx, nil)
		if err != nil {
			return h.unexpected(c, "failed to start transaction", err)
		}
		if err := h.Events.ReserveSeatsTx(ctx, tx, ev.ID, b.Seats); err != nil {
			_ = tx.Rollback()
			var capErr *repository.CapacityError
			switch {
			case errors.Is(err, repository.ErrEventNotFound):
				return fail(c, http.StatusNotFound, "Event not found")
			case errors.Is(err, repository.ErrEventNotApproved):
				return fail(c, http.StatusBadRequest, "Event is not approved yet")
			case errors.As(err, &capErr):
				return fail(c, http.StatusBadRequest, fmt.Sprintf("Only %d seats available", capErr.Remaining))
			}
			return h.unexpected(c, "failed to reserve seats", err)
		}
		if err := h.Bookings.CreateTx(ctx, tx, b); err != nil {
			_ = tx.Rollback()
			if errors.Is(err, repository.ErrDuplicateReference) {
				continue // regenerate and retry
			}
			return h.unexpected(c, "failed to create booking", err)
		}
		if err := tx.Commit(); err != nil {
			return h.unexpected(c, "failed to commit booking", err)
		}
		booking = b
		break
	}
	if booking == nil {
		return fail(c, http.StatusConflict, "could not allocate a unique booking reference")
	}

	// Fire-and-forget: the booking is committed, so a publish failure is the
	// broker's problem, never the caller's.
	confirmation := queue.BookingConfirmedEvent{
		BookingID:   booking.ID,
		Reference:   booking.Reference,
		Seats:       booking.Seats,
		TotalAmount: booking.TotalAmount,
		HolderName:  acct.Name,
		HolderEmail: acct.Email,
		EventTitle:  ev.Title,
		EventDate:   ev.Date.Format("2006-01-02"),
		EventTime:   ev.Time,
		Venue:       ev.Venue,
		QRCode:      booking.QRCode,
		ConfirmedAt: booking.CreatedAt.UTC().Format(time.RFC3339),
	}
	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishBookingConfirmed(pubCtx, h.AMQPURL, confirmation)
	}()

	// Re-read the event for the post-decrement counters in the response.
	updated, err := h.Events.GetByID(ctx, ev.ID)
	if err != nil {
		updated = ev
	}
	detail := repository.BookingDetail{
		Booking:      *booking,
		AccountName:  acct.Name,
		AccountEmail: acct.Email,
		AccountPhone: acct.Phone,
		Event:        updated,
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "booking": newBookingJSON(detail)})
}

// ListMine handles GET /v1/bookings, the caller's bookings newest first.
func (h *BookingHandler) ListMine(c echo.Context) error {
	accountID, err := currentAccount(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	details, err := h.Bookings.ListByAccount(c.Request().Context(), accountID)
	if err != nil {
		return h.unexpected(c, "failed to load bookings", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"count":    len(details),
		"bookings": newBookingListJSON(details),
	})
}

// GetByID handles GET /v1/bookings/:id. A booking owned by someone else is
// a 403, not a 404, so the two cases stay distinguishable.
func (h *BookingHandler) GetByID(c echo.Context) error {
	accountID, err := currentAccount(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return fail(c, http.StatusBadRequest, "invalid booking id")
	}
	detail, err := h.Bookings.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return fail(c, http.StatusNotFound, "Booking not found")
		}
		return h.unexpected(c, "failed to load booking", err)
	}
	if detail.Booking.AccountID != accountID {
		return fail(c, http.StatusForbidden, "forbidden")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "booking": newBookingJSON(detail)})
}

// ListForEvent handles GET /v1/bookings/organizer/event/:eventId (the
// event's owning organizer only).
func (h *BookingHandler) ListForEvent(c echo.Context) error {
	organizerID, err := currentAccount(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	eventID, err := strconv.ParseUint(c.Param("eventId"), 10, 64)
	if err != nil || eventID == 0 {
		return fail(c, http.StatusBadRequest, "invalid event id")
	}

	ctx := c.Request().Context()
	ev, err := h.Events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return fail(c, http.StatusNotFound, "Event not found")
		}
		return h.unexpected(c, "failed to load event", err)
	}
	if ev.OrganizerID != organizerID {
		return fail(c, http.StatusForbidden, "forbidden")
	}

	details, err := h.Bookings.ListByEvent(ctx, eventID)
	if err != nil {
		return h.unexpected(c, "failed to load bookings", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"count":    len(details),
		"bookings": newBookingListJSON(details),
	})
}
