package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventsense/eventsense-api/internal/model"
	"github.com/eventsense/eventsense-api/internal/repository"
)

// EventHandler serves the event lifecycle: creation by organizers, the
// public browse surface, owner-scoped update/delete and the recommendation
// projection. Moderation (status changes) lives on AdminHandler.
type EventHandler struct {
	responder
	Events   *repository.EventRepo
	Accounts *repository.AccountRepo
}

func NewEventHandler(env string, events *repository.EventRepo, accounts *repository.AccountRepo) *EventHandler {
	return &EventHandler{responder: responder{Env: env}, Events: events, Accounts: accounts}
}

type eventReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Location    string `json:"location"`
	Venue       string `json:"venue"`
	Date        string `json:"date"` // YYYY-MM-DD
	Time        string `json:"time"`
	Price       *int64 `json:"price"`
	TotalSeats  *int64 `json:"totalSeats"`
}

// validate checks the request fields and returns the parsed date. The empty
// message means the input is acceptable.
func (r eventReq) validate() (time.Time, string) {
	switch {
	case strings.TrimSpace(r.Title) == "":
		return time.Time{}, "title is required"
	case strings.TrimSpace(r.Description) == "":
		return time.Time{}, "description is required"
	case !model.ValidCategory(r.Category):
		return time.Time{}, "unknown category: " + r.Category
	case strings.TrimSpace(r.Location) == "":
		return time.Time{}, "location is required"
	case strings.TrimSpace(r.Venue) == "":
		return time.Time{}, "venue is required"
	case strings.TrimSpace(r.Time) == "":
		return time.Time{}, "time is required"
	case r.Price == nil || *r.Price < 0:
		return time.Time{}, "price must be zero or greater"
	case r.TotalSeats == nil || *r.TotalSeats < 1:
		return time.Time{}, "totalSeats must be at least 1"
	}
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return time.Time{}, "date must be YYYY-MM-DD"
	}
	return date, ""
}

// Create handles POST /v1/events (organizer). New events always start
// pending with available seats equal to total seats.
func (h *EventHandler) Create(c echo.Context) error {
	organizerID, err := currentAccount(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	date, msg := req.validate()
	if msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}

	ev := &model.Event{
		OrganizerID: organizerID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Category:    req.Category,
		Location:    strings.TrimSpace(req.Location),
		Venue:       strings.TrimSpace(req.Venue),
		Date:        date,
		Time:        strings.TrimSpace(req.Time),
		Price:       *req.Price,
		TotalSeats:  *req.TotalSeats,
	}
	ctx := c.Request().Context()
	if err := h.Events.Create(ctx, ev); err != nil {
		return h.unexpected(c, "failed to create event", err)
	}
	// Re-read to return the organizer-joined record.
	created, err := h.Events.GetByID(ctx, ev.ID)
	if err != nil {
		return h.unexpected(c, "failed to load event", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "event": newEventJSON(created)})
}

// List handles GET /v1/events, the public browse endpoint. Only approved
// events are returned; filters and sort come from query parameters.
func (h *EventHandler) List(c echo.Context) error {
	q := repository.EventSearchQuery{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
		Location: c.QueryParam("location"),
		SortBy:   c.QueryParam("sortBy"),
	}
	if raw := c.QueryParam("minPrice"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fail(c, http.StatusBadRequest, "invalid minPrice")
		}
		q.MinPrice = &n
	}
	if raw := c.QueryParam("maxPrice"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fail(c, http.StatusBadRequest, "invalid maxPrice")
		}
		q.MaxPrice = &n
	}

	events, err := h.Events.Search(c.Request().Context(), q)
	if err != nil {
		return h.unexpected(c, "failed to load events", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(events),
		"events":  newEventListJSON(events),
	})
}

// GetByID handles GET /v1/events/:id. Events of any status are returned;
// visibility decisions belong to the list endpoints.
func (h *EventHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return fail(c, http.StatusBadRequest, "invalid event id")
	}
	ev, err := h.Events.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return fail(c, http.StatusNotFound, "Event not found")
		}
		return h.unexpected(c, "failed to load event", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "event": newEventJSON(ev)})
}

// Update handles PUT /v1/events/:id (owning organizer). Status and the
// booking counters are not updatable here; a total-seats change shifts
// available seats by the same delta and is rejected when it would take
// availability below zero.
func (h *EventHandler) Update(c echo.Context) error {
	organizerID, err := currentAccount(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return fail(c, http.StatusBadRequest, "invalid event id")
	}

	ctx := c.Request().Context()
	ev, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return fail(c, http.StatusNotFound, "Event not found")
		}
		return h.unexpected(c, "failed to load event", err)
	}
	if ev.OrganizerID != organizerID {
		return fail(c, http.StatusForbidden, "forbidden")
	}

	var req eventReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	date, msg := req.validate()
	if msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}

	seatDelta := *req.TotalSeats - ev.TotalSeats
	if ev.AvailableSeats+seatDelta < 0 {
		return fail(c, http.StatusBadRequest, "totalSeats cannot drop below seats already booked")
	}

	ev.Title = strings.TrimSpace(req.Title)
	ev.Description = strings.TrimSpace(req.Description)
	ev.Category = req.Category
	ev.Location = strings.TrimSpace(req.Location)
	ev.Venue = strings.TrimSpace(req.Venue)
	ev.Date = date
	ev.Time = strings.TrimSpace(req.Time)
	ev.Price = *req.Price
	ev.TotalSeats = *req.TotalSeats

	if err := h.Events.Update(ctx, &ev, seatDelta); err != nil {
		return h.unexpected(c, "failed to update event", err)
	}
	updated, err := h.Events.GetByID(ctx, id)
	if err != nil {
		return h.unexpected(c, "failed to load event", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "event": newEventJSON(updated)})
}

// Delete handles DELETE /v1/events/:id (owning organizer). Deletion is
// refused with 409 while confirmed bookings reference the event.
func (h *EventHandler) Delete(c echo.Context) error {
	organizerID, err := currentAccount(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return fail(c, http.StatusBadRequest, "invalid event id")
	}

	ctx := c.Request().Context()
	ev, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return fail(c, http.StatusNotFound, "Event not found")
		}
		return h.unexpected(c, "failed to load event", err)
	}
	if ev.OrganizerID != organizerID {
		return fail(c, http.StatusForbidden, "forbidden")
	}

	if err := h.Events.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return fail(c, http.StatusConflict, "event has confirmed bookings and cannot be deleted")
		case errors.Is(err, repository.ErrEventNotFound):
			return fail(c, http.StatusNotFound, "Event not found")
		}
		return h.unexpected(c, "failed to delete event", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Event deleted successfully"})
}

// MyEvents handles GET /v1/events/organizer/myevents (organizer).
func (h *EventHandler) MyEvents(c echo.Context) error {
	organizerID, err := currentAccount(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	events, err := h.Events.ListByOrganizer(c.Request().Context(), organizerID)
	if err != nil {
		return h.unexpected(c, "failed to load events", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(events),
		"events":  newEventListJSON(events),
	})
}

// recommendedLimit caps the recommendation projection.
const recommendedLimit = 6

// Recommended handles GET /v1/events/recommended (any authenticated
// account). Preference sets filter approved events; an account with no
// preferences gets the best-rated approved events overall.
func (h *EventHandler) Recommended(c echo.Context) error {
	accountID, err := currentAccount(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	ctx := c.Request().Context()
	acct, err := h.Accounts.GetByID(ctx, accountID)
	if err != nil {
		return h.unexpected(c, "failed to load account", err)
	}
	events, err := h.Events.ListRecommended(ctx,
		splitPrefs(acct.PreferredCategories), splitPrefs(acct.PreferredLocations), recommendedLimit)
	if err != nil {
		return h.unexpected(c, "failed to load events", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(events),
		"events":  newEventListJSON(events),
	})
}
