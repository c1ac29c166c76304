package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eventsense/eventsense-api/internal/model"
	"github.com/eventsense/eventsense-api/internal/repository"
)

// ReviewHandler records ratings against booked events and keeps the
// denormalized rating aggregates on the event in step, in the same
// transaction as the review insert.
type ReviewHandler struct {
	responder
	Reviews  *repository.ReviewRepo
	Events   *repository.EventRepo
	Accounts *repository.AccountRepo
}

func NewReviewHandler(env string, reviews *repository.ReviewRepo, events *repository.EventRepo, accounts *repository.AccountRepo) *ReviewHandler {
	return &ReviewHandler{responder: responder{Env: env}, Reviews: reviews, Events: events, Accounts: accounts}
}

type createReviewReq struct {
	EventID uint64 `json:"eventId"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Create handles POST /v1/reviews. Reviewing requires a confirmed booking
// for the event; one review per (account, event) — a duplicate is a 409
// whether it is caught by the pre-check or by the unique index during a
// race.
func (h *ReviewHandler) Create(c echo.Context) error {
	accountID, err := currentAccount(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req createReviewReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.EventID == 0 {
		return fail(c, http.StatusBadRequest, "eventId is required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return fail(c, http.StatusBadRequest, "rating must be between 1 and 5")
	}
	req.Comment = strings.TrimSpace(req.Comment)
	if req.Comment == "" {
		return fail(c, http.StatusBadRequest, "comment is required")
	}

	ctx := c.Request().Context()
	if _, err := h.Events.GetByID(ctx, req.EventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return fail(c, http.StatusNotFound, "Event not found")
		}
		return h.unexpected(c, "failed to load event", err)
	}

	booked, err := h.Reviews.HasConfirmedBooking(ctx, accountID, req.EventID)
	if err != nil {
		return h.unexpected(c, "failed to check bookings", err)
	}
	if !booked {
		return fail(c, http.StatusBadRequest, "You can only review events you have booked")
	}

	exists, err := h.Reviews.Exists(ctx, accountID, req.EventID)
	if err != nil {
		return h.unexpected(c, "failed to check reviews", err)
	}
	if exists {
		return fail(c, http.StatusConflict, "You have already reviewed this event")
	}

	rv := &model.Review{
		AccountID: accountID,
		EventID:   req.EventID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	tx, err := h.Reviews.DB().BeginTx(ctx, nil)
	if err != nil {
		return h.unexpected(c, "failed to start transaction", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := h.Reviews.CreateTx(ctx, tx, rv); err != nil {
		if errors.Is(err, repository.ErrAlreadyReviewed) {
			return fail(c, http.StatusConflict, "You have already reviewed this event")
		}
		return h.unexpected(c, "failed to create review", err)
	}
	if err := h.Reviews.RecomputeEventRatingTx(ctx, tx, req.EventID); err != nil {
		return h.unexpected(c, "failed to update event rating", err)
	}
	if err := tx.Commit(); err != nil {
		return h.unexpected(c, "failed to commit review", err)
	}
	committed = true

	if acct, err := h.Accounts.GetByID(ctx, accountID); err == nil {
		rv.AccountName = acct.Name
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "review": newReviewJSON(*rv)})
}

// ListForEvent handles GET /v1/reviews/event/:eventId (public), newest
// first with the reviewer's name joined.
func (h *ReviewHandler) ListForEvent(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("eventId"), 10, 64)
	if err != nil || eventID == 0 {
		return fail(c, http.StatusBadRequest, "invalid event id")
	}
	reviews, err := h.Reviews.ListByEvent(c.Request().Context(), eventID)
	if err != nil {
		return h.unexpected(c, "failed to load reviews", err)
	}
	out := make([]reviewJSON, 0, len(reviews))
	for _, rv := range reviews {
		out = append(out, newReviewJSON(rv))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(out),
		"reviews": out,
	})
}
