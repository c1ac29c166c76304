package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventsense/eventsense-api/internal/config"
	"github.com/eventsense/eventsense-api/internal/model"
	"github.com/eventsense/eventsense-api/internal/queue"
	"github.com/eventsense/eventsense-api/internal/repository"
	queue_publisher "github.com/eventsense/eventsense-api/internal/service"
)

// recentBookingsLimit caps the admin dashboard's latest-bookings feed.
const recentBookingsLimit = 10

// AdminHandler serves moderation and the platform-wide dashboard. Every
// route behind it is gated on the admin role.
type AdminHandler struct {
	responder
	Cfg       config.Config
	Events    *repository.EventRepo
	Accounts  *repository.AccountRepo
	AnalyticsRepo *repository.AnalyticsRepo
}

func NewAdminHandler(cfg config.Config, events *repository.EventRepo, accounts *repository.AccountRepo, analytics *repository.AnalyticsRepo) *AdminHandler {
	return &AdminHandler{
		responder: responder{Env: cfg.Env},
		Cfg:       cfg,
		Events:    events,
		Accounts:  accounts,
		AnalyticsRepo: analytics,
	}
}

type statusReq struct {
	Status string `json:"status"`
}

// UpdateEventStatus handles PATCH /v1/admin/events/:id/status with body
// {"status": "approved"|"rejected"}. Approval notifies the organizer via
// the broker; the publish is fire-and-forget and never affects the caller.
func (h *AdminHandler) UpdateEventStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return fail(c, http.StatusBadRequest, "invalid event id")
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Status != model.EventApproved && req.Status != model.EventRejected {
		return fail(c, http.StatusBadRequest, "Invalid status")
	}

	ctx := c.Request().Context()
	ev, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return fail(c, http.StatusNotFound, "Event not found")
		}
		return h.unexpected(c, "failed to load event", err)
	}

	if err := h.Events.UpdateStatus(ctx, id, req.Status); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return fail(c, http.StatusNotFound, "Event not found")
		}
		return h.unexpected(c, "failed to update event status", err)
	}

	if req.Status == model.EventApproved {
		approval := queue.EventApprovedEvent{
			EventID:        ev.ID,
			EventTitle:     ev.Title,
			OrganizerName:  ev.OrganizerName,
			OrganizerEmail: ev.OrganizerEmail,
			ApprovedAt:     time.Now().UTC().Format(time.RFC3339),
		}
		go func() {
			pubCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = queue_publisher.PublishEventApproved(pubCtx, h.Cfg.AMQPURL, approval)
		}()
	}

	updated, err := h.Events.GetByID(ctx, id)
	if err != nil {
		return h.unexpected(c, "failed to load event", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "event": newEventJSON(updated)})
}

// PendingEvents handles GET /v1/admin/events/pending, the moderation queue.
func (h *AdminHandler) PendingEvents(c echo.Context) error {
	events, err := h.Events.ListPending(c.Request().Context())
	if err != nil {
		return h.unexpected(c, "failed to load events", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(events),
		"events":  newEventListJSON(events),
	})
}

// AllUsers handles GET /v1/admin/users. Password hashes never leave the
// repository layer serialized.
func (h *AdminHandler) AllUsers(c echo.Context) error {
	accounts, err := h.Accounts.ListAll(c.Request().Context())
	if err != nil {
		return h.unexpected(c, "failed to load users", err)
	}
	out := make([]accountJSON, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, newAccountJSON(a))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(out),
		"users":   out,
	})
}

// Analytics handles GET /v1/admin/analytics: platform-wide counts, revenue,
// the category breakdown of approved events and the latest bookings. The
// revenue metric sums every booking by default;
// ADMIN_REVENUE_CONFIRMED_ONLY restricts it to confirmed ones.
func (h *AdminHandler) Analytics(c echo.Context) error {
	ctx := c.Request().Context()

	userCount, err := h.Accounts.CountByRole(ctx, model.RoleUser)
	if err != nil {
		return h.unexpected(c, "failed to load analytics", err)
	}
	organizerCount, err := h.Accounts.CountByRole(ctx, model.RoleOrganizer)
	if err != nil {
		return h.unexpected(c, "failed to load analytics", err)
	}
	eventCounts, err := h.AnalyticsRepo.CountEventsByStatus(ctx)
	if err != nil {
		return h.unexpected(c, "failed to load analytics", err)
	}
	totalBookings, err := h.AnalyticsRepo.CountBookings(ctx)
	if err != nil {
		return h.unexpected(c, "failed to load analytics", err)
	}
	totalRevenue, err := h.AnalyticsRepo.TotalRevenue(ctx, h.Cfg.AdminRevenueConfirmedOnly)
	if err != nil {
		return h.unexpected(c, "failed to load analytics", err)
	}
	categories, err := h.AnalyticsRepo.ApprovedEventsByCategory(ctx)
	if err != nil {
		return h.unexpected(c, "failed to load analytics", err)
	}
	recent, err := h.AnalyticsRepo.RecentBookings(ctx, recentBookingsLimit)
	if err != nil {
		return h.unexpected(c, "failed to load analytics", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"analytics": echo.Map{
			"userCount":        userCount,
			"organizerCount":   organizerCount,
			"events":           eventCounts,
			"totalBookings":    totalBookings,
			"totalRevenue":     totalRevenue,
			"eventsByCategory": categories,
			"recentBookings":   recent,
		},
	})
}
