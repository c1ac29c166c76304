package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventsense/eventsense-api/internal/repository"
)

// revenueMonths is the width of the organizer dashboard's trailing revenue
// histogram, current month included.
const revenueMonths = 6

// OrganizerHandler serves the organizer dashboard: per-event sales over
// confirmed bookings, totals and the trailing monthly revenue histogram.
type OrganizerHandler struct {
	responder
	AnalyticsRepo *repository.AnalyticsRepo
}

func NewOrganizerHandler(env string, analytics *repository.AnalyticsRepo) *OrganizerHandler {
	return &OrganizerHandler{responder: responder{Env: env}, AnalyticsRepo: analytics}
}

// Analytics handles GET /v1/organizer/analytics.
func (h *OrganizerHandler) Analytics(c echo.Context) error {
	organizerID, err := currentAccount(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	ctx := c.Request().Context()

	stats, err := h.AnalyticsRepo.EventStatsForOrganizer(ctx, organizerID)
	if err != nil {
		return h.unexpected(c, "failed to load analytics", err)
	}
	counts, err := h.AnalyticsRepo.CountEventsByStatusForOrganizer(ctx, organizerID)
	if err != nil {
		return h.unexpected(c, "failed to load analytics", err)
	}

	var totalRevenue, totalBookings, totalSeatsSold int64
	for _, s := range stats {
		totalRevenue += s.Revenue
		totalBookings += s.BookingCount
		totalSeatsSold += s.SeatsSold
	}

	start := monthStart(time.Now().UTC()).AddDate(0, -(revenueMonths - 1), 0)
	rows, err := h.AnalyticsRepo.MonthlyRevenueForOrganizer(ctx, organizerID, start)
	if err != nil {
		return h.unexpected(c, "failed to load analytics", err)
	}
	histogram := fillMonths(rows, start, revenueMonths)

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"analytics": echo.Map{
			"events":         stats,
			"statusCounts":   counts,
			"totalRevenue":   totalRevenue,
			"totalBookings":  totalBookings,
			"totalSeatsSold": totalSeatsSold,
			"monthlyRevenue": histogram,
		},
	})
}

// monthStart truncates t to midnight on the first of its month.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// fillMonths expands sparse month/revenue rows into a dense n-month series
// starting at start, zero-filling months with no revenue. The query omits
// empty buckets, but the dashboard charts a fixed window.
func fillMonths(rows []repository.MonthRevenue, start time.Time, n int) []repository.MonthRevenue {
	byMonth := make(map[string]int64, len(rows))
	for _, r := range rows {
		byMonth[r.Month] = r.Revenue
	}
	out := make([]repository.MonthRevenue, 0, n)
	for i := 0; i < n; i++ {
		key := start.AddDate(0, i, 0).Format("2006-01")
		out = append(out, repository.MonthRevenue{Month: key, Revenue: byMonth[key]})
	}
	return out
}
