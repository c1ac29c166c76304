// Package router wires HTTP routes to handlers and attaches the middleware
// each group needs: JWT authentication, role gates, and the response cache
// on the public browse endpoints.
package router

import (
	"database/sql"

	"github.com/labstack/echo/v4"

	"github.com/eventsense/eventsense-api/internal/handler"
	"github.com/eventsense/eventsense-api/internal/middleware"
	"github.com/eventsense/eventsense-api/internal/model"
)

// RegisterHealth exposes the liveness endpoint for load balancers and
// monitoring.
func RegisterHealth(e *echo.Echo, db *sql.DB) {
	e.GET("/healthz", handler.Health(db))
}

// RegisterAuth registers registration, login, token rotation and profile
// routes. Register/login/refresh are open; logout, /me and preferences
// require a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout, middleware.JWTAuth(jwtSecret))

	me := e.Group("/v1/me", middleware.JWTAuth(jwtSecret))
	me.GET("", a.Me)
	me.PUT("/preferences", a.UpdatePreferences)
}

// RegisterEvents registers the event lifecycle routes. Browsing is public
// (and cached); creation, update and deletion are organizer-only with
// ownership enforced in the handler; recommendations need any authenticated
// account.
func RegisterEvents(e *echo.Echo, h *handler.EventHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	e.GET("/v1/events", h.List, cache)
	e.GET("/v1/events/:id", h.GetByID, cache)

	auth := e.Group("/v1/events", middleware.JWTAuth(jwtSecret))
	auth.GET("/recommended", h.Recommended)

	organizer := e.Group("/v1/events", middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleOrganizer))
	organizer.POST("", h.Create)
	organizer.PUT("/:id", h.Update)
	organizer.DELETE("/:id", h.Delete)
	organizer.GET("/organizer/myevents", h.MyEvents)
}

// RegisterBookings registers the booking routes. Creating and reading one's
// own bookings needs any authenticated account; the per-event listing is for
// the event's owning organizer.
func RegisterBookings(e *echo.Echo, h *handler.BookingHandler, jwtSecret string) {
	g := e.Group("/v1/bookings", middleware.JWTAuth(jwtSecret))
	g.POST("", h.Create)
	g.GET("", h.ListMine)
	g.GET("/:id", h.GetByID)
	g.GET("/organizer/event/:eventId", h.ListForEvent,
		middleware.RequireRole(model.RoleOrganizer))
}

// RegisterReviews registers review creation (authenticated) and the public
// per-event listing (cached).
func RegisterReviews(e *echo.Echo, h *handler.ReviewHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	e.POST("/v1/reviews", h.Create, middleware.JWTAuth(jwtSecret))
	e.GET("/v1/reviews/event/:eventId", h.ListForEvent, cache)
}

// RegisterAdmin registers the moderation and platform dashboard routes,
// admin role only.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group("/v1/admin", middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleAdmin))
	g.PATCH("/events/:id/status", h.UpdateEventStatus)
	g.GET("/events/pending", h.PendingEvents)
	g.GET("/users", h.AllUsers)
	g.GET("/analytics", h.Analytics)
}

// RegisterOrganizer registers the organizer dashboard route.
func RegisterOrganizer(e *echo.Echo, h *handler.OrganizerHandler, jwtSecret string) {
	g := e.Group("/v1/organizer", middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleOrganizer))
	g.GET("/analytics", h.Analytics)
}
