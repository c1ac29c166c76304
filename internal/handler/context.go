// Package handler contains the HTTP endpoints. Handlers bind and validate
// request input, call into the repository layer, and translate repository
// sentinel errors into the HTTP error taxonomy. Success responses carry
// {"success": true, ...}; failures carry {"message": ..., "error"?: ...}.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventsense/eventsense-api/internal/middleware"
)

// currentAccount extracts the authenticated account ID injected by the JWT
// middleware. Routes without JWTAuth in front never reach a caller of this.
func currentAccount(c echo.Context) (uint64, error) {
	id, ok := c.Get(middleware.ContextAccountID).(uint64)
	if !ok || id == 0 {
		return 0, errors.New("no authenticated account in context")
	}
	return id, nil
}

// fail renders the failure envelope with just a message.
func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"message": msg})
}

// responder carries the environment name so 500 responses can include the
// underlying error detail in dev while suppressing it everywhere else.
type responder struct {
	Env string
}

func (r responder) unexpected(c echo.Context, msg string, err error) error {
	if r.Env == "dev" && err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msg, "error": err.Error()})
	}
	return fail(c, http.StatusInternalServerError, msg)
}
