package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func runRole(t *testing.T, role string, allowed ...string) int {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set(ContextRole, role)
	}
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	if err := RequireRole(allowed...)(next)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec.Code
}

func TestRequireRoleAllows(t *testing.T) {
	if code := runRole(t, "admin", "admin"); code != http.StatusOK {
		t.Errorf("admin on admin route: status = %d", code)
	}
	if code := runRole(t, "organizer", "organizer", "admin"); code != http.StatusOK {
		t.Errorf("organizer on multi-role route: status = %d", code)
	}
}

func TestRequireRoleRejects(t *testing.T) {
	if code := runRole(t, "user", "admin"); code != http.StatusForbidden {
		t.Errorf("user on admin route: status = %d, want 403", code)
	}
	if code := runRole(t, "", "admin"); code != http.StatusForbidden {
		t.Errorf("missing role: status = %d, want 403", code)
	}
}
