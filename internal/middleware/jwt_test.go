package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/eventsense/eventsense-api/internal/utils"
)

const testSecret = "unit-test-secret"

func runJWT(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	if err := JWTAuth(testSecret)(next)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec, c
}

func TestJWTAuthValidToken(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 7, "organizer", 5)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	rec, c := runJWT(t, "Bearer "+at.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if id, _ := c.Get(ContextAccountID).(uint64); id != 7 {
		t.Errorf("account id = %v, want 7", c.Get(ContextAccountID))
	}
	if role, _ := c.Get(ContextRole).(string); role != "organizer" {
		t.Errorf("role = %v, want organizer", c.Get(ContextRole))
	}
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec, _ := runJWT(t, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthMalformedToken(t *testing.T) {
	rec, _ := runJWT(t, "Bearer not.a.jwt")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthWrongSecret(t *testing.T) {
	at, err := utils.NewAccessToken("some-other-secret", 7, "user", 5)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	rec, _ := runJWT(t, "Bearer "+at.Token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
