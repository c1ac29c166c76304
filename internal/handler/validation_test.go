package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/eventsense/eventsense-api/internal/middleware"
)

// postJSON builds an authenticated echo context for a JSON POST. Handlers
// under test here must reject the input before touching a repository, so
// they run with nil repositories.
func postJSON(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextAccountID, uint64(1))
	c.Set(middleware.ContextRole, "user")
	return c, rec
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not JSON: %s", rec.Body.String())
	}
	msg, _ := out["message"].(string)
	return msg
}

func TestCreateBookingRejectsBadInput(t *testing.T) {
	h := &BookingHandler{}
	cases := []struct {
		body string
		want string
	}{
		{`{"seats": 2}`, "eventId is required"},
		{`{"eventId": 5, "seats": 0}`, "seats must be at least 1"},
		{`{"eventId": 5, "seats": -3}`, "seats must be at least 1"},
	}
	for _, tc := range cases {
		c, rec := postJSON(t, tc.body)
		if err := h.Create(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", tc.body, rec.Code)
		}
		if got := message(t, rec); got != tc.want {
			t.Errorf("body %s: message = %q, want %q", tc.body, got, tc.want)
		}
	}
}

func TestCreateReviewRejectsBadInput(t *testing.T) {
	h := &ReviewHandler{}
	cases := []struct {
		body string
		want string
	}{
		{`{"rating": 4, "comment": "nice"}`, "eventId is required"},
		{`{"eventId": 5, "rating": 0, "comment": "nice"}`, "rating must be between 1 and 5"},
		{`{"eventId": 5, "rating": 6, "comment": "nice"}`, "rating must be between 1 and 5"},
		{`{"eventId": 5, "rating": 3, "comment": "  "}`, "comment is required"},
	}
	for _, tc := range cases {
		c, rec := postJSON(t, tc.body)
		if err := h.Create(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", tc.body, rec.Code)
		}
		if got := message(t, rec); got != tc.want {
			t.Errorf("body %s: message = %q, want %q", tc.body, got, tc.want)
		}
	}
}

func TestUpdateEventStatusRejectsUnknownStatus(t *testing.T) {
	h := &AdminHandler{}
	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"status":"pending"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("12")

	if err := h.UpdateEventStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if got := message(t, rec); got != "Invalid status" {
		t.Errorf("message = %q, want \"Invalid status\"", got)
	}
}

func TestEventReqValidate(t *testing.T) {
	price := int64(100)
	negPrice := int64(-1)
	seats := int64(50)
	zeroSeats := int64(0)

	valid := eventReq{
		Title:       "Expo",
		Description: "A big expo",
		Category:    "Technology",
		Location:    "Berlin",
		Venue:       "Hall 9",
		Date:        "2026-12-24",
		Time:        "18:00",
		Price:       &price,
		TotalSeats:  &seats,
	}
	if date, msg := valid.validate(); msg != "" {
		t.Fatalf("valid request rejected: %q", msg)
	} else if date.Format("2006-01-02") != "2026-12-24" {
		t.Errorf("parsed date = %v", date)
	}

	broken := []struct {
		mutate func(r *eventReq)
		want   string
	}{
		{func(r *eventReq) { r.Title = " " }, "title is required"},
		{func(r *eventReq) { r.Description = "" }, "description is required"},
		{func(r *eventReq) { r.Category = "Opera" }, "unknown category: Opera"},
		{func(r *eventReq) { r.Location = "" }, "location is required"},
		{func(r *eventReq) { r.Venue = "" }, "venue is required"},
		{func(r *eventReq) { r.Time = "" }, "time is required"},
		{func(r *eventReq) { r.Price = nil }, "price must be zero or greater"},
		{func(r *eventReq) { r.Price = &negPrice }, "price must be zero or greater"},
		{func(r *eventReq) { r.TotalSeats = nil }, "totalSeats must be at least 1"},
		{func(r *eventReq) { r.TotalSeats = &zeroSeats }, "totalSeats must be at least 1"},
		{func(r *eventReq) { r.Date = "24/12/2026" }, "date must be YYYY-MM-DD"},
	}
	for _, tc := range broken {
		r := valid
		tc.mutate(&r)
		if _, msg := r.validate(); msg != tc.want {
			t.Errorf("message = %q, want %q", msg, tc.want)
		}
	}
}
