package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/eventsense/eventsense-api/internal/config"
)

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	body := []byte(`{"success":true,"events":[]}`)

	encoded, err := encodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("encodePayload: %v", err)
	}
	status, gotHdr, gotBody, ok := decodePayload(encoded)
	if !ok {
		t.Fatal("decodePayload reported malformed payload")
	}
	if status != http.StatusOK {
		t.Errorf("status = %d", status)
	}
	if gotHdr.Get("Content-Type") != "application/json" {
		t.Errorf("header lost: %v", gotHdr)
	}
	if !bytes.Equal(gotBody, body) {
		t.Errorf("body = %q", gotBody)
	}
}

func TestDecodePayloadMalformed(t *testing.T) {
	if _, _, _, ok := decodePayload(nil); ok {
		t.Error("nil accepted")
	}
	if _, _, _, ok := decodePayload([]byte{1, 2, 3}); ok {
		t.Error("short payload accepted")
	}
	// Header length pointing past the end of the buffer.
	bad := make([]byte, 8)
	bad[7] = 0xFF
	if _, _, _, ok := decodePayload(bad); ok {
		t.Error("oversized header length accepted")
	}
}

func TestCacheKeyStrategies(t *testing.T) {
	e := echo.New()
	newCtx := func(query string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/v1/events?"+query, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/v1/events")
		return c
	}
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

	k1 := cacheKeyFrom(cfg, newCtx("category=Music"))
	k2 := cacheKeyFrom(cfg, newCtx("category=Music"))
	k3 := cacheKeyFrom(cfg, newCtx("category=Sports"))
	if k1 != k2 {
		t.Error("same request produced different keys")
	}
	if k1 == k3 {
		t.Error("different queries share a key under route_query")
	}

	cfg.KeyStrategy = "route"
	if cacheKeyFrom(cfg, newCtx("category=Music")) != cacheKeyFrom(cfg, newCtx("category=Sports")) {
		t.Error("route strategy should ignore the query string")
	}
}

func TestNewRedisCacheDisabledIsNoop(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/events", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := NewRedisCache(config.CacheConfig{Enabled: false}, nil)
	handler := mw(func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if rec.Header().Get("X-Cache") != "" {
		t.Error("disabled cache should not set X-Cache")
	}
}
