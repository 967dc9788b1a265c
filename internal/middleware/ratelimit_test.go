package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-hall-booking/internal/config"
)

func limiterCtx(userID interface{}) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", nil)
	req.RemoteAddr = "10.0.0.7:4444"
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/bookings")
	if userID != nil {
		c.Set("user_id", userID)
	}
	return c
}

func TestLimiterSubject(t *testing.T) {
	cases := []struct {
		name string
		val  interface{}
		want string
	}{
		{"jwt claim float64", float64(42), "42"},
		{"uint64", uint64(42), "42"},
		{"int64", int64(42), "42"},
		{"string", "42", "42"},
		{"missing", nil, "anon"},
		{"empty string", "", "anon"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := limiterSubject(limiterCtx(c.val)); got != c.want {
				t.Errorf("limiterSubject = %q; want %q", got, c.want)
			}
		})
	}
}

func TestLimiterKeyStrategies(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "vhb:rl", KeyStrategy: "ip_user_route"}
	key := limiterKey(cfg, limiterCtx(float64(42)))
	for _, part := range []string{"vhb:rl", "10.0.0.7", "42", "POST /v1/bookings"} {
		if !strings.Contains(key, part) {
			t.Errorf("key %q missing %q", key, part)
		}
	}

	cfg.KeyStrategy = "ip"
	key = limiterKey(cfg, limiterCtx(float64(42)))
	if strings.Contains(key, "42") || strings.Contains(key, "/v1/bookings") {
		t.Errorf("ip strategy leaked user or route into %q", key)
	}

	cfg.KeyStrategy = "user_route"
	a := limiterKey(cfg, limiterCtx(float64(1)))
	b := limiterKey(cfg, limiterCtx(float64(2)))
	if a == b {
		t.Error("distinct users share a bucket")
	}
}
