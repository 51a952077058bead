package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/theatre-reservation/internal/config"
)

func rateCtx(t *testing.T, userID interface{}) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/theatres", nil)
	req.RemoteAddr = "192.0.2.10:1234"
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/theatres")
	if userID != nil {
		c.Set("user_id", userID)
	}
	return c
}

func TestBuildRateKeyStrategies(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip"}
	assert.Equal(t, "rl:ip:192.0.2.10", buildRateKey(cfg, rateCtx(t, nil)))

	cfg.KeyStrategy = "user"
	assert.Equal(t, "rl:user:7", buildRateKey(cfg, rateCtx(t, float64(7))))

	cfg.KeyStrategy = "ip_user_route"
	key := buildRateKey(cfg, rateCtx(t, uint64(7)))
	assert.Equal(t, "rl:ip:192.0.2.10:user:7:route:GET /v1/theatres", key)
}

func TestCurrentUserIDAnonForGuests(t *testing.T) {
	assert.Equal(t, "anon", currentUserID(rateCtx(t, nil)))
	assert.Equal(t, "anon", currentUserID(rateCtx(t, "")))
}

func TestAsInt64(t *testing.T) {
	assert.Equal(t, int64(5), asInt64(int64(5)))
	assert.Equal(t, int64(5), asInt64("5"))
	assert.Equal(t, int64(5), asInt64(float64(5.9)))
	assert.Equal(t, int64(0), asInt64("junk"))
}
