package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/theatre-reservation/internal/config"
)

func TestEncodeDecodePayloadRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	body := []byte(`{"items":[]}`)

	bs, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, body, gotBody)
}

func TestDecodePayloadRejectsShortInput(t *testing.T) {
	_, _, _, ok := decodePayload([]byte{1, 2, 3})
	assert.False(t, ok)
}

func TestDecodePayloadRejectsBadHeaderLength(t *testing.T) {
	// Claims a header longer than the buffer.
	bs := []byte{0, 0, 0, 200, 0, 0, 255, 255, 'x'}
	_, _, _, ok := decodePayload(bs)
	assert.False(t, ok)
}

func TestCacheKeyStrategies(t *testing.T) {
	e := echo.New()
	newCtx := func() echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/v1/theatres?page=2", nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/v1/theatres")
		return c
	}
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

	withQuery := cacheKeyFrom(cfg, newCtx())
	assert.True(t, len(withQuery) > len("cache:"))

	// The same request must hash to the same key.
	assert.Equal(t, withQuery, cacheKeyFrom(cfg, newCtx()))

	// Dropping the query from the key strategy changes the key.
	cfg.KeyStrategy = "route"
	assert.NotEqual(t, withQuery, cacheKeyFrom(cfg, newCtx()))
}
