package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexToRowLabel(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{-1, ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, indexToRowLabel(tc.in), "index %d", tc.in)
	}
}

func newTestContext(t *testing.T) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestGetUserIDFloatClaim(t *testing.T) {
	// JWT numeric claims decode as float64.
	c := newTestContext(t)
	c.Set("user_id", float64(42))

	id, err := getUserID(c)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)
}

func TestGetUserIDStringClaim(t *testing.T) {
	c := newTestContext(t)
	c.Set("user_id", "17")

	id, err := getUserID(c)
	require.NoError(t, err)
	assert.Equal(t, uint64(17), id)
}

func TestGetUserIDMissing(t *testing.T) {
	c := newTestContext(t)

	_, err := getUserID(c)
	assert.Error(t, err)
}

func TestGetUserIDUnparsableString(t *testing.T) {
	c := newTestContext(t)
	c.Set("user_id", "not-a-number")

	_, err := getUserID(c)
	assert.Error(t, err)
}
