package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health responds to GET /healthz.  Load balancers and uptime monitors use
// it to verify the process is serving requests.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
