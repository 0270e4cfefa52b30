package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// healthResponse is intentionally not wrapped in the standard envelope: the
// probe contract is a fixed three-field shape.
type healthResponse struct {
	OK      bool   `json:"ok"`
	TS      int64  `json:"ts"`
	Message string `json:"message"`
}

// HealthCheck reports service liveness. TS is unix milliseconds.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		OK:      true,
		TS:      time.Now().UnixMilli(),
		Message: "voidbot dashboard api",
	})
}
