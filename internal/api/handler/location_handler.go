package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/menuhub/restaurant-api/internal/api/metrics"
	"github.com/menuhub/restaurant-api/internal/core/ports"
)

type LocationHandler struct {
	service ports.LocationService
}

func NewLocationHandler(service ports.LocationService) *LocationHandler {
	return &LocationHandler{service: service}
}

// Get resolves the caller's location from its IP address.
//
// @Summary      Caller location
// @Tags         location
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]string
// @Router       /location/ [get]
func (h *LocationHandler) Get(c echo.Context) error {
	loc, err := h.service.Locate(c.Request().Context(), ClientIP(c))
	if err != nil {
		metrics.LocationLookupsTotal.WithLabelValues("unavailable").Inc()
		return err
	}
	metrics.LocationLookupsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, loc)
}

// ClientIP prefers X-Real-IP, then the first X-Forwarded-For entry, then the
// peer address.
func ClientIP(c echo.Context) string {
	req := c.Request()
	if ip := strings.TrimSpace(req.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if xff := req.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			return ip
		}
	}
	return c.RealIP()
}
