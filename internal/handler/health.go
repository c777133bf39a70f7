package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"studio-proxy/internal/service"
)

// Version is a string type for dependency injection of the build version.
type Version string

// StatusHandler serves the proxy's own liveness and status endpoints.
type StatusHandler struct {
	service *service.ProxyService
	version Version
}

// NewStatusHandler creates a StatusHandler.
func NewStatusHandler(svc *service.ProxyService, v Version) *StatusHandler {
	return &StatusHandler{service: svc, version: v}
}

// Healthz returns a simple OK response for liveness probes. It does not
// contact the upstream; /api/backend/health does.
func (h *StatusHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Status returns proxy status information.
func (h *StatusHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":          "ok",
		"version":         string(h.version),
		"upstream_origin": h.service.Origin(),
	})
}
