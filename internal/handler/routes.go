package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"studio-proxy/internal/config"
	"studio-proxy/internal/metrics"
)

// backendMethods are the methods relayed by /api/backend/*.
var backendMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}

// methodNotAllowed answers methods a proxy route does not relay, OPTIONS
// included; echo would otherwise answer OPTIONS with 204 itself.
func methodNotAllowed(echo.Context) error {
	return echo.ErrMethodNotAllowed
}

// RegisterRoutes wires all route handlers onto the Echo instance.
func RegisterRoutes(e *echo.Echo, cfg *config.Config, m *metrics.Metrics, proxy *ProxyHandler, status *StatusHandler) {
	e.GET("/healthz", status.Healthz)
	e.GET("/proxy/status", status.Status)

	e.GET("/api/backend/health", proxy.Health)
	e.Match([]string{http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}, "/api/backend/health", methodNotAllowed)
	e.Match(backendMethods, "/api/backend/*", proxy.Backend)
	e.OPTIONS("/api/backend/*", methodNotAllowed)

	e.GET("/api/proxy", proxy.Query)
	e.POST("/api/proxy", proxy.Query)
	e.OPTIONS("/api/proxy", methodNotAllowed)

	if cfg.Metrics.Enabled && m != nil {
		e.GET(cfg.Metrics.Path, echo.WrapHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
	}
}
