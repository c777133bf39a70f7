package handler

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"studio-proxy/internal/metrics"
	"studio-proxy/internal/model"
	"studio-proxy/internal/service"
)

const proxyErrorMessage = "Proxy error"

// ProxyHandler relays dashboard API calls to the upstream backend.
type ProxyHandler struct {
	service *service.ProxyService
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewProxyHandler creates a ProxyHandler. m may be nil.
func NewProxyHandler(svc *service.ProxyService, m *metrics.Metrics, logger *slog.Logger) *ProxyHandler {
	return &ProxyHandler{
		service: svc,
		metrics: m,
		logger:  logger.With("component", "proxy_handler"),
	}
}

// Backend relays /api/backend/* to {origin}/{captured path}.
func (h *ProxyHandler) Backend(c echo.Context) error {
	return h.relay(c, service.BackendRoute)
}

// Health relays /api/backend/health to {origin}/health/.
func (h *ProxyHandler) Health(c echo.Context) error {
	return h.relay(c, service.HealthRoute)
}

// Query relays /api/proxy to the path named by the endpoint query parameter.
func (h *ProxyHandler) Query(c echo.Context) error {
	return h.relay(c, service.QueryRoute)
}

func (h *ProxyHandler) relay(c echo.Context, route service.Route) error {
	req := c.Request()

	path, query := route.Target(req.Method, capturedPath(c), req.URL.RawQuery)
	pr := &model.ProxyRequest{
		Ctx:        req.Context(),
		Method:     req.Method,
		TargetPath: path,
		RawQuery:   query,
		Header:     req.Header,
		Body:       req.Body,
	}

	resp, err := h.service.Forward(pr, route)
	if err != nil {
		return h.proxyError(c, route, err)
	}

	return c.Blob(resp.StatusCode, resp.ContentType, resp.Body)
}

// proxyError answers any local relay failure with a uniform 500.
func (h *ProxyHandler) proxyError(c echo.Context, route service.Route, err error) error {
	h.logger.Error("proxy error",
		"err", err,
		"route", route.Name,
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
	)
	if h.metrics != nil {
		h.metrics.RelayErrors.WithLabelValues(route.Name).Inc()
	}

	details := "Unknown error"
	if err != nil && err.Error() != "" {
		details = err.Error()
	}
	return c.JSON(http.StatusInternalServerError, model.ErrorResponse{
		Error:   proxyErrorMessage,
		Details: details,
	})
}

// capturedPath returns the wildcard segment of the matched route, unescaped
// when the router matched on the raw path.
func capturedPath(c echo.Context) string {
	p := c.Param("*")
	if c.Request().URL.RawPath == "" {
		return p
	}
	if unescaped, err := url.PathUnescape(p); err == nil {
		return unescaped
	}
	return p
}
