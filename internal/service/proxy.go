// Package service implements the relay between inbound routes and the upstream backend.
package service

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"studio-proxy/internal/client"
	"studio-proxy/internal/config"
	"studio-proxy/internal/model"
)

const (
	userAgent    = "studio-proxy/1.0"
	jsonMIME     = "application/json"
	userIDHeader = "X-User-Id"
)

// ProxyService relays resolved requests to the upstream origin.
type ProxyService struct {
	client   *client.UpstreamClient
	logger   *slog.Logger
	origin   *url.URL
	ctPolicy string
}

// NewProxyService creates a ProxyService targeting cfg.Upstream.Origin.
func NewProxyService(c *client.UpstreamClient, cfg *config.Config, logger *slog.Logger) (*ProxyService, error) {
	u, err := url.Parse(cfg.Upstream.Origin)
	if err != nil {
		return nil, fmt.Errorf("parse upstream origin: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("upstream origin %q is not absolute", cfg.Upstream.Origin)
	}

	return &ProxyService{
		client:   c,
		logger:   logger.With("component", "proxy_service"),
		origin:   u,
		ctPolicy: cfg.Upstream.ContentType,
	}, nil
}

// Forward relays pr upstream and returns the fully read response.
// Upstream error statuses are returned as responses, not errors; an error
// means the relay itself failed.
func (s *ProxyService) Forward(pr *model.ProxyRequest, route Route) (*model.ProxyResponse, error) {
	var body io.Reader
	if pr.Method != http.MethodGet && pr.Body != nil {
		data, err := io.ReadAll(pr.Body)
		if err != nil {
			return nil, fmt.Errorf("read request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	upstreamURL := s.buildUpstreamURL(pr.TargetPath, pr.RawQuery)
	header := filterRequestHeaders(pr.Header)

	s.logger.Debug("forwarding request",
		"route", route.Name,
		"method", pr.Method,
		"target", pr.TargetPath,
	)

	resp, err := s.client.Do(pr.Ctx, pr.Method, upstreamURL, header, body)
	if err != nil {
		return nil, fmt.Errorf("forward to upstream: %w", err)
	}

	resp.ContentType = s.contentType(route, resp.Header)
	s.logger.Debug("upstream responded",
		"route", route.Name,
		"status", resp.StatusCode,
		"status_text", resp.StatusText,
		"bytes", len(resp.Body),
	)
	return resp, nil
}

// Origin returns the upstream origin relays are sent to.
func (s *ProxyService) Origin() string {
	return s.origin.String()
}

func (s *ProxyService) buildUpstreamURL(path, rawQuery string) string {
	u := *s.origin
	u.Path = strings.TrimRight(s.origin.Path, "/") + path
	u.RawPath = ""
	u.RawQuery = rawQuery
	return u.String()
}

// filterRequestHeaders builds the outbound header set. Only X-User-Id is
// taken from the inbound request; everything else is fixed.
func filterRequestHeaders(src http.Header) http.Header {
	dst := make(http.Header)
	dst.Set("Content-Type", jsonMIME)
	if vals := src.Values(userIDHeader); len(vals) > 0 {
		dst[userIDHeader] = vals
	}
	dst.Set("User-Agent", userAgent)
	return dst
}

// contentType applies the configured override, then the route's own policy.
func (s *ProxyService) contentType(route Route, upstream http.Header) string {
	policy := route.ContentType
	switch s.ctPolicy {
	case config.ContentTypeJSON:
		policy = ContentTypeJSON
	case config.ContentTypeUpstream:
		policy = ContentTypeUpstream
	}

	if policy == ContentTypeUpstream {
		if ct := upstream.Get("Content-Type"); ct != "" {
			return ct
		}
	}
	return jsonMIME
}
