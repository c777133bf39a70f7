// Package model defines shared types for the proxy.
package model

import (
	"context"
	"io"
	"net/http"
)

// ProxyRequest is an inbound request resolved against a route and ready to
// be relayed upstream.
type ProxyRequest struct {
	Ctx        context.Context
	Method     string
	TargetPath string
	RawQuery   string
	Header     http.Header
	Body       io.Reader
}

// ProxyResponse is a fully read upstream response.
type ProxyResponse struct {
	StatusCode  int
	StatusText  string
	Header      http.Header
	ContentType string
	Body        []byte
}

// ErrorResponse is the JSON envelope returned when a relay fails locally.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}
