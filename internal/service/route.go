package service

import (
	"net/url"
	"strings"
)

// Strategy selects how a route derives the upstream path.
type Strategy int

const (
	// StrategyPath appends the captured wildcard path to the origin.
	StrategyPath Strategy = iota
	// StrategyQuery reads the upstream path from the endpoint query parameter.
	StrategyQuery
	// StrategyFixed always targets Route.FixedPath.
	StrategyFixed
)

// ContentTypePolicy decides the Content-Type of a relayed response.
type ContentTypePolicy int

const (
	// ContentTypeJSON always answers application/json.
	ContentTypeJSON ContentTypePolicy = iota
	// ContentTypeUpstream copies the upstream Content-Type, falling back to JSON.
	ContentTypeUpstream
)

// EndpointParam is the query parameter read by StrategyQuery routes.
const EndpointParam = "endpoint"

// Route parameterizes a single relay.
type Route struct {
	Name     string
	Strategy Strategy
	// FixedPath is the upstream path for StrategyFixed.
	FixedPath string
	// DefaultEndpoints maps a method to the endpoint used when a
	// StrategyQuery request carries no endpoint parameter.
	DefaultEndpoints map[string]string
	ContentType      ContentTypePolicy
}

// Routes served by the proxy.
var (
	BackendRoute = Route{
		Name:        "backend",
		Strategy:    StrategyPath,
		ContentType: ContentTypeJSON,
	}

	HealthRoute = Route{
		Name:        "health",
		Strategy:    StrategyFixed,
		FixedPath:   "/health/",
		ContentType: ContentTypeJSON,
	}

	QueryRoute = Route{
		Name:     "proxy",
		Strategy: StrategyQuery,
		DefaultEndpoints: map[string]string{
			"GET":  "health/",
			"POST": "",
		},
		ContentType: ContentTypeUpstream,
	}
)

// Target returns the upstream path and raw query for a request. captured is
// the wildcard path for StrategyPath routes; rawQuery is the inbound query
// string. Path routes pass the inbound query through; query routes consume it
// to pick the endpoint, which may carry its own query.
func (r Route) Target(method, captured, rawQuery string) (path, query string) {
	switch r.Strategy {
	case StrategyFixed:
		return r.FixedPath, ""
	case StrategyQuery:
		// Malformed pairs are dropped; the well-formed ones still count.
		values, _ := url.ParseQuery(rawQuery)
		endpoint := values.Get(EndpointParam)
		if endpoint == "" {
			endpoint = r.DefaultEndpoints[method]
		}
		path, query, _ = strings.Cut(endpoint, "?")
		return "/" + strings.TrimPrefix(path, "/"), query
	default:
		return "/" + strings.TrimPrefix(captured, "/"), rawQuery
	}
}
