// Package api serves the scheduling core over HTTP.
//
// Key responsibilities:
//   - POST /optimise, /layout and /clashes over listings or sessions in the body
//   - GET /subjects/{code} to fetch a course from the feed
//   - GET /healthz and the Prometheus /metrics endpoint
//   - Mapping engine errors to HTTP status codes with a JSON error body
//
// The API is stateless: it never reads or writes stored plans.
package api
