// Package http provides the HTTP REST API implementation.
//
// The HTTP server exposes endpoints for:
//   - Health checks
//   - Tag prediction
//   - Run parameter and performance reporting
//   - Prometheus metrics
//
// Every successful response is wrapped in a uniform envelope carrying the
// message, method, status code, timestamp and request URL.
package http
