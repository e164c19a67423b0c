// Package middleware holds the global Echo middleware: request ids,
// request-scoped logging, New Relic tracing, CORS, security headers,
// per-client rate limiting, panic recovery and the error handler that turns
// every failure into an errs.HTTPError response.
package middleware
