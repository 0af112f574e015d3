// Package middleware holds the cross-cutting HTTP middleware: request ids,
// request-scoped loggers, access logs, tracing, rate limiting, method
// override and the global error handler.
package middleware
