package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/luckytour/fare-quotation-service/internal/infrastructure/logger"
)

// TracerName names the tracer used for server spans.
const TracerName = "fare-quotation/http"

// Setup registers all middleware on the Echo instance in the correct order:
//  1. RequestID, so every later log line and the request context carry the id
//  2. Tracing, so the server span wraps logging and the handler
//  3. RequestLogger
//  4. Recover, innermost, so a panic still produces a logged 500
//
// This function should be called before registering routes.
func Setup(e *echo.Echo, log *logger.Logger) {
	SetupWithConfig(e, log, DefaultRecoveryConfig())
}

// SetupWithConfig registers middleware with custom recovery configuration.
func SetupWithConfig(e *echo.Echo, log *logger.Logger, recoveryConfig RecoveryConfig) {
	e.Use(RequestID(log))
	e.Use(Tracing(TracerName))
	e.Use(RequestLogger(log))
	e.Use(RecoverWithConfig(log, recoveryConfig))
}

// Chain returns all middleware as a slice for use with route groups.
func Chain(log *logger.Logger) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		RequestID(log),
		Tracing(TracerName),
		RequestLogger(log),
		Recover(log),
	}
}
