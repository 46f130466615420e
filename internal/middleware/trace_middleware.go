package middleware

import (
	"context"

	"stockpulse/business/recommend"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const traceHeader = "X-Trace-ID"

// TraceMiddleware attaches a trace ID to every request context so log
// lines from one request can be correlated. An incoming X-Trace-ID is
// honored, otherwise a fresh UUID is minted.
func TraceMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			traceID := c.Request().Header.Get(traceHeader)
			if traceID == "" {
				traceID = uuid.NewString()
			}

			ctx := context.WithValue(c.Request().Context(), recommend.TraceIDKey, traceID)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set(traceHeader, traceID)

			return next(c)
		}
	}
}
