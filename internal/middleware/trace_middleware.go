package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"myMovieLab/pkg/logger"
)

const traceHeader = "X-Trace-Id"

// TraceMiddleware stamps every request with a trace id, reusing the
// caller's header when present, and echoes it back in the response.
func TraceMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			traceID := c.Request().Header.Get(traceHeader)
			if traceID == "" {
				traceID = uuid.NewString()
			}

			ctx := logger.WithTraceID(c.Request().Context(), traceID)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set(traceHeader, traceID)

			return next(c)
		}
	}
}
