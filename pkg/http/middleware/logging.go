package middleware

import (
	"time"

	"StockScout/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RequestLogging logs one line per request with method, route and latency.
func RequestLogging(l *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			req := c.Request()
			l.Info("request",
				logger.String("method", req.Method),
				logger.String("uri", req.RequestURI),
				logger.String("remote", req.RemoteAddr),
				logger.Int("status", c.Response().Status),
				logger.Duration("latency", time.Since(start)),
			)
			return err
		}
	}
}
