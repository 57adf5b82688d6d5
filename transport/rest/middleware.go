package rest

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/AntonStoeckl/library-rentals-go/ratelimit"
)

const (
	logMsgHTTP       = "http"
	logAttrMethod    = "method"
	logAttrPath      = "path"
	logAttrStatus    = "status"
	logAttrLatencyMS = "latency_ms"
	logAttrRequestID = "req_id"
	logAttrIP        = "ip"
)

func requestLog(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// render now, so the logged status is the one the client gets
				c.Error(err)
			}

			logger.InfoContext(c.Request().Context(), logMsgHTTP,
				logAttrMethod, c.Request().Method,
				logAttrPath, c.Path(),
				logAttrStatus, c.Response().Status,
				logAttrLatencyMS, time.Since(start).Milliseconds(),
				logAttrRequestID, c.Response().Header().Get(echo.HeaderXRequestID),
				logAttrIP, c.RealIP(),
			)

			return nil
		}
	}
}

// throttleByClient rejects requests of a client the limiter has seen too often.
// The client is identified by its real IP.
func throttleByClient(limiter ratelimit.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := limiter.Allow(c.Request().Context(), c.RealIP()); err != nil {
				return err
			}

			return next(c)
		}
	}
}
