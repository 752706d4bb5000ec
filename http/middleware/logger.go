package middleware

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/benedict-erwin/shop-directory/internal/constants"
	"github.com/benedict-erwin/shop-directory/pkg/logger"
	"github.com/benedict-erwin/shop-directory/pkg/utils"
	"github.com/labstack/echo/v4"
)

// Logger middleware logs HTTP requests with timing and generates request IDs
func Logger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := utils.Now()

		// Get Request ID from header or generate it
		reqId := constants.GetRequestIDFromHeaders(c)
		if reqId == "" {
			reqId = generateRequestID()
		}

		c.Set(constants.RequestIDKey, reqId)
		c.SetRequest(c.Request().WithContext(constants.WithRequestID(c.Request().Context(), reqId)))
		c.Response().Header().Set(constants.HeaderRequestID, reqId)

		err := next(c)

		latency := time.Since(start).Microseconds()

		status := c.Response().Status
		if err != nil {
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
		}

		// Authorization and bodies stay out of the access log
		log := logger.WithScope("accessLog")
		event := log.Info()
		if status >= 500 {
			event = log.Error()
		}
		event.
			Str("method", c.Request().Method).
			Str("path", c.Request().URL.Path).
			Int("status", status).
			Int64("latency", latency).
			Str("request-id", reqId).
			Str("remote-ip", c.RealIP()).
			Msg("HTTP Request")

		return err
	}
}

// generateRequestID creates unique request identifier with timestamp and random component
func generateRequestID() string {
	timestamp := utils.Now().Unix()
	random := rand.Uint32()
	return fmt.Sprintf("req-%d-%08x", timestamp, random)
}
