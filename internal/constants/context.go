package constants

import (
	"context"

	"github.com/labstack/echo/v4"
)

const (
	// Echo context keys
	RequestIDKey = "x-req-id"
	IdentityKey  = "identity"

	// Accepted request id headers, most preferred first
	HeaderRequestID      = "X-Request-ID"
	HeaderCorrelationID  = "X-Correlation-ID"
	HeaderRequestIDShort = "Request-ID"
)

var requestIDHeaders = []string{HeaderRequestID, HeaderCorrelationID, HeaderRequestIDShort}

// GetRequestIDFromHeaders returns the first request id supplied by the caller
func GetRequestIDFromHeaders(c echo.Context) string {
	for _, h := range requestIDHeaders {
		if v := c.Request().Header.Get(h); v != "" {
			return v
		}
	}
	return ""
}

// GetRequestID extracts request ID from Echo context
func GetRequestID(c echo.Context) string {
	rid, _ := c.Get(RequestIDKey).(string)
	return rid
}

type ctxKey struct{}

// WithRequestID stores the request id on a standard context so it follows
// the request into services and queued jobs
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, ctxKey{}, rid)
}

// RequestIDFromContext returns the request id stored by WithRequestID
func RequestIDFromContext(ctx context.Context) string {
	rid, _ := ctx.Value(ctxKey{}).(string)
	return rid
}
