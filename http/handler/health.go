package handler

import (
	"net/http"

	"github.com/benedict-erwin/shop-directory/internal/services/health"
	"github.com/benedict-erwin/shop-directory/pkg/response"
	"github.com/benedict-erwin/shop-directory/pkg/utils"
	"github.com/labstack/echo/v4"
)

// HealthLive returns basic liveness check
func HealthLive(c echo.Context) error {
	return response.Success(c, "Service is alive", map[string]any{
		"status":    "alive",
		"timestamp": utils.NowFormatted(),
	})
}

// HealthReady answers 503 until the document store responds
func HealthReady(c echo.Context) error {
	status := health.CheckReadiness()
	if !status.Ready() {
		return response.Fail(c, http.StatusServiceUnavailable, "Service not ready", status)
	}
	return response.Success(c, "Readiness check completed", status)
}

// HealthDetailed returns comprehensive health check information; 503 when the document store is down
func HealthDetailed(c echo.Context) error {
	status := health.CheckHealth()
	if status.Status != health.StatusHealthy {
		return response.Fail(c, http.StatusServiceUnavailable, "Health check completed", status)
	}
	return response.Success(c, "Health check completed", status)
}
