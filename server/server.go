package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benedict-erwin/shop-directory/http/middleware"
	"github.com/benedict-erwin/shop-directory/http/registry"
	_ "github.com/benedict-erwin/shop-directory/http/route"
	"github.com/benedict-erwin/shop-directory/internal/constants"
	asynqPkg "github.com/benedict-erwin/shop-directory/pkg/asynq"
	"github.com/benedict-erwin/shop-directory/pkg/logger"
	"github.com/benedict-erwin/shop-directory/pkg/redis"
	"github.com/benedict-erwin/shop-directory/pkg/response"
	"github.com/labstack/echo/v4"
)

// New builds the echo instance with middleware, error handler and every registered route
func New(deps *registry.Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger)
	e.HTTPErrorHandler = errorHandler

	registry.SetupAllRoutes(e, deps)
	return e
}

// errorHandler renders errors that escape the handlers (unknown routes,
// wrong methods, panics) with the response envelope
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	httpStatus := http.StatusInternalServerError
	code := constants.CodeInternalError
	message := constants.GetErrorMessage(code)
	var detail any = "There is some issue with our services, please try again later"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		httpStatus = he.Code
		code = constants.GetCodeFromHTTPStatus(he.Code)
		message = constants.GetErrorMessage(code)
		if he.Message != nil {
			detail = fmt.Sprintf("%v", he.Message)
		}
	} else {
		logger.WithScope("errorHandler").Error().
			Err(err).
			Str("path", c.Request().URL.Path).
			Str("request-id", constants.GetRequestID(c)).
			Msg("Unhandled error")
	}

	if err := response.Fail(c, httpStatus, message, detail); err != nil {
		logger.WithScope("errorHandler").Error().Err(err).Msg("Failed to write error response")
	}
}

// Start serves on port until SIGINT or SIGTERM, then shuts down gracefully
func Start(port int, deps *registry.Deps) error {
	log := logger.WithScope("startServer")

	e := New(deps)
	log.Info().Int("routes", len(e.Routes())).Msg("Registered routes")

	go func() {
		addr := fmt.Sprintf(":%d", port)
		log.Info().Msg("Starting server on " + addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
		return err
	}

	if err := redis.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close redis")
	}
	asynqPkg.CloseClient()

	log.Info().Msg("Server gracefully stopped")
	return nil
}
