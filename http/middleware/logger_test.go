package middleware

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/benedict-erwin/shop-directory/internal/constants"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestLogger_RequestID(t *testing.T) {
	e := echo.New()
	e.Use(Logger)

	var fromEcho, fromContext string
	e.GET("/", func(c echo.Context) error {
		fromEcho = constants.GetRequestID(c)
		fromContext = constants.RequestIDFromContext(c.Request().Context())
		return c.NoContent(http.StatusNoContent)
	})

	t.Run("supplied by caller", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(constants.HeaderCorrelationID, "corr-42")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, "corr-42", fromEcho)
		assert.Equal(t, "corr-42", fromContext)
		assert.Equal(t, "corr-42", rec.Header().Get(constants.HeaderRequestID))
	})

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Regexp(t, regexp.MustCompile(`^req-\d+-[0-9a-f]{8}$`), fromEcho)
		assert.Equal(t, fromEcho, fromContext)
		assert.Equal(t, fromEcho, rec.Header().Get(constants.HeaderRequestID))
	})
}
