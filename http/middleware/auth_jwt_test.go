package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/benedict-erwin/shop-directory/internal/constants"
	"github.com/benedict-erwin/shop-directory/pkg/auth"
	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

func issue(t *testing.T, role auth.Role, issuedAt time.Time) string {
	t.Helper()
	tokens, err := auth.NewTokenService(testSecret, time.Hour, auth.WithClock(func() time.Time { return issuedAt }))
	require.NoError(t, err)

	claims, err := auth.NewClaims("id-1", "jo", "jo@example.com", role, issuedAt)
	require.NoError(t, err)
	token, err := tokens.Issue(claims)
	require.NoError(t, err)
	return token
}

func serveGuarded(t *testing.T, policy auth.Policy, authorization string) (*httptest.ResponseRecorder, *auth.Claims) {
	t.Helper()
	tokens, err := auth.NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)

	var seen *auth.Claims
	e := echo.New()
	e.GET("/guarded", func(c echo.Context) error {
		seen = GetIdentity(c)
		return c.NoContent(http.StatusNoContent)
	}, AccessGuard(auth.NewGuard(tokens), policy))

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, seen
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env struct {
		Status   bool   `json:"status"`
		Response string `json:"response"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Status)
	return env.Response
}

func TestAccessGuard_Admits(t *testing.T) {
	token := issue(t, auth.RoleAdmin, time.Now())

	rec, claims := serveGuarded(t, auth.PolicyAdmin, "Bearer "+token)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, claims)
	assert.Equal(t, "id-1", claims.UserID)
	assert.Equal(t, auth.RoleAdmin, claims.Role)
}

func TestAccessGuard_Rejects(t *testing.T) {
	for name, tc := range map[string]struct {
		policy        auth.Policy
		authorization string
		status        int
		detail        string
	}{
		"missing header": {
			auth.PolicyUser, "", http.StatusUnauthorized, "Could not validate credentials",
		},
		"malformed": {
			auth.PolicyUser, "Bearer not-a-token", http.StatusUnauthorized, "Could not validate credentials",
		},
		"expired": {
			auth.PolicyUser, "Bearer " + issue(t, auth.RoleUser, time.Now().Add(-2*time.Hour)),
			http.StatusUnauthorized, "Token has expired, please login again",
		},
		"user on admin route": {
			auth.PolicyAdmin, "Bearer " + issue(t, auth.RoleUser, time.Now()),
			http.StatusForbidden, "You are not authorized to perform this action",
		},
	} {
		t.Run(name, func(t *testing.T) {
			rec, claims := serveGuarded(t, tc.policy, tc.authorization)
			assert.Equal(t, tc.status, rec.Code)
			assert.Nil(t, claims)
			assert.Equal(t, tc.detail, decodeDetail(t, rec))
		})
	}
}

func TestGuardFailureCode(t *testing.T) {
	assert.Equal(t, constants.CodeExpiredToken, guardFailureCode(auth.ErrExpired))
	assert.Equal(t, constants.CodeInvalidSignature, guardFailureCode(auth.ErrInvalidSignature))
	assert.Equal(t, constants.CodeMalformedToken, guardFailureCode(auth.ErrMalformedToken))
	assert.Equal(t, constants.CodeInsufficientRole, guardFailureCode(auth.ErrInsufficientRole))
	assert.Equal(t, constants.CodeUnauthorized, guardFailureCode(auth.ErrInvalidClaims))
}
