package middleware

import (
	"errors"

	"github.com/benedict-erwin/shop-directory/internal/constants"
	"github.com/benedict-erwin/shop-directory/pkg/auth"
	"github.com/benedict-erwin/shop-directory/pkg/logger"
	"github.com/benedict-erwin/shop-directory/pkg/response"
	"github.com/labstack/echo/v4"
)

// AccessGuard authenticates the bearer token and enforces policy before the
// handler runs. Verified claims are stored under constants.IdentityKey.
func AccessGuard(guard *auth.Guard, policy auth.Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.WithScope("AccessGuard")

			claims, err := guard.Check(c.Request().Header.Get(echo.HeaderAuthorization), policy)
			if err != nil {
				code := guardFailureCode(err)
				log.Warn().
					Str("reason", err.Error()).
					Str("policy", policy.String()).
					Str("path", c.Request().URL.Path).
					Str("method", c.Request().Method).
					Str("request-id", constants.GetRequestID(c)).
					Msg("Access denied")
				return response.FailWithCode(c, code, guardFailureDetail(code))
			}

			c.Set(constants.IdentityKey, claims)
			log.Debug().
				Str("id", claims.UserID).
				Str("role", string(claims.Role)).
				Str("policy", policy.String()).
				Str("path", c.Request().URL.Path).
				Msg("Access granted")

			return next(c)
		}
	}
}

// RequireUser admits any authenticated identity
func RequireUser(guard *auth.Guard) echo.MiddlewareFunc {
	return AccessGuard(guard, auth.PolicyUser)
}

// RequireAdmin admits admin and superadmin identities
func RequireAdmin(guard *auth.Guard) echo.MiddlewareFunc {
	return AccessGuard(guard, auth.PolicyAdmin)
}

// GetIdentity returns the claims stored by AccessGuard, or nil on unguarded routes
func GetIdentity(c echo.Context) *auth.Claims {
	claims, _ := c.Get(constants.IdentityKey).(*auth.Claims)
	return claims
}

func guardFailureCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrExpired):
		return constants.CodeExpiredToken
	case errors.Is(err, auth.ErrInvalidSignature):
		return constants.CodeInvalidSignature
	case errors.Is(err, auth.ErrMalformedToken):
		return constants.CodeMalformedToken
	case errors.Is(err, auth.ErrInsufficientRole):
		return constants.CodeInsufficientRole
	}
	return constants.CodeUnauthorized
}

func guardFailureDetail(code int) string {
	switch code {
	case constants.CodeExpiredToken:
		return "Token has expired, please login again"
	case constants.CodeInsufficientRole:
		return "You are not authorized to perform this action"
	}
	return "Could not validate credentials"
}
