package auth

import "errors"

// Failure kinds of the token service and access guard. All of them are
// terminal for the request that produced them.
var (
	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrExpired          = errors.New("token expired")
	ErrInsufficientRole = errors.New("insufficient role")

	ErrEmptySecret   = errors.New("signing secret is empty")
	ErrInvalidClaims = errors.New("invalid claims")
)
