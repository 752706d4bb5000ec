package auth

import (
	"fmt"
	"strings"
)

// Policy is the minimum role an operation requires
type Policy int

const (
	// PolicyUser admits any authenticated identity
	PolicyUser Policy = iota
	// PolicyAdmin admits admin and superadmin only
	PolicyAdmin
)

func (p Policy) String() string {
	switch p {
	case PolicyUser:
		return "user"
	case PolicyAdmin:
		return "admin"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// Allows reports whether role satisfies the policy
func (p Policy) Allows(role Role) bool {
	switch p {
	case PolicyUser:
		return true
	case PolicyAdmin:
		return role.IsAdmin()
	}
	return false
}

// Verifier resolves a bearer token to its claims
type Verifier interface {
	Verify(token string) (*Claims, error)
}

// Guard authenticates a request's bearer token and authorizes its role
type Guard struct {
	tokens Verifier
}

// NewGuard creates a guard backed by the given verifier
func NewGuard(tokens Verifier) *Guard {
	return &Guard{tokens: tokens}
}

// BearerToken extracts the token from an Authorization header value
func BearerToken(authorization string) (string, error) {
	scheme, token, found := strings.Cut(strings.TrimSpace(authorization), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", fmt.Errorf("%w: expected Bearer authorization", ErrMalformedToken)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("%w: empty bearer token", ErrMalformedToken)
	}
	return token, nil
}

// Authenticate is the first gate: header -> verified claims
func (g *Guard) Authenticate(authorization string) (*Claims, error) {
	token, err := BearerToken(authorization)
	if err != nil {
		return nil, err
	}
	return g.tokens.Verify(token)
}

// Authorize is the second gate: claims -> policy decision
func (g *Guard) Authorize(claims *Claims, policy Policy) error {
	if claims == nil || !policy.Allows(claims.Role) {
		return ErrInsufficientRole
	}
	return nil
}

// Check runs both gates in order; the second never runs if the first fails
func (g *Guard) Check(authorization string, policy Policy) (*Claims, error) {
	claims, err := g.Authenticate(authorization)
	if err != nil {
		return nil, err
	}
	if err := g.Authorize(claims, policy); err != nil {
		return nil, err
	}
	return claims, nil
}
