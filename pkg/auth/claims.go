package auth

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the access level carried in a session token
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// IsAdmin reports whether r grants shop administration
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// LastLoginLayout is the format of the last-login claim
const LastLoginLayout = "2006-01-02 15:04:05"

// Claims is the payload embedded in a session token.
// iat and exp come from the embedded RegisteredClaims and are set by Issue.
type Claims struct {
	UserID     string `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	LastLogin  string `json:"last-login,omitempty"`
	CustomData []any  `json:"custom_data"`
	jwt.RegisteredClaims
}

// NewClaims builds a validated claims set for a freshly authenticated identity
func NewClaims(id, username, email string, role Role, lastLogin time.Time) (Claims, error) {
	c := Claims{
		UserID:     id,
		Username:   username,
		Email:      email,
		Role:       role,
		CustomData: []any{},
	}
	if !lastLogin.IsZero() {
		c.LastLogin = lastLogin.Format(LastLoginLayout)
	}
	if err := c.Validate(); err != nil {
		return Claims{}, err
	}
	return c, nil
}

// Validate checks the fixed fields
func (c Claims) Validate() error {
	if c.UserID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidClaims)
	}
	if !c.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidClaims, c.Role)
	}
	return nil
}

// UnmarshalJSON accepts the legacy "Last-login" spelling used by older admin tokens
func (c *Claims) UnmarshalJSON(data []byte) error {
	type plain Claims
	var aux struct {
		plain
		LegacyLastLogin string `json:"Last-login"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*c = Claims(aux.plain)
	if c.LastLogin == "" {
		c.LastLogin = aux.LegacyLastLogin
	}
	return nil
}
