package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	c := &Config{}
	assert.Error(t, c.Validate(), "missing secret")

	c.Auth.Secret = "s3cret"
	require.NoError(t, c.Validate())

	c.Auth.Algorithm = "RS256"
	assert.Error(t, c.Validate())

	c.Auth.Algorithm = "HS256"
	c.Auth.TokenTTL = "soon"
	assert.Error(t, c.Validate())

	c.Auth.TokenTTL = "-1h"
	assert.Error(t, c.Validate())
}

func TestConfig_TokenTTL(t *testing.T) {
	c := &Config{}
	ttl, err := c.TokenTTL()
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, ttl)

	c.Auth.TokenTTL = "90m"
	ttl, err = c.TokenTTL()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, ttl)
}
