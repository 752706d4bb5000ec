package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type (
	app struct {
		Name     string `json:"name" mapstructure:"name"`
		Env      string `json:"env" mapstructure:"env"`
		Port     int    `json:"port" mapstructure:"port"`
		Timezone string `json:"timezone" mapstructure:"timezone"`
		Version  string `json:"version" mapstructure:"version"`
	}

	redis struct {
		Mode     string `json:"mode" mapstructure:"mode"` // "single" or "cluster"
		Host     string `json:"host" mapstructure:"host"`
		Port     int    `json:"port" mapstructure:"port"`
		Password string `json:"password" mapstructure:"password"`
		DB       int    `json:"db" mapstructure:"db"`
		Prefix   string `json:"prefix" mapstructure:"prefix"` // key namespace for the document store
		Cluster  struct {
			Nodes    []string `json:"nodes" mapstructure:"nodes"`
			Password string   `json:"password" mapstructure:"password"`
		} `json:"cluster" mapstructure:"cluster"`
	}

	asynq struct {
		Enabled     bool `json:"enabled" mapstructure:"enabled"`
		Concurrency int  `json:"concurrency" mapstructure:"concurrency"`
		DB          int  `json:"db" mapstructure:"db"`
		PoolSize    int  `json:"pool_size" mapstructure:"pool_size"`
	}

	auth struct {
		Algorithm string `json:"algorithm" mapstructure:"algorithm"`
		Secret    string `json:"secret" mapstructure:"secret"`
		TokenTTL  string `json:"token_ttl" mapstructure:"token_ttl"` // Go duration, e.g. "168h"
	}

	Config struct {
		App   app   `json:"app" mapstructure:"app"`
		Redis redis `json:"redis" mapstructure:"redis"`
		Asynq asynq `json:"asynq" mapstructure:"asynq"`
		Auth  auth  `json:"auth" mapstructure:"auth"`
	}

	// RedisConfig is an alias for the internal redis struct for external access
	RedisConfig = redis
)

// DefaultTokenTTL is the session token validity window
const DefaultTokenTTL = 7 * 24 * time.Hour

var cfg *Config

// Init loads configuration from .config file
func Init() error {
	v := viper.New()
	v.SetConfigName(".config")
	v.SetConfigType("json")
	v.AddConfigPath("./")

	v.SetEnvPrefix("SHOPDIR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	loaded := &Config{}
	if err := v.Unmarshal(loaded); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	cfg = loaded
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "shop-directory")
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.port", 8000)
	v.SetDefault("app.timezone", "UTC")
	v.SetDefault("redis.mode", "single")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.prefix", "isc:")
	v.SetDefault("asynq.concurrency", 5)
	v.SetDefault("asynq.db", 1)
	v.SetDefault("asynq.pool_size", 10)
	v.SetDefault("auth.algorithm", "HS256")
	v.SetDefault("auth.token_ttl", DefaultTokenTTL.String())
}

// Validate checks settings that would otherwise fail at request time
func (c *Config) Validate() error {
	if c.Auth.Secret == "" {
		return fmt.Errorf("auth.secret is required")
	}
	if c.Auth.Algorithm != "" && c.Auth.Algorithm != "HS256" {
		return fmt.Errorf("unsupported auth.algorithm: %s", c.Auth.Algorithm)
	}
	if _, err := c.TokenTTL(); err != nil {
		return err
	}
	return nil
}

// TokenTTL parses the configured validity window, falling back to 7 days
func (c *Config) TokenTTL() (time.Duration, error) {
	if c.Auth.TokenTTL == "" {
		return DefaultTokenTTL, nil
	}
	ttl, err := time.ParseDuration(c.Auth.TokenTTL)
	if err != nil {
		return 0, fmt.Errorf("invalid auth.token_ttl %q: %w", c.Auth.TokenTTL, err)
	}
	if ttl <= 0 {
		return 0, fmt.Errorf("auth.token_ttl must be positive")
	}
	return ttl, nil
}

// Get returns the current configuration instance
func Get() *Config {
	return cfg
}

// Set replaces the current configuration (used by tests and CLI tooling)
func Set(c *Config) {
	cfg = c
}
