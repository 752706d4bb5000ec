package redis

import (
	"fmt"

	"github.com/benedict-erwin/shop-directory/config"
	"github.com/benedict-erwin/shop-directory/pkg/logger"
)

// keyPrefixFor picks the key namespace for a client role. Single-node mode
// separates roles by DB, cluster mode by prefix.
func keyPrefixFor(cfg config.RedisConfig, clusterPrefix string) string {
	if RedisMode(cfg.Mode) == ModeCluster {
		return cfg.Prefix + clusterPrefix
	}
	return cfg.Prefix
}

// NewClientForMain returns Redis client for the document store
func NewClientForMain() (*RedisClient, error) {
	cfg := config.Get().Redis
	keyPrefix := cfg.Prefix

	client, err := NewRedisClient(cfg, DefaultPoolConfig(), keyPrefix, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to create main Redis client: %w", err)
	}

	logger.Info().
		Str("mode", cfg.Mode).
		Str("prefix", keyPrefix).
		Int("db", cfg.DB).
		Msg("Main Redis client initialized")

	return client, nil
}

// NewClientForWorkerConfig returns Redis client for worker configuration and heartbeat
func NewClientForWorkerConfig() (*RedisClient, error) {
	cfg := config.Get().Redis
	keyPrefix := keyPrefixFor(cfg, PrefixWorker)

	client, err := NewRedisClient(cfg, DefaultPoolConfig(), keyPrefix, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker config Redis client: %w", err)
	}

	logger.Debug().
		Str("mode", cfg.Mode).
		Str("prefix", keyPrefix).
		Msg("Worker config Redis client initialized")

	return client, nil
}

// NewClientForAsynq returns the Redis client handed to the asynq client and server
func NewClientForAsynq() (*RedisClient, error) {
	appCfg := config.Get()
	cfg := appCfg.Redis

	pool := DefaultPoolConfig()
	if appCfg.Asynq.PoolSize > 0 {
		pool.Size = appCfg.Asynq.PoolSize
	}

	// asynq manages its own key names
	client, err := NewRedisClient(cfg, pool, "", appCfg.Asynq.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to create Asynq Redis client: %w", err)
	}

	logger.Info().
		Str("mode", cfg.Mode).
		Int("db", appCfg.Asynq.DB).
		Int("pool_size", pool.Size).
		Msg("Asynq Redis client initialized")

	return client, nil
}
