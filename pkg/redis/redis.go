package redis

import (
	"fmt"
	"sync"

	"github.com/benedict-erwin/shop-directory/config"
	"github.com/benedict-erwin/shop-directory/pkg/logger"
)

var (
	mainClient Client
	mu         sync.RWMutex
	once       sync.Once
)

// Init initializes the main Redis client from configuration
func Init() error {
	var initErr error

	once.Do(func() {
		cfg := config.Get().Redis

		if err := ValidateConfig(cfg); err != nil {
			initErr = fmt.Errorf("invalid Redis configuration: %w", err)
			return
		}

		client, err := NewClientForMain()
		if err != nil {
			initErr = fmt.Errorf("failed to initialize main Redis client: %w", err)
			return
		}

		mu.Lock()
		mainClient = client
		mu.Unlock()

		logger.Info().
			Str("mode", cfg.Mode).
			Str("host", cfg.Host).
			Int("port", cfg.Port).
			Msg("Redis client initialized successfully")
	})

	return initErr
}

// GetClient returns the main Redis client instance
func GetClient() Client {
	mu.RLock()
	defer mu.RUnlock()
	return mainClient
}

// SetClient replaces the main client (tests and CLI tooling)
func SetClient(c Client) {
	mu.Lock()
	defer mu.Unlock()
	mainClient = c
}

// Close closes the main Redis connection
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if mainClient != nil {
		err := mainClient.Close()
		mainClient = nil
		return err
	}

	return nil
}

// Health checks the main Redis connection
func Health() error {
	client := GetClient()
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	return client.Health()
}

// ValidateConfig validates the Redis configuration
func ValidateConfig(cfg config.RedisConfig) error {
	mode := RedisMode(cfg.Mode)
	if mode == "" {
		mode = ModeSingle
	}

	switch mode {
	case ModeSingle:
		if cfg.Host == "" {
			return fmt.Errorf("redis host not specified for single-node mode")
		}
		if cfg.Port <= 0 || cfg.Port > 65535 {
			return fmt.Errorf("invalid Redis port: %d", cfg.Port)
		}

	case ModeCluster:
		if len(cfg.Cluster.Nodes) == 0 {
			return fmt.Errorf("redis cluster nodes not specified")
		}
		for _, node := range cfg.Cluster.Nodes {
			if node == "" {
				return fmt.Errorf("empty Redis cluster node")
			}
		}

	default:
		return fmt.Errorf("unsupported Redis mode: %s", cfg.Mode)
	}

	return nil
}
