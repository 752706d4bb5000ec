package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RedisMode defines the Redis deployment mode
type RedisMode string

const (
	ModeSingle  RedisMode = "single"  // Single-node Redis
	ModeCluster RedisMode = "cluster" // Redis Cluster
)

// Key prefixes for logical separation when DB selection is not available
const (
	PrefixWorker = "worker:"
	PrefixAsynq  = "asynq:"
)

// ErrNil is returned by Get and GetJSON when the key does not exist
var ErrNil = goredis.Nil

// Client defines the unified Redis client interface
type Client interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	GetMany(ctx context.Context, keys ...string) ([]string, error)
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetNX(ctx context.Context, key string, value interface{}) (bool, error)
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
	Health() error
	Close() error
}

// PoolConfig holds connection pool configuration
type PoolConfig struct {
	Size         int
	Timeout      time.Duration
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultPoolConfig returns the pool settings used by every client
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		Size:         10,
		Timeout:      30 * time.Second,
		DialTimeout:  10 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}
