package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/benedict-erwin/shop-directory/config"
	"github.com/goccy/go-json"
	goredis "github.com/redis/go-redis/v9"
)

// RedisClient implements Client on top of a universal client, so the same
// code path serves single-node and cluster deployments
type RedisClient struct {
	mode      RedisMode
	rdb       goredis.UniversalClient
	keyPrefix string // namespace prepended to every key
}

// NewRedisClient creates a new Redis client based on configuration
func NewRedisClient(cfg config.RedisConfig, pool PoolConfig, keyPrefix string, db int) (*RedisClient, error) {
	mode := RedisMode(cfg.Mode)
	if mode == "" {
		mode = ModeSingle
	}

	client := &RedisClient{mode: mode, keyPrefix: keyPrefix}

	switch mode {
	case ModeSingle:
		client.rdb = goredis.NewClient(&goredis.Options{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Password:     cfg.Password,
			DB:           db,
			DialTimeout:  pool.DialTimeout,
			ReadTimeout:  pool.ReadTimeout,
			WriteTimeout: pool.WriteTimeout,
			PoolSize:     pool.Size,
			PoolTimeout:  pool.Timeout,
		})
	case ModeCluster:
		// Cluster doesn't support DB selection, the prefix does the separation
		client.rdb = goredis.NewClusterClient(&goredis.ClusterOptions{
			Addrs:        cfg.Cluster.Nodes,
			Password:     cfg.Cluster.Password,
			DialTimeout:  pool.DialTimeout,
			ReadTimeout:  pool.ReadTimeout,
			WriteTimeout: pool.WriteTimeout,
			PoolSize:     pool.Size,
			PoolTimeout:  pool.Timeout,
		})
	default:
		return nil, fmt.Errorf("unsupported Redis mode: %s", cfg.Mode)
	}

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.rdb.Ping(ctx).Err(); err != nil {
		_ = client.rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis (%s): %w", mode, err)
	}

	return client, nil
}

// NewFromUniversal wraps an existing client, mostly for tests
func NewFromUniversal(rdb goredis.UniversalClient, keyPrefix string) *RedisClient {
	return &RedisClient{mode: ModeSingle, rdb: rdb, keyPrefix: keyPrefix}
}

// Universal exposes the underlying client for libraries that need it (asynq)
func (r *RedisClient) Universal() goredis.UniversalClient {
	return r.rdb
}

// buildKey constructs the final key with prefix
func (r *RedisClient) buildKey(key string) string {
	if r.keyPrefix != "" {
		return r.keyPrefix + key
	}
	return key
}

func (r *RedisClient) buildKeys(keys []string) []string {
	finalKeys := make([]string, len(keys))
	for i, key := range keys {
		finalKeys[i] = r.buildKey(key)
	}
	return finalKeys
}

// Set sets a key-value pair with expiration
func (r *RedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return r.rdb.Set(ctx, r.buildKey(key), value, expiration).Err()
}

// Get retrieves a value by key; a missing key returns ErrNil
func (r *RedisClient) Get(ctx context.Context, key string) (string, error) {
	return r.rdb.Get(ctx, r.buildKey(key)).Result()
}

// GetMany fetches several keys in one pipeline. Missing keys are skipped,
// so the result may be shorter than keys.
func (r *RedisClient) GetMany(ctx context.Context, keys ...string) ([]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	cmds := make([]*goredis.StringCmd, len(keys))
	_, err := r.rdb.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
		for i, key := range keys {
			cmds[i] = pipe.Get(ctx, r.buildKey(key))
		}
		return nil
	})
	if err != nil && err != goredis.Nil {
		return nil, err
	}

	values := make([]string, 0, len(keys))
	for _, cmd := range cmds {
		val, err := cmd.Result()
		if err == goredis.Nil {
			continue
		}
		if err != nil {
			return nil, err
		}
		values = append(values, val)
	}
	return values, nil
}

// SetJSON stores JSON-serialized data with expiration
func (r *RedisClient) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return r.Set(ctx, key, data, expiration)
}

// GetJSON retrieves and deserializes JSON data
func (r *RedisClient) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := r.Get(ctx, key)
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return nil
}

// SetNX sets key only if it does not exist yet and reports whether it did
func (r *RedisClient) SetNX(ctx context.Context, key string, value interface{}) (bool, error) {
	return r.rdb.SetNX(ctx, r.buildKey(key), value, 0).Result()
}

// Delete removes one or more keys
func (r *RedisClient) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	// Cluster rejects multi-key DEL across slots
	if r.mode == ModeCluster {
		for _, key := range r.buildKeys(keys) {
			if err := r.rdb.Del(ctx, key).Err(); err != nil {
				return err
			}
		}
		return nil
	}
	return r.rdb.Del(ctx, r.buildKeys(keys)...).Err()
}

// Exists checks if a key exists
func (r *RedisClient) Exists(ctx context.Context, key string) (bool, error) {
	count, err := r.rdb.Exists(ctx, r.buildKey(key)).Result()
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// SAdd adds members to a set
func (r *RedisClient) SAdd(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	return r.rdb.SAdd(ctx, r.buildKey(key), toArgs(members)...).Err()
}

// SRem removes members from a set
func (r *RedisClient) SRem(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	return r.rdb.SRem(ctx, r.buildKey(key), toArgs(members)...).Err()
}

// SMembers returns all members of a set
func (r *RedisClient) SMembers(ctx context.Context, key string) ([]string, error) {
	return r.rdb.SMembers(ctx, r.buildKey(key)).Result()
}

// Health checks the Redis connection
func (r *RedisClient) Health() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return r.rdb.Ping(ctx).Err()
}

// Close closes the Redis connection
func (r *RedisClient) Close() error {
	if r.rdb != nil {
		return r.rdb.Close()
	}
	return nil
}

func toArgs(members []string) []interface{} {
	args := make([]interface{}, len(members))
	for i, m := range members {
		args[i] = m
	}
	return args
}
