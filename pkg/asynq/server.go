package asynq

import (
	"context"
	"time"

	"github.com/benedict-erwin/shop-directory/pkg/logger"
	"github.com/benedict-erwin/shop-directory/pkg/redis"
	"github.com/hibiken/asynq"
)

var (
	server            *asynq.Server
	serverRedisClient *redis.RedisClient
)

// InitServer builds the Asynq server on the asynq Redis database
func InitServer() (*asynq.Server, error) {
	log := logger.WithScope("InitServer")

	InitConcurrency()

	rc, err := redis.NewClientForAsynq()
	if err != nil {
		return nil, err
	}
	serverRedisClient = rc

	server = asynq.NewServerFromRedisClient(
		rc.Universal(),
		asynq.Config{
			Concurrency:     GetConcurrency(),
			Queues:          GenerateQueues(),
			ShutdownTimeout: 30 * time.Second, // Wait 30s for running tasks
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Error().
					Err(err).
					Str("task_type", task.Type()).
					Bytes("payload", task.Payload()).
					Msg("Task processing failed")
			}),
		},
	)

	SetCurrentServer(server)

	log.Info().
		Int("concurrency", GetConcurrency()).
		Interface("queues", GenerateQueues()).
		Msg("Asynq server initialized")
	return server, nil
}

// GetServer returns the current Asynq server instance
func GetServer() *asynq.Server {
	return server
}

// CloseServer shuts the Asynq server down and closes its Redis connection
func CloseServer() {
	if server != nil {
		server.Shutdown()
		logger.Info().Msg("Asynq server shut down")
		server = nil
	}

	// NewServerFromRedisClient leaves the connection to the caller
	if serverRedisClient != nil {
		if err := serverRedisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close server Redis client")
		} else {
			logger.Info().Msg("Server Redis client closed")
		}
		serverRedisClient = nil
	}
}
