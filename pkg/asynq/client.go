package asynq

import (
	"errors"
	"fmt"

	"github.com/benedict-erwin/shop-directory/pkg/logger"
	"github.com/benedict-erwin/shop-directory/pkg/redis"
	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
)

var (
	client            *asynq.Client
	clientRedisClient *redis.RedisClient
)

// InitClient initializes the Asynq client on the asynq Redis database
func InitClient() error {
	rc, err := redis.NewClientForAsynq()
	if err != nil {
		return err
	}

	clientRedisClient = rc
	client = asynq.NewClientFromRedisClient(rc.Universal())
	logger.Info().Msg("Asynq client initialized")
	return nil
}

// GetClient returns the current Asynq client instance
func GetClient() *asynq.Client {
	return client
}

// SetClient replaces the Asynq client, used by tests
func SetClient(c *asynq.Client) {
	client = c
}

// DispatchJob enqueues a task on the queue its type is routed to
func DispatchJob(payload *Payload) error {
	if payload == nil {
		return fmt.Errorf("payload cannot be nil")
	}

	log := logger.WithScope("DispatchJob")

	data, err := json.Marshal(payload.Data)
	if err != nil {
		log.Error().Err(err).Str("taskType", payload.TaskType).Msg("Failed to marshal task payload")
		return err
	}

	task := asynq.NewTask(payload.TaskType, data)
	c := GetClient()
	if c == nil {
		log.Error().Msg("Asynq client not initialized")
		return fmt.Errorf("queue client not available")
	}

	queue := GetQueueForTaskType(payload.TaskType)
	opts := []asynq.Option{asynq.Queue(queue)}
	if payload.TaskId != "" {
		opts = append(opts, asynq.TaskID(payload.TaskId))
	}
	if !payload.ProcessAt.IsZero() {
		opts = append(opts, asynq.ProcessAt(payload.ProcessAt))
	}

	info, err := c.Enqueue(task, opts...)
	if err != nil {
		if errors.Is(err, asynq.ErrDuplicateTask) || errors.Is(err, asynq.ErrTaskIDConflict) {
			log.Warn().
				Str("taskId", payload.TaskId).
				Str("taskType", payload.TaskType).
				Msg("Duplicate task ignored - already in queue")
			return nil
		}

		log.Error().
			Err(err).
			Str("taskId", payload.TaskId).
			Str("taskType", payload.TaskType).
			Msg("Failed to enqueue task")
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	log.Info().
		Str("taskId", info.ID).
		Str("taskType", payload.TaskType).
		Str("queue", info.Queue).
		Str("state", info.State.String()).
		Time("processAt", info.NextProcessAt).
		Msg("Task enqueued successfully")

	return nil
}

// CloseClient closes the Asynq client connection
func CloseClient() {
	if client != nil {
		if err := client.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close Asynq client")
		} else {
			logger.Info().Msg("Asynq client closed")
		}
		client = nil
	}

	// NewClientFromRedisClient leaves the connection to the caller
	if clientRedisClient != nil {
		if err := clientRedisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close client Redis connection")
		}
		clientRedisClient = nil
	}
}
