package asynq

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/benedict-erwin/shop-directory/config"
	"github.com/benedict-erwin/shop-directory/internal/constants"
	"github.com/benedict-erwin/shop-directory/internal/jobs"
	"github.com/benedict-erwin/shop-directory/pkg/logger"
	"github.com/benedict-erwin/shop-directory/pkg/redis"
	"github.com/hibiken/asynq"
)

// Keys under the worker config client prefix
const (
	workerConfigKey    = "asynq:worker:config"
	workerHeartbeatKey = "asynq:worker:heartbeat"
	heartbeatTTL       = 60 * time.Second
)

type WorkerConfig struct {
	Name       string   `json:"name"`
	Percentage int      `json:"percentage"`
	TaskTypes  []string `json:"task_types"`
}

var (
	mu                 sync.RWMutex
	currentConcurrency int
	workers            = []WorkerConfig{}
	currentServer      *asynq.Server
	serverRunning      bool

	// newConfigClient opens the client used for worker config and heartbeat
	newConfigClient = func() (redis.Client, error) {
		return redis.NewClientForWorkerConfig()
	}
)

// InitConcurrency loads concurrency from config and the worker layout from
// Redis, generating defaults from the job registry when none is stored
func InitConcurrency() {
	mu.Lock()
	defer mu.Unlock()

	if currentConcurrency == 0 {
		if cfg := config.Get(); cfg != nil {
			currentConcurrency = cfg.Asynq.Concurrency
		}
		if currentConcurrency == 0 {
			currentConcurrency = 10 // fallback default
		}
	}

	if err := loadWorkersFromRedis(); err != nil {
		logger.Warn().Err(err).Msg("Failed to load worker config from Redis, generating defaults")
	}

	if len(workers) == 0 {
		workers = generateDefaultWorkers()
		logger.Info().Int("generated_workers", len(workers)).Msg("Generated default workers from job registry")

		if err := saveWorkersToRedis(); err != nil {
			logger.Error().Err(err).Msg("Failed to save generated default workers to Redis")
		}
	}

	logger.Info().Int("concurrency", currentConcurrency).Int("workers_count", len(workers)).Msg("Worker configuration initialized")
}

// GetConcurrency returns current concurrency setting
func GetConcurrency() int {
	mu.RLock()
	defer mu.RUnlock()
	return currentConcurrency
}

// SetWorker updates worker configuration and persists to Redis
func SetWorker(name string, percentage int, taskTypes []string) {
	mu.Lock()
	defer mu.Unlock()

	found := false
	for i := range workers {
		if workers[i].Name == name {
			workers[i].Percentage = percentage
			workers[i].TaskTypes = taskTypes
			found = true
			break
		}
	}

	if !found {
		workers = append(workers, WorkerConfig{
			Name:       name,
			Percentage: percentage,
			TaskTypes:  taskTypes,
		})
	}

	if err := saveWorkersToRedis(); err != nil {
		logger.Error().Err(err).Msg("Failed to save worker config to Redis")
	}

	logger.Info().Str("worker", name).Int("percentage", percentage).Msg("Worker configuration updated and persisted")
}

// GetWorkers returns a copy of the worker configurations, sorted by name
func GetWorkers() []WorkerConfig {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]WorkerConfig, len(workers))
	copy(result, workers)
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// GenerateQueues creates queue weights from worker percentages
func GenerateQueues() map[string]int {
	mu.RLock()
	defer mu.RUnlock()

	queues := make(map[string]int)
	for _, worker := range workers {
		queues[worker.Name] = worker.Percentage / 10
		if queues[worker.Name] == 0 {
			queues[worker.Name] = 1 // minimum 1
		}
	}
	return queues
}

// GetQueueForTaskType returns the queue a task type is routed to
func GetQueueForTaskType(taskType string) string {
	mu.RLock()
	defer mu.RUnlock()

	for _, worker := range workers {
		for _, t := range worker.TaskTypes {
			if t == taskType {
				return worker.Name
			}
		}
	}

	// Fall back to the registry before the config has been loaded
	if registered, err := jobs.GetRegisteredJobs(); err == nil {
		for _, job := range registered {
			if job.TaskType == taskType {
				return job.Queue
			}
		}
	}
	return constants.QueueDefault
}

// ResetToDefault drops the stored layout and regenerates it from the job registry
func ResetToDefault() {
	mu.Lock()
	defer mu.Unlock()

	workers = generateDefaultWorkers()
	if err := saveWorkersToRedis(); err != nil {
		logger.Error().Err(err).Msg("Failed to save reset config to Redis")
	}

	logger.Info().Int("workers_count", len(workers)).Msg("Worker configuration reset to defaults")
}

// SetCurrentServer stores the running server reference
func SetCurrentServer(s *asynq.Server) {
	mu.Lock()
	defer mu.Unlock()
	currentServer = s
}

// IsServerRunning reports whether a worker runs in this process or
// another process holds the heartbeat
func IsServerRunning() bool {
	mu.RLock()
	local := currentServer != nil && serverRunning
	mu.RUnlock()

	if local {
		return true
	}
	return checkWorkerHeartbeat()
}

// SetServerRunning updates server running status
func SetServerRunning(running bool) {
	mu.Lock()
	defer mu.Unlock()
	serverRunning = running
	logger.Info().Bool("running", running).Msg("Asynq server status updated")
}

// ClearServerReference clears server reference when stopped
func ClearServerReference() {
	mu.Lock()
	currentServer = nil
	serverRunning = false
	mu.Unlock()

	removeWorkerHeartbeat()
	logger.Info().Msg("Asynq server reference cleared")
}

// checkWorkerHeartbeat checks if any worker process is running via Redis
func checkWorkerHeartbeat() bool {
	client, err := newConfigClient()
	if err != nil {
		logger.Warn().Err(err).Msg("Cannot create Redis client for heartbeat check")
		return false
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// Key auto-expires if the worker is dead
	exists, err := client.Exists(ctx, workerHeartbeatKey)
	if err != nil {
		logger.Warn().Err(err).Msg("Cannot check worker heartbeat - Redis unavailable")
		return false
	}
	return exists
}

// SetWorkerHeartbeat refreshes the worker heartbeat key
func SetWorkerHeartbeat() {
	client, err := newConfigClient()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create Redis client for heartbeat")
		return
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Set(ctx, workerHeartbeatKey, time.Now().Unix(), heartbeatTTL); err != nil {
		logger.Error().Err(err).Msg("Failed to set worker heartbeat in Redis")
	}
}

func removeWorkerHeartbeat() {
	client, err := newConfigClient()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create Redis client for heartbeat removal")
		return
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Delete(ctx, workerHeartbeatKey); err != nil {
		logger.Error().Err(err).Msg("Failed to remove worker heartbeat from Redis")
	}
}

// saveWorkersToRedis persists worker configuration. Callers hold mu.
func saveWorkersToRedis() error {
	client, err := newConfigClient()
	if err != nil {
		return fmt.Errorf("failed to create Redis client for worker config: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.SetJSON(ctx, workerConfigKey, workers, 0); err != nil {
		return fmt.Errorf("failed to save worker config to Redis: %w", err)
	}

	logger.Debug().Int("workers_count", len(workers)).Msg("Worker configuration saved to Redis")
	return nil
}

// loadWorkersFromRedis loads worker configuration. Callers hold mu.
func loadWorkersFromRedis() error {
	client, err := newConfigClient()
	if err != nil {
		return fmt.Errorf("failed to create Redis client for worker config: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var stored []WorkerConfig
	if err := client.GetJSON(ctx, workerConfigKey, &stored); err != nil {
		if errors.Is(err, redis.ErrNil) {
			logger.Info().Msg("No worker configuration found in Redis, starting with empty config")
			return nil
		}
		return fmt.Errorf("failed to load worker config from Redis: %w", err)
	}

	workers = stored
	logger.Info().Int("workers_count", len(workers)).Msg("Worker configuration loaded from Redis")
	return nil
}

// generateDefaultWorkers creates worker configuration from job registry
func generateDefaultWorkers() []WorkerConfig {
	registeredJobs, err := jobs.GetRegisteredJobs()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to get registered jobs, creating empty worker config")
		return []WorkerConfig{}
	}

	queueJobs := make(map[string][]string)
	for _, job := range registeredJobs {
		queueJobs[job.Queue] = append(queueJobs[job.Queue], job.TaskType)
	}

	defaultWorkers := make([]WorkerConfig, 0, len(queueJobs))
	for queue, taskTypes := range queueJobs {
		defaultWorkers = append(defaultWorkers, WorkerConfig{
			Name:       queue,
			Percentage: getDefaultPercentage(queue, len(queueJobs)),
			TaskTypes:  taskTypes,
		})
	}
	sort.Slice(defaultWorkers, func(i, j int) bool { return defaultWorkers[i].Name < defaultWorkers[j].Name })

	return normalizePercentages(defaultWorkers)
}

// getDefaultPercentage returns the default share for a queue
func getDefaultPercentage(queue string, totalQueues int) int {
	switch queue {
	case constants.QueueCritical:
		return 60
	case constants.QueueDefault:
		return 30
	case constants.QueueLow:
		return 10
	default:
		return 100 / totalQueues
	}
}

// normalizePercentages ensures percentages sum to 100%
func normalizePercentages(workers []WorkerConfig) []WorkerConfig {
	if len(workers) == 0 {
		return workers
	}

	total := 0
	for _, worker := range workers {
		total += worker.Percentage
	}

	if total == 0 {
		even := 100 / len(workers)
		remainder := 100 % len(workers)
		for i := range workers {
			workers[i].Percentage = even
			if i < remainder {
				workers[i].Percentage++
			}
		}
		return workers
	}

	if total != 100 {
		actual := 0
		for i := range workers {
			workers[i].Percentage = (workers[i].Percentage * 100) / total
			actual += workers[i].Percentage
		}
		// rounding remainder goes to the first worker
		workers[0].Percentage += 100 - actual
	}
	return workers
}
