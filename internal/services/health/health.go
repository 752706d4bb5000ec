package health

import (
	"sync"
	"time"

	"github.com/benedict-erwin/shop-directory/config"
	"github.com/benedict-erwin/shop-directory/pkg/asynq"
	"github.com/benedict-erwin/shop-directory/pkg/redis"
	"github.com/benedict-erwin/shop-directory/pkg/system"
	"github.com/benedict-erwin/shop-directory/pkg/utils"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusDegraded  = "degraded"
	StatusReady     = "ready"
	StatusNotReady  = "not_ready"
)

var (
	startTime = time.Now()

	healthCache      *HealthStatus
	healthCacheTime  time.Time
	healthCacheMutex sync.RWMutex

	readinessCache      *ReadinessStatus
	readinessCacheTime  time.Time
	readinessCacheMutex sync.RWMutex

	cacheValidDuration = 10 * time.Second

	// Probes, replaceable in tests
	pingRedis     = redis.Health
	queueEnabled  = func() bool { return asynq.GetClient() != nil }
	workerRunning = asynq.IsServerRunning
)

type HealthStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Version   string                   `json:"version"`
	Uptime    string                   `json:"uptime"`
	Services  map[string]ServiceHealth `json:"services"`
	System    system.ProcessMetrics    `json:"system"`
}

type ServiceHealth struct {
	Status       string    `json:"status"`
	ResponseTime string    `json:"response_time"`
	LastCheck    time.Time `json:"last_check"`
	Error        string    `json:"error,omitempty"`
}

type ReadinessStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Services  map[string]ServiceHealth `json:"services"`
}

// Ready reports whether every critical dependency answered
func (r *ReadinessStatus) Ready() bool {
	return r.Status == StatusReady
}

// CheckHealth reports the document store, the job queue and process stats, cached for 10s
func CheckHealth() *HealthStatus {
	healthCacheMutex.RLock()
	if healthCache != nil && time.Since(healthCacheTime) < cacheValidDuration {
		cached := *healthCache
		healthCacheMutex.RUnlock()
		return &cached
	}
	healthCacheMutex.RUnlock()

	status := &HealthStatus{
		Status:    StatusHealthy,
		Timestamp: utils.Now(),
		Uptime:    time.Since(startTime).Round(time.Second).String(),
		Services:  make(map[string]ServiceHealth),
		System:    system.GetProcessMetrics(),
	}
	if cfg := config.Get(); cfg != nil {
		status.Version = cfg.App.Version
	}

	redisHealth := checkRedis()
	status.Services["redis"] = redisHealth
	if redisHealth.Status != StatusHealthy {
		status.Status = StatusDegraded
	}

	// Expiry is best effort, so the queue never degrades overall health
	status.Services["asynq"] = checkAsynq()

	healthCacheMutex.Lock()
	healthCache = status
	healthCacheTime = time.Now()
	healthCacheMutex.Unlock()

	return status
}

// CheckReadiness pings the document store, cached for 10s
func CheckReadiness() *ReadinessStatus {
	readinessCacheMutex.RLock()
	if readinessCache != nil && time.Since(readinessCacheTime) < cacheValidDuration {
		cached := *readinessCache
		readinessCacheMutex.RUnlock()
		return &cached
	}
	readinessCacheMutex.RUnlock()

	status := &ReadinessStatus{
		Status:    StatusReady,
		Timestamp: utils.Now(),
		Services:  make(map[string]ServiceHealth),
	}

	redisHealth := checkRedis()
	status.Services["redis"] = redisHealth
	if redisHealth.Status != StatusHealthy {
		status.Status = StatusNotReady
	}

	readinessCacheMutex.Lock()
	readinessCache = status
	readinessCacheTime = time.Now()
	readinessCacheMutex.Unlock()

	return status
}

func checkRedis() ServiceHealth {
	start := time.Now()
	err := pingRedis()
	h := ServiceHealth{
		Status:       StatusHealthy,
		ResponseTime: time.Since(start).String(),
		LastCheck:    utils.Now(),
	}
	if err != nil {
		h.Status = StatusUnhealthy
		h.Error = err.Error()
	}
	return h
}

func checkAsynq() ServiceHealth {
	start := time.Now()
	h := ServiceHealth{Status: StatusHealthy, LastCheck: utils.Now()}

	switch {
	case !queueEnabled():
		h.Status = StatusDegraded
		h.Error = "Asynq client not initialized"
	case !workerRunning():
		h.Status = StatusDegraded
		h.Error = "Asynq worker not running"
	}
	h.ResponseTime = time.Since(start).String()
	return h
}

// ClearCache drops both cached results
func ClearCache() {
	healthCacheMutex.Lock()
	healthCache = nil
	healthCacheTime = time.Time{}
	healthCacheMutex.Unlock()

	readinessCacheMutex.Lock()
	readinessCache = nil
	readinessCacheTime = time.Time{}
	readinessCacheMutex.Unlock()
}
