package jobs

import (
	"fmt"

	"github.com/benedict-erwin/shop-directory/internal/constants"
	"github.com/benedict-erwin/shop-directory/internal/entities/deals"
	dealJobs "github.com/benedict-erwin/shop-directory/internal/jobs/deals"
	"github.com/hibiken/asynq"
)

// JobRegistration holds job metadata for registration and worker generation
type JobRegistration struct {
	TaskType string        `json:"task_type"`
	Handler  asynq.Handler `json:"-"` // Not serialized
	Queue    string        `json:"queue"`
}

// Deps are the services the job handlers act on
type Deps struct {
	Deals dealJobs.Expirer
}

// RegisterHandlers registers all job handlers with the asynq server mux and returns job metadata
func RegisterHandlers(mux *asynq.ServeMux, deps Deps) ([]JobRegistration, error) {
	jobs := []JobRegistration{
		// Critical
		{
			TaskType: deals.TypeDealExpire,
			Handler:  dealJobs.NewExpireHandler(deps.Deals),
			Queue:    constants.QueueCritical,
		},
	}

	for _, job := range jobs {
		if !constants.IsValidQueue(job.Queue) {
			return nil, fmt.Errorf("invalid queue '%s' for job '%s'. Valid queues: %v",
				job.Queue, job.TaskType, constants.GetAllQueues())
		}
	}

	if mux != nil {
		for _, job := range jobs {
			mux.Handle(job.TaskType, job.Handler)
		}
	}

	return jobs, nil
}

// GetRegisteredJobs returns job metadata without registering handlers
func GetRegisteredJobs() ([]JobRegistration, error) {
	return RegisterHandlers(nil, Deps{})
}
