package asynq

import (
	"context"
	"fmt"
	"time"

	"github.com/benedict-erwin/shop-directory/internal/constants"
	"github.com/benedict-erwin/shop-directory/internal/entities/deals"
)

// DealScheduler enqueues deal:expire tasks for the deal service
type DealScheduler struct {
	dispatch func(*Payload) error
}

// NewDealScheduler returns a scheduler backed by DispatchJob
func NewDealScheduler() *DealScheduler {
	return &DealScheduler{dispatch: DispatchJob}
}

// ScheduleExpiry enqueues a deal:expire task to run at at. The task id
// includes the end date, so rescheduling to a new date adds a new task and
// re-sending the same date is ignored.
func (s *DealScheduler) ScheduleExpiry(ctx context.Context, deal *deals.Deal, at time.Time) error {
	return s.dispatch(&Payload{
		TaskId:   fmt.Sprintf("%s:%s:%d", deals.TypeDealExpire, deal.DealUniqueID, at.Unix()),
		TaskType: deals.TypeDealExpire,
		Data: deals.ExpirePayload{
			DealID:    deal.DealUniqueID,
			EndDate:   deal.EndDate,
			RequestID: constants.RequestIDFromContext(ctx),
			QueuedAt:  time.Now(),
		},
		ProcessAt: at,
	})
}
