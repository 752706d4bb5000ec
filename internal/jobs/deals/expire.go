package deals

import (
	"context"
	"fmt"

	"github.com/benedict-erwin/shop-directory/internal/entities/deals"
	"github.com/benedict-erwin/shop-directory/pkg/logger"
	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
)

// Expirer deactivates a deal once its end date has passed
type Expirer interface {
	Expire(ctx context.Context, id string) (bool, error)
}

// ExpireHandler processes deal:expire tasks
type ExpireHandler struct {
	deals Expirer
}

// NewExpireHandler creates the deal:expire task handler
func NewExpireHandler(e Expirer) *ExpireHandler {
	return &ExpireHandler{deals: e}
}

// ProcessTask implements asynq.Handler
func (h *ExpireHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload deals.ExpirePayload
	log := logger.WithScope(deals.TypeDealExpire)
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal deal expire payload")
		// retrying cannot fix a bad payload
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	changed, err := h.deals.Expire(ctx, payload.DealID)
	if err != nil {
		log.Error().
			Err(err).
			Str("deal", payload.DealID).
			Str("request_id", payload.RequestID).
			Msg("Failed to expire deal")
		return err
	}

	log.Info().
		Str("deal", payload.DealID).
		Str("end_date", payload.EndDate).
		Str("request_id", payload.RequestID).
		Bool("deactivated", changed).
		Msg("Deal expiry processed")
	return nil
}
