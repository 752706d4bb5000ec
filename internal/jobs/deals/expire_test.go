package deals

import (
	"context"
	"errors"
	"testing"

	"github.com/benedict-erwin/shop-directory/internal/entities/deals"
	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExpirer struct {
	ids     []string
	changed bool
	err     error
}

func (f *fakeExpirer) Expire(_ context.Context, id string) (bool, error) {
	f.ids = append(f.ids, id)
	return f.changed, f.err
}

func task(t *testing.T, p deals.ExpirePayload) *asynq.Task {
	t.Helper()
	data, err := json.Marshal(p)
	require.NoError(t, err)
	return asynq.NewTask(deals.TypeDealExpire, data)
}

func TestExpireHandler(t *testing.T) {
	fake := &fakeExpirer{changed: true}
	h := NewExpireHandler(fake)

	err := h.ProcessTask(context.Background(), task(t, deals.ExpirePayload{DealID: "d1", EndDate: "2024-03-10 18:00:00"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"d1"}, fake.ids)
}

func TestExpireHandler_ServiceErrorRetries(t *testing.T) {
	boom := errors.New("redis down")
	h := NewExpireHandler(&fakeExpirer{err: boom})

	err := h.ProcessTask(context.Background(), task(t, deals.ExpirePayload{DealID: "d1"}))
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestExpireHandler_BadPayloadSkipsRetry(t *testing.T) {
	fake := &fakeExpirer{}
	h := NewExpireHandler(fake)

	err := h.ProcessTask(context.Background(), asynq.NewTask(deals.TypeDealExpire, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, fake.ids)
}
