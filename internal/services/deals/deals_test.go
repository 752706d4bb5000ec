package deals

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/benedict-erwin/shop-directory/internal/entities/deals"
	"github.com/benedict-erwin/shop-directory/internal/entities/shops"
	"github.com/benedict-erwin/shop-directory/internal/store"
	"github.com/benedict-erwin/shop-directory/pkg/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scheduled struct {
	dealID string
	at     time.Time
}

type fakeScheduler struct {
	mu    sync.Mutex
	calls []scheduled
	err   error
}

func (f *fakeScheduler) ScheduleExpiry(_ context.Context, d *deals.Deal, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, scheduled{dealID: d.DealUniqueID, at: at})
	return f.err
}

type testEnv struct {
	svc   *Service
	store *store.Store
	sched *fakeScheduler
	now   time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewFromUniversal(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), "isc:")
	t.Cleanup(func() { _ = client.Close() })

	env := &testEnv{
		store: store.New(client),
		sched: &fakeScheduler{},
		now:   time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	env.svc = NewService(env.store, env.sched).WithClock(func() time.Time { return env.now })
	return env
}

func (e *testEnv) addShop(t *testing.T, id, status string) {
	t.Helper()
	shop := &shops.Shop{ShopUniqueID: id, ShopStatus: status, DealsUnderShop: []string{}}
	require.NoError(t, e.store.Shops.Insert(context.Background(), id, shop, nil))
}

func dealRequest(name string, discount int, end string) *deals.CreateRequest {
	return &deals.CreateRequest{
		DealName:        name,
		DiscountPercent: discount,
		StartDate:       "2024-03-01 00:00:00",
		EndDate:         end,
		Categories:      "Shoes",
	}
}

func TestCreate(t *testing.T) {
	env := newTestEnv(t)
	env.addShop(t, "s1", shops.StatusActive)
	ctx := context.Background()

	deal, err := env.svc.Create(ctx, "s1", dealRequest("Spring", 20, "2024-03-10 18:00:00"))
	require.NoError(t, err)
	assert.True(t, deal.IsActive)
	assert.Equal(t, "s1", deal.ShopOwner)

	shop, err := env.store.Shops.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{deal.DealUniqueID}, shop.DealsUnderShop)

	require.Len(t, env.sched.calls, 1)
	assert.Equal(t, deal.DealUniqueID, env.sched.calls[0].dealID)
	assert.Equal(t, time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC), env.sched.calls[0].at.UTC())
}

func TestCreate_Failures(t *testing.T) {
	env := newTestEnv(t)
	env.addShop(t, "gone", shops.StatusInactive)
	ctx := context.Background()

	_, err := env.svc.Create(ctx, "missing", dealRequest("X", 5, "2024-03-10 18:00:00"))
	assert.ErrorIs(t, err, ErrShopNotFound)

	_, err = env.svc.Create(ctx, "gone", dealRequest("X", 5, "2024-03-10 18:00:00"))
	assert.ErrorIs(t, err, ErrShopNotFound)

	env.addShop(t, "s1", shops.StatusActive)
	_, err = env.svc.Create(ctx, "s1", dealRequest("X", 5, "2024-02-01 00:00:00"))
	assert.ErrorIs(t, err, ErrInvalidDates)

	_, err = env.svc.Create(ctx, "s1", dealRequest("X", 5, "tomorrow"))
	assert.ErrorIs(t, err, ErrInvalidDates)

	assert.Empty(t, env.sched.calls)
}

func TestCreate_SchedulerFailureIsNotFatal(t *testing.T) {
	env := newTestEnv(t)
	env.addShop(t, "s1", shops.StatusActive)
	env.sched.err = errors.New("queue down")

	_, err := env.svc.Create(context.Background(), "s1", dealRequest("X", 5, "2024-03-10 18:00:00"))
	assert.NoError(t, err)
}

func TestGet_HidesEndedAndInactive(t *testing.T) {
	env := newTestEnv(t)
	env.addShop(t, "s1", shops.StatusActive)
	ctx := context.Background()

	deal, err := env.svc.Create(ctx, "s1", dealRequest("X", 5, "2024-03-01 12:00:00"))
	require.NoError(t, err)

	_, err = env.svc.Get(ctx, deal.DealUniqueID)
	require.NoError(t, err)

	env.now = time.Date(2024, 3, 1, 12, 0, 1, 0, time.UTC)
	_, err = env.svc.Get(ctx, deal.DealUniqueID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	env.now = time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC)
	require.NoError(t, env.svc.Delete(ctx, deal.DealUniqueID))
	_, err = env.svc.Get(ctx, deal.DealUniqueID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, env.svc.Delete(ctx, deal.DealUniqueID), store.ErrNotFound)
	assert.ErrorIs(t, env.svc.Delete(ctx, "missing"), store.ErrNotFound)
}

func TestUpdate(t *testing.T) {
	env := newTestEnv(t)
	env.addShop(t, "s1", shops.StatusActive)
	ctx := context.Background()

	deal, err := env.svc.Create(ctx, "s1", dealRequest("X", 5, "2024-03-10 18:00:00"))
	require.NoError(t, err)

	discount := 40
	updated, err := env.svc.Update(ctx, deal.DealUniqueID, &deals.UpdateRequest{DiscountPercent: &discount})
	require.NoError(t, err)
	assert.Equal(t, 40, updated.DiscountPercent)
	assert.Len(t, env.sched.calls, 1, "no reschedule without end_date change")

	end := "2024-03-20 18:00:00"
	_, err = env.svc.Update(ctx, deal.DealUniqueID, &deals.UpdateRequest{EndDate: &end})
	require.NoError(t, err)
	assert.Len(t, env.sched.calls, 2)

	bad := "2024-01-01 00:00:00"
	_, err = env.svc.Update(ctx, deal.DealUniqueID, &deals.UpdateRequest{EndDate: &bad})
	assert.ErrorIs(t, err, ErrInvalidDates)

	require.NoError(t, env.svc.Delete(ctx, deal.DealUniqueID))
	_, err = env.svc.Update(ctx, deal.DealUniqueID, &deals.UpdateRequest{DiscountPercent: &discount})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListByShop(t *testing.T) {
	env := newTestEnv(t)
	env.addShop(t, "s1", shops.StatusActive)
	ctx := context.Background()

	a, err := env.svc.Create(ctx, "s1", dealRequest("A", 5, "2024-03-10 18:00:00"))
	require.NoError(t, err)
	_, err = env.svc.Create(ctx, "s1", dealRequest("B", 5, "2024-03-10 18:00:00"))
	require.NoError(t, err)
	require.NoError(t, env.svc.Delete(ctx, a.DealUniqueID))

	list, err := env.svc.ListByShop(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "B", list[0].DealName)

	list, err = env.svc.ListByShop(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestExpire(t *testing.T) {
	env := newTestEnv(t)
	env.addShop(t, "s1", shops.StatusActive)
	ctx := context.Background()

	deal, err := env.svc.Create(ctx, "s1", dealRequest("X", 5, "2024-03-01 12:00:00"))
	require.NoError(t, err)

	changed, err := env.svc.Expire(ctx, deal.DealUniqueID)
	require.NoError(t, err)
	assert.False(t, changed, "end date not reached")

	env.now = time.Date(2024, 3, 1, 12, 0, 1, 0, time.UTC)
	changed, err = env.svc.Expire(ctx, deal.DealUniqueID)
	require.NoError(t, err)
	assert.True(t, changed)

	stored, err := env.store.Deals.Get(ctx, deal.DealUniqueID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	changed, err = env.svc.Expire(ctx, deal.DealUniqueID)
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = env.svc.Expire(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestTop(t *testing.T) {
	env := newTestEnv(t)
	env.addShop(t, "s1", shops.StatusActive)
	ctx := context.Background()

	ends := []string{
		"2024-03-09 00:00:00", "2024-03-03 00:00:00", "2024-03-07 00:00:00",
		"2024-03-05 00:00:00", "2024-03-04 00:00:00", "2024-03-08 00:00:00",
	}
	var ids []string
	for i, end := range ends {
		d, err := env.svc.Create(ctx, "s1", dealRequest("D", (i+1)*10, end))
		require.NoError(t, err)
		ids = append(ids, d.DealUniqueID)
	}
	require.NoError(t, env.svc.Delete(ctx, ids[5])) // 60%

	top, err := env.svc.Top(ctx, false)
	require.NoError(t, err)
	require.Len(t, top, TopLimit)
	assert.Equal(t, 50, top[0].DiscountPercent)
	assert.Equal(t, 10, top[4].DiscountPercent)

	byDate, err := env.svc.Top(ctx, true)
	require.NoError(t, err)
	require.Len(t, byDate, TopLimit)
	assert.Equal(t, "2024-03-03 00:00:00", byDate[0].EndDate)
	assert.Equal(t, "2024-03-09 00:00:00", byDate[4].EndDate)
}
