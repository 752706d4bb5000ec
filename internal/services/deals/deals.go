package deals

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/benedict-erwin/shop-directory/internal/entities/deals"
	"github.com/benedict-erwin/shop-directory/internal/entities/shops"
	"github.com/benedict-erwin/shop-directory/internal/store"
	"github.com/benedict-erwin/shop-directory/pkg/logger"
	"github.com/benedict-erwin/shop-directory/pkg/utils"
)

// TopLimit is the number of deals returned by Top
const TopLimit = 5

var (
	ErrShopNotFound = errors.New("shop not found")
	ErrInvalidDates = errors.New("end_date must not be before start_date")
)

// Scheduler arranges for a deal to be expired at its end date
type Scheduler interface {
	ScheduleExpiry(ctx context.Context, deal *deals.Deal, at time.Time) error
}

// Service manages deals under shops
type Service struct {
	store     *store.Store
	scheduler Scheduler
	now       func() time.Time
}

// NewService creates a deal service. scheduler may be nil, in which case
// deals are only hidden by Get once their end date passes.
func NewService(st *store.Store, scheduler Scheduler) *Service {
	return &Service{store: st, scheduler: scheduler, now: utils.Now}
}

// WithClock replaces the clock used for timestamps and expiry
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) stamp() string {
	return s.now().Format(utils.DateTimeLayout)
}

func checkDates(start, end string) (time.Time, error) {
	startAt, err := utils.ParseStamp(start)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: start_date: %v", ErrInvalidDates, err)
	}
	endAt, err := utils.ParseStamp(end)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: end_date: %v", ErrInvalidDates, err)
	}
	if endAt.Before(startAt) {
		return time.Time{}, ErrInvalidDates
	}
	return endAt, nil
}

// Create adds a deal under an active shop and schedules its expiry
func (s *Service) Create(ctx context.Context, shopID string, req *deals.CreateRequest) (*deals.Deal, error) {
	log := logger.WithScope("deals.Create")

	endAt, err := checkDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	deal := &deals.Deal{
		DealUniqueID:    store.NewID(),
		DealName:        req.DealName,
		DealImage:       req.DealImage,
		DiscountPercent: req.DiscountPercent,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Categories:      req.Categories,
		IsActive:        true,
		ShopOwner:       shopID,
		RegisteredOn:    s.stamp(),
	}

	_, err = s.store.Shops.Update(ctx, shopID, func(shop *shops.Shop) error {
		if !shop.Active() {
			return ErrShopNotFound
		}
		shop.DealsUnderShop = append(shop.DealsUnderShop, deal.DealUniqueID)
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrShopNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.store.Deals.Insert(ctx, deal.DealUniqueID, deal, map[string]string{store.FieldShop: shopID}); err != nil {
		return nil, err
	}

	s.schedule(ctx, deal, endAt)
	log.Info().Str("shop", shopID).Str("deal", deal.DealUniqueID).Msg("Deal created")
	return deal, nil
}

func (s *Service) schedule(ctx context.Context, deal *deals.Deal, at time.Time) {
	if s.scheduler == nil {
		return
	}
	if err := s.scheduler.ScheduleExpiry(ctx, deal, at); err != nil {
		logger.WithScope("deals.schedule").Warn().
			Err(err).
			Str("deal", deal.DealUniqueID).
			Msg("Failed to schedule deal expiry")
	}
}

// Update applies a partial update to an active deal
func (s *Service) Update(ctx context.Context, id string, req *deals.UpdateRequest) (*deals.Deal, error) {
	var endAt time.Time
	deal, err := s.store.Deals.Update(ctx, id, func(d *deals.Deal) error {
		if !d.IsActive {
			return store.ErrNotFound
		}
		req.Apply(d)

		var err error
		if endAt, err = checkDates(d.StartDate, d.EndDate); err != nil {
			return err
		}
		stamp := s.stamp()
		d.LastUpdated = &stamp
		return nil
	})
	if err != nil {
		return nil, err
	}

	if req.EndDate != nil && deal.IsActive {
		s.schedule(ctx, deal, endAt)
	}
	return deal, nil
}

// ListByShop returns the active deals of a shop
func (s *Service) ListByShop(ctx context.Context, shopID string) ([]deals.Deal, error) {
	list, err := s.store.Deals.ByIndex(ctx, store.FieldShop, shopID)
	if err != nil {
		return nil, err
	}

	out := make([]deals.Deal, 0, len(list))
	for _, d := range list {
		if d.IsActive {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RegisteredOn != out[j].RegisteredOn {
			return out[i].RegisteredOn < out[j].RegisteredOn
		}
		return out[i].DealUniqueID < out[j].DealUniqueID
	})
	return out, nil
}

// Get returns a deal that is active and whose end date has not passed
func (s *Service) Get(ctx context.Context, id string) (*deals.Deal, error) {
	deal, err := s.store.Deals.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !deal.IsActive || s.ended(deal) {
		return nil, store.ErrNotFound
	}
	return deal, nil
}

func (s *Service) ended(d *deals.Deal) bool {
	endAt, err := utils.ParseStamp(d.EndDate)
	if err != nil {
		return true
	}
	return endAt.Before(s.now())
}

// Delete marks a deal inactive. Unknown or already inactive deals report store.ErrNotFound.
func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.store.Deals.Update(ctx, id, func(d *deals.Deal) error {
		if !d.IsActive {
			return store.ErrNotFound
		}
		d.IsActive = false
		stamp := s.stamp()
		d.LastUpdated = &stamp
		return nil
	})
	return err
}

// Expire deactivates the deal if it is still active and its end date has
// passed. It reports whether the deal was changed.
func (s *Service) Expire(ctx context.Context, id string) (bool, error) {
	errSkip := errors.New("skip")
	_, err := s.store.Deals.Update(ctx, id, func(d *deals.Deal) error {
		if !d.IsActive || !s.ended(d) {
			return errSkip
		}
		d.IsActive = false
		stamp := s.stamp()
		d.LastUpdated = &stamp
		return nil
	})
	switch {
	case errors.Is(err, errSkip), errors.Is(err, store.ErrNotFound):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

// Top returns up to TopLimit active deals, highest discount first, or
// soonest ending first when sortByDate is set
func (s *Service) Top(ctx context.Context, sortByDate bool) ([]deals.Deal, error) {
	list, err := s.store.Deals.All(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]deals.Deal, 0, len(list))
	for _, d := range list {
		if d.IsActive {
			out = append(out, d)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if sortByDate {
			if out[i].EndDate != out[j].EndDate {
				return out[i].EndDate < out[j].EndDate
			}
		} else if out[i].DiscountPercent != out[j].DiscountPercent {
			return out[i].DiscountPercent > out[j].DiscountPercent
		}
		return out[i].DealUniqueID < out[j].DealUniqueID
	})

	if len(out) > TopLimit {
		out = out[:TopLimit]
	}
	return out, nil
}
