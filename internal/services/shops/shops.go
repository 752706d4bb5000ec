package shops

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/benedict-erwin/shop-directory/internal/entities/owners"
	"github.com/benedict-erwin/shop-directory/internal/entities/shops"
	"github.com/benedict-erwin/shop-directory/internal/store"
	"github.com/benedict-erwin/shop-directory/pkg/logger"
	"github.com/benedict-erwin/shop-directory/pkg/utils"
)

// Service manages shop registration and lookup
type Service struct {
	store *store.Store
	now   func() time.Time
}

// NewService creates a shop service
func NewService(st *store.Store) *Service {
	return &Service{store: st, now: utils.Now}
}

// WithClock replaces the clock used for timestamps
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) stamp() string {
	return s.now().Format(utils.DateTimeLayout)
}

// Create registers a shop for ownerID and records it on the owner document
func (s *Service) Create(ctx context.Context, ownerID string, req *shops.RegisterRequest) (*shops.Shop, error) {
	log := logger.WithScope("shops.Create")

	shop := &shops.Shop{
		ShopUniqueID:   store.NewID(),
		StoreCategory:  req.StoreCategory,
		StoreTypes:     req.StoreTypes,
		Location:       req.Location,
		Contact:        req.Contact,
		FloorNumber:    req.FloorNumber,
		ShopImage:      req.ShopImage,
		StoreName:      req.StoreName,
		StoreNumber:    req.StoreNumber,
		Tags:           req.Tags,
		Website:        req.Website,
		Description:    req.Description,
		Owner:          ownerID,
		DealsUnderShop: []string{},
		ShopStatus:     shops.StatusActive,
		RegisteredOn:   s.stamp(),
	}
	if shop.Tags == nil {
		shop.Tags = []string{}
	}

	if err := s.store.Shops.Insert(ctx, shop.ShopUniqueID, shop, map[string]string{store.FieldOwner: ownerID}); err != nil {
		return nil, err
	}

	// Second write; the shop stays registered even if the owner record is gone
	_, err := s.store.Owners.Update(ctx, ownerID, func(o *owners.Owner) error {
		o.ShopsOwned = append(o.ShopsOwned, shop.ShopUniqueID)
		return nil
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		log.Warn().Str("owner", ownerID).Str("shop", shop.ShopUniqueID).Msg("Owner record not found, shops_owned not updated")
	case err != nil:
		return nil, err
	}

	log.Info().Str("owner", ownerID).Str("shop", shop.ShopUniqueID).Msg("Shop registered")
	return shop, nil
}

// Update applies a partial update to an active shop
func (s *Service) Update(ctx context.Context, id string, req *shops.UpdateRequest) (*shops.Shop, error) {
	return s.store.Shops.Update(ctx, id, func(shop *shops.Shop) error {
		if !shop.Active() {
			return store.ErrNotFound
		}
		req.Apply(shop)
		stamp := s.stamp()
		shop.LastUpdated = &stamp
		return nil
	})
}

// Get returns an active shop
func (s *Service) Get(ctx context.Context, id string) (*shops.Shop, error) {
	shop, err := s.store.Shops.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !shop.Active() {
		return nil, store.ErrNotFound
	}
	return shop, nil
}

// ListByOwner returns the active shops of ownerID in registration order
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]shops.Summary, error) {
	list, err := s.store.Shops.ByIndex(ctx, store.FieldOwner, ownerID)
	if err != nil {
		return nil, err
	}

	summaries := make([]shops.Summary, 0, len(list))
	for _, shop := range active(list) {
		summaries = append(summaries, shop.Summary())
	}
	return summaries, nil
}

// ListActive returns every active shop in registration order
func (s *Service) ListActive(ctx context.Context) ([]shops.Shop, error) {
	list, err := s.store.Shops.All(ctx)
	if err != nil {
		return nil, err
	}
	return active(list), nil
}

// Delete marks an active shop inactive. Unknown or already inactive shops
// report store.ErrNotFound.
func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.store.Shops.Update(ctx, id, func(shop *shops.Shop) error {
		if !shop.Active() {
			return store.ErrNotFound
		}
		shop.ShopStatus = shops.StatusInactive
		stamp := s.stamp()
		shop.LastUpdated = &stamp
		return nil
	})
	if err == nil {
		logger.WithScope("shops.Delete").Info().Str("shop", id).Msg("Shop deactivated")
	}
	return err
}

// active filters and orders shops by registration time
func active(list []shops.Shop) []shops.Shop {
	out := make([]shops.Shop, 0, len(list))
	for _, shop := range list {
		if shop.Active() {
			out = append(out, shop)
		}
	}
	SortByRegistration(out)
	return out
}

// SortByRegistration orders shops oldest first, id breaking ties
func SortByRegistration(list []shops.Shop) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].RegisteredOn != list[j].RegisteredOn {
			return list[i].RegisteredOn < list[j].RegisteredOn
		}
		return list[i].ShopUniqueID < list[j].ShopUniqueID
	})
}
