package browse

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/benedict-erwin/shop-directory/internal/entities/deals"
	"github.com/benedict-erwin/shop-directory/internal/entities/search"
	"github.com/benedict-erwin/shop-directory/internal/entities/shops"
	shopService "github.com/benedict-erwin/shop-directory/internal/services/shops"
	"github.com/benedict-erwin/shop-directory/internal/store"
)

// ErrNoResults is returned when neither shops nor deals match
var ErrNoResults = errors.New("no shops and deals found")

// Result holds the matches of a search. Shops take precedence over deals.
type Result struct {
	Shops []shops.Shop
	Deals []deals.Deal
}

// Payload returns the matched shops, or the matched deals when no shop matched
func (r *Result) Payload() any {
	if len(r.Shops) > 0 {
		return r.Shops
	}
	return r.Deals
}

// Service answers the public search endpoint
type Service struct {
	store *store.Store
}

// NewService creates a search service
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// Search runs the shop filters and the deal filters independently.
// Text filters match case-insensitively on the whole value.
func (s *Service) Search(ctx context.Context, q *search.Query) (*Result, error) {
	res := &Result{}

	if q.HasShopFilters() {
		list, err := s.store.Shops.All(ctx)
		if err != nil {
			return nil, err
		}
		for _, shop := range list {
			if shop.Active() && matchShop(&shop, q) {
				res.Shops = append(res.Shops, shop)
			}
		}
		shopService.SortByRegistration(res.Shops)
	}

	if q.HasDealFilters() {
		list, err := s.store.Deals.All(ctx)
		if err != nil {
			return nil, err
		}
		for _, d := range list {
			if d.IsActive && matchDeal(&d, q) {
				res.Deals = append(res.Deals, d)
			}
		}
		sortDeals(res.Deals, q)
	}

	if len(res.Shops) == 0 && len(res.Deals) == 0 {
		return nil, ErrNoResults
	}
	return res, nil
}

func equalFold(filter *string, value string) bool {
	return filter == nil || strings.EqualFold(*filter, value)
}

func matchShop(shop *shops.Shop, q *search.Query) bool {
	if !equalFold(q.StoreCategory, shop.StoreCategory) ||
		!equalFold(q.City, shop.Location.City) ||
		!equalFold(q.State, shop.Location.State) ||
		!equalFold(q.Zipcode, shop.Location.Zipcode) ||
		!equalFold(q.Country, shop.Location.Country) ||
		!equalFold(q.StoreType, shop.StoreTypes) {
		return false
	}
	if q.StoreNumber != nil && *q.StoreNumber != shop.StoreNumber {
		return false
	}
	if q.Tags != nil {
		found := false
		for _, tag := range shop.Tags {
			if strings.EqualFold(tag, *q.Tags) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func matchDeal(d *deals.Deal, q *search.Query) bool {
	if !equalFold(q.DealName, d.DealName) || !equalFold(q.Category, d.Categories) {
		return false
	}
	discount := float64(d.DiscountPercent)
	if q.MinDiscount != nil && discount < *q.MinDiscount {
		return false
	}
	if q.MaxDiscount != nil && discount > *q.MaxDiscount {
		return false
	}
	return true
}

// sortDeals orders by end date (latest first) when asked, else by discount
// (highest first) when asked, else by id
func sortDeals(list []deals.Deal, q *search.Query) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		switch {
		case q.SortByDate && a.EndDate != b.EndDate:
			return a.EndDate > b.EndDate
		case q.SortByDiscount && a.DiscountPercent != b.DiscountPercent:
			return a.DiscountPercent > b.DiscountPercent
		}
		return a.DealUniqueID < b.DealUniqueID
	})
}

// ParseBool reads a query flag the way the public endpoints accept it
func ParseBool(raw string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	switch strings.ToLower(raw) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	return strconv.ParseBool(raw)
}
