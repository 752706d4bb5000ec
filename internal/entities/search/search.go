package search

// Query holds the optional public search filters. Nil means "not given".
type Query struct {
	// shop filters
	StoreCategory *string
	City          *string
	State         *string
	Zipcode       *string
	Country       *string
	StoreType     *string
	StoreNumber   *int
	Tags          *string

	// deal filters
	DealName    *string
	Category    *string
	MinDiscount *float64
	MaxDiscount *float64

	SortByDiscount bool
	SortByDate     bool
}

// HasShopFilters reports whether any shop filter was given
func (q *Query) HasShopFilters() bool {
	return q.StoreCategory != nil || q.City != nil || q.State != nil || q.Zipcode != nil ||
		q.Country != nil || q.StoreType != nil || q.StoreNumber != nil || q.Tags != nil
}

// HasDealFilters reports whether any deal filter was given
func (q *Query) HasDealFilters() bool {
	return q.DealName != nil || q.Category != nil || q.MinDiscount != nil || q.MaxDiscount != nil
}
