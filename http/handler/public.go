package handler

import (
	"errors"
	"strconv"

	"github.com/benedict-erwin/shop-directory/internal/constants"
	"github.com/benedict-erwin/shop-directory/internal/entities/search"
	"github.com/benedict-erwin/shop-directory/internal/services/browse"
	"github.com/benedict-erwin/shop-directory/internal/store"
	"github.com/benedict-erwin/shop-directory/pkg/response"
	"github.com/labstack/echo/v4"
)

// TopDeals handles GET /get-top-deals
func (h *Handler) TopDeals(c echo.Context) error {
	byDate, err := browse.ParseBool(c.QueryParam("sort_by_date"))
	if err != nil {
		return response.ValidationFailed(c, []response.FieldError{
			{Field: "sort_by_date", Message: "value could not be parsed to a boolean"},
		})
	}

	list, err := h.Deals.Top(c.Request().Context(), byDate)
	if err != nil {
		return internalError(c, "TopDeals", err)
	}

	return response.Success(c, "Top 5 deals found", list)
}

// Search handles GET /search-everything
func (h *Handler) Search(c echo.Context) error {
	q, fieldErrs := parseSearchQuery(c)
	if len(fieldErrs) > 0 {
		return response.ValidationFailed(c, fieldErrs)
	}

	res, err := h.Browse.Search(c.Request().Context(), q)
	if err != nil {
		if errors.Is(err, browse.ErrNoResults) {
			return response.FailWithCodeAndMessage(c, constants.CodeResourceNotFound,
				"No shops and deals found", "No shops and deals found with the given search criteria")
		}
		return internalError(c, "Search", err)
	}

	return response.Success(c, "Shops and deals found", res.Payload())
}

// AllShopsDetails handles GET /get-all-shops-details
func (h *Handler) AllShopsDetails(c echo.Context) error {
	list, err := h.Shops.ListActive(c.Request().Context())
	if err != nil {
		return internalError(c, "AllShopsDetails", err)
	}

	return response.Success(c, "Shops found", list)
}

// ShopDetails handles GET /get-shop-details/:shop_id
func (h *Handler) ShopDetails(c echo.Context) error {
	shop, err := h.Shops.Get(c.Request().Context(), c.Param("shop_id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.FailWithCodeAndMessage(c, constants.CodeResourceNotFound,
				"Shop not found", "Shop not found, may be it's not active or doesn't exist")
		}
		return internalError(c, "ShopDetails", err)
	}

	return response.Success(c, "Shop found", shop)
}

// parseSearchQuery reads the search filters; absent parameters stay nil
func parseSearchQuery(c echo.Context) (*search.Query, []response.FieldError) {
	var (
		q    search.Query
		errs []response.FieldError
	)

	text := func(name string) *string {
		if v := c.QueryParam(name); v != "" {
			return &v
		}
		return nil
	}
	invalid := func(name, kind string) {
		errs = append(errs, response.FieldError{
			Field:   name,
			Message: "value is not a valid " + kind,
		})
	}

	q.StoreCategory = text("store_category")
	q.City = text("city")
	q.State = text("state")
	q.Zipcode = text("zipcode")
	q.Country = text("country")
	q.StoreType = text("store_type")
	q.Tags = text("tags")
	q.DealName = text("deal_name")
	q.Category = text("category")

	if v := c.QueryParam("store_number"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			invalid("store_number", "integer")
		} else {
			q.StoreNumber = &n
		}
	}
	for _, p := range []struct {
		name string
		dst  **float64
	}{
		{"min_discount", &q.MinDiscount},
		{"max_discount", &q.MaxDiscount},
	} {
		v := c.QueryParam(p.name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			invalid(p.name, "float")
			continue
		}
		*p.dst = &f
	}

	var err error
	if q.SortByDiscount, err = browse.ParseBool(c.QueryParam("sort_by_discount")); err != nil {
		invalid("sort_by_discount", "boolean")
	}
	if q.SortByDate, err = browse.ParseBool(c.QueryParam("sort_by_date")); err != nil {
		invalid("sort_by_date", "boolean")
	}

	return &q, errs
}
