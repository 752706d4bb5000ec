package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/benedict-erwin/shop-directory/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryContext(rawQuery string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/search-everything?"+rawQuery, nil)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestParseSearchQuery(t *testing.T) {
	q, errs := parseSearchQuery(queryContext(
		"city=Pune&store_number=12&min_discount=10.5&max_discount=60&sort_by_date=yes&tags=shoes"))
	require.Empty(t, errs)

	require.NotNil(t, q.City)
	assert.Equal(t, "Pune", *q.City)
	require.NotNil(t, q.StoreNumber)
	assert.Equal(t, 12, *q.StoreNumber)
	require.NotNil(t, q.MinDiscount)
	assert.Equal(t, 10.5, *q.MinDiscount)
	require.NotNil(t, q.MaxDiscount)
	assert.Equal(t, 60.0, *q.MaxDiscount)
	assert.True(t, q.SortByDate)
	assert.False(t, q.SortByDiscount)
	assert.Nil(t, q.State)
	assert.True(t, q.HasShopFilters())
	assert.True(t, q.HasDealFilters())
}

func TestParseSearchQuery_Empty(t *testing.T) {
	q, errs := parseSearchQuery(queryContext(""))
	require.Empty(t, errs)
	assert.False(t, q.HasShopFilters())
	assert.False(t, q.HasDealFilters())
}

func TestParseSearchQuery_Invalid(t *testing.T) {
	_, errs := parseSearchQuery(queryContext("store_number=twelve&max_discount=high&min_discount=low&sort_by_discount=maybe"))
	assert.Equal(t, []response.FieldError{
		{Field: "store_number", Message: "value is not a valid integer"},
		{Field: "min_discount", Message: "value is not a valid float"},
		{Field: "max_discount", Message: "value is not a valid float"},
		{Field: "sort_by_discount", Message: "value is not a valid boolean"},
	}, errs)
}

func TestFieldPath(t *testing.T) {
	assert.Equal(t, "location.city", fieldPath("RegisterRequest.location.city"))
	assert.Equal(t, "username", fieldPath("RegisterRequest.username"))
	assert.Equal(t, "plain", fieldPath("plain"))
}
