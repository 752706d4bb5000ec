package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/benedict-erwin/shop-directory/http/handler"
	"github.com/benedict-erwin/shop-directory/http/registry"
	"github.com/benedict-erwin/shop-directory/internal/services/accounts"
	"github.com/benedict-erwin/shop-directory/internal/services/browse"
	dealService "github.com/benedict-erwin/shop-directory/internal/services/deals"
	deviceService "github.com/benedict-erwin/shop-directory/internal/services/devices"
	"github.com/benedict-erwin/shop-directory/internal/services/health"
	shopService "github.com/benedict-erwin/shop-directory/internal/services/shops"
	"github.com/benedict-erwin/shop-directory/internal/store"
	"github.com/benedict-erwin/shop-directory/pkg/auth"
	"github.com/benedict-erwin/shop-directory/pkg/redis"
	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status   bool            `json:"status"`
	Message  string          `json:"message"`
	Response json.RawMessage `json:"response"`
}

type testServer struct {
	t *testing.T
	e *echo.Echo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewFromUniversal(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), "isc:")
	redis.SetClient(client)
	health.ClearCache()
	t.Cleanup(func() {
		redis.SetClient(nil)
		health.ClearCache()
		_ = client.Close()
	})

	tokens, err := auth.NewTokenService("server-test-secret", time.Hour)
	require.NoError(t, err)

	st := store.New(client)
	h := handler.New(handler.Services{
		Accounts: accounts.NewService(st, tokens),
		Shops:    shopService.NewService(st),
		Deals:    dealService.NewService(st, nil),
		Devices:  deviceService.NewService(st),
		Browse:   browse.NewService(st),
	})

	return &testServer{t: t, e: New(&registry.Deps{Handler: h, Guard: auth.NewGuard(tokens)})}
}

func (s *testServer) do(method, path, body, token string) (int, envelope) {
	s.t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func (s *testServer) login(path, username, password string) string {
	s.t.Helper()
	code, env := s.do(http.MethodPost, path,
		fmt.Sprintf(`{"username":%q,"password":%q}`, username, password), "")
	require.Equal(s.t, http.StatusOK, code, string(env.Response))

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(env.Response, &out))
	require.NotEmpty(s.t, out.Token)
	return out.Token
}

func detail(t *testing.T, env envelope) string {
	t.Helper()
	var s string
	require.NoError(t, json.Unmarshal(env.Response, &s))
	return s
}

const userBody = `{
	"username": "shopper",
	"first_name": "Sam",
	"last_name": "Lee",
	"email": "sam@example.com",
	"password": "secret-pass"
}`

const adminBody = `{
	"email": "owner@example.com",
	"username": "owner",
	"password": "owner-pass",
	"first_name": "Olga",
	"last_name": "Ng",
	"gender": "F",
	"phone_number": "555-0100",
	"address": {"street": "1 Main", "city": "Pune", "state": "MH", "zip_code": "411001", "country": "IN"}
}`

const shopBody = `{
	"store_category": "Fashion",
	"store_types": "Retail",
	"location": {"city": "Pune", "state": "MH", "country": "IN", "zipcode": "411001",
		"coordinates": {"lat": 18.5, "long": 73.8}},
	"contact": "555-0101",
	"floor_number": 2,
	"shop_image": "shop.png",
	"store_name": "Acme Shoes",
	"store_number": 12,
	"tags": ["Shoes", "bags"],
	"website": "https://acme.example.com",
	"description": "Shoes and bags"
}`

func TestUserAccountFlow(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodPost, "/user-registeration", userBody, "")
	require.Equal(t, http.StatusOK, code)
	assert.True(t, env.Status)
	assert.Equal(t, "User registered successfully", env.Message)

	code, env = s.do(http.MethodPost, "/user-registeration", userBody, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.Status)
	assert.Equal(t, "User with this username/email already exists", env.Message)

	code, env = s.do(http.MethodPost, "/user-login", `{"password":"secret-pass"}`, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "email or username is required to login", env.Message)

	code, _ = s.do(http.MethodPost, "/user-login", `{"username":"shopper","password":"wrong-pass"}`, "")
	assert.Equal(t, http.StatusUnauthorized, code)

	token := s.login("/user-login", "shopper", "secret-pass")

	code, env = s.do(http.MethodPut, "/update-user", `{"first_name":"Samuel"}`, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Could not validate credentials", detail(t, env))

	code, env = s.do(http.MethodPut, "/update-user", `{}`, token)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Users details not updated", env.Message)

	code, env = s.do(http.MethodPut, "/update-user", `{"first_name":"Samuel"}`, token)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "User details updated successfully", env.Message)
}

func TestRequestBodyChecks(t *testing.T) {
	s := newTestServer(t)

	t.Run("unknown field", func(t *testing.T) {
		body := strings.Replace(userBody, `"username"`, `"nickname": "x", "username"`, 1)
		code, env := s.do(http.MethodPost, "/user-registeration", body, "")
		assert.Equal(t, http.StatusUnprocessableEntity, code)
		assert.Contains(t, string(env.Response), `"field":"nickname"`)
		assert.Contains(t, string(env.Response), "extra fields not permitted")
	})

	t.Run("malformed json", func(t *testing.T) {
		code, env := s.do(http.MethodPost, "/user-registeration", `{"username":`, "")
		assert.Equal(t, http.StatusBadRequest, code)
		assert.False(t, env.Status)
	})

	t.Run("validation", func(t *testing.T) {
		body := strings.Replace(userBody, `"shopper"`, `"ab"`, 1)
		code, env := s.do(http.MethodPost, "/user-registeration", body, "")
		assert.Equal(t, http.StatusUnprocessableEntity, code)
		assert.Contains(t, string(env.Response), `"field":"username"`)
	})
}

func TestAccessPolicy(t *testing.T) {
	s := newTestServer(t)

	code, _ := s.do(http.MethodPost, "/user-registeration", userBody, "")
	require.Equal(t, http.StatusOK, code)
	userToken := s.login("/user-login", "shopper", "secret-pass")

	code, env := s.do(http.MethodGet, "/get-all-shops", "", userToken)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "You are not authorized to perform this action", detail(t, env))

	code, _ = s.do(http.MethodGet, "/get-all-shops", "", "not.a.token")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(http.MethodGet, "/get-all-shops", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestShopAndDealFlow(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodPost, "/admin-registeration", adminBody, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Admin registered successfully", env.Message)

	code, env = s.do(http.MethodPost, "/admin-registeration", adminBody, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Admin with this username already exists", env.Message)

	token := s.login("/admin-login", "owner", "owner-pass")

	code, _ = s.do(http.MethodGet, "/get-all-shops", "", token)
	assert.Equal(t, http.StatusNotFound, code)

	code, env = s.do(http.MethodPost, "/new-shop-registration", shopBody, token)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "New shop added", detail(t, env))

	code, env = s.do(http.MethodGet, "/get-all-shops", "", token)
	require.Equal(t, http.StatusOK, code)
	var shopList []struct {
		ShopUniqueID string `json:"shop_unique_id"`
		StoreName    string `json:"store_name"`
	}
	require.NoError(t, json.Unmarshal(env.Response, &shopList))
	require.Len(t, shopList, 1)
	shopID := shopList[0].ShopUniqueID

	code, _ = s.do(http.MethodPut, "/update-shop/"+shopID, `{"store_name":"Acme Footwear"}`, token)
	assert.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodGet, "/get-shop-details/"+shopID, "", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Response), "Acme Footwear")

	// deals
	code, _ = s.do(http.MethodPost, "/create-deal/missing", `{
		"deal_name": "x", "discount_percent": 10, "categories": "Shoes",
		"start_date": "2024-03-01 00:00:00", "end_date": "2099-03-10 00:00:00"}`, token)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(http.MethodPost, "/create-deal/"+shopID, `{
		"deal_name": "Backwards", "discount_percent": 10, "categories": "Shoes",
		"start_date": "2099-03-10 00:00:00", "end_date": "2024-03-01 00:00:00"}`, token)
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code, _ = s.do(http.MethodPost, "/create-deal/"+shopID, `{
		"deal_name": "Spring Sale", "discount_percent": 30, "categories": "Shoes",
		"start_date": "2024-03-01 00:00:00", "end_date": "2099-03-10 00:00:00"}`, token)
	require.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodGet, "/get-all-deals/"+shopID, "", token)
	require.Equal(t, http.StatusOK, code)
	var dealList []struct {
		DealUniqueID string `json:"deal_unique_id"`
		ShopOwner    string `json:"shop_owner"`
	}
	require.NoError(t, json.Unmarshal(env.Response, &dealList))
	require.Len(t, dealList, 1)
	dealID := dealList[0].DealUniqueID
	assert.Equal(t, shopID, dealList[0].ShopOwner)

	code, env = s.do(http.MethodGet, "/get-deal/"+dealID, "", token)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Deal found", env.Message)

	code, env = s.do(http.MethodGet, "/get-top-deals", "", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Top 5 deals found", env.Message)
	assert.Contains(t, string(env.Response), dealID)

	// search
	code, env = s.do(http.MethodGet, "/search-everything?city=pune", "", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Response), shopID)

	code, env = s.do(http.MethodGet, "/search-everything?category=shoes&min_discount=20", "", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Response), dealID)

	code, env = s.do(http.MethodGet, "/search-everything?city=Mumbai", "", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "No shops and deals found", env.Message)

	code, _ = s.do(http.MethodGet, "/search-everything?min_discount=lots", "", "")
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	// soft deletes
	code, _ = s.do(http.MethodDelete, "/delete-deal/"+dealID, "", token)
	assert.Equal(t, http.StatusOK, code)
	code, env = s.do(http.MethodGet, "/get-deal/"+dealID, "", token)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "No Deals found", env.Message)

	code, _ = s.do(http.MethodDelete, "/delete-shop/"+shopID, "", token)
	assert.Equal(t, http.StatusOK, code)
	code, _ = s.do(http.MethodDelete, "/delete-shop/"+shopID, "", token)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = s.do(http.MethodGet, "/get-shop-details/"+shopID, "", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestGatewayAndBeaconFlow(t *testing.T) {
	s := newTestServer(t)

	code, _ := s.do(http.MethodPost, "/admin-registeration", adminBody, "")
	require.Equal(t, http.StatusOK, code)
	token := s.login("/admin-login", "owner", "owner-pass")

	code, _ = s.do(http.MethodPost, "/new-shop-registration", shopBody, token)
	require.Equal(t, http.StatusOK, code)
	_, env := s.do(http.MethodGet, "/get-all-shops", "", token)
	var shopList []struct {
		ShopUniqueID string `json:"shop_unique_id"`
	}
	require.NoError(t, json.Unmarshal(env.Response, &shopList))
	shopID := shopList[0].ShopUniqueID

	gateway := `{
		"longitude": 73.8, "latitude": 18.5, "altitude": "560m",
		"gw_name": "Front door", "gw_ip_address": "10.0.0.5", "gw_model": "GW-1",
		"gw_firmware": "1.0.2", "gw_serial": "SN-1", "gw_location": "entrance",
		"vendor_code": "V1"}`

	code, _ = s.do(http.MethodPost, "/register-gateways/missing", gateway, token)
	assert.Equal(t, http.StatusNotFound, code)

	code, env = s.do(http.MethodPost, "/register-gateways/"+shopID, gateway, token)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Gateway created successfully", env.Message)

	code, env = s.do(http.MethodGet, "/all-gateways/"+shopID, "", token)
	require.Equal(t, http.StatusOK, code)
	var gwList []struct {
		GatewayID string `json:"gateway_id"`
	}
	require.NoError(t, json.Unmarshal(env.Response, &gwList))
	require.Len(t, gwList, 1)
	gwID := gwList[0].GatewayID

	code, _ = s.do(http.MethodPut, "/update-gateways/"+gwID, `{"gw_ip_address":"not-an-ip"}`, token)
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code, _ = s.do(http.MethodPut, "/update-gateways/"+gwID, `{"gw_firmware":"1.1.0"}`, token)
	assert.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodGet, "/gateways/"+gwID, "", token)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Response), "1.1.0")

	code, _ = s.do(http.MethodGet, "/all-beacons/"+gwID, "", token)
	assert.Equal(t, http.StatusNotFound, code)

	beacon := `{"mac_id": "AA:BB:CC:DD:EE:FF", "device_id": "tag-1", "battery": 90, "status": "ok"}`
	code, env = s.do(http.MethodPost, "/add-beacons/missing", beacon, token)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Gateway not found, please provide correct details", env.Message)

	code, _ = s.do(http.MethodPost, "/add-beacons/"+gwID, beacon, token)
	require.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodGet, "/all-beacons/"+gwID, "", token)
	require.Equal(t, http.StatusOK, code)
	var beaconList []struct {
		BeaconID string `json:"beacon_id"`
	}
	require.NoError(t, json.Unmarshal(env.Response, &beaconList))
	require.Len(t, beaconList, 1)

	code, _ = s.do(http.MethodPut, "/update-beacons/"+beaconList[0].BeaconID, `{"battery":40}`, token)
	assert.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodGet, "/beacons/"+beaconList[0].BeaconID, "", token)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Response), `"battery":40`)

	code, _ = s.do(http.MethodGet, "/beacons/missing", "", token)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestHealthAndUnknownRoutes(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/health/live", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Status)

	code, env = s.do(http.MethodGet, "/health/ready", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Response), `"status":"ready"`)

	code, env = s.do(http.MethodGet, "/no-such-route", "", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Status)
}

func TestUnmatchedRequestsBypassGuard(t *testing.T) {
	s := newTestServer(t)

	code, _ := s.do(http.MethodGet, "/get-all-shops/extra/segments", "", "")
	assert.Equal(t, http.StatusNotFound, code)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/user-login"},
		{http.MethodPost, "/get-all-shops"},
		{http.MethodDelete, "/update-user"},
		{http.MethodPatch, "/beacons/b1"},
	} {
		code, env := s.do(tc.method, tc.path, "", "")
		assert.Equal(t, http.StatusMethodNotAllowed, code, "%s %s", tc.method, tc.path)
		assert.False(t, env.Status)
	}

	// matched admin routes still require a token
	code, _ = s.do(http.MethodGet, "/get-all-shops", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)
}
