package route

import (
	"github.com/benedict-erwin/shop-directory/http/middleware"
	"github.com/benedict-erwin/shop-directory/http/registry"
	"github.com/labstack/echo/v4"
)

// init registers gateway and beacon routes, admin policy only
func init() {
	registry.Register("", func(g *echo.Group, deps *registry.Deps) {
		h := deps.Handler
		adminOnly := middleware.RequireAdmin(deps.Guard)

		g.POST("/register-gateways/:shop_id", h.GatewayRegister, adminOnly)
		g.PUT("/update-gateways/:gateway_id", h.GatewayUpdate, adminOnly)
		g.GET("/all-gateways/:shop_id", h.GatewayList, adminOnly)
		g.GET("/gateways/:gateway_id", h.GatewayGet, adminOnly)

		g.POST("/add-beacons/:gateway_id", h.BeaconAdd, adminOnly)
		g.PUT("/update-beacons/:beacon_id", h.BeaconUpdate, adminOnly)
		g.GET("/all-beacons/:gateway_id", h.BeaconList, adminOnly)
		g.GET("/beacons/:beacon_id", h.BeaconGet, adminOnly)
	})
}
