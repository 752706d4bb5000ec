package route

import (
	"github.com/benedict-erwin/shop-directory/http/handler"
	"github.com/benedict-erwin/shop-directory/http/middleware"
	"github.com/benedict-erwin/shop-directory/http/registry"
	"github.com/labstack/echo/v4"
)

// init registers public browsing and health routes
func init() {
	registry.Register("", func(g *echo.Group, deps *registry.Deps) {
		h := deps.Handler

		g.GET("/get-top-deals", h.TopDeals)
		g.GET("/search-everything", h.Search)
		g.GET("/get-all-shops-details", h.AllShopsDetails)
		g.GET("/get-shop-details/:shop_id", h.ShopDetails)

		g.GET("/health/live", handler.HealthLive)   // Liveness probe
		g.GET("/health/ready", handler.HealthReady) // Readiness probe
		g.GET("/health", handler.HealthDetailed, middleware.RequireAdmin(deps.Guard))
	})
}
