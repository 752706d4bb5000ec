package route

import (
	"github.com/benedict-erwin/shop-directory/http/middleware"
	"github.com/benedict-erwin/shop-directory/http/registry"
	"github.com/labstack/echo/v4"
)

// init registers shop and deal management routes, admin policy only
func init() {
	registry.Register("", func(g *echo.Group, deps *registry.Deps) {
		h := deps.Handler
		adminOnly := middleware.RequireAdmin(deps.Guard)

		g.POST("/new-shop-registration", h.ShopRegister, adminOnly)
		g.PUT("/update-shop/:shop_id", h.ShopUpdate, adminOnly)
		g.GET("/get-all-shops", h.ShopListOwned, adminOnly)
		g.GET("/get-shop/:shop_id", h.ShopGet, adminOnly)
		g.DELETE("/delete-shop/:shop_id", h.ShopDelete, adminOnly)

		g.POST("/create-deal/:shop_id", h.DealCreate, adminOnly)
		g.PUT("/update-deal/:deal_id", h.DealUpdate, adminOnly)
		g.GET("/get-all-deals/:shop_id", h.DealList, adminOnly)
		g.GET("/get-deal/:deal_id", h.DealGet, adminOnly)
		g.DELETE("/delete-deal/:deal_id", h.DealDelete, adminOnly)
	})
}
