package route

import (
	"github.com/benedict-erwin/shop-directory/http/middleware"
	"github.com/benedict-erwin/shop-directory/http/registry"
	"github.com/labstack/echo/v4"
)

// init registers user and admin account routes with the registry
func init() {
	registry.Register("", func(g *echo.Group, deps *registry.Deps) {
		h := deps.Handler

		// public
		g.POST("/user-registeration", h.UserRegister)
		g.POST("/user-login", h.UserLogin)
		g.POST("/admin-registeration", h.AdminRegister)
		g.POST("/admin-login", h.AdminLogin)

		// user policy
		g.PUT("/update-user", h.UserUpdate, middleware.RequireUser(deps.Guard))
	})
}
