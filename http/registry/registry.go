package registry

import (
	"github.com/benedict-erwin/shop-directory/http/handler"
	"github.com/benedict-erwin/shop-directory/pkg/auth"
	"github.com/benedict-erwin/shop-directory/pkg/logger"
	"github.com/labstack/echo/v4"
)

// Deps is handed to every route setup
type Deps struct {
	Handler *handler.Handler
	Guard   *auth.Guard
}

type SetupFunc func(g *echo.Group, deps *Deps)

var (
	prefixes       []string
	prefixRegistry = make(map[string][]SetupFunc)
)

// Register a router setup function under a path prefix ("" mounts at the root)
func Register(prefix string, setup SetupFunc) {
	if _, ok := prefixRegistry[prefix]; !ok {
		prefixes = append(prefixes, prefix)
	}
	prefixRegistry[prefix] = append(prefixRegistry[prefix], setup)
}

// SetupAllRoutes installs the validator and JSON codec and applies all registered routes
func SetupAllRoutes(e *echo.Echo, deps *Deps) {
	setupValidator(e)
	e.JSONSerializer = StrictJSONSerializer{}

	log := logger.WithScope("SetupAllRoutes")

	if len(prefixRegistry) == 0 {
		log.Warn().Msg("No routes registered")
		return
	}
	for _, prefix := range prefixes {
		setups := prefixRegistry[prefix]
		log.Debug().Str("prefix", prefix).Int("routes", len(setups)).Msg("Setting up route group")
		g := e.Group(prefix)
		for _, setup := range setups {
			setup(g, deps)
		}
	}
}
