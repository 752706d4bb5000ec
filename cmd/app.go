package cmd

import (
	"github.com/benedict-erwin/shop-directory/config"
	"github.com/benedict-erwin/shop-directory/http/handler"
	"github.com/benedict-erwin/shop-directory/http/registry"
	"github.com/benedict-erwin/shop-directory/internal/services/accounts"
	"github.com/benedict-erwin/shop-directory/internal/services/browse"
	dealService "github.com/benedict-erwin/shop-directory/internal/services/deals"
	deviceService "github.com/benedict-erwin/shop-directory/internal/services/devices"
	shopService "github.com/benedict-erwin/shop-directory/internal/services/shops"
	"github.com/benedict-erwin/shop-directory/internal/store"
	asynqPkg "github.com/benedict-erwin/shop-directory/pkg/asynq"
	"github.com/benedict-erwin/shop-directory/pkg/auth"
	"github.com/benedict-erwin/shop-directory/pkg/redis"
)

// newTokenService builds the token service from the auth config
func newTokenService() (*auth.TokenService, error) {
	cfg := config.Get()
	ttl, err := cfg.TokenTTL()
	if err != nil {
		return nil, err
	}
	return auth.NewTokenService(cfg.Auth.Secret, ttl)
}

// newServices wires the domain services on top of the shared Redis client
func newServices() (handler.Services, *auth.TokenService, error) {
	tokens, err := newTokenService()
	if err != nil {
		return handler.Services{}, nil, err
	}

	st := store.New(redis.GetClient())

	// Expiry scheduling is skipped when the queue is off
	var scheduler dealService.Scheduler
	if config.Get().Asynq.Enabled && asynqPkg.GetClient() != nil {
		scheduler = asynqPkg.NewDealScheduler()
	}

	return handler.Services{
		Accounts: accounts.NewService(st, tokens),
		Shops:    shopService.NewService(st),
		Deals:    dealService.NewService(st, scheduler),
		Devices:  deviceService.NewService(st),
		Browse:   browse.NewService(st),
	}, tokens, nil
}

// newRouteDeps builds everything the HTTP routes need
func newRouteDeps() (*registry.Deps, error) {
	services, tokens, err := newServices()
	if err != nil {
		return nil, err
	}
	return &registry.Deps{
		Handler: handler.New(services),
		Guard:   auth.NewGuard(tokens),
	}, nil
}
