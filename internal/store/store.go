package store

import (
	"github.com/benedict-erwin/shop-directory/internal/entities/deals"
	"github.com/benedict-erwin/shop-directory/internal/entities/devices"
	"github.com/benedict-erwin/shop-directory/internal/entities/owners"
	"github.com/benedict-erwin/shop-directory/internal/entities/shops"
	"github.com/benedict-erwin/shop-directory/internal/entities/users"
	"github.com/benedict-erwin/shop-directory/pkg/redis"
)

// Collection names
const (
	CollUsers    = "users"
	CollOwners   = "owners"
	CollShops    = "shops"
	CollDeals    = "deals"
	CollGateways = "gateways"
	CollBeacons  = "beacons"
)

// Index and unique field names
const (
	FieldEmail    = "email"
	FieldUsername = "username"
	FieldOwner    = "owner"
	FieldShop     = "shop"
	FieldGateway  = "gateway"
)

// Store groups the document collections of the directory
type Store struct {
	Users    *Collection[users.User]
	Owners   *Collection[owners.Owner]
	Shops    *Collection[shops.Shop]
	Deals    *Collection[deals.Deal]
	Gateways *Collection[devices.Gateway]
	Beacons  *Collection[devices.Beacon]

	client redis.Client
}

// New creates a store backed by client
func New(client redis.Client) *Store {
	return &Store{
		Users:    NewCollection[users.User](client, CollUsers),
		Owners:   NewCollection[owners.Owner](client, CollOwners),
		Shops:    NewCollection[shops.Shop](client, CollShops),
		Deals:    NewCollection[deals.Deal](client, CollDeals),
		Gateways: NewCollection[devices.Gateway](client, CollGateways),
		Beacons:  NewCollection[devices.Beacon](client, CollBeacons),
		client:   client,
	}
}

// Ping checks the backing connection
func (s *Store) Ping() error {
	return s.client.Health()
}
