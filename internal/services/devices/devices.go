package devices

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/benedict-erwin/shop-directory/internal/entities/devices"
	"github.com/benedict-erwin/shop-directory/internal/store"
	"github.com/benedict-erwin/shop-directory/pkg/logger"
	"github.com/benedict-erwin/shop-directory/pkg/utils"
)

var (
	ErrShopNotFound    = errors.New("shop not found")
	ErrGatewayNotFound = errors.New("gateway not found")
)

// Service manages in-store gateways and the beacons behind them
type Service struct {
	store *store.Store
	now   func() time.Time
}

// NewService creates a device service
func NewService(st *store.Store) *Service {
	return &Service{store: st, now: utils.Now}
}

// WithClock replaces the clock used for timestamps
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) stamp() string {
	return s.now().Format(utils.DateTimeLayout)
}

// RegisterGateway attaches a gateway to an existing shop
func (s *Service) RegisterGateway(ctx context.Context, shopID string, req *devices.GatewayRequest) (*devices.Gateway, error) {
	if _, err := s.store.Shops.Get(ctx, shopID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}

	gw := &devices.Gateway{
		GatewayID:    store.NewID(),
		Longitude:    req.Longitude,
		Latitude:     req.Latitude,
		Altitude:     req.Altitude,
		GwName:       req.GwName,
		GwIPAddress:  req.GwIPAddress,
		GwModel:      req.GwModel,
		GwFirmware:   req.GwFirmware,
		GwSerial:     req.GwSerial,
		GwLocation:   req.GwLocation,
		VendorCode:   req.VendorCode,
		ShopOwnerID:  shopID,
		RegisteredOn: s.stamp(),
	}
	if err := s.store.Gateways.Insert(ctx, gw.GatewayID, gw, map[string]string{store.FieldShop: shopID}); err != nil {
		return nil, err
	}

	logger.WithScope("devices.RegisterGateway").Info().
		Str("shop", shopID).
		Str("gateway", gw.GatewayID).
		Msg("Gateway registered")
	return gw, nil
}

// UpdateGateway applies a partial update to a gateway
func (s *Service) UpdateGateway(ctx context.Context, id string, req *devices.GatewayUpdate) (*devices.Gateway, error) {
	return s.store.Gateways.Update(ctx, id, func(gw *devices.Gateway) error {
		req.Apply(gw)
		stamp := s.stamp()
		gw.LastUpdated = &stamp
		return nil
	})
}

// GetGateway returns a gateway by id
func (s *Service) GetGateway(ctx context.Context, id string) (*devices.Gateway, error) {
	return s.store.Gateways.Get(ctx, id)
}

// ListGateways returns the gateways of a shop
func (s *Service) ListGateways(ctx context.Context, shopID string) ([]devices.Gateway, error) {
	list, err := s.store.Gateways.ByIndex(ctx, store.FieldShop, shopID)
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].RegisteredOn != list[j].RegisteredOn {
			return list[i].RegisteredOn < list[j].RegisteredOn
		}
		return list[i].GatewayID < list[j].GatewayID
	})
	return list, nil
}

// AddBeacon attaches a beacon to an existing gateway
func (s *Service) AddBeacon(ctx context.Context, gatewayID string, req *devices.BeaconRequest) (*devices.Beacon, error) {
	if _, err := s.store.Gateways.Get(ctx, gatewayID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrGatewayNotFound
		}
		return nil, err
	}

	b := &devices.Beacon{
		BeaconID:       store.NewID(),
		MacID:          req.MacID,
		DeviceID:       req.DeviceID,
		Battery:        req.Battery,
		Status:         req.Status,
		GatewayOwnerID: gatewayID,
		RegisteredOn:   s.stamp(),
	}
	if err := s.store.Beacons.Insert(ctx, b.BeaconID, b, map[string]string{store.FieldGateway: gatewayID}); err != nil {
		return nil, err
	}

	logger.WithScope("devices.AddBeacon").Info().
		Str("gateway", gatewayID).
		Str("beacon", b.BeaconID).
		Msg("Beacon added")
	return b, nil
}

// UpdateBeacon applies a partial update to a beacon
func (s *Service) UpdateBeacon(ctx context.Context, id string, req *devices.BeaconUpdate) (*devices.Beacon, error) {
	return s.store.Beacons.Update(ctx, id, func(b *devices.Beacon) error {
		req.Apply(b)
		stamp := s.stamp()
		b.LastUpdated = &stamp
		return nil
	})
}

// GetBeacon returns a beacon by id
func (s *Service) GetBeacon(ctx context.Context, id string) (*devices.Beacon, error) {
	return s.store.Beacons.Get(ctx, id)
}

// ListBeacons returns the beacons behind a gateway
func (s *Service) ListBeacons(ctx context.Context, gatewayID string) ([]devices.Beacon, error) {
	list, err := s.store.Beacons.ByIndex(ctx, store.FieldGateway, gatewayID)
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].RegisteredOn != list[j].RegisteredOn {
			return list[i].RegisteredOn < list[j].RegisteredOn
		}
		return list[i].BeaconID < list[j].BeaconID
	})
	return list, nil
}
