package handler

import (
	"errors"

	"github.com/benedict-erwin/shop-directory/internal/constants"
	deviceEntity "github.com/benedict-erwin/shop-directory/internal/entities/devices"
	deviceService "github.com/benedict-erwin/shop-directory/internal/services/devices"
	"github.com/benedict-erwin/shop-directory/internal/store"
	"github.com/benedict-erwin/shop-directory/pkg/response"
	"github.com/labstack/echo/v4"
)

// GatewayRegister handles POST /register-gateways/:shop_id
func (h *Handler) GatewayRegister(c echo.Context) error {
	var req deviceEntity.GatewayRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	if _, err := h.Devices.RegisterGateway(c.Request().Context(), c.Param("shop_id"), &req); err != nil {
		if errors.Is(err, deviceService.ErrShopNotFound) {
			return response.FailWithCodeAndMessage(c, constants.CodeResourceNotFound,
				"Shop not found", "Shop not found")
		}
		return internalError(c, "GatewayRegister", err)
	}

	return response.Success(c, "Gateway created successfully", "New gateway added")
}

// GatewayUpdate handles PUT /update-gateways/:gateway_id
func (h *Handler) GatewayUpdate(c echo.Context) error {
	var req deviceEntity.GatewayUpdate
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	if _, err := h.Devices.UpdateGateway(c.Request().Context(), c.Param("gateway_id"), &req); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.FailWithCodeAndMessage(c, constants.CodeResourceNotFound,
				"Gateway details not updated", "Gateway not found")
		}
		return internalError(c, "GatewayUpdate", err)
	}

	return response.Success(c, "Gateway details updated successfully", "Gateway details updated successfully")
}

// GatewayList handles GET /all-gateways/:shop_id
func (h *Handler) GatewayList(c echo.Context) error {
	list, err := h.Devices.ListGateways(c.Request().Context(), c.Param("shop_id"))
	if err != nil {
		return internalError(c, "GatewayList", err)
	}
	if len(list) == 0 {
		return response.FailWithCodeAndMessage(c, constants.CodeResourceNotFound,
			"Gateways not found", "No gateways found")
	}

	return response.Success(c, "Gateways found", list)
}

// GatewayGet handles GET /gateways/:gateway_id
func (h *Handler) GatewayGet(c echo.Context) error {
	gw, err := h.Devices.GetGateway(c.Request().Context(), c.Param("gateway_id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.FailWithCodeAndMessage(c, constants.CodeResourceNotFound,
				"Gateway not found", "Gateway not found")
		}
		return internalError(c, "GatewayGet", err)
	}

	return response.Success(c, "Gateway found", gw)
}

// BeaconAdd handles POST /add-beacons/:gateway_id
func (h *Handler) BeaconAdd(c echo.Context) error {
	var req deviceEntity.BeaconRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	if _, err := h.Devices.AddBeacon(c.Request().Context(), c.Param("gateway_id"), &req); err != nil {
		if errors.Is(err, deviceService.ErrGatewayNotFound) {
			return response.FailWithCodeAndMessage(c, constants.CodeResourceNotFound,
				"Gateway not found, please provide correct details", "Gateway not found")
		}
		return internalError(c, "BeaconAdd", err)
	}

	return response.Success(c, "Beacon created successfully", "New beacon added")
}

// BeaconUpdate handles PUT /update-beacons/:beacon_id
func (h *Handler) BeaconUpdate(c echo.Context) error {
	var req deviceEntity.BeaconUpdate
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	if _, err := h.Devices.UpdateBeacon(c.Request().Context(), c.Param("beacon_id"), &req); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.FailWithCodeAndMessage(c, constants.CodeResourceNotFound,
				"Beacon details not updated", "Beacon not found")
		}
		return internalError(c, "BeaconUpdate", err)
	}

	return response.Success(c, "Beacon details updated successfully", "Beacon details updated successfully")
}

// BeaconList handles GET /all-beacons/:gateway_id
func (h *Handler) BeaconList(c echo.Context) error {
	list, err := h.Devices.ListBeacons(c.Request().Context(), c.Param("gateway_id"))
	if err != nil {
		return internalError(c, "BeaconList", err)
	}
	if len(list) == 0 {
		return response.FailWithCodeAndMessage(c, constants.CodeResourceNotFound,
			"Beacons not found", "No beacons found")
	}

	return response.Success(c, "Beacons found", list)
}

// BeaconGet handles GET /beacons/:beacon_id
func (h *Handler) BeaconGet(c echo.Context) error {
	b, err := h.Devices.GetBeacon(c.Request().Context(), c.Param("beacon_id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.FailWithCodeAndMessage(c, constants.CodeResourceNotFound,
				"Beacon not found", "Beacon not found")
		}
		return internalError(c, "BeaconGet", err)
	}

	return response.Success(c, "Beacon found", b)
}
