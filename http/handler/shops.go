package handler

import (
	"errors"

	"github.com/benedict-erwin/shop-directory/http/middleware"
	"github.com/benedict-erwin/shop-directory/internal/constants"
	shopEntity "github.com/benedict-erwin/shop-directory/internal/entities/shops"
	"github.com/benedict-erwin/shop-directory/internal/store"
	"github.com/benedict-erwin/shop-directory/pkg/response"
	"github.com/labstack/echo/v4"
)

// ShopRegister handles POST /new-shop-registration; the caller becomes the owner
func (h *Handler) ShopRegister(c echo.Context) error {
	claims := middleware.GetIdentity(c)
	if claims == nil {
		return unauthenticated(c)
	}

	var req shopEntity.RegisterRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	if _, err := h.Shops.Create(c.Request().Context(), claims.UserID, &req); err != nil {
		return internalError(c, "ShopRegister", err)
	}

	return response.Success(c, "Shop registered successfully", "New shop added")
}

// ShopUpdate handles PUT /update-shop/:shop_id
func (h *Handler) ShopUpdate(c echo.Context) error {
	var req shopEntity.UpdateRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	if _, err := h.Shops.Update(c.Request().Context(), c.Param("shop_id"), &req); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.FailWithCodeAndMessage(c, constants.CodeResourceNotFound,
				"Shop details not updated", "Shop not found")
		}
		return internalError(c, "ShopUpdate", err)
	}

	return response.Success(c, "Shop details updated successfully", "Shop details updated successfully")
}

// ShopListOwned handles GET /get-all-shops for the calling owner
func (h *Handler) ShopListOwned(c echo.Context) error {
	claims := middleware.GetIdentity(c)
	if claims == nil {
		return unauthenticated(c)
	}

	list, err := h.Shops.ListByOwner(c.Request().Context(), claims.UserID)
	if err != nil {
		return internalError(c, "ShopListOwned", err)
	}
	if len(list) == 0 {
		return response.FailWithCodeAndMessage(c, constants.CodeResourceNotFound,
			"Shops not found", "No shops found for this User")
	}

	return response.Success(c, "Shops found", list)
}

// ShopGet handles GET /get-shop/:shop_id
func (h *Handler) ShopGet(c echo.Context) error {
	shop, err := h.Shops.Get(c.Request().Context(), c.Param("shop_id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.FailWithCodeAndMessage(c, constants.CodeResourceNotFound,
				"Shop not found", "Shop not found, may be it's not active or deleted by the owner")
		}
		return internalError(c, "ShopGet", err)
	}

	return response.Success(c, "Shop found", shop.Summary())
}

// ShopDelete handles DELETE /delete-shop/:shop_id (soft delete)
func (h *Handler) ShopDelete(c echo.Context) error {
	if err := h.Shops.Delete(c.Request().Context(), c.Param("shop_id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.FailWithCodeAndMessage(c, constants.CodeResourceNotFound,
				"Shop not found", "Shop not found for this User")
		}
		return internalError(c, "ShopDelete", err)
	}

	return response.Success(c, "Shop deleted successfully", "Shop deleted successfully")
}
