package handler

import (
	"errors"

	"github.com/benedict-erwin/shop-directory/internal/constants"
	dealEntity "github.com/benedict-erwin/shop-directory/internal/entities/deals"
	dealService "github.com/benedict-erwin/shop-directory/internal/services/deals"
	"github.com/benedict-erwin/shop-directory/internal/store"
	"github.com/benedict-erwin/shop-directory/pkg/response"
	"github.com/labstack/echo/v4"
)

// DealCreate handles POST /create-deal/:shop_id
func (h *Handler) DealCreate(c echo.Context) error {
	var req dealEntity.CreateRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	_, err := h.Deals.Create(c.Request().Context(), c.Param("shop_id"), &req)
	switch {
	case errors.Is(err, dealService.ErrShopNotFound):
		return response.FailWithCodeAndMessage(c, constants.CodeResourceNotFound,
			"Shop not found", "Shop not found, please enter a valid shop id")
	case errors.Is(err, dealService.ErrInvalidDates):
		return invalidDates(c, err)
	case err != nil:
		return internalError(c, "DealCreate", err)
	}

	return response.Success(c, "Deal created successfully", "New deal added")
}

// DealUpdate handles PUT /update-deal/:deal_id
func (h *Handler) DealUpdate(c echo.Context) error {
	var req dealEntity.UpdateRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	_, err := h.Deals.Update(c.Request().Context(), c.Param("deal_id"), &req)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return response.FailWithCodeAndMessage(c, constants.CodeResourceNotFound,
			"Deal details not updated", "Deal not found")
	case errors.Is(err, dealService.ErrInvalidDates):
		return invalidDates(c, err)
	case err != nil:
		return internalError(c, "DealUpdate", err)
	}

	return response.Success(c, "Deal details updated successfully", "Deal details updated successfully")
}

// DealList handles GET /get-all-deals/:shop_id
func (h *Handler) DealList(c echo.Context) error {
	list, err := h.Deals.ListByShop(c.Request().Context(), c.Param("shop_id"))
	if err != nil {
		return internalError(c, "DealList", err)
	}
	if len(list) == 0 {
		return response.FailWithCodeAndMessage(c, constants.CodeResourceNotFound,
			"Deals not found", "No deals found")
	}

	return response.Success(c, "Deals found", list)
}

// DealGet handles GET /get-deal/:deal_id
func (h *Handler) DealGet(c echo.Context) error {
	deal, err := h.Deals.Get(c.Request().Context(), c.Param("deal_id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.FailWithCodeAndMessage(c, constants.CodeResourceNotFound,
				"No Deals found", "Deal not found or not active or end_date surpassed")
		}
		return internalError(c, "DealGet", err)
	}

	return response.Success(c, "Deal found", deal)
}

// DealDelete handles DELETE /delete-deal/:deal_id (soft delete)
func (h *Handler) DealDelete(c echo.Context) error {
	if err := h.Deals.Delete(c.Request().Context(), c.Param("deal_id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.FailWithCodeAndMessage(c, constants.CodeResourceNotFound,
				"Deal not deleted", "Deal not found")
		}
		return internalError(c, "DealDelete", err)
	}

	return response.Success(c, "Deal deleted successfully", "Deal deleted successfully")
}

func invalidDates(c echo.Context, err error) error {
	return response.FailWithCode(c, constants.CodeInvalidDate, err.Error())
}
