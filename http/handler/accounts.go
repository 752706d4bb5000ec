package handler

import (
	"errors"

	"github.com/benedict-erwin/shop-directory/http/middleware"
	"github.com/benedict-erwin/shop-directory/internal/constants"
	"github.com/benedict-erwin/shop-directory/internal/entities/owners"
	"github.com/benedict-erwin/shop-directory/internal/entities/users"
	"github.com/benedict-erwin/shop-directory/internal/services/accounts"
	"github.com/benedict-erwin/shop-directory/internal/store"
	"github.com/benedict-erwin/shop-directory/pkg/response"
	"github.com/labstack/echo/v4"
)

// UserRegister handles POST /user-registeration
func (h *Handler) UserRegister(c echo.Context) error {
	var req users.RegisterRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	if _, err := h.Accounts.RegisterUser(c.Request().Context(), &req); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return response.FailWithCodeAndMessage(c, constants.CodeDuplicateResource,
				"User with this username/email already exists",
				"Try a different username and email to register")
		}
		return internalError(c, "UserRegister", err)
	}

	return response.Success(c, "User registered successfully", "Sign in to continue with our services")
}

// UserLogin handles POST /user-login
func (h *Handler) UserLogin(c echo.Context) error {
	var req users.LoginRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	token, err := h.Accounts.LoginUser(c.Request().Context(), &req)
	if err != nil {
		return loginFailed(c, "UserLogin", err)
	}

	return response.Success(c, "User logged in successfully", users.TokenResponse{Token: token})
}

// UserUpdate handles PUT /update-user for the calling identity
func (h *Handler) UserUpdate(c echo.Context) error {
	claims := middleware.GetIdentity(c)
	if claims == nil {
		return unauthenticated(c)
	}

	var req users.UpdateRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	err := h.Accounts.UpdateUser(c.Request().Context(), claims.UserID, &req)
	switch {
	case errors.Is(err, accounts.ErrNothingToUpdate):
		return response.FailWithCodeAndMessage(c, constants.CodeNothingToUpdate,
			"Users details not updated", "Nothing to update")
	case errors.Is(err, store.ErrNotFound):
		return response.FailWithCodeAndMessage(c, constants.CodeBadRequest,
			"Users details not updated", "User not found")
	case errors.Is(err, store.ErrDuplicate):
		return response.FailWithCodeAndMessage(c, constants.CodeDuplicateResource,
			"Users details not updated", "Email already in use")
	case err != nil:
		return internalError(c, "UserUpdate", err)
	}

	return response.Success(c, "User details updated successfully", "User details updated successfully")
}

// AdminRegister handles POST /admin-registeration
func (h *Handler) AdminRegister(c echo.Context) error {
	var req owners.RegisterRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	if _, err := h.Accounts.RegisterOwner(c.Request().Context(), &req); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return response.FailWithCodeAndMessage(c, constants.CodeDuplicateResource,
				"Admin with this username already exists",
				"Try a different username to register")
		}
		return internalError(c, "AdminRegister", err)
	}

	return response.Success(c, "Admin registered successfully", "Sign in to continue with our services")
}

// AdminLogin handles POST /admin-login
func (h *Handler) AdminLogin(c echo.Context) error {
	var req users.LoginRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	token, err := h.Accounts.LoginOwner(c.Request().Context(), &req)
	if err != nil {
		return loginFailed(c, "AdminLogin", err)
	}

	return response.Success(c, "Admin logged in successfully", users.TokenResponse{Token: token})
}

func loginFailed(c echo.Context, scope string, err error) error {
	switch {
	case errors.Is(err, accounts.ErrMissingIdentifier):
		return response.FailWithCodeAndMessage(c, constants.CodeMissingParameter,
			"email or username is required to login",
			"Provide valid email or username to login")
	case errors.Is(err, accounts.ErrInvalidCredentials):
		return response.FailWithCode(c, constants.CodeInvalidCredentials,
			"Please provide valid email/username and password")
	}
	return internalError(c, scope, err)
}
