package handler

import (
	"errors"
	"net/http"

	"maison-heritage-store/internal/auth"
	"maison-heritage-store/internal/dto"
	"maison-heritage-store/internal/service"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	userService *service.UserService
}

func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

func (h *AuthHandler) SignUp(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SignUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	resp, err := h.userService.SignUp(ctx, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			return echo.NewHTTPError(http.StatusConflict, "email is already registered")
		case errors.Is(err, auth.ErrPasswordTooShort):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return err
		}
	}

	return c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) SignIn(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SignInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	resp, err := h.userService.SignIn(ctx, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
		}
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) MyOrders(c echo.Context) error {
	ctx := c.Request().Context()

	userID, _ := c.Get("user_id").(string)
	orders, err := h.userService.Orders(ctx, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *AuthHandler) Wishlist(c echo.Context) error {
	ctx := c.Request().Context()

	userID, _ := c.Get("user_id").(string)
	products, err := h.userService.Wishlist(ctx, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, products)
}

func (h *AuthHandler) AddToWishlist(c echo.Context) error {
	ctx := c.Request().Context()

	userID, _ := c.Get("user_id").(string)
	if err := h.userService.AddToWishlist(ctx, userID, c.Param("product_id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "added"})
}

func (h *AuthHandler) RemoveFromWishlist(c echo.Context) error {
	ctx := c.Request().Context()

	userID, _ := c.Get("user_id").(string)
	if err := h.userService.RemoveFromWishlist(ctx, userID, c.Param("product_id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "removed"})
}
