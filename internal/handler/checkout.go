package handler

import (
	"errors"
	"net/http"

	"maison-heritage-store/internal/cart"
	"maison-heritage-store/internal/dto"
	"maison-heritage-store/internal/repository"
	"maison-heritage-store/internal/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	checkoutService *service.CheckoutService
	cartRepo        repository.CartRepository
	logger          *zap.Logger
}

func NewCheckoutHandler(checkoutService *service.CheckoutService, cartRepo repository.CartRepository, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		cartRepo:        cartRepo,
		logger:          logger,
	}
}

func (h *CheckoutHandler) loadCart(c echo.Context) (*cart.Store, error) {
	owner, err := cartOwner(c)
	if err != nil {
		return nil, err
	}
	return cart.Load(c.Request().Context(), owner, h.cartRepo, h.logger)
}

// Start issues the checkout session key and the quote for the current cart.
// An optional country query param widens the method list for shoppers whose
// shipping country is already known.
func (h *CheckoutHandler) Start(c echo.Context) error {
	ctx := c.Request().Context()

	store, err := h.loadCart(c)
	if err != nil {
		return err
	}

	resp, err := h.checkoutService.Start(ctx, store.Snapshot(), c.QueryParam("country"))
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			return echo.NewHTTPError(http.StatusBadRequest, "cart is empty")
		}
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *CheckoutHandler) Submit(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SubmitCheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	store, err := h.loadCart(c)
	if err != nil {
		return err
	}

	userID, _ := c.Get("user_id").(string)
	resp, err := h.checkoutService.Submit(ctx, store, userID, &req)
	if err != nil {
		return checkoutError(err)
	}

	return c.JSON(http.StatusOK, resp)
}

// VerifyRazorpay is the overlay callback target; it finishes a payment the
// Submit call left pending.
func (h *CheckoutHandler) VerifyRazorpay(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RazorpayVerifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	store, err := h.loadCart(c)
	if err != nil {
		return err
	}

	userID, _ := c.Get("user_id").(string)
	resp, err := h.checkoutService.VerifyRazorpay(ctx, store, userID, &req)
	if err != nil {
		return checkoutError(err)
	}

	return c.JSON(http.StatusOK, resp)
}

// Confirmation re-renders the confirmation page after a refresh.
func (h *CheckoutHandler) Confirmation(c echo.Context) error {
	ctx := c.Request().Context()

	conf, err := h.checkoutService.Confirmation(ctx, c.Param("session_key"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownSession) {
			return echo.NewHTTPError(http.StatusNotFound, "no completed order for this session")
		}
		return err
	}

	return c.JSON(http.StatusOK, conf)
}

func checkoutError(err error) error {
	switch {
	case errors.Is(err, service.ErrUnknownSession):
		return echo.NewHTTPError(http.StatusNotFound, "unknown checkout session")
	case errors.Is(err, service.ErrEmptyCart):
		return echo.NewHTTPError(http.StatusBadRequest, "cart is empty")
	case errors.Is(err, service.ErrCartChanged):
		return echo.NewHTTPError(http.StatusConflict, "cart changed since checkout started; restart checkout")
	default:
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			return echo.NewHTTPError(http.StatusBadRequest, validationErr.Error())
		}
		return err
	}
}
