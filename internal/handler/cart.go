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

// CartHandler loads the owner's persisted cart per request. The owner is the
// signed-in user id, or the X-Device-ID header for anonymous shoppers.
type CartHandler struct {
	cartRepo       repository.CartRepository
	catalogService *service.CatalogService
	logger         *zap.Logger
}

func NewCartHandler(cartRepo repository.CartRepository, catalogService *service.CatalogService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartRepo:       cartRepo,
		catalogService: catalogService,
		logger:         logger,
	}
}

func cartOwner(c echo.Context) (string, error) {
	if userID, ok := c.Get("user_id").(string); ok && userID != "" {
		return userID, nil
	}
	if deviceID := c.Request().Header.Get("X-Device-ID"); deviceID != "" {
		return deviceID, nil
	}
	return "", echo.NewHTTPError(http.StatusBadRequest, "missing X-Device-ID header")
}

func (h *CartHandler) load(c echo.Context) (*cart.Store, error) {
	owner, err := cartOwner(c)
	if err != nil {
		return nil, err
	}

	store, err := cart.Load(c.Request().Context(), owner, h.cartRepo, h.logger)
	if err != nil {
		return nil, err
	}
	return store, nil
}

func (h *CartHandler) GetCart(c echo.Context) error {
	store, err := h.load(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, cartResponse(store))
}

func (h *CartHandler) AddItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	product, err := h.catalogService.ByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return err
	}

	store, err := h.load(c)
	if err != nil {
		return err
	}

	store.AddItem(ctx, *product, req.Quantity, req.Size)
	return c.JSON(http.StatusOK, cartResponse(store))
}

func (h *CartHandler) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	store, err := h.load(c)
	if err != nil {
		return err
	}

	store.UpdateQuantity(ctx, req.ProductID, req.Quantity, req.Size)
	return c.JSON(http.StatusOK, cartResponse(store))
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()

	store, err := h.load(c)
	if err != nil {
		return err
	}

	store.RemoveItem(ctx, c.Param("product_id"), c.QueryParam("size"))
	return c.JSON(http.StatusOK, cartResponse(store))
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()

	store, err := h.load(c)
	if err != nil {
		return err
	}

	store.Clear(ctx)
	return c.JSON(http.StatusOK, cartResponse(store))
}

func cartResponse(store *cart.Store) *dto.CartResponse {
	snapshot := store.Snapshot()

	items := make([]dto.CartLine, len(snapshot.Lines))
	for i, line := range snapshot.Lines {
		items[i] = dto.CartLine{
			ProductID: line.ProductID,
			Name:      line.Product.Name,
			Brand:     line.Product.Brand,
			ImageURL:  line.Product.ImageURL,
			Size:      line.Size,
			UnitPrice: line.Product.Price,
			Quantity:  line.Quantity,
			LineTotal: line.Product.Price * float64(line.Quantity),
			AddedAt:   line.AddedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	return &dto.CartResponse{
		Items:      items,
		TotalItems: snapshot.TotalItems,
		TotalPrice: snapshot.TotalPrice,
		Currency:   snapshot.Currency,
		IsOpen:     store.IsOpen(),
	}
}
