package handler

import (
	"errors"
	"net/http"
	"strconv"

	"maison-heritage-store/internal/dto"
	"maison-heritage-store/internal/repository"
	"maison-heritage-store/internal/service"

	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	catalogService *service.CatalogService
}

func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

func (h *CatalogHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	filters := repository.ProductFilters{
		Category: c.QueryParam("category"),
		Brand:    c.QueryParam("brand"),
		Search:   c.QueryParam("search"),
		SortBy:   c.QueryParam("sort"),
		SortDesc: c.QueryParam("order") == "desc",
		InStock:  c.QueryParam("in_stock") == "true",
	}
	filters.PriceMin, _ = strconv.ParseFloat(c.QueryParam("price_min"), 64)
	filters.PriceMax, _ = strconv.ParseFloat(c.QueryParam("price_max"), 64)
	filters.Limit, _ = strconv.Atoi(c.QueryParam("limit"))
	filters.Offset, _ = strconv.Atoi(c.QueryParam("offset"))
	if filters.Limit <= 0 || filters.Limit > 100 {
		filters.Limit = 24
	}

	products, total, err := h.catalogService.List(ctx, filters)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"products": products,
		"total":    total,
	})
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	product, err := h.catalogService.BySlug(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) ListReviews(c echo.Context) error {
	ctx := c.Request().Context()

	reviews, summary, err := h.catalogService.Reviews(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"reviews":        reviews,
		"average_rating": summary.AverageRating,
		"total_reviews":  summary.TotalReviews,
	})
}

func (h *CatalogHandler) CreateReview(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "sign in to review")
	}

	var req dto.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	req.ProductID = c.Param("id")

	if err := h.catalogService.AddReview(ctx, userID, &req); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, map[string]string{"status": "created"})
}
