package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"maison-heritage-store/internal/model"
	"maison-heritage-store/internal/service"

	"github.com/labstack/echo/v4"
)

type AdminHandler struct {
	adminService   *service.AdminService
	catalogService *service.CatalogService
}

func NewAdminHandler(adminService *service.AdminService, catalogService *service.CatalogService) *AdminHandler {
	return &AdminHandler{
		adminService:   adminService,
		catalogService: catalogService,
	}
}

func adminID(c echo.Context) string {
	id, _ := c.Get("user_id").(string)
	return id
}

func (h *AdminHandler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()

	stats, err := h.adminService.Dashboard(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	var product model.Product
	if err := c.Bind(&product); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if product.Name == "" || product.Slug == "" || product.Price <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "name, slug and a positive price are required")
	}

	if err := h.catalogService.Create(ctx, &product); err != nil {
		return err
	}

	h.adminService.LogAction(ctx, adminID(c), "create", "product", product.ID, "slug="+product.Slug)
	return c.JSON(http.StatusCreated, product)
}

func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	productID := c.Param("id")

	var updates map[string]interface{}
	if err := c.Bind(&updates); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	// JSON numbers arrive as float64; normalize the stock count so the
	// in-stock flag derivation sees an int.
	if stock, ok := updates["stock_count"].(float64); ok {
		updates["stock_count"] = int(stock)
	}

	if err := h.catalogService.Update(ctx, productID, updates); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return err
	}

	h.adminService.LogAction(ctx, adminID(c), "update", "product", productID, fmt.Sprintf("fields=%d", len(updates)))
	return c.JSON(http.StatusOK, map[string]string{"status": "updated"})
}

func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	productID := c.Param("id")

	if err := h.catalogService.Deactivate(ctx, productID); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return err
	}

	h.adminService.LogAction(ctx, adminID(c), "deactivate", "product", productID, "")
	return c.JSON(http.StatusOK, map[string]string{"status": "deactivated"})
}

func (h *AdminHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	orders, err := h.adminService.Orders(ctx, limit, offset)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	err := h.adminService.UpdateOrderStatus(ctx, adminID(c), c.Param("order_number"), req.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "updated"})
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	users, err := h.adminService.Users(ctx, c.QueryParam("role"), limit, offset)
	if err != nil {
		return err
	}

	// Never serialize password hashes.
	type userView struct {
		ID        string `json:"id"`
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Role      string `json:"role"`
	}
	views := make([]userView, len(users))
	for i, u := range users {
		views[i] = userView{ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName, Role: u.Role}
	}

	return c.JSON(http.StatusOK, views)
}

func (h *AdminHandler) AuditLog(c echo.Context) error {
	ctx := c.Request().Context()

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	entries, err := h.adminService.AuditLog(ctx, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, entries)
}
