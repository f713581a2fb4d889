package handler

import (
	"net/http"
	"regexp"

	"maison-heritage-store/internal/dto"
	"maison-heritage-store/internal/repository"

	"github.com/labstack/echo/v4"
)

var newsletterEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type NewsletterHandler struct {
	newsletterRepo repository.NewsletterRepository
}

func NewNewsletterHandler(newsletterRepo repository.NewsletterRepository) *NewsletterHandler {
	return &NewsletterHandler{
		newsletterRepo: newsletterRepo,
	}
}

func (h *NewsletterHandler) Subscribe(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.NewsletterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if !newsletterEmailPattern.MatchString(req.Email) {
		return echo.NewHTTPError(http.StatusBadRequest, "valid email is required")
	}

	if err := h.newsletterRepo.Subscribe(ctx, req.Email, req.FirstName); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "subscribed"})
}
