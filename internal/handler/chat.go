package handler

import (
	"net/http"

	"maison-heritage-store/internal/chatbot"
	"maison-heritage-store/internal/dto"
	"maison-heritage-store/internal/model"
	"maison-heritage-store/internal/repository"
	"maison-heritage-store/internal/service"

	"github.com/labstack/echo/v4"
)

type ChatHandler struct {
	catalogService *service.CatalogService
}

func NewChatHandler(catalogService *service.CatalogService) *ChatHandler {
	return &ChatHandler{
		catalogService: catalogService,
	}
}

// Chat answers one message. The bot is stateless across requests; the client
// sends its language preference with every message.
func (h *ChatHandler) Chat(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message is required")
	}

	products, _, err := h.catalogService.List(ctx, repository.ProductFilters{Limit: 100})
	if err != nil {
		return err
	}
	catalog := make([]model.Product, len(products))
	for i, p := range products {
		catalog[i] = *p
	}

	bot := chatbot.New(chatbot.Normalize(req.Language))
	reply := bot.Reply(req.Message, catalog)

	resp := dto.ChatResponse{
		Message:  reply.Message,
		Intent:   string(reply.Intent),
		Language: string(reply.Language),
	}
	for _, qr := range reply.QuickReplies {
		resp.QuickReplies = append(resp.QuickReplies, dto.QuickReply{Text: qr.Text, Action: qr.Action})
	}
	for _, s := range reply.Suggestions {
		resp.Suggestions = append(resp.Suggestions, dto.ProductSuggestion{
			ProductID: s.Product.ID,
			Name:      s.Product.Name,
			Price:     s.Product.Price,
			Reason:    s.Reason,
		})
	}

	return c.JSON(http.StatusOK, resp)
}
