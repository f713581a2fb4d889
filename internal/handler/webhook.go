package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"maison-heritage-store/internal/repository"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// WebhookHandler receives Stripe events. Checkout completes synchronously, so
// webhooks are reconciliation only: verify, dedupe, log.
type WebhookHandler struct {
	webhookSecret    string
	webhookEventRepo repository.WebhookEventRepository
	logger           *zap.Logger
}

func NewWebhookHandler(webhookSecret string, webhookEventRepo repository.WebhookEventRepository, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		webhookSecret:    webhookSecret,
		webhookEventRepo: webhookEventRepo,
		logger:           logger,
	}
}

type stripeEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID string `json:"id"`
		} `json:"object"`
	} `json:"data"`
}

func (h *WebhookHandler) StripeWebhook(c echo.Context) error {
	ctx := c.Request().Context()

	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "read body")
	}

	if !h.verifySignature(payload, c.Request().Header.Get("Stripe-Signature")) {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid signature")
	}

	var event stripeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event payload")
	}

	seen, err := h.webhookEventRepo.Exists(ctx, event.ID)
	if err != nil {
		return err
	}
	if seen {
		return c.JSON(http.StatusOK, map[string]string{"status": "already processed"})
	}

	switch event.Type {
	case "payment_intent.succeeded":
		h.logger.Info("stripe payment succeeded",
			zap.String("event_id", event.ID),
			zap.String("payment_intent", event.Data.Object.ID))
	case "payment_intent.payment_failed":
		h.logger.Warn("stripe payment failed",
			zap.String("event_id", event.ID),
			zap.String("payment_intent", event.Data.Object.ID))
	default:
		h.logger.Debug("unhandled stripe event", zap.String("type", event.Type))
	}

	if err := h.webhookEventRepo.MarkProcessed(ctx, event.ID, event.Type); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "processed"})
}

// Stripe-Signature carries "t=<timestamp>,v1=<hmac>"; the mac covers
// "<timestamp>.<payload>" keyed with the endpoint secret.
func (h *WebhookHandler) verifySignature(payload []byte, header string) bool {
	if h.webhookSecret == "" || header == "" {
		return false
	}

	var timestamp, signature string
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			timestamp = kv[1]
		case "v1":
			signature = kv[1]
		}
	}
	if timestamp == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(h.webhookSecret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
