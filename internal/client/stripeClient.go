package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"maison-heritage-store/internal/config"
)

type StripeClient interface {
	// CreatePaymentIntent registers a payment on Stripe's side and returns the
	// intent id plus the client secret the card widget confirms against.
	CreatePaymentIntent(ctx context.Context, req *CreatePaymentIntentRequest) (*PaymentIntent, error)
	// ConfirmPaymentIntent confirms the intent with a widget-collected payment
	// method and returns the terminal intent state.
	ConfirmPaymentIntent(ctx context.Context, intentID, paymentMethodID string) (*PaymentIntent, error)
}

type stripeClientImpl struct {
	httpClient *http.Client
	baseApiURL string
	secretKey  string
}

type CreatePaymentIntentRequest struct {
	AmountMinor  int64
	Currency     string
	ReceiptEmail string
	Description  string
	OrderNumber  string
}

type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

type stripeErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

func NewStripeClient(stripeCfg *config.Stripe) StripeClient {
	return &stripeClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL: stripeCfg.BaseApiURL,
		secretKey:  stripeCfg.SecretKey,
	}
}

func (c *stripeClientImpl) CreatePaymentIntent(ctx context.Context, req *CreatePaymentIntentRequest) (*PaymentIntent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(req.AmountMinor, 10))
	form.Set("currency", strings.ToLower(req.Currency))
	form.Set("receipt_email", req.ReceiptEmail)
	form.Set("description", req.Description)
	form.Set("metadata[order_number]", req.OrderNumber)

	return c.do(ctx, "/v1/payment_intents", form)
}

func (c *stripeClientImpl) ConfirmPaymentIntent(ctx context.Context, intentID, paymentMethodID string) (*PaymentIntent, error) {
	form := url.Values{}
	form.Set("payment_method", paymentMethodID)

	return c.do(ctx, fmt.Sprintf("/v1/payment_intents/%s/confirm", intentID), form)
}

func (c *stripeClientImpl) do(ctx context.Context, path string, form url.Values) (*PaymentIntent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+path,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		var errBody stripeErrorBody
		if json.Unmarshal(b, &errBody) == nil && errBody.Error.Message != "" {
			return nil, fmt.Errorf("stripe error %d: %s", resp.StatusCode, errBody.Error.Message)
		}
		return nil, fmt.Errorf("stripe error %d: %s", resp.StatusCode, string(b))
	}

	var intent PaymentIntent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, fmt.Errorf("decode stripe response: %w", err)
	}

	return &intent, nil
}
