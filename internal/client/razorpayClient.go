package client

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"maison-heritage-store/internal/config"
)

type RazorpayClient interface {
	// CreateOrder registers a gateway order; the hosted checkout overlay is
	// opened against the returned order id.
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*RazorpayOrder, error)
	// VerifySignature checks the overlay callback signature server-side. A
	// callback must never be trusted without this check.
	VerifySignature(orderID, paymentID, signature string) bool
	// KeyID is the public key the overlay is initialized with.
	KeyID() string
}

type razorpayClientImpl struct {
	httpClient *http.Client
	baseApiURL string
	keyID      string
	keySecret  string
}

type RazorpayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

func NewRazorpayClient(razorpayCfg *config.Razorpay) RazorpayClient {
	return &razorpayClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL: razorpayCfg.BaseApiURL,
		keyID:      razorpayCfg.KeyID,
		keySecret:  razorpayCfg.KeySecret,
	}
}

func (c *razorpayClientImpl) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*RazorpayOrder, error) {
	payload := map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal req payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/v1/orders",
		bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("razorpay error %d: %s", resp.StatusCode, string(b))
	}

	var order RazorpayOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("decode razorpay response: %w", err)
	}

	return &order, nil
}

// Razorpay signs "order_id|payment_id" with the key secret (HMAC-SHA256, hex).
func (c *razorpayClientImpl) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

func (c *razorpayClientImpl) KeyID() string {
	return c.keyID
}
