package client

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"maison-heritage-store/internal/config"

	"github.com/stretchr/testify/assert"
)

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	c := NewRazorpayClient(&config.Razorpay{
		KeyID:     "rzp_test_key",
		KeySecret: "test-secret",
	})

	valid := sign("test-secret", "order_1", "pay_1")

	assert.True(t, c.VerifySignature("order_1", "pay_1", valid))
	assert.False(t, c.VerifySignature("order_1", "pay_1", "tampered"))
	assert.False(t, c.VerifySignature("order_2", "pay_1", valid), "signature is bound to the order id")
	assert.False(t, c.VerifySignature("order_1", "pay_2", valid), "signature is bound to the payment id")
}

func TestKeyID(t *testing.T) {
	c := NewRazorpayClient(&config.Razorpay{KeyID: "rzp_test_key"})
	assert.Equal(t, "rzp_test_key", c.KeyID())
}
