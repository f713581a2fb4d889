package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		subtotal float64
		shipping float64
		tax      float64
		total    float64
	}{
		{
			name:     "empty cart",
			subtotal: 0,
			shipping: 25,
			tax:      0,
			total:    25,
		},
		{
			name:     "just under free shipping",
			subtotal: 499.99,
			shipping: 25,
			tax:      40.00,
			total:    564.99,
		},
		{
			name:     "exactly at free shipping threshold",
			subtotal: 500,
			shipping: 0,
			tax:      40,
			total:    540,
		},
		{
			name:     "just over free shipping",
			subtotal: 500.01,
			shipping: 0,
			tax:      40.00,
			total:    540.01,
		},
		{
			name:     "large order",
			subtotal: 10000,
			shipping: 0,
			tax:      800,
			total:    10800,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := Compute(tt.subtotal, "USD")

			assert.Equal(t, tt.subtotal, quote.Subtotal)
			assert.Equal(t, tt.shipping, quote.Shipping)
			assert.Equal(t, tt.tax, quote.Tax)
			assert.Equal(t, tt.total, quote.Total)
			assert.Equal(t, "USD", quote.Currency)
		})
	}
}

func TestComputeRoundsTaxToCents(t *testing.T) {
	// 123.45 * 0.08 = 9.876, rounds to 9.88
	quote := Compute(123.45, "USD")

	assert.Equal(t, 9.88, quote.Tax)
	assert.Equal(t, 158.33, quote.Total)
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(64800), MinorUnits(648.00))
	assert.Equal(t, int64(54001), MinorUnits(540.01))
	assert.Equal(t, int64(0), MinorUnits(0))
	// float noise must not shave a paisa off
	assert.Equal(t, int64(1999), MinorUnits(19.99))
}
