package pricing

import "github.com/shopspring/decimal"

// Fixed business rule: flat free-shipping threshold and flat tax rate, both in
// the cart's currency units. Neither is jurisdiction-aware.
const (
	FreeShippingThreshold = 500
	FlatShippingCost      = 25
	TaxRate               = 0.08
)

type Quote struct {
	Subtotal float64
	Shipping float64
	Tax      float64
	Total    float64
	Currency string
}

// Compute derives shipping, tax and total from a subtotal, rounding tax and
// total to cents.
func Compute(subtotal float64, currency string) Quote {
	sub := decimal.NewFromFloat(subtotal)

	shipping := decimal.NewFromInt(FlatShippingCost)
	if sub.GreaterThanOrEqual(decimal.NewFromInt(FreeShippingThreshold)) {
		shipping = decimal.Zero
	}

	tax := sub.Mul(decimal.NewFromFloat(TaxRate)).Round(2)
	total := sub.Add(shipping).Add(tax).Round(2)

	return Quote{
		Subtotal: sub.InexactFloat64(),
		Shipping: shipping.InexactFloat64(),
		Tax:      tax.InexactFloat64(),
		Total:    total.InexactFloat64(),
		Currency: currency,
	}
}

// MinorUnits converts an amount to the smallest currency unit (cents, paise)
// for the provider APIs.
func MinorUnits(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
