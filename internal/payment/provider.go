package payment

import "context"

type Method string

const (
	MethodCard         Method = "card"
	MethodUPI          Method = "upi"
	MethodWallet       Method = "wallet"
	MethodBankTransfer Method = "bank-transfer"
	MethodPaypal       Method = "paypal"
)

// Request carries everything a provider needs to register a payment.
// Amounts are in minor units.
type Request struct {
	SessionKey    string
	OrderNumber   string
	AmountMinor   int64
	Currency      string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Description   string
}

// Intent is the provider-side object a payment is confirmed against.
type Intent struct {
	ProviderRef  string
	ClientSecret string // card widget only
}

// Confirmation is the client-completed half of a payment: either the widget's
// payment method id (card) or the overlay callback fields (razorpay family).
type Confirmation struct {
	StripePaymentMethodID string
	RazorpayPaymentID     string
	RazorpayOrderID       string
	RazorpaySignature     string
}

// Result is the single normalized outcome shape. Terminal: a result is never
// revised, retried, or escalated to another provider.
type Result struct {
	Success       bool
	PaymentID     string
	PaymentMethod Method
	Err           string
}

// Provider is one payment backend. Adding a backend means adding an
// implementation, not editing a dispatch conditional.
type Provider interface {
	Supports(method Method) bool
	CreateIntent(ctx context.Context, req *Request) (*Intent, error)
	Confirm(ctx context.Context, intent *Intent, conf *Confirmation) (*Result, error)
}
