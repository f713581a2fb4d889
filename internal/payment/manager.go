package payment

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Manager routes a payment to the provider supporting the chosen method and
// normalizes every outcome into a Result. It never retries and never falls
// through to another provider; an intent abandoned after a failed confirm is
// left on the provider's side.
type Manager struct {
	providers []Provider
	logger    *zap.Logger
}

func NewManager(logger *zap.Logger, providers ...Provider) *Manager {
	return &Manager{
		providers: providers,
		logger:    logger,
	}
}

func (m *Manager) providerFor(method Method) (Provider, error) {
	for _, p := range m.providers {
		if p.Supports(method) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("unsupported payment method %q", method)
}

// CreateIntent registers the payment with the provider for the method.
func (m *Manager) CreateIntent(ctx context.Context, method Method, req *Request) (*Intent, error) {
	provider, err := m.providerFor(method)
	if err != nil {
		return nil, err
	}

	intent, err := provider.CreateIntent(ctx, req)
	if err != nil {
		m.logger.Warn("create payment intent failed",
			zap.String("method", string(method)),
			zap.String("session_key", req.SessionKey),
			zap.Error(err))
		return nil, err
	}

	return intent, nil
}

// Confirm completes the payment and normalizes the terminal outcome. Errors
// become failed Results; the error text is what the shopper sees.
func (m *Manager) Confirm(ctx context.Context, method Method, intent *Intent, conf *Confirmation) *Result {
	provider, err := m.providerFor(method)
	if err != nil {
		return &Result{Success: false, PaymentMethod: method, Err: err.Error()}
	}

	result, err := provider.Confirm(ctx, intent, conf)
	if err != nil {
		m.logger.Warn("confirm payment failed",
			zap.String("method", string(method)),
			zap.Error(err))
		return &Result{Success: false, PaymentMethod: method, Err: err.Error()}
	}

	result.PaymentMethod = method
	return result
}

// Process runs create and confirm as one pass, for flows whose confirmation
// arrives with the submission (card, paypal stub).
func (m *Manager) Process(ctx context.Context, method Method, req *Request, conf *Confirmation) *Result {
	intent, err := m.CreateIntent(ctx, method, req)
	if err != nil {
		return &Result{Success: false, PaymentMethod: method, Err: err.Error()}
	}

	return m.Confirm(ctx, method, intent, conf)
}

// AvailableMethods returns the methods offered for a currency/country pair:
// card always, the razorpay family only for INR carts or Indian shoppers,
// paypal globally.
func AvailableMethods(currency, country string) []Method {
	methods := []Method{MethodCard}

	if currency == "INR" || country == "IN" {
		methods = append(methods, MethodUPI, MethodWallet, MethodBankTransfer)
	}

	methods = append(methods, MethodPaypal)
	return methods
}

// ResolveMethod keeps the requested method when it is still offered,
// otherwise falls back to the first available one.
func ResolveMethod(requested Method, currency, country string) Method {
	available := AvailableMethods(currency, country)
	for _, m := range available {
		if m == requested {
			return requested
		}
	}
	return available[0]
}
