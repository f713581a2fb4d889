package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeProvider struct {
	methods    []Method
	intent     *Intent
	intentErr  error
	result     *Result
	confirmErr error
}

func (f *fakeProvider) Supports(method Method) bool {
	for _, m := range f.methods {
		if m == method {
			return true
		}
	}
	return false
}

func (f *fakeProvider) CreateIntent(ctx context.Context, req *Request) (*Intent, error) {
	return f.intent, f.intentErr
}

func (f *fakeProvider) Confirm(ctx context.Context, intent *Intent, conf *Confirmation) (*Result, error) {
	if f.confirmErr != nil {
		return nil, f.confirmErr
	}
	return f.result, nil
}

func TestAvailableMethods(t *testing.T) {
	tests := []struct {
		name     string
		currency string
		country  string
		want     []Method
	}{
		{
			name:     "USD outside India",
			currency: "USD",
			country:  "US",
			want:     []Method{MethodCard, MethodPaypal},
		},
		{
			name:     "INR cart",
			currency: "INR",
			country:  "US",
			want:     []Method{MethodCard, MethodUPI, MethodWallet, MethodBankTransfer, MethodPaypal},
		},
		{
			name:     "Indian shopper with USD cart",
			currency: "USD",
			country:  "IN",
			want:     []Method{MethodCard, MethodUPI, MethodWallet, MethodBankTransfer, MethodPaypal},
		},
		{
			name:     "no country yet",
			currency: "EUR",
			country:  "",
			want:     []Method{MethodCard, MethodPaypal},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AvailableMethods(tt.currency, tt.country))
		})
	}
}

func TestResolveMethod(t *testing.T) {
	// requested method still offered
	assert.Equal(t, MethodPaypal, ResolveMethod(MethodPaypal, "USD", "US"))

	// upi unavailable outside India falls back to the first available method
	assert.Equal(t, MethodCard, ResolveMethod(MethodUPI, "USD", "US"))

	// upi stays for INR
	assert.Equal(t, MethodUPI, ResolveMethod(MethodUPI, "INR", "IN"))
}

func TestManagerConfirmNormalizesErrors(t *testing.T) {
	provider := &fakeProvider{
		methods:    []Method{MethodCard},
		confirmErr: errors.New("card declined"),
	}
	m := NewManager(zap.NewNop(), provider)

	result := m.Confirm(context.Background(), MethodCard, &Intent{ProviderRef: "pi_1"}, &Confirmation{})

	assert.False(t, result.Success)
	assert.Equal(t, "card declined", result.Err)
	assert.Equal(t, MethodCard, result.PaymentMethod)
}

func TestManagerConfirmUnsupportedMethod(t *testing.T) {
	m := NewManager(zap.NewNop(), &fakeProvider{methods: []Method{MethodCard}})

	result := m.Confirm(context.Background(), MethodUPI, &Intent{}, &Confirmation{})

	assert.False(t, result.Success)
	assert.Contains(t, result.Err, "unsupported payment method")
}

func TestManagerProcessSuccess(t *testing.T) {
	provider := &fakeProvider{
		methods: []Method{MethodCard},
		intent:  &Intent{ProviderRef: "pi_1"},
		result:  &Result{Success: true, PaymentID: "pi_1"},
	}
	m := NewManager(zap.NewNop(), provider)

	result := m.Process(context.Background(), MethodCard, &Request{AmountMinor: 64800, Currency: "USD"}, &Confirmation{StripePaymentMethodID: "pm_1"})

	assert.True(t, result.Success)
	assert.Equal(t, "pi_1", result.PaymentID)
	assert.Equal(t, MethodCard, result.PaymentMethod)
}

func TestManagerProcessCreateIntentFailure(t *testing.T) {
	provider := &fakeProvider{
		methods:   []Method{MethodPaypal},
		intentErr: errors.New("PayPal payments are not implemented yet"),
	}
	m := NewManager(zap.NewNop(), provider)

	result := m.Process(context.Background(), MethodPaypal, &Request{}, &Confirmation{})

	assert.False(t, result.Success)
	assert.Equal(t, "PayPal payments are not implemented yet", result.Err)
}
