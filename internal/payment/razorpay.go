package payment

import (
	"context"
	"fmt"

	"maison-heritage-store/internal/client"
)

// razorpayProvider backs the regional methods. CreateIntent registers a
// gateway order for the hosted overlay; Confirm verifies the overlay callback
// signature server-side before trusting it.
type razorpayProvider struct {
	client client.RazorpayClient
}

func NewRazorpayProvider(c client.RazorpayClient) Provider {
	return &razorpayProvider{client: c}
}

func (p *razorpayProvider) Supports(method Method) bool {
	switch method {
	case MethodUPI, MethodWallet, MethodBankTransfer:
		return true
	}
	return false
}

func (p *razorpayProvider) CreateIntent(ctx context.Context, req *Request) (*Intent, error) {
	order, err := p.client.CreateOrder(ctx, req.AmountMinor, req.Currency, req.OrderNumber)
	if err != nil {
		return nil, fmt.Errorf("razorpay create order: %w", err)
	}

	return &Intent{ProviderRef: order.ID}, nil
}

func (p *razorpayProvider) Confirm(ctx context.Context, intent *Intent, conf *Confirmation) (*Result, error) {
	if conf == nil || conf.RazorpayPaymentID == "" || conf.RazorpaySignature == "" {
		return &Result{Success: false, Err: "missing payment callback fields"}, nil
	}
	if conf.RazorpayOrderID != intent.ProviderRef {
		return &Result{Success: false, Err: "payment verification failed"}, nil
	}

	if !p.client.VerifySignature(conf.RazorpayOrderID, conf.RazorpayPaymentID, conf.RazorpaySignature) {
		return &Result{Success: false, Err: "payment verification failed"}, nil
	}

	return &Result{
		Success:       true,
		PaymentID:     conf.RazorpayPaymentID,
		PaymentMethod: MethodUPI,
	}, nil
}
