package payment

import (
	"context"
	"fmt"

	"maison-heritage-store/internal/client"
)

// stripeProvider drives the hosted card flow: create a payment intent, then
// confirm it with the payment method the card widget collected.
type stripeProvider struct {
	client client.StripeClient
}

func NewStripeProvider(c client.StripeClient) Provider {
	return &stripeProvider{client: c}
}

func (p *stripeProvider) Supports(method Method) bool {
	return method == MethodCard
}

func (p *stripeProvider) CreateIntent(ctx context.Context, req *Request) (*Intent, error) {
	intent, err := p.client.CreatePaymentIntent(ctx, &client.CreatePaymentIntentRequest{
		AmountMinor:  req.AmountMinor,
		Currency:     req.Currency,
		ReceiptEmail: req.CustomerEmail,
		Description:  req.Description,
		OrderNumber:  req.OrderNumber,
	})
	if err != nil {
		return nil, fmt.Errorf("stripe create payment intent: %w", err)
	}

	return &Intent{
		ProviderRef:  intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

func (p *stripeProvider) Confirm(ctx context.Context, intent *Intent, conf *Confirmation) (*Result, error) {
	if conf == nil || conf.StripePaymentMethodID == "" {
		return &Result{Success: false, Err: "missing card payment method"}, nil
	}

	confirmed, err := p.client.ConfirmPaymentIntent(ctx, intent.ProviderRef, conf.StripePaymentMethodID)
	if err != nil {
		return &Result{Success: false, Err: err.Error()}, nil
	}

	// Anything short of succeeded is terminal failure; requires_action and
	// friends are delegated to the widget, not handled here.
	if confirmed.Status != "succeeded" {
		return &Result{
			Success: false,
			Err:     fmt.Sprintf("payment not completed (status %s)", confirmed.Status),
		}, nil
	}

	return &Result{
		Success:       true,
		PaymentID:     confirmed.ID,
		PaymentMethod: MethodCard,
	}, nil
}
