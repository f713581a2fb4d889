package payment

import (
	"context"
	"errors"
)

var ErrPaypalNotImplemented = errors.New("PayPal payments are not implemented yet")

// paypalProvider is offered globally but not wired to a gateway; every
// attempt fails before any remote call.
type paypalProvider struct{}

func NewPaypalProvider() Provider {
	return &paypalProvider{}
}

func (p *paypalProvider) Supports(method Method) bool {
	return method == MethodPaypal
}

func (p *paypalProvider) CreateIntent(ctx context.Context, req *Request) (*Intent, error) {
	return nil, ErrPaypalNotImplemented
}

func (p *paypalProvider) Confirm(ctx context.Context, intent *Intent, conf *Confirmation) (*Result, error) {
	return &Result{Success: false, Err: ErrPaypalNotImplemented.Error()}, nil
}
