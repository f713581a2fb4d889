package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"maison-heritage-store/internal/cart"
	"maison-heritage-store/internal/dto"
	"maison-heritage-store/internal/events"
	"maison-heritage-store/internal/model"
	"maison-heritage-store/internal/payment"
	"maison-heritage-store/internal/pricing"
	"maison-heritage-store/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrUnknownSession = errors.New("unknown checkout session")
	ErrCartChanged    = errors.New("cart contents changed since checkout started")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError lists every form problem at once.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid checkout form: " + strings.Join(e.Problems, "; ")
}

// CheckoutService runs the checkout flow: issue a session key, quote the cart,
// dispatch payment, and on success commit the order, stock decrement and
// attempt state in one transaction. Payment outcomes are terminal; a failed
// attempt leaves the cart untouched and the session retryable.
type CheckoutService struct {
	db            *gorm.DB
	attemptRepo   repository.PaymentAttemptRepository
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
	newsletter    repository.NewsletterRepository
	manager       *payment.Manager
	razorpayKeyID string
	producer      *events.Producer
	logger        *zap.Logger
}

func NewCheckoutService(
	db *gorm.DB,
	attemptRepo repository.PaymentAttemptRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	newsletter repository.NewsletterRepository,
	manager *payment.Manager,
	razorpayKeyID string,
	producer *events.Producer,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		db:            db,
		attemptRepo:   attemptRepo,
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		newsletter:    newsletter,
		manager:       manager,
		razorpayKeyID: razorpayKeyID,
		producer:      producer,
		logger:        logger,
	}
}

// Start issues a server-side session key for the current cart contents and
// returns the quote. The key, not a client-minted order id, is what makes a
// resubmission detectable. country is the shopper's shipping country when the
// client already knows it; it widens the method list the same way the
// submitted form does.
func (s *CheckoutService) Start(ctx context.Context, snapshot cart.Snapshot, country string) (*dto.StartCheckoutResponse, error) {
	if len(snapshot.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	quote := pricing.Compute(snapshot.TotalPrice, snapshot.Currency)
	sessionKey := uuid.NewString()

	attempt := &model.PaymentAttempt{
		SessionKey: sessionKey,
		CartHash:   snapshot.Hash(),
		Amount:     quote.Total,
		Currency:   quote.Currency,
		Status:     model.AttemptStatusOpen,
	}
	if err := s.attemptRepo.Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("create payment attempt: %w", err)
	}

	methods := payment.AvailableMethods(snapshot.Currency, country)
	names := make([]string, len(methods))
	for i, m := range methods {
		names[i] = string(m)
	}

	return &dto.StartCheckoutResponse{
		SessionKey:       sessionKey,
		Quote:            toQuoteDTO(quote),
		AvailableMethods: names,
	}, nil
}

// Submit validates the form and dispatches payment. Card and paypal finish in
// this call; the razorpay family answers requires_overlay and finishes through
// VerifyRazorpay. A session that already succeeded replays its confirmation.
// userID is the signed-in shopper's id, empty for guest checkout.
func (s *CheckoutService) Submit(ctx context.Context, cartStore *cart.Store, userID string, req *dto.SubmitCheckoutRequest) (*dto.SubmitCheckoutResponse, error) {
	attempt, err := s.attemptRepo.FindByKey(ctx, req.SessionKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownSession
		}
		return nil, fmt.Errorf("load payment attempt: %w", err)
	}

	if attempt.Status == model.AttemptStatusSucceeded {
		return s.replay(ctx, attempt)
	}

	if problems := ValidateCheckoutForm(&req.Form); len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	snapshot := cartStore.Snapshot()
	if len(snapshot.Lines) == 0 {
		return nil, ErrEmptyCart
	}
	if snapshot.Hash() != attempt.CartHash {
		return nil, ErrCartChanged
	}

	if err := s.checkStock(ctx, snapshot); err != nil {
		return &dto.SubmitCheckoutResponse{Status: "failed", Error: err.Error()}, nil
	}

	quote := pricing.Compute(snapshot.TotalPrice, snapshot.Currency)
	method := payment.ResolveMethod(payment.Method(req.Form.PaymentMethod), snapshot.Currency, req.Form.Country)
	formJSON, _ := json.Marshal(req.Form)

	payReq := s.paymentRequest(attempt.SessionKey, quote, &req.Form)

	if method == payment.MethodUPI || method == payment.MethodWallet || method == payment.MethodBankTransfer {
		intent, err := s.manager.CreateIntent(ctx, method, payReq)
		if err != nil {
			if markErr := s.attemptRepo.MarkFailed(ctx, attempt.SessionKey, err.Error()); markErr != nil {
				s.logger.Error("mark attempt failed", zap.String("session_key", attempt.SessionKey), zap.Error(markErr))
			}
			return &dto.SubmitCheckoutResponse{Status: "failed", Error: err.Error()}, nil
		}

		err = s.attemptRepo.Update(ctx, attempt.SessionKey, map[string]interface{}{
			"status":       model.AttemptStatusPending,
			"method":       string(method),
			"provider_ref": intent.ProviderRef,
			"form_json":    string(formJSON),
		})
		if err != nil {
			return nil, fmt.Errorf("update payment attempt: %w", err)
		}

		return &dto.SubmitCheckoutResponse{
			Status: "requires_overlay",
			Razorpay: &dto.RazorpayCheckoutOptions{
				Key:      s.razorpayKeyID,
				Amount:   payReq.AmountMinor,
				Currency: payReq.Currency,
				OrderID:  intent.ProviderRef,
				Prefill: dto.RazorpayPrefill{
					Name:    payReq.CustomerName,
					Email:   payReq.CustomerEmail,
					Contact: payReq.CustomerPhone,
				},
			},
		}, nil
	}

	err = s.attemptRepo.Update(ctx, attempt.SessionKey, map[string]interface{}{
		"status":    model.AttemptStatusPending,
		"method":    string(method),
		"form_json": string(formJSON),
	})
	if err != nil {
		return nil, fmt.Errorf("update payment attempt: %w", err)
	}

	result := s.manager.Process(ctx, method, payReq, &payment.Confirmation{
		StripePaymentMethodID: req.StripePaymentMethodID,
	})
	if !result.Success {
		if markErr := s.attemptRepo.MarkFailed(ctx, attempt.SessionKey, result.Err); markErr != nil {
			s.logger.Error("mark attempt failed", zap.String("session_key", attempt.SessionKey), zap.Error(markErr))
		}
		return &dto.SubmitCheckoutResponse{Status: "failed", Error: result.Err}, nil
	}

	confirmation, err := s.finalize(ctx, cartStore, attempt.SessionKey, userID, &req.Form, snapshot, quote, result)
	if err != nil {
		return nil, err
	}

	return &dto.SubmitCheckoutResponse{Status: "succeeded", Confirmation: confirmation}, nil
}

// VerifyRazorpay finishes an overlay payment: the callback signature is
// verified server-side against the intent recorded at submit time.
func (s *CheckoutService) VerifyRazorpay(ctx context.Context, cartStore *cart.Store, userID string, req *dto.RazorpayVerifyRequest) (*dto.SubmitCheckoutResponse, error) {
	attempt, err := s.attemptRepo.FindByKey(ctx, req.SessionKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownSession
		}
		return nil, fmt.Errorf("load payment attempt: %w", err)
	}

	if attempt.Status == model.AttemptStatusSucceeded {
		return s.replay(ctx, attempt)
	}
	if attempt.Status != model.AttemptStatusPending || attempt.ProviderRef == "" {
		return nil, fmt.Errorf("session %s has no pending overlay payment", req.SessionKey)
	}

	var form dto.CheckoutForm
	if err := json.Unmarshal([]byte(attempt.FormJSON), &form); err != nil {
		return nil, fmt.Errorf("decode stored checkout form: %w", err)
	}

	snapshot := cartStore.Snapshot()
	if snapshot.Hash() != attempt.CartHash {
		return nil, ErrCartChanged
	}

	method := payment.Method(attempt.Method)
	intent := &payment.Intent{ProviderRef: attempt.ProviderRef}
	result := s.manager.Confirm(ctx, method, intent, &payment.Confirmation{
		RazorpayPaymentID: req.RazorpayPaymentID,
		RazorpayOrderID:   req.RazorpayOrderID,
		RazorpaySignature: req.RazorpaySignature,
	})
	if !result.Success {
		if markErr := s.attemptRepo.MarkFailed(ctx, attempt.SessionKey, result.Err); markErr != nil {
			s.logger.Error("mark attempt failed", zap.String("session_key", attempt.SessionKey), zap.Error(markErr))
		}
		return &dto.SubmitCheckoutResponse{Status: "failed", Error: result.Err}, nil
	}

	quote := pricing.Compute(snapshot.TotalPrice, snapshot.Currency)
	confirmation, err := s.finalize(ctx, cartStore, attempt.SessionKey, userID, &form, snapshot, quote, result)
	if err != nil {
		return nil, err
	}

	return &dto.SubmitCheckoutResponse{Status: "succeeded", Confirmation: confirmation}, nil
}

// Confirmation returns the stored confirmation for a completed session, so a
// refreshed confirmation page can re-render.
func (s *CheckoutService) Confirmation(ctx context.Context, sessionKey string) (*dto.OrderConfirmation, error) {
	order, err := s.orderRepo.FindBySessionKey(ctx, sessionKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownSession
		}
		return nil, fmt.Errorf("load order: %w", err)
	}

	return orderConfirmation(order), nil
}

// finalize commits the successful payment: order, line items, stock decrement
// and attempt state move together or not at all. Cart clearing and the
// analytics event happen after commit; they are not part of the invariant.
func (s *CheckoutService) finalize(
	ctx context.Context,
	cartStore *cart.Store,
	sessionKey string,
	userID string,
	form *dto.CheckoutForm,
	snapshot cart.Snapshot,
	quote pricing.Quote,
	result *payment.Result,
) (*dto.OrderConfirmation, error) {
	order := &model.Order{
		OrderNumber:    orderNumber(sessionKey),
		SessionKey:     sessionKey,
		UserID:         userID,
		Email:          form.Email,
		Status:         "confirmed",
		PaymentStatus:  "paid",
		PaymentMethod:  string(result.PaymentMethod),
		PaymentID:      result.PaymentID,
		Subtotal:       quote.Subtotal,
		Shipping:       quote.Shipping,
		Tax:            quote.Tax,
		Total:          quote.Total,
		Currency:       quote.Currency,
		ShipFirstName:  form.FirstName,
		ShipLastName:   form.LastName,
		ShipAddress:    form.Address,
		ShipApartment:  form.Apartment,
		ShipCity:       form.City,
		ShipState:      form.State,
		ShipPostalCode: form.PostalCode,
		ShipCountry:    form.Country,
		ShipPhone:      form.Phone,
	}

	items := make([]*model.OrderItem, len(snapshot.Lines))
	for i, line := range snapshot.Lines {
		items[i] = &model.OrderItem{
			OrderNumber: order.OrderNumber,
			ProductID:   line.ProductID,
			Name:        line.Product.Name,
			Size:        line.Size,
			Quantity:    line.Quantity,
			UnitPrice:   line.Product.Price,
			Currency:    quote.Currency,
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		if err := s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
			return fmt.Errorf("create order items: %w", err)
		}
		for _, line := range snapshot.Lines {
			if err := s.productRepo.DecrementStock(ctx, tx, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}
		if err := s.attemptRepo.MarkSucceeded(ctx, tx, sessionKey, result.PaymentID); err != nil {
			return fmt.Errorf("mark attempt succeeded: %w", err)
		}
		return nil
	})
	if err != nil {
		// Payment is captured but the order could not be recorded. Needs a
		// manual refund; log loudly with everything support needs.
		s.logger.Error("finalize order after captured payment",
			zap.String("session_key", sessionKey),
			zap.String("payment_id", result.PaymentID),
			zap.Error(err))
		return nil, fmt.Errorf("finalize order: %w", err)
	}

	cartStore.Clear(ctx)

	if form.NewsletterSignup {
		if err := s.newsletter.Subscribe(ctx, form.Email, form.FirstName); err != nil {
			s.logger.Warn("newsletter signup", zap.String("email", form.Email), zap.Error(err))
		}
	}

	s.producer.PublishOrderPlaced(ctx, &events.OrderPlaced{
		OrderNumber:   order.OrderNumber,
		Email:         order.Email,
		Total:         order.Total,
		Currency:      order.Currency,
		PaymentMethod: order.PaymentMethod,
		ItemCount:     snapshot.TotalItems,
		PlacedAt:      time.Now(),
	})

	s.logger.Info("order placed",
		zap.String("order_number", order.OrderNumber),
		zap.String("payment_method", order.PaymentMethod),
		zap.Float64("total", order.Total))

	return orderConfirmation(order), nil
}

// replay answers a resubmitted session with the original confirmation instead
// of charging again.
func (s *CheckoutService) replay(ctx context.Context, attempt *model.PaymentAttempt) (*dto.SubmitCheckoutResponse, error) {
	order, err := s.orderRepo.FindBySessionKey(ctx, attempt.SessionKey)
	if err != nil {
		return nil, fmt.Errorf("load order for completed session: %w", err)
	}

	return &dto.SubmitCheckoutResponse{
		Status:       "succeeded",
		Confirmation: orderConfirmation(order),
	}, nil
}

// checkStock rejects before charging; the transactional decrement at finalize
// still guards the race. Quantities are summed per product because size
// variants are separate cart lines drawing on the same stock.
func (s *CheckoutService) checkStock(ctx context.Context, snapshot cart.Snapshot) error {
	needed := make(map[string]int)
	names := make(map[string]string)
	ids := make([]string, 0, len(snapshot.Lines))
	for _, line := range snapshot.Lines {
		if _, seen := needed[line.ProductID]; !seen {
			ids = append(ids, line.ProductID)
		}
		needed[line.ProductID] += line.Quantity
		names[line.ProductID] = line.Product.Name
	}

	products, err := s.productRepo.FindMany(ctx, ids)
	if err != nil {
		return fmt.Errorf("load products: %w", err)
	}
	stock := make(map[string]int, len(products))
	for _, p := range products {
		stock[p.ID] = p.StockCount
	}
	for id, quantity := range needed {
		if stock[id] < quantity {
			return fmt.Errorf("insufficient stock for %s", names[id])
		}
	}
	return nil
}

func (s *CheckoutService) paymentRequest(sessionKey string, quote pricing.Quote, form *dto.CheckoutForm) *payment.Request {
	return &payment.Request{
		SessionKey:    sessionKey,
		OrderNumber:   orderNumber(sessionKey),
		AmountMinor:   pricing.MinorUnits(quote.Total),
		Currency:      quote.Currency,
		CustomerName:  strings.TrimSpace(form.FirstName + " " + form.LastName),
		CustomerEmail: form.Email,
		CustomerPhone: form.Phone,
		Description:   "Maison Heritage order " + orderNumber(sessionKey),
	}
}

// ValidateCheckoutForm reports every problem at once, matching the storefront
// form's field-level errors.
func ValidateCheckoutForm(form *dto.CheckoutForm) []string {
	var problems []string

	if !emailPattern.MatchString(form.Email) {
		problems = append(problems, "valid email is required")
	}
	required := []struct {
		value, name string
	}{
		{form.FirstName, "first name"},
		{form.LastName, "last name"},
		{form.Address, "address"},
		{form.City, "city"},
		{form.State, "state"},
		{form.PostalCode, "postal code"},
		{form.Phone, "phone"},
		{form.Country, "country"},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			problems = append(problems, f.name+" is required")
		}
	}

	return problems
}

// orderNumber derives the human-facing number from the session key so the two
// are always correlatable.
func orderNumber(sessionKey string) string {
	fragment := sessionKey
	if len(fragment) > 8 {
		fragment = fragment[:8]
	}
	return "MH-" + strings.ToUpper(fragment)
}

func orderConfirmation(order *model.Order) *dto.OrderConfirmation {
	return &dto.OrderConfirmation{
		OrderNumber:   order.OrderNumber,
		Total:         order.Total,
		Email:         order.Email,
		PaymentID:     order.PaymentID,
		PaymentMethod: order.PaymentMethod,
	}
}

func toQuoteDTO(q pricing.Quote) dto.Quote {
	return dto.Quote{
		Subtotal: q.Subtotal,
		Shipping: q.Shipping,
		Tax:      q.Tax,
		Total:    q.Total,
		Currency: q.Currency,
	}
}
