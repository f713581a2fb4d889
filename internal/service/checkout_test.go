package service

import (
	"context"
	"errors"
	"testing"

	"maison-heritage-store/internal/cart"
	"maison-heritage-store/internal/config"
	"maison-heritage-store/internal/dto"
	"maison-heritage-store/internal/events"
	"maison-heritage-store/internal/model"
	"maison-heritage-store/internal/payment"
	"maison-heritage-store/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type stubProvider struct {
	methods     []payment.Method
	intent      *payment.Intent
	intentErr   error
	result      *payment.Result
	confirmErr  error
	createCalls int
}

func (f *stubProvider) Supports(method payment.Method) bool {
	for _, m := range f.methods {
		if m == method {
			return true
		}
	}
	return false
}

func (f *stubProvider) CreateIntent(ctx context.Context, req *payment.Request) (*payment.Intent, error) {
	f.createCalls++
	return f.intent, f.intentErr
}

func (f *stubProvider) Confirm(ctx context.Context, intent *payment.Intent, conf *payment.Confirmation) (*payment.Result, error) {
	if f.confirmErr != nil {
		return nil, f.confirmErr
	}
	return f.result, nil
}

type testEnv struct {
	db          *gorm.DB
	service     *CheckoutService
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	attemptRepo repository.PaymentAttemptRepository
}

func newTestEnv(t *testing.T, providers ...payment.Provider) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.PaymentAttempt{},
		&model.NewsletterSubscriber{},
	)
	require.NoError(t, err)

	logger := zap.NewNop()
	attemptRepo := repository.NewPaymentAttemptRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	newsletterRepo := repository.NewNewsletterRepository(db)
	manager := payment.NewManager(logger, providers...)
	producer := events.NewProducer(&config.Kafka{}, logger)

	svc := NewCheckoutService(db, attemptRepo, orderRepo, productRepo, newsletterRepo, manager, "rzp_test_key", producer, logger)

	return &testEnv{
		db:          db,
		service:     svc,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		attemptRepo: attemptRepo,
	}
}

func (e *testEnv) seedProduct(t *testing.T, id string, price float64, stock int) model.Product {
	t.Helper()

	p := model.Product{
		ID:         id,
		Name:       "Product " + id,
		Slug:       "product-" + id,
		Price:      price,
		Currency:   "USD",
		Category:   "perfume",
		InStock:    true,
		StockCount: stock,
		IsActive:   true,
	}
	require.NoError(t, e.db.Create(&p).Error)
	return p
}

func validForm() dto.CheckoutForm {
	return dto.CheckoutForm{
		Email:         "amelie@example.com",
		FirstName:     "Amelie",
		LastName:      "Laurent",
		Address:       "12 Rue de Rivoli",
		City:          "Paris",
		State:         "IDF",
		PostalCode:    "75001",
		Phone:         "+33123456789",
		Country:       "FR",
		PaymentMethod: "card",
	}
}

func cardProvider(success bool, errText string) *stubProvider {
	p := &stubProvider{
		methods: []payment.Method{payment.MethodCard},
		intent:  &payment.Intent{ProviderRef: "pi_test", ClientSecret: "pi_test_secret"},
	}
	if success {
		p.result = &payment.Result{Success: true, PaymentID: "pi_test"}
	} else {
		p.result = &payment.Result{Success: false, Err: errText}
	}
	return p
}

func TestStartIssuesSessionAndQuote(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, cardProvider(true, ""))
	product := env.seedProduct(t, "p1", 300, 10)

	store := cart.New("owner-1", nil, zap.NewNop())
	store.AddItem(ctx, product, 2, "")

	resp, err := env.service.Start(ctx, store.Snapshot(), "")
	require.NoError(t, err)

	assert.NotEmpty(t, resp.SessionKey)
	assert.Equal(t, 600.0, resp.Quote.Subtotal)
	assert.Equal(t, 0.0, resp.Quote.Shipping)
	assert.Equal(t, 48.0, resp.Quote.Tax)
	assert.Equal(t, 648.0, resp.Quote.Total)
	assert.Equal(t, []string{"card", "paypal"}, resp.AvailableMethods)

	attempt, err := env.attemptRepo.FindByKey(ctx, resp.SessionKey)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptStatusOpen, attempt.Status)
	assert.Equal(t, 648.0, attempt.Amount)
}

func TestStartEmptyCart(t *testing.T) {
	env := newTestEnv(t)
	store := cart.New("owner-1", nil, zap.NewNop())

	_, err := env.service.Start(context.Background(), store.Snapshot(), "")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestSubmitCardSuccessCreatesOrderAndClearsCart(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, cardProvider(true, ""))
	product := env.seedProduct(t, "p1", 300, 10)

	store := cart.New("owner-1", nil, zap.NewNop())
	store.AddItem(ctx, product, 2, "")

	start, err := env.service.Start(ctx, store.Snapshot(), "")
	require.NoError(t, err)

	resp, err := env.service.Submit(ctx, store, "", &dto.SubmitCheckoutRequest{
		SessionKey:            start.SessionKey,
		Form:                  validForm(),
		StripePaymentMethodID: "pm_card_visa",
	})
	require.NoError(t, err)

	assert.Equal(t, "succeeded", resp.Status)
	require.NotNil(t, resp.Confirmation)
	assert.Contains(t, resp.Confirmation.OrderNumber, "MH-")
	assert.Equal(t, 648.0, resp.Confirmation.Total)
	assert.Equal(t, "pi_test", resp.Confirmation.PaymentID)
	assert.Equal(t, "card", resp.Confirmation.PaymentMethod)

	order, err := env.orderRepo.FindBySessionKey(ctx, start.SessionKey)
	require.NoError(t, err)
	assert.Equal(t, "paid", order.PaymentStatus)

	items, err := env.orderRepo.GetOrderItems(ctx, order.OrderNumber)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)

	updated, err := env.productRepo.FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 8, updated.StockCount)

	assert.Equal(t, 0, store.TotalItems(), "cart must be cleared after success")

	attempt, err := env.attemptRepo.FindByKey(ctx, start.SessionKey)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptStatusSucceeded, attempt.Status)
}

func TestSubmitRecordsSignedInUserOnOrder(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, cardProvider(true, ""))
	product := env.seedProduct(t, "p1", 300, 10)

	store := cart.New("user-42", nil, zap.NewNop())
	store.AddItem(ctx, product, 2, "")

	start, err := env.service.Start(ctx, store.Snapshot(), "")
	require.NoError(t, err)

	resp, err := env.service.Submit(ctx, store, "user-42", &dto.SubmitCheckoutRequest{
		SessionKey:            start.SessionKey,
		Form:                  validForm(),
		StripePaymentMethodID: "pm_card_visa",
	})
	require.NoError(t, err)
	require.Equal(t, "succeeded", resp.Status)

	order, err := env.orderRepo.FindBySessionKey(ctx, start.SessionKey)
	require.NoError(t, err)
	assert.Equal(t, "user-42", order.UserID)

	history, err := env.orderRepo.ListByUser(ctx, "user-42")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, resp.Confirmation.OrderNumber, history[0].OrderNumber)
}

func TestSubmitCardFailureKeepsCart(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, cardProvider(false, "Your card was declined."))
	product := env.seedProduct(t, "p1", 300, 10)

	store := cart.New("owner-1", nil, zap.NewNop())
	store.AddItem(ctx, product, 2, "")

	start, err := env.service.Start(ctx, store.Snapshot(), "")
	require.NoError(t, err)

	resp, err := env.service.Submit(ctx, store, "", &dto.SubmitCheckoutRequest{
		SessionKey:            start.SessionKey,
		Form:                  validForm(),
		StripePaymentMethodID: "pm_card_declined",
	})
	require.NoError(t, err)

	assert.Equal(t, "failed", resp.Status)
	assert.Equal(t, "Your card was declined.", resp.Error)
	assert.Equal(t, 2, store.TotalItems(), "failed payment must not touch the cart")

	_, err = env.orderRepo.FindBySessionKey(ctx, start.SessionKey)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	updated, err := env.productRepo.FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, updated.StockCount, "stock must be untouched on failure")

	attempt, err := env.attemptRepo.FindByKey(ctx, start.SessionKey)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptStatusFailed, attempt.Status)
}

func TestSubmitReplaysCompletedSession(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, cardProvider(true, ""))
	product := env.seedProduct(t, "p1", 300, 10)

	store := cart.New("owner-1", nil, zap.NewNop())
	store.AddItem(ctx, product, 2, "")

	start, err := env.service.Start(ctx, store.Snapshot(), "")
	require.NoError(t, err)

	req := &dto.SubmitCheckoutRequest{
		SessionKey:            start.SessionKey,
		Form:                  validForm(),
		StripePaymentMethodID: "pm_card_visa",
	}

	first, err := env.service.Submit(ctx, store, "", req)
	require.NoError(t, err)
	require.Equal(t, "succeeded", first.Status)

	second, err := env.service.Submit(ctx, store, "", req)
	require.NoError(t, err)

	assert.Equal(t, "succeeded", second.Status)
	assert.Equal(t, first.Confirmation.OrderNumber, second.Confirmation.OrderNumber)

	updated, err := env.productRepo.FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 8, updated.StockCount, "replay must not decrement stock again")
}

func TestSubmitUnknownSession(t *testing.T) {
	env := newTestEnv(t, cardProvider(true, ""))
	store := cart.New("owner-1", nil, zap.NewNop())

	_, err := env.service.Submit(context.Background(), store, "", &dto.SubmitCheckoutRequest{
		SessionKey: "no-such-session",
		Form:       validForm(),
	})
	assert.ErrorIs(t, err, ErrUnknownSession)
}

func TestSubmitRejectsChangedCart(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, cardProvider(true, ""))
	product := env.seedProduct(t, "p1", 300, 10)

	store := cart.New("owner-1", nil, zap.NewNop())
	store.AddItem(ctx, product, 2, "")

	start, err := env.service.Start(ctx, store.Snapshot(), "")
	require.NoError(t, err)

	store.AddItem(ctx, product, 1, "")

	_, err = env.service.Submit(ctx, store, "", &dto.SubmitCheckoutRequest{
		SessionKey:            start.SessionKey,
		Form:                  validForm(),
		StripePaymentMethodID: "pm_card_visa",
	})
	assert.ErrorIs(t, err, ErrCartChanged)
}

func TestSubmitValidatesForm(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, cardProvider(true, ""))
	product := env.seedProduct(t, "p1", 300, 10)

	store := cart.New("owner-1", nil, zap.NewNop())
	store.AddItem(ctx, product, 1, "")

	start, err := env.service.Start(ctx, store.Snapshot(), "")
	require.NoError(t, err)

	form := validForm()
	form.Email = "not-an-email"
	form.City = ""

	_, err = env.service.Submit(ctx, store, "", &dto.SubmitCheckoutRequest{
		SessionKey: start.SessionKey,
		Form:       form,
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Problems, "valid email is required")
	assert.Contains(t, validationErr.Problems, "city is required")
}

func TestSubmitInsufficientStockFailsBeforeCharging(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, cardProvider(true, ""))
	product := env.seedProduct(t, "p1", 300, 1)

	store := cart.New("owner-1", nil, zap.NewNop())
	store.AddItem(ctx, product, 2, "")

	start, err := env.service.Start(ctx, store.Snapshot(), "")
	require.NoError(t, err)

	resp, err := env.service.Submit(ctx, store, "", &dto.SubmitCheckoutRequest{
		SessionKey:            start.SessionKey,
		Form:                  validForm(),
		StripePaymentMethodID: "pm_card_visa",
	})
	require.NoError(t, err)

	assert.Equal(t, "failed", resp.Status)
	assert.Contains(t, resp.Error, "insufficient stock")
}

func TestSubmitInsufficientStockAcrossSizeLines(t *testing.T) {
	ctx := context.Background()
	provider := cardProvider(true, "")
	env := newTestEnv(t, provider)
	product := env.seedProduct(t, "p1", 300, 4)

	// Two size lines of the same product; each fits the stock on its own,
	// together they exceed it.
	store := cart.New("owner-1", nil, zap.NewNop())
	store.AddItem(ctx, product, 3, "50ml")
	store.AddItem(ctx, product, 3, "100ml")

	start, err := env.service.Start(ctx, store.Snapshot(), "")
	require.NoError(t, err)

	resp, err := env.service.Submit(ctx, store, "", &dto.SubmitCheckoutRequest{
		SessionKey:            start.SessionKey,
		Form:                  validForm(),
		StripePaymentMethodID: "pm_card_visa",
	})
	require.NoError(t, err)

	assert.Equal(t, "failed", resp.Status)
	assert.Contains(t, resp.Error, "insufficient stock")

	_, err = env.orderRepo.FindBySessionKey(ctx, start.SessionKey)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	updated, err := env.productRepo.FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 4, updated.StockCount)
	assert.Zero(t, provider.createCalls, "provider must not be reached when stock cannot cover the cart")
}

func TestStartCountryHintWidensMethods(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, cardProvider(true, ""))
	product := env.seedProduct(t, "p1", 300, 10)

	store := cart.New("owner-1", nil, zap.NewNop())
	store.AddItem(ctx, product, 1, "")

	// USD cart, but the shopper is known to be in India: the regional methods
	// show up at checkout-start, matching what Submit would accept.
	resp, err := env.service.Start(ctx, store.Snapshot(), "IN")
	require.NoError(t, err)

	assert.Equal(t, []string{"card", "upi", "wallet", "bank-transfer", "paypal"}, resp.AvailableMethods)
}

func TestRazorpayOverlayFlow(t *testing.T) {
	ctx := context.Background()
	razorpay := &stubProvider{
		methods: []payment.Method{payment.MethodUPI, payment.MethodWallet, payment.MethodBankTransfer},
		intent:  &payment.Intent{ProviderRef: "order_rzp1"},
		result:  &payment.Result{Success: true, PaymentID: "pay_rzp1"},
	}
	env := newTestEnv(t, razorpay)

	product := env.seedProduct(t, "p1", 10000, 5)

	store := cart.New("owner-1", nil, zap.NewNop())
	store.SetCurrency(ctx, "INR")
	store.AddItem(ctx, product, 1, "")

	start, err := env.service.Start(ctx, store.Snapshot(), "")
	require.NoError(t, err)

	form := validForm()
	form.Country = "IN"
	form.PaymentMethod = "upi"

	resp, err := env.service.Submit(ctx, store, "", &dto.SubmitCheckoutRequest{
		SessionKey: start.SessionKey,
		Form:       form,
	})
	require.NoError(t, err)

	require.Equal(t, "requires_overlay", resp.Status)
	require.NotNil(t, resp.Razorpay)
	assert.Equal(t, "rzp_test_key", resp.Razorpay.Key)
	assert.Equal(t, "order_rzp1", resp.Razorpay.OrderID)
	assert.Equal(t, "INR", resp.Razorpay.Currency)
	assert.Equal(t, int64(1080000), resp.Razorpay.Amount)
	assert.Equal(t, 1, store.TotalItems(), "cart stays until the overlay completes")

	verify, err := env.service.VerifyRazorpay(ctx, store, "", &dto.RazorpayVerifyRequest{
		SessionKey:        start.SessionKey,
		RazorpayPaymentID: "pay_rzp1",
		RazorpayOrderID:   "order_rzp1",
		RazorpaySignature: "sig",
	})
	require.NoError(t, err)

	assert.Equal(t, "succeeded", verify.Status)
	require.NotNil(t, verify.Confirmation)
	assert.Equal(t, "pay_rzp1", verify.Confirmation.PaymentID)
	assert.Equal(t, "upi", verify.Confirmation.PaymentMethod)
	assert.Equal(t, 0, store.TotalItems())

	updated, err := env.productRepo.FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 4, updated.StockCount)
}

func TestVerifyRazorpaySignatureFailure(t *testing.T) {
	ctx := context.Background()
	razorpay := &stubProvider{
		methods:    []payment.Method{payment.MethodUPI, payment.MethodWallet, payment.MethodBankTransfer},
		intent:     &payment.Intent{ProviderRef: "order_rzp1"},
		confirmErr: errors.New("payment verification failed"),
	}
	env := newTestEnv(t, razorpay)
	product := env.seedProduct(t, "p1", 10000, 5)

	store := cart.New("owner-1", nil, zap.NewNop())
	store.SetCurrency(ctx, "INR")
	store.AddItem(ctx, product, 1, "")

	start, err := env.service.Start(ctx, store.Snapshot(), "")
	require.NoError(t, err)

	form := validForm()
	form.Country = "IN"
	form.PaymentMethod = "upi"

	resp, err := env.service.Submit(ctx, store, "", &dto.SubmitCheckoutRequest{
		SessionKey: start.SessionKey,
		Form:       form,
	})
	require.NoError(t, err)
	require.Equal(t, "requires_overlay", resp.Status)

	verify, err := env.service.VerifyRazorpay(ctx, store, "", &dto.RazorpayVerifyRequest{
		SessionKey:        start.SessionKey,
		RazorpayPaymentID: "pay_rzp1",
		RazorpayOrderID:   "order_rzp1",
		RazorpaySignature: "tampered",
	})
	require.NoError(t, err)

	assert.Equal(t, "failed", verify.Status)
	assert.Equal(t, "payment verification failed", verify.Error)
	assert.Equal(t, 1, store.TotalItems())
}

func TestSubmitFallsBackWhenMethodUnavailable(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, cardProvider(true, ""))
	product := env.seedProduct(t, "p1", 300, 10)

	store := cart.New("owner-1", nil, zap.NewNop())
	store.AddItem(ctx, product, 1, "")

	start, err := env.service.Start(ctx, store.Snapshot(), "")
	require.NoError(t, err)

	// upi is not offered for a USD cart outside India; checkout falls back to
	// the first available method instead of erroring.
	form := validForm()
	form.PaymentMethod = "upi"

	resp, err := env.service.Submit(ctx, store, "", &dto.SubmitCheckoutRequest{
		SessionKey:            start.SessionKey,
		Form:                  form,
		StripePaymentMethodID: "pm_card_visa",
	})
	require.NoError(t, err)

	assert.Equal(t, "succeeded", resp.Status)
	assert.Equal(t, "card", resp.Confirmation.PaymentMethod)
}
