package dto

type AddCartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
}

type UpdateCartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
}

type CartLine struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Brand     string  `json:"brand"`
	ImageURL  string  `json:"image_url"`
	Size      string  `json:"size,omitempty"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
	AddedAt   string  `json:"added_at"`
}

type CartResponse struct {
	Items      []CartLine `json:"items"`
	TotalItems int        `json:"total_items"`
	TotalPrice float64    `json:"total_price"`
	Currency   string     `json:"currency"`
	IsOpen     bool       `json:"is_open"`
}

// CheckoutForm mirrors the storefront checkout form. Card details never appear
// here; the hosted payment element collects them.
type CheckoutForm struct {
	Email                 string `json:"email"`
	FirstName             string `json:"first_name"`
	LastName              string `json:"last_name"`
	Address               string `json:"address"`
	Apartment             string `json:"apartment"`
	City                  string `json:"city"`
	State                 string `json:"state"`
	PostalCode            string `json:"postal_code"`
	Phone                 string `json:"phone"`
	Country               string `json:"country"`
	Currency              string `json:"currency"`
	PaymentMethod         string `json:"payment_method"`
	BillingSameAsShipping bool   `json:"billing_same_as_shipping"`
	NewsletterSignup      bool   `json:"newsletter_signup"`
}

type Quote struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
}

type StartCheckoutResponse struct {
	SessionKey       string   `json:"session_key"`
	Quote            Quote    `json:"quote"`
	AvailableMethods []string `json:"available_methods"`
}

type SubmitCheckoutRequest struct {
	SessionKey string       `json:"session_key"`
	Form       CheckoutForm `json:"form"`
	// Stripe payment method id produced by the card widget; card path only.
	StripePaymentMethodID string `json:"stripe_payment_method_id"`
}

type RazorpayVerifyRequest struct {
	SessionKey        string `json:"session_key"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

type RazorpayPrefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

// RazorpayCheckoutOptions is handed back to the client to open the hosted
// checkout overlay.
type RazorpayCheckoutOptions struct {
	Key      string          `json:"key"`
	Amount   int64           `json:"amount"` // minor units
	Currency string          `json:"currency"`
	OrderID  string          `json:"order_id"`
	Prefill  RazorpayPrefill `json:"prefill"`
}

type OrderConfirmation struct {
	OrderNumber   string  `json:"order_number"`
	Total         float64 `json:"total"`
	Email         string  `json:"email"`
	PaymentID     string  `json:"payment_id"`
	PaymentMethod string  `json:"payment_method"`
}

// SubmitCheckoutResponse is terminal for card and paypal; the razorpay family
// returns the overlay options and finishes through the verify endpoint.
type SubmitCheckoutResponse struct {
	Status       string                   `json:"status"` // succeeded, failed, requires_overlay
	Confirmation *OrderConfirmation       `json:"confirmation,omitempty"`
	Razorpay     *RazorpayCheckoutOptions `json:"razorpay,omitempty"`
	Error        string                   `json:"error,omitempty"`
}

type SignUpRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

type ChatRequest struct {
	Message  string `json:"message"`
	Language string `json:"language"` // en, hi, mr
}

type QuickReply struct {
	Text   string `json:"text"`
	Action string `json:"action"`
}

type ProductSuggestion struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Reason    string  `json:"reason"`
}

type ChatResponse struct {
	Message      string              `json:"message"`
	Intent       string              `json:"intent"`
	Language     string              `json:"language"`
	QuickReplies []QuickReply        `json:"quick_replies,omitempty"`
	Suggestions  []ProductSuggestion `json:"suggestions,omitempty"`
}

type CreateReviewRequest struct {
	ProductID string `json:"product_id"`
	Rating    int    `json:"rating"`
	Title     string `json:"title"`
	Content   string `json:"content"`
}

type NewsletterRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
}
