package model

import "time"

// Price is the amount charged. OriginalPrice, when set, is the pre-discount
// reference shown struck through in the storefront and never enters totals.
type Product struct {
	ID               string  `gorm:"primaryKey;size:64;not null" json:"id"`
	Name             string  `gorm:"size:255;not null" json:"name"`
	Brand            string  `gorm:"size:128;index" json:"brand"`
	Description      string  `gorm:"type:text" json:"description"`
	ShortDescription string  `gorm:"size:512" json:"shortDescription"`
	Price            float64 `gorm:"not null" json:"price"`
	OriginalPrice    float64 `json:"originalPrice,omitempty"`
	Currency         string  `gorm:"size:8;not null" json:"currency"`
	Category         string  `gorm:"size:32;index;not null" json:"category"` // perfume, watch, limited-edition
	ImageURL         string  `gorm:"size:512" json:"imageUrl"`
	SKU              string  `gorm:"size:64" json:"sku"`
	Slug             string  `gorm:"size:128;uniqueIndex;not null" json:"slug"`
	Tags             string  `gorm:"size:512" json:"tags"` // comma separated
	InStock          bool    `gorm:"not null" json:"inStock"`
	StockCount       int     `gorm:"not null" json:"stockCount"`
	IsLimitedEdition bool    `json:"isLimitedEdition"`
	IsNewArrival     bool    `json:"isNewArrival"`
	IsBestseller     bool    `json:"isBestseller"`
	Rating           float64 `json:"rating"`
	ReviewCount      int     `json:"reviewCount"`
	IsActive         bool    `gorm:"index;not null;default:true" json:"-"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type User struct {
	ID           string `gorm:"primaryKey;size:64;not null"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:128;not null"`
	FirstName    string `gorm:"size:128"`
	LastName     string `gorm:"size:128"`
	Role         string `gorm:"size:32;index;not null"` // customer, admin, editor
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Order struct {
	OrderNumber   string  `gorm:"primaryKey;size:64;not null"` // MH-<session key fragment>
	SessionKey    string  `gorm:"size:64;uniqueIndex;not null"`
	UserID        string  `gorm:"size:64;index"`
	Email         string  `gorm:"size:255;index;not null"`
	Status        string  `gorm:"size:32;index;not null"` // pending, confirmed, shipped, delivered, cancelled
	PaymentStatus string  `gorm:"size:32;index;not null"` // pending, paid, failed
	PaymentMethod string  `gorm:"size:32;not null"`
	PaymentID     string  `gorm:"size:128"` // provider reference
	Subtotal      float64 `gorm:"not null"`
	Shipping      float64 `gorm:"not null"`
	Tax           float64 `gorm:"not null"`
	Total         float64 `gorm:"not null"`
	Currency      string  `gorm:"size:8;not null"`

	ShipFirstName  string `gorm:"size:128"`
	ShipLastName   string `gorm:"size:128"`
	ShipAddress    string `gorm:"size:255"`
	ShipApartment  string `gorm:"size:128"`
	ShipCity       string `gorm:"size:128"`
	ShipState      string `gorm:"size:128"`
	ShipPostalCode string `gorm:"size:32"`
	ShipCountry    string `gorm:"size:8"`
	ShipPhone      string `gorm:"size:32"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrderItem struct {
	ID          uint   `gorm:"primaryKey"`
	OrderNumber string `gorm:"size:64;index;not null"`
	ProductID   string `gorm:"size:64;index;not null"`
	Name        string `gorm:"size:255;not null"`
	Size        string `gorm:"size:32"`
	Quantity    int    `gorm:"not null"`
	UnitPrice   float64
	Currency    string `gorm:"size:8;not null"`
	CreatedAt   time.Time
}

// PaymentAttempt rows are keyed by the server-issued checkout session key so a
// resubmitted checkout is detectable instead of minting a fresh order id.
type PaymentAttempt struct {
	SessionKey  string  `gorm:"primaryKey;size:64;not null"`
	CartHash    string  `gorm:"size:64;not null"`
	Amount      float64 `gorm:"not null"`
	Currency    string  `gorm:"size:8"`
	Method      string  `gorm:"size:32"`
	Status      string  `gorm:"size:32;index;not null"` // open, pending, succeeded, failed
	ProviderRef string  `gorm:"size:128"`               // provider-side intent/order id
	FormJSON    string  `gorm:"type:text"`              // checkout form, kept for overlay flows that finish later
	ErrorText   string  `gorm:"size:512"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const (
	AttemptStatusOpen      = "open"
	AttemptStatusPending   = "pending"
	AttemptStatusSucceeded = "succeeded"
	AttemptStatusFailed    = "failed"
)

// CartRecord persists a cart snapshot per owner (user id or anonymous device
// key) so the cart survives restarts. Last writer wins, no merge.
type CartRecord struct {
	OwnerID   string `gorm:"primaryKey;size:64;not null"`
	ItemsJSON string `gorm:"type:text;not null"`
	Currency  string `gorm:"size:8;not null"`
	UpdatedAt time.Time
}

type Review struct {
	ID                 uint   `gorm:"primaryKey"`
	ProductID          string `gorm:"size:64;index;not null"`
	UserID             string `gorm:"size:64;index;not null"`
	Rating             int    `gorm:"not null"` // 1-5
	Title              string `gorm:"size:255"`
	Content            string `gorm:"type:text"`
	IsVerifiedPurchase bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type WishlistItem struct {
	UserID    string `gorm:"primaryKey;size:64;not null"`
	ProductID string `gorm:"primaryKey;size:64;not null"`
	CreatedAt time.Time
}

type AdminLog struct {
	ID           uint   `gorm:"primaryKey"`
	AdminID      string `gorm:"size:64;index;not null"`
	Action       string `gorm:"size:64;not null"`
	ResourceType string `gorm:"size:64;not null"`
	ResourceID   string `gorm:"size:64"`
	Details      string `gorm:"type:text"`
	CreatedAt    time.Time
}

type NewsletterSubscriber struct {
	Email        string `gorm:"primaryKey;size:255;not null"`
	FirstName    string `gorm:"size:128"`
	IsActive     bool   `gorm:"not null;default:true"`
	SubscribedAt time.Time
}

type WebhookEvent struct {
	EventID     string `gorm:"primaryKey;size:128;uniqueIndex;not null"`
	EventType   string `gorm:"size:64;index"`
	ProcessedAt time.Time
	CreatedAt   time.Time
}
