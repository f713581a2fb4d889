package cart

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"maison-heritage-store/internal/model"
	"maison-heritage-store/internal/repository"

	"go.uber.org/zap"
)

// Line is one cart entry, keyed by (ProductID, Size). The product is a
// snapshot taken at add time; later catalog edits do not reprice it.
type Line struct {
	ProductID string        `json:"product_id"`
	Size      string        `json:"size,omitempty"`
	Product   model.Product `json:"product"`
	Quantity  int           `json:"quantity"`
	AddedAt   time.Time     `json:"added_at"`
}

// Snapshot is an immutable copy handed to checkout.
type Snapshot struct {
	Lines      []Line
	TotalItems int
	TotalPrice float64
	Currency   string
}

// Hash fingerprints the snapshot so a checkout session can be pinned to the
// exact cart contents it was started for.
func (s Snapshot) Hash() string {
	type hashLine struct {
		ProductID string  `json:"p"`
		Size      string  `json:"s,omitempty"`
		Quantity  int     `json:"q"`
		UnitPrice float64 `json:"u"`
	}
	lines := make([]hashLine, len(s.Lines))
	for i, l := range s.Lines {
		lines[i] = hashLine{ProductID: l.ProductID, Size: l.Size, Quantity: l.Quantity, UnitPrice: l.Product.Price}
	}
	raw, _ := json.Marshal(struct {
		Lines    []hashLine `json:"l"`
		Currency string     `json:"c"`
	}{lines, s.Currency})

	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// Store holds one owner's cart with derived totals. Construct one per owner;
// there is no package-level instance.
type Store struct {
	mu sync.Mutex

	ownerID    string
	currency   string
	lines      []Line
	isOpen     bool
	totalItems int
	totalPrice float64

	repo   repository.CartRepository // nil means in-memory only
	logger *zap.Logger
}

func New(ownerID string, repo repository.CartRepository, logger *zap.Logger) *Store {
	return &Store{
		ownerID:  ownerID,
		currency: "USD",
		repo:     repo,
		logger:   logger,
	}
}

// Load restores the persisted snapshot for an owner, or returns a fresh store
// when none exists.
func Load(ctx context.Context, ownerID string, repo repository.CartRepository, logger *zap.Logger) (*Store, error) {
	s := New(ownerID, repo, logger)
	if repo == nil {
		return s, nil
	}

	record, found, err := repo.Load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !found {
		return s, nil
	}

	var lines []Line
	if err := json.Unmarshal([]byte(record.ItemsJSON), &lines); err != nil {
		return nil, err
	}
	s.lines = lines
	if record.Currency != "" {
		s.currency = record.Currency
	}
	s.recompute()
	return s, nil
}

// AddItem merges into an existing (productID, size) line or appends a new one
// with a product snapshot, then opens the drawer.
func (s *Store) AddItem(ctx context.Context, product model.Product, quantity int, size string) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	if i := s.indexOf(product.ID, size); i >= 0 {
		s.lines[i].Quantity += quantity
	} else {
		s.lines = append(s.lines, Line{
			ProductID: product.ID,
			Size:      size,
			Product:   product,
			Quantity:  quantity,
			AddedAt:   time.Now(),
		})
	}
	s.recompute()
	s.isOpen = true
	s.mu.Unlock()

	s.flush(ctx)
}

// RemoveItem deletes the matching line; a missing line is a no-op.
func (s *Store) RemoveItem(ctx context.Context, productID, size string) {
	s.mu.Lock()
	if i := s.indexOf(productID, size); i >= 0 {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
		s.recompute()
	}
	s.mu.Unlock()

	s.flush(ctx)
}

// UpdateQuantity sets the line's quantity exactly; zero or less removes the
// line.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int, size string) {
	if quantity <= 0 {
		s.RemoveItem(ctx, productID, size)
		return
	}

	s.mu.Lock()
	if i := s.indexOf(productID, size); i >= 0 {
		s.lines[i].Quantity = quantity
		s.recompute()
	}
	s.mu.Unlock()

	s.flush(ctx)
}

func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.lines = nil
	s.isOpen = false
	s.recompute()
	s.mu.Unlock()

	if s.repo == nil {
		return
	}
	if err := s.repo.Delete(ctx, s.ownerID); err != nil {
		s.logger.Error("delete cart", zap.String("owner_id", s.ownerID), zap.Error(err))
	}
}

// Toggle flips the drawer flag. UI state only, never persisted.
func (s *Store) Toggle() {
	s.mu.Lock()
	s.isOpen = !s.isOpen
	s.mu.Unlock()
}

func (s *Store) SetCurrency(ctx context.Context, currency string) {
	s.mu.Lock()
	s.currency = currency
	s.mu.Unlock()

	s.flush(ctx)
}

func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalItems
}

func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalPrice
}

func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isOpen
}

func (s *Store) Currency() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currency
}

// ItemCount reports the quantity held for one (productID, size) key.
func (s *Store) ItemCount(productID, size string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(productID, size); i >= 0 {
		return s.lines[i].Quantity
	}
	return 0
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]Line, len(s.lines))
	copy(lines, s.lines)
	return Snapshot{
		Lines:      lines,
		TotalItems: s.totalItems,
		TotalPrice: s.totalPrice,
		Currency:   s.currency,
	}
}

func (s *Store) indexOf(productID, size string) int {
	for i, l := range s.lines {
		if l.ProductID == productID && l.Size == size {
			return i
		}
	}
	return -1
}

// recompute derives totals from the line set; totals are never mutated
// independently. The charged price is Product.Price.
func (s *Store) recompute() {
	items := 0
	price := 0.0
	for _, l := range s.lines {
		items += l.Quantity
		price += l.Product.Price * float64(l.Quantity)
	}
	s.totalItems = items
	s.totalPrice = price
}

// flush persists the snapshot. Storage failures do not fail the mutation;
// they are logged and the in-memory cart stays authoritative.
func (s *Store) flush(ctx context.Context) {
	if s.repo == nil {
		return
	}

	s.mu.Lock()
	raw, err := json.Marshal(s.lines)
	record := &model.CartRecord{
		OwnerID:  s.ownerID,
		Currency: s.currency,
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("marshal cart lines", zap.String("owner_id", s.ownerID), zap.Error(err))
		return
	}
	record.ItemsJSON = string(raw)

	if err := s.repo.Save(ctx, record); err != nil {
		s.logger.Error("persist cart", zap.String("owner_id", s.ownerID), zap.Error(err))
	}
}
