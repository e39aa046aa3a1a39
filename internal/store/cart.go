package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/MadhaSivanandaReddy/ShopHub/internal/blob"
	"github.com/MadhaSivanandaReddy/ShopHub/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StockPolicy controls whether cart quantities are bounded by the
// denormalized stock a line was created with.
type StockPolicy int

const (
	// StockAdvisory replicates the storefront's observed behavior: the
	// increment and update paths accept any positive quantity and stock is
	// enforced at checkout by an external collaborator.
	StockAdvisory StockPolicy = iota

	// StockEnforced clamps quantities to the line's denormalized stock on
	// every mutation path.
	StockEnforced
)

// CartStore owns the cart lines and their derived totals. Every mutation
// produces exactly one new snapshot, one persistence write and one publish;
// there is no partial-update visibility.
type CartStore struct {
	logger *zap.Logger
	blobs  blob.Store
	policy StockPolicy

	mu    sync.RWMutex
	items []domain.CartLine
	pub   publisher[domain.Cart]
}

// CartOption customizes a CartStore.
type CartOption func(*CartStore)

// WithStockPolicy selects how quantity mutations treat the denormalized
// stock bound. The default is StockAdvisory.
func WithStockPolicy(policy StockPolicy) CartOption {
	return func(s *CartStore) { s.policy = policy }
}

// NewCart creates a cart store and restores its prior snapshot from the blob
// store. A missing blob means an empty cart; an unparseable blob is logged,
// cleared and likewise treated as empty.
func NewCart(ctx context.Context, blobs blob.Store, logger *zap.Logger, opts ...CartOption) *CartStore {
	s := &CartStore{
		logger: logger,
		blobs:  blobs,
		policy: StockAdvisory,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.restore(ctx)
	return s
}

func (s *CartStore) restore(ctx context.Context) {
	raw, err := s.blobs.Get(ctx, blob.KeyCart)
	if err != nil {
		if err != blob.ErrNotFound {
			s.logger.Warn("Failed to read persisted cart, starting empty", zap.Error(err))
		}
		return
	}

	var items []domain.CartLine
	if err := json.Unmarshal(raw, &items); err != nil {
		s.logger.Warn("Persisted cart is corrupt, resetting to empty", zap.Error(err))
		if err := s.blobs.Delete(ctx, blob.KeyCart); err != nil {
			s.logger.Warn("Failed to clear corrupt cart blob", zap.Error(err))
		}
		return
	}

	s.items = items
}

// Subscribe registers fn for cart snapshot notifications and returns an
// unsubscribe function.
func (s *CartStore) Subscribe(fn Subscriber[domain.Cart]) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cancel := s.pub.subscribe(fn)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		cancel()
	}
}

// AddItem adds quantity units of the product to the cart. If a line for the
// product already exists its quantity is incremented; otherwise a new line
// is created with the product's display fields denormalized into it.
// Quantities below one count as one.
func (s *CartStore) AddItem(ctx context.Context, product domain.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	items := copyLines(s.items)

	idx := -1
	for i, line := range items {
		if line.ProductID == product.ID {
			idx = i
			break
		}
	}

	if idx >= 0 {
		next := items[idx].Quantity + quantity
		if s.policy == StockEnforced && next > items[idx].Stock {
			next = items[idx].Stock
		}
		if next < 1 {
			// Clamping against a zero-stock line: a line at zero is
			// removed, never retained.
			items = append(items[:idx], items[idx+1:]...)
		} else {
			items[idx].Quantity = next
		}
	} else {
		if s.policy == StockEnforced {
			if product.Stock < 1 {
				s.mu.Unlock()
				s.logger.Debug("Ignoring add of out-of-stock product",
					zap.String("product_id", product.ID.String()))
				return
			}
			if quantity > product.Stock {
				quantity = product.Stock
			}
		}
		items = append(items, domain.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			ImageURL:  product.ImageURL,
			Stock:     product.Stock,
			Quantity:  quantity,
		})
	}

	s.commitLocked(ctx, items)
}

// RemoveItem removes the line for the product, if present. Removing an
// unknown product is a no-op.
func (s *CartStore) RemoveItem(ctx context.Context, productID uuid.UUID) {
	s.mu.Lock()

	idx := -1
	for i, line := range s.items {
		if line.ProductID == productID {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return
	}

	items := copyLines(s.items)
	items = append(items[:idx], items[idx+1:]...)
	s.commitLocked(ctx, items)
}

// SetQuantity replaces the line's quantity. A quantity of zero or less
// removes the line; an unknown product is a no-op.
func (s *CartStore) SetQuantity(ctx context.Context, productID uuid.UUID, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(ctx, productID)
		return
	}

	s.mu.Lock()

	idx := -1
	for i, line := range s.items {
		if line.ProductID == productID {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return
	}

	items := copyLines(s.items)
	if s.policy == StockEnforced && quantity > items[idx].Stock {
		quantity = items[idx].Stock
	}
	if quantity < 1 {
		items = append(items[:idx], items[idx+1:]...)
	} else {
		items[idx].Quantity = quantity
	}
	s.commitLocked(ctx, items)
}

// Clear empties the cart. Clearing an already-empty cart is a no-op.
func (s *CartStore) Clear(ctx context.Context) {
	s.mu.Lock()
	if len(s.items) == 0 {
		s.mu.Unlock()
		return
	}
	s.commitLocked(ctx, []domain.CartLine{})
}

// Snapshot returns the cart with its totals computed live from the lines.
func (s *CartStore) Snapshot() domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.NewCart(copyLines(s.items))
}

// Contains reports whether the product has a line in the cart.
func (s *CartStore) Contains(productID uuid.UUID) bool {
	return s.QuantityOf(productID) > 0
}

// QuantityOf returns the quantity of the product's line, or zero if absent.
func (s *CartStore) QuantityOf(productID uuid.UUID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, line := range s.items {
		if line.ProductID == productID {
			return line.Quantity
		}
	}
	return 0
}

// commitLocked swaps in the new line slice, persists it and publishes the
// derived cart. The caller must hold the write lock; commitLocked releases
// it. Persistence happens before publish so a subscriber that reads back
// never observes a snapshot whose persisted copy is older.
func (s *CartStore) commitLocked(ctx context.Context, items []domain.CartLine) {
	s.items = items
	snapshot := domain.NewCart(copyLines(items))
	subs := s.pub.snapshot()
	s.mu.Unlock()

	raw, err := json.Marshal(items)
	if err != nil {
		s.logger.Warn("Failed to encode cart for persistence", zap.Error(err))
	} else if err := s.blobs.Set(ctx, blob.KeyCart, raw); err != nil {
		s.logger.Warn("Failed to persist cart", zap.Error(err))
	}

	deliver(subs, snapshot)
}

func copyLines(items []domain.CartLine) []domain.CartLine {
	out := make([]domain.CartLine, len(items))
	copy(out, items)
	return out
}
