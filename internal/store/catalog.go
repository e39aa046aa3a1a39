package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MadhaSivanandaReddy/ShopHub/internal/domain"
	"github.com/MadhaSivanandaReddy/ShopHub/internal/source"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogStore owns the product collection and exposes read-only derived
// views over immutable snapshots. Mutations go through Create, Update and
// Delete only.
type CatalogStore struct {
	logger *zap.Logger
	now    func() time.Time
	newID  func() uuid.UUID

	mu       sync.RWMutex
	products []domain.Product
	pub      publisher[[]domain.Product]
}

// CatalogOption customizes a CatalogStore.
type CatalogOption func(*CatalogStore)

// WithCatalogClock overrides the timestamp source, mainly for tests.
func WithCatalogClock(now func() time.Time) CatalogOption {
	return func(s *CatalogStore) { s.now = now }
}

// WithCatalogIDs overrides id generation, mainly for tests.
func WithCatalogIDs(newID func() uuid.UUID) CatalogOption {
	return func(s *CatalogStore) { s.newID = newID }
}

// NewCatalog creates an empty catalog store.
func NewCatalog(logger *zap.Logger, opts ...CatalogOption) *CatalogStore {
	s := &CatalogStore{
		logger: logger,
		now:    time.Now,
		newID:  uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the collection with the products fetched from src. If ctx is
// cancelled before the result can be committed, nothing is applied: a fetch
// commits at most once and never after cancellation is observed.
func (s *CatalogStore) Load(ctx context.Context, src source.ProductSource) error {
	products, err := src.FetchProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("catalog load abandoned: %w", err)
	}

	s.mu.Lock()
	s.products = products
	snapshot, subs := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Info("Catalog loaded", zap.Int("products", len(products)))
	deliver(subs, snapshot)
	return nil
}

// Subscribe registers fn for full-snapshot notifications and returns an
// unsubscribe function.
func (s *CatalogStore) Subscribe(fn Subscriber[[]domain.Product]) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cancel := s.pub.subscribe(fn)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		cancel()
	}
}

// List returns the full current snapshot in insertion order.
func (s *CatalogStore) List() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyProducts(s.products)
}

// Get returns the product with the given id, if present.
func (s *CatalogStore) Get(id uuid.UUID) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// ByCategory returns products whose category matches, ignoring case.
func (s *CatalogStore) ByCategory(category string) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Product{}
	for _, p := range s.products {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

// Search returns products whose name or description contains the query,
// ignoring case. Source order is preserved; there is no ranking.
func (s *CatalogStore) Search(query string) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return searchProducts(s.products, query)
}

// Featured returns the products flagged as featured.
func (s *CatalogStore) Featured() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Product{}
	for _, p := range s.products {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the distinct categories in first-seen order.
func (s *CatalogStore) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	out := []string{}
	for _, p := range s.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

// Create validates the request, assigns a fresh id and timestamps, appends
// the product and publishes the new snapshot.
func (s *CatalogStore) Create(req domain.CreateProductRequest) (domain.Product, error) {
	if err := domain.Validate(req); err != nil {
		return domain.Product{}, err
	}

	now := s.now()
	product := domain.Product{
		ID:          s.newID(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Stock:       req.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}

	s.mu.Lock()
	s.products = append(s.products, product)
	snapshot, subs := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Info("Product created",
		zap.String("id", product.ID.String()),
		zap.String("name", product.Name),
	)
	deliver(subs, snapshot)
	return product, nil
}

// Update merges the non-nil request fields into the existing product and
// stamps UpdatedAt. An absent id is an error, never a silent no-op.
func (s *CatalogStore) Update(id uuid.UUID, req domain.UpdateProductRequest) (domain.Product, error) {
	if err := domain.Validate(req); err != nil {
		return domain.Product{}, err
	}

	s.mu.Lock()
	idx := -1
	for i, p := range s.products {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return domain.Product{}, &domain.NotFoundError{Entity: "product", ID: id.String()}
	}

	updated := s.products[idx]
	req.ApplyTo(&updated)
	updated.UpdatedAt = s.now()
	s.products[idx] = updated
	snapshot, subs := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Info("Product updated", zap.String("id", id.String()))
	deliver(subs, snapshot)
	return updated, nil
}

// Delete removes the product with the given id. Deleting an absent id is a
// no-op, not an error, and publishes nothing.
func (s *CatalogStore) Delete(id uuid.UUID) {
	s.mu.Lock()
	idx := -1
	for i, p := range s.products {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return
	}

	s.products = append(s.products[:idx], s.products[idx+1:]...)
	snapshot, subs := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Info("Product deleted", zap.String("id", id.String()))
	deliver(subs, snapshot)
}

// snapshotLocked copies the collection and subscriber list. Callers must
// hold the write lock and deliver after unlocking, so subscribers can read
// back from the store without deadlocking.
func (s *CatalogStore) snapshotLocked() ([]domain.Product, []subscription[[]domain.Product]) {
	return copyProducts(s.products), s.pub.snapshot()
}

func deliver[T any](subs []subscription[T], snapshot T) {
	for _, sub := range subs {
		sub.fn(snapshot)
	}
}

func copyProducts(products []domain.Product) []domain.Product {
	out := make([]domain.Product, len(products))
	copy(out, products)
	return out
}

func searchProducts(products []domain.Product, query string) []domain.Product {
	q := strings.ToLower(query)
	out := []domain.Product{}
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out
}
