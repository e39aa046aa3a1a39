package store

import (
	"sync"
	"time"

	"github.com/MadhaSivanandaReddy/ShopHub/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderStore owns the order collection and its status lifecycle. Orders are
// frozen at creation: later catalog or cart changes never touch them.
type OrderStore struct {
	logger *zap.Logger
	now    func() time.Time
	newID  func() uuid.UUID

	mu     sync.RWMutex
	orders []domain.Order
	pub    publisher[[]domain.Order]
}

// OrderOption customizes an OrderStore.
type OrderOption func(*OrderStore)

// WithOrderClock overrides the timestamp source, mainly for tests.
func WithOrderClock(now func() time.Time) OrderOption {
	return func(s *OrderStore) { s.now = now }
}

// WithOrderIDs overrides id generation, mainly for tests.
func WithOrderIDs(newID func() uuid.UUID) OrderOption {
	return func(s *OrderStore) { s.newID = newID }
}

// NewOrders creates an empty order store.
func NewOrders(logger *zap.Logger, opts ...OrderOption) *OrderStore {
	s := &OrderStore{
		logger: logger,
		now:    time.Now,
		newID:  uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn for order collection snapshots and returns an
// unsubscribe function.
func (s *OrderStore) Subscribe(fn Subscriber[[]domain.Order]) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cancel := s.pub.subscribe(fn)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		cancel()
	}
}

// CreateOrder freezes the cart snapshot into a pending order. The cart is
// not cleared here; sequencing that is the caller's contract.
func (s *OrderStore) CreateOrder(cart domain.Cart, userID uuid.UUID, shipping domain.Address, paymentMethod string) (domain.Order, error) {
	if err := domain.Validate(shipping); err != nil {
		return domain.Order{}, err
	}
	if paymentMethod == "" {
		return domain.Order{}, &domain.ValidationError{Fields: []domain.FieldError{
			{Field: "PaymentMethod", Message: "This field is required"},
		}}
	}
	if len(cart.Items) == 0 {
		return domain.Order{}, &domain.ValidationError{Fields: []domain.FieldError{
			{Field: "Items", Message: "Cart is empty"},
		}}
	}

	items := make([]domain.OrderItem, 0, len(cart.Items))
	total := 0.0
	for _, line := range cart.Items {
		items = append(items, domain.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.Name,
			Price:       line.Price,
			Quantity:    line.Quantity,
			ImageURL:    line.ImageURL,
		})
		total += line.Price * float64(line.Quantity)
	}

	now := s.now()
	order := domain.Order{
		ID:              s.newID(),
		UserID:          userID,
		Items:           items,
		Total:           total,
		Status:          domain.OrderStatusPending,
		ShippingAddress: shipping,
		PaymentMethod:   paymentMethod,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	s.mu.Lock()
	s.orders = append(s.orders, order)
	snapshot, subs := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Info("Order created",
		zap.String("id", order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Float64("total", total),
	)
	deliver(subs, snapshot)
	return cloneOrder(order), nil
}

// GetOrder returns the order with the given id, if present.
func (s *OrderStore) GetOrder(id uuid.UUID) (domain.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.orders {
		if o.ID == id {
			return cloneOrder(o), true
		}
	}
	return domain.Order{}, false
}

// ListByUser returns the user's orders in creation order.
func (s *OrderStore) ListByUser(userID uuid.UUID) []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Order{}
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, cloneOrder(o))
		}
	}
	return out
}

// ListAll returns every order in creation order.
func (s *OrderStore) ListAll() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneOrders(s.orders)
}

// SetStatus advances the order through its lifecycle. Only the transitions
// pending->processing, pending->cancelled, processing->shipped,
// processing->cancelled and shipped->delivered are allowed; delivered and
// cancelled are terminal.
func (s *OrderStore) SetStatus(id uuid.UUID, status domain.OrderStatus) (domain.Order, error) {
	if !status.Valid() {
		return domain.Order{}, &domain.ValidationError{Fields: []domain.FieldError{
			{Field: "Status", Message: "Unknown order status"},
		}}
	}

	s.mu.Lock()
	idx := -1
	for i, o := range s.orders {
		if o.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return domain.Order{}, &domain.NotFoundError{Entity: "order", ID: id.String()}
	}

	current := s.orders[idx].Status
	if !current.CanTransitionTo(status) {
		s.mu.Unlock()
		return domain.Order{}, &domain.InvalidTransitionError{From: current, To: status}
	}

	s.orders[idx].Status = status
	s.orders[idx].UpdatedAt = s.now()
	updated := cloneOrder(s.orders[idx])
	snapshot, subs := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Info("Order status changed",
		zap.String("id", id.String()),
		zap.String("from", string(current)),
		zap.String("to", string(status)),
	)
	deliver(subs, snapshot)
	return updated, nil
}

func (s *OrderStore) snapshotLocked() ([]domain.Order, []subscription[[]domain.Order]) {
	return cloneOrders(s.orders), s.pub.snapshot()
}

func cloneOrder(o domain.Order) domain.Order {
	out := o
	out.Items = make([]domain.OrderItem, len(o.Items))
	copy(out.Items, o.Items)
	return out
}

func cloneOrders(orders []domain.Order) []domain.Order {
	out := make([]domain.Order, len(orders))
	for i, o := range orders {
		out[i] = cloneOrder(o)
	}
	return out
}
