package cart

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/lumicart/storefront/pkg/logger"
	"github.com/lumicart/storefront/pkg/metrics"
)

// Line is one product entry and its quantity in the shopping cart.
type Line struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"imageUrl"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

// Subtotal returns quantity × unit price for the line.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Product carries the catalog fields needed to open a cart line.
type Product struct {
	ID        int64
	Name      string
	ImageURL  string
	UnitPrice decimal.Decimal
}

// Snapshot is a consistent point-in-time read of the cart: the ordered line
// list plus both derived totals, which always agree with the lines.
type Snapshot struct {
	Lines         []Line          `json:"lines"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	TotalQuantity int             `json:"totalQuantity"`
}

// IsEmpty reports whether the snapshot holds no lines.
func (s Snapshot) IsEmpty() bool {
	return len(s.Lines) == 0
}

// Observer receives a consistent snapshot after every mutation.
type Observer func(Snapshot)

// Store is the single source of truth for one session's shopping cart. It
// keeps the in-memory lines, the persisted copy, and subscribers consistent:
// every mutation recomputes totals, writes through the persister once, and
// notifies observers synchronously in registration order.
type Store struct {
	mu sync.Mutex

	sessionID string
	lines     []Line

	totalPrice    decimal.Decimal
	totalQuantity int

	persister Persister
	observers []Observer

	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics
}

// NewStore builds an empty store for the session. Call Restore to rehydrate
// any persisted lines.
func NewStore(sessionID string, persister Persister, logg *logger.Logger, m *metrics.StorefrontMetrics) *Store {
	return &Store{
		sessionID:  sessionID,
		persister:  persister,
		totalPrice: decimal.Zero,
		logg:       logg,
		metrics:    m,
	}
}

// Subscribe registers an observer for mutation notifications. Observers run
// synchronously on the mutating call, in the order they were registered.
func (s *Store) Subscribe(obs Observer) {
	if obs == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, obs)
}

// AddItem increments the quantity of an existing line for the product, or
// appends a new line with quantity 1.
func (s *Store) AddItem(ctx context.Context, product Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if line := s.findLine(product.ID); line != nil {
		line.Quantity++
	} else {
		s.lines = append(s.lines, Line{
			ProductID: product.ID,
			Name:      product.Name,
			ImageURL:  product.ImageURL,
			UnitPrice: product.UnitPrice,
			Quantity:  1,
		})
	}

	s.afterMutation(ctx, "add_item")
}

// IncrementQuantity adds one to the line for the product. No-op when absent.
func (s *Store) IncrementQuantity(ctx context.Context, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := s.findLine(productID)
	if line == nil {
		return
	}
	line.Quantity++

	s.afterMutation(ctx, "increment_quantity")
}

// DecrementQuantity subtracts one from the line for the product; hitting zero
// removes the line entirely. No-op when absent.
func (s *Store) DecrementQuantity(ctx context.Context, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := s.findLine(productID)
	if line == nil {
		return
	}
	line.Quantity--
	if line.Quantity <= 0 {
		s.deleteLine(productID)
		s.afterMutation(ctx, "remove_item")
		return
	}

	s.afterMutation(ctx, "decrement_quantity")
}

// RemoveItem deletes the line for the product. No-op when absent.
func (s *Store) RemoveItem(ctx context.Context, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findLine(productID) == nil {
		return
	}
	s.deleteLine(productID)

	s.afterMutation(ctx, "remove_item")
}

// Clear empties the cart, zeroes the totals, and deletes the persisted copy.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.totalPrice = decimal.Zero
	s.totalQuantity = 0

	if s.persister != nil {
		if err := s.persister.Delete(ctx, s.sessionID); err != nil && s.logg != nil {
			s.logg.Error(ctx, "cart.clear persisted copy", err)
		}
	}
	s.metrics.IncCartMutation("clear")
	s.notifyLocked()
}

// Snapshot returns the current consistent view of the cart.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Restore rehydrates the line collection from the persister. Absent or
// malformed data yields an empty cart; restore never fails the caller.
func (s *Store) Restore(ctx context.Context) {
	if s.persister == nil {
		return
	}

	lines, err := s.persister.Load(ctx, s.sessionID)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "cart.restore fell back to empty cart", err)
		}
		lines = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = lines
	s.recomputeLocked()
	s.notifyLocked()
}

func (s *Store) afterMutation(ctx context.Context, op string) {
	s.recomputeLocked()
	if s.persister != nil {
		if err := s.persister.Save(ctx, s.sessionID, s.lines); err != nil && s.logg != nil {
			s.logg.Error(ctx, "cart.persist", err)
		}
	}
	s.metrics.IncCartMutation(op)
	s.notifyLocked()
}

func (s *Store) recomputeLocked() {
	total := decimal.Zero
	qty := 0
	for _, line := range s.lines {
		total = total.Add(line.Subtotal())
		qty += line.Quantity
	}
	s.totalPrice = total
	s.totalQuantity = qty
}

func (s *Store) notifyLocked() {
	if len(s.observers) == 0 {
		return
	}
	snap := s.snapshotLocked()
	for _, obs := range s.observers {
		obs(snap)
	}
}

func (s *Store) snapshotLocked() Snapshot {
	lines := make([]Line, len(s.lines))
	copy(lines, s.lines)
	return Snapshot{
		Lines:         lines,
		TotalPrice:    s.totalPrice,
		TotalQuantity: s.totalQuantity,
	}
}

func (s *Store) findLine(productID int64) *Line {
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			return &s.lines[i]
		}
	}
	return nil
}

func (s *Store) deleteLine(productID int64) {
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}
