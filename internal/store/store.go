// Package store owns the in-memory order collection: creation, the
// pending-to-completed transition, queries, and synchronization with
// the durable slot mirroring it.
package store

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"gourmet/internal/models"
	"gourmet/internal/monitoring"
	"gourmet/internal/storage"
)

var (
	// ErrEmptyCart rejects a submission with no line items.
	ErrEmptyCart = errors.New("cannot submit an order with an empty cart")
	// ErrNoTable rejects a submission with no table selected.
	ErrNoTable = errors.New("cannot submit an order without a table")
)

// Store is the in-memory cache of the persisted order collection.
// Every mutation rewrites the full collection through the Repository;
// external slot changes flow back in through the repository watch.
type Store struct {
	repo storage.Repository
	ids  IDGenerator
	now  func() time.Time

	mu     sync.RWMutex
	orders []models.Order

	subMu sync.Mutex
	subs  []chan []models.Order
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator injects a deterministic id generator. Used in tests.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) { s.ids = g }
}

// WithClock injects the time source used to stamp creation times.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New builds a store seeded from repo and begins refreshing from its
// external change feed. A failed or malformed initial load degrades
// to an empty collection; it is never surfaced to the user.
func New(ctx context.Context, repo storage.Repository, opts ...Option) (*Store, error) {
	s := &Store{
		repo: repo,
		ids:  timeRandomID{},
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	orders, err := repo.Load(ctx)
	if err != nil {
		log.Printf("Starting with empty order collection: %v", err)
		orders = nil
	}
	s.orders = orders
	monitoring.ObserveOrders(s.aggregateLocked())

	changes, err := repo.Watch(ctx)
	if err != nil {
		return nil, err
	}
	if changes != nil {
		go func() {
			for orders := range changes {
				s.refresh(orders)
			}
		}()
	}

	return s, nil
}

// Submit validates the cart snapshot, creates a pending order, and
// persists the full collection. The items are copied by value; later
// cart mutations never touch a submitted order.
func (s *Store) Submit(items []models.OrderItem, table, customerName string) (models.Order, error) {
	if len(items) == 0 {
		return models.Order{}, ErrEmptyCart
	}
	if table == "" {
		return models.Order{}, ErrNoTable
	}

	snapshot := make([]models.OrderItem, len(items))
	copy(snapshot, items)

	var total int64
	for _, line := range snapshot {
		total += line.LineTotal()
	}

	order := models.Order{
		ID:           s.ids.NewOrderID(),
		TableNumber:  table,
		Items:        snapshot,
		TotalPrice:   total,
		Status:       models.OrderStatusPending,
		CustomerName: customerName,
		CreatedAt:    s.now(),
	}

	s.mu.Lock()
	s.orders = append(s.orders, order)
	s.mu.Unlock()

	monitoring.OrdersSubmitted.Inc()
	s.persistAndNotify()
	return order, nil
}

// UpdateStatus transitions the order with the given id from pending
// to completed. Unknown ids and already-completed orders are ignored;
// calling it twice leaves the order completed both times. Reports
// whether a transition happened.
func (s *Store) UpdateStatus(id string) bool {
	s.mu.Lock()
	changed := false
	for i := range s.orders {
		if s.orders[i].ID == id && s.orders[i].Status == models.OrderStatusPending {
			s.orders[i].Status = models.OrderStatusCompleted
			changed = true
			break
		}
	}
	s.mu.Unlock()

	if !changed {
		return false
	}
	monitoring.OrdersCompleted.Inc()
	s.persistAndNotify()
	return true
}

// List returns orders matching filter, most recent first. Orders with
// equal creation times keep their submission order.
func (s *Store) List(filter models.StatusFilter) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if filter == models.FilterAll || string(o.Status) == string(filter) {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Aggregate returns the number of pending orders and the revenue sum
// across all orders.
func (s *Store) Aggregate() (pending int, revenue int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.aggregateLocked()
}

func (s *Store) aggregateLocked() (pending int, revenue int64) {
	for _, o := range s.orders {
		if o.Status == models.OrderStatusPending {
			pending++
		}
		revenue += o.TotalPrice
	}
	return pending, revenue
}

// Snapshot returns a copy of the full collection in submission order.
func (s *Store) Snapshot() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// Subscribe registers a local observer that receives a collection
// snapshot after every change, local or external. The channel holds
// one pending snapshot; a slow observer only ever sees the latest.
func (s *Store) Subscribe() <-chan []models.Order {
	ch := make(chan []models.Order, 1)
	s.subMu.Lock()
	s.subs = append(s.subs, ch)
	s.subMu.Unlock()
	return ch
}

// refresh replaces the collection with an externally persisted one.
// Local writes never arrive here; the repository filters them out.
func (s *Store) refresh(orders []models.Order) {
	s.mu.Lock()
	s.orders = orders
	pending, revenue := s.aggregateLocked()
	s.mu.Unlock()

	monitoring.ObserveOrders(pending, revenue)
	s.notify()
}

// persistAndNotify writes the full collection to the slot and fans a
// snapshot out to local observers. A failed write is logged and
// otherwise accepted; it never blocks the caller's action.
func (s *Store) persistAndNotify() {
	snap := s.Snapshot()
	if err := s.repo.Save(context.Background(), snap); err != nil {
		log.Printf("Failed to persist order collection: %v", err)
	}

	pending, revenue := s.Aggregate()
	monitoring.ObserveOrders(pending, revenue)
	s.notify()
}

func (s *Store) notify() {
	snap := s.Snapshot()
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			// Replace the stale pending snapshot with the latest.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}
