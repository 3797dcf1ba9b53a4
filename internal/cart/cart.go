// Package cart holds the per-session pending sale. A cart lives only in the
// session store (memory or Redis), never in the database: it is recreated
// empty whenever a session starts fresh and discarded on finalize or clear.
package cart

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Item is a snapshot taken when the product was added: the price the
// customer saw is honored even if the product row changes afterwards.
type Item struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type Cart struct {
	Items []Item `json:"items"`
}

// Add appends a line. No deduplication: adding the same product twice
// yields two independent entries, in cart order.
func (c *Cart) Add(it Item) {
	c.Items = append(c.Items, it)
}

func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}

// Subtotal is the sum of unit_price x quantity; zero for an empty cart.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// Store keeps carts keyed by session id. Get returns an empty cart for
// unknown or expired sessions.
type Store interface {
	Get(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, sessionID string, c *Cart) error
	Clear(ctx context.Context, sessionID string) error
}

type memoryEntry struct {
	cart      *Cart
	expiresAt time.Time
}

// MemoryStore is the single-process default. Entries expire lazily on read.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[sessionID]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.entries, sessionID)
		return &Cart{}, nil
	}

	// Copy out so callers never mutate the stored cart in place.
	copied := &Cart{Items: append([]Item(nil), entry.cart.Items...)}
	return copied, nil
}

func (s *MemoryStore) Save(_ context.Context, sessionID string, c *Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[sessionID] = memoryEntry{
		cart:      &Cart{Items: append([]Item(nil), c.Items...)},
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
	return nil
}
