package cart

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/tgshop/miniapp-backend/pkg/errors"
	"github.com/tgshop/miniapp-backend/pkg/logger"
)

// DefaultKey is the storage key a cart is persisted under.
const DefaultKey = "cart"

// Store owns the cart line items and mirrors every mutation to Storage.
//
// Mutations always apply in memory. When the write to Storage fails the
// PERSISTENCE_ERROR is returned so the caller can log it; the store stays usable.
// A Store is not safe for concurrent use.
type Store struct {
	storage Storage
	key     string
	logg    *logger.Logger
	items   []Item
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger attaches a logger used to report unreadable persisted carts.
func WithLogger(logg *logger.Logger) Option {
	return func(s *Store) {
		if logg != nil {
			s.logg = logg
		}
	}
}

// Open loads the cart persisted under the store key. Absent or malformed data
// yields an empty cart; the failure is logged and never returned.
func Open(ctx context.Context, storage Storage, opts ...Option) *Store {
	if storage == nil {
		storage = NewMemoryStorage()
	}
	s := &Store{
		storage: storage,
		key:     DefaultKey,
		logg:    logger.Nop(),
		items:   []Item{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	items, err := s.load(ctx)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logCtx := s.logg.WithFields(ctx, map[string]any{
				"cart_key":   s.key,
				"error_code": pkgerrors.CodePersistence,
			})
			s.logg.Warn(logCtx, "cart.load.failed: "+err.Error())
		}
		return s
	}
	s.items = items
	return s
}

func (s *Store) load(ctx context.Context) ([]Item, error) {
	raw, err := s.storage.Get(ctx, s.key)
	if err != nil {
		return nil, err
	}
	var decoded []Item
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "decode persisted cart")
	}
	return normalize(decoded), nil
}

// normalize enforces the cart invariants on data read back from storage.
func normalize(items []Item) []Item {
	out := make([]Item, 0, len(items))
	index := make(map[int64]int, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		if i, ok := index[item.ID]; ok {
			out[i].Quantity += item.Quantity
			continue
		}
		index[item.ID] = len(out)
		out = append(out, item)
	}
	return out
}

func (s *Store) persist(ctx context.Context) error {
	encoded, err := json.Marshal(s.items)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodePersistence, err, "encode cart")
	}
	if err := s.storage.Set(ctx, s.key, string(encoded)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodePersistence, err, "save cart")
	}
	return nil
}

func (s *Store) indexOf(id int64) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Add merges item into the cart: an existing id gains one unit, a new id is
// appended with quantity 1.
func (s *Store) Add(ctx context.Context, item Item) error {
	if i := s.indexOf(item.ID); i >= 0 {
		s.items[i].Quantity++
	} else {
		item.Quantity = 1
		s.items = append(s.items, item)
	}
	return s.persist(ctx)
}

// Remove deletes the line with id. Unknown ids are a no-op.
func (s *Store) Remove(ctx context.Context, id int64) error {
	if i := s.indexOf(id); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
	return s.persist(ctx)
}

// UpdateQuantity sets the quantity of id to max(1, qty).
func (s *Store) UpdateQuantity(ctx context.Context, id int64, qty int) error {
	if i := s.indexOf(id); i >= 0 {
		s.items[i].Quantity = max(1, qty)
	}
	return s.persist(ctx)
}

func (s *Store) Increment(ctx context.Context, id int64) error {
	return s.UpdateQuantity(ctx, id, s.quantityOf(id)+1)
}

// Decrement lowers the quantity by one, never below 1.
func (s *Store) Decrement(ctx context.Context, id int64) error {
	return s.UpdateQuantity(ctx, id, max(1, s.quantityOf(id)-1))
}

// CanDecrement reports whether Decrement would change the quantity of id.
func (s *Store) CanDecrement(id int64) bool {
	return s.quantityOf(id) > 1
}

func (s *Store) quantityOf(id int64) int {
	if i := s.indexOf(id); i >= 0 {
		return s.items[i].Quantity
	}
	return 1
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	s.items = []Item{}
	return s.persist(ctx)
}

// Total is the sum of price times quantity over all lines.
func (s *Store) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Quantity is the number of units across all lines.
func (s *Store) Quantity() int {
	n := 0
	for _, item := range s.items {
		n += item.Quantity
	}
	return n
}

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// IDs returns the line identifiers in insertion order.
func (s *Store) IDs() []int64 {
	ids := make([]int64, 0, len(s.items))
	for _, item := range s.items {
		ids = append(ids, item.ID)
	}
	return ids
}

func (s *Store) Get(id int64) (Item, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	return Item{}, false
}

func (s *Store) Len() int {
	return len(s.items)
}
