package stores

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"boutique/internal/api"
	"boutique/internal/models"
)

// ErrInvalidQuantity is returned for quantity updates below 1. Removal goes
// through RemoveItem, never through a quantity of zero.
var ErrInvalidQuantity = errors.New("cart: quantity must be at least 1")

// CartStore is a cached mirror of the remote cart. The server stays
// authoritative: Fetch replaces the local copy wholesale, AddItem re-fetches
// after success, and quantity updates and removals are applied optimistically
// with a snapshot rollback on failure.
//
// Overlapping mutations on the same line are not serialized; the last network
// completion wins. The mutex protects the slice, not that logical race.
type CartStore struct {
	api api.CartAPI

	mu      sync.RWMutex
	items   []models.CartItem
	loading bool
}

// NewCartStore creates a cart store over the given cart service client.
func NewCartStore(cartAPI api.CartAPI) *CartStore {
	return &CartStore{api: cartAPI}
}

// Fetch replaces the local copy with the server cart. No merge: the server's
// last word wins. The loading flag is set for the duration of the call so
// callers can gate rendering. On failure the local copy is left untouched.
func (s *CartStore) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	cart, err := s.api.GetCart(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		return fmt.Errorf("fetch cart: %w", err)
	}
	s.items = cart.Items
	return nil
}

// AddItem sends an add request and, on success, re-fetches the whole cart.
// The server may merge the add into an existing identical line, so the client
// does not try to synthesize the new state locally. No optimistic write is
// applied, so a failure leaves local state untouched.
func (s *CartStore) AddItem(ctx context.Context, productSizeID, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if err := s.api.AddToCart(ctx, productSizeID, quantity); err != nil {
		return fmt.Errorf("add to cart: %w", err)
	}
	return s.Fetch(ctx)
}

// UpdateQuantity optimistically sets the quantity of a line, then persists it.
// Quantities below 1 are rejected before any state change or network call.
// On server failure the pre-mutation snapshot is restored.
func (s *CartStore) UpdateQuantity(ctx context.Context, itemID, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	snapshot := s.copyItemsLocked()
	for i := range s.items {
		if s.items[i].ID == itemID {
			s.items[i].Quantity = quantity
		}
	}
	s.mu.Unlock()

	if err := s.api.UpdateCartItem(ctx, itemID, quantity); err != nil {
		s.restore(snapshot)
		return fmt.Errorf("update cart item %d: %w", itemID, err)
	}
	return nil
}

// RemoveItem optimistically drops a line, then requests deletion. On server
// failure the snapshot is restored, putting the line back in its original
// position with its original quantity.
func (s *CartStore) RemoveItem(ctx context.Context, itemID int) error {
	s.mu.Lock()
	snapshot := s.copyItemsLocked()
	kept := s.items[:0:0]
	for _, it := range s.items {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	s.items = kept
	s.mu.Unlock()

	if err := s.api.RemoveCartItem(ctx, itemID); err != nil {
		s.restore(snapshot)
		return fmt.Errorf("remove cart item %d: %w", itemID, err)
	}
	return nil
}

// Items returns a copy of the current local cart lines.
func (s *CartStore) Items() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyItemsLocked()
}

// Loading reports whether a Fetch is in flight.
func (s *CartStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// TotalCount sums the quantities of all lines.
func (s *CartStore) TotalCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, it := range s.items {
		total += it.Quantity
	}
	return total
}

// TotalPrice sums quantity times the cached product price over all lines.
// Pure derived read; no network.
func (s *CartStore) TotalPrice() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, it := range s.items {
		total += it.Subtotal()
	}
	return total
}

func (s *CartStore) copyItemsLocked() []models.CartItem {
	snapshot := make([]models.CartItem, len(s.items))
	copy(snapshot, s.items)
	return snapshot
}

func (s *CartStore) restore(snapshot []models.CartItem) {
	s.mu.Lock()
	s.items = snapshot
	s.mu.Unlock()
}
