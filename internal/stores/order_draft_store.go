package stores

import (
	"errors"
	"sync"

	"boutique/internal/models"
)

// ErrEmptyDraft guards checkout entry with nothing staged. Callers redirect
// to a safe page instead of proceeding.
var ErrEmptyDraft = errors.New("order draft: no items staged for checkout")

// OrderDraftStore stages the lines being purchased right now, decoupled from
// the durable cart so buy-now and checkout-full-cart share one downstream
// path. Working state only: cleared on confirmation and never persisted.
type OrderDraftStore struct {
	mu    sync.RWMutex
	items []models.CartItem
}

// NewOrderDraftStore creates an empty draft.
func NewOrderDraftStore() *OrderDraftStore {
	return &OrderDraftStore{}
}

// SetOrderItems replaces the draft wholesale. No merge.
func (s *OrderDraftStore) SetOrderItems(items []models.CartItem) {
	staged := make([]models.CartItem, len(items))
	copy(staged, items)
	s.mu.Lock()
	s.items = staged
	s.mu.Unlock()
}

// ClearOrder empties the draft. Called after a successful confirmation or an
// explicit cancellation.
func (s *OrderDraftStore) ClearOrder() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
}

// Items returns a copy of the staged lines.
func (s *OrderDraftStore) Items() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Empty reports whether nothing is staged.
func (s *OrderDraftStore) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items) == 0
}

// TotalPrice sums quantity times the cached product price over the draft.
func (s *OrderDraftStore) TotalPrice() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, it := range s.items {
		total += it.Subtotal()
	}
	return total
}

// BuyNowItem synthesizes a single transient cart line for a direct purchase
// that bypasses the durable cart. The line carries TransientCartItemID since
// it has no server-side row.
func BuyNowItem(p *models.Product, color models.ProductColor, size models.ProductSize, quantity int) models.CartItem {
	images := make([]models.CartItemImage, 0, len(color.Images))
	for _, img := range color.Images {
		images = append(images, models.CartItemImage{URL: img.URL})
	}
	return models.CartItem{
		ID:       models.TransientCartItemID,
		Quantity: quantity,
		ProductSize: models.CartItemSize{
			ID:    size.ID,
			Size:  size.Size,
			Stock: size.Stock,
			ProductColor: models.CartItemColor{
				ColorName: color.ColorName,
				HexCode:   color.HexCode,
				Product: models.CartItemProduct{
					ID:    p.ID,
					Name:  p.Name,
					Price: p.Price,
					Style: p.Style,
				},
				Images: images,
			},
		},
	}
}
