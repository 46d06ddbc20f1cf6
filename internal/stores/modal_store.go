package stores

import (
	"sync"

	"boutique/internal/models"
)

// Modal is a sealed variant over the dialog kinds the storefront can show.
// Each kind carries its own typed payload; consumers switch exhaustively on
// the concrete type instead of dispatching on a string key.
type Modal interface {
	modal()
}

// CategoryFormModal edits or creates a category. Category is nil for create.
type CategoryFormModal struct {
	Category *models.Category
}

// ConfirmModal asks a yes/no question before a destructive action.
type ConfirmModal struct {
	Title     string
	Message   string
	OnConfirm func()
}

// PostcodeModal runs the address lookup and reports the chosen address.
type PostcodeModal struct {
	OnComplete func(zipCode, address1 string)
}

// PaymentModal hosts the external payment widget for a created order.
type PaymentModal struct {
	OrderNumber   string
	OrderName     string
	CustomerName  string
	CustomerEmail string
	Amount        int
}

// ReviewFormModal writes or edits a review. Review is nil for a new one.
type ReviewFormModal struct {
	ProductID int
	Review    *models.MyReview
}

func (CategoryFormModal) modal() {}
func (ConfirmModal) modal()      {}
func (PostcodeModal) modal()     {}
func (PaymentModal) modal()      {}
func (ReviewFormModal) modal()   {}

// ModalStore tracks the currently open modal, if any. One modal at a time;
// opening replaces whatever was shown.
type ModalStore struct {
	mu      sync.RWMutex
	current Modal
}

// NewModalStore creates a store with no open modal.
func NewModalStore() *ModalStore {
	return &ModalStore{}
}

// Open shows a modal, replacing any current one.
func (s *ModalStore) Open(m Modal) {
	s.mu.Lock()
	s.current = m
	s.mu.Unlock()
}

// Close dismisses the current modal.
func (s *ModalStore) Close() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

// Current returns the open modal, or nil.
func (s *ModalStore) Current() Modal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// IsOpen reports whether any modal is showing.
func (s *ModalStore) IsOpen() bool {
	return s.Current() != nil
}
