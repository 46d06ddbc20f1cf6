package stores_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"boutique/internal/stores"
)

func TestModalStore_OpenReplaceClose(t *testing.T) {
	store := stores.NewModalStore()
	assert.False(t, store.IsOpen())
	assert.Nil(t, store.Current())

	store.Open(stores.PaymentModal{OrderNumber: "ord-1", Amount: 33000})
	assert.True(t, store.IsOpen())

	// Consumers dispatch on the concrete type, payload intact.
	switch m := store.Current().(type) {
	case stores.PaymentModal:
		assert.Equal(t, "ord-1", m.OrderNumber)
		assert.Equal(t, 33000, m.Amount)
	default:
		t.Fatalf("unexpected modal type %T", m)
	}

	// Opening another modal replaces the current one.
	store.Open(stores.ConfirmModal{Message: "Delete this review?"})
	m, ok := store.Current().(stores.ConfirmModal)
	assert.True(t, ok)
	assert.Equal(t, "Delete this review?", m.Message)

	store.Close()
	assert.False(t, store.IsOpen())
	assert.Nil(t, store.Current())
}
