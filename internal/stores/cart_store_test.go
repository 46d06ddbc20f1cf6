package stores_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"boutique/internal/models"
	"boutique/internal/stores"
)

// MockCartAPI is a mock implementation of api.CartAPI
type MockCartAPI struct {
	mock.Mock
}

func (m *MockCartAPI) GetCart(ctx context.Context) (*models.Cart, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockCartAPI) AddToCart(ctx context.Context, productSizeID, quantity int) error {
	args := m.Called(ctx, productSizeID, quantity)
	return args.Error(0)
}

func (m *MockCartAPI) UpdateCartItem(ctx context.Context, cartItemID, quantity int) error {
	args := m.Called(ctx, cartItemID, quantity)
	return args.Error(0)
}

func (m *MockCartAPI) RemoveCartItem(ctx context.Context, cartItemID int) error {
	args := m.Called(ctx, cartItemID)
	return args.Error(0)
}

func cartItem(id, qty, price int) models.CartItem {
	return models.CartItem{
		ID:       id,
		Quantity: qty,
		ProductSize: models.CartItemSize{
			ID:   id * 100,
			Size: "M",
			ProductColor: models.CartItemColor{
				ColorName: "Black",
				Product:   models.CartItemProduct{ID: id, Name: fmt.Sprintf("Product %d", id), Price: price},
			},
		},
	}
}

func TestCartStore_Fetch(t *testing.T) {
	mockAPI := new(MockCartAPI)
	store := stores.NewCartStore(mockAPI)

	serverCart := &models.Cart{Items: []models.CartItem{cartItem(1, 2, 10000)}}
	mockAPI.On("GetCart", mock.Anything).Run(func(args mock.Arguments) {
		// The loading flag is up while the request is in flight.
		assert.True(t, store.Loading())
	}).Return(serverCart, nil).Once()

	err := store.Fetch(context.Background())
	assert.NoError(t, err)
	assert.False(t, store.Loading())
	assert.Equal(t, serverCart.Items, store.Items())
	mockAPI.AssertExpectations(t)

	// A failed fetch leaves the cached copy untouched.
	mockAPI.On("GetCart", mock.Anything).Return(nil, fmt.Errorf("network down")).Once()
	err = store.Fetch(context.Background())
	assert.Error(t, err)
	assert.Equal(t, serverCart.Items, store.Items())
	assert.False(t, store.Loading())
	mockAPI.AssertExpectations(t)
}

func TestCartStore_AddItem_RefetchesOnSuccess(t *testing.T) {
	mockAPI := new(MockCartAPI)
	store := stores.NewCartStore(mockAPI)

	merged := &models.Cart{Items: []models.CartItem{cartItem(1, 3, 10000)}}
	mockAPI.On("AddToCart", mock.Anything, 100, 1).Return(nil).Once()
	mockAPI.On("GetCart", mock.Anything).Return(merged, nil).Once()

	err := store.AddItem(context.Background(), 100, 1)
	assert.NoError(t, err)
	// The local copy is whatever the server says, merge rules included.
	assert.Equal(t, merged.Items, store.Items())
	mockAPI.AssertExpectations(t)
}

func TestCartStore_AddItem_FailureLeavesStateUntouched(t *testing.T) {
	mockAPI := new(MockCartAPI)
	store := stores.NewCartStore(mockAPI)

	mockAPI.On("AddToCart", mock.Anything, 100, 2).Return(fmt.Errorf("out of stock")).Once()

	err := store.AddItem(context.Background(), 100, 2)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "out of stock")
	assert.Empty(t, store.Items())
	mockAPI.AssertNotCalled(t, "GetCart", mock.Anything)
	mockAPI.AssertExpectations(t)
}

func TestCartStore_UpdateQuantity_OptimisticThenRollback(t *testing.T) {
	mockAPI := new(MockCartAPI)
	store := stores.NewCartStore(mockAPI)

	mockAPI.On("GetCart", mock.Anything).Return(&models.Cart{Items: []models.CartItem{cartItem(7, 2, 20000)}}, nil).Once()
	assert.NoError(t, store.Fetch(context.Background()))

	// The optimistic write is visible while the server call is in flight.
	mockAPI.On("UpdateCartItem", mock.Anything, 7, 5).Run(func(args mock.Arguments) {
		items := store.Items()
		assert.Equal(t, 5, items[0].Quantity)
	}).Return(fmt.Errorf("timeout")).Once()

	err := store.UpdateQuantity(context.Background(), 7, 5)
	assert.Error(t, err)

	// Server failure rolls back to the pre-mutation snapshot.
	items := store.Items()
	assert.Equal(t, 2, items[0].Quantity)
	mockAPI.AssertExpectations(t)
}

func TestCartStore_UpdateQuantity_Success(t *testing.T) {
	mockAPI := new(MockCartAPI)
	store := stores.NewCartStore(mockAPI)

	mockAPI.On("GetCart", mock.Anything).Return(&models.Cart{Items: []models.CartItem{cartItem(7, 2, 20000)}}, nil).Once()
	assert.NoError(t, store.Fetch(context.Background()))

	mockAPI.On("UpdateCartItem", mock.Anything, 7, 5).Return(nil).Once()
	assert.NoError(t, store.UpdateQuantity(context.Background(), 7, 5))
	assert.Equal(t, 5, store.Items()[0].Quantity)
	mockAPI.AssertExpectations(t)
}

func TestCartStore_UpdateQuantity_RejectsBelowOne(t *testing.T) {
	mockAPI := new(MockCartAPI)
	store := stores.NewCartStore(mockAPI)

	mockAPI.On("GetCart", mock.Anything).Return(&models.Cart{Items: []models.CartItem{cartItem(7, 2, 20000)}}, nil).Once()
	assert.NoError(t, store.Fetch(context.Background()))

	for _, q := range []int{0, -1} {
		err := store.UpdateQuantity(context.Background(), 7, q)
		assert.ErrorIs(t, err, stores.ErrInvalidQuantity)
	}

	// No network call, no state change.
	assert.Equal(t, 2, store.Items()[0].Quantity)
	mockAPI.AssertNotCalled(t, "UpdateCartItem", mock.Anything, mock.Anything, mock.Anything)
	mockAPI.AssertExpectations(t)
}

func TestCartStore_RemoveItem_RollbackRestoresPosition(t *testing.T) {
	mockAPI := new(MockCartAPI)
	store := stores.NewCartStore(mockAPI)

	initial := []models.CartItem{cartItem(1, 1, 10000), cartItem(2, 2, 5000), cartItem(3, 3, 7000)}
	mockAPI.On("GetCart", mock.Anything).Return(&models.Cart{Items: initial}, nil).Once()
	assert.NoError(t, store.Fetch(context.Background()))

	// The optimistic removal is visible during the request.
	mockAPI.On("RemoveCartItem", mock.Anything, 2).Run(func(args mock.Arguments) {
		items := store.Items()
		assert.Len(t, items, 2)
		assert.Equal(t, 1, items[0].ID)
		assert.Equal(t, 3, items[1].ID)
	}).Return(fmt.Errorf("server error")).Once()

	err := store.RemoveItem(context.Background(), 2)
	assert.Error(t, err)

	// The removed line is back in its original position with its quantity.
	assert.Equal(t, initial, store.Items())
	mockAPI.AssertExpectations(t)
}

func TestCartStore_RemoveItem_Success(t *testing.T) {
	mockAPI := new(MockCartAPI)
	store := stores.NewCartStore(mockAPI)

	mockAPI.On("GetCart", mock.Anything).Return(&models.Cart{Items: []models.CartItem{cartItem(1, 1, 10000), cartItem(2, 2, 5000)}}, nil).Once()
	assert.NoError(t, store.Fetch(context.Background()))

	mockAPI.On("RemoveCartItem", mock.Anything, 1).Return(nil).Once()
	assert.NoError(t, store.RemoveItem(context.Background(), 1))

	items := store.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, 2, items[0].ID)
	mockAPI.AssertExpectations(t)
}

func TestCartStore_Totals(t *testing.T) {
	mockAPI := new(MockCartAPI)
	store := stores.NewCartStore(mockAPI)

	mockAPI.On("GetCart", mock.Anything).Return(&models.Cart{Items: []models.CartItem{
		cartItem(1, 2, 10000),
		cartItem(2, 3, 5000),
	}}, nil).Once()
	assert.NoError(t, store.Fetch(context.Background()))

	assert.Equal(t, 5, store.TotalCount())
	assert.Equal(t, 35000, store.TotalPrice())
	mockAPI.AssertExpectations(t)
}
