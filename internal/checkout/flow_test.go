package checkout_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"boutique/internal/api"
	"boutique/internal/checkout"
	"boutique/internal/models"
	"boutique/internal/stores"
)

// MockOrderAPI is a mock implementation of api.OrderAPI
type MockOrderAPI struct {
	mock.Mock
}

func (m *MockOrderAPI) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderAPI) GetOrders(ctx context.Context) ([]models.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderAPI) GetOrderDetail(ctx context.Context, orderID int) (*models.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderAPI) CancelOrder(ctx context.Context, orderID int, reason string) (*models.CancelOrderResponse, error) {
	args := m.Called(ctx, orderID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CancelOrderResponse), args.Error(1)
}

func (m *MockOrderAPI) ConfirmOrder(ctx context.Context, req models.ConfirmOrderRequest) (*models.Order, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

// MockGateway is a mock implementation of checkout.PaymentGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Initiate(ctx context.Context, req checkout.PaymentRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockGateway) Confirm(ctx context.Context, req models.ConfirmOrderRequest) (*models.Order, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockGateway) Cancel(ctx context.Context, orderID int, reason string) error {
	args := m.Called(ctx, orderID, reason)
	return args.Error(0)
}

// MockCartAPI backs the cart store the flow refreshes after confirmation.
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

func draftItem(sizeID, qty, price int) models.CartItem {
	return models.CartItem{
		ID:       1,
		Quantity: qty,
		ProductSize: models.CartItemSize{
			ID:   sizeID,
			Size: "M",
			ProductColor: models.CartItemColor{
				Product: models.CartItemProduct{ID: 1, Name: "City Rider Hoodie", Price: price},
			},
		},
	}
}

func validForm() checkout.RecipientForm {
	return checkout.RecipientForm{
		RecipientName:  "Shopper",
		RecipientPhone: "010-1111-1111",
		ZipCode:        "04524",
		Address1:       "100 Main St",
		Address2:       "Apt 3",
	}
}

func newFlow(t *testing.T) (*checkout.Flow, *MockOrderAPI, *MockGateway, *stores.OrderDraftStore, *stores.CartStore, *MockCartAPI) {
	t.Helper()
	orders := new(MockOrderAPI)
	gateway := new(MockGateway)
	cartAPI := new(MockCartAPI)
	draft := stores.NewOrderDraftStore()
	cart := stores.NewCartStore(cartAPI)
	flow := checkout.NewFlow(orders, gateway, draft, cart)
	return flow, orders, gateway, draft, cart, cartAPI
}

func TestFlow_Begin_EmptyDraftGuard(t *testing.T) {
	flow, orders, _, _, _, _ := newFlow(t)

	_, err := flow.Begin(context.Background(), validForm())
	assert.ErrorIs(t, err, stores.ErrEmptyDraft)
	assert.Equal(t, checkout.PhaseDrafting, flow.Phase())
	orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestFlow_Begin_ValidationBeforeNetwork(t *testing.T) {
	flow, orders, _, draft, _, _ := newFlow(t)
	draft.SetOrderItems([]models.CartItem{draftItem(9, 1, 30000)})

	form := validForm()
	form.RecipientName = ""
	_, err := flow.Begin(context.Background(), form)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "checkout form invalid")
	assert.Equal(t, checkout.PhaseDrafting, flow.Phase())
	orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestFlow_Begin_ShippingBelowThreshold(t *testing.T) {
	flow, orders, gateway, draft, _, _ := newFlow(t)
	draft.SetOrderItems([]models.CartItem{draftItem(9, 1, 30000)})

	created := &models.Order{ID: 5, OrderNumber: "ord-5", Status: models.OrderPending, TotalAmount: 33000}
	orders.On("CreateOrder", mock.Anything, mock.MatchedBy(func(req models.CreateOrderRequest) bool {
		return len(req.Items) == 1 && req.Items[0].ProductSizeID == 9 && req.Items[0].Quantity == 1
	})).Return(created, nil).Once()
	// 30000 is under the 50000 free-shipping threshold: 3000 is added.
	gateway.On("Initiate", mock.Anything, mock.MatchedBy(func(req checkout.PaymentRequest) bool {
		return req.Amount == 33000 && req.OrderNumber == "ord-5"
	})).Return(nil).Once()

	order, err := flow.Begin(context.Background(), validForm())
	assert.NoError(t, err)
	assert.Equal(t, created, order)
	assert.Equal(t, checkout.PhasePaymentCollecting, flow.Phase())
	assert.Equal(t, 33000, flow.Amount())
	orders.AssertExpectations(t)
	gateway.AssertExpectations(t)
}

func TestFlow_Begin_FreeShippingAtThreshold(t *testing.T) {
	flow, orders, gateway, draft, _, _ := newFlow(t)
	draft.SetOrderItems([]models.CartItem{draftItem(9, 2, 25000)})

	created := &models.Order{ID: 6, OrderNumber: "ord-6", Status: models.OrderPending, TotalAmount: 50000}
	orders.On("CreateOrder", mock.Anything, mock.Anything).Return(created, nil).Once()
	gateway.On("Initiate", mock.Anything, mock.MatchedBy(func(req checkout.PaymentRequest) bool {
		return req.Amount == 50000
	})).Return(nil).Once()

	_, err := flow.Begin(context.Background(), validForm())
	assert.NoError(t, err)
	assert.Equal(t, 50000, flow.Amount())
	orders.AssertExpectations(t)
	gateway.AssertExpectations(t)
}

func TestFlow_Begin_NoDuplicateOrder(t *testing.T) {
	flow, orders, gateway, draft, _, _ := newFlow(t)
	draft.SetOrderItems([]models.CartItem{draftItem(9, 1, 30000)})

	created := &models.Order{ID: 5, OrderNumber: "ord-5", Status: models.OrderPending}
	orders.On("CreateOrder", mock.Anything, mock.Anything).Return(created, nil).Once()
	gateway.On("Initiate", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := flow.Begin(context.Background(), validForm())
	assert.NoError(t, err)

	// Stock is already reserved server-side; a second submit must not create
	// another order.
	_, err = flow.Begin(context.Background(), validForm())
	assert.ErrorIs(t, err, checkout.ErrOrderAlreadyCreated)
	orders.AssertNumberOfCalls(t, "CreateOrder", 1)
}

func TestFlow_HandleSuccess_ConfirmsAndCleansUp(t *testing.T) {
	flow, orders, gateway, draft, cart, cartAPI := newFlow(t)
	draft.SetOrderItems([]models.CartItem{draftItem(9, 1, 30000)})

	created := &models.Order{ID: 5, OrderNumber: "ord-5", Status: models.OrderPending, TotalAmount: 33000}
	orders.On("CreateOrder", mock.Anything, mock.Anything).Return(created, nil).Once()
	gateway.On("Initiate", mock.Anything, mock.Anything).Return(nil).Once()
	_, err := flow.Begin(context.Background(), validForm())
	assert.NoError(t, err)

	paid := &models.Order{ID: 5, OrderNumber: "ord-5", Status: models.OrderPaid, TotalAmount: 33000}
	gateway.On("Confirm", mock.Anything, models.ConfirmOrderRequest{
		PaymentKey: "pay-key-1",
		OrderID:    "ord-5",
		Amount:     33000,
	}).Return(paid, nil).Once()
	// Purchased lines are gone from the server cart; the store re-fetches.
	cartAPI.On("GetCart", mock.Anything).Return(&models.Cart{}, nil).Once()

	confirmed, err := flow.HandleSuccess(context.Background(), "pay-key-1", "ord-5", 33000)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderPaid, confirmed.Status)
	assert.Equal(t, checkout.PhaseDone, flow.Phase())
	assert.True(t, draft.Empty())
	assert.Empty(t, cart.Items())
	gateway.AssertExpectations(t)
	cartAPI.AssertExpectations(t)
}

func TestFlow_HandleSuccess_AmountMismatchFails(t *testing.T) {
	flow, orders, gateway, draft, _, _ := newFlow(t)
	draft.SetOrderItems([]models.CartItem{draftItem(9, 1, 30000)})

	created := &models.Order{ID: 5, OrderNumber: "ord-5", Status: models.OrderPending, TotalAmount: 33000}
	orders.On("CreateOrder", mock.Anything, mock.Anything).Return(created, nil).Once()
	gateway.On("Initiate", mock.Anything, mock.Anything).Return(nil).Once()
	_, err := flow.Begin(context.Background(), validForm())
	assert.NoError(t, err)

	gateway.On("Confirm", mock.Anything, mock.Anything).Return(nil, &api.APIError{
		Status:  400,
		Message: "payment amount does not match the order total",
	}).Once()

	_, err = flow.HandleSuccess(context.Background(), "pay-key-1", "ord-5", 32000)
	assert.Error(t, err)
	assert.Equal(t, checkout.PhaseFailed, flow.Phase())
	// The provider's message survives verbatim for the failure page.
	assert.Equal(t, "payment amount does not match the order total", flow.Failure().Message)
	// The draft is kept: the order stays unconfirmed server-side.
	assert.False(t, draft.Empty())
}

func TestFlow_HandleSuccess_CallbackBeforePaymentIgnored(t *testing.T) {
	flow, _, _, draft, _, _ := newFlow(t)
	draft.SetOrderItems([]models.CartItem{draftItem(9, 1, 30000)})

	// A callback for a flow that never reached payment collection is
	// rejected without touching the phase.
	_, err := flow.HandleSuccess(context.Background(), "pay-key-1", "ord-5", 33000)
	assert.ErrorIs(t, err, checkout.ErrBadCallback)
	assert.Equal(t, checkout.PhaseDrafting, flow.Phase())
	assert.Nil(t, flow.Failure())
}

func TestFlow_HandleSuccess_MalformedCallbackFailsCollection(t *testing.T) {
	flow, orders, gateway, draft, _, _ := newFlow(t)
	draft.SetOrderItems([]models.CartItem{draftItem(9, 1, 30000)})

	created := &models.Order{ID: 5, OrderNumber: "ord-5", Status: models.OrderPending, TotalAmount: 33000}
	orders.On("CreateOrder", mock.Anything, mock.Anything).Return(created, nil).Once()
	gateway.On("Initiate", mock.Anything, mock.Anything).Return(nil).Once()
	_, err := flow.Begin(context.Background(), validForm())
	assert.NoError(t, err)

	_, err = flow.HandleSuccess(context.Background(), "", "ord-5", 33000)
	assert.ErrorIs(t, err, checkout.ErrBadCallback)
	assert.Equal(t, checkout.PhaseFailed, flow.Phase())
	gateway.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything)
}

func TestFlow_HandleSuccess_RedeliveredCallbackKeepsDone(t *testing.T) {
	flow, orders, gateway, draft, _, cartAPI := newFlow(t)
	draft.SetOrderItems([]models.CartItem{draftItem(9, 1, 30000)})

	created := &models.Order{ID: 5, OrderNumber: "ord-5", Status: models.OrderPending, TotalAmount: 33000}
	orders.On("CreateOrder", mock.Anything, mock.Anything).Return(created, nil).Once()
	gateway.On("Initiate", mock.Anything, mock.Anything).Return(nil).Once()
	_, err := flow.Begin(context.Background(), validForm())
	assert.NoError(t, err)

	paid := &models.Order{ID: 5, OrderNumber: "ord-5", Status: models.OrderPaid, TotalAmount: 33000}
	gateway.On("Confirm", mock.Anything, mock.Anything).Return(paid, nil).Once()
	cartAPI.On("GetCart", mock.Anything).Return(&models.Cart{}, nil).Once()

	_, err = flow.HandleSuccess(context.Background(), "pay-key-1", "ord-5", 33000)
	assert.NoError(t, err)
	assert.Equal(t, checkout.PhaseDone, flow.Phase())

	// The success URL reloading must not unsettle the checkout.
	_, err = flow.HandleSuccess(context.Background(), "pay-key-1", "ord-5", 33000)
	assert.ErrorIs(t, err, checkout.ErrBadCallback)
	assert.Equal(t, checkout.PhaseDone, flow.Phase())
	assert.Nil(t, flow.Failure())
	gateway.AssertNumberOfCalls(t, "Confirm", 1)

	// Neither must a stray failure callback.
	flow.HandleFailure("PAY_PROCESS_CANCELED", "the user canceled the payment")
	assert.Equal(t, checkout.PhaseDone, flow.Phase())
	assert.Nil(t, flow.Failure())
}

func TestFlow_HandleFailure_RetryAndAbandon(t *testing.T) {
	flow, orders, gateway, draft, _, _ := newFlow(t)
	draft.SetOrderItems([]models.CartItem{draftItem(9, 1, 30000)})

	created := &models.Order{ID: 5, OrderNumber: "ord-5", Status: models.OrderPending, TotalAmount: 33000}
	orders.On("CreateOrder", mock.Anything, mock.Anything).Return(created, nil).Twice()
	gateway.On("Initiate", mock.Anything, mock.Anything).Return(nil).Twice()

	_, err := flow.Begin(context.Background(), validForm())
	assert.NoError(t, err)

	flow.HandleFailure("PAY_PROCESS_CANCELED", "the user canceled the payment")
	assert.Equal(t, checkout.PhaseFailed, flow.Phase())
	assert.Equal(t, "PAY_PROCESS_CANCELED", flow.Failure().Code)
	assert.Equal(t, "the user canceled the payment", flow.Failure().Message)

	// Retry keeps the staged items and returns to drafting.
	flow.Retry()
	assert.Equal(t, checkout.PhaseDrafting, flow.Phase())
	assert.Nil(t, flow.Failure())
	assert.False(t, draft.Empty())

	_, err = flow.Begin(context.Background(), validForm())
	assert.NoError(t, err)

	flow.HandleFailure("REJECT_CARD_COMPANY", "the card was declined")
	flow.Abandon()
	assert.Equal(t, checkout.PhaseDrafting, flow.Phase())
	assert.True(t, draft.Empty())
}

func TestFlow_HandleFailure_IgnoredOutsidePayment(t *testing.T) {
	flow, _, _, draft, _, _ := newFlow(t)
	draft.SetOrderItems([]models.CartItem{draftItem(9, 1, 30000)})

	// A failure callback for a flow still drafting changes nothing.
	flow.HandleFailure("PAY_PROCESS_CANCELED", "the user canceled the payment")
	assert.Equal(t, checkout.PhaseDrafting, flow.Phase())
	assert.Nil(t, flow.Failure())
}
