package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/go-playground/validator/v10"

	"boutique/internal/api"
	"boutique/internal/models"
	"boutique/internal/stores"
)

// Phase is the checkout state. Every transition that depends on a network
// call can fail; failures land in PhaseFailed and are retried only by the
// user, never automatically.
type Phase string

const (
	PhaseDrafting          Phase = "DRAFTING"
	PhaseOrderCreated      Phase = "ORDER_CREATED"
	PhasePaymentCollecting Phase = "PAYMENT_COLLECTING"
	PhaseConfirming        Phase = "CONFIRMING"
	PhaseDone              Phase = "DONE"
	PhaseFailed            Phase = "FAILED"
)

var (
	// ErrOrderAlreadyCreated guards against a duplicate submit once the
	// server has reserved stock for this draft.
	ErrOrderAlreadyCreated = errors.New("checkout: order already created for this draft")

	// ErrBadCallback is returned for a success callback with missing
	// parameters or one arriving in the wrong phase.
	ErrBadCallback = errors.New("checkout: invalid payment callback")
)

// RecipientForm is the delivery form the user fills while drafting.
type RecipientForm struct {
	RecipientName   string
	RecipientPhone  string
	ZipCode         string
	Address1        string
	Address2        string
	GatePassword    string
	DeliveryRequest string
}

// Failure is the terminal error surfaced on the failure page.
type Failure struct {
	Code    string
	Message string
}

// Flow sequences one checkout: order creation, payment collection and
// confirmation. It bridges the order draft to the payment gateway and, on
// success, clears the draft and refreshes the cart.
type Flow struct {
	orders        api.OrderAPI
	gateway       PaymentGateway
	draft         *stores.OrderDraftStore
	cart          *stores.CartStore
	validate      *validator.Validate
	paymentMethod string

	mu      sync.Mutex
	phase   Phase
	order   *models.Order
	amount  int
	failure *Failure
}

// NewFlow creates a checkout flow in the drafting phase.
func NewFlow(orders api.OrderAPI, gateway PaymentGateway, draft *stores.OrderDraftStore, cart *stores.CartStore) *Flow {
	return &Flow{
		orders:        orders,
		gateway:       gateway,
		draft:         draft,
		cart:          cart,
		validate:      validator.New(),
		paymentMethod: "CARD",
		phase:         PhaseDrafting,
	}
}

// Begin validates the form, creates the server-side order (which reserves
// stock and leaves it PENDING) and hands it to the payment widget. Validation
// and the empty-draft guard run before any network call. Once an order
// exists, calling Begin again is an error rather than a duplicate order.
func (f *Flow) Begin(ctx context.Context, form RecipientForm) (*models.Order, error) {
	f.mu.Lock()
	if f.phase != PhaseDrafting {
		f.mu.Unlock()
		return nil, ErrOrderAlreadyCreated
	}
	f.mu.Unlock()

	items := f.draft.Items()
	if len(items) == 0 {
		return nil, stores.ErrEmptyDraft
	}

	productsPrice := f.draft.TotalPrice()
	amount := productsPrice + models.ShippingCost(productsPrice)

	req := models.CreateOrderRequest{
		Items:           make([]models.OrderItemInput, 0, len(items)),
		RecipientName:   form.RecipientName,
		RecipientPhone:  form.RecipientPhone,
		ZipCode:         form.ZipCode,
		Address1:        form.Address1,
		Address2:        form.Address2,
		GatePassword:    form.GatePassword,
		DeliveryRequest: form.DeliveryRequest,
		PaymentMethod:   f.paymentMethod,
	}
	for _, it := range items {
		req.Items = append(req.Items, models.OrderItemInput{
			ProductSizeID: it.ProductSize.ID,
			Quantity:      it.Quantity,
		})
	}
	if err := f.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("checkout form invalid: %w", err)
	}

	order, err := f.orders.CreateOrder(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	f.mu.Lock()
	f.phase = PhaseOrderCreated
	f.order = order
	f.amount = amount
	f.mu.Unlock()

	payReq := PaymentRequest{
		OrderNumber:  order.OrderNumber,
		OrderName:    orderName(items),
		CustomerName: form.RecipientName,
		Amount:       amount,
	}
	if err := f.gateway.Initiate(ctx, payReq); err != nil {
		f.fail("", err.Error())
		return nil, fmt.Errorf("open payment widget: %w", err)
	}

	f.mu.Lock()
	f.phase = PhasePaymentCollecting
	f.mu.Unlock()
	return order, nil
}

// HandleSuccess processes the widget's success callback. It confirms the
// payment server-side; on success the draft is cleared and the cart
// re-fetched so purchased lines disappear. A confirmation failure lands in
// PhaseFailed with the server's message and the order stays PENDING
// server-side.
//
// A callback arriving in any phase other than PaymentCollecting is rejected
// without a transition: widgets redeliver callbacks (double redirect, reload
// of the success URL) and a redelivery must not disturb a settled checkout.
func (f *Flow) HandleSuccess(ctx context.Context, paymentKey, orderNumber string, amount int) (*models.Order, error) {
	f.mu.Lock()
	if f.phase != PhasePaymentCollecting {
		f.mu.Unlock()
		return nil, ErrBadCallback
	}
	if paymentKey == "" || orderNumber == "" || amount <= 0 {
		f.phase = PhaseFailed
		f.failure = &Failure{Message: "invalid payment callback parameters"}
		f.mu.Unlock()
		return nil, ErrBadCallback
	}
	f.phase = PhaseConfirming
	f.mu.Unlock()

	confirmed, err := f.gateway.Confirm(ctx, models.ConfirmOrderRequest{
		PaymentKey: paymentKey,
		OrderID:    orderNumber,
		Amount:     amount,
	})
	if err != nil {
		f.fail("", failureMessage(err))
		return nil, err
	}

	f.draft.ClearOrder()
	if err := f.cart.Fetch(ctx); err != nil {
		// The purchase already settled; a stale cart view is recoverable.
		log.Printf("checkout: cart refresh after confirmation failed: %v", err)
	}

	f.mu.Lock()
	f.phase = PhaseDone
	f.order = confirmed
	f.mu.Unlock()
	return confirmed, nil
}

// HandleFailure processes the widget's failure callback, preserving the
// provider's code and message for the failure page. Like success callbacks,
// a redelivered one arriving outside payment collection is ignored.
func (f *Flow) HandleFailure(code, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.phase != PhasePaymentCollecting && f.phase != PhaseConfirming {
		return
	}
	f.phase = PhaseFailed
	f.failure = &Failure{Code: code, Message: message}
}

// Retry returns a failed checkout to drafting, keeping the draft items.
func (f *Flow) Retry() {
	f.reset()
}

// Abandon gives up on a failed checkout: the draft is cleared and the flow
// returns to drafting.
func (f *Flow) Abandon() {
	f.draft.ClearOrder()
	f.reset()
}

// Phase returns the current checkout phase.
func (f *Flow) Phase() Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

// Order returns the order created for this checkout, or nil while drafting.
func (f *Flow) Order() *models.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.order
}

// Amount returns the final payable amount, shipping included.
func (f *Flow) Amount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.amount
}

// Failure returns the recorded failure, or nil.
func (f *Flow) Failure() *Failure {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failure
}

func (f *Flow) fail(code, message string) {
	f.mu.Lock()
	f.phase = PhaseFailed
	f.failure = &Failure{Code: code, Message: message}
	f.mu.Unlock()
}

func (f *Flow) reset() {
	f.mu.Lock()
	f.phase = PhaseDrafting
	f.order = nil
	f.amount = 0
	f.failure = nil
	f.mu.Unlock()
}

// orderName builds the widget's display name: the first product, plus a
// count of the rest.
func orderName(items []models.CartItem) string {
	if len(items) == 0 {
		return ""
	}
	name := items[0].ProductSize.ProductColor.Product.Name
	if len(items) > 1 {
		return fmt.Sprintf("%s and %d more", name, len(items)-1)
	}
	return name
}

// failureMessage extracts the user-facing text for the failure page, keeping
// the server's message verbatim when there is one.
func failureMessage(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "payment confirmation failed"
}
