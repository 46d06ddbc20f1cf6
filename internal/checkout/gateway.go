package checkout

import (
	"context"
	"fmt"
	"log"

	"boutique/internal/api"
	"boutique/internal/models"
)

// PaymentRequest is what the payment widget needs to collect a payment.
type PaymentRequest struct {
	OrderNumber   string
	OrderName     string
	CustomerName  string
	CustomerEmail string
	Amount        int
}

// PaymentGateway abstracts the payment provider so the concrete widget is
// swappable and testable. Initiate hands the order to the widget; the outcome
// comes back asynchronously through the success/failure callbacks. Confirm
// settles a payment with the provider-issued callback parameters. Cancel
// voids a pending order.
type PaymentGateway interface {
	Initiate(ctx context.Context, req PaymentRequest) error
	Confirm(ctx context.Context, req models.ConfirmOrderRequest) (*models.Order, error)
	Cancel(ctx context.Context, orderID int, reason string) error
}

// APIGateway settles payments through the order service, which holds the
// provider credentials. Initiate only records the hand-off; the widget itself
// runs outside this process and reports back via redirect callbacks.
type APIGateway struct {
	orders api.OrderAPI
}

// NewAPIGateway creates a gateway backed by the order service.
func NewAPIGateway(orders api.OrderAPI) *APIGateway {
	return &APIGateway{orders: orders}
}

func (g *APIGateway) Initiate(ctx context.Context, req PaymentRequest) error {
	log.Printf("payment: widget opened for order %s, amount %d", req.OrderNumber, req.Amount)
	return nil
}

func (g *APIGateway) Confirm(ctx context.Context, req models.ConfirmOrderRequest) (*models.Order, error) {
	order, err := g.orders.ConfirmOrder(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("confirm payment for order %s: %w", req.OrderID, err)
	}
	return order, nil
}

func (g *APIGateway) Cancel(ctx context.Context, orderID int, reason string) error {
	if _, err := g.orders.CancelOrder(ctx, orderID, reason); err != nil {
		return fmt.Errorf("cancel order %d: %w", orderID, err)
	}
	return nil
}
