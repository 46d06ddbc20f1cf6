package api

import (
	"context"
	"fmt"

	"boutique/internal/models"
)

// OrderAPI is the order service contract consumed by the checkout flow and
// the order history views.
type OrderAPI interface {
	CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error)
	GetOrders(ctx context.Context) ([]models.Order, error)
	GetOrderDetail(ctx context.Context, orderID int) (*models.Order, error)
	CancelOrder(ctx context.Context, orderID int, reason string) (*models.CancelOrderResponse, error)
	ConfirmOrder(ctx context.Context, req models.ConfirmOrderRequest) (*models.Order, error)
}

// OrderClient talks to the order service over HTTP.
type OrderClient struct {
	c *Client
}

// NewOrderClient creates an OrderClient on the shared request layer.
func NewOrderClient(c *Client) *OrderClient {
	return &OrderClient{c: c}
}

// CreateOrder creates a PENDING order; the server reserves stock here.
func (oc *OrderClient) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := oc.c.post(ctx, "/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrders lists the authenticated user's orders, newest first.
func (oc *OrderClient) GetOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := oc.c.get(ctx, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrderDetail fetches one order with its frozen lines.
func (oc *OrderClient) GetOrderDetail(ctx context.Context, orderID int) (*models.Order, error) {
	var order models.Order
	if err := oc.c.get(ctx, fmt.Sprintf("/orders/%d", orderID), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CancelOrder cancels a PENDING order with a user-supplied reason.
func (oc *OrderClient) CancelOrder(ctx context.Context, orderID int, reason string) (*models.CancelOrderResponse, error) {
	var resp models.CancelOrderResponse
	body := models.CancelOrderRequest{Reason: reason}
	if err := oc.c.post(ctx, fmt.Sprintf("/orders/%d/cancel", orderID), body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ConfirmOrder settles payment with the provider callback parameters.
func (oc *OrderClient) ConfirmOrder(ctx context.Context, req models.ConfirmOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := oc.c.post(ctx, "/orders/confirm", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
