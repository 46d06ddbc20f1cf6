package api

import (
	"context"
	"fmt"

	"boutique/internal/models"
)

// CartAPI is the remote cart service contract consumed by the cart store.
type CartAPI interface {
	GetCart(ctx context.Context) (*models.Cart, error)
	AddToCart(ctx context.Context, productSizeID, quantity int) error
	UpdateCartItem(ctx context.Context, cartItemID, quantity int) error
	RemoveCartItem(ctx context.Context, cartItemID int) error
}

// CartClient talks to the remote cart service over HTTP.
type CartClient struct {
	c *Client
}

// NewCartClient creates a CartClient on the shared request layer.
func NewCartClient(c *Client) *CartClient {
	return &CartClient{c: c}
}

// GetCart fetches the full cart for the authenticated user.
func (cc *CartClient) GetCart(ctx context.Context) (*models.Cart, error) {
	var cart models.Cart
	if err := cc.c.get(ctx, "/cart", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddToCart adds quantity of a variant. The server may merge the request into
// an existing identical line, so callers re-fetch rather than guess.
func (cc *CartClient) AddToCart(ctx context.Context, productSizeID, quantity int) error {
	body := map[string]int{"productSizeId": productSizeID, "quantity": quantity}
	return cc.c.post(ctx, "/cart", body, nil)
}

// UpdateCartItem sets the quantity of an existing line.
func (cc *CartClient) UpdateCartItem(ctx context.Context, cartItemID, quantity int) error {
	body := map[string]int{"quantity": quantity}
	return cc.c.put(ctx, fmt.Sprintf("/cart/%d", cartItemID), body, nil)
}

// RemoveCartItem deletes a line from the server cart.
func (cc *CartClient) RemoveCartItem(ctx context.Context, cartItemID int) error {
	return cc.c.delete(ctx, fmt.Sprintf("/cart/%d", cartItemID))
}
