package api

import (
	"context"

	"boutique/internal/models"
)

// AuthAPI is the authentication contract: it yields tokens, it never stores
// them. Session lifetime belongs to the auth store.
type AuthAPI interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
}

// AuthClient talks to the auth endpoints over HTTP.
type AuthClient struct {
	c *Client
}

// NewAuthClient creates an AuthClient on the shared request layer.
func NewAuthClient(c *Client) *AuthClient {
	return &AuthClient{c: c}
}

// Register creates a new account.
func (ac *AuthClient) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	var user models.User
	if err := ac.c.post(ctx, "/auth/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a bearer token and the user record.
func (ac *AuthClient) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := ac.c.post(ctx, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
