package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"boutique/internal/models"
)

// AdminAPI is the management contract behind the admin console. All calls
// require an ADMIN role token.
type AdminAPI interface {
	CreateCategory(ctx context.Context, cat models.Category) (*models.Category, error)
	UpdateCategory(ctx context.Context, categoryID int, cat models.Category) (*models.Category, error)
	DeleteCategory(ctx context.Context, categoryID int) error

	CreateProduct(ctx context.Context, p models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, productID int, p models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, productID int) error

	ListInquiries(ctx context.Context, q models.AdminInquiryQuery) (*models.AdminInquiryList, error)
	AnswerInquiry(ctx context.Context, inquiryID int, req models.AnswerInquiryRequest) (*models.AdminInquiry, error)
}

// AdminClient talks to the admin endpoints over HTTP.
type AdminClient struct {
	c *Client
}

// NewAdminClient creates an AdminClient on the shared request layer.
func NewAdminClient(c *Client) *AdminClient {
	return &AdminClient{c: c}
}

func (ac *AdminClient) CreateCategory(ctx context.Context, cat models.Category) (*models.Category, error) {
	var created models.Category
	if err := ac.c.post(ctx, "/admin/categories", cat, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (ac *AdminClient) UpdateCategory(ctx context.Context, categoryID int, cat models.Category) (*models.Category, error) {
	var updated models.Category
	if err := ac.c.put(ctx, fmt.Sprintf("/admin/categories/%d", categoryID), cat, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (ac *AdminClient) DeleteCategory(ctx context.Context, categoryID int) error {
	return ac.c.delete(ctx, fmt.Sprintf("/admin/categories/%d", categoryID))
}

func (ac *AdminClient) CreateProduct(ctx context.Context, p models.Product) (*models.Product, error) {
	var created models.Product
	if err := ac.c.post(ctx, "/admin/products", p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (ac *AdminClient) UpdateProduct(ctx context.Context, productID int, p models.Product) (*models.Product, error) {
	var updated models.Product
	if err := ac.c.put(ctx, fmt.Sprintf("/admin/products/%d", productID), p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (ac *AdminClient) DeleteProduct(ctx context.Context, productID int) error {
	return ac.c.delete(ctx, fmt.Sprintf("/admin/products/%d", productID))
}

func (ac *AdminClient) ListInquiries(ctx context.Context, q models.AdminInquiryQuery) (*models.AdminInquiryList, error) {
	values := url.Values{}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Status != "" {
		values.Set("status", string(q.Status))
	}
	if q.Type != "" {
		values.Set("type", string(q.Type))
	}

	var list models.AdminInquiryList
	if err := ac.c.get(ctx, "/admin/inquiries", values, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (ac *AdminClient) AnswerInquiry(ctx context.Context, inquiryID int, req models.AnswerInquiryRequest) (*models.AdminInquiry, error) {
	var answered models.AdminInquiry
	if err := ac.c.put(ctx, fmt.Sprintf("/admin/inquiries/%d/answer", inquiryID), req, &answered); err != nil {
		return nil, err
	}
	return &answered, nil
}
