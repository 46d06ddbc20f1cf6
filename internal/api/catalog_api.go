package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"boutique/internal/models"
)

// ProductAPI is the public catalog contract.
type ProductAPI interface {
	ListProducts(ctx context.Context, q models.ProductQuery) (*models.ProductList, error)
	GetProduct(ctx context.Context, productID int) (*models.Product, error)
}

// CategoryAPI is the public category-tree contract. No token required.
type CategoryAPI interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, categoryID int) (*models.CategoryDetail, error)
}

// CatalogClient serves both product and category reads.
type CatalogClient struct {
	c *Client
}

// NewCatalogClient creates a CatalogClient on the shared request layer.
func NewCatalogClient(c *Client) *CatalogClient {
	return &CatalogClient{c: c}
}

// ListProducts queries the catalog. Multi-valued filters are encoded as
// repeated query parameters (styles=RACING&styles=JACKET).
func (cc *CatalogClient) ListProducts(ctx context.Context, q models.ProductQuery) (*models.ProductList, error) {
	values := url.Values{}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.CategoryID > 0 {
		values.Set("categoryId", strconv.Itoa(q.CategoryID))
	}
	for _, s := range q.Styles {
		values.Add("styles", s)
	}
	for _, g := range q.Genders {
		values.Add("genders", g)
	}
	for _, s := range q.Sizes {
		values.Add("sizes", s)
	}

	var list models.ProductList
	if err := cc.c.get(ctx, "/products", values, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetProduct fetches one product with colors, sizes and images.
func (cc *CatalogClient) GetProduct(ctx context.Context, productID int) (*models.Product, error) {
	var p models.Product
	if err := cc.c.get(ctx, fmt.Sprintf("/products/%d", productID), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListCategories fetches the whole category tree as a flat list.
func (cc *CatalogClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := cc.c.get(ctx, "/categories", nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// GetCategory fetches one category with its breadcrumb chain.
func (cc *CatalogClient) GetCategory(ctx context.Context, categoryID int) (*models.CategoryDetail, error) {
	var cat models.CategoryDetail
	if err := cc.c.get(ctx, fmt.Sprintf("/categories/%d", categoryID), nil, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}
