package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"boutique/internal/models"
)

// InquiryAPI covers a user's customer-service inquiries. Answering is an
// admin operation and lives on AdminAPI.
type InquiryAPI interface {
	CreateInquiry(ctx context.Context, req models.CreateInquiryRequest) (*models.Inquiry, error)
	ListMyInquiries(ctx context.Context, q models.InquiryQuery) (*models.InquiryList, error)
	GetInquiryDetail(ctx context.Context, inquiryID int) (*models.Inquiry, error)
}

// InquiryClient talks to the inquiry endpoints over HTTP.
type InquiryClient struct {
	c *Client
}

// NewInquiryClient creates an InquiryClient on the shared request layer.
func NewInquiryClient(c *Client) *InquiryClient {
	return &InquiryClient{c: c}
}

// CreateInquiry submits a new inquiry; it starts PENDING.
func (ic *InquiryClient) CreateInquiry(ctx context.Context, req models.CreateInquiryRequest) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	if err := ic.c.post(ctx, "/inquiries", req, &inquiry); err != nil {
		return nil, err
	}
	return &inquiry, nil
}

// ListMyInquiries pages through the authenticated user's inquiries.
func (ic *InquiryClient) ListMyInquiries(ctx context.Context, q models.InquiryQuery) (*models.InquiryList, error) {
	values := url.Values{}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}

	var list models.InquiryList
	if err := ic.c.get(ctx, "/inquiries/me", values, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetInquiryDetail fetches one of the user's own inquiries.
func (ic *InquiryClient) GetInquiryDetail(ctx context.Context, inquiryID int) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	if err := ic.c.get(ctx, fmt.Sprintf("/inquiries/%d", inquiryID), nil, &inquiry); err != nil {
		return nil, err
	}
	return &inquiry, nil
}
