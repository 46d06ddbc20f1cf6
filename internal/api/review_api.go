package api

import (
	"context"
	"fmt"

	"boutique/internal/models"
)

// ReviewAPI covers product reviews and the reviewer's own listing.
type ReviewAPI interface {
	ListProductReviews(ctx context.Context, productID int) ([]models.Review, error)
	ListMyReviews(ctx context.Context) ([]models.MyReview, error)
	CreateReview(ctx context.Context, req models.CreateReviewRequest) (*models.Review, error)
	UpdateReview(ctx context.Context, reviewID int, req models.UpdateReviewRequest) (*models.Review, error)
	DeleteReview(ctx context.Context, reviewID int) error
}

// ReviewClient talks to the review endpoints over HTTP.
type ReviewClient struct {
	c *Client
}

// NewReviewClient creates a ReviewClient on the shared request layer.
func NewReviewClient(c *Client) *ReviewClient {
	return &ReviewClient{c: c}
}

func (rc *ReviewClient) ListProductReviews(ctx context.Context, productID int) ([]models.Review, error) {
	var reviews []models.Review
	if err := rc.c.get(ctx, fmt.Sprintf("/products/%d/reviews", productID), nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (rc *ReviewClient) ListMyReviews(ctx context.Context) ([]models.MyReview, error) {
	var reviews []models.MyReview
	if err := rc.c.get(ctx, "/reviews/me", nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (rc *ReviewClient) CreateReview(ctx context.Context, req models.CreateReviewRequest) (*models.Review, error) {
	var review models.Review
	if err := rc.c.post(ctx, "/reviews", req, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (rc *ReviewClient) UpdateReview(ctx context.Context, reviewID int, req models.UpdateReviewRequest) (*models.Review, error) {
	var review models.Review
	if err := rc.c.put(ctx, fmt.Sprintf("/reviews/%d", reviewID), req, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (rc *ReviewClient) DeleteReview(ctx context.Context, reviewID int) error {
	return rc.c.delete(ctx, fmt.Sprintf("/reviews/%d", reviewID))
}
