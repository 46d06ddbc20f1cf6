package models

import "time"

// ReviewImage is a photo attached to a review.
type ReviewImage struct {
	ID       int    `json:"id" gorm:"primaryKey;autoIncrement"`
	ReviewID int    `json:"-"`
	URL      string `json:"url"`
}

// ReviewAuthor is the minimal public author info on a review.
type ReviewAuthor struct {
	Name string `json:"name"`
}

// Review is a product review as shown on a product page.
type Review struct {
	ID        int           `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductID int           `json:"-"`
	UserID    int           `json:"-"`
	Rating    int           `json:"rating" validate:"required,gte=1,lte=5"`
	Content   string        `json:"content"`
	User      ReviewAuthor  `json:"user" gorm:"serializer:json"`
	Images    []ReviewImage `json:"images" gorm:"foreignKey:ReviewID"`
	CreatedAt time.Time     `json:"createdAt"`
}

// MyReviewProduct is the product summary on a user's own review listing.
type MyReviewProduct struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// MyReview is a review as shown on the reviewer's own list.
type MyReview struct {
	ID        int             `json:"id"`
	Rating    int             `json:"rating"`
	Content   string          `json:"content"`
	Product   MyReviewProduct `json:"product"`
	Images    []ReviewImage   `json:"images"`
	CreatedAt time.Time       `json:"createdAt"`
}

// CreateReviewRequest creates a review for a purchased product.
type CreateReviewRequest struct {
	ProductID int      `json:"productId" validate:"required,gt=0"`
	Rating    int      `json:"rating" validate:"required,gte=1,lte=5"`
	Content   string   `json:"content" validate:"required"`
	ImageURLs []string `json:"imageUrls,omitempty" validate:"omitempty,dive,url"`
}

// UpdateReviewRequest edits an existing review. Zero fields are left as-is.
type UpdateReviewRequest struct {
	Rating    int      `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	Content   string   `json:"content,omitempty"`
	ImageURLs []string `json:"imageUrls,omitempty" validate:"omitempty,dive,url"`
}
