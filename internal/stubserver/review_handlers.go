package stubserver

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"boutique/internal/models"
)

func (s *Server) handleListProductReviews(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid product id"})
	}

	var reviews []models.Review
	err = s.DB.Preload("Images").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve reviews",
			"error":   err.Error(),
		})
	}
	return c.JSON(reviews)
}

func (s *Server) handleListMyReviews(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var reviews []models.Review
	err := s.DB.Preload("Images").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve reviews",
			"error":   err.Error(),
		})
	}

	out := make([]models.MyReview, 0, len(reviews))
	for _, r := range reviews {
		my := models.MyReview{
			ID:        r.ID,
			Rating:    r.Rating,
			Content:   r.Content,
			Images:    r.Images,
			CreatedAt: r.CreatedAt,
		}
		var p models.Product
		if err := s.DB.Preload("Colors.Images").First(&p, r.ProductID).Error; err == nil {
			my.Product = models.MyReviewProduct{ID: p.ID, Name: p.Name}
			if len(p.Colors) > 0 && len(p.Colors[0].Images) > 0 {
				my.Product.Thumbnail = p.Colors[0].Images[0].URL
			}
		}
		out = append(out, my)
	}
	return c.JSON(out)
}

func (s *Server) handleCreateReview(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req models.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := s.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrors(err),
		})
	}

	var product models.Product
	if err := s.DB.First(&product, req.ProductID).Error; err != nil {
		if notFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create review",
			"error":   err.Error(),
		})
	}

	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unknown user"})
	}

	review := models.Review{
		ProductID: req.ProductID,
		UserID:    userID,
		Rating:    req.Rating,
		Content:   req.Content,
		User:      models.ReviewAuthor{Name: user.Name},
	}
	for _, u := range req.ImageURLs {
		review.Images = append(review.Images, models.ReviewImage{URL: u})
	}
	if err := s.DB.Create(&review).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create review",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

func (s *Server) handleUpdateReview(c *fiber.Ctx) error {
	userID := currentUserID(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid review id"})
	}

	var review models.Review
	if err := s.DB.Preload("Images").Where("id = ? AND user_id = ?", id, userID).First(&review).Error; err != nil {
		if notFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Review not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update review",
			"error":   err.Error(),
		})
	}

	var req models.UpdateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := s.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrors(err),
		})
	}

	if req.Rating != 0 {
		review.Rating = req.Rating
	}
	if req.Content != "" {
		review.Content = req.Content
	}
	if req.ImageURLs != nil {
		if err := s.DB.Where("review_id = ?", review.ID).Delete(&models.ReviewImage{}).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not update review",
				"error":   err.Error(),
			})
		}
		review.Images = nil
		for _, u := range req.ImageURLs {
			review.Images = append(review.Images, models.ReviewImage{ReviewID: review.ID, URL: u})
		}
	}
	if err := s.DB.Save(&review).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update review",
			"error":   err.Error(),
		})
	}
	return c.JSON(review)
}

func (s *Server) handleDeleteReview(c *fiber.Ctx) error {
	userID := currentUserID(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid review id"})
	}

	res := s.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Review{})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete review",
			"error":   res.Error.Error(),
		})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Review not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
