package stubserver

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"boutique/internal/models"
)

// handleGetCart returns the user's cart with lines hydrated from the catalog.
func (s *Server) handleGetCart(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var rows []cartRow
	if err := s.DB.Where("user_id = ?", userID).Order("id").Find(&rows).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve cart",
			"error":   err.Error(),
		})
	}

	cart := models.Cart{Items: make([]models.CartItem, 0, len(rows))}
	for _, row := range rows {
		item, err := cartItemFromRow(s.DB, row)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not retrieve cart",
				"error":   err.Error(),
			})
		}
		cart.Items = append(cart.Items, item)
	}
	return c.JSON(cart)
}

type addToCartRequest struct {
	ProductSizeID int `json:"productSizeId" validate:"required,gt=0"`
	Quantity      int `json:"quantity" validate:"required,gte=1"`
}

// handleAddToCart adds a variant to the cart. An add for a variant already in
// the cart merges into the existing line; this is the server-side rule the
// client deliberately does not try to predict.
func (s *Server) handleAddToCart(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req addToCartRequest
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

	var size models.ProductSize
	if err := s.DB.First(&size, req.ProductSizeID).Error; err != nil {
		if notFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Variant not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add to cart",
			"error":   err.Error(),
		})
	}

	var row cartRow
	err := s.DB.Where("user_id = ? AND product_size_id = ?", userID, req.ProductSizeID).First(&row).Error
	switch {
	case err == nil:
		row.Quantity += req.Quantity
		if row.Quantity > size.Stock {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": fmt.Sprintf("insufficient stock (requested: %d, available: %d)", row.Quantity, size.Stock),
			})
		}
		err = s.DB.Save(&row).Error
	case notFound(err):
		if req.Quantity > size.Stock {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": fmt.Sprintf("insufficient stock (requested: %d, available: %d)", req.Quantity, size.Stock),
			})
		}
		row = cartRow{UserID: userID, ProductSizeID: req.ProductSizeID, Quantity: req.Quantity}
		err = s.DB.Create(&row).Error
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add to cart",
			"error":   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusCreated)
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

func (s *Server) handleUpdateCartItem(c *fiber.Ctx) error {
	userID := currentUserID(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid cart item id"})
	}

	var req updateCartItemRequest
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

	var row cartRow
	if err := s.DB.Where("id = ? AND user_id = ?", id, userID).First(&row).Error; err != nil {
		if notFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Cart item not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update cart item",
			"error":   err.Error(),
		})
	}

	var size models.ProductSize
	if err := s.DB.First(&size, row.ProductSizeID).Error; err != nil {
		if notFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Variant not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update cart item",
			"error":   err.Error(),
		})
	}
	if req.Quantity > size.Stock {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": fmt.Sprintf("insufficient stock (requested: %d, available: %d)", req.Quantity, size.Stock),
		})
	}

	row.Quantity = req.Quantity
	if err := s.DB.Save(&row).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update cart item",
			"error":   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusOK)
}

func (s *Server) handleRemoveCartItem(c *fiber.Ctx) error {
	userID := currentUserID(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid cart item id"})
	}

	res := s.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&cartRow{})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove cart item",
			"error":   res.Error.Error(),
		})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Cart item not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// cartItemFromRow hydrates a durable cart line into the nested shape clients
// consume, with the current catalog price and stock.
func cartItemFromRow(db *gorm.DB, row cartRow) (models.CartItem, error) {
	var size models.ProductSize
	if err := db.First(&size, row.ProductSizeID).Error; err != nil {
		return models.CartItem{}, fmt.Errorf("load size %d: %w", row.ProductSizeID, err)
	}
	var color models.ProductColor
	if err := db.Preload("Images").First(&color, size.ProductColorID).Error; err != nil {
		return models.CartItem{}, fmt.Errorf("load color %d: %w", size.ProductColorID, err)
	}
	var product models.Product
	if err := db.First(&product, color.ProductID).Error; err != nil {
		return models.CartItem{}, fmt.Errorf("load product %d: %w", color.ProductID, err)
	}

	images := make([]models.CartItemImage, 0, len(color.Images))
	for _, img := range color.Images {
		images = append(images, models.CartItemImage{URL: img.URL})
	}

	return models.CartItem{
		ID:       row.ID,
		Quantity: row.Quantity,
		ProductSize: models.CartItemSize{
			ID:    size.ID,
			Size:  size.Size,
			Stock: size.Stock,
			ProductColor: models.CartItemColor{
				ColorName: color.ColorName,
				HexCode:   color.HexCode,
				Product: models.CartItemProduct{
					ID:    product.ID,
					Name:  product.Name,
					Price: product.Price,
					Style: product.Style,
				},
				Images: images,
			},
		},
	}, nil
}
