package stubserver

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"boutique/internal/models"
)

// handleCreateOrder creates a PENDING order. Stock is decremented here, line
// prices are frozen, and the purchased lines leave the durable cart, all in
// one transaction.
func (s *Server) handleCreateOrder(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req models.CreateOrderRequest
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

	order := models.Order{
		OrderNumber:     uuid.New().String(),
		UserID:          userID,
		Status:          models.OrderPending,
		RecipientName:   req.RecipientName,
		RecipientPhone:  req.RecipientPhone,
		ZipCode:         req.ZipCode,
		Address1:        req.Address1,
		Address2:        req.Address2,
		GatePassword:    req.GatePassword,
		DeliveryRequest: req.DeliveryRequest,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		productsPrice := 0
		sizeIDs := make([]int, 0, len(req.Items))
		for _, input := range req.Items {
			var size models.ProductSize
			if err := tx.First(&size, input.ProductSizeID).Error; err != nil {
				return &orderError{fiber.StatusBadRequest, fmt.Sprintf("variant %d not found", input.ProductSizeID)}
			}
			if size.Stock < input.Quantity {
				return &orderError{fiber.StatusBadRequest,
					fmt.Sprintf("insufficient stock for variant %d (requested: %d, available: %d)",
						size.ID, input.Quantity, size.Stock)}
			}
			size.Stock -= input.Quantity
			if err := tx.Save(&size).Error; err != nil {
				return err
			}

			row := cartRow{ProductSizeID: input.ProductSizeID, Quantity: input.Quantity}
			item, err := cartItemFromRow(tx, row)
			if err != nil {
				return err
			}
			order.Items = append(order.Items, models.OrderItem{
				Quantity:    input.Quantity,
				Price:       item.UnitPrice(),
				ProductSize: item.ProductSize,
			})
			productsPrice += item.UnitPrice() * input.Quantity
			sizeIDs = append(sizeIDs, input.ProductSizeID)
		}

		order.TotalAmount = productsPrice + models.ShippingCost(productsPrice)
		order.Payment = &models.OrderPayment{
			Status: "READY",
			Method: req.PaymentMethod,
			Amount: order.TotalAmount,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Purchased lines leave the cart; the client re-fetches after
		// confirmation and sees them gone.
		return tx.Where("user_id = ? AND product_size_id IN ?", userID, sizeIDs).Delete(&cartRow{}).Error
	})
	if err != nil {
		if oe, ok := err.(*orderError); ok {
			return c.Status(oe.status).JSON(fiber.Map{"message": oe.message})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create order",
			"error":   err.Error(),
		})
	}

	s.publishOrderEvent("order.created", &order)
	return c.Status(fiber.StatusCreated).JSON(order)
}

func (s *Server) handleListOrders(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var orders []models.Order
	err := s.DB.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(orders)
}

func (s *Server) handleGetOrder(c *fiber.Ctx) error {
	userID := currentUserID(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid order id"})
	}

	var order models.Order
	err = s.DB.Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error
	if notFound(err) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve order",
			"error":   err.Error(),
		})
	}
	return c.JSON(order)
}

// handleConfirmOrder settles payment for a PENDING order. The amount from the
// provider callback must match the stored order total exactly; a mismatch is
// rejected and the order stays PENDING.
func (s *Server) handleConfirmOrder(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req models.ConfirmOrderRequest
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

	var order models.Order
	err := s.DB.Preload("Items").
		Where("order_number = ? AND user_id = ?", req.OrderID, userID).
		First(&order).Error
	if notFound(err) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not confirm order",
			"error":   err.Error(),
		})
	}

	if order.Status != models.OrderPending {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": fmt.Sprintf("order %s is not awaiting payment", order.OrderNumber),
		})
	}
	if req.Amount != order.TotalAmount {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "payment amount does not match the order total",
		})
	}

	order.Status = models.OrderPaid
	if order.Payment != nil {
		order.Payment.Status = "DONE"
	}
	if err := s.DB.Save(&order).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not confirm order",
			"error":   err.Error(),
		})
	}

	s.publishOrderEvent("order.confirmed", &order)
	return c.JSON(order)
}

// handleCancelOrder cancels a PENDING order and restores its stock.
func (s *Server) handleCancelOrder(c *fiber.Ctx) error {
	userID := currentUserID(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid order id"})
	}

	var req models.CancelOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	var order models.Order
	err = s.DB.Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error
	if notFound(err) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not cancel order",
			"error":   err.Error(),
		})
	}
	if order.Status != models.OrderPending {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": fmt.Sprintf("order in status %s cannot be canceled", order.Status),
		})
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			var size models.ProductSize
			if err := tx.First(&size, item.ProductSize.ID).Error; err != nil {
				continue // variant may have been deleted since
			}
			size.Stock += item.Quantity
			if err := tx.Save(&size).Error; err != nil {
				return err
			}
		}
		order.Status = models.OrderCanceled
		return tx.Save(&order).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not cancel order",
			"error":   err.Error(),
		})
	}

	return c.JSON(models.CancelOrderResponse{
		Message: "order canceled",
		OrderID: order.ID,
		Status:  string(models.OrderCanceled),
	})
}

// orderError carries an HTTP status out of a transaction closure.
type orderError struct {
	status  int
	message string
}

func (e *orderError) Error() string { return e.message }
