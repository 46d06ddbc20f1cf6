package stubserver

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"boutique/internal/models"
)

func (s *Server) handleCreateInquiry(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req models.CreateInquiryRequest
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

	inquiry := models.Inquiry{
		UserID:  userID,
		Type:    req.Type,
		Title:   req.Title,
		Content: req.Content,
		Status:  models.InquiryPending,
	}
	for _, u := range req.ImageURLs {
		inquiry.Images = append(inquiry.Images, models.InquiryImage{URL: u})
	}
	if err := s.DB.Create(&inquiry).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create inquiry",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(inquiry)
}

func (s *Server) handleListMyInquiries(c *fiber.Ctx) error {
	userID := currentUserID(c)
	page, limit := pageParams(c)

	q := s.DB.Model(&models.Inquiry{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not list inquiries",
			"error":   err.Error(),
		})
	}

	var inquiries []models.Inquiry
	err := q.Preload("Images").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&inquiries).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not list inquiries",
			"error":   err.Error(),
		})
	}

	return c.JSON(models.InquiryList{
		Data: inquiries,
		Meta: listMeta(total, page, limit),
	})
}

// handleGetInquiry returns one inquiry. Inquiries are private: another user's
// inquiry reads as not found.
func (s *Server) handleGetInquiry(c *fiber.Ctx) error {
	userID := currentUserID(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid inquiry id"})
	}

	var inquiry models.Inquiry
	err = s.DB.Preload("Images").
		Where("id = ? AND user_id = ?", id, userID).
		First(&inquiry).Error
	if notFound(err) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Inquiry not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve inquiry",
			"error":   err.Error(),
		})
	}
	return c.JSON(inquiry)
}

func (s *Server) handleAdminListInquiries(c *fiber.Ctx) error {
	page, limit := pageParams(c)

	q := s.DB.Model(&models.Inquiry{})
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if typ := c.Query("type"); typ != "" {
		q = q.Where("type = ?", typ)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not list inquiries",
			"error":   err.Error(),
		})
	}

	var inquiries []models.Inquiry
	err := q.Preload("Images").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&inquiries).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not list inquiries",
			"error":   err.Error(),
		})
	}

	out := make([]models.AdminInquiry, 0, len(inquiries))
	for _, inq := range inquiries {
		out = append(out, s.adminInquiry(inq))
	}
	return c.JSON(models.AdminInquiryList{
		Data: out,
		Meta: listMeta(total, page, limit),
	})
}

// handleAdminAnswerInquiry sets or replaces the answer and marks the inquiry
// ANSWERED.
func (s *Server) handleAdminAnswerInquiry(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid inquiry id"})
	}

	var req models.AnswerInquiryRequest
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

	var inquiry models.Inquiry
	if err := s.DB.Preload("Images").First(&inquiry, id).Error; err != nil {
		if notFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Inquiry not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not answer inquiry",
			"error":   err.Error(),
		})
	}

	now := time.Now()
	inquiry.Answer = &req.Answer
	inquiry.AnsweredAt = &now
	inquiry.Status = models.InquiryAnswered
	if err := s.DB.Save(&inquiry).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not answer inquiry",
			"error":   err.Error(),
		})
	}
	return c.JSON(s.adminInquiry(inquiry))
}

// adminInquiry attaches the author to an inquiry for admin views.
func (s *Server) adminInquiry(inq models.Inquiry) models.AdminInquiry {
	out := models.AdminInquiry{Inquiry: inq}
	var user models.User
	if err := s.DB.First(&user, inq.UserID).Error; err == nil {
		out.User = models.AdminInquiryUser{Name: user.Name, Email: user.Email}
	}
	return out
}

// pageParams reads the shared page/limit query parameters.
func pageParams(c *fiber.Ctx) (page, limit int) {
	page, _ = strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.Query("limit"))
	if limit < 1 {
		limit = defaultPageSize
	}
	return page, limit
}

func listMeta(total int64, page, limit int) models.ListMeta {
	lastPage := int(total+int64(limit)-1) / limit
	return models.ListMeta{Total: int(total), Page: page, LastPage: lastPage}
}
