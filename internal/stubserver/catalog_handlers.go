package stubserver

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"boutique/internal/models"
)

const defaultPageSize = 12

// handleListProducts serves the filtered, paged catalog listing. Multi-valued
// filters arrive as repeated query parameters.
func (s *Server) handleListProducts(c *fiber.Ctx) error {
	page, limit := pageParams(c)

	q := s.DB.Model(&models.Product{})
	if categoryID, err := strconv.Atoi(c.Query("categoryId")); err == nil && categoryID > 0 {
		q = q.Where("category_id = ?", categoryID)
	}
	if styles := queryValues(c, "styles"); len(styles) > 0 {
		q = q.Where("style IN ?", styles)
	}
	if genders := queryValues(c, "genders"); len(genders) > 0 {
		q = q.Where("gender IN ?", genders)
	}
	if sizes := queryValues(c, "sizes"); len(sizes) > 0 {
		sub := s.DB.Table("product_sizes").
			Select("product_colors.product_id").
			Joins("JOIN product_colors ON product_colors.id = product_sizes.product_color_id").
			Where("product_sizes.size IN ?", sizes)
		q = q.Where("id IN (?)", sub)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not list products",
			"error":   err.Error(),
		})
	}

	var products []models.Product
	err := q.Preload("Category").
		Preload("Colors.Images").
		Preload("Colors.Sizes").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not list products",
			"error":   err.Error(),
		})
	}

	return c.JSON(models.ProductList{
		Data: products,
		Meta: listMeta(total, page, limit),
	})
}

// queryValues collects repeated query parameters (styles=A&styles=B).
func queryValues(c *fiber.Ctx, key string) []string {
	var out []string
	c.Context().QueryArgs().VisitAll(func(k, v []byte) {
		if string(k) == key && len(v) > 0 {
			out = append(out, string(v))
		}
	})
	return out
}

func (s *Server) handleGetProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid product id"})
	}

	var p models.Product
	err = s.DB.Preload("Category").
		Preload("Colors.Images").
		Preload("Colors.Sizes").
		First(&p, id).Error
	if notFound(err) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve product",
			"error":   err.Error(),
		})
	}
	return c.JSON(p)
}

func (s *Server) handleListCategories(c *fiber.Ctx) error {
	var cats []models.Category
	if err := s.DB.Order("path").Find(&cats).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not list categories",
			"error":   err.Error(),
		})
	}
	return c.JSON(cats)
}

// handleGetCategory returns a category with its ancestor chain, root first.
func (s *Server) handleGetCategory(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid category id"})
	}

	var cat models.Category
	if err := s.DB.First(&cat, id).Error; err != nil {
		if notFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Category not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve category",
			"error":   err.Error(),
		})
	}

	detail := models.CategoryDetail{Category: cat}
	for cur := cat; ; {
		detail.Breadcrumbs = append([]models.Breadcrumb{{ID: cur.ID, Name: cur.Name, Path: cur.Path}}, detail.Breadcrumbs...)
		if cur.ParentID == nil {
			break
		}
		var parent models.Category
		if err := s.DB.First(&parent, *cur.ParentID).Error; err != nil {
			break
		}
		cur = parent
	}
	return c.JSON(detail)
}

// --- Admin CRUD ---

func (s *Server) handleAdminCreateCategory(c *fiber.Ctx) error {
	var cat models.Category
	if err := c.BodyParser(&cat); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := s.validate.Struct(cat); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrors(err),
		})
	}

	cat.ID = 0
	cat.Path = "/" + cat.Name
	if cat.ParentID != nil {
		var parent models.Category
		if err := s.DB.First(&parent, *cat.ParentID).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Parent category not found"})
		}
		cat.Path = parent.Path + "/" + cat.Name
	}
	if err := s.DB.Create(&cat).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create category",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(cat)
}

func (s *Server) handleAdminUpdateCategory(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid category id"})
	}

	var cat models.Category
	if err := s.DB.First(&cat, id).Error; err != nil {
		if notFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Category not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve category",
			"error":   err.Error(),
		})
	}

	var update models.Category
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	cat.Name = update.Name
	cat.ParentID = update.ParentID
	cat.Path = "/" + cat.Name
	if cat.ParentID != nil {
		var parent models.Category
		if err := s.DB.First(&parent, *cat.ParentID).Error; err == nil {
			cat.Path = parent.Path + "/" + cat.Name
		}
	}
	if err := s.DB.Save(&cat).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update category",
			"error":   err.Error(),
		})
	}
	return c.JSON(cat)
}

func (s *Server) handleAdminDeleteCategory(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid category id"})
	}
	res := s.DB.Delete(&models.Category{}, id)
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete category",
			"error":   res.Error.Error(),
		})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Category not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleAdminCreateProduct(c *fiber.Ctx) error {
	var p models.Product
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := s.validate.Struct(p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrors(err),
		})
	}

	p.ID = 0
	p.Category = nil
	if err := s.DB.Create(&p).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create product",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (s *Server) handleAdminUpdateProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid product id"})
	}

	var existing models.Product
	if err := s.DB.First(&existing, id).Error; err != nil {
		if notFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve product",
			"error":   err.Error(),
		})
	}

	var update models.Product
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	update.ID = existing.ID
	update.Category = nil
	// Colorways are replaced wholesale on update.
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", existing.ID).Delete(&models.ProductColor{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&update).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update product",
			"error":   err.Error(),
		})
	}
	return c.JSON(update)
}

func (s *Server) handleAdminDeleteProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid product id"})
	}
	res := s.DB.Delete(&models.Product{}, id)
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete product",
			"error":   res.Error.Error(),
		})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
