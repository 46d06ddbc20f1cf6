package stubserver

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"boutique/internal/models"
)

// Seed populates an empty database with a small catalog and two accounts
// (admin@example.com / user@example.com, password "password123"). Safe to
// call repeatedly: it does nothing once products exist.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("seed: count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed: hash password: %w", err)
	}
	users := []models.User{
		{Email: "admin@example.com", Password: string(hashed), Name: "Admin", Phone: "010-0000-0000", Role: "ADMIN"},
		{Email: "user@example.com", Password: string(hashed), Name: "Shopper", Phone: "010-1111-1111", Role: "USER"},
	}
	if err := db.Create(&users).Error; err != nil {
		return fmt.Errorf("seed: create users: %w", err)
	}

	outer := models.Category{Name: "Outerwear", Path: "/Outerwear"}
	if err := db.Create(&outer).Error; err != nil {
		return fmt.Errorf("seed: create category: %w", err)
	}
	jackets := models.Category{Name: "Jackets", Path: "/Outerwear/Jackets", ParentID: &outer.ID}
	if err := db.Create(&jackets).Error; err != nil {
		return fmt.Errorf("seed: create category: %w", err)
	}

	products := []models.Product{
		{
			Name:       "Circuit Racing Jacket",
			Price:      189000,
			Summary:    "Vented mesh racing jacket",
			Style:      "RACING",
			Gender:     "COMMON",
			IsNew:      true,
			CategoryID: jackets.ID,
			Colors: []models.ProductColor{
				{
					ProductCode: "CRJ-BLK",
					ColorName:   "Black",
					HexCode:     "#111111",
					Images:      []models.ProductImage{{URL: "https://img.example.com/crj-blk-1.jpg"}},
					Sizes: []models.ProductSize{
						{Size: "M", Stock: 10},
						{Size: "L", Stock: 6},
					},
				},
			},
		},
		{
			Name:       "City Rider Hoodie",
			Price:      69000,
			Summary:    "Armored commuter hoodie",
			Style:      "JACKET",
			Gender:     "MALE",
			IsBest:     true,
			CategoryID: jackets.ID,
			Colors: []models.ProductColor{
				{
					ProductCode: "CRH-GRY",
					ColorName:   "Grey",
					HexCode:     "#888888",
					Images:      []models.ProductImage{{URL: "https://img.example.com/crh-gry-1.jpg"}},
					Sizes: []models.ProductSize{
						{Size: "S", Stock: 4},
						{Size: "M", Stock: 12},
					},
				},
			},
		},
	}
	if err := db.Create(&products).Error; err != nil {
		return fmt.Errorf("seed: create products: %w", err)
	}
	return nil
}
