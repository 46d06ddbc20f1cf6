package models

import "time"

// ProductImage is a single image attached to a product color.
type ProductImage struct {
	ID             int    `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductColorID int    `json:"-"`
	URL            string `json:"url" validate:"required,url"`
}

// ProductSize is the purchasable unit: one size of one color of one product,
// with its own stock count. Cart and order lines reference sizes, never
// products directly.
type ProductSize struct {
	ID             int    `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductColorID int    `json:"-"`
	Size           string `json:"size" validate:"required"`
	Stock          int    `json:"stock" validate:"gte=0"`
}

// ProductColor groups the images and sizes of one colorway.
type ProductColor struct {
	ID          int            `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductID   int            `json:"-"`
	ProductCode string         `json:"productCode"`
	ColorName   string         `json:"colorName" validate:"required"`
	HexCode     string         `json:"hexCode,omitempty"`
	ColorInfo   string         `json:"colorInfo,omitempty"`
	Images      []ProductImage `json:"images" gorm:"foreignKey:ProductColorID"`
	Sizes       []ProductSize  `json:"sizes" gorm:"foreignKey:ProductColorID"`
}

// Product is a catalog entry with its colorways and notice metadata.
type Product struct {
	ID          int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Price       int    `json:"price" validate:"required,gt=0"`
	Description string `json:"description"`
	Summary     string `json:"summary,omitempty"`
	IsNew       bool   `json:"isNew"`
	IsBest      bool   `json:"isBest"`

	Style  string `json:"style" validate:"required"`  // e.g. RACING, JACKET
	Gender string `json:"gender" validate:"required"` // MALE, FEMALE, COMMON

	// Product notice metadata shown on the detail page.
	Material         string `json:"material,omitempty"`
	SizeInfo         string `json:"sizeInfo,omitempty"`
	Manufacturer     string `json:"manufacturer,omitempty"`
	OriginCountry    string `json:"originCountry,omitempty"`
	CareInstructions string `json:"careInstructions,omitempty"`
	ManufactureDate  string `json:"manufactureDate,omitempty"`
	QualityAssurance string `json:"qualityAssurance,omitempty"`
	ASPhone          string `json:"asPhone,omitempty"`

	CategoryID int            `json:"categoryId" validate:"required"`
	Category   *Category      `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Colors     []ProductColor `json:"colors" gorm:"foreignKey:ProductID"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

// ListMeta carries paging information for list responses.
type ListMeta struct {
	Total    int `json:"total"`
	Page     int `json:"page"`
	LastPage int `json:"lastPage"`
}

// ProductList is the paged catalog listing response.
type ProductList struct {
	Data []Product `json:"data"`
	Meta ListMeta  `json:"meta"`
}

// ProductQuery holds the catalog list filters. Slice fields are sent as
// repeated query parameters.
type ProductQuery struct {
	Page       int
	Limit      int
	CategoryID int
	Styles     []string
	Genders    []string
	Sizes      []string
}
