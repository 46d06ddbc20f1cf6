package models

import "time"

// Category is a node in the catalog tree. ParentID is nil for roots.
type Category struct {
	ID        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" validate:"required,min=1,max=50"`
	Path      string    `json:"path"`
	ParentID  *int      `json:"parentId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Breadcrumb is one ancestor entry on a category detail.
type Breadcrumb struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// CategoryDetail is a category plus its ancestor chain, root first.
type CategoryDetail struct {
	Category
	Breadcrumbs []Breadcrumb `json:"breadcrumbs"`
}
