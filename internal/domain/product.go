package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a product in the storefront catalog
type Product struct {
	ID            uuid.UUID        `json:"id" db:"id"`
	Name          string           `json:"name" db:"name"`
	Slug          string           `json:"slug" db:"slug"`
	Description   string           `json:"description" db:"description"`
	Price         decimal.Decimal  `json:"price" db:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty" db:"original_price"`
	CategoryID    *uuid.UUID       `json:"category_id,omitempty" db:"category_id"`
	ImageURL      string           `json:"image_url" db:"image_url"`
	Images        []string         `json:"images" db:"images"`
	IsNew         bool             `json:"is_new" db:"is_new"`
	IsFeatured    bool             `json:"is_featured" db:"is_featured"`
	Stock         int              `json:"stock" db:"stock"`
	Dimensions    string           `json:"dimensions" db:"dimensions"`
	Materials     string           `json:"materials" db:"materials"`
	CreatedAt     time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at" db:"updated_at"`
}

// Collection represents a curated product category
type Collection struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description" db:"description"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	Featured    bool      `json:"featured" db:"featured"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// ProductSummary is the subset of product fields carried on cart and
// wishlist rows after the join with the products table.
type ProductSummary struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Slug     string          `json:"slug"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url"`
}
