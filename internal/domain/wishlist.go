package domain

import (
	"time"

	"github.com/google/uuid"
)

// WishlistItem represents a single product saved to a user's wishlist.
// A product appears at most once per user; duplicate adds are rejected.
type WishlistItem struct {
	ID        uuid.UUID      `json:"id" db:"id"`
	UserID    uuid.UUID      `json:"user_id" db:"user_id"`
	ProductID uuid.UUID      `json:"product_id" db:"product_id"`
	Product   ProductSummary `json:"product"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
}
