package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem represents one line of a user's cart, joined with its product.
// There is at most one line per (user, product) pair; repeated adds merge
// into the existing line's quantity.
type CartItem struct {
	ID        uuid.UUID      `json:"id" db:"id"`
	UserID    uuid.UUID      `json:"user_id" db:"user_id"`
	ProductID uuid.UUID      `json:"product_id" db:"product_id"`
	Quantity  int            `json:"quantity" db:"quantity"`
	Product   ProductSummary `json:"product"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}

// LineTotal returns price multiplied by quantity for this line.
func (c *CartItem) LineTotal() decimal.Decimal {
	return c.Product.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// CartTotal sums price times quantity across all lines.
func CartTotal(items []*CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// CartItemCount sums the quantities across all lines.
func CartItemCount(items []*CartItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}
