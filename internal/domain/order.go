package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatusPending is the status every order starts in. No status
// transition logic lives in this service.
const OrderStatusPending = "pending"

// Address holds the shipping or billing address attached to an order.
// The billing copy omits the phone number.
type Address struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

// Order represents an order header. Orders are immutable once created;
// the total equals the sum of the line items at creation time.
type Order struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	UserID          uuid.UUID       `json:"user_id" db:"user_id"`
	Total           decimal.Decimal `json:"total" db:"total"`
	Status          string          `json:"status" db:"status"`
	ShippingAddress Address         `json:"shipping_address" db:"shipping_address"`
	BillingAddress  Address         `json:"billing_address" db:"billing_address"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}

// OrderItem represents one line of an order. Price is the product's
// price captured at submission time; later catalog changes never alter it.
type OrderItem struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	OrderID   uuid.UUID       `json:"order_id" db:"order_id"`
	ProductID uuid.UUID       `json:"product_id" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	Price     decimal.Decimal `json:"price" db:"price"`
}
