package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"maison-elite/internal/domain"
	"maison-elite/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmptyCart = errors.New("cart is empty")
)

// ShippingForm carries the contact and shipping fields collected at
// checkout. All fields are required; no format validation beyond presence
// is applied.
type ShippingForm struct {
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

// OrderPublisher publishes order lifecycle events. Publishing is
// best-effort and happens after the checkout transaction commits.
type OrderPublisher interface {
	PublishOrderCreated(ctx context.Context, order *domain.Order) error
}

// CheckoutService turns the user's cart and a shipping form into an order
type CheckoutService interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID, form ShippingForm) (*domain.Order, error)
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*domain.Order, error)
}

type checkoutService struct {
	cartRepo  repository.CartRepository
	orderRepo repository.OrderRepository
	publisher OrderPublisher
	logger    *zap.Logger
}

// NewCheckoutService creates a new instance of CheckoutService. The
// publisher may be nil when event publishing is disabled.
func NewCheckoutService(
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
	publisher OrderPublisher,
	logger *zap.Logger,
) CheckoutService {
	return &checkoutService{
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// PlaceOrder creates an order from the user's current cart. The order
// header, its line items, and the cart clear are committed in a single
// store transaction; each line captures the product's price at submission
// time. The total equals the cart's derived total at the moment of
// submission.
func (s *checkoutService) PlaceOrder(ctx context.Context, userID uuid.UUID, form ShippingForm) (*domain.Order, error) {
	if userID == uuid.Nil {
		return nil, ErrAuthRequired
	}

	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart for checkout: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	shipping := domain.Address{
		FirstName:  form.FirstName,
		LastName:   form.LastName,
		Address:    form.Address,
		City:       form.City,
		PostalCode: form.PostalCode,
		Country:    form.Country,
		Phone:      form.Phone,
	}

	// The billing copy omits the phone number.
	billing := shipping
	billing.Phone = ""

	order := &domain.Order{
		ID:              uuid.New(),
		UserID:          userID,
		Total:           domain.CartTotal(items),
		Status:          domain.OrderStatusPending,
		ShippingAddress: shipping,
		BillingAddress:  billing,
		CreatedAt:       time.Now(),
	}

	orderItems := make([]*domain.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, &domain.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Product.Price,
		})
	}

	if err := s.orderRepo.CreateWithItems(ctx, order, orderItems); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishOrderCreated(ctx, order); err != nil {
			// The order is already committed; a lost event must not fail
			// the checkout.
			s.logger.Error("Failed to publish order created event",
				zap.String("order_id", order.ID.String()),
				zap.Error(err),
			)
		}
	}

	return order, nil
}

// GetOrder retrieves one of the user's orders for the confirmation view
func (s *checkoutService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*domain.Order, error) {
	if userID == uuid.Nil {
		return nil, ErrAuthRequired
	}

	order, err := s.orderRepo.FindByID(ctx, userID, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return order, nil
}
