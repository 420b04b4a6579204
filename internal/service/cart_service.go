package service

import (
	"context"
	"errors"
	"fmt"

	"maison-elite/internal/domain"
	"maison-elite/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrAuthRequired    = errors.New("authentication required")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// Cart is the authenticated user's cart with its derived values. Total and
// ItemCount are recomputed from the line list on every fetch, never stored.
type Cart struct {
	Items     []*domain.CartItem `json:"items"`
	Total     decimal.Decimal    `json:"total"`
	ItemCount int                `json:"item_count"`
}

// CartService defines the business logic for the user's cart.
// Every method takes the owning user explicitly; uuid.Nil means no
// authenticated identity and mutating calls fail with ErrAuthRequired.
type CartService interface {
	Fetch(ctx context.Context, userID uuid.UUID) (*Cart, error)
	Add(ctx context.Context, userID, productID uuid.UUID, quantity int) (*Cart, error)
	UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*Cart, error)
	Remove(ctx context.Context, userID, itemID uuid.UUID) (*Cart, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService creates a new instance of CartService
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// Fetch returns the user's cart. With no authenticated identity the result
// is an empty cart, not an error, and the store is never contacted.
func (s *cartService) Fetch(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	if userID == uuid.Nil {
		return emptyCart(), nil
	}

	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}

	return buildCart(items), nil
}

// Add merges quantity into the user's line for a product, creating the line
// if none exists, and returns the refreshed cart.
func (s *cartService) Add(ctx context.Context, userID, productID uuid.UUID, quantity int) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, ErrAuthRequired
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	// Reject adds for products that do not exist so the store never holds
	// a dangling line.
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to verify product: %w", err)
	}

	if err := s.cartRepo.Upsert(ctx, userID, productID, quantity); err != nil {
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}

	return s.Fetch(ctx, userID)
}

// UpdateQuantity sets a line's quantity to an absolute value. A quantity
// below 1 is equivalent to removing the line; zero or negative quantities
// are never persisted.
func (s *cartService) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, ErrAuthRequired
	}

	if quantity < 1 {
		return s.Remove(ctx, userID, itemID)
	}

	if err := s.cartRepo.UpdateQuantity(ctx, userID, itemID, quantity); err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update cart quantity: %w", err)
	}

	return s.Fetch(ctx, userID)
}

// Remove deletes a single line from the user's cart
func (s *cartService) Remove(ctx context.Context, userID, itemID uuid.UUID) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, ErrAuthRequired
	}

	if err := s.cartRepo.Delete(ctx, userID, itemID); err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to remove from cart: %w", err)
	}

	return s.Fetch(ctx, userID)
}

// Clear deletes every line of the user's cart. With no authenticated
// identity this is a no-op.
func (s *cartService) Clear(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return nil
	}

	if err := s.cartRepo.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}

func emptyCart() *Cart {
	return &Cart{
		Items: []*domain.CartItem{},
		Total: decimal.Zero,
	}
}

func buildCart(items []*domain.CartItem) *Cart {
	if items == nil {
		items = []*domain.CartItem{}
	}
	return &Cart{
		Items:     items,
		Total:     domain.CartTotal(items),
		ItemCount: domain.CartItemCount(items),
	}
}
