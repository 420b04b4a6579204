package service

import (
	"context"
	"errors"
	"fmt"

	"maison-elite/internal/domain"
	"maison-elite/internal/repository"

	"github.com/google/uuid"
)

// Wishlist is the authenticated user's wishlist with its derived count.
type Wishlist struct {
	Items     []*domain.WishlistItem `json:"items"`
	ItemCount int                    `json:"item_count"`
}

// WishlistService defines the business logic for the user's wishlist.
// The same explicit-identity rule as the cart applies: uuid.Nil means no
// authenticated identity.
type WishlistService interface {
	Fetch(ctx context.Context, userID uuid.UUID) (*Wishlist, error)
	Add(ctx context.Context, userID, productID uuid.UUID) (*Wishlist, error)
	Remove(ctx context.Context, userID, productID uuid.UUID) (*Wishlist, error)
	Toggle(ctx context.Context, userID, productID uuid.UUID) (added bool, wishlist *Wishlist, err error)
	Contains(ctx context.Context, userID, productID uuid.UUID) (bool, error)
}

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

// NewWishlistService creates a new instance of WishlistService
func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// Fetch returns the user's wishlist. With no authenticated identity the
// result is an empty wishlist and the store is never contacted.
func (s *wishlistService) Fetch(ctx context.Context, userID uuid.UUID) (*Wishlist, error) {
	if userID == uuid.Nil {
		return &Wishlist{Items: []*domain.WishlistItem{}}, nil
	}

	items, err := s.wishlistRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch wishlist: %w", err)
	}
	if items == nil {
		items = []*domain.WishlistItem{}
	}

	return &Wishlist{Items: items, ItemCount: len(items)}, nil
}

// Add saves a product to the user's wishlist. Adding a product that is
// already present fails with repository.ErrAlreadyInWishlist; callers treat
// that as an informational notice, not a hard error.
func (s *wishlistService) Add(ctx context.Context, userID, productID uuid.UUID) (*Wishlist, error) {
	if userID == uuid.Nil {
		return nil, ErrAuthRequired
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to verify product: %w", err)
	}

	if err := s.wishlistRepo.Insert(ctx, userID, productID); err != nil {
		if errors.Is(err, repository.ErrAlreadyInWishlist) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to add to wishlist: %w", err)
	}

	return s.Fetch(ctx, userID)
}

// Remove deletes a product from the user's wishlist
func (s *wishlistService) Remove(ctx context.Context, userID, productID uuid.UUID) (*Wishlist, error) {
	if userID == uuid.Nil {
		return nil, ErrAuthRequired
	}

	if err := s.wishlistRepo.DeleteByProduct(ctx, userID, productID); err != nil {
		if errors.Is(err, repository.ErrWishlistItemNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to remove from wishlist: %w", err)
	}

	return s.Fetch(ctx, userID)
}

// Toggle adds the product if absent and removes it if present, reporting
// the resulting membership. The membership check and the write are separate
// store calls; the unique constraint on (user, product) resolves the race
// when two toggles interleave, and the loser of an add race is reported as
// already present.
func (s *wishlistService) Toggle(ctx context.Context, userID, productID uuid.UUID) (bool, *Wishlist, error) {
	if userID == uuid.Nil {
		return false, nil, ErrAuthRequired
	}

	present, err := s.wishlistRepo.Exists(ctx, userID, productID)
	if err != nil {
		return false, nil, fmt.Errorf("failed to check wishlist membership: %w", err)
	}

	if present {
		wishlist, err := s.Remove(ctx, userID, productID)
		if err != nil {
			return false, nil, err
		}
		return false, wishlist, nil
	}

	wishlist, err := s.Add(ctx, userID, productID)
	if err != nil {
		return false, nil, err
	}
	return true, wishlist, nil
}

// Contains reports whether the user's wishlist holds a product. An
// unauthenticated identity is never a member of anything.
func (s *wishlistService) Contains(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	if userID == uuid.Nil {
		return false, nil
	}

	return s.wishlistRepo.Exists(ctx, userID, productID)
}
