package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"maison-elite/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrWishlistItemNotFound = errors.New("wishlist item not found")
	ErrAlreadyInWishlist    = errors.New("product already in wishlist")
)

// WishlistRepository defines the interface for wishlist data access.
// The (user, product) pair is unique; a duplicate insert surfaces as
// ErrAlreadyInWishlist so concurrent toggles resolve server-side.
type WishlistRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.WishlistItem, error)
	Insert(ctx context.Context, userID, productID uuid.UUID) error
	DeleteByProduct(ctx context.Context, userID, productID uuid.UUID) error
	Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error)
}

type wishlistRepository struct {
	db *sql.DB
}

// NewWishlistRepository creates a new instance of WishlistRepository
func NewWishlistRepository(db *sql.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

// ListByUser retrieves all wishlist entries for a user, joined with their product
func (r *wishlistRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.WishlistItem, error) {
	query := `
		SELECT w.id, w.user_id, w.product_id, w.created_at,
		       p.id, p.name, p.slug, p.price, p.image_url
		FROM wishlist w
		JOIN products p ON p.id = w.product_id
		WHERE w.user_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist items: %w", err)
	}
	defer rows.Close()

	items := []*domain.WishlistItem{}
	for rows.Next() {
		item := &domain.WishlistItem{}
		var imageURL sql.NullString
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.ProductID,
			&item.CreatedAt,
			&item.Product.ID,
			&item.Product.Name,
			&item.Product.Slug,
			&item.Product.Price,
			&imageURL,
		); err != nil {
			return nil, fmt.Errorf("failed to scan wishlist item: %w", err)
		}
		item.Product.ImageURL = imageURL.String
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wishlist items: %w", err)
	}

	return items, nil
}

// Insert adds a product to the user's wishlist
func (r *wishlistRepository) Insert(ctx context.Context, userID, productID uuid.UUID) error {
	query := `
		INSERT INTO wishlist (id, user_id, product_id, created_at)
		VALUES ($1, $2, $3, NOW())
	`

	_, err := r.db.ExecContext(ctx, query, uuid.New(), userID, productID)
	if err != nil {
		if isUniqueViolation(err, "wishlist_user_id_product_id_key") {
			return ErrAlreadyInWishlist
		}
		return fmt.Errorf("failed to add wishlist item: %w", err)
	}

	return nil
}

// DeleteByProduct removes a product from the user's wishlist
func (r *wishlistRepository) DeleteByProduct(ctx context.Context, userID, productID uuid.UUID) error {
	query := `DELETE FROM wishlist WHERE user_id = $1 AND product_id = $2`

	result, err := r.db.ExecContext(ctx, query, userID, productID)
	if err != nil {
		return fmt.Errorf("failed to delete wishlist item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrWishlistItemNotFound
	}

	return nil
}

// Exists reports whether the user's wishlist contains a product
func (r *wishlistRepository) Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM wishlist WHERE user_id = $1 AND product_id = $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, productID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check wishlist membership: %w", err)
	}

	return exists, nil
}
