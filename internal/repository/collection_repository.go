package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"maison-elite/internal/domain"
)

var (
	ErrCollectionNotFound      = errors.New("collection not found")
	ErrCollectionAlreadyExists = errors.New("collection with this slug already exists")
)

// CollectionRepository defines the interface for collection data access
type CollectionRepository interface {
	List(ctx context.Context) ([]*domain.Collection, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Collection, error)
	Create(ctx context.Context, collection *domain.Collection) error
}

type collectionRepository struct {
	db *sql.DB
}

// NewCollectionRepository creates a new instance of CollectionRepository
func NewCollectionRepository(db *sql.DB) CollectionRepository {
	return &collectionRepository{db: db}
}

// List retrieves all collections, newest first
func (r *collectionRepository) List(ctx context.Context) ([]*domain.Collection, error) {
	query := `
		SELECT id, name, slug, description, image_url, featured, created_at
		FROM collections
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	collections := []*domain.Collection{}
	for rows.Next() {
		collection := &domain.Collection{}
		var description, imageURL sql.NullString
		if err := rows.Scan(
			&collection.ID,
			&collection.Name,
			&collection.Slug,
			&description,
			&imageURL,
			&collection.Featured,
			&collection.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}
		collection.Description = description.String
		collection.ImageURL = imageURL.String
		collections = append(collections, collection)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate collections: %w", err)
	}

	return collections, nil
}

// FindBySlug retrieves a collection by its unique slug
func (r *collectionRepository) FindBySlug(ctx context.Context, slug string) (*domain.Collection, error) {
	query := `
		SELECT id, name, slug, description, image_url, featured, created_at
		FROM collections
		WHERE slug = $1
	`

	collection := &domain.Collection{}
	var description, imageURL sql.NullString
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&collection.ID,
		&collection.Name,
		&collection.Slug,
		&description,
		&imageURL,
		&collection.Featured,
		&collection.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCollectionNotFound
		}
		return nil, fmt.Errorf("failed to find collection by slug: %w", err)
	}

	collection.Description = description.String
	collection.ImageURL = imageURL.String

	return collection, nil
}

// Create inserts a new collection into the database using parameterized queries
func (r *collectionRepository) Create(ctx context.Context, collection *domain.Collection) error {
	query := `
		INSERT INTO collections (id, name, slug, description, image_url, featured, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		collection.ID,
		collection.Name,
		collection.Slug,
		collection.Description,
		collection.ImageURL,
		collection.Featured,
		collection.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err, "collections_slug_key") {
			return ErrCollectionAlreadyExists
		}
		return fmt.Errorf("failed to create collection: %w", err)
	}

	return nil
}
