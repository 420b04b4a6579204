package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"maison-elite/internal/domain"
	"maison-elite/internal/repository"

	"github.com/google/uuid"
)

// CatalogService exposes the read side of the product catalog plus the
// admin mutations. The storefront fetches the whole catalog in one call;
// featured and new subsets are pure filters over that snapshot and never
// re-query the store.
type CatalogService interface {
	Products(ctx context.Context) ([]*domain.Product, error)
	ProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Collections(ctx context.Context) ([]*domain.Collection, error)
	CreateProduct(ctx context.Context, product *domain.Product) error
	UpdateProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type catalogService struct {
	productRepo    repository.ProductRepository
	collectionRepo repository.CollectionRepository
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(productRepo repository.ProductRepository, collectionRepo repository.CollectionRepository) CatalogService {
	return &catalogService{
		productRepo:    productRepo,
		collectionRepo: collectionRepo,
	}
}

// Products retrieves the full catalog, newest first
func (s *catalogService) Products(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return products, nil
}

// ProductBySlug retrieves a single product; absence is reported as
// repository.ErrProductNotFound and rendered as a not-found view, not a
// server fault.
func (s *catalogService) ProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	return product, nil
}

// Collections retrieves all collections, newest first
func (s *catalogService) Collections(ctx context.Context) ([]*domain.Collection, error) {
	collections, err := s.collectionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load collections: %w", err)
	}
	return collections, nil
}

// CreateProduct adds a product to the catalog
func (s *catalogService) CreateProduct(ctx context.Context, product *domain.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductAlreadyExists) {
			return err
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// UpdateProduct updates an existing catalog product
func (s *catalogService) UpdateProduct(ctx context.Context, product *domain.Product) error {
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return err
		}
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// DeleteProduct removes a product from the catalog
func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// FeaturedProducts filters the featured subset out of a catalog snapshot
func FeaturedProducts(products []*domain.Product) []*domain.Product {
	featured := []*domain.Product{}
	for _, p := range products {
		if p.IsFeatured {
			featured = append(featured, p)
		}
	}
	return featured
}

// NewProducts filters the new-arrival subset out of a catalog snapshot
func NewProducts(products []*domain.Product) []*domain.Product {
	newest := []*domain.Product{}
	for _, p := range products {
		if p.IsNew {
			newest = append(newest, p)
		}
	}
	return newest
}

// FeaturedCollections filters the featured subset out of a collection list
func FeaturedCollections(collections []*domain.Collection) []*domain.Collection {
	featured := []*domain.Collection{}
	for _, c := range collections {
		if c.Featured {
			featured = append(featured, c)
		}
	}
	return featured
}
