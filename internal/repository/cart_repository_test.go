package repository

import (
	"context"
	"testing"
	"time"

	"maison-elite/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestProduct inserts a product row for cart, wishlist and order tests.
func createTestProduct(t *testing.T, name string, price decimal.Decimal) *domain.Product {
	t.Helper()

	product := &domain.Product{
		ID:        uuid.New(),
		Name:      name,
		Slug:      name + "-" + uuid.NewString()[:8],
		Price:     price,
		ImageURL:  "https://cdn.example.com/" + name + ".jpg",
		Images:    []string{},
		Stock:     10,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := NewProductRepository(testDB).Create(context.Background(), product); err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}
	t.Cleanup(func() {
		_, _ = testDB.Exec("DELETE FROM products WHERE id = $1", product.ID)
	})
	return product
}

func TestCartRepository_UpsertMergesDuplicateAdds(t *testing.T) {
	repo := NewCartRepository(testDB)
	ctx := context.Background()

	user := createTestUser(t, "cart-merge@example.com")
	product := createTestProduct(t, "oak-table", decimal.NewFromInt(100))

	require.NoError(t, repo.Upsert(ctx, user.ID, product.ID, 2))
	require.NoError(t, repo.Upsert(ctx, user.ID, product.ID, 3))

	items, err := repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1, "duplicate adds must merge into a single line")

	item := items[0]
	assert.Equal(t, 5, item.Quantity)
	assert.Equal(t, product.ID, item.ProductID)
	assert.Equal(t, product.Name, item.Product.Name)
	assert.True(t, item.Product.Price.Equal(product.Price),
		"expected joined price %s, got %s", product.Price, item.Product.Price)
}

func TestCartRepository_UpdateQuantity(t *testing.T) {
	repo := NewCartRepository(testDB)
	ctx := context.Background()

	user := createTestUser(t, "cart-update@example.com")
	product := createTestProduct(t, "linen-sofa", decimal.NewFromInt(1299))

	require.NoError(t, repo.Upsert(ctx, user.ID, product.ID, 1))

	items, err := repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, repo.UpdateQuantity(ctx, user.ID, items[0].ID, 4))

	items, err = repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity, "update sets an absolute quantity, not an increment")
}

func TestCartRepository_UpdateQuantity_UnknownItem(t *testing.T) {
	repo := NewCartRepository(testDB)
	ctx := context.Background()

	user := createTestUser(t, "cart-update-missing@example.com")

	err := repo.UpdateQuantity(ctx, user.ID, uuid.New(), 2)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartRepository_UpdateQuantity_OtherUsersItem(t *testing.T) {
	repo := NewCartRepository(testDB)
	ctx := context.Background()

	owner := createTestUser(t, "cart-owner@example.com")
	intruder := createTestUser(t, "cart-intruder@example.com")
	product := createTestProduct(t, "walnut-desk", decimal.NewFromInt(749))

	require.NoError(t, repo.Upsert(ctx, owner.ID, product.ID, 1))

	items, err := repo.ListByUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	err = repo.UpdateQuantity(ctx, intruder.ID, items[0].ID, 99)
	assert.ErrorIs(t, err, ErrCartItemNotFound, "a user must not reach another user's cart line")

	items, err = repo.ListByUser(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestCartRepository_Delete(t *testing.T) {
	repo := NewCartRepository(testDB)
	ctx := context.Background()

	user := createTestUser(t, "cart-delete@example.com")
	product := createTestProduct(t, "rattan-chair", decimal.NewFromInt(189))

	require.NoError(t, repo.Upsert(ctx, user.ID, product.ID, 2))

	items, err := repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, repo.Delete(ctx, user.ID, items[0].ID))

	items, err = repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	err = repo.Delete(ctx, user.ID, uuid.New())
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartRepository_DeleteByUser_OnlyClearsOwnCart(t *testing.T) {
	repo := NewCartRepository(testDB)
	ctx := context.Background()

	alice := createTestUser(t, "cart-clear-alice@example.com")
	bruno := createTestUser(t, "cart-clear-bruno@example.com")
	product := createTestProduct(t, "marble-lamp", decimal.NewFromInt(95))

	require.NoError(t, repo.Upsert(ctx, alice.ID, product.ID, 2))
	require.NoError(t, repo.Upsert(ctx, bruno.ID, product.ID, 7))

	require.NoError(t, repo.DeleteByUser(ctx, alice.ID))

	aliceItems, err := repo.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, aliceItems)

	brunoItems, err := repo.ListByUser(ctx, bruno.ID)
	require.NoError(t, err)
	require.Len(t, brunoItems, 1)
	assert.Equal(t, 7, brunoItems[0].Quantity)
}
