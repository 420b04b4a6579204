package service

import (
	"context"
	"errors"
	"testing"

	"maison-elite/internal/domain"
	"maison-elite/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// In-memory order repository. It clears the owner's cart on a successful
// create, matching the store's single-transaction behavior; on an injected
// failure nothing is written at all.
type mockOrderRepository struct {
	cartRepo *mockCartRepository
	orders   map[uuid.UUID]*domain.Order
	items    map[uuid.UUID][]*domain.OrderItem
	failWith error
}

func newMockOrderRepository(cartRepo *mockCartRepository) *mockOrderRepository {
	return &mockOrderRepository{
		cartRepo: cartRepo,
		orders:   make(map[uuid.UUID]*domain.Order),
		items:    make(map[uuid.UUID][]*domain.OrderItem),
	}
}

func (m *mockOrderRepository) CreateWithItems(ctx context.Context, order *domain.Order, items []*domain.OrderItem) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.orders[order.ID] = order
	m.items[order.ID] = items
	return m.cartRepo.DeleteByUser(ctx, order.UserID)
}

func (m *mockOrderRepository) FindByID(ctx context.Context, userID, orderID uuid.UUID) (*domain.Order, error) {
	order, ok := m.orders[orderID]
	if !ok || order.UserID != userID {
		return nil, repository.ErrOrderNotFound
	}
	return order, nil
}

type mockOrderPublisher struct {
	published []*domain.Order
	failWith  error
}

func (m *mockOrderPublisher) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.published = append(m.published, order)
	return nil
}

func validShippingForm() ShippingForm {
	return ShippingForm{
		FirstName:  "Claire",
		LastName:   "Moreau",
		Email:      "claire.moreau@example.com",
		Phone:      "+33612345678",
		Address:    "12 rue de la Paix",
		City:       "Paris",
		PostalCode: "75002",
		Country:    "France",
	}
}

func TestCheckoutService_PlaceOrder(t *testing.T) {
	cartRepo := newMockCartRepository()
	productRepo := newMockProductRepository()
	orderRepo := newMockOrderRepository(cartRepo)
	publisher := &mockOrderPublisher{}
	cartService := NewCartService(cartRepo, productRepo)
	service := NewCheckoutService(cartRepo, orderRepo, publisher, zap.NewNop())
	ctx := context.Background()

	userID := uuid.New()
	table := productRepo.add(decimal.NewFromInt(100))
	chair := productRepo.add(decimal.NewFromInt(50))

	_, err := cartService.Add(ctx, userID, table.ID, 2)
	require.NoError(t, err)
	_, err = cartService.Add(ctx, userID, chair.ID, 1)
	require.NoError(t, err)
	cartRepo.setPrice(table.ID, table.Price)
	cartRepo.setPrice(chair.ID, chair.Price)

	order, err := service.PlaceOrder(ctx, userID, validShippingForm())
	require.NoError(t, err)

	assert.True(t, order.Total.Equal(decimal.NewFromInt(250)),
		"expected total 250, got %s", order.Total)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, "Claire", order.ShippingAddress.FirstName)
	assert.Equal(t, "+33612345678", order.ShippingAddress.Phone)
	assert.Equal(t, "", order.BillingAddress.Phone, "billing address must omit the phone number")
	assert.Equal(t, order.ShippingAddress.City, order.BillingAddress.City)

	lines := orderRepo.items[order.ID]
	require.Len(t, lines, 2)
	for _, line := range lines {
		switch line.ProductID {
		case table.ID:
			assert.Equal(t, 2, line.Quantity)
			assert.True(t, line.Price.Equal(table.Price))
		case chair.ID:
			assert.Equal(t, 1, line.Quantity)
			assert.True(t, line.Price.Equal(chair.Price))
		default:
			t.Fatalf("unexpected product on order: %s", line.ProductID)
		}
	}

	cart, err := cartService.Fetch(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items, "checkout must clear the cart")

	require.Len(t, publisher.published, 1)
	assert.Equal(t, order.ID, publisher.published[0].ID)
}

func TestCheckoutService_PlaceOrder_EmptyCart(t *testing.T) {
	cartRepo := newMockCartRepository()
	orderRepo := newMockOrderRepository(cartRepo)
	service := NewCheckoutService(cartRepo, orderRepo, nil, zap.NewNop())

	_, err := service.PlaceOrder(context.Background(), uuid.New(), validShippingForm())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutService_PlaceOrder_RequiresAuth(t *testing.T) {
	cartRepo := newMockCartRepository()
	orderRepo := newMockOrderRepository(cartRepo)
	service := NewCheckoutService(cartRepo, orderRepo, nil, zap.NewNop())

	_, err := service.PlaceOrder(context.Background(), uuid.Nil, validShippingForm())
	assert.ErrorIs(t, err, ErrAuthRequired)
}

func TestCheckoutService_PlaceOrder_StoreFailureKeepsCart(t *testing.T) {
	cartRepo := newMockCartRepository()
	productRepo := newMockProductRepository()
	orderRepo := newMockOrderRepository(cartRepo)
	orderRepo.failWith = errors.New("connection reset")
	cartService := NewCartService(cartRepo, productRepo)
	service := NewCheckoutService(cartRepo, orderRepo, nil, zap.NewNop())
	ctx := context.Background()

	userID := uuid.New()
	product := productRepo.add(decimal.NewFromInt(400))
	_, err := cartService.Add(ctx, userID, product.ID, 1)
	require.NoError(t, err)

	_, err = service.PlaceOrder(ctx, userID, validShippingForm())
	require.Error(t, err)

	cart, err := cartService.Fetch(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1, "a failed checkout must leave the cart untouched")
}

func TestCheckoutService_PlaceOrder_PublishFailureIsNotFatal(t *testing.T) {
	cartRepo := newMockCartRepository()
	productRepo := newMockProductRepository()
	orderRepo := newMockOrderRepository(cartRepo)
	publisher := &mockOrderPublisher{failWith: errors.New("broker unreachable")}
	cartService := NewCartService(cartRepo, productRepo)
	service := NewCheckoutService(cartRepo, orderRepo, publisher, zap.NewNop())
	ctx := context.Background()

	userID := uuid.New()
	product := productRepo.add(decimal.NewFromInt(150))
	_, err := cartService.Add(ctx, userID, product.ID, 1)
	require.NoError(t, err)
	cartRepo.setPrice(product.ID, product.Price)

	order, err := service.PlaceOrder(ctx, userID, validShippingForm())
	require.NoError(t, err, "a lost event must not fail a committed checkout")
	assert.NotNil(t, order)
}

func TestCheckoutService_GetOrder(t *testing.T) {
	cartRepo := newMockCartRepository()
	productRepo := newMockProductRepository()
	orderRepo := newMockOrderRepository(cartRepo)
	cartService := NewCartService(cartRepo, productRepo)
	service := NewCheckoutService(cartRepo, orderRepo, nil, zap.NewNop())
	ctx := context.Background()

	userID := uuid.New()
	product := productRepo.add(decimal.NewFromInt(95))
	_, err := cartService.Add(ctx, userID, product.ID, 1)
	require.NoError(t, err)
	cartRepo.setPrice(product.ID, product.Price)

	placed, err := service.PlaceOrder(ctx, userID, validShippingForm())
	require.NoError(t, err)

	found, err := service.GetOrder(ctx, userID, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, placed.ID, found.ID)

	_, err = service.GetOrder(ctx, uuid.New(), placed.ID)
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)

	_, err = service.GetOrder(ctx, uuid.Nil, placed.ID)
	assert.ErrorIs(t, err, ErrAuthRequired)
}
