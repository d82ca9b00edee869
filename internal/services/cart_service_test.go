package services_test

import (
	"fmt"
	"sync"
	"testing"

	"etalase/internal/models"
	"etalase/internal/repositories"
	"etalase/internal/services"
	"etalase/pkg/rabbitmq"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishCartEvent(event rabbitmq.CartEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func seededProducts(t *testing.T) *repositories.MockProductRepository {
	t.Helper()
	repo := repositories.NewMockProductRepository()
	require.NoError(t, repo.Create(&models.Product{ID: "widget", Name: "Widget", Price: decimal.RequireFromString("9.99"), Stock: 3}))
	require.NoError(t, repo.Create(&models.Product{ID: "gadget", Name: "Gadget", Price: decimal.RequireFromString("12.50"), Stock: 10}))
	return repo
}

func TestCartService_AddItem(t *testing.T) {
	publisher := new(MockPublisher)
	service := services.NewCartService(repositories.NewMockCartRepository(), seededProducts(t), publisher, zap.NewNop())

	publisher.On("PublishCartEvent", mock.MatchedBy(func(e rabbitmq.CartEvent) bool {
		return e.Event == rabbitmq.EventItemAdded && e.CartID == "cart-1" && e.ProductID == "widget" && e.Quantity == 1
	})).Return(nil).Twice()

	item, err := service.AddItem("cart-1", "widget", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)

	item, err = service.AddItem("cart-1", "widget", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
	publisher.AssertExpectations(t)
}

func TestCartService_AddItem_Rejects(t *testing.T) {
	publisher := new(MockPublisher)
	service := services.NewCartService(repositories.NewMockCartRepository(), seededProducts(t), publisher, zap.NewNop())

	_, err := service.AddItem("cart-1", "widget", 0)
	assert.ErrorIs(t, err, services.ErrInvalidQuantity)

	_, err = service.AddItem("cart-1", "missing", 1)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = service.AddItem("cart-1", "widget", 4)
	assert.ErrorIs(t, err, services.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "requested: 4, available: 3")

	publisher.AssertNotCalled(t, "PublishCartEvent", mock.Anything)
}

func TestCartService_ConcurrentAddsStayWithinStock(t *testing.T) {
	carts := repositories.NewMockCartRepository()
	service := services.NewCartService(carts, seededProducts(t), nil, zap.NewNop())

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		refused  int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.AddItem("cart-1", "widget", 1)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				accepted++
			} else if assert.ErrorIs(t, err, services.ErrInsufficientStock) {
				refused++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, accepted)
	assert.Equal(t, 7, refused)
	item, err := carts.GetItem("cart-1", "widget")
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)
}

func TestCartService_PublishFailureDoesNotFailAdd(t *testing.T) {
	publisher := new(MockPublisher)
	publisher.On("PublishCartEvent", mock.Anything).Return(fmt.Errorf("broker down")).Once()
	service := services.NewCartService(repositories.NewMockCartRepository(), seededProducts(t), publisher, zap.NewNop())

	_, err := service.AddItem("cart-1", "gadget", 2)
	assert.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestCartService_NilPublisher(t *testing.T) {
	service := services.NewCartService(repositories.NewMockCartRepository(), seededProducts(t), nil, zap.NewNop())
	_, err := service.AddItem("cart-1", "gadget", 1)
	assert.NoError(t, err)
}

func TestCartService_GetCart(t *testing.T) {
	products := seededProducts(t)
	service := services.NewCartService(repositories.NewMockCartRepository(), products, nil, zap.NewNop())

	_, err := service.AddItem("cart-1", "widget", 2)
	require.NoError(t, err)
	_, err = service.AddItem("cart-1", "gadget", 1)
	require.NoError(t, err)

	cart, err := service.GetCart("cart-1")
	require.NoError(t, err)
	require.Len(t, cart.Lines, 2)
	assert.Equal(t, "Widget", cart.Lines[0].Product.Name)
	assert.Equal(t, "19.98", cart.Lines[0].Subtotal.StringFixed(2))
	assert.Equal(t, 3, cart.Count)
	assert.Equal(t, "32.48", cart.Total.StringFixed(2))

	require.NoError(t, products.Delete("gadget"))
	cart, err = service.GetCart("cart-1")
	require.NoError(t, err)
	assert.Len(t, cart.Lines, 1)
	assert.Equal(t, "19.98", cart.Total.StringFixed(2))

	empty, err := service.GetCart("nobody")
	require.NoError(t, err)
	assert.Empty(t, empty.Lines)
	assert.True(t, empty.Total.IsZero())
}

func TestCartService_RemoveAndClear(t *testing.T) {
	service := services.NewCartService(repositories.NewMockCartRepository(), seededProducts(t), nil, zap.NewNop())
	_, err := service.AddItem("cart-1", "widget", 1)
	require.NoError(t, err)
	_, err = service.AddItem("cart-1", "gadget", 1)
	require.NoError(t, err)

	require.NoError(t, service.RemoveItem("cart-1", "widget"))
	assert.ErrorIs(t, service.RemoveItem("cart-1", "widget"), repositories.ErrNotFound)

	require.NoError(t, service.Clear("cart-1"))
	cart, err := service.GetCart("cart-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
}
