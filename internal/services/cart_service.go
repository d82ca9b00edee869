package services

import (
	"errors"
	"fmt"
	"time"

	"etalase/internal/models"
	"etalase/internal/repositories"
	"etalase/pkg/rabbitmq"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	// ErrInsufficientStock is returned when a cart would hold more units
	// than the product has in stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInvalidQuantity is returned for non-positive quantities.
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// EventPublisher sends cart events to the message broker.
type EventPublisher interface {
	PublishCartEvent(event rabbitmq.CartEvent) error
}

// CartLine is a cart item joined with its product.
type CartLine struct {
	Item     models.CartItem `json:"item"`
	Product  models.Product  `json:"product"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Cart is the priced view of a cart.
type Cart struct {
	ID    string          `json:"id"`
	Lines []CartLine      `json:"lines"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// CartService handles business logic related to carts.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
	publisher   EventPublisher
	lg          *zap.Logger
}

// NewCartService creates a new CartService. publisher may be nil, in which
// case no events are sent.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository, publisher EventPublisher, lg *zap.Logger) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		publisher:   publisher,
		lg:          lg,
	}
}

// AddItem adds quantity units of a product to a cart.
func (s *CartService) AddItem(cartID, productID string, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", productID, err)
	}

	item := &models.CartItem{CartID: cartID, ProductID: productID, Quantity: quantity}
	if err := s.cartRepo.Add(item, product.Stock); err != nil {
		var limitErr *repositories.LimitError
		if errors.As(err, &limitErr) {
			return nil, fmt.Errorf("%w for product %s (requested: %d, available: %d)", ErrInsufficientStock, product.Name, limitErr.Requested, limitErr.Limit)
		}
		return nil, fmt.Errorf("failed to add item to cart: %w", err)
	}

	s.publish(rabbitmq.CartEvent{
		Event:     rabbitmq.EventItemAdded,
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
		At:        time.Now().UTC(),
	})
	return item, nil
}

func (s *CartService) publish(event rabbitmq.CartEvent) {
	if s.publisher == nil {
		s.lg.Debug("No publisher configured, skipping cart event", zap.String("event", event.Event))
		return
	}
	if err := s.publisher.PublishCartEvent(event); err != nil {
		s.lg.Warn("Failed to publish cart event",
			zap.String("event", event.Event),
			zap.String("cart_id", event.CartID),
			zap.Error(err))
	}
}

// GetCart returns the cart with prices from the current catalog. Lines whose
// product has since been removed are skipped.
func (s *CartService) GetCart(cartID string) (*Cart, error) {
	items, err := s.cartRepo.GetItems(cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart %s: %w", cartID, err)
	}

	cart := &Cart{ID: cartID, Lines: make([]CartLine, 0, len(items)), Total: decimal.Zero}
	for _, item := range items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if errors.Is(err, repositories.ErrNotFound) {
			s.lg.Warn("Cart references missing product", zap.String("cart_id", cartID), zap.String("product_id", item.ProductID))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load product %s: %w", item.ProductID, err)
		}
		subtotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		cart.Lines = append(cart.Lines, CartLine{Item: item, Product: *product, Subtotal: subtotal})
		cart.Count += item.Quantity
		cart.Total = cart.Total.Add(subtotal)
	}
	return cart, nil
}

// RemoveItem drops a product from a cart.
func (s *CartService) RemoveItem(cartID, productID string) error {
	if err := s.cartRepo.DeleteItem(cartID, productID); err != nil {
		return fmt.Errorf("failed to remove item from cart: %w", err)
	}
	return nil
}

// Clear empties a cart.
func (s *CartService) Clear(cartID string) error {
	return s.cartRepo.DeleteCart(cartID)
}
