package repositories

import (
	"errors"
	"fmt"

	"etalase/internal/models"
)

// ErrLimitExceeded is wrapped by LimitError.
var ErrLimitExceeded = errors.New("quantity limit exceeded")

// LimitError reports an Add that would have left a cart line above its limit.
type LimitError struct {
	Requested int
	Limit     int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s (requested: %d, limit: %d)", ErrLimitExceeded, e.Requested, e.Limit)
}

func (e *LimitError) Unwrap() error { return ErrLimitExceeded }

// CartRepository defines the interface for cart data access. Items come back
// in the order they were first added.
type CartRepository interface {
	GetItems(cartID string) ([]models.CartItem, error)
	GetItem(cartID, productID string) (*models.CartItem, error)
	// Add puts item.Quantity more units on the (CartID, ProductID) line,
	// creating it if needed, as long as the line stays within limit. The
	// check and the increment are atomic. On success item is replaced by
	// the stored line.
	Add(item *models.CartItem, limit int) error
	DeleteItem(cartID, productID string) error
	DeleteCart(cartID string) error
}
