package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"etalase/internal/models"

	"github.com/google/uuid"
)

type cartKey struct {
	cartID    string
	productID string
}

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	items map[cartKey]models.CartItem
	added map[cartKey]int
	seq   int
	mu    sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		items: make(map[cartKey]models.CartItem),
		added: make(map[cartKey]int),
	}
}

// GetItems returns every line of a cart.
func (r *MockCartRepository) GetItems(cartID string) ([]models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var keys []cartKey
	for k := range r.items {
		if k.cartID == cartID {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return r.added[keys[i]] < r.added[keys[j]] })

	items := make([]models.CartItem, 0, len(keys))
	for _, k := range keys {
		items = append(items, r.items[k])
	}
	return items, nil
}

// GetItem returns one line of a cart.
func (r *MockCartRepository) GetItem(cartID, productID string) (*models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[cartKey{cartID, productID}]
	if !ok {
		return nil, fmt.Errorf("cart item %s/%s %w", cartID, productID, ErrNotFound)
	}
	return &item, nil
}

// Add increments or creates a line under the repository lock.
func (r *MockCartRepository) Add(item *models.CartItem, limit int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	k := cartKey{item.CartID, item.ProductID}
	line, ok := r.items[k]
	if want := line.Quantity + item.Quantity; want > limit {
		return &LimitError{Requested: want, Limit: limit}
	}
	if !ok {
		line = models.CartItem{
			ID:        uuid.New().String(),
			CartID:    item.CartID,
			ProductID: item.ProductID,
			CreatedAt: now,
		}
		r.seq++
		r.added[k] = r.seq
	}
	line.Quantity += item.Quantity
	line.UpdatedAt = now
	r.items[k] = line
	*item = line
	return nil
}

// DeleteItem removes one line.
func (r *MockCartRepository) DeleteItem(cartID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := cartKey{cartID, productID}
	if _, ok := r.items[k]; !ok {
		return fmt.Errorf("cart item %s/%s %w for deletion", cartID, productID, ErrNotFound)
	}
	delete(r.items, k)
	delete(r.added, k)
	return nil
}

// DeleteCart removes every line of a cart. An empty cart is not an error.
func (r *MockCartRepository) DeleteCart(cartID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for k := range r.items {
		if k.cartID == cartID {
			delete(r.items, k)
			delete(r.added, k)
		}
	}
	return nil
}
