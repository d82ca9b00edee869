package repositories

import (
	"errors"
	"fmt"

	"etalase/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetItems retrieves every line of a cart.
func (r *GORMCartRepository) GetItems(cartID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Where("cart_id = ?", cartID).Order("created_at").Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get items for cart %s: %w", cartID, err)
	}
	return items, nil
}

// GetItem retrieves one line of a cart.
func (r *GORMCartRepository) GetItem(cartID, productID string) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.First(&item, "cart_id = ? AND product_id = ?", cartID, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart item %s/%s %w", cartID, productID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cart item %s/%s: %w", cartID, productID, err)
	}
	return &item, nil
}

// Add inserts the line or increments the stored quantity in one upsert. The
// conflict update only fires while the sum stays within limit, so concurrent
// adds neither lose units nor overshoot.
func (r *GORMCartRepository) Add(item *models.CartItem, limit int) error {
	if item.Quantity > limit {
		return &LimitError{Requested: item.Quantity, Limit: limit}
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		line := models.CartItem{
			ID:        uuid.New().String(),
			CartID:    item.CartID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		res := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Set{
				{Column: clause.Column{Name: "quantity"}, Value: gorm.Expr("cart_items.quantity + excluded.quantity")},
				{Column: clause.Column{Name: "updated_at"}, Value: gorm.Expr("excluded.updated_at")},
			},
			Where: clause.Where{Exprs: []clause.Expression{
				gorm.Expr("cart_items.quantity + excluded.quantity <= ?", limit),
			}},
		}).Create(&line)
		if res.Error != nil {
			return fmt.Errorf("failed to save cart item: %w", res.Error)
		}

		var stored models.CartItem
		if err := tx.First(&stored, "cart_id = ? AND product_id = ?", item.CartID, item.ProductID).Error; err != nil {
			return fmt.Errorf("failed to reload cart item %s/%s: %w", item.CartID, item.ProductID, err)
		}
		if res.RowsAffected == 0 {
			return &LimitError{Requested: stored.Quantity + item.Quantity, Limit: limit}
		}
		*item = stored
		return nil
	})
}

// DeleteItem removes one line from a cart.
func (r *GORMCartRepository) DeleteItem(cartID, productID string) error {
	res := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).Delete(&models.CartItem{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete cart item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item %s/%s %w for deletion", cartID, productID, ErrNotFound)
	}
	return nil
}

// DeleteCart removes every line of a cart.
func (r *GORMCartRepository) DeleteCart(cartID string) error {
	if err := r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart %s: %w", cartID, err)
	}
	return nil
}
