package models

import "time"

// CartItem is one product line in a shopper's cart. A cart is just the set
// of items sharing a CartID.
type CartItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CartID    string    `json:"cart_id" gorm:"type:varchar(64);uniqueIndex:idx_cart_product"`
	ProductID string    `json:"product_id" gorm:"type:varchar(36);uniqueIndex:idx_cart_product" validate:"required"`
	Quantity  int       `json:"quantity" validate:"gt=0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
