package repositories

import (
	"errors"

	"etalase/internal/models"
)

// ErrNotFound is wrapped by every repository lookup that finds nothing.
var ErrNotFound = errors.New("not found")

// ProductRepository defines the interface for product data access.
// GetAll returns products ordered by name, then ID.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
