package repositories

import (
	"butik/internal/models"
)

// ProductFilter narrows a catalog listing. Zero values mean no filtering.
type ProductFilter struct {
	Category string
	MaxPrice float64
}

// ProductRepository defines the interface for catalog data access.
type ProductRepository interface {
	GetAll(filter ProductFilter) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
