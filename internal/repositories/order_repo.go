package repositories

import (
	"errors"

	"butik/internal/models"
)

// ErrOrderNotFound is returned when no order matches the lookup.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the interface for order data access. Orders are
// written once at checkout; afterwards only the status changes.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	GetByClientSecret(clientSecret string) (*models.Order, error)
	Create(order *models.Order) error
	UpdateStatus(id string, status string) error
}
