package repositories_test

import (
	"testing"

	"butik/internal/models"
	"butik/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOrderDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderLine{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	db.Exec("DELETE FROM order_lines")
	db.Exec("DELETE FROM orders")
	return db
}

func sampleOrder(clientSecret string) *models.Order {
	return &models.Order{
		SessionID: "session-1",
		Billing: models.BillingInfo{
			FirstName: "Jane", LastName: "Doe", Address: "1 Main St",
			City: "Springfield", ZipCode: "12345", Phone: "555-0100",
			Email: "jane@example.com",
		},
		Lines: []models.OrderLine{
			{ProductID: "prod-1", Name: "Classic Tee", UnitPrice: 10.99, Quantity: 2},
		},
		Pricing: models.PricingSummary{
			Subtotal:    decimal.RequireFromString("21.98"),
			Discount:    decimal.RequireFromString("4.396"),
			DeliveryFee: decimal.NewFromInt(15),
			Total:       decimal.RequireFromString("32.584"),
		},
		ClientSecret: clientSecret,
		Status:       models.OrderStatusPending,
	}
}

func TestGORMOrderRepository_CreateAndGetByID(t *testing.T) {
	repo := repositories.NewGORMOrderRepository(setupOrderDB(t))

	order := sampleOrder("pi_create")
	assert.NoError(t, repo.Create(order))
	assert.NotEmpty(t, order.ID, "Create should assign an ID")

	fetched, err := repo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, fetched.Status)
	assert.Equal(t, "Jane", fetched.Billing.FirstName)
	assert.Len(t, fetched.Lines, 1)
	assert.Equal(t, "prod-1", fetched.Lines[0].ProductID)
	assert.True(t, fetched.Pricing.Total.Equal(decimal.RequireFromString("32.584")))
}

func TestGORMOrderRepository_GetByClientSecret(t *testing.T) {
	repo := repositories.NewGORMOrderRepository(setupOrderDB(t))

	order := sampleOrder("pi_secret")
	assert.NoError(t, repo.Create(order))

	fetched, err := repo.GetByClientSecret("pi_secret")
	assert.NoError(t, err)
	assert.Equal(t, order.ID, fetched.ID)

	_, err = repo.GetByClientSecret("pi_ghost")
	assert.ErrorIs(t, err, repositories.ErrOrderNotFound)
}

func TestGORMOrderRepository_UpdateStatus(t *testing.T) {
	repo := repositories.NewGORMOrderRepository(setupOrderDB(t))

	order := sampleOrder("pi_status")
	assert.NoError(t, repo.Create(order))

	assert.NoError(t, repo.UpdateStatus(order.ID, models.OrderStatusPaid))

	fetched, err := repo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, fetched.Status)

	assert.ErrorIs(t, repo.UpdateStatus("missing", models.OrderStatusPaid), repositories.ErrOrderNotFound)
}

func TestGORMOrderRepository_GetAll(t *testing.T) {
	repo := repositories.NewGORMOrderRepository(setupOrderDB(t))

	assert.NoError(t, repo.Create(sampleOrder("pi_one")))
	assert.NoError(t, repo.Create(sampleOrder("pi_two")))

	orders, err := repo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
}
