package main_test

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	mainapp "butik" // Alias the main package for clarity
	"butik/internal/models"
	"butik/pkg/payment"
)

// MockPublisher is a mock implementation of the order event publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(exchange, routingKey string, body []byte) error {
	args := m.Called(exchange, routingKey, body)
	return args.Error(0)
}

var (
	v       *viper.Viper
	db      *gorm.DB
	app     *fiber.App
	mockMQ  *MockPublisher
	pricing models.PricingRule
)

func TestMain(m *testing.M) {
	// Initialize Viper for tests
	v = viper.New()
	v.SetDefault("DATABASE_DSN", "file::memory:?cache=shared")
	v.SetDefault("SESSION_SECRET", "test_session_secret")
	v.AutomaticEnv()

	// Initialize Database (GORM)
	var err error
	db, err = gorm.Open(sqlite.Open(v.GetString("DATABASE_DSN")), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate models
	err = db.AutoMigrate(&models.Product{}, &models.CartSlot{}, &models.Order{}, &models.OrderLine{})
	if err != nil {
		log.Fatalf("Failed to migrate test database: %v", err)
	}

	// Mock publisher
	mockMQ = new(MockPublisher)
	mockMQ.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	pricing = models.DefaultPricingRule()

	// Initialize the app, injecting the mock publisher and sandbox processor
	app = mainapp.NewApp(db, mockMQ, payment.NewSandbox(), v.GetString("SESSION_SECRET"), pricing)

	code := m.Run()

	// Graceful Shutdown
	log.Println("Shutting down test environment...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	os.Exit(code)
}

func TestAppWiring(t *testing.T) {
	t.Run("HealthCheck", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("Health check request failed: %v", err)
		}
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("Failed to read health check response body: %v", err)
		}
		assert.Contains(t, string(bodyBytes), "\"status\":\"healthy\"", "Health check response body does not contain expected status")
	})

	t.Run("CatalogIsPublic", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("Products request failed: %v", err)
		}
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode, "Catalog browsing should not require authentication")
	})

	t.Run("SessionCookieIssued", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("Cart request failed: %v", err)
		}
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var sessionCookie *http.Cookie
		for _, cookie := range resp.Cookies() {
			if cookie.Name == "cart_session" {
				sessionCookie = cookie
			}
		}
		if assert.NotNil(t, sessionCookie, "First contact should set a session cookie") {
			assert.NotEmpty(t, sessionCookie.Value)
			assert.True(t, sessionCookie.HttpOnly)
		}
	})
}
