package services

import (
	"encoding/json"
	"fmt"
	"log"
	"reflect"
	"strings"

	"butik/internal/models"
	"butik/internal/repositories"
	"butik/pkg/payment"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// EventPublisher publishes order events. *rabbitmq.Client satisfies it; a
// nil publisher disables publication.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// CheckoutService validates billing input and turns a finalized cart into
// a submitted order. Checkout creates a pending order together with a
// payment intent; confirming the payment finalizes the order, publishes
// the order event and clears the cart. A failed confirmation leaves both
// the order and the cart intact so the user can retry.
type CheckoutService struct {
	orderRepo repositories.OrderRepository
	carts     *CartService
	processor payment.Processor
	publisher EventPublisher
	validate  *validator.Validate
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(orderRepo repositories.OrderRepository, carts *CartService, processor payment.Processor, publisher EventPublisher) *CheckoutService {
	validate := validator.New()
	// Report failing fields under their form names (firstName, zipCode...)
	// rather than Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &CheckoutService{
		orderRepo: orderRepo,
		carts:     carts,
		processor: processor,
		publisher: publisher,
		validate:  validate,
	}
}

// ValidateBilling checks that every required billing field is non-empty
// after trimming and returns the names of all failing fields. An empty
// result means the input is valid. It can be re-run on every submission
// attempt.
func (s *CheckoutService) ValidateBilling(billing models.BillingInfo) []string {
	trimmed := trimBilling(billing)
	err := s.validate.Struct(trimmed)
	if err == nil {
		return nil
	}

	validationErrors := err.(validator.ValidationErrors)
	fields := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		fields = append(fields, e.Field())
	}
	return fields
}

// PlaceOrder builds and stores a pending order from the session's cart and
// opens a payment intent for its total. The cart is not mutated; it is
// cleared only once the payment is confirmed. Returns a ValidationError
// when billing fields are missing and ErrEmptyCart when there is nothing
// to buy.
func (s *CheckoutService) PlaceOrder(sessionID string, billing models.BillingInfo) (*models.Order, error) {
	if fields := s.ValidateBilling(billing); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	cart, err := s.carts.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}

	summary := models.ComputeSummary(cart, s.carts.Pricing())

	intent, err := s.processor.CreateIntent(summary.Total)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	lines := make([]models.OrderLine, 0, len(cart))
	for _, line := range cart {
		lines = append(lines, models.OrderLine{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Image:     line.Image,
			Quantity:  line.Quantity,
		})
	}

	order := &models.Order{
		ID:           uuid.New().String(),
		SessionID:    sessionID,
		Billing:      trimBilling(billing),
		Lines:        lines,
		Pricing:      summary,
		ClientSecret: intent.ClientSecret,
		Status:       models.OrderStatusPending,
	}

	// A sink failure is always surfaced; the cart stays intact so the
	// user can retry.
	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to submit order: %w", err)
	}

	return order, nil
}

// ConfirmPayment confirms the payment intent behind an order, marks the
// order paid, publishes the order event and clears the session's cart.
// Confirming an already paid order is idempotent, so a duplicate
// submission cannot double-charge or double-publish.
func (s *CheckoutService) ConfirmPayment(clientSecret string) (*models.Order, error) {
	order, err := s.orderRepo.GetByClientSecret(clientSecret)
	if err != nil {
		return nil, err
	}

	if order.Status == models.OrderStatusPaid {
		return order, nil
	}

	if err := s.processor.Confirm(clientSecret); err != nil {
		return nil, fmt.Errorf("payment confirmation failed for order %s: %w", order.ID, err)
	}

	if err := s.orderRepo.UpdateStatus(order.ID, models.OrderStatusPaid); err != nil {
		return nil, fmt.Errorf("failed to finalize order %s: %w", order.ID, err)
	}
	order.Status = models.OrderStatusPaid

	s.publishOrderFinalized(order)

	if err := s.carts.Clear(order.SessionID); err != nil {
		// The order is already paid; losing the clear only leaves a stale
		// cart behind.
		log.Printf("Warning: failed to clear cart after order %s: %v", order.ID, err)
	}

	return order, nil
}

// GetOrder retrieves a single order by its ID.
func (s *CheckoutService) GetOrder(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// GetAllOrders retrieves all orders.
func (s *CheckoutService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// UpdateOrderStatus updates the status of an existing order.
func (s *CheckoutService) UpdateOrderStatus(id string, status string) error {
	validStatuses := map[string]bool{
		models.OrderStatusPending:   true,
		models.OrderStatusPaid:      true,
		models.OrderStatusCancelled: true,
	}
	if _, ok := validStatuses[status]; !ok {
		return fmt.Errorf("invalid order status: %s", status)
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}
	return nil
}

// PaymentStatus reports the processor's view of an intent.
func (s *CheckoutService) PaymentStatus(clientSecret string) (string, error) {
	return s.processor.Status(clientSecret)
}

func (s *CheckoutService) publishOrderFinalized(order *models.Order) {
	if s.publisher == nil {
		log.Println("Event publisher is not initialized. Skipping message publication.")
		return
	}

	message := map[string]interface{}{
		"orderID":   order.ID,
		"sessionID": order.SessionID,
		"status":    order.Status,
		"total":     order.Pricing.Total,
		"email":     order.Billing.Email,
	}

	body, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal order event to JSON: %v", err)
		return
	}

	if err := s.publisher.Publish("", "order.finalized", body); err != nil {
		log.Printf("Warning: Failed to publish order finalized event for order %s: %v", order.ID, err)
	} else {
		log.Printf("Successfully published order finalized event for order %s", order.ID)
	}
}

func trimBilling(billing models.BillingInfo) models.BillingInfo {
	return models.BillingInfo{
		FirstName: strings.TrimSpace(billing.FirstName),
		LastName:  strings.TrimSpace(billing.LastName),
		Address:   strings.TrimSpace(billing.Address),
		City:      strings.TrimSpace(billing.City),
		ZipCode:   strings.TrimSpace(billing.ZipCode),
		Phone:     strings.TrimSpace(billing.Phone),
		Email:     strings.TrimSpace(billing.Email),
	}
}
