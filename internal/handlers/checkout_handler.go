package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"butik/internal/middleware"
	"butik/internal/models"
	"butik/internal/repositories"
	"butik/internal/services"
	"butik/pkg/payment"

	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler handles HTTP requests for checkout, payments and orders.
type CheckoutHandler struct {
	service *services.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
	}
}

// RegisterRoutes registers the checkout routes with the Fiber app.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/checkout/orders", h.HandlePlaceOrder)

	paymentRoutes := router.Group("/payments")
	paymentRoutes.Get("/:clientSecret", h.HandlePaymentStatus)
	paymentRoutes.Post("/:clientSecret/confirm", h.HandleConfirmPayment)

	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Patch("/:id/status", h.HandleUpdateOrderStatus)
}

// HandlePlaceOrder validates the billing input and creates a pending
// order plus a payment intent from the session's cart. The cart is left
// intact until the payment is confirmed.
func (h *CheckoutHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	var billing models.BillingInfo
	if err := c.BodyParser(&billing); err != nil {
		log.Printf("Error parsing billing request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	order, err := h.service.PlaceOrder(middleware.SessionID(c), billing)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			errorMessages := make(map[string]string)
			for _, field := range validationErr.Fields {
				errorMessages[field] = fmt.Sprintf("%s is required.", field)
			}
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"errors":  errorMessages,
			})
		}
		if errors.Is(err, services.ErrEmptyCart) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Cannot checkout with an empty cart.",
			})
		}
		log.Printf("Error placing order: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not place order",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"order":         order,
		"client_secret": order.ClientSecret,
	})
}

// HandleConfirmPayment confirms the payment behind an order and finalizes
// it. On failure the order and the cart both stay as they were so the
// user can retry.
func (h *CheckoutHandler) HandleConfirmPayment(c *fiber.Ctx) error {
	clientSecret := c.Params("clientSecret")

	order, err := h.service.ConfirmPayment(clientSecret)
	if err != nil {
		log.Printf("Error confirming payment: %v", err)
		if errors.Is(err, repositories.ErrOrderNotFound) || errors.Is(err, payment.ErrIntentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "No order found for this payment.",
			})
		}
		if errors.Is(err, payment.ErrPaymentDeclined) {
			return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
				"message": "Payment was declined. Your cart has been kept so you can retry.",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not confirm payment",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// HandlePaymentStatus reports the processor's status for an intent, for
// the post-payment success page.
func (h *CheckoutHandler) HandlePaymentStatus(c *fiber.Ctx) error {
	clientSecret := c.Params("clientSecret")
	status, err := h.service.PaymentStatus(clientSecret)
	if err != nil {
		if errors.Is(err, payment.ErrIntentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Payment intent not found",
			})
		}
		log.Printf("Error fetching payment status: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not fetch payment status",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"status": status,
	})
}

// HandleGetOrders retrieves all orders.
func (h *CheckoutHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		log.Printf("Error getting all orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *CheckoutHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.GetOrder(orderID)
	if err != nil {
		log.Printf("Error getting order by ID %s: %v", orderID, err)
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Order with ID %s not found", orderID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve order",
			"error":   err.Error(),
		})
	}
	return c.JSON(order)
}

// HandleUpdateOrderStatus updates the status of an existing order.
func (h *CheckoutHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var updateData struct {
		Status string `json:"status"`
	}

	if err := c.BodyParser(&updateData); err != nil {
		log.Printf("Error parsing request body for status update: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for status update",
			"error":   err.Error(),
		})
	}

	if updateData.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required for order status update.",
		})
	}

	if err := h.service.UpdateOrderStatus(orderID, updateData.Status); err != nil {
		log.Printf("Error updating order status for order %s: %v", orderID, err)
		if errors.Is(err, repositories.ErrOrderNotFound) ||
			strings.Contains(err.Error(), "invalid order status") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Order update failed: %v", err.Error()),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update order status",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Order %s status updated successfully to %s", orderID, updateData.Status),
	})
}
