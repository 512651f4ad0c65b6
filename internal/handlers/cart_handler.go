package handlers

import (
	"log"
	"strings"

	"butik/internal/middleware"
	"butik/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the session cart.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service: service,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Get("/summary", h.HandleGetSummary)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:productId", h.HandleChangeQuantity)
	cartRoutes.Delete("/items/:productId", h.HandleRemoveItem)
	cartRoutes.Delete("/", h.HandleClearCart)
}

// HandleGetCart returns the session's current cart.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.service.Get(middleware.SessionID(c))
	if err != nil {
		log.Printf("Error loading cart: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(cart)
}

// HandleGetSummary returns the derived pricing summary for the cart.
func (h *CartHandler) HandleGetSummary(c *fiber.Ctx) error {
	summary, err := h.service.Summary(middleware.SessionID(c))
	if err != nil {
		log.Printf("Error computing cart summary: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not compute cart summary",
			"error":   err.Error(),
		})
	}
	return c.JSON(summary)
}

// HandleAddItem adds one unit of a product to the cart, creating the line
// if it is not present yet.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req struct {
		ProductID string `json:"product_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-item request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "product_id is required.",
		})
	}

	cart, err := h.service.AddItem(middleware.SessionID(c), req.ProductID)
	if err != nil {
		log.Printf("Error adding item %s to cart: %v", req.ProductID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add item to cart",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(cart)
}

// HandleChangeQuantity adjusts a line's quantity by the given delta.
// Quantities never drop below 1; remove the line explicitly instead.
func (h *CartHandler) HandleChangeQuantity(c *fiber.Ctx) error {
	productID := c.Params("productId")
	var req struct {
		Delta int `json:"delta"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing quantity change request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.Delta == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "delta must be a non-zero integer.",
		})
	}

	cart, err := h.service.ChangeQuantity(middleware.SessionID(c), productID, req.Delta)
	if err != nil {
		log.Printf("Error changing quantity for %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not change quantity",
			"error":   err.Error(),
		})
	}
	return c.JSON(cart)
}

// HandleRemoveItem removes a line from the cart. Removing an absent line
// is a no-op. The client confirms the removal with the user before
// calling this.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	productID := c.Params("productId")
	cart, err := h.service.RemoveItem(middleware.SessionID(c), productID)
	if err != nil {
		log.Printf("Error removing item %s from cart: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove item from cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(cart)
}

// HandleClearCart empties the session's cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	if err := h.service.Clear(middleware.SessionID(c)); err != nil {
		log.Printf("Error clearing cart: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not clear cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Cart cleared successfully",
	})
}
