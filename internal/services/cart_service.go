package services

import (
	"fmt"
	"log"

	"butik/internal/models"
	"butik/internal/repositories"
)

// CartService maintains the per-session cart as the single source of truth
// for pending purchase intent. All mutations go through it and every
// mutation persists the whole cart back to the store in one write.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
	pricing     models.PricingRule
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository, pricing models.PricingRule) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		pricing:     pricing,
	}
}

// Get loads the session's cart from the persisted store. An absent slot
// yields an empty cart. An unparseable payload is logged and reset to an
// empty cart rather than surfaced; only store access failures propagate.
func (s *CartService) Get(sessionID string) (models.Cart, error) {
	payload, err := s.cartRepo.Load(sessionID)
	if err == repositories.ErrCartSlotNotFound {
		return make(models.Cart), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart for session %s: %w", sessionID, err)
	}

	cart, err := models.DecodeCart(payload)
	if err != nil {
		log.Printf("Resetting malformed cart for session %s: %v", sessionID, err)
		return make(models.Cart), nil
	}
	return cart, nil
}

// AddItem adds one unit of a product to the cart. A new line snapshots the
// product's name, price and image at the time of the call; an existing
// line just gains quantity. Later catalog changes never touch lines that
// are already in the cart.
func (s *CartService) AddItem(sessionID, productID string) (models.Cart, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, fmt.Errorf("cannot add product to cart: %w", err)
	}

	cart, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}

	if line, ok := cart[productID]; ok {
		line.Quantity++
		cart[productID] = line
	} else {
		cart[productID] = models.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Image:     product.Image,
			Quantity:  1,
		}
	}

	if err := s.persist(sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// ChangeQuantity adjusts a line's quantity by delta, clamped to a minimum
// of 1. Decrementing never removes the line; removal is a separate,
// explicit action. Changing an absent key is a no-op.
func (s *CartService) ChangeQuantity(sessionID, productID string, delta int) (models.Cart, error) {
	cart, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}

	line, ok := cart[productID]
	if !ok {
		return cart, nil
	}

	line.Quantity += delta
	if line.Quantity < 1 {
		line.Quantity = 1
	}
	cart[productID] = line

	if err := s.persist(sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem deletes a line unconditionally. Removing an absent key leaves
// the cart unchanged. The confirmation dialog guarding removal lives at
// the interaction boundary, not here.
func (s *CartService) RemoveItem(sessionID, productID string) (models.Cart, error) {
	cart, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}

	if _, ok := cart[productID]; !ok {
		return cart, nil
	}
	delete(cart, productID)

	if err := s.persist(sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear empties the cart entirely. Used after a successful order.
func (s *CartService) Clear(sessionID string) error {
	if err := s.cartRepo.Delete(sessionID); err != nil {
		return fmt.Errorf("failed to clear cart for session %s: %w", sessionID, err)
	}
	return nil
}

// Summary computes the pricing summary for the session's current cart.
// It is derived fresh on every call and has no side effects.
func (s *CartService) Summary(sessionID string) (models.PricingSummary, error) {
	cart, err := s.Get(sessionID)
	if err != nil {
		return models.PricingSummary{}, err
	}
	return models.ComputeSummary(cart, s.pricing), nil
}

// Pricing returns the rule the service prices carts with.
func (s *CartService) Pricing() models.PricingRule {
	return s.pricing
}

func (s *CartService) persist(sessionID string, cart models.Cart) error {
	payload, err := models.EncodeCart(cart)
	if err != nil {
		return err
	}
	if err := s.cartRepo.Save(sessionID, payload); err != nil {
		return fmt.Errorf("failed to persist cart for session %s: %w", sessionID, err)
	}
	return nil
}
