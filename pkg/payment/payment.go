package payment

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Intent statuses as reported by the processor.
const (
	StatusRequiresConfirmation = "requires_confirmation"
	StatusSucceeded            = "succeeded"
)

// ErrPaymentDeclined is returned when the processor refuses to confirm an
// intent.
var ErrPaymentDeclined = errors.New("payment declined")

// ErrIntentNotFound is returned when no intent matches the client secret.
var ErrIntentNotFound = errors.New("payment intent not found")

// Intent is a pending payment handed back by the processor. The client
// secret is the only handle the storefront keeps.
type Intent struct {
	ClientSecret string          `json:"client_secret"`
	Amount       decimal.Decimal `json:"amount"`
	Status       string          `json:"status"`
}

// Processor is the capability interface for the external payment service.
// The storefront only needs intent creation and a confirm signal; the
// provider UI and settlement are out of its hands.
type Processor interface {
	CreateIntent(amount decimal.Decimal) (*Intent, error)
	Confirm(clientSecret string) error
	Status(clientSecret string) (string, error)
}

// Sandbox is an in-memory Processor that approves every confirmation.
// It stands in for the real provider in development and tests.
type Sandbox struct {
	intents map[string]*Intent
	mu      sync.Mutex
}

// NewSandbox creates a new Sandbox processor.
func NewSandbox() *Sandbox {
	return &Sandbox{
		intents: make(map[string]*Intent),
	}
}

// CreateIntent registers a new intent and returns its client secret.
func (s *Sandbox) CreateIntent(amount decimal.Decimal) (*Intent, error) {
	if amount.IsNegative() {
		return nil, fmt.Errorf("invalid intent amount: %s", amount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	intent := &Intent{
		ClientSecret: fmt.Sprintf("pi_%s", uuid.New().String()),
		Amount:       amount,
		Status:       StatusRequiresConfirmation,
	}
	s.intents[intent.ClientSecret] = intent
	return intent, nil
}

// Confirm marks the intent as succeeded. Confirming an already succeeded
// intent is a no-op.
func (s *Sandbox) Confirm(clientSecret string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	intent, ok := s.intents[clientSecret]
	if !ok {
		return ErrIntentNotFound
	}
	intent.Status = StatusSucceeded
	return nil
}

// Status reports the current status of an intent.
func (s *Sandbox) Status(clientSecret string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	intent, ok := s.intents[clientSecret]
	if !ok {
		return "", ErrIntentNotFound
	}
	return intent.Status, nil
}
