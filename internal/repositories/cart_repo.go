package repositories

import "errors"

// ErrCartSlotNotFound is returned when a session has no persisted cart.
var ErrCartSlotNotFound = errors.New("cart slot not found")

// CartRepository defines the interface for the persisted cart store: one
// serialized blob per session, read and written atomically. The payload
// format is owned by the caller; the repository treats it as opaque.
type CartRepository interface {
	Load(sessionID string) ([]byte, error)
	Save(sessionID string, payload []byte) error
	Delete(sessionID string) error
}
