package repositories

import "sync"

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	slots map[string][]byte
	mu    sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		slots: make(map[string][]byte),
	}
}

// Load reads the serialized cart for a session.
func (r *MockCartRepository) Load(sessionID string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payload, ok := r.slots[sessionID]
	if !ok {
		return nil, ErrCartSlotNotFound
	}
	copied := make([]byte, len(payload))
	copy(copied, payload)
	return copied, nil
}

// Save writes the serialized cart for a session.
func (r *MockCartRepository) Save(sessionID string, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := make([]byte, len(payload))
	copy(copied, payload)
	r.slots[sessionID] = copied
	return nil
}

// Delete removes the persisted cart for a session.
func (r *MockCartRepository) Delete(sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.slots, sessionID)
	return nil
}
