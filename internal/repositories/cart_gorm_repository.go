package repositories

import (
	"fmt"

	"butik/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMCartRepository is a GORM implementation of CartRepository backed by
// the cart_slots table.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// Load reads the serialized cart for a session.
func (r *GORMCartRepository) Load(sessionID string) ([]byte, error) {
	var slot models.CartSlot
	if err := r.db.First(&slot, "session_id = ?", sessionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCartSlotNotFound
		}
		return nil, fmt.Errorf("failed to load cart slot for session %s: %w", sessionID, err)
	}
	return []byte(slot.Payload), nil
}

// Save writes the serialized cart for a session, replacing any previous
// payload in one statement. Last writer wins across sessions sharing a
// slot; there is no optimistic-concurrency check.
func (r *GORMCartRepository) Save(sessionID string, payload []byte) error {
	slot := models.CartSlot{
		SessionID: sessionID,
		Payload:   string(payload),
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&slot).Error
	if err != nil {
		return fmt.Errorf("failed to save cart slot for session %s: %w", sessionID, err)
	}
	return nil
}

// Delete removes the persisted cart for a session. Deleting an absent
// slot is not an error.
func (r *GORMCartRepository) Delete(sessionID string) error {
	if err := r.db.Delete(&models.CartSlot{}, "session_id = ?", sessionID).Error; err != nil {
		return fmt.Errorf("failed to delete cart slot for session %s: %w", sessionID, err)
	}
	return nil
}
