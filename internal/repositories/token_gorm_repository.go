package repositories

import (
	"fmt"

	"imobi/internal/models"

	"gorm.io/gorm"
)

// GORMTokenRepository is a GORM implementation of TokenRepository.
type GORMTokenRepository struct {
	db *gorm.DB
}

// NewGORMTokenRepository creates a new instance of GORMTokenRepository.
func NewGORMTokenRepository(db *gorm.DB) *GORMTokenRepository {
	return &GORMTokenRepository{
		db: db,
	}
}

// Replace deletes the user's current token, if any, and stores a fresh one.
// Both writes happen in one transaction so a user never ends up with zero
// or two live tokens.
func (r *GORMTokenRepository) Replace(userID uint, key string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.AuthToken{}, "user_id = ?", userID).Error; err != nil {
			return err
		}
		return tx.Create(&models.AuthToken{Key: key, UserID: userID}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to replace token for user %d: %w", userID, err)
	}
	return nil
}

// GetByKey retrieves a token by its opaque key.
func (r *GORMTokenRepository) GetByKey(key string) (*models.AuthToken, error) {
	var token models.AuthToken
	if err := r.db.First(&token, "key = ?", key).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("token: %w", models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get token: %w", err)
	}
	return &token, nil
}
