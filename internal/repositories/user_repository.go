package repositories

import "imobi/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	Update(user *models.User) error
}

// TokenRepository defines the interface for auth-token data access.
type TokenRepository interface {
	// Replace removes any existing token for the user and stores a new one.
	Replace(userID uint, key string) error
	GetByKey(key string) (*models.AuthToken, error)
}
