package services

import (
	"errors"
	"fmt"
	"strings"

	"imobi/internal/models"
	"imobi/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles accounts, credentials and opaque bearer tokens.
type AuthService struct {
	userRepo  repositories.UserRepository
	tokenRepo repositories.TokenRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, tokenRepo repositories.TokenRepository) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
	}
}

// NormalizeEmail lowercases the domain part of an email address. The local
// part is preserved as given since it is case-sensitive per RFC 5321.
func NormalizeEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

// RegisterUser creates a new user with a normalized email and a hashed
// password. The plaintext password is never stored.
func (s *AuthService) RegisterUser(email, password, name string) (*models.User, error) {
	if email == "" {
		return nil, models.ErrInvalidEmail
	}
	email = NormalizeEmail(email)

	// Surface duplicates as a validation error instead of a raw store error.
	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return nil, models.ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hashedPassword),
		Name:     name,
		IsActive: true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// CreateSuperuser registers a user and elevates them to staff and superuser.
func (s *AuthService) CreateSuperuser(email, password string) (*models.User, error) {
	user, err := s.RegisterUser(email, password, "")
	if err != nil {
		return nil, err
	}
	user.IsStaff = true
	user.IsSuperuser = true
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to elevate superuser: %w", err)
	}
	return user, nil
}

// Login verifies the credentials and issues a fresh opaque token, replacing
// any previously issued one. Unknown email, wrong password and empty password
// are indistinguishable to the caller.
func (s *AuthService) Login(email, password string) (string, error) {
	if email == "" || password == "" {
		return "", models.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(NormalizeEmail(email))
	if err != nil {
		return "", models.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", models.ErrInvalidCredentials
	}

	key := uuid.New().String()
	if err := s.tokenRepo.Replace(user.ID, key); err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return key, nil
}

// ResolveToken maps an opaque bearer key to its owning user. Any unknown key,
// and any key owned by a deactivated account, yields ErrUnauthenticated.
func (s *AuthService) ResolveToken(key string) (*models.User, error) {
	if key == "" {
		return nil, models.ErrUnauthenticated
	}
	token, err := s.tokenRepo.GetByKey(key)
	if err != nil {
		return nil, models.ErrUnauthenticated
	}
	user, err := s.userRepo.GetByID(token.UserID)
	if err != nil || !user.IsActive {
		return nil, models.ErrUnauthenticated
	}
	return user, nil
}

// UpdateProfile applies the supplied fields to the user. Nil fields are left
// untouched, which gives PATCH its merge semantics; the handler enforces
// which fields PUT requires. A new password is re-hashed and a new email is
// normalized and re-checked for uniqueness.
func (s *AuthService) UpdateProfile(user *models.User, email, name, password *string) (*models.User, error) {
	if email != nil {
		if *email == "" {
			return nil, models.ErrInvalidEmail
		}
		normalized := NormalizeEmail(*email)
		if normalized != user.Email {
			if existing, err := s.userRepo.GetByEmail(normalized); err == nil && existing != nil {
				return nil, models.ErrEmailTaken
			}
		}
		user.Email = normalized
	}
	if name != nil {
		user.Name = *name
	}
	if password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashedPassword)
	}

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}
