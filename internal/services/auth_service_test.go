package services_test

import (
	"log"
	"os"
	"testing"

	"imobi/internal/models"
	"imobi/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

// MockTokenRepository is a mock implementation of repositories.TokenRepository
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) Replace(userID uint, key string) error {
	args := m.Called(userID, key)
	return args.Error(0)
}

func (m *MockTokenRepository) GetByKey(key string) (*models.AuthToken, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthToken), args.Error(1)
}

// TestMain is used to setup test environment
func TestMain(m *testing.M) {
	log.SetOutput(os.Stdout)
	code := m.Run()
	os.Exit(code)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "dev@appcompany.com", services.NormalizeEmail("dev@APPCOMPANY.COM"))
	// The local part is case-sensitive and must be preserved as given.
	assert.Equal(t, "Dev.One@company.com", services.NormalizeEmail("Dev.One@Company.COM"))
	assert.Equal(t, "not-an-email", services.NormalizeEmail("not-an-email"))
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenRepository)
	authService := services.NewAuthService(mockUsers, mockTokens)

	// Successful registration: email normalized, password hashed
	mockUsers.On("GetByEmail", "dev@company.com").Return(nil, models.ErrNotFound).Once()
	var stored *models.User
	mockUsers.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		stored = args.Get(0).(*models.User)
	}).Return(nil).Once()

	user, err := authService.RegisterUser("dev@COMPANY.COM", "testpass123", "testname")
	assert.NoError(t, err)
	assert.Equal(t, "dev@company.com", user.Email)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "testpass123", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("testpass123")))
	mockUsers.AssertExpectations(t)

	// Empty email fails with a validation error
	_, err = authService.RegisterUser("", "testpass123", "")
	assert.ErrorIs(t, err, models.ErrInvalidEmail)

	// Duplicate normalized email fails
	mockUsers.On("GetByEmail", "dev@company.com").Return(&models.User{ID: 1}, nil).Once()
	_, err = authService.RegisterUser("dev@Company.com", "anotherpass", "")
	assert.ErrorIs(t, err, models.ErrEmailTaken)
	mockUsers.AssertExpectations(t)
}

func TestAuthService_CreateSuperuser(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenRepository)
	authService := services.NewAuthService(mockUsers, mockTokens)

	mockUsers.On("GetByEmail", "dev@hotmail.com").Return(nil, models.ErrNotFound).Once()
	mockUsers.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()
	mockUsers.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := authService.CreateSuperuser("dev@hotmail.com", "testsuperuser")
	assert.NoError(t, err)
	assert.True(t, user.IsStaff)
	assert.True(t, user.IsSuperuser)
	mockUsers.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenRepository)
	authService := services.NewAuthService(mockUsers, mockTokens)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("narutouzumaki"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       7,
		Email:    "dev@company.com",
		Password: string(hashedPassword),
		IsActive: true,
	}

	// Successful login issues a replacement token
	mockUsers.On("GetByEmail", "dev@company.com").Return(user, nil).Once()
	mockTokens.On("Replace", uint(7), mock.AnythingOfType("string")).Return(nil).Once()

	token, err := authService.Login("dev@COMPANY.com", "narutouzumaki")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	mockUsers.AssertExpectations(t)
	mockTokens.AssertExpectations(t)

	// Wrong password
	mockUsers.On("GetByEmail", "dev@company.com").Return(user, nil).Once()
	_, err = authService.Login("dev@company.com", "wrongpassword")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	// Unknown user yields the same error as a wrong password
	mockUsers.On("GetByEmail", "ghost@company.com").Return(nil, models.ErrNotFound).Once()
	_, err = authService.Login("ghost@company.com", "narutouzumaki")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	// Empty password never reaches the repositories
	_, err = authService.Login("dev@company.com", "")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	mockUsers.AssertExpectations(t)
	mockTokens.AssertExpectations(t)
}

func TestAuthService_ResolveToken(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenRepository)
	authService := services.NewAuthService(mockUsers, mockTokens)

	user := &models.User{ID: 7, Email: "dev@company.com", IsActive: true}

	// Valid token
	mockTokens.On("GetByKey", "valid-key").Return(&models.AuthToken{Key: "valid-key", UserID: 7}, nil).Once()
	mockUsers.On("GetByID", uint(7)).Return(user, nil).Once()

	resolved, err := authService.ResolveToken("valid-key")
	assert.NoError(t, err)
	assert.Equal(t, user.Email, resolved.Email)

	// Unknown token
	mockTokens.On("GetByKey", "unknown-key").Return(nil, models.ErrNotFound).Once()
	_, err = authService.ResolveToken("unknown-key")
	assert.ErrorIs(t, err, models.ErrUnauthenticated)

	// Empty token
	_, err = authService.ResolveToken("")
	assert.ErrorIs(t, err, models.ErrUnauthenticated)

	// Deactivated account
	inactive := &models.User{ID: 8, Email: "gone@company.com", IsActive: false}
	mockTokens.On("GetByKey", "inactive-key").Return(&models.AuthToken{Key: "inactive-key", UserID: 8}, nil).Once()
	mockUsers.On("GetByID", uint(8)).Return(inactive, nil).Once()
	_, err = authService.ResolveToken("inactive-key")
	assert.ErrorIs(t, err, models.ErrUnauthenticated)

	mockUsers.AssertExpectations(t)
	mockTokens.AssertExpectations(t)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenRepository)
	authService := services.NewAuthService(mockUsers, mockTokens)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("oldpassword"), bcrypt.DefaultCost)

	// Partial update touches only the supplied field
	user := &models.User{ID: 7, Email: "dev@company.com", Name: "old name", Password: string(hashedPassword), IsActive: true}
	mockUsers.On("Update", user).Return(nil).Once()

	newName := "new name"
	updated, err := authService.UpdateProfile(user, nil, &newName, nil)
	assert.NoError(t, err)
	assert.Equal(t, "new name", updated.Name)
	assert.Equal(t, "dev@company.com", updated.Email)
	assert.Equal(t, string(hashedPassword), updated.Password)

	// A new password is re-hashed
	newPassword := "brandnewpass"
	mockUsers.On("Update", user).Return(nil).Once()
	updated, err = authService.UpdateProfile(user, nil, nil, &newPassword)
	assert.NoError(t, err)
	assert.NotEqual(t, "brandnewpass", updated.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("brandnewpass")))

	// Changing email to one already registered fails
	takenEmail := "taken@company.com"
	mockUsers.On("GetByEmail", "taken@company.com").Return(&models.User{ID: 9}, nil).Once()
	_, err = authService.UpdateProfile(user, &takenEmail, nil, nil)
	assert.ErrorIs(t, err, models.ErrEmailTaken)

	// Emptying the email is rejected
	empty := ""
	_, err = authService.UpdateProfile(user, &empty, nil, nil)
	assert.ErrorIs(t, err, models.ErrInvalidEmail)

	mockUsers.AssertExpectations(t)
}
