package service

import (
	"testing"
	"time"

	"cigarrank/internal/api/models"
	"cigarrank/internal/config"
	"cigarrank/internal/middleware/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UsernamesByIDs(ids []string) (map[string]string, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func testConfig(expiry time.Duration) *config.Config {
	return &config.Config{
		JWTSecret: "test-secret-key-with-enough-length!!",
		JWTExpiry: expiry,
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, testConfig(72*time.Hour))

	repo.On("FindByEmail", "taken@example.com").
		Return(&models.User{ID: "other", Email: "taken@example.com"}, nil)

	_, _, err := svc.Register("newuser", "taken@example.com", "password123")
	assert.ErrorIs(t, err, ErrEmailInUse)
	repo.AssertNotCalled(t, "Create")
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, testConfig(72*time.Hour))

	repo.On("FindByEmail", "new@example.com").Return(nil, gorm.ErrRecordNotFound)
	repo.On("FindByUsername", "taken").
		Return(&models.User{ID: "other", Username: "taken"}, nil)

	_, _, err := svc.Register("taken", "new@example.com", "password123")
	assert.ErrorIs(t, err, ErrNameInUse)
	repo.AssertNotCalled(t, "Create")
}

func TestRegister_Success(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, testConfig(72*time.Hour))

	repo.On("FindByEmail", "new@example.com").Return(nil, gorm.ErrRecordNotFound)
	repo.On("FindByUsername", "newuser").Return(nil, gorm.ErrRecordNotFound)
	repo.On("Create", mock.AnythingOfType("*models.User")).Return(nil)

	user, token, err := svc.Register("newuser", "new@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "newuser", user.Username)
	// Password must be stored hashed, never verbatim
	assert.NotEqual(t, "password123", user.Password)

	repo.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, testConfig(72*time.Hour)).(*authService)

	hash, err := auth.HashPassword("correcthorse")
	require.NoError(t, err)
	repo.On("FindByEmail", "user@example.com").
		Return(&models.User{ID: "user-1", Email: "user@example.com", Password: hash}, nil)

	_, _, err = svc.Login("user@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, testConfig(72*time.Hour))

	repo.On("FindByEmail", "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, _, err := svc.Login("nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateToken_RoundTrip(t *testing.T) {
	svc := NewAuthService(new(MockUserRepository), testConfig(72*time.Hour))

	token, err := svc.GenerateToken("user-42")
	require.NoError(t, err)

	userID, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

func TestValidateToken_Expired(t *testing.T) {
	// Negative expiry issues an already-expired token
	svc := NewAuthService(new(MockUserRepository), testConfig(-time.Hour))

	token, err := svc.GenerateToken("user-42")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := NewAuthService(new(MockUserRepository), testConfig(72*time.Hour))

	_, err := svc.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := NewAuthService(new(MockUserRepository), testConfig(72*time.Hour))
	verifier := NewAuthService(new(MockUserRepository), &config.Config{
		JWTSecret: "a-completely-different-secret-value!",
		JWTExpiry: 72 * time.Hour,
	})

	token, err := issuer.GenerateToken("user-42")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
