package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"bikeshop/auth-service/internal/app/auth/entity"
	"bikeshop/auth-service/internal/app/auth/repository"
	"bikeshop/auth-service/internal/app/auth/repository/mocks"
	"bikeshop/auth-service/internal/app/auth/util"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Хелперы для создания тестовых данных

type authFixture struct {
	service    *AuthService
	userRepo   *mocks.MockUserRepository
	blacklist  *mocks.MockTokenBlacklist
	jwtManager *util.JWTManager
}

func newAuthFixture(adminEmails ...string) *authFixture {
	f := &authFixture{
		userRepo:   new(mocks.MockUserRepository),
		blacklist:  new(mocks.MockTokenBlacklist),
		jwtManager: util.NewJWTManager("test-secret-key", 15*time.Minute),
	}
	f.service = NewAuthService(f.userRepo, f.blacklist, f.jwtManager, adminEmails)
	return f
}

func newTestUser(t *testing.T) *entity.User {
	t.Helper()
	hash, err := util.HashPassword("password123")
	require.NoError(t, err)
	return &entity.User{
		ID:           uuid.New(),
		Email:        "rider@example.com",
		PasswordHash: hash,
		Username:     "rider",
		FirstName:    "Test",
		LastName:     "Rider",
		CreatedAt:    time.Now(),
	}
}

func newRegisterRequest(email string) *entity.RegisterRequest {
	return &entity.RegisterRequest{
		Email:     email,
		Password:  "password123",
		Username:  "rider",
		FirstName: "Test",
		LastName:  "Rider",
	}
}

// ==================== Register Tests ====================

func TestAuthService_Register_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newAuthFixture()
	f.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	// Act
	resp, err := f.service.Register(ctx, newRegisterRequest("  Rider@Example.com "))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(900), resp.ExpiresIn)
	assert.Equal(t, "rider@example.com", resp.User.Email)
	assert.False(t, resp.User.IsAdmin)

	created := f.userRepo.Calls[0].Arguments.Get(1).(*entity.User)
	assert.NotEqual(t, "password123", created.PasswordHash)
	assert.True(t, util.CheckPassword("password123", created.PasswordHash))

	claims, err := f.jwtManager.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, created.ID.String(), claims.UserID)
	f.userRepo.AssertExpectations(t)
}

func TestAuthService_Register_AdminEmail(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture("Owner@BikeShop.io")
	f.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	resp, err := f.service.Register(ctx, newRegisterRequest("owner@bikeshop.io"))

	require.NoError(t, err)
	assert.True(t, resp.User.IsAdmin)
	claims, err := f.jwtManager.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin())
}

func TestAuthService_Register_UserExists(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	f.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(repository.ErrUserExists)

	resp, err := f.service.Register(ctx, newRegisterRequest("rider@example.com"))

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestAuthService_Register_RepositoryError(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	dbErr := errors.New("connection reset")
	f.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(dbErr)

	_, err := f.service.Register(ctx, newRegisterRequest("rider@example.com"))

	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrUserExists)
}

// ==================== Login Tests ====================

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	user := newTestUser(t)
	f.userRepo.On("GetByEmail", ctx, "rider@example.com").Return(user, nil)

	resp, err := f.service.Login(ctx, &entity.LoginRequest{Email: "RIDER@example.com", Password: "password123"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, user.ID, resp.User.ID)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	tests := []struct {
		name     string
		password string
		found    bool
	}{
		{name: "wrong password", password: "wrongpassword", found: true},
		{name: "unknown email", password: "password123", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newAuthFixture()
			if tt.found {
				f.userRepo.On("GetByEmail", ctx, "rider@example.com").Return(newTestUser(t), nil)
			} else {
				f.userRepo.On("GetByEmail", ctx, "rider@example.com").Return(nil, repository.ErrUserNotFound)
			}

			resp, err := f.service.Login(ctx, &entity.LoginRequest{Email: "rider@example.com", Password: tt.password})

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

// ==================== GetCurrentUser Tests ====================

func TestAuthService_GetCurrentUser(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	user := newTestUser(t)
	missing := uuid.New()
	f.userRepo.On("GetByID", ctx, user.ID).Return(user, nil)
	f.userRepo.On("GetByID", ctx, missing).Return(nil, repository.ErrUserNotFound)

	got, err := f.service.GetCurrentUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = f.service.GetCurrentUser(ctx, missing)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// ==================== Logout / ValidateToken Tests ====================

func TestAuthService_Logout_BlacklistsUntilExpiry(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	token, err := f.jwtManager.GenerateAccessToken(newTestUser(t))
	require.NoError(t, err)
	claims, err := f.jwtManager.ValidateToken(token)
	require.NoError(t, err)
	f.blacklist.On("AddToBlacklist", ctx, token, claims.ExpiresAt.Time).Return(nil)

	err = f.service.Logout(ctx, token)

	require.NoError(t, err)
	f.blacklist.AssertExpectations(t)
}

func TestAuthService_Logout_InvalidTokenIsNoop(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	err := f.service.Logout(ctx, "not-a-jwt")

	require.NoError(t, err)
	f.blacklist.AssertNotCalled(t, "AddToBlacklist", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_ValidateToken(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	user := newTestUser(t)
	token, err := f.jwtManager.GenerateAccessToken(user)
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		f.blacklist.On("IsBlacklisted", ctx, token).Return(false, nil).Once()

		claims, err := f.service.ValidateToken(ctx, token)

		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims.UserID)
	})

	t.Run("revoked", func(t *testing.T) {
		f.blacklist.On("IsBlacklisted", ctx, token).Return(true, nil).Once()

		_, err := f.service.ValidateToken(ctx, token)

		assert.ErrorIs(t, err, ErrTokenRevoked)
	})

	t.Run("garbage", func(t *testing.T) {
		f.blacklist.On("IsBlacklisted", ctx, "garbage").Return(false, nil).Once()

		_, err := f.service.ValidateToken(ctx, "garbage")

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("blacklist unavailable", func(t *testing.T) {
		redisErr := errors.New("redis down")
		f.blacklist.On("IsBlacklisted", ctx, token).Return(false, redisErr).Once()

		_, err := f.service.ValidateToken(ctx, token)

		assert.ErrorIs(t, err, redisErr)
	})
}

func TestAuthService_ValidateToken_Expired(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	shortLived := util.NewJWTManager("test-secret-key", -time.Minute)
	token, err := shortLived.GenerateAccessToken(newTestUser(t))
	require.NoError(t, err)
	f.blacklist.On("IsBlacklisted", ctx, token).Return(false, nil)

	_, err = f.service.ValidateToken(ctx, token)

	assert.ErrorIs(t, err, ErrTokenExpired)
}
