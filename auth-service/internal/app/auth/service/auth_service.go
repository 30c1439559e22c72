package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bikeshop/auth-service/internal/app/auth/entity"
	"bikeshop/auth-service/internal/app/auth/repository"
	"bikeshop/auth-service/internal/app/auth/util"
	"bikeshop/pkg/logger"

	"github.com/google/uuid"
)

const tokenType = "Bearer"

// AuthService обрабатывает бизнес-логику аутентификации
type AuthService struct {
	userRepo    repository.UserRepository
	blacklist   repository.TokenBlacklist
	jwtManager  *util.JWTManager
	adminEmails map[string]struct{}
}

// NewAuthService adminEmails получают флаг администратора при регистрации
func NewAuthService(
	userRepo repository.UserRepository,
	blacklist repository.TokenBlacklist,
	jwtManager *util.JWTManager,
	adminEmails []string,
) *AuthService {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		admins[normalizeEmail(email)] = struct{}{}
	}
	return &AuthService{
		userRepo:    userRepo,
		blacklist:   blacklist,
		jwtManager:  jwtManager,
		adminEmails: admins,
	}
}

// Register регистрирует нового пользователя и сразу выдает access токен
func (s *AuthService) Register(ctx context.Context, req *entity.RegisterRequest) (*entity.AuthResponse, error) {
	email := normalizeEmail(req.Email)

	passwordHash, err := util.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	_, isAdmin := s.adminEmails[email]
	user := &entity.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		Username:     req.Username,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info().
		Str("user_id", user.ID.String()).
		Bool("is_admin", user.IsAdmin).
		Msg("User registered")

	return s.issueToken(user)
}

// Login проверяет пароль; неизвестный email и неверный пароль неразличимы
func (s *AuthService) Login(ctx context.Context, req *entity.LoginRequest) (*entity.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !util.CheckPassword(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(user)
}

func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// Logout заносит токен в черный список до истечения его срока жизни
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.jwtManager.ValidateToken(accessToken)
	if err != nil {
		// Истекший или чужой токен и так не пройдет проверку
		return nil
	}

	if err := s.blacklist.AddToBlacklist(ctx, accessToken, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

// ValidateToken проверяет черный список, затем подпись и срок жизни
func (s *AuthService) ValidateToken(ctx context.Context, accessToken string) (*util.JWTClaims, error) {
	revoked, err := s.blacklist.IsBlacklisted(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to check blacklist: %w", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	claims, err := s.jwtManager.ValidateToken(accessToken)
	switch {
	case errors.Is(err, util.ErrExpiredToken):
		return nil, ErrTokenExpired
	case err != nil:
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) issueToken(user *entity.User) (*entity.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &entity.AuthResponse{
		AccessToken: accessToken,
		TokenType:   tokenType,
		ExpiresIn:   int64(s.jwtManager.GetAccessTokenDuration().Seconds()),
		User:        *user,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
