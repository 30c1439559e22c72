package service

import (
	"context"

	"bikeshop/auth-service/internal/app/auth/entity"
	"bikeshop/auth-service/internal/app/auth/util"

	"github.com/google/uuid"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, req *entity.RegisterRequest) (*entity.AuthResponse, error)
	Login(ctx context.Context, req *entity.LoginRequest) (*entity.AuthResponse, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	Logout(ctx context.Context, accessToken string) error
	ValidateToken(ctx context.Context, accessToken string) (*util.JWTClaims, error)
}
