package handler

import (
	"errors"
	"net/http"

	"bikeshop/auth-service/internal/app/auth/service"
	"bikeshop/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	authService service.AuthServiceInterface
}

func NewAuthMiddleware(authService service.AuthServiceInterface) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Authenticate кладет в контекст user_id (uuid.UUID), email и is_admin
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortWithError(c, http.StatusUnauthorized, "Authorization header required")
			return
		}

		claims, err := m.authService.ValidateToken(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrTokenExpired):
				abortWithError(c, http.StatusUnauthorized, "Token has expired")
			case errors.Is(err, service.ErrTokenRevoked):
				abortWithError(c, http.StatusUnauthorized, "Token has been revoked")
			case errors.Is(err, service.ErrInvalidToken):
				abortWithError(c, http.StatusUnauthorized, "Invalid token")
			default:
				logger.Error().Err(err).Msg("Failed to validate token")
				abortWithError(c, http.StatusInternalServerError, "Failed to validate token")
			}
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "Invalid user ID in token")
			return
		}

		c.Set("user_id", userID)
		c.Set("email", claims.Email)
		c.Set("is_admin", claims.IsAdmin())

		c.Next()
	}
}
