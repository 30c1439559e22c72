package handler

import (
	"net/http"
	"strings"
	"time"

	"bikeshop/orders-service/internal/app/orders/infrastructure"
	"bikeshop/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTClaims claims access-токена, выпущенного Auth Service
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Admin  bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

func (c *JWTClaims) IsExpired(now time.Time) bool {
	return c.ExpiresAt == nil || !now.Before(c.ExpiresAt.Time)
}

// AuthMiddleware проверяет JWT токен в запросах для Gin
type AuthMiddleware struct {
	jwtSecret string
	blacklist infrastructure.TokenBlacklist
}

func NewAuthMiddleware(jwtSecret string, blacklist infrastructure.TokenBlacklist) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
		blacklist: blacklist,
	}
}

// Authenticate кладет в контекст user_id, email, is_admin и auth_token;
// auth_token нужен для обращения к корзине в configurator-service
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortWithError(c, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}
		tokenString := parts[1]

		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(m.jwtSecret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid || claims.IsExpired(time.Now()) {
			abortWithError(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "Invalid user ID in token")
			return
		}

		revoked, err := m.blacklist.IsTokenBlacklisted(c.Request.Context(), tokenString)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to check token blacklist")
			abortWithError(c, http.StatusInternalServerError, "Failed to verify token")
			return
		}
		if revoked {
			abortWithError(c, http.StatusUnauthorized, "Token has been revoked")
			return
		}

		c.Set("auth_token", tokenString)
		c.Set("user_id", userID)
		c.Set("email", claims.Email)
		c.Set("is_admin", claims.Admin)

		c.Next()
	}
}

// RequireAdmin пропускает только токены с is_admin
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("is_admin") {
			abortWithError(c, http.StatusForbidden, "Insufficient permissions")
			return
		}
		c.Next()
	}
}
