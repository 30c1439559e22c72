package handler

import (
	"errors"
	"net/http"

	"bikeshop/auth-service/internal/app/auth/entity"
	"bikeshop/auth-service/internal/app/auth/service"
	"bikeshop/pkg/logger"
	"bikeshop/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type AuthHandler struct {
	authService service.AuthServiceInterface
	validator   *validator.Validate
}

func NewAuthHandler(authService service.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator.New(),
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req entity.RegisterRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			respondError(c, http.StatusConflict, "User with this email or username already exists")
			return
		}
		logger.Error().Err(err).Msg("Failed to register user")
		respondError(c, http.StatusInternalServerError, "Failed to register user")
		return
	}

	metrics.AuthRegistrations.Inc()
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req entity.LoginRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			metrics.AuthLogins.WithLabelValues("failed").Inc()
			respondError(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		logger.Error().Err(err).Msg("Failed to login")
		respondError(c, http.StatusInternalServerError, "Failed to login")
		return
	}

	metrics.AuthLogins.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, ok := c.Get("user_id")
	id, isUUID := userID.(uuid.UUID)
	if !ok || !isUUID {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.authService.GetCurrentUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		logger.Error().Err(err).Msg("Failed to get user info")
		respondError(c, http.StatusInternalServerError, "Failed to get user info")
		return
	}

	c.JSON(http.StatusOK, user)
}

// Logout отзывает токен, которым подписан запрос
func (h *AuthHandler) Logout(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid authorization header format")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		logger.Error().Err(err).Msg("Failed to logout")
		respondError(c, http.StatusInternalServerError, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Successfully logged out"})
}
