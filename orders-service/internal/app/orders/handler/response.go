package handler

import (
	"errors"
	"net/http"

	"bikeshop/orders-service/internal/app/orders/entity"
	"bikeshop/orders-service/internal/app/orders/service"
	"bikeshop/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

func abortWithError(c *gin.Context, status int, message string) {
	respondError(c, status, message)
	c.Abort()
}

// respondServiceError переводит ошибки сервисного слоя в HTTP статусы
func respondServiceError(c *gin.Context, err error, fallback string) {
	var checkoutErr *service.CheckoutError
	switch {
	case errors.As(err, &checkoutErr):
		c.JSON(http.StatusUnprocessableEntity, entity.ErrorResponse{
			Error:      http.StatusText(http.StatusUnprocessableEntity),
			Message:    checkoutErr.Error(),
			Violations: checkoutErr.Violations,
		})
	case errors.Is(err, service.ErrCartEmpty):
		respondError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrOrderNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		respondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidOrderStatus):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		respondError(c, http.StatusUnauthorized, err.Error())
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg(fallback)
		respondError(c, http.StatusInternalServerError, fallback)
	}
}

// currentUserID user_id, положенный AuthMiddleware
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	if !ok {
		respondError(c, http.StatusInternalServerError, "Invalid user ID")
		return uuid.Nil, false
	}
	return userID, true
}

func parseOrderID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid order ID")
		return uuid.Nil, false
	}
	return id, true
}
