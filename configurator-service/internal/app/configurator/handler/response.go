package handler

import (
	"errors"
	"net/http"
	"strings"

	"bikeshop/configurator-service/internal/app/configurator/entity"
	"bikeshop/configurator-service/internal/app/configurator/service"
	"bikeshop/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

// respondServiceError переводит ошибки сервисного слоя в HTTP статусы
func respondServiceError(c *gin.Context, err error, fallback string) {
	var invalid *service.InvalidConfigurationError
	switch {
	case errors.As(err, &invalid):
		c.JSON(http.StatusUnprocessableEntity, entity.ErrorResponse{
			Error:      http.StatusText(http.StatusUnprocessableEntity),
			Message:    invalid.Error(),
			Violations: invalid.Violations,
		})
	case errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrOptionGroupNotFound),
		errors.Is(err, service.ErrOptionNotFound),
		errors.Is(err, service.ErrOptionRuleNotFound),
		errors.Is(err, service.ErrOptionPriceRuleNotFound),
		errors.Is(err, service.ErrCartItemNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrCategoryAlreadyExists),
		errors.Is(err, service.ErrCategoryHasProducts),
		errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrCartBusy):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNegativePrice),
		errors.Is(err, service.ErrInvalidRuleType),
		errors.Is(err, service.ErrSelfReferencingRule),
		errors.Is(err, service.ErrInvalidQuantity):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg(fallback)
		respondError(c, http.StatusInternalServerError, fallback)
	}
}

// bindJSON разбирает тело и прогоняет validator, при ошибке отвечает 400
func bindJSON(c *gin.Context, v *validator.Validate, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := v.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return false
	}
	return true
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// parseOptionIDs читает optionIds из query: повторяющиеся параметры и значения через запятую,
// пустые отбрасываются, дубликаты удаляются с сохранением порядка
func parseOptionIDs(c *gin.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	seen := make(map[uuid.UUID]struct{})

	for _, raw := range c.QueryArray("optionIds") {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := uuid.Parse(part)
			if err != nil {
				return nil, errors.New("optionIds must contain valid UUIDs: " + part)
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// currentUserID user_id, положенный Authenticate
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

func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fe := validationErrors[0]
		return fe.Field() + " validation failed on '" + fe.Tag() + "'"
	}
	return "Validation failed"
}
