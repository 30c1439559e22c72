package handler

import (
	"net/http"

	"bikeshop/configurator-service/internal/app/configurator/entity"
	"bikeshop/configurator-service/internal/app/configurator/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ConfigurationHandler публичные эндпоинты конфигуратора товара
type ConfigurationHandler struct {
	configurationService service.ConfigurationServiceInterface
}

func NewConfigurationHandler(configurationService service.ConfigurationServiceInterface) *ConfigurationHandler {
	return &ConfigurationHandler{configurationService: configurationService}
}

// GetProductWithOptions обрабатывает GET /products/:id/with-options?optionIds=...
// Возвращает граф товара с отметками selected, ценой и результатом валидации
func (h *ConfigurationHandler) GetProductWithOptions(c *gin.Context) {
	productID, optionIDs, ok := h.parseRequest(c)
	if !ok {
		return
	}

	evaluation, err := h.configurationService.Evaluate(c.Request.Context(), productID, optionIDs)
	if err != nil {
		respondServiceError(c, err, "Failed to evaluate configuration")
		return
	}

	c.JSON(http.StatusOK, evaluation.WithOptionsResponse())
}

// ValidateConfiguration обрабатывает GET /products/:id/validate?optionIds=...
func (h *ConfigurationHandler) ValidateConfiguration(c *gin.Context) {
	productID, optionIDs, ok := h.parseRequest(c)
	if !ok {
		return
	}

	result, err := h.configurationService.ValidateConfiguration(c.Request.Context(), productID, optionIDs)
	if err != nil {
		respondServiceError(c, err, "Failed to validate configuration")
		return
	}

	c.JSON(http.StatusOK, entity.ValidateConfigurationResponse{
		IsValid:    result.IsValid,
		Incomplete: result.Incomplete,
		Violations: result.Violations,
	})
}

// CalculatePrice обрабатывает GET /products/:id/price?optionIds=...
// Цена считается и для невалидной выборки
func (h *ConfigurationHandler) CalculatePrice(c *gin.Context) {
	productID, optionIDs, ok := h.parseRequest(c)
	if !ok {
		return
	}

	breakdown, err := h.configurationService.CalculatePrice(c.Request.Context(), productID, optionIDs)
	if err != nil {
		respondServiceError(c, err, "Failed to calculate price")
		return
	}

	c.JSON(http.StatusOK, entity.CalculatePriceResponse{
		Price:     breakdown.Total,
		BasePrice: breakdown.BasePrice,
		Lines:     breakdown.Lines,
	})
}

func (h *ConfigurationHandler) parseRequest(c *gin.Context) (uuid.UUID, []uuid.UUID, bool) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return uuid.Nil, nil, false
	}

	optionIDs, err := parseOptionIDs(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return uuid.Nil, nil, false
	}
	return productID, optionIDs, true
}
